// Package app assembles the blog client from its configuration.
package app

import (
	"github.com/ncobase/blogclient/config"
	"github.com/ncobase/blogclient/identity"
	"github.com/ncobase/blogclient/logging/logger"
	"github.com/ncobase/blogclient/service"
	"github.com/ncobase/blogclient/session"
	"github.com/ncobase/blogclient/view"
)

// App holds the long-lived collaborators of one CLI invocation.
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Auth    *identity.Adapter
	API     *service.Service
	Session *session.Manager
}

// NewApp creates the application.
func NewApp(cfg *config.Config, l *logger.Logger, auth *identity.Adapter, api *service.Service, s *session.Manager) *App {
	return &App{Config: cfg, Logger: l, Auth: auth, API: api, Session: s}
}

// Deps returns what the pages need.
func (a *App) Deps() *view.Deps {
	return &view.Deps{Session: a.Session, Auth: a.Auth, API: a.API}
}
