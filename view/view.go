// Package view holds headless page models: the state a page renders and
// the actions it offers. Remote failures end up as messages on the page
// rather than escaping to the caller unhandled.
package view

import (
	"context"
	"time"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/identity"
	"github.com/ncobase/blogclient/logging/logger"
	"github.com/ncobase/blogclient/service"
	"github.com/ncobase/blogclient/session"
	"github.com/ncobase/blogclient/structs"
)

// Routes a page may redirect to.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// Deps are the collaborators every page uses.
type Deps struct {
	Session *session.Manager
	Auth    *identity.Adapter
	API     *service.Service
	Now     func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) user() *structs.Session {
	return d.Session.State().User
}

// username is the handle resources are owned by, "" when anonymous.
func (d *Deps) username() string {
	if u := d.user(); u != nil {
		return u.Username
	}
	return ""
}

// requireUser fails with an auth error when nobody is signed in.
func (d *Deps) requireUser() (*structs.Session, error) {
	u := d.user()
	if u == nil {
		return nil, ecode.Auth("please sign in first", nil)
	}
	return u, nil
}

// message converts err into the text a page shows and logs it.
func message(ctx context.Context, action string, err error) string {
	if err == nil {
		return ""
	}
	switch ecode.KindOf(err) {
	case ecode.KindValidation, ecode.KindAuth:
		logger.Debugf(ctx, "%s: %v", action, err)
	default:
		logger.Warnf(ctx, "%s: %v", action, err)
	}
	return ecode.Message(err)
}
