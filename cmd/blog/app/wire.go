//go:build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/ncobase/blogclient/config"
	"github.com/ncobase/blogclient/logging/logger"
)

// InitializeApp wires the application from the process configuration.
// The cleanup func closes the token store and the log file.
func InitializeApp() (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		ProviderSet,
	))
}
