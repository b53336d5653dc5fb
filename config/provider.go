package config

import (
	"github.com/google/wire"
	"github.com/ncobase/blogclient/identity"
)

// ProviderSet is the wire provider set for the config package.
// It provides the main *Config and the sections other packages consume.
var ProviderSet = wire.NewSet(
	GetConfig,
	ProvideAPIConfig,
	ProvideCognitoConfig,
	ProvideStoreConfig,
	ProvideUploadConfig,
	ProvideLoggerConfig,
	ProvideSentryConfig,
)

// ProvideAPIConfig provides the backend configuration.
func ProvideAPIConfig(cfg *Config) *API {
	if cfg == nil {
		return nil
	}
	return cfg.API
}

// ProvideCognitoConfig provides the user pool configuration.
func ProvideCognitoConfig(cfg *Config) *identity.CognitoConfig {
	if cfg == nil || cfg.Identity == nil {
		return nil
	}
	return cfg.Identity.Cognito
}

// ProvideStoreConfig provides the token store configuration.
func ProvideStoreConfig(cfg *Config) *Store {
	if cfg == nil {
		return nil
	}
	return cfg.Store
}

// ProvideUploadConfig provides the image upload rules.
func ProvideUploadConfig(cfg *Config) *Upload {
	if cfg == nil {
		return nil
	}
	return cfg.Upload
}

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *Logger {
	if cfg == nil {
		return nil
	}
	return cfg.Logger
}

// ProvideSentryConfig provides the error reporting configuration.
func ProvideSentryConfig(cfg *Config) *Sentry {
	if cfg == nil || cfg.Observes == nil {
		return nil
	}
	return cfg.Observes.Sentry
}
