package app

import (
	"fmt"

	"github.com/google/wire"
	"github.com/ncobase/blogclient/config"
	"github.com/ncobase/blogclient/identity"
	"github.com/ncobase/blogclient/identity/store"
	"github.com/ncobase/blogclient/net/client"
	"github.com/ncobase/blogclient/service"
	"github.com/ncobase/blogclient/session"
)

// ProviderSet is the wire provider set for the application.
var ProviderSet = wire.NewSet(
	ProvideStore,
	ProvideProvider,
	ProvideBaseClient,
	ProvideAdapter,
	ProvideService,
	ProvideSession,
	NewApp,
)

// ProvideStore opens the provider session store.
func ProvideStore(c *config.Store) (store.TokenStore, func(), error) {
	return store.New(c)
}

// ProvideProvider creates the Cognito identity provider.
func ProvideProvider(c *identity.CognitoConfig) (identity.Provider, error) {
	p, err := identity.NewCognito(c)
	if err != nil {
		return nil, fmt.Errorf("identity provider: %w", err)
	}
	return p, nil
}

// ProvideBaseClient creates the anonymous API client.
func ProvideBaseClient(c *config.API) (*client.Client, error) {
	if c == nil {
		return nil, fmt.Errorf("api configuration is missing")
	}
	var opts []client.Option
	if c.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(c.UserAgent))
	}
	if c.Breaker != nil {
		opts = append(opts, client.WithBreaker(client.NewBreaker(*c.Breaker)))
	}
	return client.New(c.BaseURL, opts...)
}

// ProvideAdapter creates the identity adapter. Backend registration goes
// through the anonymous client.
func ProvideAdapter(cfg *config.Config, p identity.Provider, s store.TokenStore, base *client.Client, rules *config.Upload) (*identity.Adapter, error) {
	strategy, err := identity.ParseStrategy(cfg.Identity.Registration)
	if err != nil {
		return nil, err
	}
	registrar := service.New(base, *rules).Users
	return identity.New(p, s, identity.WithStrategy(strategy), identity.WithRegistrar(registrar)), nil
}

// ProvideService creates the resource clients, authorized by the adapter.
func ProvideService(base *client.Client, a *identity.Adapter, rules *config.Upload) *service.Service {
	return service.New(base.WithTokens(a), *rules)
}

// ProvideSession creates the session manager.
func ProvideSession(a *identity.Adapter) *session.Manager {
	return session.NewManager(a)
}
