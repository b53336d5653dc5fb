package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/identity/store"
	"github.com/ncobase/blogclient/logging/logger"
	"github.com/ncobase/blogclient/security/jwt"
	"github.com/ncobase/blogclient/structs"
)

// NextStep tells the caller what a sign-in or sign-up needs next.
type NextStep string

const (
	StepDone               NextStep = "DONE"
	StepConfirmNewPassword NextStep = "CONFIRM_SIGN_IN_WITH_NEW_PASSWORD_REQUIRED"
	StepConfirmSignUp      NextStep = "CONFIRM_SIGN_UP"
)

// SignInResult is returned by Login and ConfirmChallenge.
type SignInResult struct {
	NextStep NextStep
}

// SignUpResult is returned by Register.
type SignUpResult struct {
	NextStep NextStep
	UserID   string
}

// Strategy selects how accounts are registered.
type Strategy string

const (
	// StrategyBackend creates accounts with POST /users.
	StrategyBackend Strategy = "backend"
	// StrategyProvider signs up at the provider and confirms by emailed code.
	StrategyProvider Strategy = "provider"
)

// ParseStrategy maps a config value to a Strategy, defaulting to backend.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyBackend:
		return StrategyBackend, nil
	case StrategyProvider:
		return StrategyProvider, nil
	default:
		return "", ecode.Validation("unknown registration strategy "+s, nil)
	}
}

// DefaultSkew is how early tokens are treated as expired.
const DefaultSkew = time.Minute

type challenge struct {
	username string
	session  string
}

// Adapter is the application's single view of the identity provider.
type Adapter struct {
	provider  Provider
	store     store.TokenStore
	registrar Registrar
	strategy  Strategy
	skew      time.Duration
	now       func() time.Time

	mu      sync.Mutex
	pending *challenge
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithRegistrar sets the backend used by StrategyBackend.
func WithRegistrar(r Registrar) Option {
	return func(a *Adapter) { a.registrar = r }
}

// WithStrategy selects the registration strategy.
func WithStrategy(s Strategy) Option {
	return func(a *Adapter) { a.strategy = s }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// WithSkew sets how early tokens are refreshed.
func WithSkew(d time.Duration) Option {
	return func(a *Adapter) { a.skew = d }
}

// New creates an Adapter. A nil store keeps tokens in memory.
func New(p Provider, s store.TokenStore, opts ...Option) *Adapter {
	if s == nil {
		s = store.NewMemory()
	}
	a := &Adapter{
		provider: p,
		store:    s,
		strategy: StrategyBackend,
		skew:     DefaultSkew,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Strategy returns the configured registration strategy.
func (a *Adapter) Strategy() Strategy { return a.strategy }

// CheckSession returns the current Session or nil. Provider and store
// failures are logged and treated as not logged in.
func (a *Adapter) CheckSession(ctx context.Context) *structs.Session {
	tokens, err := a.current(ctx)
	if err != nil {
		logger.Debugf(ctx, "check session: %v", err)
		return nil
	}
	if tokens == nil {
		return nil
	}
	s, err := jwt.SessionFromIDToken(tokens.IDToken)
	if err != nil {
		logger.Debugf(ctx, "check session: %v", err)
		return nil
	}
	return s
}

// Token returns the access token for API calls, or "" when anonymous.
func (a *Adapter) Token(ctx context.Context) (string, error) {
	tokens, err := a.current(ctx)
	if err != nil || tokens == nil {
		return "", err
	}
	return tokens.AccessToken, nil
}

// current loads the stored tokens, refreshing them when expired.
func (a *Adapter) current(ctx context.Context) (*structs.Tokens, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tokens, err := a.store.Load(ctx)
	if err != nil || tokens == nil {
		return nil, err
	}
	if !a.expired(tokens) {
		return tokens, nil
	}
	if tokens.RefreshToken == "" {
		return nil, ecode.Auth("session expired", nil)
	}

	username := ""
	if claims, err := jwt.ParseClaims(tokens.IDToken); err == nil {
		username = jwt.GetUsernameFromToken(claims)
	}
	fresh, err := a.provider.Refresh(ctx, username, tokens.RefreshToken)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, fresh); err != nil {
		logger.Warnf(ctx, "persist refreshed tokens: %v", err)
	}
	logger.Debugf(ctx, "refreshed session for %s", username)
	return fresh, nil
}

// expired uses the ID token's own exp claim when present.
func (a *Adapter) expired(t *structs.Tokens) bool {
	check := *t
	if exp := jwt.ExpiresAt(t.IDToken); !exp.IsZero() {
		check.ExpiresAt = exp
	}
	return check.Expired(a.now(), a.skew)
}

// Login starts a sign-in. A forced password challenge is kept pending for
// ConfirmChallenge and never establishes a session.
func (a *Adapter) Login(ctx context.Context, identifier, password string) (*SignInResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ecode.Validation("username and password are required", nil)
	}

	a.mu.Lock()
	a.pending = nil
	a.mu.Unlock()

	res, err := a.provider.SignIn(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	return a.complete(ctx, res)
}

// ConfirmChallenge answers the pending forced password challenge, setting
// the new password and the display name together.
func (a *Adapter) ConfirmChallenge(ctx context.Context, newPassword, displayName string) (*SignInResult, error) {
	a.mu.Lock()
	pending := a.pending
	a.mu.Unlock()
	if pending == nil {
		return nil, ecode.Auth("no sign-in challenge is pending", nil)
	}
	if newPassword == "" || strings.TrimSpace(displayName) == "" {
		return nil, ecode.Validation("new password and display name are required", nil)
	}

	res, err := a.provider.RespondNewPassword(ctx, pending.username, pending.session, newPassword,
		map[string]string{"name": strings.TrimSpace(displayName)})
	if err != nil {
		return nil, err
	}
	return a.complete(ctx, res)
}

func (a *Adapter) complete(ctx context.Context, res *AuthResult) (*SignInResult, error) {
	if res.Tokens != nil {
		if err := a.store.Save(ctx, res.Tokens); err != nil {
			return nil, ecode.Auth("could not persist session", err)
		}
		a.mu.Lock()
		a.pending = nil
		a.mu.Unlock()
		return &SignInResult{NextStep: StepDone}, nil
	}

	switch res.Challenge {
	case ChallengeNewPassword:
		a.mu.Lock()
		a.pending = &challenge{username: res.Username, session: res.Session}
		a.mu.Unlock()
		return &SignInResult{NextStep: StepConfirmNewPassword}, nil
	default:
		return nil, ecode.Auth("unsupported sign-in step "+res.Challenge, nil)
	}
}

// PendingChallenge reports whether a forced password challenge awaits.
func (a *Adapter) PendingChallenge() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Logout signs out at the provider and clears the token store. The store
// is cleared even when the provider call fails.
func (a *Adapter) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = nil

	var signOutErr error
	tokens, err := a.store.Load(ctx)
	if err != nil {
		logger.Warnf(ctx, "load tokens for sign out: %v", err)
	}
	if tokens != nil && tokens.AccessToken != "" {
		signOutErr = a.provider.SignOut(ctx, tokens.AccessToken)
	}
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	return signOutErr
}
