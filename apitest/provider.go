package apitest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/identity"
	"github.com/ncobase/blogclient/security/jwt"
	"github.com/ncobase/blogclient/structs"
)

// Account is a user known to the fake provider.
type Account struct {
	Username  string
	Sub       string
	Password  string
	Name      string
	Email     string
	Groups    []string
	Temporary bool // must set a new password at first sign-in
	Confirmed bool
	Code      string // sign-up confirmation code
}

// Provider is an in-memory identity.Provider issuing unsigned-verified
// test tokens.
type Provider struct {
	mu       sync.Mutex
	accounts map[string]*Account
	sessions map[string]string // challenge session -> username
	revoked  map[string]bool

	// TTL is the lifetime of issued tokens.
	TTL time.Duration
	// AutoConfirm confirms sign-ups immediately.
	AutoConfirm bool
	// SignOutErr makes SignOut fail.
	SignOutErr error
	// RefreshErr makes Refresh fail.
	RefreshErr error
	Now        func() time.Time

	calls map[string]int
}

// NewProvider creates an empty fake provider.
func NewProvider() *Provider {
	return &Provider{
		accounts: map[string]*Account{},
		sessions: map[string]string{},
		revoked:  map[string]bool{},
		calls:    map[string]int{},
		TTL:      time.Hour,
		Now:      time.Now,
	}
}

// AddAccount registers a confirmed account.
func (p *Provider) AddAccount(a Account) *Account {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc := a
	if acc.Sub == "" {
		acc.Sub = uuid.NewString()
	}
	acc.Confirmed = true
	p.accounts[acc.Username] = &acc
	return &acc
}

// Account returns a copy of the named account.
func (p *Provider) Account(username string) (Account, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.accounts[username]
	if !ok {
		return Account{}, false
	}
	return *a, true
}

// Calls returns how often method was invoked.
func (p *Provider) Calls(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[method]
}

// Revoked reports whether a global sign-out revoked token.
func (p *Provider) Revoked(accessToken string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revoked[accessToken]
}

// IssueTokens mints tokens for an account expiring at exp.
func (p *Provider) IssueTokens(username string, exp time.Time) *structs.Tokens {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.issue(p.accounts[username], exp)
}

func (p *Provider) issue(a *Account, exp time.Time) *structs.Tokens {
	groups := make([]any, 0, len(a.Groups))
	for _, g := range a.Groups {
		groups = append(groups, g)
	}
	id := jwt.SignTestToken(map[string]any{
		jwt.ClaimUsername: a.Username,
		jwt.ClaimSubject:  a.Sub,
		jwt.ClaimName:     a.Name,
		jwt.ClaimEmail:    a.Email,
		jwt.ClaimGroups:   groups,
		jwt.ClaimExpiry:   exp.Unix(),
		jwt.ClaimTokenUse: "id",
	})
	access := jwt.SignTestToken(map[string]any{
		jwt.ClaimPlainUsername: a.Username,
		jwt.ClaimSubject:       a.Sub,
		jwt.ClaimGroups:        groups,
		jwt.ClaimExpiry:        exp.Unix(),
		jwt.ClaimTokenUse:      "access",
		"jti":                  uuid.NewString(),
	})
	return &structs.Tokens{
		AccessToken:  access,
		IDToken:      id,
		RefreshToken: "refresh-" + a.Username,
		ExpiresAt:    exp,
	}
}

func (p *Provider) SignIn(_ context.Context, username, password string) (*identity.AuthResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["SignIn"]++

	a, ok := p.accounts[username]
	if !ok || a.Password != password {
		return nil, ecode.Auth("Incorrect username or password.", nil)
	}
	if !a.Confirmed {
		return nil, ecode.Auth("User is not confirmed.", nil)
	}
	if a.Temporary {
		session := uuid.NewString()
		p.sessions[session] = username
		return &identity.AuthResult{Challenge: identity.ChallengeNewPassword, Session: session, Username: username}, nil
	}
	return &identity.AuthResult{Tokens: p.issue(a, p.Now().Add(p.TTL)), Username: username}, nil
}

func (p *Provider) RespondNewPassword(_ context.Context, username, session, newPassword string, attrs map[string]string) (*identity.AuthResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["RespondNewPassword"]++

	if p.sessions[session] != username {
		return nil, ecode.Auth("Invalid session for the user.", nil)
	}
	if len(newPassword) < 8 {
		return nil, &ecode.Error{Kind: ecode.KindValidation, Message: "Password does not conform to policy"}
	}
	delete(p.sessions, session)
	a := p.accounts[username]
	a.Password = newPassword
	a.Temporary = false
	if name, ok := attrs["name"]; ok {
		a.Name = name
	}
	return &identity.AuthResult{Tokens: p.issue(a, p.Now().Add(p.TTL)), Username: username}, nil
}

func (p *Provider) Refresh(_ context.Context, username, refreshToken string) (*structs.Tokens, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["Refresh"]++

	if p.RefreshErr != nil {
		return nil, p.RefreshErr
	}
	a, ok := p.accounts[username]
	if !ok || refreshToken != "refresh-"+username {
		return nil, ecode.Auth("Invalid Refresh Token", nil)
	}
	return p.issue(a, p.Now().Add(p.TTL)), nil
}

func (p *Provider) SignUp(_ context.Context, username, password string, attrs map[string]string) (*identity.ProviderSignUp, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["SignUp"]++

	if _, exists := p.accounts[username]; exists {
		return nil, &ecode.Error{Kind: ecode.KindValidation, Message: "User already exists"}
	}
	a := &Account{
		Username:  username,
		Sub:       uuid.NewString(),
		Password:  password,
		Name:      attrs["name"],
		Email:     attrs["email"],
		Confirmed: p.AutoConfirm,
		Code:      "123456",
	}
	p.accounts[username] = a
	return &identity.ProviderSignUp{UserID: a.Sub, Confirmed: a.Confirmed}, nil
}

func (p *Provider) ConfirmSignUp(_ context.Context, username, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["ConfirmSignUp"]++

	a, ok := p.accounts[username]
	if !ok {
		return ecode.Auth("Username/client id combination not found.", nil)
	}
	if a.Code != code {
		return &ecode.Error{Kind: ecode.KindValidation, Message: "Invalid verification code provided, please try again."}
	}
	a.Confirmed = true
	return nil
}

func (p *Provider) SignOut(_ context.Context, accessToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls["SignOut"]++

	if p.SignOutErr != nil {
		return p.SignOutErr
	}
	p.revoked[accessToken] = true
	return nil
}

var _ identity.Provider = (*Provider)(nil)
