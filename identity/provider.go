// Package identity adapts the identity provider's sign-in, challenge,
// sign-up and sign-out calls and derives the normalized Session from the
// tokens it issues.
package identity

import (
	"context"

	"github.com/ncobase/blogclient/structs"
)

// Challenge names the provider may answer a sign-in with.
const (
	ChallengeNewPassword = "NEW_PASSWORD_REQUIRED"
)

// AuthResult is the outcome of a provider authentication call. Exactly one
// of Tokens or Challenge is set.
type AuthResult struct {
	Tokens    *structs.Tokens
	Challenge string
	// Session is the opaque handle to answer the challenge with.
	Session string
	// Username is the provider user the challenge belongs to.
	Username string
}

// ProviderSignUp is the outcome of a provider sign-up.
type ProviderSignUp struct {
	UserID    string
	Confirmed bool
}

// Provider is the identity provider surface the adapter needs.
type Provider interface {
	SignIn(ctx context.Context, username, password string) (*AuthResult, error)
	RespondNewPassword(ctx context.Context, username, session, newPassword string, attrs map[string]string) (*AuthResult, error)
	Refresh(ctx context.Context, username, refreshToken string) (*structs.Tokens, error)
	SignUp(ctx context.Context, username, password string, attrs map[string]string) (*ProviderSignUp, error)
	ConfirmSignUp(ctx context.Context, username, code string) error
	SignOut(ctx context.Context, accessToken string) error
}

// Registrar creates accounts through the backend API.
type Registrar interface {
	Create(ctx context.Context, body *structs.CreateUserBody) (*structs.Profile, error)
}
