package jwt

import (
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	"github.com/ncobase/blogclient/structs"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	ErrInvalidToken = TokenError("invalid token")
	ErrTokenParsing = TokenError("token parsing error")
)

// Claim names issued by the identity provider.
const (
	ClaimUsername      = "cognito:username"
	ClaimGroups        = "cognito:groups"
	ClaimPlainUsername = "username"
	ClaimName          = "name"
	ClaimEmail         = "email"
	ClaimSubject       = "sub"
	ClaimExpiry        = "exp"
	ClaimTokenUse      = "token_use"
)

var parser = jwtstd.NewParser()

// ParseClaims decodes token claims without verifying the signature. The
// token was received directly from the provider; the API verifies it.
func ParseClaims(token string) (map[string]any, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims := jwtstd.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrTokenParsing
	}
	return claims, nil
}

// SessionFromIDToken normalizes ID token claims into a Session.
func SessionFromIDToken(idToken string) (*structs.Session, error) {
	claims, err := ParseClaims(idToken)
	if err != nil {
		return nil, err
	}
	username := GetUsernameFromToken(claims)
	if username == "" {
		return nil, ErrInvalidToken
	}
	return &structs.Session{
		Username:  username,
		UserID:    GetSubjectFromToken(claims),
		Name:      getString(claims, ClaimName),
		Email:     getString(claims, ClaimEmail),
		Groups:    GetGroupsFromToken(claims),
		IDToken:   idToken,
		ExpiresAt: GetExpirationFromToken(claims),
	}, nil
}

// ExpiresAt returns the exp claim of token, zero when absent or unparsable.
func ExpiresAt(token string) time.Time {
	claims, err := ParseClaims(token)
	if err != nil {
		return time.Time{}
	}
	return GetExpirationFromToken(claims)
}
