package structs

import (
	"slices"
	"time"
)

// Session is the normalized identity of the signed-in user. It is derived
// from provider tokens and never persisted by this application.
type Session struct {
	Username  string    `json:"username"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Groups    []string  `json:"groups"`
	IDToken   string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DisplayName returns the name to show, falling back to the local part of
// the email and then to the username.
func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	if s.Name != "" {
		return s.Name
	}
	if s.Email != "" {
		for i := 0; i < len(s.Email); i++ {
			if s.Email[i] == '@' {
				return s.Email[:i]
			}
		}
	}
	return s.Username
}

// InGroup reports group membership.
func (s *Session) InGroup(group string) bool {
	return s != nil && slices.Contains(s.Groups, group)
}

// IsAdmin reports membership in the ADMIN group.
func (s *Session) IsAdmin() bool { return s.InGroup(GroupAdmin) }

// Clone returns a copy safe to hand to readers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Groups = slices.Clone(s.Groups)
	return &c
}

// GroupAdmin is the provider group with moderation rights.
const GroupAdmin = "ADMIN"

// Tokens are the provider tokens persisted in the provider session store.
type Tokens struct {
	AccessToken  string    `json:"access_token"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the tokens expire within skew of now.
func (t *Tokens) Expired(now time.Time, skew time.Duration) bool {
	if t == nil || t.ExpiresAt.IsZero() {
		return true
	}
	return !now.Add(skew).Before(t.ExpiresAt)
}
