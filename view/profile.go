package view

import (
	"context"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/session"
	"github.com/ncobase/blogclient/structs"
)

// Profile shows the signed-in user's account.
type Profile struct {
	deps *Deps

	Loading bool
	User    *structs.Session
	Profile *structs.Profile
	// Missing is set when the backend has no profile for the user yet.
	Missing bool
	Error   string
}

// NewProfile creates the profile page in its loading state.
func NewProfile(d *Deps) *Profile {
	return &Profile{deps: d, Loading: true}
}

// Access gates the profile behind a session.
func (p *Profile) Access() session.Access { return p.deps.Session.Gate() }

// Load fetches the profile.
func (p *Profile) Load(ctx context.Context) {
	p.Loading = true
	defer func() { p.Loading = false }()

	p.User = p.deps.user()
	prof, err := p.deps.API.Users.Me(ctx)
	switch {
	case ecode.IsKind(err, ecode.KindNotFound):
		p.Profile, p.Missing, p.Error = nil, true, ""
	case err != nil:
		p.Error = message(ctx, "load profile", err)
	default:
		p.Profile, p.Missing, p.Error = prof, false, ""
	}
}

// UpdateAvatar uploads f and makes it the avatar.
func (p *Profile) UpdateAvatar(ctx context.Context, f *structs.File) error {
	prof, err := p.deps.API.Users.UpdateAvatar(ctx, f)
	if err != nil {
		p.Error = message(ctx, "update avatar", err)
		return err
	}
	p.Profile, p.Missing, p.Error = prof, false, ""
	return nil
}
