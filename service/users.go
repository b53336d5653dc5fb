package service

import (
	"context"
	"strings"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/net/client"
	"github.com/ncobase/blogclient/structs"
	"github.com/ncobase/blogclient/validator"
)

// Users is the users resource client.
type Users struct {
	c  *client.Client
	up *Uploader
}

// Create registers an account directly with the backend.
func (s *Users) Create(ctx context.Context, body *structs.CreateUserBody) (*structs.Profile, error) {
	if body == nil {
		return nil, ecode.Validation(ecode.FieldIsRequired("user"), nil)
	}
	body.Email = strings.TrimSpace(body.Email)
	body.Username = strings.TrimSpace(body.Username)
	if err := validator.Check(body, "registration"); err != nil {
		return nil, err
	}
	var profile structs.Profile
	if err := s.c.Post(ctx, "/users", body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Me returns the caller's profile.
func (s *Users) Me(ctx context.Context) (*structs.Profile, error) {
	var profile structs.Profile
	if err := s.c.Get(ctx, "/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe updates the caller's profile.
func (s *Users) UpdateMe(ctx context.Context, body *structs.UpdateProfileBody) (*structs.Profile, error) {
	if err := validator.Check(body, "profile"); err != nil {
		return nil, err
	}
	var profile structs.Profile
	if err := s.c.Put(ctx, "/users/me", body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UploadURL requests a pre-signed avatar target.
func (s *Users) UploadURL(ctx context.Context, contentType string) (*structs.UploadTarget, error) {
	return s.up.Target(ctx, UserUploadPath, contentType)
}

// UpdateAvatar uploads f and sets it as the caller's avatar. When the
// upload fails the profile is not touched.
func (s *Users) UpdateAvatar(ctx context.Context, f *structs.File) (*structs.Profile, error) {
	fileURL, err := s.up.Upload(ctx, UserUploadPath, f)
	if err != nil {
		return nil, err
	}
	return s.UpdateMe(ctx, &structs.UpdateProfileBody{AvatarURL: fileURL})
}
