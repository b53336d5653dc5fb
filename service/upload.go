package service

import (
	"context"
	"net/http"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/logging/logger"
	"github.com/ncobase/blogclient/net/client"
	"github.com/ncobase/blogclient/structs"
	"github.com/ncobase/blogclient/validator"
)

// Upload-url endpoints.
const (
	PostUploadPath = "/posts/upload-url"
	UserUploadPath = "/users/upload-url"
)

// Uploader runs the two-phase direct upload: request a pre-signed target,
// then PUT the bytes to it.
type Uploader struct {
	c     *client.Client
	rules validator.ImageRules
}

// NewUploader creates an Uploader enforcing rules.
func NewUploader(c *client.Client, rules validator.ImageRules) *Uploader {
	return &Uploader{c: c, rules: rules}
}

// Validate checks f against the image rules without any request.
func (u *Uploader) Validate(f *structs.File) error {
	return validator.ValidateImage(f, u.rules)
}

// Target requests a pre-signed upload target from endpoint.
func (u *Uploader) Target(ctx context.Context, endpoint, contentType string) (*structs.UploadTarget, error) {
	body := &structs.UploadURLBody{ContentType: contentType}
	if err := validator.Check(body, "upload"); err != nil {
		return nil, err
	}
	var target structs.UploadTarget
	if err := u.c.Post(ctx, endpoint, body, &target); err != nil {
		return nil, err
	}
	if target.UploadURL == "" || target.FileURL == "" {
		return nil, ecode.API(http.StatusOK, 0, "upload target is incomplete")
	}
	return &target, nil
}

// Upload validates f, uploads it through endpoint and returns the public
// file URL. Nothing references the object until the caller submits it.
func (u *Uploader) Upload(ctx context.Context, endpoint string, f *structs.File) (string, error) {
	if err := u.Validate(f); err != nil {
		return "", err
	}
	target, err := u.Target(ctx, endpoint, f.ContentType)
	if err != nil {
		logger.Errorf(ctx, "request upload target for %s: %v", f.Name, err)
		return "", err
	}
	if err := u.c.Upload(ctx, target.UploadURL, f.ContentType, f.Data); err != nil {
		logger.Errorf(ctx, "upload %s: %v", f.Name, err)
		return "", err
	}
	logger.Infof(ctx, "uploaded %s as %s", f.Name, target.Key)
	return target.FileURL, nil
}
