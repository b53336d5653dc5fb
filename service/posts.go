package service

import (
	"context"
	"strings"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/net/client"
	"github.com/ncobase/blogclient/paging"
	"github.com/ncobase/blogclient/structs"
	"github.com/ncobase/blogclient/validator"
)

// Posts is the posts resource client.
type Posts struct {
	c  *client.Client
	up *Uploader
}

func postPath(id string) string {
	return "/posts/" + client.PathEscape(structs.ExtractPostID(id))
}

// List returns a page of published posts.
func (s *Posts) List(ctx context.Context, params paging.Params) (*paging.Page[structs.Post], error) {
	return list[structs.Post](ctx, s.c, "/posts", params)
}

// Mine returns a page of the caller's own posts, drafts included.
func (s *Posts) Mine(ctx context.Context, params paging.Params) (*paging.Page[structs.Post], error) {
	return list[structs.Post](ctx, s.c, "/posts/me", params)
}

// Get returns one post. id may carry the POST# prefix.
func (s *Posts) Get(ctx context.Context, id string) (*structs.Post, error) {
	if strings.TrimSpace(structs.ExtractPostID(id)) == "" {
		return nil, ecode.Validation(ecode.FieldIsRequired("post id"), nil)
	}
	var post structs.Post
	if err := s.c.Get(ctx, postPath(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create publishes a post. Invalid input never reaches the network.
func (s *Posts) Create(ctx context.Context, body *structs.CreatePostBody) (*structs.Post, error) {
	if err := checkCreate(body); err != nil {
		return nil, err
	}
	var post structs.Post
	if err := s.c.Post(ctx, "/posts", body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreateWithThumbnail uploads thumb and then creates the post referencing
// it. When the upload fails the post is not created.
func (s *Posts) CreateWithThumbnail(ctx context.Context, body *structs.CreatePostBody, thumb *structs.File) (*structs.Post, error) {
	if thumb == nil {
		return s.Create(ctx, body)
	}
	if err := checkCreate(body); err != nil {
		return nil, err
	}
	fileURL, err := s.up.Upload(ctx, PostUploadPath, thumb)
	if err != nil {
		return nil, err
	}
	body.ThumbnailURL = fileURL
	return s.Create(ctx, body)
}

// Update changes a post. Nil fields are left as they are.
func (s *Posts) Update(ctx context.Context, id string, body *structs.UpdatePostBody) (*structs.Post, error) {
	if err := checkUpdate(body); err != nil {
		return nil, err
	}
	var post structs.Post
	if err := s.c.Put(ctx, postPath(id), body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateWithThumbnail uploads thumb and then updates the post with it.
func (s *Posts) UpdateWithThumbnail(ctx context.Context, id string, body *structs.UpdatePostBody, thumb *structs.File) (*structs.Post, error) {
	if thumb == nil {
		return s.Update(ctx, id, body)
	}
	if err := checkUpdate(body); err != nil {
		return nil, err
	}
	fileURL, err := s.up.Upload(ctx, PostUploadPath, thumb)
	if err != nil {
		return nil, err
	}
	body.ThumbnailURL = &fileURL
	return s.Update(ctx, id, body)
}

// Delete removes a post.
func (s *Posts) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, postPath(id), nil)
}

// UploadURL requests a pre-signed thumbnail target.
func (s *Posts) UploadURL(ctx context.Context, contentType string) (*structs.UploadTarget, error) {
	return s.up.Target(ctx, PostUploadPath, contentType)
}

func checkCreate(body *structs.CreatePostBody) error {
	if body == nil {
		return ecode.Validation(ecode.FieldIsRequired("post"), nil)
	}
	body.Title = strings.TrimSpace(body.Title)
	body.Content = strings.TrimSpace(body.Content)
	return validator.Check(body, "post")
}

func checkUpdate(body *structs.UpdatePostBody) error {
	if body == nil {
		return ecode.Validation(ecode.FieldIsRequired("post"), nil)
	}
	// omitempty skips pointers to "", so blank values are checked here
	fields := map[string]string{}
	if body.Title != nil {
		*body.Title = strings.TrimSpace(*body.Title)
		if *body.Title == "" {
			fields["title"] = "The title must not be blank."
		}
	}
	if body.Content != nil {
		*body.Content = strings.TrimSpace(*body.Content)
		if *body.Content == "" {
			fields["content"] = "The content must not be blank."
		}
	}
	if len(fields) > 0 {
		return ecode.Validation(ecode.FieldIsInvalid("post"), fields)
	}
	return validator.Check(body, "post")
}
