package view

import (
	"context"
	"errors"
	"net/http"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/session"
	"github.com/ncobase/blogclient/structs"
)

// Editor is the create or edit form for a post.
type Editor struct {
	deps *Deps
	// PostID is empty when creating.
	PostID string

	Title        string
	Content      string
	Status       string
	ThumbnailURL string
	Thumbnail    *structs.File

	Saving bool
	Saved  *structs.Post
	// Fields holds per-field validation messages.
	Fields map[string]string
	Error  string
}

// NewEditor creates an empty form for a new post.
func NewEditor(d *Deps) *Editor {
	return &Editor{deps: d, Status: structs.PostStatusPublished}
}

// Access gates the editor behind a session.
func (e *Editor) Access() session.Access { return e.deps.Session.Gate() }

// Editing reports whether the form edits an existing post.
func (e *Editor) Editing() bool { return e.PostID != "" }

// Edit loads an existing post into the form. Only its author may edit it.
func (e *Editor) Edit(ctx context.Context, id string) error {
	post, err := e.deps.API.Posts.Get(ctx, id)
	if err != nil {
		return e.fail(ctx, "load post", err)
	}
	if !post.OwnedBy(e.deps.username()) {
		return e.fail(ctx, "load post", ecode.API(http.StatusForbidden, 0, "You can only edit your own posts"))
	}
	e.PostID = post.ID()
	e.Title, e.Content, e.Status = post.Title, post.Content, post.Status
	e.ThumbnailURL = post.ThumbnailURL
	e.Error, e.Fields = "", nil
	return nil
}

// Submit validates and saves the form. Invalid input is reported on the
// form without any request; a failed thumbnail upload saves nothing.
func (e *Editor) Submit(ctx context.Context) (*structs.Post, error) {
	e.Saving = true
	defer func() { e.Saving = false }()
	e.Error, e.Fields = "", nil

	if _, err := e.deps.requireUser(); err != nil {
		return nil, e.fail(ctx, "save post", err)
	}

	var (
		post *structs.Post
		err  error
	)
	if e.Editing() {
		title, content, status := e.Title, e.Content, e.Status
		body := &structs.UpdatePostBody{Title: &title, Content: &content}
		if status != "" {
			body.Status = &status
		}
		post, err = e.deps.API.Posts.UpdateWithThumbnail(ctx, e.PostID, body, e.Thumbnail)
	} else {
		body := &structs.CreatePostBody{Title: e.Title, Content: e.Content}
		post, err = e.deps.API.Posts.CreateWithThumbnail(ctx, body, e.Thumbnail)
	}
	if err != nil {
		return nil, e.fail(ctx, "save post", err)
	}
	e.Saved = post
	e.PostID = post.ID()
	e.ThumbnailURL = post.ThumbnailURL
	e.Thumbnail = nil
	return post, nil
}

func (e *Editor) fail(ctx context.Context, action string, err error) error {
	var ee *ecode.Error
	if ecode.IsKind(err, ecode.KindValidation) && errors.As(err, &ee) {
		e.Fields = ee.Fields
	}
	e.Error = message(ctx, action, err)
	return err
}
