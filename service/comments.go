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

// Comments is the comments resource client.
type Comments struct {
	c *client.Client
}

func commentPath(postID, commentID string) string {
	return "/comments/post/" + client.PathEscape(structs.ExtractPostID(postID)) +
		"/" + client.PathEscape(structs.ExtractCommentID(commentID))
}

// ListByPost returns a page of comments on a post.
func (s *Comments) ListByPost(ctx context.Context, postID string, params paging.Params) (*paging.Page[structs.Comment], error) {
	postID = structs.ExtractPostID(postID)
	if strings.TrimSpace(postID) == "" {
		return nil, ecode.Validation(ecode.FieldIsRequired("post id"), nil)
	}
	return list[structs.Comment](ctx, s.c, "/comments/post/"+client.PathEscape(postID), params)
}

// Create adds a comment.
func (s *Comments) Create(ctx context.Context, body *structs.CreateCommentBody) (*structs.Comment, error) {
	if body == nil {
		return nil, ecode.Validation(ecode.FieldIsRequired("comment"), nil)
	}
	body.PostID = structs.ExtractPostID(body.PostID)
	body.Content = strings.TrimSpace(body.Content)
	if err := validator.Check(body, "comment"); err != nil {
		return nil, err
	}
	var comment structs.Comment
	if err := s.c.Post(ctx, "/comments", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update edits the content of a comment.
func (s *Comments) Update(ctx context.Context, postID, commentID string, body *structs.UpdateCommentBody) (*structs.Comment, error) {
	if body == nil {
		return nil, ecode.Validation(ecode.FieldIsRequired("comment"), nil)
	}
	body.Content = strings.TrimSpace(body.Content)
	if err := validator.Check(body, "comment"); err != nil {
		return nil, err
	}
	var comment structs.Comment
	if err := s.c.Put(ctx, commentPath(postID, commentID), body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment.
func (s *Comments) Delete(ctx context.Context, postID, commentID string) error {
	return s.c.Delete(ctx, commentPath(postID, commentID), nil)
}
