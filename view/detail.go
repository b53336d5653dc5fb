package view

import (
	"context"
	"net/http"
	"slices"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/helper"
	"github.com/ncobase/blogclient/paging"
	"github.com/ncobase/blogclient/structs"
)

// Detail is a single post with its comments.
type Detail struct {
	deps   *Deps
	PostID string

	Loading  bool
	Post     *structs.Post
	ReadTime int
	Comments []structs.Comment
	// NotFound renders the empty not-found view. It is not an error.
	NotFound bool
	Error    string

	CanEdit    bool
	CanDelete  bool
	CanComment bool
}

// NewDetail creates the page for post id in its loading state.
func NewDetail(d *Deps, id string) *Detail {
	return &Detail{deps: d, PostID: structs.ExtractPostID(id), Loading: true}
}

// Load fetches the post and its comments.
func (p *Detail) Load(ctx context.Context) {
	p.Loading = true
	defer func() { p.Loading = false }()

	post, err := p.deps.API.Posts.Get(ctx, p.PostID)
	if err != nil {
		if ecode.IsKind(err, ecode.KindNotFound) {
			p.NotFound, p.Post, p.Error = true, nil, ""
			return
		}
		p.Error = message(ctx, "load post", err)
		return
	}
	p.Post, p.NotFound, p.Error = post, false, ""
	p.ReadTime = helper.ReadTime(post.Content)

	username := p.deps.username()
	admin := p.deps.user().IsAdmin()
	p.CanEdit = post.OwnedBy(username)
	p.CanDelete = p.CanEdit || admin
	p.CanComment = username != ""

	comments, err := paging.Collect[structs.Comment](ctx, paging.Params{Size: paging.MaxSize}, 0,
		func(ctx context.Context, params paging.Params) (*paging.Page[structs.Comment], error) {
			return p.deps.API.Comments.ListByPost(ctx, p.PostID, params)
		})
	if err != nil {
		p.Error = message(ctx, "load comments", err)
	}
	p.Comments = comments
}

// CanModifyComment reports whether the viewer may edit or delete c.
func (p *Detail) CanModifyComment(c *structs.Comment) bool {
	return c.OwnedBy(p.deps.username()) || p.deps.user().IsAdmin()
}

// AddComment posts a comment as the signed-in user.
func (p *Detail) AddComment(ctx context.Context, content string) error {
	if p.Post == nil {
		return p.fail(ctx, "add comment", ecode.API(http.StatusNotFound, 0, ecode.NotExist("post")))
	}
	if _, err := p.deps.requireUser(); err != nil {
		return p.fail(ctx, "add comment", err)
	}
	c, err := p.deps.API.Comments.Create(ctx, structs.NewCreateCommentBody(p.Post, content))
	if err != nil {
		return p.fail(ctx, "add comment", err)
	}
	p.Error = ""
	p.Comments = append(p.Comments, *c)
	return nil
}

// EditComment changes the content of one of the viewer's comments.
func (p *Detail) EditComment(ctx context.Context, commentID, content string) error {
	i := p.commentIndex(commentID)
	if i < 0 {
		return p.fail(ctx, "edit comment", ecode.API(http.StatusNotFound, 0, ecode.NotExist("comment")))
	}
	c, err := p.deps.API.Comments.Update(ctx, p.PostID, commentID, &structs.UpdateCommentBody{Content: content})
	if err != nil {
		return p.fail(ctx, "edit comment", err)
	}
	p.Error = ""
	p.Comments[i] = *c
	return nil
}

// DeleteComment removes a comment.
func (p *Detail) DeleteComment(ctx context.Context, commentID string) error {
	i := p.commentIndex(commentID)
	if i < 0 {
		return p.fail(ctx, "delete comment", ecode.API(http.StatusNotFound, 0, ecode.NotExist("comment")))
	}
	if err := p.deps.API.Comments.Delete(ctx, p.PostID, commentID); err != nil {
		return p.fail(ctx, "delete comment", err)
	}
	p.Error = ""
	p.Comments = slices.Delete(p.Comments, i, i+1)
	return nil
}

// Delete removes the post. The page shows not found afterwards.
func (p *Detail) Delete(ctx context.Context) error {
	if err := p.deps.API.Posts.Delete(ctx, p.PostID); err != nil {
		return p.fail(ctx, "delete post", err)
	}
	p.Post, p.Comments, p.NotFound, p.Error = nil, nil, true, ""
	return nil
}

func (p *Detail) commentIndex(commentID string) int {
	id := structs.ExtractCommentID(commentID)
	return slices.IndexFunc(p.Comments, func(c structs.Comment) bool { return c.ID() == id })
}

func (p *Detail) fail(ctx context.Context, action string, err error) error {
	p.Error = message(ctx, action, err)
	return err
}
