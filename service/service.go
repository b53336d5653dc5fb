// Package service maps blog operations onto API calls.
package service

import (
	"context"

	"github.com/ncobase/blogclient/net/client"
	"github.com/ncobase/blogclient/paging"
	"github.com/ncobase/blogclient/validator"
)

// Service groups the resource clients.
type Service struct {
	Posts    *Posts
	Comments *Comments
	Users    *Users
	Uploader *Uploader
}

// New creates the resource clients sharing one API client.
func New(c *client.Client, rules validator.ImageRules) *Service {
	up := NewUploader(c, rules)
	return &Service{
		Posts:    &Posts{c: c, up: up},
		Comments: &Comments{c: c},
		Users:    &Users{c: c, up: up},
		Uploader: up,
	}
}

// list fetches one page and enforces the page invariants.
func list[T any](ctx context.Context, c *client.Client, path string, params paging.Params) (*paging.Page[T], error) {
	params = paging.NormalizeParams(params)
	q, err := params.Values()
	if err != nil {
		return nil, err
	}
	var page paging.Page[T]
	if err := c.Get(ctx, path, q, &page); err != nil {
		return nil, err
	}
	return paging.Normalize(&page, params.Size), nil
}
