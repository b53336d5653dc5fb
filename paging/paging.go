package paging

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

const (
	// DefaultSize is the page size used when none is requested.
	DefaultSize = 20
	// MaxSize caps requested page sizes.
	MaxSize = 100
)

// Params holds the list parameters sent as query string
type Params struct {
	Size      int    `url:"size" json:"size"`
	NextToken string `url:"nextToken,omitempty" json:"nextToken,omitempty"`
}

// Page is the generic pagination envelope
type Page[T any] struct {
	Size      int     `json:"size"`
	NextToken *string `json:"nextToken"`
	HasMore   bool    `json:"hasMore"`
	Result    []T     `json:"result"`
}

// NormalizeParams ensures that Size is within an acceptable range
func NormalizeParams(params Params) Params {
	if params.Size <= 0 {
		params.Size = DefaultSize
	}
	if params.Size > MaxSize {
		params.Size = MaxSize
	}
	return params
}

// Values encodes params as url.Values
func (p Params) Values() (url.Values, error) {
	v, err := query.Values(NormalizeParams(p))
	if err != nil {
		return nil, fmt.Errorf("encode paging params: %w", err)
	}
	return v, nil
}

// Normalize enforces the page invariants against the requested size.
// A nil page becomes an empty one.
func Normalize[T any](page *Page[T], requested int) *Page[T] {
	if page == nil {
		page = &Page[T]{}
	}
	if requested > 0 && len(page.Result) > requested {
		page.Result = page.Result[:requested]
	}
	if page.Result == nil {
		page.Result = make([]T, 0)
	}
	if page.NextToken != nil && *page.NextToken == "" {
		page.NextToken = nil
	}
	if !page.HasMore {
		page.NextToken = nil
	}
	if page.NextToken == nil {
		page.HasMore = false
	}
	if page.Size == 0 {
		page.Size = requested
	}
	return page
}

// Token returns the continuation token or "".
func (p *Page[T]) Token() string {
	if p == nil || p.NextToken == nil {
		return ""
	}
	return *p.NextToken
}

// Next returns params for the following page, false when there is none.
func (p *Page[T]) Next(params Params) (Params, bool) {
	if p == nil || !p.HasMore || p.NextToken == nil {
		return params, false
	}
	params.NextToken = *p.NextToken
	return params, true
}

// PagingFunc fetches one page
type PagingFunc[T any] func(ctx context.Context, params Params) (*Page[T], error)

// Collect follows continuation tokens until the last page or until limit
// items were gathered. limit <= 0 means no limit.
func Collect[T any](ctx context.Context, params Params, limit int, fn PagingFunc[T]) ([]T, error) {
	params = NormalizeParams(params)
	items := make([]T, 0)
	seen := map[string]struct{}{}
	for {
		page, err := fn(ctx, params)
		if err != nil {
			return items, fmt.Errorf("pagination error: %w", err)
		}
		items = append(items, page.Result...)
		if limit > 0 && len(items) >= limit {
			return items[:limit], nil
		}
		next, ok := page.Next(params)
		if !ok {
			return items, nil
		}
		// a server echoing the same token would loop forever
		if _, dup := seen[next.NextToken]; dup {
			return items, nil
		}
		seen[next.NextToken] = struct{}{}
		params = next
	}
}
