package view

import (
	"context"
	"sync"

	"github.com/ncobase/blogclient/paging"
	"golang.org/x/sync/errgroup"
)

// countWorkers bounds concurrent comment count requests.
const countWorkers = 4

// Home is the public post list.
type Home struct {
	deps *Deps

	Loading   bool
	Posts     []PostCard
	HasMore   bool
	NextToken string
	Error     string
	// CanWrite shows the write affordances, signed-in users only.
	CanWrite bool
	PageSize int
}

// NewHome creates the home page in its loading state.
func NewHome(d *Deps, pageSize int) *Home {
	return &Home{deps: d, Loading: true, PageSize: pageSize}
}

// Load fetches the first page.
func (h *Home) Load(ctx context.Context) {
	h.Posts = nil
	h.load(ctx, "")
}

// More appends the next page. It reports false when there is none.
func (h *Home) More(ctx context.Context) bool {
	if !h.HasMore || h.NextToken == "" {
		return false
	}
	h.load(ctx, h.NextToken)
	return true
}

func (h *Home) load(ctx context.Context, token string) {
	h.Loading = true
	defer func() { h.Loading = false }()

	h.CanWrite = h.deps.user() != nil
	page, err := h.deps.API.Posts.List(ctx, paging.Params{Size: h.PageSize, NextToken: token})
	if err != nil {
		h.Error = message(ctx, "load posts", err)
		return
	}
	h.Error = ""
	now := h.deps.now()
	cards := make([]PostCard, 0, len(page.Result))
	for _, p := range page.Result {
		cards = append(cards, newCard(p, now))
	}
	h.countComments(ctx, cards)
	h.Posts = append(h.Posts, cards...)
	h.HasMore = page.HasMore
	h.NextToken = page.Token()
}

// countComments fills comment counts concurrently. A failed count is left
// unset; it never fails the page.
func (h *Home) countComments(ctx context.Context, cards []PostCard) {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countWorkers)
	for i := range cards {
		i := i
		g.Go(func() error {
			page, err := h.deps.API.Comments.ListByPost(gctx, cards[i].ID, paging.Params{Size: paging.MaxSize})
			if err != nil {
				return nil
			}
			n := len(page.Result)
			mu.Lock()
			cards[i].Comments = &n
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}
