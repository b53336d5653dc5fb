package view

import (
	"context"
	"slices"

	"github.com/ncobase/blogclient/paging"
	"github.com/ncobase/blogclient/session"
	"github.com/ncobase/blogclient/structs"
)

// Dashboard lists the signed-in user's own posts.
type Dashboard struct {
	deps *Deps

	Loading   bool
	Posts     []PostCard
	Published int
	Drafts    int
	Error     string
}

// NewDashboard creates the dashboard in its loading state.
func NewDashboard(d *Deps) *Dashboard {
	return &Dashboard{deps: d, Loading: true}
}

// Access gates the dashboard behind a session.
func (b *Dashboard) Access() session.Access { return b.deps.Session.Gate() }

// Load fetches every post of the user.
func (b *Dashboard) Load(ctx context.Context) {
	b.Loading = true
	defer func() { b.Loading = false }()

	posts, err := paging.Collect[structs.Post](ctx, paging.Params{Size: paging.MaxSize}, 0, b.deps.API.Posts.Mine)
	if err != nil {
		b.Error = message(ctx, "load your posts", err)
		return
	}
	b.Error = ""
	now := b.deps.now()
	b.Posts = make([]PostCard, 0, len(posts))
	for _, p := range posts {
		b.Posts = append(b.Posts, newCard(p, now))
	}
	b.tally()
}

// Delete removes one of the user's posts.
func (b *Dashboard) Delete(ctx context.Context, id string) error {
	id = structs.ExtractPostID(id)
	if err := b.deps.API.Posts.Delete(ctx, id); err != nil {
		b.Error = message(ctx, "delete post", err)
		return err
	}
	b.Error = ""
	b.Posts = slices.DeleteFunc(b.Posts, func(c PostCard) bool { return c.ID == id })
	b.tally()
	return nil
}

func (b *Dashboard) tally() {
	b.Published, b.Drafts = 0, 0
	for _, c := range b.Posts {
		if c.Post.Status == structs.PostStatusDraft {
			b.Drafts++
		} else {
			b.Published++
		}
	}
}
