package view

import (
	"time"

	"github.com/ncobase/blogclient/helper"
	"github.com/ncobase/blogclient/structs"
)

// ExcerptLength is the preview length on cards.
const ExcerptLength = 160

// PostCard is a post as shown in lists.
type PostCard struct {
	Post     structs.Post
	ID       string
	Excerpt  string
	ReadTime int
	Date     string
	Ago      string
	// Comments is nil when the count could not be loaded.
	Comments *int
}

func newCard(p structs.Post, now time.Time) PostCard {
	return PostCard{
		Post:     p,
		ID:       p.ID(),
		Excerpt:  helper.Excerpt(p.Content, ExcerptLength),
		ReadTime: helper.ReadTime(p.Content),
		Date:     helper.FormatDate(p.CreatedAt),
		Ago:      helper.TimeAgo(p.CreatedAt, now),
	}
}
