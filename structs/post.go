package structs

import "time"

// Post statuses
const (
	PostStatusPublished = "PUBLISHED"
	PostStatusDraft     = "DRAFT"
)

// Post is a blog post as returned by the API.
type Post struct {
	PK           string    `json:"pk"`
	SK           string    `json:"sk"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ID returns the post id without its key prefix.
func (p *Post) ID() string { return ExtractPostID(p.PK) }

// OwnedBy reports whether username authored the post.
func (p *Post) OwnedBy(username string) bool {
	return username != "" && p.AuthorID == username
}

// CreatePostBody is the payload of POST /posts.
type CreatePostBody struct {
	Title        string `json:"title" validate:"notblank,max=300"`
	Content      string `json:"content" validate:"notblank"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// UpdatePostBody is the payload of PUT /posts/{id}.
// Nil fields are left unchanged by the server.
type UpdatePostBody struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,notblank,max=300"`
	Content      *string `json:"content,omitempty" validate:"omitempty,notblank"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=PUBLISHED DRAFT"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
}
