package structs

import "time"

// Comment is a comment on a post.
type Comment struct {
	PK           string    `json:"pk"`
	SK           string    `json:"sk"`
	PostID       string    `json:"postId"`
	Content      string    `json:"content"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ID returns the comment id without its key prefix.
func (c *Comment) ID() string { return ExtractCommentID(c.SK) }

// OwnedBy reports whether username authored the comment.
func (c *Comment) OwnedBy(username string) bool {
	return username != "" && c.AuthorID == username
}

// CreateCommentBody is the payload of POST /comments. The post fields let
// the backend notify the post author.
type CreateCommentBody struct {
	PostID         string `json:"postId" validate:"notblank"`
	Content        string `json:"content" validate:"notblank,max=2000"`
	PostTitle      string `json:"postTitle"`
	PostAuthorID   string `json:"postAuthorId"`
	PostAuthorName string `json:"postAuthorName"`
}

// NewCreateCommentBody fills the notification fields from the post.
func NewCreateCommentBody(post *Post, content string) *CreateCommentBody {
	return &CreateCommentBody{
		PostID:         post.ID(),
		Content:        content,
		PostTitle:      post.Title,
		PostAuthorID:   post.AuthorID,
		PostAuthorName: post.AuthorName,
	}
}

// UpdateCommentBody is the payload of PUT /comments/post/{postId}/{commentId}.
type UpdateCommentBody struct {
	Content string `json:"content" validate:"notblank,max=2000"`
}
