package structs

import "strings"

// Key prefixes used by the single-table storage behind the API.
const (
	PostKeyPrefix    = "POST#"
	CommentKeyPrefix = "COMMENT#"
	UserKeyPrefix    = "USER#"
)

// ExtractPostID strips the POST# prefix. Ids without it are returned as is.
func ExtractPostID(pk string) string {
	return strings.TrimPrefix(pk, PostKeyPrefix)
}

// ExtractCommentID strips the COMMENT# prefix.
func ExtractCommentID(sk string) string {
	return strings.TrimPrefix(sk, CommentKeyPrefix)
}

// ExtractUserID strips the USER# prefix.
func ExtractUserID(pk string) string {
	return strings.TrimPrefix(pk, UserKeyPrefix)
}
