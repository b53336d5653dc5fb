package helper

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

// WordsPerMinute is the reading speed used by ReadTime.
const WordsPerMinute = 200

var (
	reFence    = regexp.MustCompile("(?s)```.*?```")
	reImage    = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	reLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reHeading  = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s*`)
	reQuote    = regexp.MustCompile(`(?m)^\s*>\s?`)
	reListItem = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	reRule     = regexp.MustCompile(`(?m)^\s*(?:-{3,}|\*{3,}|_{3,})\s*$`)
	reEmphasis = regexp.MustCompile("(\\*\\*|__|\\*|_|~~|`)")
	reSpace    = regexp.MustCompile(`\s+`)
)

// StripMarkdown reduces Markdown to plain preview text on one line.
func StripMarkdown(s string) string {
	s = reFence.ReplaceAllString(s, " ")
	s = reImage.ReplaceAllString(s, "$1")
	s = reLink.ReplaceAllString(s, "$1")
	s = reRule.ReplaceAllString(s, " ")
	s = reHeading.ReplaceAllString(s, "")
	s = reQuote.ReplaceAllString(s, "")
	s = reListItem.ReplaceAllString(s, "")
	s = reEmphasis.ReplaceAllString(s, "")
	return strings.TrimSpace(reSpace.ReplaceAllString(s, " "))
}

// Excerpt returns at most n characters of the plain text of s, cut at a
// word boundary when possible and marked with an ellipsis.
func Excerpt(s string, n int) string {
	text := StripMarkdown(s)
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}

// ReadTime estimates minutes to read content, at least one.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return max(1, minutes)
}

// Slug makes a file and URL safe name from a title.
func Slug(title string) string {
	s := slug.Make(title)
	if s == "" {
		return "untitled"
	}
	return s
}
