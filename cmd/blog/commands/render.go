package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/helper"
	"github.com/ncobase/blogclient/structs"
	"github.com/ncobase/blogclient/view"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderCards(w io.Writer, cards []view.PostCard, withStatus bool) {
	tw := newTable(w)
	if withStatus {
		fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tUPDATED\tREAD")
	} else {
		fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tDATE\tREAD\tCOMMENTS")
	}
	for _, c := range cards {
		read := strconv.Itoa(c.ReadTime) + " min"
		if withStatus {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Post.Title, c.Post.Status, c.Ago, read)
			continue
		}
		comments := "-"
		if c.Comments != nil {
			comments = strconv.Itoa(*c.Comments)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Post.Title, c.Post.AuthorName, c.Date, read, comments)
	}
	_ = tw.Flush()
}

func renderPost(w io.Writer, p *structs.Post, readTime int) {
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "by %s · %s · %d min read", p.AuthorName, helper.FormatDate(p.CreatedAt), readTime)
	if p.Status == structs.PostStatusDraft {
		fmt.Fprint(w, " · draft")
	}
	fmt.Fprintln(w)
	if p.ThumbnailURL != "" {
		fmt.Fprintf(w, "thumbnail: %s\n", p.ThumbnailURL)
	}
	fmt.Fprintf(w, "\n%s\n", p.Content)
}

func renderComments(w io.Writer, comments []structs.Comment, now time.Time) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}
	fmt.Fprintf(w, "%d comment(s)\n", len(comments))
	for _, c := range comments {
		fmt.Fprintf(w, "- [%s] %s, %s: %s\n", c.ID(), c.AuthorName, helper.TimeAgo(c.CreatedAt, now), c.Content)
	}
}

// renderFields lists per-field validation messages.
func renderFields(w io.Writer, err error) {
	var e *ecode.Error
	if !errors.As(err, &e) || len(e.Fields) < 2 {
		return
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, e.Fields[k])
	}
}

// pageError turns the message a page shows into an error.
func pageError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}
