package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/helper"
	"github.com/ncobase/blogclient/paging"
	"github.com/ncobase/blogclient/structs"
	"github.com/ncobase/blogclient/view"
	"github.com/spf13/cobra"
)

func newPostsCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"p"},
		Short:   "Read and manage posts",
		Args:    cobra.NoArgs,
	}
	cmd.AddCommand(
		newPostsListCommand(r),
		newPostsGetCommand(r),
		newPostsMineCommand(r),
		newPostsCreateCommand(r),
		newPostsEditCommand(r),
		newPostsDeleteCommand(r),
	)
	return cmd
}

func newPostsListCommand(r *runtime) *cobra.Command {
	var size int
	var token string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published posts",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			home := view.NewHome(r.deps(), size)
			if token != "" {
				home.HasMore, home.NextToken = true, token
				home.More(ctx)
			} else {
				home.Load(ctx)
			}
			if err := pageError(home.Error); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(home.Posts) == 0 {
				fmt.Fprintln(out, "No posts yet.")
				return nil
			}
			renderCards(out, home.Posts, false)
			if home.HasMore {
				fmt.Fprintf(out, "\nMore: blog posts list --size %d --token %s\n", size, home.NextToken)
			}
			return nil
		}),
	}
	cmd.Flags().IntVarP(&size, "size", "n", paging.DefaultSize, "posts per page")
	cmd.Flags().StringVar(&token, "token", "", "continuation token from a previous page")
	return cmd
}

func newPostsGetCommand(r *runtime) *cobra.Command {
	var saveDir string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a post and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			d, err := loadDetail(ctx, r, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if saveDir != "" {
				path, err := savePost(saveDir, d.Post)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %s\n", path)
				return nil
			}
			renderPost(out, d.Post, d.ReadTime)
			fmt.Fprintln(out)
			renderComments(out, d.Comments, time.Now())
			return pageError(d.Error)
		}),
	}
	cmd.Flags().StringVar(&saveDir, "save", "", "write the post as markdown into this directory")
	return cmd
}

// loadDetail loads a post page, failing when the post does not exist.
func loadDetail(ctx context.Context, r *runtime, id string) (*view.Detail, error) {
	d := view.NewDetail(r.deps(), id)
	d.Load(ctx)
	if d.NotFound {
		return nil, ecode.API(http.StatusNotFound, 0, ecode.NotExist("post"))
	}
	if d.Post == nil {
		return nil, pageError(d.Error)
	}
	return d, nil
}

func savePost(dir string, p *structs.Post) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, helper.Slug(p.Title)+".md")
	body := fmt.Sprintf("# %s\n\n%s\n", p.Title, p.Content)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func newPostsMineCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your posts, drafts included",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			b := view.NewDashboard(r.deps())
			if err := r.gate(b); err != nil {
				return err
			}
			b.Load(ctx)
			if err := pageError(b.Error); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d published, %d drafts\n", b.Published, b.Drafts)
			if len(b.Posts) > 0 {
				renderCards(out, b.Posts, true)
			}
			return nil
		}),
	}
}

type postFlags struct {
	title, content, file, thumbnail, status string
}

func (f *postFlags) bind(cmd *cobra.Command, withStatus bool) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "post title")
	cmd.Flags().StringVar(&f.content, "content", "", "markdown content")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "read markdown content from a file")
	cmd.Flags().StringVar(&f.thumbnail, "thumbnail", "", "thumbnail image to upload")
	if withStatus {
		cmd.Flags().StringVar(&f.status, "status", "", "PUBLISHED or DRAFT")
	}
}

// apply copies the flags the user set onto the editor.
func (f *postFlags) apply(cmd *cobra.Command, e *view.Editor) error {
	if cmd.Flags().Changed("title") {
		e.Title = f.title
	}
	if cmd.Flags().Changed("content") || f.file != "" {
		content, err := readContent(f.content, f.file)
		if err != nil {
			return err
		}
		e.Content = content
	}
	if f.status != "" {
		e.Status = f.status
	}
	if f.thumbnail != "" {
		img, err := readImage(f.thumbnail)
		if err != nil {
			return err
		}
		e.Thumbnail = img
	}
	return nil
}

func submit(ctx context.Context, cmd *cobra.Command, e *view.Editor, verb string) error {
	post, err := e.Submit(ctx)
	if err != nil {
		renderFields(cmd.ErrOrStderr(), err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s post %s\n", verb, post.ID())
	return nil
}

func newPostsCreateCommand(r *runtime) *cobra.Command {
	var f postFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new post",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			e := view.NewEditor(r.deps())
			if err := r.gate(e); err != nil {
				return err
			}
			if err := f.apply(cmd, e); err != nil {
				return err
			}
			return submit(ctx, cmd, e, "Created")
		}),
	}
	f.bind(cmd, false)
	return cmd
}

func newPostsEditCommand(r *runtime) *cobra.Command {
	var f postFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			e := view.NewEditor(r.deps())
			if err := r.gate(e); err != nil {
				return err
			}
			if err := e.Edit(ctx, args[0]); err != nil {
				return err
			}
			if err := f.apply(cmd, e); err != nil {
				return err
			}
			return submit(ctx, cmd, e, "Updated")
		}),
	}
	f.bind(cmd, true)
	return cmd
}

func newPostsDeleteCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if r.app.Session.User() == nil {
				return errSignInRequired
			}
			d, err := loadDetail(ctx, r, args[0])
			if err != nil {
				return err
			}
			if !d.CanDelete {
				return ecode.API(http.StatusForbidden, 0, "You can only delete your own posts")
			}
			if err := d.Delete(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %s\n", d.PostID)
			return nil
		}),
	}
}
