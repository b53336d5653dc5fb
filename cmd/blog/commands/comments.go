package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ncobase/blogclient/ecode"
	"github.com/spf13/cobra"
)

func newCommentsCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"c"},
		Short:   "Read and manage comments on a post",
		Args:    cobra.NoArgs,
	}
	cmd.AddCommand(
		newCommentsListCommand(r),
		newCommentsAddCommand(r),
		newCommentsEditCommand(r),
		newCommentsDeleteCommand(r),
	)
	return cmd
}

func newCommentsListCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list <post-id>",
		Short: "List the comments on a post",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			d, err := loadDetail(ctx, r, args[0])
			if err != nil {
				return err
			}
			if err := pageError(d.Error); err != nil {
				return err
			}
			renderComments(cmd.OutOrStdout(), d.Comments, time.Now())
			return nil
		}),
	}
}

func newCommentsAddCommand(r *runtime) *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "add <post-id>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if r.app.Session.User() == nil {
				return errSignInRequired
			}
			d, err := loadDetail(ctx, r, args[0])
			if err != nil {
				return err
			}
			if err := d.AddComment(ctx, content); err != nil {
				return err
			}
			c := d.Comments[len(d.Comments)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added comment %s\n", c.ID())
			return nil
		}),
	}
	cmd.Flags().StringVar(&content, "content", "", "comment text")
	return cmd
}

func newCommentsEditCommand(r *runtime) *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "edit <post-id> <comment-id>",
		Short: "Edit one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if r.app.Session.User() == nil {
				return errSignInRequired
			}
			d, err := loadDetail(ctx, r, args[0])
			if err != nil {
				return err
			}
			if err := d.EditComment(ctx, args[1], content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated comment %s\n", args[1])
			return nil
		}),
	}
	cmd.Flags().StringVar(&content, "content", "", "new comment text")
	return cmd
}

func newCommentsDeleteCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id> <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(2),
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if r.app.Session.User() == nil {
				return errSignInRequired
			}
			d, err := loadDetail(ctx, r, args[0])
			if err != nil {
				return err
			}
			for i := range d.Comments {
				if d.Comments[i].ID() == args[1] && !d.CanModifyComment(&d.Comments[i]) {
					return ecode.API(http.StatusForbidden, 0, "You can only delete your own comments")
				}
			}
			if err := d.DeleteComment(ctx, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %s\n", args[1])
			return nil
		}),
	}
}
