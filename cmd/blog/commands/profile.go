package commands

import (
	"context"
	"fmt"

	"github.com/ncobase/blogclient/helper"
	"github.com/ncobase/blogclient/view"
	"github.com/spf13/cobra"
)

func newProfileCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your profile",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show your profile",
			Args:  cobra.NoArgs,
			RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
				p := view.NewProfile(r.deps())
				if err := r.gate(p); err != nil {
					return err
				}
				p.Load(ctx)
				if err := pageError(p.Error); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", p.User.DisplayName(), p.User.Username)
				if p.Missing {
					fmt.Fprintln(out, "No profile has been created yet.")
					return nil
				}
				fmt.Fprintf(out, "email:   %s\n", p.Profile.Email)
				fmt.Fprintf(out, "role:    %s\n", p.Profile.Role)
				fmt.Fprintf(out, "joined:  %s\n", helper.FormatDate(p.Profile.CreatedAt))
				if p.Profile.AvatarURL != "" {
					fmt.Fprintf(out, "avatar:  %s\n", p.Profile.AvatarURL)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "avatar <image>",
			Short: "Upload a new avatar",
			Args:  cobra.ExactArgs(1),
			RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
				p := view.NewProfile(r.deps())
				if err := r.gate(p); err != nil {
					return err
				}
				img, err := readImage(args[0])
				if err != nil {
					return err
				}
				if err := p.UpdateAvatar(ctx, img); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Avatar updated (%s): %s\n", helper.Bytes(img.Size()), p.Profile.AvatarURL)
				return nil
			}),
		},
	)
	return cmd
}
