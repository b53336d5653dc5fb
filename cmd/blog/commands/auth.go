package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/ncobase/blogclient/view"
	"github.com/spf13/cobra"
)

func newLoginCommand(r *runtime) *cobra.Command {
	var username, password, newPassword, name string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Long:  `Sign in with a username or email. A first sign-in with a temporary password asks for a new password and a display name.`,
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			in := newPrompter(cmd)
			u, err := in.value("Username", username)
			if err != nil {
				return err
			}
			p, err := in.value("Password", password)
			if err != nil {
				return err
			}
			flow := view.NewLoginFlow(r.deps())
			if err := flow.Submit(ctx, u, p); err != nil {
				return err
			}
			if flow.State == view.StateChallenge {
				fmt.Fprintln(cmd.OutOrStdout(), "A new password is required.")
				np, err := in.value("New password", newPassword)
				if err != nil {
					return err
				}
				n, err := in.value("Display name", name)
				if err != nil {
					return err
				}
				if err := flow.SubmitChallenge(ctx, np, n); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", r.app.Session.User().DisplayName())
			return nil
		}),
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "new password when a change is required")
	cmd.Flags().StringVar(&name, "name", "", "display name when a password change is required")
	return cmd
}

func newLogoutCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out everywhere and forget the local session",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			err := r.app.Session.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return err
		}),
	}
}

func newWhoamiCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: r.run(func(_ context.Context, cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			u := r.app.Session.User()
			if u == nil {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}
			fmt.Fprintf(out, "%s (%s)\n", u.DisplayName(), u.Username)
			if u.Email != "" {
				fmt.Fprintf(out, "email:  %s\n", u.Email)
			}
			if len(u.Groups) > 0 {
				fmt.Fprintf(out, "groups: %s\n", strings.Join(u.Groups, ", "))
			}
			return nil
		}),
	}
}

func newRegisterCommand(r *runtime) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			in := newPrompter(cmd)
			e, err := in.value("Email", email)
			if err != nil {
				return err
			}
			p, err := in.value("Password", password)
			if err != nil {
				return err
			}
			n, err := in.value("Display name", name)
			if err != nil {
				return err
			}
			flow := view.NewRegisterFlow(r.deps())
			if err := flow.Submit(ctx, e, p, n); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flow.State == view.StateConfirm {
				fmt.Fprintf(out, "A confirmation code was sent to %s. Run: blog confirm --email %s --code <code>\n", e, e)
				return nil
			}
			fmt.Fprintln(out, "Account created. Run: blog login")
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

func newConfirmCommand(r *runtime) *cobra.Command {
	var email, code string
	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm a registration with the emailed code",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			in := newPrompter(cmd)
			e, err := in.value("Email", email)
			if err != nil {
				return err
			}
			c, err := in.value("Code", code)
			if err != nil {
				return err
			}
			flow := view.NewRegisterFlow(r.deps())
			flow.State, flow.Email = view.StateConfirm, e
			if err := flow.Confirm(ctx, c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account confirmed. Run: blog login")
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "email address used to register")
	cmd.Flags().StringVar(&code, "code", "", "confirmation code")
	return cmd
}
