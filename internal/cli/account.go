package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laundrydesk/laundrydesk/internal/model"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account and session commands",
	}

	cmd.AddCommand(newAccountSignupCmd())
	cmd.AddCommand(newAccountLoginCmd())
	cmd.AddCommand(newAccountLogoutCmd())
	cmd.AddCommand(newAccountWhoamiCmd())
	cmd.AddCommand(newAccountUpdateCmd())

	return cmd
}

func newAccountSignupCmd() *cobra.Command {
	var email, pass, name string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.SessionService.Signup(cmd.Context(), email, pass, name)
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(accountView(account))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountLoginCmd() *cobra.Command {
	var email, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := app.SessionService.Login(cmd.Context(), email, pass)
			if err != nil {
				return err
			}

			out := NewOutput(output)
			out.Print(accountView(account))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAccountLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.SessionService.Logout(cmd.Context()); err != nil {
				return err
			}

			out := NewOutput(output)
			out.PrintMessage("Signed out")
			return nil
		},
	}
}

func newAccountWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			account := app.SessionService.Current()
			if account == nil {
				return fmt.Errorf("not signed in")
			}

			out := NewOutput(output)
			out.Print(accountView(account))
			return nil
		},
	}
}

func newAccountUpdateCmd() *cobra.Command {
	var name, avatar string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields of the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var update model.ProfileUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("avatar") {
				update.Avatar = &avatar
			}

			account, err := app.SessionService.UpdateProfile(cmd.Context(), update)
			if err != nil {
				return err
			}
			if account == nil {
				return fmt.Errorf("not signed in")
			}

			out := NewOutput(output)
			out.Print(accountView(account))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "New avatar URI")

	return cmd
}
