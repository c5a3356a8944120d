package cli

import (
	"fmt"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var fields loginFields

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("remember") {
				if remembered, ok := app.Auth.RememberedEmail(ctx); ok {
					fields.Remember = true
					if fields.Email == "" {
						fields.Email = remembered
					}
				}
			}

			if (fields.Email == "" || fields.Password == "") && app.interactive() {
				if err := loginForm(&fields).Run(); err != nil {
					return err
				}
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Signing in...")
			}
			err := app.Auth.Login(ctx, fields.Email, fields.Password, fields.Remember)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", formatter.Bold(app.Auth.CurrentEmail(ctx)))
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&fields.Password, "password", "", "Account password")
	cmd.Flags().BoolVar(&fields.Remember, "remember", false, "Remember the email for the next sign-in")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Auth.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Auth.CurrentEmail(cmd.Context()))
			return nil
		},
	}
}
