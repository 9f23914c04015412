package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/erauner12/storefront/internal/account"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var in account.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with email and password.

When --email is omitted the remembered email is used. When --password is
omitted it is read from the first line of standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if in.Email == "" {
				if email, ok := a.session.RememberedEmail(ctx); ok {
					in.Email = email
					in.RememberMe = in.RememberMe || !cmd.Flags().Changed("remember")
				}
			}
			if in.Password == "" {
				in.Password = readLine(cmd.InOrStdin())
			}

			if err := a.accounts.Login(ctx, in); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", a.session.Username())
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password")
	cmd.Flags().BoolVar(&in.RememberMe, "remember", false, "Remember the email for the next login")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var in account.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("confirm-password") {
				in.ConfirmPassword = in.Password
			}

			if err := a.accounts.Register(cmd.Context(), in); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account created. Signed in as %s\n", a.session.Username())
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm-password", "", "Password confirmation (defaults to --password)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Logout(cmd.Context()); err != nil {
				return err
			}
			a.cart.Reset()

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			id := a.session.Identity()
			if id.Token == "" {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}

			fmt.Fprintf(out, "Username: %s\n", id.Username)
			if id.UserID != "" {
				fmt.Fprintf(out, "User ID:  %s\n", id.UserID)
			}
			return nil
		},
	}
}

func readLine(r io.Reader) string {
	line, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
