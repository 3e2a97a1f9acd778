package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"presskit-cli/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(app *App) *cobra.Command {
	var login string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if login == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Login: ")
				r := bufio.NewReader(cmd.InOrStdin())
				line, err := r.ReadString('\n')
				if err != nil {
					return writeErr(cmd, err)
				}
				login = strings.TrimSpace(line)
			}
			if login == "" {
				return writeErr(cmd, errors.New("login is required"))
			}

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				b, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return writeErr(cmd, err)
				}
				password = string(b)
			}
			if password == "" {
				return writeErr(cmd, errors.New("password is required"))
			}

			token, user, err := app.Client().Login(cmd.Context(), login, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			if token == "" {
				return writeErr(cmd, errors.New("backend returned no token"))
			}
			if err := session.SetCurrent(&session.Session{Token: token, User: user}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": user})
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login name (prompted when omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted without echo when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "signed out"})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.Current()
			if !s.Authenticated() {
				return writeErr(cmd, errors.New("not signed in"))
			}
			return writeOut(cmd, app, map[string]any{"data": s.User})
		},
	}
}
