package cli

import (
	"errors"
	"fmt"
	"strings"

	"presskit-cli/internal/api"
	"presskit-cli/internal/config"
	"presskit-cli/internal/format"
	"presskit-cli/internal/session"
	"presskit-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	BaseURL string
	Pretty  bool
	Debug   bool

	client *api.Client
}

func NewRootCmd() *cobra.Command {
	config.LoadDotenv()
	app := &App{}

	cmd := &cobra.Command{
		Use:          "presskit",
		Short:        "ePaper publishing dashboard + CLI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Sign in, then start the interactive dashboard
  presskit login
  presskit

  # Scriptable commands
  presskit epapers list --status published
  presskit users list --pretty

  # Read today's paper in the terminal
  presskit view
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive dashboard.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runDashboard(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := session.Init(); err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "api", config.BaseURL(), "Backend API base URL")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", config.LogLevel() == "debug", "Log API requests")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newEpapersCmd(app))
	cmd.AddCommand(newViewCmd(app))

	return cmd
}

// Client builds the API client once per invocation. The token is read per
// request so login within the same process takes effect.
func (app *App) Client() *api.Client {
	if app.client == nil {
		var opts []api.Option
		if app.Debug {
			opts = append(opts, api.WithDebug())
		}
		app.client = api.New(strings.TrimRight(app.BaseURL, "/"), session.Token, opts...)
	}
	return app.client
}

func requireAuth() error {
	if !session.Current().Authenticated() {
		return errors.New("not signed in; run `presskit login`")
	}
	return nil
}

func runDashboard(app *App) error {
	if err := requireAuth(); err != nil {
		return err
	}
	return tui.RunDashboard(app.Client(), session.Current().User)
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), humanize(err))
	return err
}
