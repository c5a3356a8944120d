package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/taskboard/internal/config"
	"github.com/alexanderramin/taskboard/internal/service"
	"github.com/spf13/cobra"
)

// annotationStandalone marks commands that run without opening the board.
const annotationStandalone = "taskboard/standalone"

var errNotSignedIn = errors.New("not signed in: run 'taskboard login' first")

// App holds the services used by CLI commands.
type App struct {
	Board    service.TaskStore
	Activity service.ActivityFeed
	Auth     service.Authenticator
	Config   *config.Config

	// Bootstrap, when set, is called once flags are parsed to open storage
	// and populate the services from the resolved configuration.
	Bootstrap func(ctx context.Context, app *App) error

	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "taskboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskboard",
		Short:         "Kanban task board for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newTaskCmd(app),
		newBoardCmd(app),
		newLogCmd(app),
		newResetCmd(app),
		newProgressCmd(app),
		newConfigCmd(app),
	)

	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	if a.Bootstrap == nil {
		if a.Config == nil {
			a.Config = config.Default()
		}
		return nil
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return err
	}
	a.Config = cfg
	if cmd.Annotations[annotationStandalone] != "" {
		return nil
	}
	if err := a.Bootstrap(cmd.Context(), a); err != nil {
		return fmt.Errorf("opening board: %w", err)
	}
	return nil
}

// requireSession fails unless a user is signed in.
func requireSession(cmd *cobra.Command, app *App) error {
	if !app.Auth.IsAuthenticated(cmd.Context()) {
		return errNotSignedIn
	}
	return nil
}

func standalone() map[string]string {
	return map[string]string{annotationStandalone: "true"}
}
