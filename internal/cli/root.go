// Package cli wires the command tree. The bare command starts the
// dashboard; subcommands cover the non-interactive paths.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/sadopc/kokpit/internal/config"
	"github.com/sadopc/kokpit/internal/lifecycle"
	"github.com/sadopc/kokpit/internal/store"
	"github.com/sadopc/kokpit/internal/tui"
	"github.com/sadopc/kokpit/internal/weather"
)

// App carries the wired dependencies into the commands.
type App struct {
	Store       *store.Store
	Service     *lifecycle.Service
	Weather     *weather.Client
	Config      config.Config
	Interactive bool
}

func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kokpit",
		Short:         "Personal cockpit for tasks, deadlines and focus sessions",
		Long:          "kokpit is a terminal dashboard: a daily task list, an opportunity radar,\nan application tracker, a focus timer and a weekly review in one place.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive {
				return errors.New("the dashboard needs an interactive terminal; try 'kokpit export'")
			}
			return tui.NewApp(app.Store, app.Service, app.Weather, app.Config).Run()
		},
	}

	cmd.AddCommand(newExportCmd(app))
	return cmd
}
