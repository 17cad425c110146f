package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sadopc/kokpit/internal/export"
	"github.com/sadopc/kokpit/internal/store"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump todos, events and applications to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := collectSnapshot(app.Store)
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("kokpit-export-%s.%s", time.Now().Format("20060102"), format)
			}

			switch format {
			case "csv":
				err = export.ToCSV(snap, out)
			case "json":
				err = export.ToJSON(snap, out)
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d todos, %d events, %d applications to %s\n",
				len(snap.Todos), len(snap.Events), len(snap.Applications), out)
			return nil
		},
	}

	bindExportFlags(cmd.Flags(), &format, &out)
	return cmd
}

func bindExportFlags(fs *pflag.FlagSet, format, out *string) {
	fs.StringVarP(format, "format", "f", "csv", "output format: csv or json")
	fs.StringVarP(out, "out", "o", "", "output path (default kokpit-export-<date>.<format>)")
}

func collectSnapshot(st *store.Store) (export.Snapshot, error) {
	todos, err := st.ListTodos()
	if err != nil {
		return export.Snapshot{}, err
	}
	events, err := st.ListEvents(store.EventFilter{})
	if err != nil {
		return export.Snapshot{}, err
	}
	apps, err := st.ListApplications()
	if err != nil {
		return export.Snapshot{}, err
	}
	return export.Snapshot{Todos: todos, Events: events, Applications: apps}, nil
}
