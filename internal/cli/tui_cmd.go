package cli

import "github.com/spf13/cobra"

func newTUICmd(app *App) *cobra.Command {
	var flags weekFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse weeks interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := flags.request(app); err != nil {
				return err
			}
			return app.runTUI(newWeekModel(app, app.Planner, app.Planner, flags.anchor(app)))
		},
	}

	flags.bind(cmd)
	return cmd
}
