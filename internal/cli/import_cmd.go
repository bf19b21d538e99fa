package cli

import (
	"errors"
	"fmt"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/cli/formatter"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/importer"
	"github.com/spf13/cobra"
)

func newTaskImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Load tasks from a JSON file",
		Long: `Load tasks from a JSON file: either an array of tasks or {"tasks": [...]}.
Each task takes name (or task_name), duration_minutes, priority and deadline.
Imported tasks are appended to the backlog unless --replace is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := importer.LoadBacklogFile(args[0])
			if err != nil {
				return fmt.Errorf("loading import file: %w", err)
			}

			if errs := importer.ValidateBacklogFile(file); len(errs) > 0 {
				out := cmd.ErrOrStderr()
				fmt.Fprintln(out, formatter.StyleRed.Render("Validation errors:"))
				for _, e := range errs {
					fmt.Fprintf(out, "  • %s\n", e)
				}
				return fmt.Errorf("%w: %d validation error(s)", domain.ErrInvalidTask, len(errs))
			}

			imported, err := importer.Convert(file)
			if err != nil {
				return err
			}

			backlog := imported
			if !replace {
				existing, err := app.Backlog.List(cmd.Context())
				if err != nil {
					return err
				}
				backlog = append(existing, imported...)
			}

			stored, err := app.Backlog.ReplaceAll(cmd.Context(), backlog)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidTask) && !replace {
					return fmt.Errorf("%w (an imported id may already be in the backlog)", err)
				}
				return err
			}

			verb := "Appended"
			if replace {
				verb = "Replaced backlog with"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d task(s); backlog now holds %d\n",
				formatter.StyleGreen.Render("✔ "+verb), len(imported), len(stored))
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the whole backlog instead of appending")
	return cmd
}
