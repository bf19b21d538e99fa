package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/cli/formatter"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/contract"
	"github.com/spf13/cobra"
)

func newWeekCmd(app *App) *cobra.Command {
	var flags weekFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Lay the backlog out on a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(app)
			if err != nil {
				return err
			}
			plan, err := app.Planner.Week(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeek(plan))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var flags weekFlags
	var outDir string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the week as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(app)
			if err != nil {
				return err
			}
			res, err := app.Planner.Export(cmd.Context(), req)
			if err != nil {
				return err
			}

			if toStdout {
				_, err := fmt.Fprint(cmd.OutOrStdout(), res.Content)
				return err
			}

			dir := outDir
			if dir == "" {
				dir = app.Config.Export.Dir
			}
			path, err := writeExport(res, dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatExportResult(res, path))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write into (default export.dir)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the calendar instead of writing a file")

	return cmd
}

// writeExport saves an export under dir and returns the file path.
func writeExport(res *contract.ExportResult, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, res.Filename)
	if err := os.WriteFile(path, []byte(res.Content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
