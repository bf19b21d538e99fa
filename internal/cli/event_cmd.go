package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/cli/formatter"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/contract"
	"github.com/spf13/cobra"
)

var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func parseEventTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range eventTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD HH:MM or RFC 3339", s)
}

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Adjust placed events",
	}
	cmd.AddCommand(newEventEditCmd(app))
	return cmd
}

func newEventEditCmd(app *App) *cobra.Command {
	var taskRef, summary, start, end string

	cmd := &cobra.Command{
		Use:     "edit",
		Short:   "Move or resize a task's event; the new length becomes the task duration",
		Example: `  planner event edit --task 3f2a --start "2025-06-30 09:00" --end "2025-06-30 10:30"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := parseEventTime(start, app.loc())
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endAt, err := parseEventTime(end, app.loc())
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			taskID := taskRef
			if task, err := resolveTask(cmd.Context(), app, taskRef); err == nil {
				taskID = task.ID
			}

			applied, err := app.Planner.EditEvent(cmd.Context(), contract.EditEventRequest{
				TaskID:  taskID,
				Summary: summary,
				Start:   startAt,
				End:     endAt,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !applied {
				fmt.Fprintf(out, "%s task %s is no longer in the backlog; nothing changed\n",
					formatter.StyleYellow.Render("!"), taskRef)
				return nil
			}
			fmt.Fprintf(out, "%s duration %s, earliest start %s\n",
				formatter.StyleGreen.Render("✔ Updated"),
				formatter.FormatMinutes(int(endAt.Sub(startAt).Round(time.Minute)/time.Minute)),
				startAt.Format("Mon 2006-01-02 15:04"),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&taskRef, "task", "", "Task id or unique id prefix")
	cmd.Flags().StringVar(&summary, "summary", "", "New event summary (does not rename the task)")
	cmd.Flags().StringVar(&start, "start", "", "New start (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end (YYYY-MM-DD HH:MM)")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
