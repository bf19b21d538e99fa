package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/cli/formatter"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage the backlog",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskRemoveCmd(app),
		newTaskImportCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var in taskInput
	var duration int

	cmd := &cobra.Command{
		Use:   "add [name...]",
		Short: "Append a task to the backlog",
		Example: `  planner task add "Write report" --duration 90 --priority high --deadline 2025-06-30
  planner task add            # opens a form on a terminal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.name == "" {
				in.name = strings.Join(args, " ")
			}
			if cmd.Flags().Changed("duration") {
				in.duration = strconv.Itoa(duration)
			}

			if strings.TrimSpace(in.name) == "" {
				if !app.interactive() {
					return fmt.Errorf("task name is required (pass it as an argument or --name)")
				}
				if err := app.runForm(taskForm(&in)); err != nil {
					return err
				}
			}

			task, err := in.toTask()
			if err != nil {
				return err
			}
			added, err := app.Backlog.Add(cmd.Context(), task)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%s, %s)\n",
				formatter.StyleGreen.Render("✔ Added"),
				formatter.Bold(added.Name),
				formatter.TruncID(added.ID),
				formatter.FormatMinutes(added.DurationMin),
				formatter.PriorityBadge(added.Priority),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.name, "name", "", "Task name")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (default 60)")
	cmd.Flags().StringVar(&in.priority, "priority", "", "high, medium or low (default medium)")
	cmd.Flags().StringVar(&in.deadline, "deadline", "", "Deadline (YYYY-MM-DD)")

	return cmd
}

func (in taskInput) toTask() (domain.Task, error) {
	if err := validatePriority(in.priority); err != nil {
		return domain.Task{}, err
	}
	t := domain.Task{
		Name:     strings.TrimSpace(in.name),
		Priority: domain.Priority(in.priority),
	}
	if in.duration != "" {
		if err := validatePositiveInt(in.duration); err != nil {
			return domain.Task{}, fmt.Errorf("duration: %w", err)
		}
		t.DurationMin, _ = strconv.Atoi(in.duration)
	}
	deadline, err := domain.ParseDeadline(in.deadline)
	if err != nil {
		return domain.Task{}, err
	}
	t.Deadline = deadline
	return t, nil
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the backlog in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Backlog.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, app.now()))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task by id or unique id prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Backlog.Delete(cmd.Context(), task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", formatter.Bold(task.Name), formatter.TruncID(task.ID))
			return nil
		},
	}
}

// resolveTask finds a task by exact id first, then by unique id prefix.
func resolveTask(ctx context.Context, app *App, input string) (domain.Task, error) {
	tasks, err := app.Backlog.List(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	for _, t := range tasks {
		if t.ID == input {
			return t, nil
		}
	}

	var matches []domain.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Task{}, fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return domain.Task{}, fmt.Errorf("task id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
