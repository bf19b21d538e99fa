package cli

import "github.com/charmbracelet/huh"

// taskInput collects the raw strings of a new task.
type taskInput struct {
	name     string
	duration string
	priority string
	deadline string
}

func taskForm(in *taskInput) *huh.Form {
	if in.priority == "" {
		in.priority = "medium"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("Study physics").
				Value(&in.name).
				Validate(validateRequired),
			durationInput(&in.duration),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High", "high"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("Low", "low"),
				).
				Value(&in.priority),
			dateInput("Deadline (YYYY-MM-DD, blank for none)", &in.deadline),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}

func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

func durationInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Duration (minutes)").
		Placeholder("60").
		Value(value).
		Validate(validatePositiveInt)
}
