package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/config"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App holds the services and settings shared by CLI commands.
type App struct {
	Backlog service.BacklogService
	Planner service.PlannerService

	Config   config.Config
	Logger   zerolog.Logger
	Gatherer prometheus.Gatherer

	// Now and Location default to the wall clock and time.Local.
	Now      func() time.Time
	Location *time.Location

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// RunForm and RunTUI default to running against the terminal.
	RunForm func(*huh.Form) error
	RunTUI  func(tea.Model) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) loc() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

func (a *App) runTUI(m tea.Model) error {
	if a.RunTUI != nil {
		return a.RunTUI(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "planner" command. Run bare on a
// terminal it opens the week view; otherwise it prints help.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Weekly task planner",
		Long:          "Keep a task backlog and lay it out on a Monday-to-Sunday, 09:00-18:00 work week.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return app.runTUI(newWeekModel(app, app.Planner, app.Planner, weekFlags{}.anchor(app)))
		},
	}

	root.PersistentFlags().String("config", "", "Config file (default $PLANNER_CONFIG or ~/.planner/config.yaml)")

	root.AddCommand(
		newTaskCmd(app),
		newWeekCmd(app),
		newExportCmd(app),
		newEventCmd(app),
		newServeCmd(app),
		newGCalCmd(app),
		newTUICmd(app),
	)

	return root
}
