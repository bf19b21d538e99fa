package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ports "github.com/dubeymanas69-lgtm/ai-agent/internal/app"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/cli/formatter"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/contract"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

type weekKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Today  key.Binding
	Reload key.Binding
	Export key.Binding
	Up     key.Binding
	Down   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultWeekKeys() weekKeyMap {
	return weekKeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev week")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next week")),
		Today:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export .ics")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k weekKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Export, k.Help, k.Quit}
}

func (k weekKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today, k.Reload},
		{k.Up, k.Down, k.Export},
		{k.Help, k.Quit},
	}
}

type weekLoadedMsg struct {
	anchor time.Time
	plan   *contract.WeekPlan
	err    error
}

type exportDoneMsg struct {
	path  string
	count int
	err   error
}

// weekModel browses computed weeks. Every navigation recomputes from a
// fresh backlog snapshot.
type weekModel struct {
	app     *App
	weeks   ports.WeekUseCase
	exports ports.ExportUseCase

	anchor  time.Time
	plan    *contract.WeekPlan
	err     error
	status  string
	loading bool

	vp       viewport.Model
	keys     weekKeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

func newWeekModel(app *App, weeks ports.WeekUseCase, exports ports.ExportUseCase, anchor time.Time) weekModel {
	return weekModel{
		app:     app,
		weeks:   weeks,
		exports: exports,
		anchor:  anchor,
		loading: true,
		vp:      viewport.New(0, 0),
		keys:    defaultWeekKeys(),
		help:    help.New(),
	}
}

func (m weekModel) Init() tea.Cmd {
	return m.load()
}

func (m weekModel) load() tea.Cmd {
	anchor := m.anchor
	weeks := m.weeks
	return func() tea.Msg {
		plan, err := weeks.Week(context.Background(), contract.WeekRequest{Anchor: &anchor})
		return weekLoadedMsg{anchor: anchor, plan: plan, err: err}
	}
}

func (m weekModel) export() tea.Cmd {
	anchor := m.anchor
	exports := m.exports
	dir := m.app.Config.Export.Dir
	return func() tea.Msg {
		res, err := exports.Export(context.Background(), contract.WeekRequest{Anchor: &anchor})
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := writeExport(res, dir)
		return exportDoneMsg{path: path, count: res.EventCount, err: err}
	}
}

// navigate switches to another week and starts loading it.
func (m weekModel) navigate(anchor time.Time) (weekModel, tea.Cmd) {
	m.anchor = anchor
	m.loading = true
	m.status = ""
	return m, m.load()
}

func (m weekModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case weekLoadedMsg:
		if !msg.anchor.Equal(m.anchor) {
			return m, nil
		}
		m.loading = false
		m.plan, m.err = msg.plan, msg.err
		if m.plan != nil {
			m.vp.SetContent(formatter.FormatWeek(m.plan))
			m.vp.GotoTop()
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("export failed: " + msg.err.Error())
		} else {
			m.status = formatter.StyleGreen.Render(fmt.Sprintf("✔ exported %d events to %s", msg.count, msg.path))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			return m.navigate(domain.ShiftWeeks(m.anchor, -1))
		case key.Matches(msg, m.keys.Next):
			return m.navigate(domain.ShiftWeeks(m.anchor, 1))
		case key.Matches(msg, m.keys.Today):
			return m.navigate(domain.CurrentWeek(m.app.now().In(m.app.loc())))
		case key.Matches(msg, m.keys.Reload):
			return m.navigate(m.anchor)
		case key.Matches(msg, m.keys.Export):
			m.status = formatter.Dim("exporting…")
			return m, m.export()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// resize gives the viewport whatever the title and footer leave over.
func (m *weekModel) resize() {
	footer := lipgloss.Height(m.help.View(m.keys)) + 2
	m.vp.Width = m.width
	m.vp.Height = max(m.height-footer-2, 3)
}

func (m weekModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("Planner · week of %s", m.anchor.Format("Mon Jan 2, 2006"))
	if m.loading {
		title += formatter.Dim("  loading…")
	}
	b.WriteString(formatter.StyleHeader.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	case m.plan == nil:
		b.WriteString(formatter.Dim("Loading…"))
	case m.vp.Height == 0:
		b.WriteString(formatter.FormatWeek(m.plan))
	default:
		b.WriteString(m.vp.View())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
