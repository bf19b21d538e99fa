// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of a tea.Program, the driver calls Update directly and runs every
// returned Cmd inline until no messages remain. Cmds that block (timers,
// cursor blinks) are abandoned after a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds a single send may trigger.
const MaxDrainDepth = 100

// Cmds that do real work here (SQLite queries, file writes) return well
// inside this; timer-based Cmds do not.
const cmdTimeout = 50 * time.Millisecond

type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool
}

type Option func(*Driver)

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// DrainInit runs the model's Init Cmd to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send feeds msg through Update and drains whatever follows.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressKeyType(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.PressKeyType(tea.KeyCtrlC)
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.drain(next, depth+1)
	}
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor,
// which would otherwise chain into blocking timer Cmds.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
