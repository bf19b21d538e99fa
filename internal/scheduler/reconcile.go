package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

// EventEdit is a user's direct change to a placed event.
type EventEdit struct {
	TaskID  string
	Summary string
	Start   time.Time
	End     time.Time
}

// Reconcile folds an event edit back into the backlog. It returns a new
// backlog slice with the originating task's duration set to the edited
// length (rounded to whole minutes) and its earliest start set to the
// edited start. The input slice is never modified.
//
// The edited summary is not written to the task name. An edit whose task
// is no longer in the backlog is dropped: the copy comes back unchanged
// with applied=false.
func Reconcile(backlog []domain.Task, edit EventEdit) ([]domain.Task, bool, error) {
	if !edit.End.After(edit.Start) {
		return nil, false, fmt.Errorf("editing task %s: %w", edit.TaskID, domain.ErrInvalidInterval)
	}

	out := make([]domain.Task, len(backlog))
	copy(out, backlog)

	for i := range out {
		if out[i].ID != edit.TaskID {
			continue
		}
		start := edit.Start
		out[i].DurationMin = roundMinutes(edit.End.Sub(edit.Start))
		out[i].EarliestStart = &start
		return out, true, nil
	}
	return out, false, nil
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
