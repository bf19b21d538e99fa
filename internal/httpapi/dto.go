package httpapi

import (
	"fmt"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

type taskJSON struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	// TaskName is the legacy spelling of name; accepted on input only.
	TaskName      string     `json:"task_name,omitempty"`
	DurationMin   int        `json:"duration_minutes,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	Deadline      string     `json:"deadline,omitempty"`
	EarliestStart *time.Time `json:"earliest_start,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

func fromTask(t domain.Task) taskJSON {
	out := taskJSON{
		ID:            t.ID,
		Name:          t.Name,
		DurationMin:   t.DurationMin,
		Priority:      string(t.Priority),
		Deadline:      domain.FormatDeadline(t.Deadline),
		EarliestStart: t.EarliestStart,
	}
	if !t.CreatedAt.IsZero() {
		created := t.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

func (j taskJSON) toTask() (domain.Task, error) {
	name := j.Name
	if name == "" {
		name = j.TaskName
	}
	deadline, err := domain.ParseDeadline(j.Deadline)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %q: %w", name, err)
	}
	t := domain.Task{
		ID:            j.ID,
		Name:          name,
		DurationMin:   j.DurationMin,
		Priority:      domain.Priority(j.Priority),
		Deadline:      deadline,
		EarliestStart: j.EarliestStart,
	}
	if j.CreatedAt != nil {
		t.CreatedAt = *j.CreatedAt
	}
	return t, nil
}

func fromTasks(tasks []domain.Task) []taskJSON {
	out := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		out[i] = fromTask(t)
	}
	return out
}

type errorJSON struct {
	Error string `json:"error"`
}
