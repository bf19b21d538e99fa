package importer

import (
	"strings"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

// Convert transforms a validated BacklogFile into tasks in file order.
// Call ValidateBacklogFile first; Convert assumes the file is valid.
// IDs and creation times are left for the backlog service to assign.
func Convert(file *BacklogFile) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(file.Tasks))
	for _, t := range file.Tasks {
		task := domain.Task{
			ID:       t.ID,
			Name:     strings.TrimSpace(t.Title()),
			Priority: domain.Priority(strings.TrimSpace(t.Priority)),
		}
		if t.DurationMin != nil {
			task.DurationMin = *t.DurationMin
		}
		if t.Deadline != nil {
			d, err := domain.ParseDeadline(*t.Deadline)
			if err != nil {
				return nil, err
			}
			task.Deadline = d
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
