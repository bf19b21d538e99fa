package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

// FormatTaskList renders the backlog in stored order.
func FormatTaskList(tasks []domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("Backlog is empty. Add one with `planner task add`.")
	}

	headers := []string{"#", "ID", "NAME", "DURATION", "PRIORITY", "DEADLINE"}
	rows := make([][]string, 0, len(tasks))
	total := 0
	for i, t := range tasks {
		deadline := Dim("--")
		if t.Deadline != nil {
			deadline = DeadlineStyled(*t.Deadline, now)
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			TruncID(t.ID),
			t.Name,
			FormatMinutes(t.EffectiveDuration()),
			PriorityBadge(t.Priority),
			deadline,
		})
		total += t.EffectiveDuration()
	}

	var b strings.Builder
	b.WriteString(Header("Backlog"))
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows))
	b.WriteString(Dim(fmt.Sprintf("%d tasks, %s planned", len(tasks), FormatMinutes(total))))
	return b.String()
}
