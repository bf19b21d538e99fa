package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

var validPriorities = map[string]bool{"": true, "high": true, "medium": true, "low": true}

// ValidateBacklogFile checks the import file for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateBacklogFile(file *BacklogFile) []error {
	var errs []error

	if len(file.Tasks) == 0 {
		return append(errs, fmt.Errorf("import file contains no tasks"))
	}

	ids := make(map[string]int)
	for i, t := range file.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if strings.TrimSpace(t.Title()) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.DurationMin != nil && *t.DurationMin < 0 {
			errs = append(errs, fmt.Errorf("%s.duration_minutes must be >= 0, got %d", prefix, *t.DurationMin))
		}
		if !validPriorities[strings.ToLower(strings.TrimSpace(t.Priority))] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, t.Priority))
		}
		if t.Deadline != nil && *t.Deadline != "" {
			if _, err := time.Parse(domain.DateLayout, *t.Deadline); err != nil {
				errs = append(errs, fmt.Errorf("%s.deadline: invalid date format %q (expected YYYY-MM-DD)", prefix, *t.Deadline))
			}
		}
		if t.ID != "" {
			if first, dup := ids[t.ID]; dup {
				errs = append(errs, fmt.Errorf("%s.id %q duplicates tasks[%d]", prefix, t.ID, first))
			} else {
				ids[t.ID] = i
			}
		}
	}

	return errs
}
