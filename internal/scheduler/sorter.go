package scheduler

import (
	"sort"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

// RankTasks returns a copy of tasks in placement order:
// 1. Deadline: earliest first (nil last)
// 2. Priority: high > medium > low (unknown counts as medium)
// 3. Duration: shortest first (invalid counts as 60)
// Remaining ties keep backlog order.
func RankTasks(tasks []domain.Task) []domain.Task {
	ranked := make([]domain.Task, len(tasks))
	copy(ranked, tasks)
	sort.SliceStable(ranked, func(i, j int) bool {
		return compareTasks(ranked[i], ranked[j]) < 0
	})
	return ranked
}

func compareTasks(a, b domain.Task) int {
	// 1. Deadline (earliest first, nil last)
	if a.HasDeadline() != b.HasDeadline() {
		if a.HasDeadline() {
			return -1
		}
		return 1
	}
	if a.HasDeadline() && b.HasDeadline() {
		da, db := domain.DateOnly(*a.Deadline), domain.DateOnly(*b.Deadline)
		if !da.Equal(db) {
			if da.Before(db) {
				return -1
			}
			return 1
		}
	}

	// 2. Priority
	if pa, pb := a.EffectivePriority().Rank(), b.EffectivePriority().Rank(); pa != pb {
		return pa - pb
	}

	// 3. Duration (shorter first)
	return a.EffectiveDuration() - b.EffectiveDuration()
}
