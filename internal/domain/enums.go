package domain

import "strings"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"high": true, "medium": true, "low": true,
}

// ParsePriority maps free-form input onto a Priority. Matching is
// case-insensitive; anything unrecognized becomes medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Rank returns the sort rank of the priority (lower = more important).
func (p Priority) Rank() int {
	switch ParsePriority(string(p)) {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}
