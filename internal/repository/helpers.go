package repository

import (
	"database/sql"
	"time"
)

// legacyTimestampLayout matches created_at values written by the first
// version of the planner (naive ISO timestamps with microseconds).
const legacyTimestampLayout = "2006-01-02T15:04:05.999999"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// parseTimestamp accepts RFC3339 and the legacy naive layout, which is read
// as UTC. Unparseable values yield the zero time.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, legacyTimestampLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
