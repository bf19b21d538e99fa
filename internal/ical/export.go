package ical

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

// ProdID identifies this application in exported calendars.
const ProdID = "-//weekly-planner//EN"

const (
	timestampLayout = "20060102T150405Z"
	lineBreak       = "\r\n"
)

// Export renders events as an iCalendar document, one VEVENT per event in
// input order. Lines are joined with CRLF and all timestamps are UTC.
// SUMMARY text is written as-is.
func Export(events []domain.CalendarEvent, now time.Time) string {
	stamp := formatTime(now)

	lines := make([]string, 0, 3+7*len(events)+1)
	lines = append(lines, "BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:"+ProdID)
	for _, ev := range events {
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+ev.ID,
			"DTSTAMP:"+stamp,
			"DTSTART:"+formatTime(ev.Start),
			"DTEND:"+formatTime(ev.End),
			"SUMMARY:"+ev.Summary,
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, lineBreak)
}

// Write renders events to w.
func Write(w io.Writer, events []domain.CalendarEvent, now time.Time) error {
	if _, err := io.WriteString(w, Export(events, now)); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// Filename returns the conventional export filename for anchor's week.
func Filename(anchor time.Time) string {
	return "weekly_schedule_" + domain.WeekStart(anchor).Format(domain.DateLayout) + ".ics"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
