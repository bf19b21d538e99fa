package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	WorkdayStartHour = 9
	WorkdayEndHour   = 18
	DaysPerWeek      = 7

	// DayCapacityMin is the working capacity of a single day, in minutes.
	DayCapacityMin = (WorkdayEndHour - WorkdayStartHour) * 60
)

// WeekdayLabels holds the short day names in slot order.
var WeekdayLabels = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekStart returns midnight of the Monday of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// CurrentWeek returns the anchor of the week containing now.
func CurrentWeek(now time.Time) time.Time {
	return WeekStart(now)
}

// ShiftWeeks moves an anchor by n whole weeks.
func ShiftWeeks(anchor time.Time, n int) time.Time {
	return WeekStart(anchor).AddDate(0, 0, 7*n)
}

// ParseAnchor parses a YYYY-MM-DD date in loc and normalizes it to the
// Monday of its week.
func ParseAnchor(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing week anchor %q: use YYYY-MM-DD", s)
	}
	return WeekStart(d), nil
}

// DayIndex returns which day of the anchor's week t falls on (0 = Monday).
// Values outside 0..6 mean t lies outside the week.
func DayIndex(anchor, t time.Time) int {
	a := WeekStart(anchor)
	ty, tm, td := t.In(a.Location()).Date()
	day := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	ay, am, ad := a.Date()
	base := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(base).Hours() / 24)
}
