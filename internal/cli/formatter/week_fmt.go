package formatter

import (
	"fmt"
	"strings"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/contract"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

const usageBarWidth = 18

// FormatWeek renders a computed week day by day, followed by any overflow.
func FormatWeek(plan *contract.WeekPlan) string {
	var b strings.Builder

	last := plan.Anchor.AddDate(0, 0, domain.DaysPerWeek-1)
	b.WriteString(Header(fmt.Sprintf("Week of %s → %s",
		plan.Anchor.Format(domain.DateLayout), last.Format(domain.DateLayout))))
	b.WriteString("\n")

	byDay := make([][]contract.EventView, domain.DaysPerWeek)
	var overflow []contract.EventView
	for _, ev := range plan.Events {
		if ev.Overflow || ev.Day < 0 || ev.Day >= domain.DaysPerWeek {
			overflow = append(overflow, ev)
			continue
		}
		byDay[ev.Day] = append(byDay[ev.Day], ev)
	}

	for i, day := range plan.Days {
		fmt.Fprintf(&b, "%s %s  %s %s\n",
			Bold(day.Label),
			Dim(day.Date),
			RenderUsage(day.UsedMin, domain.DayCapacityMin, usageBarWidth),
			Dim(fmt.Sprintf("%s booked, %s free", FormatMinutes(day.UsedMin), FormatMinutes(day.RemainingMin))),
		)
		for _, ev := range byDay[i] {
			b.WriteString("  " + formatEventLine(ev, false) + "\n")
		}
	}

	if len(overflow) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render(fmt.Sprintf("OVERFLOW (%d)", len(overflow))))
		b.WriteString(Dim("  did not fit 09:00-18:00 this week"))
		b.WriteString("\n")
		for _, ev := range overflow {
			b.WriteString("  " + formatEventLine(ev, true) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d tasks, %d events, %d overflow", plan.TaskCount, len(plan.Events), plan.OverflowCount)))
	return b.String()
}

func formatEventLine(ev contract.EventView, withDay bool) string {
	span := ev.Start.Format("15:04") + "-" + ev.End.Format("15:04")
	if withDay {
		span = ev.Start.Format("Mon 02 15:04") + " → " + ev.End.Format("Mon 02 15:04")
	}
	return fmt.Sprintf("%s  %s %s %s",
		StyleBlue.Render(span),
		PriorityStyle(ev.Priority).Render("●"),
		ev.Summary,
		Dim(FormatMinutes(ev.DurationMin)+"  "+ev.TaskID[:min(8, len(ev.TaskID))]),
	)
}

// FormatExportResult reports where a week's calendar was written.
func FormatExportResult(res *contract.ExportResult, path string) string {
	return fmt.Sprintf("%s %d events for the week of %s → %s",
		StyleGreen.Render("✔ Exported"),
		res.EventCount,
		res.Anchor.Format(domain.DateLayout),
		Bold(path),
	)
}

// FormatPublishResult summarizes a calendar sync.
func FormatPublishResult(res *contract.PublishResult) string {
	return fmt.Sprintf("%s to %s: %d created, %d updated, %d unchanged",
		StyleGreen.Render("✔ Published"),
		Bold(res.Calendar),
		res.Created, res.Updated, res.Unchanged,
	)
}
