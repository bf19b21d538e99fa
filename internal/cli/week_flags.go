package cli

import (
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/contract"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/spf13/cobra"
)

// weekFlags selects a week from --week and --anchor.
type weekFlags struct {
	offset int
	date   string
}

func (f *weekFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.offset, "week", 0, "Week offset from the current week (-1 last week, 1 next week)")
	cmd.Flags().StringVar(&f.date, "anchor", "", "Any date in the target week (YYYY-MM-DD)")
}

func (f weekFlags) request(app *App) (contract.WeekRequest, error) {
	req := contract.NewWeekRequest()
	req.Offset = f.offset
	if f.date != "" {
		anchor, err := domain.ParseAnchor(f.date, app.loc())
		if err != nil {
			return req, err
		}
		req.Anchor = &anchor
	}
	return req, nil
}

// anchor resolves the flags to a Monday against the app clock. Invalid
// dates fall back to the current week.
func (f weekFlags) anchor(app *App) time.Time {
	req, err := f.request(app)
	if err != nil {
		req = contract.NewWeekRequest()
		req.Offset = f.offset
	}
	return req.ResolveAnchor(app.now().In(app.loc()))
}
