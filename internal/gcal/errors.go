package gcal

import "errors"

var (
	ErrCalendarNotFound = errors.New("calendar not found")
	ErrNotAuthorized    = errors.New("not authorized with Google Calendar; run `planner gcal auth`")
)
