package contract

import "github.com/dubeymanas69-lgtm/ai-agent/internal/app"

type WeekRequest = app.WeekRequest

func NewWeekRequest() WeekRequest {
	return app.NewWeekRequest()
}

type WeekPlan = app.WeekPlan

type DaySummary = app.DaySummary

type EventView = app.EventView

type ExportResult = app.ExportResult

type EditEventRequest = app.EditEventRequest

type PublishResult = app.PublishResult
