package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/contract"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/metrics"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/repository"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/service"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

type apiFixture struct {
	srv  *httptest.Server
	repo repository.TaskRepo
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	uow := testutil.NewTestUoW(database)

	reg := prometheus.NewRegistry()
	prom, err := metrics.NewPromObserver(reg)
	require.NoError(t, err)

	n := 0
	backlog := service.NewBacklogService(repo, uow, prom)
	planner := service.NewPlannerService(repo, uow,
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithEventIDs(func() string { n++; return fmt.Sprintf("ev-%d", n) }),
		service.WithObservers(prom),
	)

	srv := httptest.NewServer(New(backlog, planner, WithGatherer(reg), WithLocation(time.UTC)).Handler())
	t.Cleanup(srv.Close)
	return apiFixture{srv: srv, repo: repo}
}

func (f apiFixture) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (f apiFixture) seed(t *testing.T, body string) []taskJSON {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[[]taskJSON](t, resp)
}

func TestTasks_SyncAndList(t *testing.T) {
	f := newAPI(t)

	stored := f.seed(t, `[
		{"id": "a", "name": "A", "priority": "high"},
		{"name": "B", "duration_minutes": 540, "priority": "low", "deadline": "2024-01-01"}
	]`)
	require.Len(t, stored, 2)
	assert.Equal(t, "a", stored[0].ID)
	assert.Equal(t, 60, stored[0].DurationMin)
	assert.NotEmpty(t, stored[1].ID)

	resp := f.do(t, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	listed := decode[[]taskJSON](t, resp)
	require.Len(t, listed, 2)
	assert.Equal(t, "B", listed[1].Name)
	assert.Equal(t, "2024-01-01", listed[1].Deadline)
}

func TestTasks_SyncAcceptsLegacyTaskName(t *testing.T) {
	f := newAPI(t)

	stored := f.seed(t, `[
		{"id": "old", "task_name": "From the old UI", "duration_minutes": 30},
		{"name": "both", "task_name": "ignored"}
	]`)
	require.Len(t, stored, 2)
	assert.Equal(t, "From the old UI", stored[0].Name)
	assert.Empty(t, stored[0].TaskName, "responses only carry name")
	assert.Equal(t, "both", stored[1].Name)

	got, err := f.repo.GetByID(context.Background(), "old")
	require.NoError(t, err)
	assert.Equal(t, "From the old UI", got.Name)
	assert.Equal(t, 30, got.DurationMin)
}

func TestTasks_EmptyListIsArray(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", strings.TrimSpace(readAll(t, resp)))
}

func TestTasks_SyncRejectsBadInput(t *testing.T) {
	f := newAPI(t)

	cases := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"object not array", `{"name": "x"}`},
		{"empty name", `[{"name": ""}]`},
		{"bad deadline", `[{"name": "x", "deadline": "next week"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, "/api/tasks", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, decode[errorJSON](t, resp).Error)
		})
	}
}

func TestTasks_Delete(t *testing.T) {
	f := newAPI(t)
	f.seed(t, `[{"id": "a", "name": "A"}, {"id": "b", "name": "B"}]`)

	resp := f.do(t, http.MethodDelete, "/api/tasks/a", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	tasks, err := f.repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].ID)

	resp = f.do(t, http.MethodDelete, "/api/tasks/a", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWeek(t *testing.T) {
	f := newAPI(t)
	f.seed(t, `[
		{"id": "A", "name": "A", "priority": "high"},
		{"id": "B", "name": "B", "duration_minutes": 540, "priority": "low", "deadline": "2024-01-01"}
	]`)

	resp := f.do(t, http.MethodGet, "/api/week", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decode[contract.WeekPlan](t, resp)

	require.Len(t, plan.Events, 2)
	assert.Equal(t, "B", plan.Events[0].TaskID)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), plan.Events[0].Start.UTC())
	assert.Equal(t, "A", plan.Events[1].TaskID)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), plan.Events[1].Start.UTC())
	assert.Len(t, plan.Days, 7)
}

func TestWeek_AnchorAndOffset(t *testing.T) {
	f := newAPI(t)
	f.seed(t, `[{"name": "only"}]`)

	resp := f.do(t, http.MethodGet, "/api/week?anchor=2024-03-14&offset=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decode[contract.WeekPlan](t, resp)
	assert.Equal(t, time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), plan.Anchor.UTC())

	for _, q := range []string{"?anchor=tomorrow", "?offset=two"} {
		resp := f.do(t, http.MethodGet, "/api/week"+q, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestExport(t *testing.T) {
	f := newAPI(t)
	f.seed(t, `[{"name": "Study"}, {"name": "Gym"}]`)

	resp := f.do(t, http.MethodGet, "/api/week/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/calendar; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="weekly_schedule_2024-01-01.ics"`, resp.Header.Get("Content-Disposition"))

	body := readAll(t, resp)
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
}

func TestEditEvent(t *testing.T) {
	f := newAPI(t)
	f.seed(t, `[{"id": "r", "name": "Report"}]`)

	resp := f.do(t, http.MethodPost, "/api/events/edit",
		`{"task_id": "r", "summary": "x", "start": "2024-01-03T09:00:00Z", "end": "2024-01-03T10:30:00Z"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[editResponse](t, resp).Applied)

	got, err := f.repo.GetByID(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, 90, got.DurationMin)
	assert.Equal(t, "Report", got.Name)
}

func TestEditEvent_Errors(t *testing.T) {
	f := newAPI(t)
	f.seed(t, `[{"id": "r", "name": "Report"}]`)

	resp := f.do(t, http.MethodPost, "/api/events/edit",
		`{"task_id": "r", "start": "2024-01-03T10:00:00Z", "end": "2024-01-03T09:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorJSON](t, resp).Error, "end must be after start")

	resp = f.do(t, http.MethodPost, "/api/events/edit",
		`{"task_id": "gone", "start": "2024-01-03T09:00:00Z", "end": "2024-01-03T10:00:00Z"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[editResponse](t, resp).Applied)

	resp = f.do(t, http.MethodPost, "/api/events/edit", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPI(t)
	f.do(t, http.MethodGet, "/api/week", "")

	resp := f.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readAll(t, resp)
	assert.Contains(t, body, `planner_use_case_total{success="true",use_case="week"} 1`)
	assert.Contains(t, body, "planner_overflow_events 0")
}

func TestUnknownRoute(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPut, "/api/tasks", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServe_StopsOnCancel(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTaskRepo(database)
	uow := testutil.NewTestUoW(database)
	s := New(service.NewBacklogService(repo, uow), service.NewPlannerService(repo, uow))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/tasks")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
