package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// fakeCalendar is an in-memory stand-in for the parts of the Calendar API
// the publisher touches.
type fakeCalendar struct {
	mu        sync.Mutex
	calendars []*calendar.CalendarListEntry
	pageSize  int
	listCalls int
	events    map[string]*calendar.Event
	nextID    int
	inserts   int
	patches   int
	fail      bool
}

func newFakeCalendar(t *testing.T) (*fakeCalendar, *calendar.Service) {
	t.Helper()
	fc := &fakeCalendar{events: map[string]*calendar.Event{}}
	srv := httptest.NewServer(fc)
	t.Cleanup(srv.Close)

	svc, err := calendar.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return fc, svc
}

// calendarPage serves f.calendars in pages of pageSize; the page token is
// the offset of the next page.
func (f *fakeCalendar) calendarPage(token string) *calendar.CalendarList {
	if f.pageSize <= 0 {
		return &calendar.CalendarList{Items: f.calendars}
	}
	offset := 0
	if token != "" {
		offset, _ = strconv.Atoi(token)
	}
	end := min(offset+f.pageSize, len(f.calendars))
	page := &calendar.CalendarList{Items: f.calendars[offset:end]}
	if end < len(f.calendars) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page
}

func (f *fakeCalendar) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.URL.Path == "/users/me/calendarList" && r.Method == http.MethodGet:
		f.listCalls++
		writeJSON(w, f.calendarPage(r.URL.Query().Get("pageToken")))

	case len(parts) == 3 && parts[0] == "calendars" && parts[2] == "events" && r.Method == http.MethodGet:
		var items []*calendar.Event
		want := r.URL.Query().Get("privateExtendedProperty")
		for _, ev := range f.events {
			if want == "" || matchesProperty(ev, want) {
				items = append(items, ev)
			}
		}
		writeJSON(w, &calendar.Events{Items: items})

	case len(parts) == 3 && parts[0] == "calendars" && parts[2] == "events" && r.Method == http.MethodPost:
		var ev calendar.Event
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.nextID++
		ev.Id = fmt.Sprintf("g%d", f.nextID)
		f.events[ev.Id] = &ev
		f.inserts++
		writeJSON(w, &ev)

	case len(parts) == 4 && parts[0] == "calendars" && parts[2] == "events" && r.Method == http.MethodPatch:
		ev, ok := f.events[parts[3]]
		if !ok {
			http.Error(w, `{"error":{"code":404,"message":"Not Found"}}`, http.StatusNotFound)
			return
		}
		var patch calendar.Event
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if patch.Summary != "" {
			ev.Summary = patch.Summary
		}
		if patch.Description != "" {
			ev.Description = patch.Description
		}
		if patch.ColorId != "" {
			ev.ColorId = patch.ColorId
		}
		if patch.Start != nil {
			ev.Start = patch.Start
		}
		if patch.End != nil {
			ev.End = patch.End
		}
		f.patches++
		writeJSON(w, ev)

	default:
		http.Error(w, `{"error":{"code":500,"message":"unexpected request"}}`, http.StatusInternalServerError)
	}
}

func matchesProperty(ev *calendar.Event, kv string) bool {
	k, v, _ := strings.Cut(kv, "=")
	if ev.ExtendedProperties == nil {
		return false
	}
	return ev.ExtendedProperties.Private[k] == v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
