package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/contract"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/metrics"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/repository"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the backlog and planner over JSON.
type Server struct {
	backlog  service.BacklogService
	planner  service.PlannerService
	gatherer prometheus.Gatherer
	logger   zerolog.Logger
	loc      *time.Location
}

type Option func(*Server)

// WithGatherer selects the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithLocation sets the zone used to interpret ?anchor= dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) { s.loc = loc }
}

func New(backlog service.BacklogService, planner service.PlannerService, opts ...Option) *Server {
	s := &Server{
		backlog: backlog,
		planner: planner,
		logger:  zerolog.Nop(),
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", s.listTasks)
	mux.HandleFunc("POST /api/tasks", s.syncTasks)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	mux.HandleFunc("GET /api/week", s.week)
	mux.HandleFunc("GET /api/week/export", s.export)
	mux.HandleFunc("POST /api/events/edit", s.editEvent)
	mux.Handle("GET /metrics", metrics.Handler(s.gatherer))
	return s.logRequests(mux)
}

// Run serves on addr until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("shutdown http server")
		}
	}()

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("http api listening")
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.backlog.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fromTasks(tasks))
}

func (s *Server) syncTasks(w http.ResponseWriter, r *http.Request) {
	var body []taskJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorJSON{Error: "body must be a JSON array of tasks"})
		return
	}
	tasks := make([]domain.Task, 0, len(body))
	for _, j := range body {
		t, err := j.toTask()
		if err != nil {
			s.writeError(w, err)
			return
		}
		tasks = append(tasks, t)
	}
	stored, err := s.backlog.ReplaceAll(r.Context(), tasks)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fromTasks(stored))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.backlog.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) week(w http.ResponseWriter, r *http.Request) {
	req, err := s.weekRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorJSON{Error: err.Error()})
		return
	}
	plan, err := s.planner.Week(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	req, err := s.weekRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorJSON{Error: err.Error()})
		return
	}
	res, err := s.planner.Export(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Content))
}

type editResponse struct {
	Applied bool `json:"applied"`
}

func (s *Server) editEvent(w http.ResponseWriter, r *http.Request) {
	var req contract.EditEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorJSON{Error: "body must be {task_id, summary, start, end}"})
		return
	}
	applied, err := s.planner.EditEvent(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, editResponse{Applied: applied})
}

func (s *Server) weekRequest(r *http.Request) (contract.WeekRequest, error) {
	req := contract.NewWeekRequest()
	q := r.URL.Query()
	if v := q.Get("anchor"); v != "" {
		anchor, err := domain.ParseAnchor(v, s.loc)
		if err != nil {
			return req, err
		}
		req.Anchor = &anchor
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("offset must be an integer, got %q", v)
		}
		req.Offset = n
	}
	return req, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorJSON{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInterval), errors.Is(err, domain.ErrInvalidTask):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}
