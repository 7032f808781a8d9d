package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedash/internal/domain"
	"github.com/kailas-cloud/dinedash/internal/domain/query"
	logpkg "github.com/kailas-cloud/dinedash/internal/logger"
	"github.com/kailas-cloud/dinedash/internal/render"
	"github.com/kailas-cloud/dinedash/internal/usecase/dialog"
	"github.com/kailas-cloud/dinedash/internal/usecase/health"
	"github.com/kailas-cloud/dinedash/internal/usecase/session"
	viewuc "github.com/kailas-cloud/dinedash/internal/usecase/view"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) health.Report
}

// Server serves the dashboard API and the server-rendered page.
type Server struct {
	views         *viewuc.Service
	sessions      *session.Manager
	health        HealthChecker
	topLimit      int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	views *viewuc.Service,
	sessions *session.Manager,
	checker HealthChecker,
	topLimit int,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		views:    views,
		sessions: sessions,
		health:   checker,
		topLimit: topLimit,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		queryFieldHandler,
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, ErrorCodeSessionNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrStoreNotLoaded, http.StatusServiceUnavailable, ErrorCodeRecordsUnavailable),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/", s.Dashboard)

	r.Route("/api/v1", func(r gochi.Router) {
		r.Get("/restaurants", s.ListRestaurants)
		r.Get("/aggregates", s.GetAggregates)
		r.Get("/categories", s.ListCategories)
		r.Get("/cities", s.ListCities)

		r.Post("/sessions", s.CreateSession)
		r.Route("/sessions/{id}", func(r gochi.Router) {
			r.Use(s.sessionRecoverer)
			r.Delete("/", s.DeleteSession)
			r.Get("/view", s.GetSessionView)
			r.Put("/filters/{field}", s.SetSessionFilter)
			r.Put("/search", s.TypeSessionSearch)
			r.Post("/reload", s.ReloadSession)

			r.Get("/dialogs", s.GetDialogs)
			r.Post("/dialogs/dismiss", s.DismissDialog)
			r.Post("/dialogs/outside", s.ActivateOutside)
			r.Post("/dialogs/force-close", s.ForceCloseDialogs)
			r.Post("/dialogs/{dialog}/open", s.OpenDialog)
			r.Post("/dialogs/{dialog}/close", s.CloseDialog)
		})
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	status := http.StatusOK
	if report.Status == health.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Dashboard handles GET /: the page for the query in the query string.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	q, err := bindQuery(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	d := render.Build(render.Input{
		Query:      q,
		Result:     s.views.Compute(r.Context(), q),
		Aggregates: s.views.Aggregates(),
		TopLimit:   s.topLimit,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, d); err != nil {
		logpkg.FromContext(r.Context()).Error("render page", zap.Error(err))
	}
}

// ListRestaurants handles GET /api/v1/restaurants.
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	q, err := bindQuery(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurantsResponse(s.views.Compute(r.Context(), q)))
}

// GetAggregates handles GET /api/v1/aggregates.
func (s *Server) GetAggregates(w http.ResponseWriter, _ *http.Request) {
	aggs := s.views.Aggregates()
	writeJSON(w, http.StatusOK, AggregatesResponse{
		TopByCategory: render.Top(aggs.TopByCategory, s.limit()),
		AwardWinners:  render.AwardEntries(aggs.AwardWinners),
		Closed:        render.ClosedEntries(aggs.Closed),
	})
}

// ListCategories handles GET /api/v1/categories.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ListResponse{Items: s.views.Aggregates().Categories})
}

// ListCities handles GET /api/v1/cities.
func (s *Server) ListCities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ListResponse{Items: s.views.Aggregates().Cities})
}

// CreateSession handles POST /api/v1/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, SessionResponse{ID: sess.ID()})
}

// DeleteSession handles DELETE /api/v1/sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(gochi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSessionView handles GET /api/v1/sessions/{id}/view.
func (s *Server) GetSessionView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	snap := sess.View(r.Context())
	writeJSON(w, http.StatusOK, render.Build(render.Input{
		SessionID:    snap.ID,
		Query:        snap.Query,
		Result:       snap.Result,
		Aggregates:   s.views.Aggregates(),
		Dialogs:      snap.Dialogs,
		ScrollLocked: snap.ScrollLocked,
		Selected:     snap.Selected,
		TopLimit:     s.topLimit,
	}))
}

// SetSessionFilter handles PUT /api/v1/sessions/{id}/filters/{field}.
func (s *Server) SetSessionFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req ValueRequest
	if !decodeBody(w, r, &req, true) {
		return
	}
	if err := sess.SetFilter(query.Field(gochi.URLParam(r, "field")), req.Value); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, render.NewQueryModel(sess.Query()))
}

// TypeSessionSearch handles PUT /api/v1/sessions/{id}/search. The value is
// applied once typing has been quiet for the debounce window.
func (s *Server) TypeSessionSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req ValueRequest
	if !decodeBody(w, r, &req, true) {
		return
	}
	sess.TypeSearch(req.Value)
	writeJSON(w, http.StatusAccepted, SearchResponse{Pending: req.Value})
}

// ReloadSession handles POST /api/v1/sessions/{id}/reload.
func (s *Server) ReloadSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Remount()
	s.writeDialogs(w, sess)
}

// GetDialogs handles GET /api/v1/sessions/{id}/dialogs.
func (s *Server) GetDialogs(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeDialogs(w, sess)
}

// OpenDialog handles POST /api/v1/sessions/{id}/dialogs/{dialog}/open.
func (s *Server) OpenDialog(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req OpenDialogRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	if err := sess.OpenDialog(gochi.URLParam(r, "dialog"), req.Restaurant); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.writeDialogs(w, sess)
}

// CloseDialog handles POST /api/v1/sessions/{id}/dialogs/{dialog}/close.
func (s *Server) CloseDialog(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.CloseDialog(gochi.URLParam(r, "dialog"))
	s.writeDialogs(w, sess)
}

// DismissDialog handles POST /api/v1/sessions/{id}/dialogs/dismiss.
func (s *Server) DismissDialog(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Dismiss()
	s.writeDialogs(w, sess)
}

// ActivateOutside handles POST /api/v1/sessions/{id}/dialogs/outside.
func (s *Server) ActivateOutside(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req OutsideRequest
	if !decodeBody(w, r, &req, true) {
		return
	}
	sess.ActivateOutside(req.Target)
	s.writeDialogs(w, sess)
}

// ForceCloseDialogs handles POST /api/v1/sessions/{id}/dialogs/force-close.
// ?trigger=shortcut marks a keyboard-shortcut invocation.
func (s *Server) ForceCloseDialogs(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	trigger := dialog.TriggerAPI
	if r.URL.Query().Get("trigger") == dialog.TriggerShortcut {
		trigger = dialog.TriggerShortcut
	}
	sess.ForceCloseAll(trigger)
	s.writeDialogs(w, sess)
}

func (s *Server) writeDialogs(w http.ResponseWriter, sess *session.Session) {
	dlg := sess.Dialogs()
	stack := dlg.Stack()
	if stack == nil {
		stack = []string{}
	}
	writeJSON(w, http.StatusOK, DialogsResponse{Dialogs: stack, ScrollLocked: dlg.ScrollLocked()})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return nil, false
	}
	return sess, true
}

// sessionRecoverer force-closes the session's dialogs when a handler
// panics, then lets the outer recoverer answer the request.
func (s *Server) sessionRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := gochi.URLParam(r, "id")
		ctx := logpkg.WithSession(r.Context(), id)
		defer func() {
			if rvr := recover(); rvr != nil {
				if sess, err := s.sessions.Get(id); err == nil {
					sess.ForceCloseAll(dialog.TriggerPanic)
				}
				panic(rvr)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) limit() int {
	if s.topLimit > 0 {
		return s.topLimit
	}
	return render.TopLimit
}

func restaurantsResponse(res viewuc.Result) RestaurantsResponse {
	items := res.View.Items()
	resp := RestaurantsResponse{
		Restaurants:  render.Cards(items),
		Count:        len(items),
		ResultsLabel: render.ResultsLabel(len(items)),
		Suggestion:   res.Suggestion,
		Loaded:       res.Loaded,
	}
	if len(items) == 0 {
		resp.EmptyMessage = render.NoResultsMessage
	}
	return resp
}

// bindQuery reads the filter fields from the query string.
func bindQuery(r *http.Request) (query.Query, error) {
	q := query.Default()
	params := r.URL.Query()
	for _, f := range query.Fields {
		var v string
		if err := runtime.BindQueryParameter("form", true, false, string(f), params, &v); err != nil {
			return q, domain.NewQueryFieldError(string(f), params.Get(string(f)))
		}
		if v == "" {
			continue
		}
		next, err := q.With(f, v)
		if err != nil {
			return q, err
		}
		q = next
	}
	return q, nil
}

// decodeBody decodes a JSON body into dst. An empty body is accepted
// unless required is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, required bool) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (errors.Is(err, io.EOF) && !required) {
		return true
	}
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var qfe *domain.QueryFieldError
	if errors.As(err, &qfe) {
		return qfe.Error()
	}
	sentinels := []error{
		domain.ErrSessionNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidQuery,
		domain.ErrStoreNotLoaded,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// queryFieldHandler reports which query field was rejected.
func queryFieldHandler(w http.ResponseWriter, err error, msg string) bool {
	var qfe *domain.QueryFieldError
	if !errors.As(err, &qfe) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"code":    ErrorCodeValidationFailed,
		"message": msg,
		"field":   qfe.Field,
		"value":   qfe.Value,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context())
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
