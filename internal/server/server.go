// Package server exposes the aggregated metrics over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sunil-gr/cursor-poc/internal/config"
	"github.com/sunil-gr/cursor-poc/internal/logstore"
	"github.com/sunil-gr/cursor-poc/internal/metrics"
	"github.com/sunil-gr/cursor-poc/internal/snapshot"
)

const (
	defaultPageLimit   = 50
	defaultListDays    = 30
	shutdownGrace      = 5 * time.Second
	defaultReadTimeout = 15 * time.Second
)

// Server serves metrics endpoints over a plain HTTP mux. Snapshot
// processing runs are serialized through processMu since they rewrite the
// intermediate-document directory.
type Server struct {
	cfg       config.Config
	proc      *snapshot.Processor
	store     *logstore.Store
	agg       *metrics.Aggregator
	sessions  *sessionStore
	logger    *log.Logger
	processMu sync.Mutex
}

func New(cfg config.Config, proc *snapshot.Processor, store *logstore.Store, agg *metrics.Aggregator) *Server {
	return &Server{
		cfg:      cfg,
		proc:     proc,
		store:    store,
		agg:      agg,
		sessions: newSessionStore(time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute),
		logger:   log.New(log.Writer(), "[server] ", log.Flags()),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Listen,
		Handler:      s.routes(),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	mux.HandleFunc("GET /api/metrics", s.requireAuth(s.handleMetrics))
	mux.HandleFunc("GET /api/metrics/enhanced", s.requireAuth(s.handleEnhanced))
	mux.HandleFunc("GET /api/metrics/ai-service", s.requireAuth(s.categoryHandler(
		func(recs []logstore.Record) any { return metrics.ExtractAIServiceMetrics(recs) })))
	mux.HandleFunc("GET /api/metrics/editor-activity", s.requireAuth(s.categoryHandler(
		func(recs []logstore.Record) any { return metrics.ExtractEditorActivity(recs) })))
	mux.HandleFunc("GET /api/metrics/workspace-settings", s.requireAuth(s.categoryHandler(
		func(recs []logstore.Record) any { return metrics.ExtractWorkspaceSettings(recs) })))
	mux.HandleFunc("GET /api/metrics/dev-environment", s.requireAuth(s.categoryHandler(
		func(recs []logstore.Record) any { return metrics.ExtractDevEnvironment(recs) })))
	mux.HandleFunc("GET /api/metrics/composer-data", s.requireAuth(s.categoryHandler(
		func(recs []logstore.Record) any { return metrics.ExtractComposerData(recs) })))

	mux.HandleFunc("GET /api/metrics/prompts", s.requireAuth(s.listHandler(
		func(m metrics.Metrics) []any { return m.Prompts })))
	mux.HandleFunc("GET /api/metrics/generations", s.requireAuth(s.listHandler(
		func(m metrics.Metrics) []any { return m.Generations })))
	mux.HandleFunc("GET /api/metrics/files", s.requireAuth(s.listHandler(
		func(m metrics.Metrics) []any { return m.HistoryEntries })))

	mux.HandleFunc("GET /api/sensitive-report", s.requireAuth(s.handleSensitiveReport))
	mux.HandleFunc("POST /api/process", s.requireAuth(s.handleProcess))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics is the primary endpoint. An explicit startDate/endDate pair
// triggers a fresh snapshot processing run over that range before
// aggregating; the days form reads whatever documents already exist.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	start, end, explicit, err := s.parseRange(r, s.cfg.DefaultWindowDays)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if explicit {
		if err := s.runProcessing(r.Context(), &start, &end); err != nil {
			// Serve whatever documents remain rather than failing the read.
			s.logger.Printf("snapshot processing: %v", err)
		}
	}

	m := s.agg.Aggregate(start, end)
	if !m.HasMeaningfulData() {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "No metrics found",
			"message": "No usage data was recorded in the requested date range.",
		})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleEnhanced(w http.ResponseWriter, r *http.Request) {
	start, end, _, err := s.parseRange(r, defaultListDays)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      s.agg.Aggregate(start, end),
		"dateRange": rangePayload(start, end),
	})
}

// categoryHandler serves a single extractor's output over the filtered
// record set.
func (s *Server) categoryHandler(extract func([]logstore.Record) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, _, err := s.parseRange(r, defaultListDays)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		records := logstore.FilterByRange(s.store.Load(), start, end)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"data":      extract(records),
			"dateRange": rangePayload(start, end),
		})
	}
}

// listHandler paginates one of the raw feeds, newest first.
func (s *Server) listHandler(pick func(metrics.Metrics) []any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, _, err := s.parseRange(r, defaultListDays)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", defaultPageLimit)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = defaultPageLimit
		}

		items := pick(s.agg.Aggregate(start, end))
		reversed := make([]any, len(items))
		for i, item := range items {
			reversed[len(items)-1-i] = item
		}

		total := len(reversed)
		totalPages := (total + limit - 1) / limit
		from := (page - 1) * limit
		if from > total {
			from = total
		}
		to := from + limit
		if to > total {
			to = total
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"items":      reversed[from:to],
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": totalPages,
		})
	}
}

func (s *Server) handleSensitiveReport(w http.ResponseWriter, r *http.Request) {
	start, end, _, err := s.parseRange(r, defaultListDays)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	m := s.agg.Aggregate(start, end)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"results":       m.SensitiveResults,
		"keywordCounts": m.SensitiveKeywordCounts,
		"dateRange":     rangePayload(start, end),
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	start, end, explicit, err := s.parseRange(r, s.cfg.DefaultWindowDays)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var startPtr, endPtr *time.Time
	if explicit {
		startPtr, endPtr = &start, &end
	}
	if err := s.runProcessing(r.Context(), startPtr, endPtr); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("processing failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "snapshot processing complete",
	})
}

// runProcessing rebuilds the intermediate documents. Runs are serialized:
// each one clears the logs directory before writing.
func (s *Server) runProcessing(ctx context.Context, start, end *time.Time) error {
	s.processMu.Lock()
	defer s.processMu.Unlock()
	return s.proc.ProcessAll(ctx, s.cfg.SnapshotDir, start, end)
}

// Refresh reprocesses all snapshots without a date filter. It backs the
// filesystem watcher.
func (s *Server) Refresh(ctx context.Context) {
	if err := s.runProcessing(ctx, nil, nil); err != nil {
		s.logger.Printf("refresh: %v", err)
	}
}

// parseRange resolves the request's date window. A startDate/endDate pair
// (YYYY-MM-DD, both required) yields an explicit range spanning whole days;
// otherwise a trailing window of days (default defaultDays) ending now.
func (s *Server) parseRange(r *http.Request, defaultDays int) (start, end time.Time, explicit bool, err error) {
	q := r.URL.Query()
	startStr, endStr := q.Get("startDate"), q.Get("endDate")

	if startStr != "" || endStr != "" {
		if startStr == "" || endStr == "" {
			return start, end, false, errors.New("startDate and endDate must be given together")
		}
		startDay, perr := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if perr != nil {
			return start, end, false, fmt.Errorf("invalid startDate %q", startStr)
		}
		endDay, perr := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if perr != nil {
			return start, end, false, fmt.Errorf("invalid endDate %q", endStr)
		}
		if endDay.Before(startDay) {
			return start, end, false, errors.New("endDate precedes startDate")
		}
		end = endDay.Add(24*time.Hour - time.Millisecond)
		return startDay, end, true, nil
	}

	days := queryInt(r, "days", defaultDays)
	if days < 1 {
		days = defaultDays
	}
	end = time.Now()
	start = end.AddDate(0, 0, -days)
	return start, end, false, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func rangePayload(start, end time.Time) map[string]string {
	return map[string]string{
		"start": start.Format(time.RFC3339),
		"end":   end.Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[server] encoding response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSONBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
