package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	applog "expenses/internal/log"
	"expenses/internal/ui"
)

// newExpenseData is the render model of the new-expense section. Year is the
// filter year the page is showing, carried through the add flow.
type newExpenseData struct {
	ui.NewExpenseView
	Year string
}

type pageData struct {
	NewExpense newExpenseData
	Expenses   ui.ExpensesView
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).Round(time.Second).String(),
	})
}

// handleReady checks that templates are loaded and the store answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if items, err := s.store.ListExpenses(ctx); err != nil {
		checks["store"] = fmt.Sprintf("failed: %v", err)
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["store"] = map[string]any{"status": "ok", "expenses": len(items)}
	}

	checks["rate_limiter"] = map[string]any{
		"status":         "ok",
		"active_clients": s.rateLimiter.activeClients(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics writes the counters in Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	metric := func(name, kind, help string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %v\n\n", name, help, name, kind, name, value)
	}
	traffic := s.tracer.GetMetrics()
	metric("http_requests_total", "counter", "Total number of HTTP requests", traffic.TotalRequests)
	metric("http_requests_in_flight", "gauge", "Requests currently being served", traffic.InFlight)
	metric("expenses_added_total", "counter", "Expenses accepted into the list", atomic.LoadInt64(&s.appMetrics.expensesAdded))
	metric("expenses_rejected_total", "counter", "Form submissions rejected as unparseable", atomic.LoadInt64(&s.appMetrics.rejectedSubmissions))
	metric("title_changes_total", "counter", "Change Title clicks", atomic.LoadInt64(&s.appMetrics.titleChanges))
	metric("filter_changes_total", "counter", "Year filter selections", atomic.LoadInt64(&s.appMetrics.filterChanges))
	metric("rate_limit_hits_total", "counter", "Total rate limit hits", atomic.LoadInt64(&s.secMetrics.rateLimitHits))
	metric("suspicious_requests_total", "counter", "Total suspicious requests detected", atomic.LoadInt64(&s.secMetrics.suspiciousRequests))
	metric("active_rate_limit_clients", "gauge", "Currently tracked rate limit clients", s.rateLimiter.activeClients())
	metric("uptime_seconds", "gauge", "Application uptime in seconds", fmt.Sprintf("%.0f", time.Since(s.appMetrics.uptime).Seconds()))
}

// handleIndex renders the full page: the new-expense section, open with
// ?adding=1, and the expenses for ?year=.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Page not found").Write(w)
		return
	}
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	q := r.URL.Query()
	year := ParseYear(q, s.defaultYear)
	ne := s.newExpense(r.Context(), nil)
	if ParseFlag(q, "adding") {
		ne.Open()
	}
	s.renderPage(w, r, http.StatusOK, year, newExpenseData{NewExpenseView: ne.View(), Year: year}, nil)
}

// renderPage renders index.html. adjust, when set, edits the expenses view
// before rendering.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, year string, ne newExpenseData, adjust func(*ui.ExpensesView)) {
	ex, err := s.expenses(r.Context(), year)
	if err != nil {
		s.logError(r, "List expenses failed", err, applog.ComponentStore, applog.OpList)
		InternalServerError("Could not load expenses").Write(w)
		return
	}
	view := ex.View()
	if adjust != nil {
		adjust(&view)
	}
	s.render(w, r, NewHTMXResponse().Status(status), "index.html", pageData{NewExpense: ne, Expenses: view})
}

// render executes a template into a buffer so that failures still produce a
// clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, resp *HTMXResponseBuilder, name string, data any) {
	if s.templates == nil {
		s.logError(r, "Templates not loaded", nil, applog.ComponentTemplate, applog.OpRender)
		InternalServerError("Templates not loaded").Write(w)
		return
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logError(r, "Template execution failed", err, applog.ComponentTemplate, applog.OpRender)
		InternalServerError("Error rendering view").Write(w)
		return
	}
	resp.BodyHTML(buf.String()).Write(w)
}

func (s *Server) logError(r *http.Request, msg string, err error, component, operation string) {
	ctx := r.Context()
	fields := applog.NewFields().WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, "")
	applog.NewStructuredLogger(applog.FromContext(ctx)).LogError(ctx, msg, err, component, operation, fields)
}
