package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/middleware/trace"
	"expenses/internal/store"
	"expenses/internal/ui"
	appweb "expenses/web"
)

// Options tunes a Server. Zero values fall back to the defaults of package ui.
type Options struct {
	Logger             *applog.Logger
	DefaultFilterYear  string
	FilterYears        []string
	RateLimitPerMinute int
	// NewID assigns identifiers to new records; defaults to core.UUIDGenerator.
	NewID core.IDGenerator
}

// appMetrics holds the counters exposed on /metrics.
type appMetrics struct {
	expensesAdded       int64
	rejectedSubmissions int64
	titleChanges        int64
	filterChanges       int64
	uptime              time.Time
}

type Server struct {
	http.Server
	templates *template.Template
	store     store.Store
	logger    *applog.Logger

	tracer      *trace.Middleware
	rateLimiter *rateLimiter
	secMetrics  *securityMetrics
	appMetrics  *appMetrics

	defaultYear string
	years       []string
	newID       core.IDGenerator

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, st store.Store, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:       st,
		logger:      logger.WithComponent(applog.ComponentHTTP),
		tracer:      trace.NewMiddleware(extractClientIP),
		rateLimiter: newRateLimiter(opts.RateLimitPerMinute),
		secMetrics:  &securityMetrics{},
		appMetrics:  &appMetrics{uptime: time.Now()},
		defaultYear: opts.DefaultFilterYear,
		years:       opts.FilterYears,
		newID:       opts.NewID,
	}
	if s.defaultYear == "" {
		s.defaultYear = ui.DefaultFilterYear
	}
	if len(s.years) == 0 {
		s.years = ui.DefaultYears
	}
	if s.newID == nil {
		s.newID = core.UUIDGenerator
	}

	t, err := parseTemplates()
	if err != nil {
		logger.WithComponent(applog.ComponentTemplate).Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	mux := http.NewServeMux()
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/expenses", s.handleCreateExpense)
	// UI partials
	mux.HandleFunc("/ui/new-expense", s.handleNewExpensePartial)
	mux.HandleFunc("/ui/expenses", s.handleExpensesPartial)
	mux.HandleFunc("/ui/expenses/{id}/title", s.handleChangeTitle)

	s.Handler = s.tracer.Middleware(applog.Middleware(s.logger, requestIDOf)(s.withSecurityHeaders(mux)))
	return s
}

func parseTemplates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"cardClass": ui.CardClass}).
		ParseFS(appweb.TemplatesFS, "templates/*.html")
}

func requestIDOf(r *http.Request) string {
	return trace.RequestID(r.Context())
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses.
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		clientIP := trace.ClientIP(ctx)
		logger := applog.FromContext(ctx)
		events := applog.NewStructuredLogger(logger)

		events.LogHTTPStart(ctx, r, clientIP)
		if detectSuspiciousRequest(r, s.secMetrics) {
			logger.WarnContext(ctx, "Suspicious request",
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				applog.FieldClientIP, clientIP,
				applog.FieldUserAgent, r.Header.Get("User-Agent"))
		}

		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.secMetrics) {
			logger.WithComponent(applog.ComponentRateLimit).WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP, applog.FieldPath, r.URL.Path)
			ErrorResponse(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.").
				Header("Retry-After", "60").
				Write(rw)
		} else {
			next.ServeHTTP(rw, r)
		}

		events.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Shutdown stops the rate limiter and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
