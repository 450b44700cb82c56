package trace

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMiddlewareTagsRequest(t *testing.T) {
	m := NewMiddleware(func(*http.Request) string { return "198.51.100.7" })

	var gotID, gotIP string
	var inFlight int64
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = RequestID(r.Context())
		gotIP = ClientIP(r.Context())
		inFlight = m.GetMetrics().InFlight
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.HasPrefix(gotID, "req_") {
		t.Errorf("request id = %q", gotID)
	}
	if rr.Header().Get(HeaderRequestID) != gotID {
		t.Errorf("header id %q != context id %q", rr.Header().Get(HeaderRequestID), gotID)
	}
	if gotIP != "198.51.100.7" {
		t.Errorf("client ip = %q", gotIP)
	}
	if inFlight != 1 {
		t.Errorf("in flight during request = %d, want 1", inFlight)
	}

	metrics := m.GetMetrics()
	if metrics.TotalRequests != 1 || metrics.InFlight != 0 {
		t.Errorf("metrics = %+v", metrics)
	}
}

func TestMiddlewareWithoutExtractor(t *testing.T) {
	m := NewMiddleware(nil)
	var gotIP string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = ClientIP(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if gotIP != req.RemoteAddr {
		t.Errorf("client ip = %q, want %q", gotIP, req.RemoteAddr)
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRequestID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if RequestID(req.Context()) != "" || ClientIP(req.Context()) != "" {
		t.Error("untraced context should yield empty values")
	}
}
