package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"direct", "203.0.113.7:5000", "", "", "203.0.113.7"},
		{"untrusted peer ignores XFF", "203.0.113.7:5000", "198.51.100.1", "", "203.0.113.7"},
		{"trusted proxy uses first XFF", "10.0.0.2:5000", "198.51.100.1, 10.0.0.3", "", "198.51.100.1"},
		{"trusted proxy falls back to X-Real-IP", "127.0.0.1:5000", "garbage", "198.51.100.9", "198.51.100.9"},
		{"no port", "198.51.100.4", "", "", "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := extractClientIP(req); got != tt.want {
				t.Errorf("extractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSuspiciousRequest(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		agent  string
		want   bool
	}{
		{"plain page", http.MethodGet, "/?year=2021", "Mozilla/5.0", false},
		{"path traversal", http.MethodGet, "/static/../.env", "Mozilla/5.0", true},
		{"scanner agent", http.MethodGet, "/", "sqlmap/1.7", true},
		{"trace method", "TRACE", "/", "Mozilla/5.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &securityMetrics{}
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("User-Agent", tt.agent)
			if got := detectSuspiciousRequest(req, m); got != tt.want {
				t.Errorf("detectSuspiciousRequest() = %v, want %v", got, tt.want)
			}
			if tt.want && m.suspiciousRequests != 1 {
				t.Errorf("suspiciousRequests = %d, want 1", m.suspiciousRequests)
			}
		})
	}
}

func TestRateLimiterWindow(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.stop()
	m := &securityMetrics{}
	now := time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC)

	if !rl.allowAt("a", now, m) || !rl.allowAt("a", now.Add(time.Second), m) {
		t.Fatal("first two requests should pass")
	}
	if rl.allowAt("a", now.Add(2*time.Second), m) {
		t.Fatal("third request in the window should be limited")
	}
	if !rl.allowAt("b", now.Add(2*time.Second), m) {
		t.Fatal("other clients have their own budget")
	}
	if !rl.allowAt("a", now.Add(61*time.Second), m) {
		t.Fatal("a new window should reset the budget")
	}
	if m.rateLimitHits != 1 {
		t.Errorf("rateLimitHits = %d, want 1", m.rateLimitHits)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newRateLimiter(10)
	defer rl.stop()
	now := time.Now()

	rl.allowAt("old", now.Add(-20*time.Minute), nil)
	rl.allowAt("fresh", now, nil)

	if removed := rl.cleanupStaleEntries(now); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if rl.activeClients() != 1 {
		t.Errorf("activeClients = %d, want 1", rl.activeClients())
	}
	rl.stop() // idempotent
}
