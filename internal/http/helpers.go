package http

import (
	"net/http"
	"net/url"
	"strings"
)

// stripControl removes control characters except tab, newline and carriage return.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	return strings.TrimSpace(stripControl(s))
}

// isHTMX reports whether the request was issued by htmx.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// indexURL builds the full-page URL for year, used by no-JS redirects.
func indexURL(year string) string {
	if year == "" {
		return "/"
	}
	return "/?year=" + url.QueryEscape(year)
}
