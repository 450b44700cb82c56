// Package http provides HTTP server and handler implementations.
//
// This file holds the helpers that turn query strings and form posts into
// component events.

package http

import (
	"net/http"
	"net/url"
	"strings"

	"expenses/internal/ui"
)

const maxYearLength = 8

// ParseYear returns the year query/form value, or fallback when it is absent.
// Any text is accepted; a year outside the list simply matches nothing.
func ParseYear(values url.Values, fallback string) string {
	y := sanitizeInput(values.Get("year"))
	if y == "" {
		return fallback
	}
	if len(y) > maxYearLength {
		y = y[:maxYearLength]
	}
	return y
}

// ParseFlag reports whether key is set to a truthy value ("1", "true", "on").
func ParseFlag(values url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// ReplayExpenseForm feeds the posted field values into form, one Change per
// field. Titles keep their surrounding whitespace.
func ReplayExpenseForm(form *ui.ExpenseForm, values url.Values) {
	for _, field := range ui.Fields {
		v := stripControl(values.Get(string(field)))
		if field != ui.FieldTitle {
			v = strings.TrimSpace(v)
		}
		form.Change(field, v)
	}
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireGET accepts GET and HEAD.
func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet, http.MethodHead)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}
