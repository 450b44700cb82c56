// Package ui holds the view components of the tracker.
//
// Each component is a plain struct: exported fields are the properties a
// parent passes down, unexported fields are state the component owns, and
// func fields are the callbacks it uses to report upward. Handlers build a
// fresh tree per request, replay the user's event on it and render View().
package ui

import "strings"

// CardClass returns the class list of the generic card container with an
// optional extra class, e.g. CardClass("expenses") == "card expenses".
func CardClass(extra string) string {
	return strings.TrimSpace("card " + strings.TrimSpace(extra))
}
