package formatter

import "strings"

// Issue and discussion threads keep GitHub's native relative rendering:
// scanning is skipped there entirely, existing formatting left as-is.
var excludedPathParts = []string{"/issues", "/discussions"}

// ExcludedPath reports whether path is on the scan denylist.
func ExcludedPath(path string) bool {
	for _, part := range excludedPathParts {
		if strings.Contains(path, part) {
			return true
		}
	}
	return false
}

// ActionsPath reports whether path is a workflow/actions page, where the
// actionsOnly time mode shows hour and minute.
func ActionsPath(path string) bool {
	return strings.Contains(path, "/actions")
}
