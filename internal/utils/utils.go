package utils

import "strings"

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// SingleLine collapses every run of whitespace, newlines included, into one
// space so user text cannot break the layout of a prompt template.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
