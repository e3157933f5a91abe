package suggest

import "strings"

// SupportsStreaming reports whether a client's streaming flag is set. Only
// "true" (case-insensitive) and "1" count; surrounding whitespace does not
// match.
func SupportsStreaming(flag string) bool {
	return strings.EqualFold(flag, "true") || flag == "1"
}
