package httpx

import "fmt"

// defaultTruncateLen is the fallback maximum used when Truncate receives a
// non-positive limit.
const defaultTruncateLen = 500

// Truncate shortens s to at most maxLen characters, appending a suffix that
// records the original total length so callers know data was omitted.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = defaultTruncateLen
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
