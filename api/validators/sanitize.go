package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the length of
// free-text query input. A non-positive maxLen skips the cap.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
