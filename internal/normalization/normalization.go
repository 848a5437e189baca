package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

// TrimInputString keeps the caller's casing; used for display fields like
// names and venue where lowercasing would mangle the value.
func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}
