package utils

import "strings"

// SplitList splits a comma separated value, trims every entry and drops the
// empty ones. It always returns a non-nil slice.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			result = append(result, p)
		}
	}
	return result
}
