package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var expiryPattern = regexp.MustCompile(`^(\d+)\s*(ms|s|m|h|d|w|y)?$`)

// ParseExpiry parses a token lifetime such as "7d", "12h", "90m" or "3600"
// (plain numbers are seconds). Go duration strings like "1h30m" are accepted too.
func ParseExpiry(raw string) (time.Duration, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return 0, fmt.Errorf("empty expiry")
	}

	match := expiryPattern.FindStringSubmatch(value)
	if match == nil {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid expiry %q", raw)
		}
		if d <= 0 {
			return 0, fmt.Errorf("expiry must be positive: %q", raw)
		}
		return d, nil
	}

	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry %q: %w", raw, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("expiry must be positive: %q", raw)
	}

	unit := time.Second
	switch match[2] {
	case "ms":
		unit = time.Millisecond
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	case "y":
		unit = 365 * 24 * time.Hour
	}
	return time.Duration(n) * unit, nil
}
