package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// IsTrueFlag reports whether a query flag was explicitly set to "true".
// Any other value, including an absent one, means "do not filter".
func IsTrueFlag(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

// ParseOptionalInt parses an optional integer query parameter. An empty value
// yields nil.
func ParseOptionalInt(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return &n, nil
}
