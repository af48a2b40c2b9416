package importer

import (
	"log"
	"strconv"
	"strings"
)

// parseFloat coerces a raw numeric token. The second return reports whether
// a value was present: empty or literal "null" (any case) tokens are absent
// and coerce to the zero default at the call site. A token that is present
// but malformed is logged and falls back to 0.0 without failing the row.
func parseFloat(token string) (float64, bool) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		log.Printf("Cannot parse to number: %q: %v", token, err)
		return 0, true
	}
	return v, true
}

// parseFloatOrZero coerces a raw numeric token with 0.0 as the default for
// absent values.
func parseFloatOrZero(token string) float64 {
	v, _ := parseFloat(token)
	return v
}

// parseIntOrZero coerces a raw integer token, applying the same rules as
// parseFloat with 0 as the default.
func parseIntOrZero(token string) int {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return 0
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		log.Printf("Cannot parse to number: %q: %v", token, err)
		return 0
	}
	return v
}

// optionalString maps whitespace-only text to an explicit no-value marker
// instead of an empty string.
func optionalString(token string) *string {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return &token
}
