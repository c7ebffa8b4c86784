package config

import (
	"os"
	"strconv"
	"strings"
)

// String returns the trimmed value of k, or def when it is unset or blank.
func String(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// Int returns k as a positive integer. Anything else falls back to def.
func Int(k string, def int) int {
	if n, err := strconv.Atoi(String(k, "")); err == nil && n > 0 {
		return n
	}
	return def
}

// Bool accepts 1/true/yes in any case; any other non-empty value is false.
func Bool(k string, def bool) bool {
	v := strings.ToLower(String(k, ""))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}
