package providers

import (
	"fmt"
	"strings"
	"time"
)

// Accepted appointment time layouts. Voice-agent integrations send
// timestamps in a handful of shapes, so parsing is deliberately lenient.
var appointmentTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"02/01/2006 15:04",
	"01/02/2006 15:04",
	"02-01-2006 15:04",
	"2006-01-02T15:04:05.000",
	time.RFC3339,
}

// displayTimeLayout renders times the way dashboards and messages show them,
// e.g. "March 20, 2026 at 2:30 PM".
const displayTimeLayout = "January 2, 2006 at 3:04 PM"

// parseAppointmentTime tries each accepted layout in order.
func parseAppointmentTime(value string) (time.Time, error) {
	value = strings.TrimSpace(strings.TrimSuffix(value, "Z"))
	if value == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	for _, layout := range appointmentTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime format: %q", value)
}

// parseDay parses a bare date like "2026-03-20".
func parseDay(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}

// firstString returns the first non-empty string among the given keys.
func firstString(body map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := body[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
