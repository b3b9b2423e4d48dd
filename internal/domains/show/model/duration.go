package model

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+) Hours?`)
	minutesPattern = regexp.MustCompile(`(\d+) Minutes?`)
)

// ComposeDuration builds the stored duration string from the hour and
// minute form fields, e.g. "2 Hours 30 Minutes" or "1 Hour".
// Returns nil when both parts are zero.
func ComposeDuration(hours, minutes int) *string {
	if hours <= 0 && minutes <= 0 {
		return nil
	}

	var parts []string
	if hours > 0 {
		unit := "Hours"
		if hours == 1 {
			unit = "Hour"
		}
		parts = append(parts, fmt.Sprintf("%d %s", hours, unit))
	}
	if minutes > 0 {
		unit := "Minutes"
		if minutes == 1 {
			unit = "Minute"
		}
		parts = append(parts, fmt.Sprintf("%d %s", minutes, unit))
	}

	s := strings.Join(parts, " ")
	return &s
}

// DecomposeDuration extracts the hour and minute form fields from a
// persisted duration string. Either part may be absent, in which case
// the corresponding field comes back empty.
func DecomposeDuration(duration *string) (hours, minutes string) {
	if duration == nil {
		return "", ""
	}

	if m := hoursPattern.FindStringSubmatch(*duration); m != nil {
		hours = m[1]
	}
	if m := minutesPattern.FindStringSubmatch(*duration); m != nil {
		minutes = m[1]
	}
	return hours, minutes
}
