package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ScheduleKind tags the two mutually exclusive schedule shapes
type ScheduleKind string

const (
	ScheduleSingle    ScheduleKind = "single"
	ScheduleRecurring ScheduleKind = "recurring"
	// ScheduleNone marks an indeterminate schedule: the legacy flat string
	// could not be interpreted, so all schedule fields are cleared.
	ScheduleNone ScheduleKind = "none"
)

// ScheduleMeta is the lossless structured form persisted in the metadata
// bag for recurring schedules.
type ScheduleMeta struct {
	StartDate    string   `json:"start_date"`    // YYYY-MM-DD
	EndDate      string   `json:"end_date"`      // YYYY-MM-DD
	SelectedDays []string `json:"selected_days"` // plural weekday names
}

// Schedule is the tagged variant used by the authoring form
type Schedule struct {
	Kind         ScheduleKind
	Date         string   // single-date shape
	StartDate    string   // recurring shape
	EndDate      string
	SelectedDays []string
}

const isoDate = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// legacyRecurringPattern matches the composed recurring string,
// e.g. "Mondays & Wednesdays, Jan 6 - Jan 20"
var legacyRecurringPattern = regexp.MustCompile(`^(.+), ([A-Z][a-z]{2} \d{1,2}) - ([A-Z][a-z]{2} \d{1,2})$`)

// weekdayOrder is the canonical Mon→Sun ordering of the day names
var weekdayOrder = []string{
	"Mondays", "Tuesdays", "Wednesdays", "Thursdays", "Fridays", "Saturdays", "Sundays",
}

func isWeekdayName(name string) bool {
	for _, d := range weekdayOrder {
		if d == name {
			return true
		}
	}
	return false
}

// CanonicalDays filters the selection down to known day names and sorts
// them into Mon→Sun order, dropping duplicates.
func CanonicalDays(days []string) []string {
	selected := make(map[string]bool, len(days))
	for _, d := range days {
		selected[d] = true
	}

	var out []string
	for _, d := range weekdayOrder {
		if selected[d] {
			out = append(out, d)
		}
	}
	return out
}

// Compose serializes the schedule into the legacy flat date string and,
// for recurring schedules, the structured metadata bag.
func (s Schedule) Compose() (date *string, meta *ScheduleMeta, err error) {
	switch s.Kind {
	case ScheduleSingle:
		if !isoDatePattern.MatchString(s.Date) {
			return nil, nil, fmt.Errorf("invalid show date %q", s.Date)
		}
		d := s.Date
		return &d, nil, nil

	case ScheduleRecurring:
		start, err := time.Parse(isoDate, s.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date %q", s.StartDate)
		}
		end, err := time.Parse(isoDate, s.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date %q", s.EndDate)
		}
		if end.Before(start) {
			return nil, nil, fmt.Errorf("end date %s is before start date %s", s.EndDate, s.StartDate)
		}

		days := CanonicalDays(s.SelectedDays)
		if len(days) == 0 {
			return nil, nil, fmt.Errorf("at least one weekday is required")
		}

		flat := fmt.Sprintf("%s, %s - %s",
			strings.Join(days, " & "),
			start.Format("Jan 2"),
			end.Format("Jan 2"),
		)
		return &flat, &ScheduleMeta{
			StartDate:    s.StartDate,
			EndDate:      s.EndDate,
			SelectedDays: days,
		}, nil

	default:
		return nil, nil, fmt.Errorf("schedule kind is required")
	}
}

// DecomposeSchedule rebuilds the form schedule from a persisted record.
//
// Priority: the structured metadata bag wins; a strict YYYY-MM-DD flat
// date is a single-date schedule; otherwise the legacy composed string
// is parsed best-effort assuming the current calendar year. Anything
// else is indeterminate and all fields are cleared rather than guessed.
func DecomposeSchedule(date *string, meta *ScheduleMeta) Schedule {
	return decomposeSchedule(date, meta, time.Now().Year())
}

func decomposeSchedule(date *string, meta *ScheduleMeta, year int) Schedule {
	if meta != nil && meta.StartDate != "" && meta.EndDate != "" && len(meta.SelectedDays) > 0 {
		return Schedule{
			Kind:         ScheduleRecurring,
			StartDate:    meta.StartDate,
			EndDate:      meta.EndDate,
			SelectedDays: meta.SelectedDays,
		}
	}

	if date == nil || *date == "" {
		return Schedule{Kind: ScheduleNone}
	}

	if isoDatePattern.MatchString(*date) {
		return Schedule{Kind: ScheduleSingle, Date: *date}
	}

	// Legacy rows lack structured metadata; reverse-parse the composed
	// string. The year is not recorded, so the given year is assumed.
	m := legacyRecurringPattern.FindStringSubmatch(*date)
	if m == nil {
		return Schedule{Kind: ScheduleNone}
	}

	var days []string
	for _, d := range strings.Split(m[1], " & ") {
		if !isWeekdayName(d) {
			return Schedule{Kind: ScheduleNone}
		}
		days = append(days, d)
	}

	start, err := time.Parse("Jan 2 2006", fmt.Sprintf("%s %d", m[2], year))
	if err != nil {
		return Schedule{Kind: ScheduleNone}
	}
	end, err := time.Parse("Jan 2 2006", fmt.Sprintf("%s %d", m[3], year))
	if err != nil {
		return Schedule{Kind: ScheduleNone}
	}

	return Schedule{
		Kind:         ScheduleRecurring,
		StartDate:    start.Format(isoDate),
		EndDate:      end.Format(isoDate),
		SelectedDays: days,
	}
}

// EffectiveRange derives the [start, end] interval used for temporal
// bucketing: structured recurring data first, else a strict flat date
// (start = end), else no derivable range.
func EffectiveRange(date *string, meta *ScheduleMeta) (start, end time.Time, ok bool) {
	if meta != nil && meta.StartDate != "" && meta.EndDate != "" {
		s, errS := time.Parse(isoDate, meta.StartDate)
		e, errE := time.Parse(isoDate, meta.EndDate)
		if errS == nil && errE == nil {
			return s, e, true
		}
	}

	if date != nil && isoDatePattern.MatchString(*date) {
		if d, err := time.Parse(isoDate, *date); err == nil {
			return d, d, true
		}
	}

	return time.Time{}, time.Time{}, false
}
