package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeSingleSchedule(t *testing.T) {
	date, meta, err := Schedule{Kind: ScheduleSingle, Date: "2026-02-14"}.Compose()
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, "2026-02-14", *date)
	assert.Nil(t, meta)
}

func TestComposeSingleScheduleInvalidDate(t *testing.T) {
	_, _, err := Schedule{Kind: ScheduleSingle, Date: "Feb 14"}.Compose()
	assert.Error(t, err)
}

func TestComposeRecurringSchedule(t *testing.T) {
	s := Schedule{
		Kind:         ScheduleRecurring,
		StartDate:    "2026-01-06",
		EndDate:      "2026-01-20",
		SelectedDays: []string{"Wednesdays", "Mondays"},
	}

	date, meta, err := s.Compose()
	require.NoError(t, err)
	require.NotNil(t, date)
	require.NotNil(t, meta)

	// Days come out in Mon-Sun order regardless of selection order
	assert.Equal(t, "Mondays & Wednesdays, Jan 6 - Jan 20", *date)
	assert.Equal(t, []string{"Mondays", "Wednesdays"}, meta.SelectedDays)
	assert.Equal(t, "2026-01-06", meta.StartDate)
	assert.Equal(t, "2026-01-20", meta.EndDate)
}

func TestComposeRecurringRejectsInvertedRange(t *testing.T) {
	s := Schedule{
		Kind:         ScheduleRecurring,
		StartDate:    "2026-01-20",
		EndDate:      "2026-01-06",
		SelectedDays: []string{"Fridays"},
	}

	_, _, err := s.Compose()
	assert.Error(t, err)
}

func TestComposeRecurringRequiresDays(t *testing.T) {
	s := Schedule{
		Kind:      ScheduleRecurring,
		StartDate: "2026-01-06",
		EndDate:   "2026-01-20",
	}

	_, _, err := s.Compose()
	assert.Error(t, err)
}

func TestCanonicalDays(t *testing.T) {
	got := CanonicalDays([]string{"Sundays", "Mondays", "Sundays", "Holidays"})
	assert.Equal(t, []string{"Mondays", "Sundays"}, got)
}

func TestDecomposeSchedulePrefersMetadata(t *testing.T) {
	// Even with a flat string present, the structured bag wins
	flat := "Mondays & Wednesdays, Jan 6 - Jan 20"
	meta := &ScheduleMeta{
		StartDate:    "2026-01-06",
		EndDate:      "2026-01-20",
		SelectedDays: []string{"Mondays", "Wednesdays"},
	}

	got := decomposeSchedule(&flat, meta, 2025)
	assert.Equal(t, ScheduleRecurring, got.Kind)
	assert.Equal(t, "2026-01-06", got.StartDate)
	assert.Equal(t, "2026-01-20", got.EndDate)
	assert.Equal(t, []string{"Mondays", "Wednesdays"}, got.SelectedDays)
}

func TestDecomposeScheduleSingleDate(t *testing.T) {
	date := "2026-02-14"
	got := decomposeSchedule(&date, nil, 2026)
	assert.Equal(t, ScheduleSingle, got.Kind)
	assert.Equal(t, "2026-02-14", got.Date)
}

func TestDecomposeScheduleLegacyString(t *testing.T) {
	// Rows written before the metadata bag existed carry only the flat
	// string; the year is assumed to be the given one.
	flat := "Fridays & Saturdays, Mar 6 - Mar 21"
	got := decomposeSchedule(&flat, nil, 2026)

	assert.Equal(t, ScheduleRecurring, got.Kind)
	assert.Equal(t, "2026-03-06", got.StartDate)
	assert.Equal(t, "2026-03-21", got.EndDate)
	assert.Equal(t, []string{"Fridays", "Saturdays"}, got.SelectedDays)
}

func TestDecomposeScheduleIndeterminate(t *testing.T) {
	cases := []string{
		"every weekend until further notice",
		"Moondays, Jan 6 - Jan 20",
		"",
	}

	for _, c := range cases {
		flat := c
		got := decomposeSchedule(&flat, nil, 2026)
		assert.Equal(t, ScheduleNone, got.Kind, "input %q", c)
		assert.Empty(t, got.Date)
		assert.Empty(t, got.StartDate)
	}

	got := decomposeSchedule(nil, nil, 2026)
	assert.Equal(t, ScheduleNone, got.Kind)
}

// Compose then decompose must reproduce the recurring schedule exactly
// when the metadata bag is present.
func TestScheduleRoundTrip(t *testing.T) {
	original := Schedule{
		Kind:         ScheduleRecurring,
		StartDate:    "2025-11-03",
		EndDate:      "2025-12-19",
		SelectedDays: []string{"Mondays", "Fridays"},
	}

	date, meta, err := original.Compose()
	require.NoError(t, err)

	got := decomposeSchedule(date, meta, 1999)
	assert.Equal(t, original, got)
}

func TestEffectiveRange(t *testing.T) {
	t.Run("from metadata", func(t *testing.T) {
		meta := &ScheduleMeta{StartDate: "2026-01-06", EndDate: "2026-01-20"}
		start, end, ok := EffectiveRange(nil, meta)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("from single date", func(t *testing.T) {
		date := "2026-02-14"
		start, end, ok := EffectiveRange(&date, nil)
		require.True(t, ok)
		assert.Equal(t, start, end)
	})

	t.Run("legacy string has no range", func(t *testing.T) {
		flat := "Mondays, Jan 6 - Jan 20"
		_, _, ok := EffectiveRange(&flat, nil)
		assert.False(t, ok)
	})

	t.Run("nothing derivable", func(t *testing.T) {
		_, _, ok := EffectiveRange(nil, nil)
		assert.False(t, ok)
	})
}
