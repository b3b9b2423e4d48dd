package model

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDuration(t *testing.T) {
	tests := []struct {
		name    string
		hours   int
		minutes int
		want    string
	}{
		{"hours and minutes", 2, 30, "2 Hours 30 Minutes"},
		{"singular hour", 1, 0, "1 Hour"},
		{"singular minute", 0, 1, "1 Minute"},
		{"minutes only", 0, 45, "45 Minutes"},
		{"hours only", 3, 0, "3 Hours"},
		{"one of each", 1, 1, "1 Hour 1 Minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeDuration(tt.hours, tt.minutes)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestComposeDurationEmpty(t *testing.T) {
	assert.Nil(t, ComposeDuration(0, 0))
	assert.Nil(t, ComposeDuration(-1, 0))
}

func TestDecomposeDuration(t *testing.T) {
	tests := []struct {
		name        string
		duration    string
		wantHours   string
		wantMinutes string
	}{
		{"hours and minutes", "2 Hours 30 Minutes", "2", "30"},
		{"singular forms", "1 Hour 1 Minute", "1", "1"},
		{"hours only", "3 Hours", "3", ""},
		{"minutes only", "45 Minutes", "", "45"},
		{"unparseable", "about two hours", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, minutes := DecomposeDuration(&tt.duration)
			assert.Equal(t, tt.wantHours, hours)
			assert.Equal(t, tt.wantMinutes, minutes)
		})
	}
}

func TestDecomposeDurationNil(t *testing.T) {
	hours, minutes := DecomposeDuration(nil)
	assert.Empty(t, hours)
	assert.Empty(t, minutes)
}

// Every composed duration must decompose back to the same fields
func TestDurationRoundTrip(t *testing.T) {
	cases := []struct {
		hours   int
		minutes int
	}{
		{1, 0}, {0, 1}, {2, 30}, {10, 59}, {1, 1},
	}

	for _, c := range cases {
		composed := ComposeDuration(c.hours, c.minutes)
		require.NotNil(t, composed)

		hours, minutes := DecomposeDuration(composed)
		if c.hours > 0 {
			assert.Equal(t, strconv.Itoa(c.hours), hours)
		} else {
			assert.Empty(t, hours)
		}
		if c.minutes > 0 {
			assert.Equal(t, strconv.Itoa(c.minutes), minutes)
		} else {
			assert.Empty(t, minutes)
		}
	}
}
