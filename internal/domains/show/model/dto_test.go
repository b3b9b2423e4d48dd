package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *ShowRequest {
	price := 500.0
	return &ShowRequest{
		Title:           "Ang Huling El Bimbo",
		Description:     "A jukebox musical",
		DurationHours:   2,
		DurationMinutes: 30,
		ScheduleKind:    "single",
		Date:            "2026-03-14",
		Venue:           "Newport Performing Arts Theater",
		City:            "Manila",
		Niche:           "local",
		Price:           &price,
	}
}

func TestShowRequestValid(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

// All missing required fields are reported together in one message
func TestShowRequestCollectsMissingFields(t *testing.T) {
	req := &ShowRequest{ScheduleKind: "single"}
	err := req.Validate()
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "Missing required fields:")
	assert.Contains(t, vErr.Message, "Title")
	assert.Contains(t, vErr.Message, "Show Date")
	assert.Contains(t, vErr.Message, "Venue")
	assert.Contains(t, vErr.Message, "City")
	assert.Contains(t, vErr.Message, "Niche")
}

func TestShowRequestRecurringRequiredFields(t *testing.T) {
	req := validRequest()
	req.ScheduleKind = "recurring"
	req.Date = ""

	err := req.Validate()
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "Start Date")
	assert.Contains(t, vErr.Message, "End Date")
	assert.Contains(t, vErr.Message, "Show Days")
}

func TestShowRequestNegativePrice(t *testing.T) {
	req := validRequest()
	price := -10.0
	req.Price = &price

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Price cannot be negative")
}

func TestShowRequestUnknownCity(t *testing.T) {
	req := validRequest()
	req.City = "Cebu"

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown city")
}

func TestShowRequestUnknownNiche(t *testing.T) {
	req := validRequest()
	req.Niche = "broadway"

	assert.Error(t, req.Validate())
}

func TestShowRequestFieldLimits(t *testing.T) {
	req := validRequest()
	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'a'
	}
	req.Description = string(long)

	assert.Error(t, req.Validate())
}

func TestNewEditFormRoundTrip(t *testing.T) {
	req := validRequest()
	req.ScheduleKind = "recurring"
	req.Date = ""
	req.StartDate = "2026-01-06"
	req.EndDate = "2026-01-20"
	req.SelectedDays = []string{"Mondays", "Wednesdays"}
	require.NoError(t, req.Validate())

	date, meta, err := req.Schedule().Compose()
	require.NoError(t, err)

	show := &Show{
		Title:    req.Title,
		Duration: ComposeDuration(req.DurationHours, req.DurationMinutes),
		Date:     date,
		Metadata: Metadata{Schedule: meta},
		Venue:    req.Venue,
		City:     req.City,
		Niche:    Niche(req.Niche),
	}

	form := NewEditForm(show)
	assert.Equal(t, "2", form.DurationHours)
	assert.Equal(t, "30", form.DurationMinutes)
	assert.Equal(t, "recurring", form.ScheduleKind)
	assert.Equal(t, "2026-01-06", form.StartDate)
	assert.Equal(t, "2026-01-20", form.EndDate)
	assert.Equal(t, []string{"Mondays", "Wednesdays"}, form.SelectedDays)
}

// A row with an uninterpretable legacy date comes back cleared, not guessed
func TestNewEditFormIndeterminateSchedule(t *testing.T) {
	flat := "weekends only"
	show := &Show{Title: "Mystery", Date: &flat}

	form := NewEditForm(show)
	assert.Equal(t, string(ScheduleNone), form.ScheduleKind)
	assert.Empty(t, form.Date)
	assert.Empty(t, form.StartDate)
	assert.Empty(t, form.EndDate)
	assert.Empty(t, form.SelectedDays)
}
