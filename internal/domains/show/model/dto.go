package model

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ShowRequest is the authoring form draft: one field per form input,
// assembled into a Show by the service on submit.
type ShowRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Genres      []string     `json:"genres"`
	Director    string       `json:"director"`
	CastMembers []CastMember `json:"cast_members"`
	Tags        []string     `json:"tags"`

	DurationHours   int `json:"duration_hours"`
	DurationMinutes int `json:"duration_minutes"`

	ScheduleKind string   `json:"schedule_kind"` // single | recurring
	Date         string   `json:"date"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	SelectedDays []string `json:"selected_days"`

	Venue string `json:"venue"`
	City  string `json:"city"`
	Niche string `json:"niche"`

	Price                *float64 `json:"price"`
	TicketLink           string   `json:"ticket_link"`
	PaymentInstructions  string   `json:"payment_instructions"`
	CollectBalanceOnsite bool     `json:"collect_balance_onsite"`

	ProductionStatus string `json:"production_status"`
}

// Schedule builds the tagged schedule variant from the form fields
func (r *ShowRequest) Schedule() Schedule {
	switch ScheduleKind(r.ScheduleKind) {
	case ScheduleRecurring:
		return Schedule{
			Kind:         ScheduleRecurring,
			StartDate:    r.StartDate,
			EndDate:      r.EndDate,
			SelectedDays: r.SelectedDays,
		}
	default:
		return Schedule{Kind: ScheduleSingle, Date: r.Date}
	}
}

// Validate checks the draft before any network or storage work.
// All missing required fields are reported in a single message, matching
// the form's one-shot error banner.
func (r *ShowRequest) Validate() error {
	var missing []string

	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "Title")
	}
	if ScheduleKind(r.ScheduleKind) == ScheduleRecurring {
		if r.StartDate == "" {
			missing = append(missing, "Start Date")
		}
		if r.EndDate == "" {
			missing = append(missing, "End Date")
		}
		if len(CanonicalDays(r.SelectedDays)) == 0 {
			missing = append(missing, "Show Days")
		}
	} else if r.Date == "" {
		missing = append(missing, "Show Date")
	}
	if strings.TrimSpace(r.Venue) == "" {
		missing = append(missing, "Venue")
	}
	if r.City == "" {
		missing = append(missing, "City")
	}
	if r.Niche == "" {
		missing = append(missing, "Niche")
	}

	if len(missing) > 0 {
		return &ValidationError{
			Message: fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	if r.Price != nil && *r.Price < 0 {
		return &ValidationError{
			Message: fmt.Sprintf("Price cannot be negative: %v", *r.Price),
		}
	}
	if !IsValidCity(r.City) {
		return &ValidationError{
			Message: fmt.Sprintf("Unknown city: %s", r.City),
		}
	}
	if !Niche(r.Niche).IsValid() {
		return &ValidationError{
			Message: fmt.Sprintf("Unknown niche: %s", r.Niche),
		}
	}
	if r.ProductionStatus != "" && !ProductionStatus(r.ProductionStatus).IsValid() {
		return &ValidationError{
			Message: fmt.Sprintf("Unknown production status: %s", r.ProductionStatus),
		}
	}

	err := validation.ValidateStruct(r,
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.PaymentInstructions, validation.Length(0, 500)),
		validation.Field(&r.TicketLink, is.URL),
		validation.Field(&r.DurationHours, validation.Min(0)),
		validation.Field(&r.DurationMinutes, validation.Min(0), validation.Max(59)),
	)
	if err != nil {
		return &ValidationError{Message: err.Error()}
	}

	return nil
}

// ShowEditForm carries the decomposed field values the authoring form
// needs to reproduce a record in edit mode. Ambiguous legacy values come
// back empty rather than guessed.
type ShowEditForm struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Genres      []string     `json:"genres"`
	Director    string       `json:"director"`
	CastMembers []CastMember `json:"cast_members"`
	Tags        []string     `json:"tags"`

	DurationHours   string `json:"duration_hours"`
	DurationMinutes string `json:"duration_minutes"`

	ScheduleKind string   `json:"schedule_kind"`
	Date         string   `json:"date"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	SelectedDays []string `json:"selected_days"`

	Venue string `json:"venue"`
	City  string `json:"city"`
	Niche string `json:"niche"`

	Price                *float64 `json:"price"`
	TicketLink           string   `json:"ticket_link"`
	PaymentInstructions  string   `json:"payment_instructions"`
	CollectBalanceOnsite bool     `json:"collect_balance_onsite"`

	ProductionStatus string  `json:"production_status"`
	PosterURL        *string `json:"poster_url"`
}

// NewEditForm decomposes a persisted show back into form fields
func NewEditForm(s *Show) *ShowEditForm {
	form := &ShowEditForm{
		Title:                s.Title,
		Genres:               s.Genres,
		CastMembers:          s.CastMembers,
		Tags:                 s.Tags,
		Venue:                s.Venue,
		City:                 s.City,
		Niche:                string(s.Niche),
		CollectBalanceOnsite: s.CollectBalanceOnsite,
		ProductionStatus:     string(s.ProductionStatus),
		PosterURL:            s.PosterURL,
	}

	if s.Description != nil {
		form.Description = *s.Description
	}
	if s.Director != nil {
		form.Director = *s.Director
	}
	if s.TicketLink != nil {
		form.TicketLink = *s.TicketLink
	}
	if s.PaymentInstructions != nil {
		form.PaymentInstructions = *s.PaymentInstructions
	}
	if s.Price != nil {
		price, _ := s.Price.Float64()
		form.Price = &price
	}

	form.DurationHours, form.DurationMinutes = DecomposeDuration(s.Duration)

	schedule := DecomposeSchedule(s.Date, s.Metadata.Schedule)
	form.ScheduleKind = string(schedule.Kind)
	switch schedule.Kind {
	case ScheduleSingle:
		form.Date = schedule.Date
	case ScheduleRecurring:
		form.StartDate = schedule.StartDate
		form.EndDate = schedule.EndDate
		form.SelectedDays = schedule.SelectedDays
	}

	return form
}
