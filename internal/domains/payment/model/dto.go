package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CheckoutRequest is the manual payment submission form. The proof file
// travels alongside as a multipart part, not in this struct.
type CheckoutRequest struct {
	ShowID     uuid.UUID `json:"show_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
}

// Validate checks the form for a guest or authenticated submission
func (r *CheckoutRequest) Validate(authenticated bool) error {
	if r.ShowID == uuid.Nil {
		return &ValidationError{Message: "show_id is required"}
	}

	if !authenticated {
		if strings.TrimSpace(r.GuestName) == "" || strings.TrimSpace(r.GuestEmail) == "" {
			return ErrGuestInfoMissing
		}
		if err := validation.Validate(r.GuestEmail, is.Email); err != nil {
			return &ValidationError{Message: "invalid guest email"}
		}
	}

	return nil
}

// ReviewFilter selects payments for the admin queue
type ReviewFilter struct {
	Status string // pending | approved | rejected | all
	ShowID *uuid.UUID
}

// CheckoutResponse is returned to the payer after a successful submission
type CheckoutResponse struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	AmountCents int64     `json:"amount_cents"`
	ProofURL    string    `json:"proof_url"`
	Status      string    `json:"status"`
}
