package model

import "github.com/google/uuid"

// PaymentSubmittedPayload confirms receipt to an authenticated payer.
// Guests get no account notification; their presigned proof link is the
// only receipt.
type PaymentSubmittedPayload struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	ShowID      uuid.UUID `json:"show_id"`
	ShowTitle   string    `json:"show_title"`
	UserID      uuid.UUID `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
}

// PaymentReviewedPayload notifies the payer of the admin's decision
type PaymentReviewedPayload struct {
	PaymentID uuid.UUID `json:"payment_id"`
	ShowTitle string    `json:"show_title"`
	Status    string    `json:"status"` // approved | rejected
	// Email is set for guests; for account holders the worker resolves
	// the address from the profile.
	UserID *uuid.UUID `json:"user_id,omitempty"`
	Email  string     `json:"email,omitempty"`
}
