package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the admin review state of a submitted payment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentApproved, PaymentRejected:
		return true
	}
	return false
}

// Payment is one manual reservation-fee payment. Exactly one of UserID
// or the guest pair is set: authenticated reservations carry the account
// id, guest reservations carry name and email.
type Payment struct {
	ID     uuid.UUID `json:"id" db:"id"`
	ShowID uuid.UUID `json:"show_id" db:"show_id"`

	UserID     *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	GuestName  *string    `json:"guest_name,omitempty" db:"guest_name"`
	GuestEmail *string    `json:"guest_email,omitempty" db:"guest_email"`

	// AmountCents is the reservation fee in centavos
	AmountCents int64 `json:"amount_cents" db:"amount_cents"`

	// ProofKey is the object key in the proofs bucket; ProofURL is the
	// presigned link minted at submission time and expires.
	ProofKey string `json:"proof_key" db:"proof_key"`
	ProofURL string `json:"proof_url" db:"proof_url"`

	Status     PaymentStatus `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	ReviewedAt *time.Time    `json:"reviewed_at,omitempty" db:"reviewed_at"`
}

// IsGuest reports whether this payment was submitted without an account
func (p *Payment) IsGuest() bool {
	return p.UserID == nil
}

// PayerEmail returns the address review notifications go to, when known
func (p *Payment) PayerEmail() string {
	if p.GuestEmail != nil {
		return *p.GuestEmail
	}
	return ""
}
