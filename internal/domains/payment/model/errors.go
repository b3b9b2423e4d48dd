package model

import "errors"

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrAlreadyReviewed  = errors.New("payment has already been reviewed")
	ErrMissingProof     = errors.New("proof of payment is required")
	ErrGuestInfoMissing = errors.New("guest name and email are required")
	ErrNoReservationFee = errors.New("show does not collect a reservation fee")
)

// ValidationError carries a user-facing message for a rejected submission
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
