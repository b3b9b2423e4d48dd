package model

import "errors"

var (
	ErrShowNotFound      = errors.New("show not found")
	ErrNotOwner          = errors.New("show belongs to another producer")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrShowNotApproved   = errors.New("show is not approved")
	ErrShowDeleted       = errors.New("show has been deleted")
	ErrShowNotDeleted    = errors.New("show is not deleted")
	ErrBroadcastInFlight = errors.New("broadcast already in progress")
)

// ValidationError is a client-facing pre-network validation failure
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
