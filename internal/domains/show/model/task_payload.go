package model

import "github.com/google/uuid"

// NotifyProducerPayload is enqueued when an admin approves or rejects a
// show. Delivery is best-effort; the status change never waits on it.
type NotifyProducerPayload struct {
	ShowID     uuid.UUID `json:"show_id"`
	ShowTitle  string    `json:"show_title"`
	ProducerID uuid.UUID `json:"producer_id"`
	Status     string    `json:"status"` // approved | rejected
}

// BroadcastShowPayload is enqueued when an admin broadcasts an approved
// show to the whole audience.
type BroadcastShowPayload struct {
	ShowID    uuid.UUID `json:"show_id"`
	ShowTitle string    `json:"show_title"`
}
