package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile mirrors the profiles table owned by the auth provider.
// This service reads it for role checks, producer niche lookups and
// notification recipients; it never writes it.
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"` // audience | producer | admin
	GroupName *string   `json:"group_name" db:"group_name"`
	Username  *string   `json:"username" db:"username"`
	Niche     *string   `json:"niche" db:"niche"` // local | university
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
