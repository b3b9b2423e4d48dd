package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ShowStatus is the moderation state, mutated only by admins
type ShowStatus string

const (
	StatusPending  ShowStatus = "pending"
	StatusApproved ShowStatus = "approved"
	StatusRejected ShowStatus = "rejected"
)

func (s ShowStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s ShowStatus) String() string {
	return string(s)
}

// ProductionStatus is the author-controlled display state
type ProductionStatus string

const (
	ProductionOngoing   ProductionStatus = "ongoing"
	ProductionCompleted ProductionStatus = "completed"
	ProductionDraft     ProductionStatus = "draft"
)

func (s ProductionStatus) IsValid() bool {
	switch s {
	case ProductionOngoing, ProductionCompleted, ProductionDraft:
		return true
	}
	return false
}

// Niche classifies the producer tier for pricing
type Niche string

const (
	NicheLocal      Niche = "local"
	NicheUniversity Niche = "university"
)

func (n Niche) IsValid() bool {
	switch n {
	case NicheLocal, NicheUniversity:
		return true
	}
	return false
}

// Cities is the fixed Metro Manila enumeration for the city field
var Cities = []string{"Mandaluyong", "Taguig", "Manila", "Quezon City", "Makati"}

func IsValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

// CastMember is one {name, role} pair. Order is preserved and
// duplicates are allowed; the whole list is stored as JSONB.
type CastMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Metadata is the side bag stored as JSONB. Its schedule sub-object is
// present if and only if the schedule is recurring.
type Metadata struct {
	Schedule *ScheduleMeta `json:"schedule,omitempty"`
}

// Show is the canonical show record
type Show struct {
	// Identity
	ID         uuid.UUID `json:"id" db:"id"`
	ProducerID uuid.UUID `json:"producer_id" db:"producer_id"`

	// Descriptive
	Title       string         `json:"title" db:"title"`
	Description *string        `json:"description" db:"description"`
	Genres      pq.StringArray `json:"genres" db:"genres"`
	Director    *string        `json:"director" db:"director"`
	Duration    *string        `json:"duration" db:"duration"`

	// Schedule: flat legacy string plus structured metadata
	Date     *string  `json:"date" db:"date"`
	Metadata Metadata `json:"metadata" db:"metadata"`

	// Location
	Venue string `json:"venue" db:"venue"`
	City  string `json:"city" db:"city"`
	Niche Niche  `json:"niche" db:"niche"`

	// Commerce
	Price                *decimal.Decimal `json:"price" db:"price"`
	ReservationFee       *decimal.Decimal `json:"reservation_fee" db:"reservation_fee"`
	TicketLink           *string          `json:"ticket_link" db:"ticket_link"`
	PaymentInstructions  *string          `json:"payment_instructions" db:"payment_instructions"`
	CollectBalanceOnsite bool             `json:"collect_balance_onsite" db:"collect_balance_onsite"`

	// Cast & SEO
	CastMembers []CastMember   `json:"cast_members" db:"cast_members"`
	Tags        pq.StringArray `json:"tags" db:"tags"`

	// Media
	PosterURL *string `json:"poster_url" db:"poster_url"`

	// Lifecycle
	Status           ShowStatus       `json:"status" db:"status"`
	ProductionStatus ProductionStatus `json:"production_status" db:"production_status"`
	DeletedAt        *time.Time       `json:"deleted_at,omitempty" db:"deleted_at"`
	IsFeatured       bool             `json:"is_featured" db:"is_featured"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsDeleted reports whether the record has been soft-deleted
func (s *Show) IsDeleted() bool {
	return s.DeletedAt != nil
}
