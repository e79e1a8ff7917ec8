package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ReservationView struct {
	ID             uuid.UUID  `json:"id"`
	RequesterID    uuid.UUID  `json:"requester_id"`
	RequesterEmail string     `json:"requester_email"`
	EventName      string     `json:"event_name"`
	Organization   *string    `json:"organization,omitempty"`
	ContactName    *string    `json:"contact_name,omitempty"`
	ContactEmail   string     `json:"contact_email"`
	ContactPhone   *string    `json:"contact_phone,omitempty"`
	StartsAt       time.Time  `json:"starts_at"`
	EndsAt         time.Time  `json:"ends_at"`
	Attendees      int32      `json:"attendees"`
	IsPublic       bool       `json:"is_public"`
	Status         string     `json:"status"`
	FeeCents       *int64     `json:"fee_cents,omitempty"`
	PremiumRate    *bool      `json:"premium_rate,omitempty"`
	ReviewedBy     *uuid.UUID `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CancelledBy    *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	Reason         *string    `json:"reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID        uuid.UUID `json:"id"`
	EventName string    `json:"event_name"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Attendees int32     `json:"attendees"`
	Status    string    `json:"status"`
	FeeCents  *int64    `json:"fee_cents,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ObligationView struct {
	ID            uuid.UUID  `json:"id"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	FeeType       string     `json:"fee_type"`
	AmountCents   int64      `json:"amount_cents"`
	DueDate       time.Time  `json:"due_date"`
	Status        string     `json:"status"`
	Method        *string    `json:"method,omitempty"`
	SettledOn     *time.Time `json:"settled_on,omitempty"`
	SettledCents  *int64     `json:"settled_cents,omitempty"`
	RefundedCents int64      `json:"refunded_cents"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PublicEventView is the sanitized projection row. Organization and contact
// are nil for private events.
type PublicEventView struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Title         string    `json:"title"`
	Organization  *string   `json:"organization,omitempty"`
	ContactName   *string   `json:"contact_name,omitempty"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
}

type HolidayView struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

type AuthorizedUserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
}

type RunView struct {
	ID      uuid.UUID `json:"id"`
	RanAt   time.Time `json:"ran_at"`
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Report  []byte    `json:"report"`
}
