package shared

import (
	"fmt"
	"time"

	"venue-reservations/internal/domain/payment"
	"venue-reservations/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

// HasRole reports whether the actor ranks at or above the given role.
func (a Actor) HasRole(min user.Role) bool {
	return a.Role.AtLeast(min)
}

// Result is the structured outcome every user-facing operation returns:
// callers always receive a terminal outcome, never ambiguous state.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Refresh bool   `json:"refresh"`
}

func OK(format string, args ...any) *Result {
	return &Result{Success: true, Message: fmt.Sprintf(format, args...), Refresh: true}
}

func Fail(format string, args ...any) *Result {
	return &Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// DueObligation is the write-side snapshot the automation runner selects:
// an obligation joined with just enough reservation context to notify the
// payer.
type DueObligation struct {
	ObligationID  uuid.UUID
	ReservationID uuid.UUID
	RequesterID   uuid.UUID
	FeeType       payment.FeeType
	AmountCents   int64
	DueDate       time.Time
	EventName     string
	ContactEmail  string
}

// RunRecord is one row of the append-only automation run history.
type RunRecord struct {
	ID      uuid.UUID
	RanAt   time.Time
	Success bool
	Message string
	Report  []byte
}
