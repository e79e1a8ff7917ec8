package shared

import (
	"context"
	"time"

	"venue-reservations/internal/domain/holiday"
	"venue-reservations/internal/domain/payment"
	"venue-reservations/internal/domain/reservation"
	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Obligations() ObligationRepository
	Slots() SlotRepository
	Projections() ProjectionRepository
	HolidayRules() HolidayRuleRepository
	Users() UserRepository
	Runs() RunRepository
	DB() db.DBTX
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// FindByIDForUpdate takes a row lock so concurrent transitions on the
	// same reservation serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListApprovedEndedBefore(ctx context.Context, cutoff time.Time) ([]*reservation.Reservation, error)
	ListApprovedStartingOn(ctx context.Context, day time.Time) ([]*reservation.Reservation, error)
}

type ObligationRepository interface {
	// CreateAll inserts the schedule atomically; rows that already exist for
	// the (reservation, fee type) key are silently skipped.
	CreateAll(ctx context.Context, obligations []*payment.Obligation) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*payment.Obligation, error)
	FindByTransactionIDForUpdate(ctx context.Context, transactionID string) (*payment.Obligation, error)
	ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*payment.Obligation, error)
	ListByReservationForUpdate(ctx context.Context, reservationID uuid.UUID) ([]*payment.Obligation, error)
	Update(ctx context.Context, o *payment.Obligation) error
	ListPendingDueOn(ctx context.Context, day time.Time) ([]*DueObligation, error)
	ListPendingDueBetween(ctx context.Context, from, to time.Time) ([]*DueObligation, error)
}

// SlotRepository is the confirmed interval registry: the single enforcement
// point for the no-double-booking guarantee.
type SlotRepository interface {
	// Confirm inserts the interval; an intersection with an existing row
	// fails with infra.SlotConflictError carrying the colliding reservation.
	Confirm(ctx context.Context, reservationID uuid.UUID, slot reservation.TimeSlot) error
	// Release removes the row if present; idempotent.
	Release(ctx context.Context, reservationID uuid.UUID) error
}

// ProjectionRepository maintains the privacy-filtered public copy of
// confirmed events.
type ProjectionRepository interface {
	// Sync upserts the sanitized row when the reservation is confirmed and
	// deletes it otherwise.
	Sync(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, reservationID uuid.UUID) error
}

type HolidayRuleRepository interface {
	ListActive(ctx context.Context) ([]holiday.Rule, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// RunRepository appends automation run records; the history is append-only.
type RunRepository interface {
	Insert(ctx context.Context, rec *RunRecord) error
}
