package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot       = errors.New("start time must be before end time")
	ErrNoticeNotMet          = errors.New("advance notice minimum not met")
	ErrInvalidStatus         = errors.New("invalid reservation status")
	ErrInvalidAttendeeCount  = errors.New("attendee count out of range")
	ErrPolicyNotAcknowledged = errors.New("facility policy must be acknowledged")
	ErrReasonRequired        = errors.New("a reason is required")
	ErrIllegalTransition     = errors.New("transition not allowed from current status")
	ErrAlreadyInStatus       = errors.New("reservation already in target status")
	ErrEventNotEnded         = errors.New("event has not ended yet")
	ErrMissingEventName      = errors.New("event name is required")
)

// Reservation is the request/approval/cancellation aggregate. Status moves
// Pending -> {Approved, Denied, Cancelled}, Approved -> {Cancelled,
// Completed}, Completed -> Closed. Transition methods mutate only after all
// preconditions hold.
type Reservation struct {
	id          uuid.UUID
	requesterID uuid.UUID
	contact     Contact
	slot        TimeSlot
	attendees   int
	isPublic    bool
	policyAck   bool
	status      Status

	feeCents    *int64
	premiumRate *bool

	reviewedBy  *uuid.UUID
	reviewedAt  *time.Time
	cancelledBy *uuid.UUID
	cancelledAt *time.Time
	reason      *string

	createdAt time.Time
	updatedAt time.Time
}

// NewReservation validates a submission. capacity and noticeDays come from
// venue policy; now from the injected clock.
func NewReservation(
	requesterID uuid.UUID,
	contact Contact,
	slot TimeSlot,
	attendees int,
	isPublic bool,
	policyAck bool,
	capacity int,
	noticeDays int,
	now time.Time,
) (*Reservation, error) {
	if strings.TrimSpace(contact.EventName) == "" {
		return nil, ErrMissingEventName
	}
	if attendees < 1 || attendees > capacity {
		return nil, ErrInvalidAttendeeCount
	}
	if !policyAck {
		return nil, ErrPolicyNotAcknowledged
	}
	if err := slot.ValidateNoticeAt(now, noticeDays); err != nil {
		return nil, err
	}

	return &Reservation{
		id:          uuid.New(),
		requesterID: requesterID,
		contact:     contact,
		slot:        slot,
		attendees:   attendees,
		isPublic:    isPublic,
		policyAck:   policyAck,
		status:      StatusPending,
	}, nil
}

func ReconstructReservation(
	id, requesterID uuid.UUID,
	contact Contact,
	slot TimeSlot,
	attendees int,
	isPublic, policyAck bool,
	status Status,
	feeCents *int64,
	premiumRate *bool,
	reviewedBy *uuid.UUID,
	reviewedAt *time.Time,
	cancelledBy *uuid.UUID,
	cancelledAt *time.Time,
	reason *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		requesterID: requesterID,
		contact:     contact,
		slot:        slot,
		attendees:   attendees,
		isPublic:    isPublic,
		policyAck:   policyAck,
		status:      status,
		feeCents:    feeCents,
		premiumRate: premiumRate,
		reviewedBy:  reviewedBy,
		reviewedAt:  reviewedAt,
		cancelledBy: cancelledBy,
		cancelledAt: cancelledAt,
		reason:      reason,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// guard returns ErrAlreadyInStatus for a repeat invocation on the target
// status and ErrIllegalTransition for anything else illegal. Callers turn
// ErrAlreadyInStatus into a not-applicable no-op result.
func (r *Reservation) guard(target Status) error {
	if r.status == target {
		return ErrAlreadyInStatus
	}
	if !r.status.CanTransitionTo(target) {
		return ErrIllegalTransition
	}
	return nil
}

// Approve stamps the computed fee and review audit fields. Conflict-guard
// registration and obligation creation are owned by the approving use case.
func (r *Reservation) Approve(actor uuid.UUID, feeCents int64, premium bool, now time.Time) error {
	if err := r.guard(StatusApproved); err != nil {
		return err
	}
	r.status = StatusApproved
	r.feeCents = &feeCents
	r.premiumRate = &premium
	r.reviewedBy = &actor
	r.reviewedAt = &now
	return nil
}

func (r *Reservation) Deny(actor uuid.UUID, reason string, now time.Time) error {
	if err := r.guard(StatusDenied); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	r.status = StatusDenied
	r.reason = &reason
	r.reviewedBy = &actor
	r.reviewedAt = &now
	return nil
}

func (r *Reservation) Cancel(actor uuid.UUID, reason string, now time.Time) error {
	if err := r.guard(StatusCancelled); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	r.status = StatusCancelled
	r.reason = &reason
	r.cancelledBy = &actor
	r.cancelledAt = &now
	return nil
}

// Complete requires the interval to have ended unless force is set (staff
// manual override). The confirmed slot is not released: historical occupancy
// stays blocked.
func (r *Reservation) Complete(now time.Time, force bool) error {
	if err := r.guard(StatusCompleted); err != nil {
		return err
	}
	if !force && !r.slot.HasEnded(now) {
		return ErrEventNotEnded
	}
	r.status = StatusCompleted
	return nil
}

// Close finishes the lifecycle. The deposit-settlement precondition is
// checked by the closing use case, which sees the payment ledger.
func (r *Reservation) Close() error {
	if err := r.guard(StatusClosed); err != nil {
		return err
	}
	r.status = StatusClosed
	return nil
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) RequesterID() uuid.UUID  { return r.requesterID }
func (r *Reservation) Contact() Contact        { return r.contact }
func (r *Reservation) Slot() TimeSlot          { return r.slot }
func (r *Reservation) Attendees() int          { return r.attendees }
func (r *Reservation) IsPublic() bool          { return r.isPublic }
func (r *Reservation) PolicyAcknowledged() bool { return r.policyAck }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) FeeCents() *int64        { return r.feeCents }
func (r *Reservation) PremiumRate() *bool      { return r.premiumRate }
func (r *Reservation) ReviewedBy() *uuid.UUID  { return r.reviewedBy }
func (r *Reservation) ReviewedAt() *time.Time  { return r.reviewedAt }
func (r *Reservation) CancelledBy() *uuid.UUID { return r.cancelledBy }
func (r *Reservation) CancelledAt() *time.Time { return r.cancelledAt }
func (r *Reservation) Reason() *string         { return r.reason }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
