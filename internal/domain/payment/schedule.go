package payment

import (
	"time"

	"github.com/google/uuid"
)

// FeePolicy fixes the obligation amounts and due-date offsets per fee type.
// The facility amount is not here: it is tier-dependent and computed at
// approval time.
type FeePolicy struct {
	DepositCents          int64
	CleaningCents         int64
	FacilityDueDaysBefore int
	CleaningDueDaysBefore int
}

// BuildSchedule produces the full obligation set created atomically when a
// reservation is approved: refundable deposit due immediately, facility fee
// due N days before the event, cleaning fee due M days before.
func BuildSchedule(
	reservationID uuid.UUID,
	policy FeePolicy,
	facilityCents int64,
	approvedOn time.Time,
	eventStart time.Time,
) ([]*Obligation, error) {
	deposit, err := NewObligation(reservationID, FeeDeposit, policy.DepositCents, dateOf(approvedOn))
	if err != nil {
		return nil, err
	}
	facility, err := NewObligation(reservationID, FeeFacility, facilityCents, dateOf(eventStart.AddDate(0, 0, -policy.FacilityDueDaysBefore)))
	if err != nil {
		return nil, err
	}
	cleaning, err := NewObligation(reservationID, FeeCleaning, policy.CleaningCents, dateOf(eventStart.AddDate(0, 0, -policy.CleaningDueDaysBefore)))
	if err != nil {
		return nil, err
	}
	return []*Obligation{deposit, facility, cleaning}, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
