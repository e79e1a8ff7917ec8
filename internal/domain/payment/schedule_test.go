//go:build unit

package payment_test

import (
	"testing"
	"time"

	"venue-reservations/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchedule(t *testing.T) {
	policy := payment.FeePolicy{
		DepositCents:          50000,
		CleaningCents:         30000,
		FacilityDueDaysBefore: 14,
		CleaningDueDaysBefore: 7,
	}
	reservationID := uuid.New()
	approvedOn := time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)
	eventStart := time.Date(2025, 7, 10, 18, 0, 0, 0, time.UTC)

	schedule, err := payment.BuildSchedule(reservationID, policy, 250000, approvedOn, eventStart)
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	byType := map[payment.FeeType]*payment.Obligation{}
	for _, o := range schedule {
		assert.Equal(t, reservationID, o.ReservationID())
		assert.Equal(t, payment.StatusPending, o.Status())
		byType[o.FeeType()] = o
	}

	deposit := byType[payment.FeeDeposit]
	require.NotNil(t, deposit)
	assert.Equal(t, int64(50000), deposit.AmountCents())
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), deposit.DueDate(), "deposit is due on the approval date")

	facility := byType[payment.FeeFacility]
	require.NotNil(t, facility)
	assert.Equal(t, int64(250000), facility.AmountCents())
	assert.Equal(t, time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC), facility.DueDate(), "facility fee is due 14 days before the event")

	cleaning := byType[payment.FeeCleaning]
	require.NotNil(t, cleaning)
	assert.Equal(t, int64(30000), cleaning.AmountCents())
	assert.Equal(t, time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC), cleaning.DueDate(), "cleaning fee is due 7 days before the event")
}

func TestBuildScheduleRejectsNegativeFacilityFee(t *testing.T) {
	policy := payment.FeePolicy{DepositCents: 50000, CleaningCents: 30000, FacilityDueDaysBefore: 14, CleaningDueDaysBefore: 7}

	_, err := payment.BuildSchedule(uuid.New(), policy, -1, time.Now(), time.Now().AddDate(0, 0, 30))
	require.ErrorIs(t, err, payment.ErrNegativeAmount)
}
