//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"venue-reservations/internal/domain/holiday"
	"venue-reservations/internal/domain/pricing"
	"venue-reservations/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacilityFee(t *testing.T) {
	tiers := pricing.Tiers{BaseCents: 150000, PremiumCents: 250000}
	cal, err := holiday.NewCalendar(builder.DefaultHolidayRules())
	require.NoError(t, err)

	cases := []struct {
		name        string
		eventStart  time.Time
		wantCents   int64
		wantPremium bool
	}{
		{
			name:       "plain weekday gets base tier",
			eventStart: time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC), // Wednesday
			wantCents:  150000,
		},
		{
			name:        "saturday gets premium tier",
			eventStart:  time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC),
			wantCents:   250000,
			wantPremium: true,
		},
		{
			name:        "fixed-date holiday on a weekday gets premium tier",
			eventStart:  time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC), // Friday
			wantCents:   250000,
			wantPremium: true,
		},
		{
			name:        "thanksgiving gets premium tier",
			eventStart:  time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC),
			wantCents:   250000,
			wantPremium: true,
		},
		{
			name:        "day after thanksgiving gets premium tier",
			eventStart:  time.Date(2025, 11, 28, 12, 0, 0, 0, time.UTC),
			wantCents:   250000,
			wantPremium: true,
		},
		{
			name:       "weekday before a holiday stays base tier",
			eventStart: time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC), // Thursday
			wantCents:  150000,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fee := pricing.FacilityFee(tiers, cal, c.eventStart)
			assert.Equal(t, c.wantCents, fee.Cents)
			assert.Equal(t, c.wantPremium, fee.Premium)
		})
	}
}
