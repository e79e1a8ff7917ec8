package pricing

import (
	"time"

	"venue-reservations/internal/domain/holiday"
)

// Tiers holds the two facility-fee levels. Weekday events pay the base tier;
// weekend and holiday events pay the premium tier.
type Tiers struct {
	BaseCents    int64
	PremiumCents int64
}

type Fee struct {
	Cents   int64
	Premium bool
}

// FacilityFee returns the applicable facility-fee tier for an event start
// date. Pure function of the holiday calendar; deterministic and
// year-agnostic.
func FacilityFee(t Tiers, cal *holiday.Calendar, eventStart time.Time) Fee {
	if cal.IsHolidayOrWeekend(eventStart) {
		return Fee{Cents: t.PremiumCents, Premium: true}
	}
	return Fee{Cents: t.BaseCents, Premium: false}
}
