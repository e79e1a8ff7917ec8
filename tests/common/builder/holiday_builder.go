//go:build unit || e2e

package builder

import (
	"time"

	"venue-reservations/internal/domain/holiday"

	"github.com/google/uuid"
)

// DefaultHolidayRules mirrors the seeded rule set: July 4, Thanksgiving, the
// day after Thanksgiving and Memorial Day.
func DefaultHolidayRules() []holiday.Rule {
	thanksgiving := holiday.Rule{
		ID:      uuid.New(),
		Name:    "Thanksgiving",
		Kind:    holiday.KindNthWeekday,
		Month:   time.November,
		Weekday: time.Thursday,
		Ordinal: 4,
		Active:  true,
	}
	return []holiday.Rule{
		{
			ID:     uuid.New(),
			Name:   "Independence Day",
			Kind:   holiday.KindFixedDate,
			Month:  time.July,
			Day:    4,
			Active: true,
		},
		thanksgiving,
		{
			ID:         uuid.New(),
			Name:       "Day After Thanksgiving",
			Kind:       holiday.KindRelative,
			RefRuleID:  &thanksgiving.ID,
			OffsetDays: 1,
			Active:     true,
		},
		{
			ID:      uuid.New(),
			Name:    "Memorial Day",
			Kind:    holiday.KindLastWeekday,
			Month:   time.May,
			Weekday: time.Monday,
			Active:  true,
		},
	}
}
