//go:build unit

package holiday_test

import (
	"testing"
	"time"

	"venue-reservations/internal/domain/holiday"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedDate(name string, month time.Month, day int) holiday.Rule {
	return holiday.Rule{ID: uuid.New(), Name: name, Kind: holiday.KindFixedDate, Month: month, Day: day, Active: true}
}

func nthWeekday(name string, month time.Month, weekday time.Weekday, ordinal int) holiday.Rule {
	return holiday.Rule{ID: uuid.New(), Name: name, Kind: holiday.KindNthWeekday, Month: month, Weekday: weekday, Ordinal: ordinal, Active: true}
}

func lastWeekday(name string, month time.Month, weekday time.Weekday) holiday.Rule {
	return holiday.Rule{ID: uuid.New(), Name: name, Kind: holiday.KindLastWeekday, Month: month, Weekday: weekday, Active: true}
}

func relative(name string, ref uuid.UUID, offset int) holiday.Rule {
	return holiday.Rule{ID: uuid.New(), Name: name, Kind: holiday.KindRelative, RefRuleID: &ref, OffsetDays: offset, Active: true}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendarResolve(t *testing.T) {
	t.Run("fixed date resolves to same day every year", func(t *testing.T) {
		rule := fixedDate("Independence Day", time.July, 4)
		cal, err := holiday.NewCalendar([]holiday.Rule{rule})
		require.NoError(t, err)

		for _, year := range []int{2024, 2025, 2030} {
			d, ok := cal.Resolve(rule, year)
			require.True(t, ok)
			assert.Equal(t, day(year, time.July, 4), d)
		}
	})

	t.Run("nth weekday", func(t *testing.T) {
		thanksgiving := nthWeekday("Thanksgiving", time.November, time.Thursday, 4)
		cal, err := holiday.NewCalendar([]holiday.Rule{thanksgiving})
		require.NoError(t, err)

		cases := []struct {
			year int
			want time.Time
		}{
			{2024, day(2024, time.November, 28)},
			{2025, day(2025, time.November, 27)},
			{2026, day(2026, time.November, 26)},
		}
		for _, c := range cases {
			d, ok := cal.Resolve(thanksgiving, c.year)
			require.True(t, ok, "year %d", c.year)
			assert.Equal(t, c.want, d, "year %d", c.year)
		}
	})

	t.Run("nth weekday with no occurrence that year", func(t *testing.T) {
		// February 2025 has only four Mondays
		rule := nthWeekday("Phantom Holiday", time.February, time.Monday, 5)
		cal, err := holiday.NewCalendar([]holiday.Rule{rule})
		require.NoError(t, err)

		_, ok := cal.Resolve(rule, 2025)
		assert.False(t, ok)
	})

	t.Run("last weekday", func(t *testing.T) {
		memorial := lastWeekday("Memorial Day", time.May, time.Monday)
		cal, err := holiday.NewCalendar([]holiday.Rule{memorial})
		require.NoError(t, err)

		cases := []struct {
			year int
			want time.Time
		}{
			{2024, day(2024, time.May, 27)},
			{2025, day(2025, time.May, 26)},
			{2026, day(2026, time.May, 25)},
		}
		for _, c := range cases {
			d, ok := cal.Resolve(memorial, c.year)
			require.True(t, ok, "year %d", c.year)
			assert.Equal(t, c.want, d, "year %d", c.year)
		}
	})

	t.Run("last weekday of December stays within the year", func(t *testing.T) {
		rule := lastWeekday("Year End", time.December, time.Wednesday)
		cal, err := holiday.NewCalendar([]holiday.Rule{rule})
		require.NoError(t, err)

		d, ok := cal.Resolve(rule, 2025)
		require.True(t, ok)
		assert.Equal(t, day(2025, time.December, 31), d)
	})

	t.Run("relative rule offsets its parent", func(t *testing.T) {
		thanksgiving := nthWeekday("Thanksgiving", time.November, time.Thursday, 4)
		dayAfter := relative("Day After Thanksgiving", thanksgiving.ID, 1)
		cal, err := holiday.NewCalendar([]holiday.Rule{thanksgiving, dayAfter})
		require.NoError(t, err)

		d, ok := cal.Resolve(dayAfter, 2025)
		require.True(t, ok)
		assert.Equal(t, day(2025, time.November, 28), d)
	})

	t.Run("relative rule with negative offset", func(t *testing.T) {
		christmas := fixedDate("Christmas", time.December, 25)
		eve := relative("Christmas Eve", christmas.ID, -1)
		cal, err := holiday.NewCalendar([]holiday.Rule{christmas, eve})
		require.NoError(t, err)

		d, ok := cal.Resolve(eve, 2025)
		require.True(t, ok)
		assert.Equal(t, day(2025, time.December, 24), d)
	})

	t.Run("relative rule inherits parent's missing occurrence", func(t *testing.T) {
		phantom := nthWeekday("Phantom", time.February, time.Monday, 5)
		dependent := relative("Dependent", phantom.ID, 1)
		cal, err := holiday.NewCalendar([]holiday.Rule{phantom, dependent})
		require.NoError(t, err)

		_, ok := cal.Resolve(dependent, 2025)
		assert.False(t, ok)
	})

	t.Run("cyclic relative rules resolve as no occurrence", func(t *testing.T) {
		idA, idB := uuid.New(), uuid.New()
		a := holiday.Rule{ID: idA, Name: "A", Kind: holiday.KindRelative, RefRuleID: &idB, OffsetDays: 1, Active: true}
		b := holiday.Rule{ID: idB, Name: "B", Kind: holiday.KindRelative, RefRuleID: &idA, OffsetDays: 1, Active: true}
		cal, err := holiday.NewCalendar([]holiday.Rule{a, b})
		require.NoError(t, err)

		_, ok := cal.Resolve(a, 2025)
		assert.False(t, ok)
	})
}

func TestNewCalendarValidation(t *testing.T) {
	t.Run("relative rule referencing unknown rule is rejected", func(t *testing.T) {
		unknown := uuid.New()
		rule := relative("Orphan", unknown, 1)

		_, err := holiday.NewCalendar([]holiday.Rule{rule})
		require.ErrorIs(t, err, holiday.ErrUnknownRef)
	})

	t.Run("invalid kind is rejected", func(t *testing.T) {
		rule := holiday.Rule{ID: uuid.New(), Name: "Bad", Kind: holiday.RuleKind("lunar"), Active: true}

		_, err := holiday.NewCalendar([]holiday.Rule{rule})
		require.ErrorIs(t, err, holiday.ErrInvalidRuleKind)
	})
}

func TestIsHolidayOrWeekend(t *testing.T) {
	thanksgiving := nthWeekday("Thanksgiving", time.November, time.Thursday, 4)
	rules := []holiday.Rule{
		fixedDate("Independence Day", time.July, 4),
		thanksgiving,
		relative("Day After Thanksgiving", thanksgiving.ID, 1),
		{ID: uuid.New(), Name: "Weekend", Kind: holiday.KindWeekend, Active: true},
	}
	cal, err := holiday.NewCalendar(rules)
	require.NoError(t, err)

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"fixed-date holiday on a weekday", day(2025, time.July, 4), true},
		{"saturday", day(2025, time.July, 5), true},
		{"sunday", day(2025, time.July, 6), true},
		{"plain monday", day(2025, time.July, 7), false},
		{"thanksgiving", day(2025, time.November, 27), true},
		{"day after thanksgiving via relative rule", day(2025, time.November, 28), true},
		{"weekday before thanksgiving", day(2025, time.November, 25), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, cal.IsHolidayOrWeekend(c.date))
		})
	}

	t.Run("inactive rules are ignored", func(t *testing.T) {
		inactive := fixedDate("Suspended", time.March, 3)
		inactive.Active = false
		cal, err := holiday.NewCalendar([]holiday.Rule{inactive})
		require.NoError(t, err)

		// 2025-03-03 is a Monday
		assert.False(t, cal.IsHolidayOrWeekend(day(2025, time.March, 3)))
	})
}

func TestHolidays(t *testing.T) {
	thanksgiving := nthWeekday("Thanksgiving", time.November, time.Thursday, 4)
	rules := []holiday.Rule{
		thanksgiving,
		fixedDate("Independence Day", time.July, 4),
		relative("Day After Thanksgiving", thanksgiving.ID, 1),
		nthWeekday("Phantom", time.February, time.Monday, 5),
		{ID: uuid.New(), Name: "Weekend", Kind: holiday.KindWeekend, Active: true},
	}
	cal, err := holiday.NewCalendar(rules)
	require.NoError(t, err)

	occurrences := cal.Holidays(2025)
	require.Len(t, occurrences, 3, "phantom and weekend rules are omitted")

	assert.Equal(t, "Independence Day", occurrences[0].Name)
	assert.Equal(t, day(2025, time.July, 4), occurrences[0].Date)
	assert.Equal(t, "Thanksgiving", occurrences[1].Name)
	assert.Equal(t, day(2025, time.November, 27), occurrences[1].Date)
	assert.Equal(t, "Day After Thanksgiving", occurrences[2].Name)
	assert.Equal(t, day(2025, time.November, 28), occurrences[2].Date)
}
