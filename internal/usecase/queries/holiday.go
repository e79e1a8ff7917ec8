package queries

import (
	"context"

	"venue-reservations/internal/domain/holiday"
	"venue-reservations/internal/pkg/errs"
)

type HolidayQueries interface {
	ListHolidays(ctx context.Context, year int) ([]*HolidayView, error)
}

type HolidayRuleRepo interface {
	ListActive(ctx context.Context) ([]holiday.Rule, error)
}

type holidayQueriesImpl struct {
	repo HolidayRuleRepo
}

func NewHolidayQueries(repo HolidayRuleRepo) HolidayQueries {
	return &holidayQueriesImpl{repo: repo}
}

func (q *holidayQueriesImpl) ListHolidays(ctx context.Context, year int) ([]*HolidayView, error) {
	if year < 1900 || year > 2200 {
		return nil, errs.Mark(errs.New("year out of range"), errs.ErrValidation)
	}

	rules, err := q.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	cal, err := holiday.NewCalendar(rules)
	if err != nil {
		return nil, errs.Wrap(err, "invalid holiday rule configuration")
	}

	occurrences := cal.Holidays(year)
	views := make([]*HolidayView, len(occurrences))
	for i, occ := range occurrences {
		views[i] = &HolidayView{Name: occ.Name, Date: occ.Date}
	}
	return views, nil
}
