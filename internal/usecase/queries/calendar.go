package queries

import (
	"context"
	"time"

	"venue-reservations/internal/pkg/errs"
)

const maxCalendarRangeDays = 370

// CalendarQueries serves the public, read-only view of confirmed events.
// The projection table is the only state this path reads.
type CalendarQueries interface {
	PublicEvents(ctx context.Context, from, to time.Time) ([]*PublicEventView, error)
}

type PublicEventRepo interface {
	FindInRange(ctx context.Context, from, to time.Time) ([]*PublicEventView, error)
}

type calendarQueriesImpl struct {
	repo PublicEventRepo
}

func NewCalendarQueries(repo PublicEventRepo) CalendarQueries {
	return &calendarQueriesImpl{repo: repo}
}

func (q *calendarQueriesImpl) PublicEvents(ctx context.Context, from, to time.Time) ([]*PublicEventView, error) {
	if !from.Before(to) {
		return nil, errs.Mark(errs.New("range start must precede range end"), errs.ErrValidation)
	}
	if to.Sub(from) > maxCalendarRangeDays*24*time.Hour {
		return nil, errs.Mark(errs.New("range too wide"), errs.ErrValidation)
	}
	return q.repo.FindInRange(ctx, from, to)
}
