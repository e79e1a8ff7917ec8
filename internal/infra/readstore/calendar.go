package readstore

import (
	"context"
	"time"

	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/pgconv"
	"venue-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CalendarReadStore reads only the public_events projection; requester
// identity and contact details for private events never appear in its rows.
type CalendarReadStore struct {
	db db.DBTX
}

func NewCalendarReadStore(dbtx db.DBTX) *CalendarReadStore {
	return &CalendarReadStore{db: dbtx}
}

func (r *CalendarReadStore) FindInRange(ctx context.Context, from, to time.Time) ([]*queries.PublicEventView, error) {
	const query = `
		SELECT reservation_id, title, organization, contact_name, starts_at,
		       ends_at
		FROM public_events
		WHERE starts_at < $2 AND ends_at > $1
		ORDER BY starts_at`

	rows, err := r.db.Query(ctx, query, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list public events", err)
	}
	defer rows.Close()

	var result []*queries.PublicEventView
	for rows.Next() {
		var (
			reservationID    pgtype.UUID
			title            string
			organization     pgtype.Text
			contactName      pgtype.Text
			startsAt, endsAt pgtype.Timestamptz
		)
		if err := rows.Scan(&reservationID, &title, &organization, &contactName, &startsAt, &endsAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan public event", err)
		}
		result = append(result, &queries.PublicEventView{
			ReservationID: uuid.UUID(reservationID.Bytes),
			Title:         title,
			Organization:  pgconv.StringPtrFromPgtype(organization),
			ContactName:   pgconv.StringPtrFromPgtype(contactName),
			StartsAt:      startsAt.Time,
			EndsAt:        endsAt.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate public events", err)
	}
	return result, nil
}
