package repository

import (
	"context"

	"venue-reservations/internal/domain/reservation"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// privateEventTitle is the generic label shown for events whose requester
// opted out of public listing.
const privateEventTitle = "Private Event"

// ProjectionRepository maintains public_events, the sanitized copy of
// confirmed reservations that unauthenticated calendar reads hit. It is
// written in the same transaction as the state change that made the row
// stale, never asynchronously.
type ProjectionRepository struct {
	db db.DBTX
}

func NewProjectionRepository(dbtx db.DBTX) *ProjectionRepository {
	return &ProjectionRepository{db: dbtx}
}

func (r *ProjectionRepository) Sync(ctx context.Context, res *reservation.Reservation) error {
	if !res.Status().IsConfirmed() {
		return r.Delete(ctx, res.ID())
	}

	const query = `
		INSERT INTO public_events (
			reservation_id, title, organization, contact_name, starts_at, ends_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (reservation_id) DO UPDATE SET
			title = EXCLUDED.title,
			organization = EXCLUDED.organization,
			contact_name = EXCLUDED.contact_name,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			updated_at = now()`

	title := privateEventTitle
	var organization, contactName pgtype.Text
	if res.IsPublic() {
		title = res.Contact().EventName
		organization = textOrNull(res.Contact().Organization)
		contactName = textOrNull(res.Contact().Name)
	}

	_, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(res.ID()),
		title,
		organization,
		contactName,
		pgconv.TimeToPgtype(res.Slot().Start()),
		pgconv.TimeToPgtype(res.Slot().End()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to sync public event projection", err)
	}
	return nil
}

func (r *ProjectionRepository) Delete(ctx context.Context, reservationID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM public_events WHERE reservation_id = $1`,
		pgconv.UUIDToPgtype(reservationID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to delete public event projection", err)
	}
	return nil
}
