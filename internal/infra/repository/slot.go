package repository

import (
	"context"
	"errors"

	"venue-reservations/internal/domain/reservation"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const pgErrCodeExclusionViolation = "23P01"

// SlotRepository owns the confirmed interval registry. The table carries a
// gist exclusion constraint on the tstzrange, so even a write that races past
// the explicit overlap check cannot commit a double booking.
type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

func (r *SlotRepository) Confirm(ctx context.Context, reservationID uuid.UUID, slot reservation.TimeSlot) error {
	collidingID, err := r.findOverlap(ctx, slot)
	if err != nil {
		return err
	}
	if collidingID != uuid.Nil && collidingID != reservationID {
		return infra.SlotConflictError{CollidingID: collidingID}
	}

	const query = `
		INSERT INTO confirmed_slots (reservation_id, slot)
		VALUES ($1, tstzrange($2, $3, '[)'))
		ON CONFLICT (reservation_id) DO NOTHING`

	_, err = r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(reservationID),
		pgconv.TimeToPgtype(slot.Start()),
		pgconv.TimeToPgtype(slot.End()),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeExclusionViolation {
			// Lost a race with a concurrent confirmation; report whoever won.
			if id, findErr := r.findOverlap(ctx, slot); findErr == nil && id != uuid.Nil {
				return infra.SlotConflictError{CollidingID: id}
			}
			return infra.SlotConflictError{}
		}
		return infra.WrapRepoErr("failed to confirm slot", err)
	}
	return nil
}

func (r *SlotRepository) Release(ctx context.Context, reservationID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM confirmed_slots WHERE reservation_id = $1`,
		pgconv.UUIDToPgtype(reservationID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release slot", err)
	}
	return nil
}

func (r *SlotRepository) findOverlap(ctx context.Context, slot reservation.TimeSlot) (uuid.UUID, error) {
	const query = `
		SELECT reservation_id FROM confirmed_slots
		WHERE slot && tstzrange($1, $2, '[)')
		LIMIT 1
		FOR UPDATE`

	var id pgtype.UUID
	err := r.db.QueryRow(ctx, query,
		pgconv.TimeToPgtype(slot.Start()),
		pgconv.TimeToPgtype(slot.End()),
	).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, nil
		}
		return uuid.Nil, infra.WrapRepoErr("failed to check slot overlap", err)
	}
	return uuid.UUID(id.Bytes), nil
}
