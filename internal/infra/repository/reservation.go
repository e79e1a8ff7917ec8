package repository

import (
	"context"
	"time"

	"venue-reservations/internal/domain/reservation"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `
	id, requester_id, event_name, organization, contact_name, contact_email,
	contact_phone, starts_at, ends_at, attendees, is_public,
	policy_acknowledged, status, fee_cents, premium_rate, reviewed_by,
	reviewed_at, cancelled_by, cancelled_at, reason, created_at, updated_at`

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	const query = `
		INSERT INTO reservations (
			id, requester_id, event_name, organization, contact_name,
			contact_email, contact_phone, starts_at, ends_at, attendees,
			is_public, policy_acknowledged, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	contact := res.Contact()
	var id pgtype.UUID
	err := r.db.QueryRow(ctx, query,
		pgconv.UUIDToPgtype(res.ID()),
		pgconv.UUIDToPgtype(res.RequesterID()),
		contact.EventName,
		textOrNull(contact.Organization),
		textOrNull(contact.Name),
		contact.Email,
		textOrNull(contact.Phone),
		pgconv.TimeToPgtype(res.Slot().Start()),
		pgconv.TimeToPgtype(res.Slot().End()),
		res.Attendees(),
		res.IsPublic(),
		res.PolicyAcknowledged(),
		res.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return uuid.UUID(id.Bytes), nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query := `SELECT` + reservationColumns + ` FROM reservations WHERE id = $1`
	return r.findOne(ctx, query, pgconv.UUIDToPgtype(id))
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query := `SELECT` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, pgconv.UUIDToPgtype(id))
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	const query = `
		UPDATE reservations SET
			status = $2, fee_cents = $3, premium_rate = $4, reviewed_by = $5,
			reviewed_at = $6, cancelled_by = $7, cancelled_at = $8,
			reason = $9, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(res.ID()),
		res.Status().String(),
		pgconv.Int64PtrToPgtype(res.FeeCents()),
		pgconv.BoolPtrToPgtype(res.PremiumRate()),
		pgconv.UUIDPtrToPgtype(res.ReviewedBy()),
		pgconv.TimePtrToPgtype(res.ReviewedAt()),
		pgconv.UUIDPtrToPgtype(res.CancelledBy()),
		pgconv.TimePtrToPgtype(res.CancelledAt()),
		pgconv.StringPtrToPgtype(res.Reason()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) ListApprovedEndedBefore(ctx context.Context, cutoff time.Time) ([]*reservation.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE status = 'approved' AND ends_at < $1
		ORDER BY ends_at
		FOR UPDATE`
	return r.findMany(ctx, query, pgconv.TimeToPgtype(cutoff))
}

func (r *ReservationRepository) ListApprovedStartingOn(ctx context.Context, day time.Time) ([]*reservation.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE status = 'approved'
		  AND starts_at >= $1 AND starts_at < $1 + interval '1 day'
		ORDER BY starts_at`
	return r.findMany(ctx, query, pgconv.TimeToPgtype(day))
}

func (r *ReservationRepository) findOne(ctx context.Context, query string, args ...any) (*reservation.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) findMany(ctx context.Context, query string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, requesterID          pgtype.UUID
		eventName, contactEmail  string
		organization             pgtype.Text
		contactName              pgtype.Text
		contactPhone             pgtype.Text
		startsAt, endsAt         pgtype.Timestamptz
		attendees                int32
		isPublic, policyAck      bool
		status                   string
		feeCents                 pgtype.Int8
		premiumRate              pgtype.Bool
		reviewedBy, cancelledBy  pgtype.UUID
		reviewedAt, cancelledAt  pgtype.Timestamptz
		reason                   pgtype.Text
		createdAt, updatedAt     pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &requesterID, &eventName, &organization, &contactName,
		&contactEmail, &contactPhone, &startsAt, &endsAt, &attendees,
		&isPublic, &policyAck, &status, &feeCents, &premiumRate,
		&reviewedBy, &reviewedAt, &cancelledBy, &cancelledAt, &reason,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	slot, err := reservation.NewTimeSlot(startsAt.Time, endsAt.Time)
	if err != nil {
		return nil, err
	}
	contact := reservation.Contact{
		EventName:    eventName,
		Organization: textValue(organization),
		Name:         textValue(contactName),
		Email:        contactEmail,
		Phone:        textValue(contactPhone),
	}
	return reservation.ReconstructReservation(
		uuid.UUID(id.Bytes),
		uuid.UUID(requesterID.Bytes),
		contact,
		slot,
		int(attendees),
		isPublic,
		policyAck,
		reservation.Status(status),
		pgconv.Int64PtrFromPgtype(feeCents),
		pgconv.BoolPtrFromPgtype(premiumRate),
		pgconv.UUIDPtrFromPgtype(reviewedBy),
		pgconv.TimePtrFromPgtype(reviewedAt),
		pgconv.UUIDPtrFromPgtype(cancelledBy),
		pgconv.TimePtrFromPgtype(cancelledAt),
		pgconv.StringPtrFromPgtype(reason),
		createdAt.Time,
		updatedAt.Time,
	), nil
}
