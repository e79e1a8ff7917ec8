package readstore

import (
	"context"

	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/pgconv"
	"venue-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationViewQuery = `
	SELECT r.id, r.requester_id, u.email AS requester_email, r.event_name,
	       r.organization, r.contact_name, r.contact_email, r.contact_phone,
	       r.starts_at, r.ends_at, r.attendees, r.is_public, r.status,
	       r.fee_cents, r.premium_rate, r.reviewed_by, r.reviewed_at,
	       r.cancelled_by, r.cancelled_at, r.reason, r.created_at, r.updated_at
	FROM reservations r
	JOIN users u ON u.id = r.requester_id`

const reservationListQuery = `
	SELECT id, event_name, starts_at, ends_at, attendees, status, fee_cents,
	       created_at
	FROM reservations`

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	query := reservationViewQuery + ` WHERE r.id = $1`
	view, err := scanReservationView(r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*queries.ReservationListItem, error) {
	query := reservationListQuery + ` WHERE requester_id = $1 ORDER BY starts_at DESC`
	return r.listItems(ctx, query, pgconv.UUIDToPgtype(requesterID))
}

func (r *ReservationReadStore) FindByStatus(ctx context.Context, status string) ([]*queries.ReservationListItem, error) {
	query := reservationListQuery + ` WHERE status = $1 ORDER BY starts_at`
	return r.listItems(ctx, query, status)
}

func (r *ReservationReadStore) FindObligationsByReservation(ctx context.Context, reservationID uuid.UUID) ([]*queries.ObligationView, error) {
	const query = `
		SELECT id, reservation_id, fee_type, amount_cents, due_date, status,
		       method, settled_on, settled_cents, refunded_cents,
		       transaction_id, created_at
		FROM payment_obligations
		WHERE reservation_id = $1
		ORDER BY due_date`

	rows, err := r.db.Query(ctx, query, pgconv.UUIDToPgtype(reservationID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list obligations", err)
	}
	defer rows.Close()

	var result []*queries.ObligationView
	for rows.Next() {
		var (
			id, resID     pgtype.UUID
			feeType       string
			amountCents   int64
			dueDate       pgtype.Date
			status        string
			method        pgtype.Text
			settledOn     pgtype.Date
			settledCents  pgtype.Int8
			refundedCents int64
			transactionID pgtype.Text
			createdAt     pgtype.Timestamptz
		)
		if err := rows.Scan(
			&id, &resID, &feeType, &amountCents, &dueDate, &status,
			&method, &settledOn, &settledCents, &refundedCents,
			&transactionID, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan obligation", err)
		}
		result = append(result, &queries.ObligationView{
			ID:            uuid.UUID(id.Bytes),
			ReservationID: uuid.UUID(resID.Bytes),
			FeeType:       feeType,
			AmountCents:   amountCents,
			DueDate:       dueDate.Time,
			Status:        status,
			Method:        pgconv.StringPtrFromPgtype(method),
			SettledOn:     pgconv.DatePtrFromPgtype(settledOn),
			SettledCents:  pgconv.Int64PtrFromPgtype(settledCents),
			RefundedCents: refundedCents,
			TransactionID: pgconv.StringPtrFromPgtype(transactionID),
			CreatedAt:     createdAt.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate obligations", err)
	}
	return result, nil
}

func (r *ReservationReadStore) listItems(ctx context.Context, query string, args ...any) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationListItem
	for rows.Next() {
		var (
			id        pgtype.UUID
			eventName string
			startsAt  pgtype.Timestamptz
			endsAt    pgtype.Timestamptz
			attendees int32
			status    string
			feeCents  pgtype.Int8
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &eventName, &startsAt, &endsAt, &attendees, &status, &feeCents, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		result = append(result, &queries.ReservationListItem{
			ID:        uuid.UUID(id.Bytes),
			EventName: eventName,
			StartsAt:  startsAt.Time,
			EndsAt:    endsAt.Time,
			Attendees: attendees,
			Status:    status,
			FeeCents:  pgconv.Int64PtrFromPgtype(feeCents),
			CreatedAt: createdAt.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		id, requesterID         pgtype.UUID
		requesterEmail          string
		eventName               string
		organization            pgtype.Text
		contactName             pgtype.Text
		contactEmail            string
		contactPhone            pgtype.Text
		startsAt, endsAt        pgtype.Timestamptz
		attendees               int32
		isPublic                bool
		status                  string
		feeCents                pgtype.Int8
		premiumRate             pgtype.Bool
		reviewedBy, cancelledBy pgtype.UUID
		reviewedAt, cancelledAt pgtype.Timestamptz
		reason                  pgtype.Text
		createdAt, updatedAt    pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &requesterID, &requesterEmail, &eventName, &organization,
		&contactName, &contactEmail, &contactPhone, &startsAt, &endsAt,
		&attendees, &isPublic, &status, &feeCents, &premiumRate,
		&reviewedBy, &reviewedAt, &cancelledBy, &cancelledAt, &reason,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	return &queries.ReservationView{
		ID:             uuid.UUID(id.Bytes),
		RequesterID:    uuid.UUID(requesterID.Bytes),
		RequesterEmail: requesterEmail,
		EventName:      eventName,
		Organization:   pgconv.StringPtrFromPgtype(organization),
		ContactName:    pgconv.StringPtrFromPgtype(contactName),
		ContactEmail:   contactEmail,
		ContactPhone:   pgconv.StringPtrFromPgtype(contactPhone),
		StartsAt:       startsAt.Time,
		EndsAt:         endsAt.Time,
		Attendees:      attendees,
		IsPublic:       isPublic,
		Status:         status,
		FeeCents:       pgconv.Int64PtrFromPgtype(feeCents),
		PremiumRate:    pgconv.BoolPtrFromPgtype(premiumRate),
		ReviewedBy:     pgconv.UUIDPtrFromPgtype(reviewedBy),
		ReviewedAt:     pgconv.TimePtrFromPgtype(reviewedAt),
		CancelledBy:    pgconv.UUIDPtrFromPgtype(cancelledBy),
		CancelledAt:    pgconv.TimePtrFromPgtype(cancelledAt),
		Reason:         pgconv.StringPtrFromPgtype(reason),
		CreatedAt:      createdAt.Time,
		UpdatedAt:      updatedAt.Time,
	}, nil
}
