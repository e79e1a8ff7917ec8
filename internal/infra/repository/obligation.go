package repository

import (
	"context"
	"time"

	"venue-reservations/internal/domain/payment"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/pgconv"
	"venue-reservations/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const obligationColumns = `
	id, reservation_id, fee_type, amount_cents, due_date, status, method,
	settled_on, settled_cents, refunded_cents, transaction_id, created_at,
	updated_at`

type ObligationRepository struct {
	db db.DBTX
}

func NewObligationRepository(dbtx db.DBTX) *ObligationRepository {
	return &ObligationRepository{db: dbtx}
}

// CreateAll inserts the approval schedule. ON CONFLICT DO NOTHING on the
// (reservation_id, fee_type) key makes a replayed approval insert nothing.
func (r *ObligationRepository) CreateAll(ctx context.Context, obligations []*payment.Obligation) error {
	const query = `
		INSERT INTO payment_obligations (
			id, reservation_id, fee_type, amount_cents, due_date, status
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (reservation_id, fee_type) DO NOTHING`

	for _, o := range obligations {
		_, err := r.db.Exec(ctx, query,
			pgconv.UUIDToPgtype(o.ID()),
			pgconv.UUIDToPgtype(o.ReservationID()),
			o.FeeType().String(),
			o.AmountCents(),
			pgconv.DateToPgtype(o.DueDate()),
			o.Status().String(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create payment obligation", err)
		}
	}
	return nil
}

func (r *ObligationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*payment.Obligation, error) {
	query := `SELECT` + obligationColumns + ` FROM payment_obligations WHERE id = $1 FOR UPDATE`
	o, err := scanObligation(r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment obligation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment obligation", err)
	}
	return o, nil
}

func (r *ObligationRepository) FindByTransactionIDForUpdate(ctx context.Context, transactionID string) (*payment.Obligation, error) {
	query := `SELECT` + obligationColumns + ` FROM payment_obligations WHERE transaction_id = $1 FOR UPDATE`
	o, err := scanObligation(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment obligation not found for transaction", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment obligation by transaction", err)
	}
	return o, nil
}

func (r *ObligationRepository) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]*payment.Obligation, error) {
	query := `SELECT` + obligationColumns + `
		FROM payment_obligations WHERE reservation_id = $1 ORDER BY due_date`
	return r.list(ctx, query, pgconv.UUIDToPgtype(reservationID))
}

func (r *ObligationRepository) ListByReservationForUpdate(ctx context.Context, reservationID uuid.UUID) ([]*payment.Obligation, error) {
	query := `SELECT` + obligationColumns + `
		FROM payment_obligations WHERE reservation_id = $1 ORDER BY due_date FOR UPDATE`
	return r.list(ctx, query, pgconv.UUIDToPgtype(reservationID))
}

func (r *ObligationRepository) Update(ctx context.Context, o *payment.Obligation) error {
	const query = `
		UPDATE payment_obligations SET
			status = $2, method = $3, settled_on = $4, settled_cents = $5,
			refunded_cents = $6, transaction_id = $7, updated_at = now()
		WHERE id = $1`

	var method pgtype.Text
	if m := o.Method(); m != nil {
		method = pgtype.Text{String: m.String(), Valid: true}
	}
	tag, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(o.ID()),
		o.Status().String(),
		method,
		pgconv.DatePtrToPgtype(o.SettledOn()),
		pgconv.Int64PtrToPgtype(o.SettledCents()),
		o.RefundedCents(),
		pgconv.StringPtrToPgtype(o.TransactionID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment obligation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment obligation not found", nil, infra.KindNotFound)
	}
	return nil
}

const dueObligationQuery = `
	SELECT o.id, o.reservation_id, r.requester_id, o.fee_type,
	       o.amount_cents, o.due_date, r.event_name, r.contact_email
	FROM payment_obligations o
	JOIN reservations r ON r.id = o.reservation_id
	WHERE o.status = 'pending' AND r.status = 'approved'`

func (r *ObligationRepository) ListPendingDueOn(ctx context.Context, day time.Time) ([]*shared.DueObligation, error) {
	query := dueObligationQuery + ` AND o.due_date = $1 ORDER BY o.due_date, o.created_at`
	return r.listDue(ctx, query, pgconv.DateToPgtype(day))
}

func (r *ObligationRepository) ListPendingDueBetween(ctx context.Context, from, to time.Time) ([]*shared.DueObligation, error) {
	query := dueObligationQuery + ` AND o.due_date BETWEEN $1 AND $2 ORDER BY o.due_date, o.created_at`
	return r.listDue(ctx, query, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
}

func (r *ObligationRepository) list(ctx context.Context, query string, args ...any) ([]*payment.Obligation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payment obligations", err)
	}
	defer rows.Close()

	var result []*payment.Obligation
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment obligation", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment obligations", err)
	}
	return result, nil
}

func (r *ObligationRepository) listDue(ctx context.Context, query string, args ...any) ([]*shared.DueObligation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due obligations", err)
	}
	defer rows.Close()

	var result []*shared.DueObligation
	for rows.Next() {
		var (
			obligationID, reservationID, requesterID pgtype.UUID
			feeType                                  string
			amountCents                              int64
			dueDate                                  pgtype.Date
			eventName, contactEmail                  string
		)
		if err := rows.Scan(
			&obligationID, &reservationID, &requesterID, &feeType,
			&amountCents, &dueDate, &eventName, &contactEmail,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan due obligation", err)
		}
		result = append(result, &shared.DueObligation{
			ObligationID:  uuid.UUID(obligationID.Bytes),
			ReservationID: uuid.UUID(reservationID.Bytes),
			RequesterID:   uuid.UUID(requesterID.Bytes),
			FeeType:       payment.FeeType(feeType),
			AmountCents:   amountCents,
			DueDate:       dueDate.Time,
			EventName:     eventName,
			ContactEmail:  contactEmail,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate due obligations", err)
	}
	return result, nil
}

func scanObligation(row pgx.Row) (*payment.Obligation, error) {
	var (
		id, reservationID pgtype.UUID
		feeType, status   string
		amountCents       int64
		dueDate           pgtype.Date
		method            pgtype.Text
		settledOn         pgtype.Date
		settledCents      pgtype.Int8
		refundedCents     int64
		transactionID     pgtype.Text
		createdAt         pgtype.Timestamptz
		updatedAt         pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &reservationID, &feeType, &amountCents, &dueDate, &status,
		&method, &settledOn, &settledCents, &refundedCents, &transactionID,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	var m *payment.Method
	if method.Valid {
		v := payment.Method(method.String)
		m = &v
	}
	return payment.ReconstructObligation(
		uuid.UUID(id.Bytes),
		uuid.UUID(reservationID.Bytes),
		payment.FeeType(feeType),
		amountCents,
		dueDate.Time,
		payment.Status(status),
		m,
		pgconv.DatePtrFromPgtype(settledOn),
		pgconv.Int64PtrFromPgtype(settledCents),
		refundedCents,
		pgconv.StringPtrFromPgtype(transactionID),
		createdAt.Time,
		updatedAt.Time,
	), nil
}
