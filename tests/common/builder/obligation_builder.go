//go:build unit || e2e

package builder

import (
	"time"

	"venue-reservations/internal/domain/payment"
	"venue-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ObligationBuilder struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	FeeType       payment.FeeType
	AmountCents   int64
	DueDate       time.Time
	Status        payment.Status
	TransactionID *string
	CreatedAt     time.Time
}

func NewObligationBuilder() *ObligationBuilder {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &ObligationBuilder{
		ID:            uuid.New(),
		ReservationID: uuid.New(),
		FeeType:       payment.FeeDeposit,
		AmountCents:   50000,
		DueDate:       now,
		Status:        payment.StatusPending,
		CreatedAt:     now,
	}
}

func (b *ObligationBuilder) With(mutate func(*ObligationBuilder)) *ObligationBuilder {
	mutate(b)
	return b
}

func (b *ObligationBuilder) BuildDomain() *payment.Obligation {
	return payment.ReconstructObligation(
		b.ID, b.ReservationID,
		b.FeeType, b.AmountCents, b.DueDate,
		b.Status,
		nil, nil, nil, 0, b.TransactionID,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *ObligationBuilder) BuildViewQuery() *queries.ObligationView {
	return &queries.ObligationView{
		ID:            b.ID,
		ReservationID: b.ReservationID,
		FeeType:       b.FeeType.String(),
		AmountCents:   b.AmountCents,
		DueDate:       b.DueDate,
		Status:        b.Status.String(),
		TransactionID: b.TransactionID,
		CreatedAt:     b.CreatedAt,
	}
}

func (b *ObligationBuilder) WithReservationID(id uuid.UUID) *ObligationBuilder {
	b.ReservationID = id
	return b
}

func (b *ObligationBuilder) WithFeeType(f payment.FeeType) *ObligationBuilder {
	b.FeeType = f
	return b
}

func (b *ObligationBuilder) WithAmount(cents int64) *ObligationBuilder {
	b.AmountCents = cents
	return b
}

func (b *ObligationBuilder) WithStatus(s payment.Status) *ObligationBuilder {
	b.Status = s
	return b
}

func (b *ObligationBuilder) WithDueDate(d time.Time) *ObligationBuilder {
	b.DueDate = d
	return b
}

func (b *ObligationBuilder) WithTransactionID(id string) *ObligationBuilder {
	b.TransactionID = &id
	return b
}

func (b *ObligationBuilder) AsPaid() *ObligationBuilder {
	b.Status = payment.StatusPaid
	return b
}
