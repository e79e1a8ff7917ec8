package payment

import (
	"time"

	"github.com/google/uuid"
)

// Obligation is a single fee line owed against a reservation, independently
// trackable through Pending/Paid/Waived/Cancelled/Refunded. Amount is fixed
// at creation and never mutated after settlement; refunds accumulate in a
// separate running total.
type Obligation struct {
	id            uuid.UUID
	reservationID uuid.UUID
	feeType       FeeType
	amountCents   int64
	dueDate       time.Time
	status        Status

	method        *Method
	settledOn     *time.Time
	settledCents  *int64
	refundedCents int64
	transactionID *string

	createdAt time.Time
	updatedAt time.Time
}

func NewObligation(reservationID uuid.UUID, feeType FeeType, amountCents int64, dueDate time.Time) (*Obligation, error) {
	if !feeType.IsValid() {
		return nil, ErrInvalidFeeType
	}
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}
	return &Obligation{
		id:            uuid.New(),
		reservationID: reservationID,
		feeType:       feeType,
		amountCents:   amountCents,
		dueDate:       dueDate,
		status:        StatusPending,
	}, nil
}

func ReconstructObligation(
	id, reservationID uuid.UUID,
	feeType FeeType,
	amountCents int64,
	dueDate time.Time,
	status Status,
	method *Method,
	settledOn *time.Time,
	settledCents *int64,
	refundedCents int64,
	transactionID *string,
	createdAt, updatedAt time.Time,
) *Obligation {
	return &Obligation{
		id:            id,
		reservationID: reservationID,
		feeType:       feeType,
		amountCents:   amountCents,
		dueDate:       dueDate,
		status:        status,
		method:        method,
		settledOn:     settledOn,
		settledCents:  settledCents,
		refundedCents: refundedCents,
		transactionID: transactionID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// SettleManual records a staff-entered settlement: full amount, given
// method and date.
func (o *Obligation) SettleManual(method Method, on time.Time) error {
	if !method.IsValid() {
		return ErrInvalidMethod
	}
	if o.status != StatusPending {
		return ErrNotPending
	}
	amount := o.amountCents
	o.status = StatusPaid
	o.method = &method
	o.settledOn = &on
	o.settledCents = &amount
	return nil
}

func (o *Obligation) Waive() error {
	if o.status != StatusPending {
		return ErrNotPending
	}
	o.status = StatusWaived
	return nil
}

// CancelPending moves a still-pending obligation to Cancelled. Paid
// obligations are left untouched for manual refund handling.
func (o *Obligation) CancelPending() error {
	if o.status != StatusPending {
		return ErrNotPending
	}
	o.status = StatusCancelled
	return nil
}

// LinkTransaction attaches a gateway payment-intent id. Only a pending
// obligation may be (re)linked.
func (o *Obligation) LinkTransaction(transactionID string) error {
	if o.status != StatusPending {
		return ErrNotPending
	}
	o.transactionID = &transactionID
	return nil
}

// ApplyGatewaySuccess settles the obligation from a gateway callback.
// A callback for an already-paid obligation is a replay and must be a
// no-op, signalled with ErrAlreadySettled.
func (o *Obligation) ApplyGatewaySuccess(amountCents int64, on time.Time) error {
	if o.status == StatusPaid {
		return ErrAlreadySettled
	}
	if o.status != StatusPending {
		return ErrNotPending
	}
	method := MethodCard
	o.status = StatusPaid
	o.method = &method
	o.settledOn = &on
	o.settledCents = &amountCents
	return nil
}

// ApplyGatewayFailure clears the transaction link so a fresh payment attempt
// can be made. Status stays Pending.
func (o *Obligation) ApplyGatewayFailure() error {
	if o.status != StatusPending {
		return ErrNotPending
	}
	o.transactionID = nil
	return nil
}

// ApplyRefund records the gateway's cumulative refunded total. Partial and
// repeated refunds overwrite the running total, not add to it, because the
// gateway reports totals.
func (o *Obligation) ApplyRefund(totalRefundedCents int64) error {
	if totalRefundedCents < 0 {
		return ErrNegativeAmount
	}
	if o.status != StatusPaid && o.status != StatusRefunded {
		return ErrNotPending
	}
	o.status = StatusRefunded
	o.refundedCents = totalRefundedCents
	return nil
}

func (o *Obligation) ID() uuid.UUID            { return o.id }
func (o *Obligation) ReservationID() uuid.UUID { return o.reservationID }
func (o *Obligation) FeeType() FeeType         { return o.feeType }
func (o *Obligation) AmountCents() int64       { return o.amountCents }
func (o *Obligation) DueDate() time.Time       { return o.dueDate }
func (o *Obligation) Status() Status           { return o.status }
func (o *Obligation) Method() *Method          { return o.method }
func (o *Obligation) SettledOn() *time.Time    { return o.settledOn }
func (o *Obligation) SettledCents() *int64     { return o.settledCents }
func (o *Obligation) RefundedCents() int64     { return o.refundedCents }
func (o *Obligation) TransactionID() *string   { return o.transactionID }
func (o *Obligation) CreatedAt() time.Time     { return o.createdAt }
func (o *Obligation) UpdatedAt() time.Time     { return o.updatedAt }
