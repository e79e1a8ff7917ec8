//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"venue-reservations/internal/domain/payment"
	"venue-reservations/internal/domain/reservation"
	"venue-reservations/internal/pkg/clock"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/usecase/commands"
	"venue-reservations/tests/common/builder"
	"venue-reservations/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentCmdFixture struct {
	uow     *fake.UnitOfWork
	gateway *fake.Gateway
	clock   *clock.MockClock
	cmds    commands.PaymentCommands
}

func newPaymentCmdFixture(t *testing.T) *paymentCmdFixture {
	t.Helper()
	uow := fake.NewUnitOfWork()
	gateway := fake.NewGateway("txn_abc123")
	clk := clock.NewMockClock(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &paymentCmdFixture{
		uow:     uow,
		gateway: gateway,
		clock:   clk,
		cmds:    commands.NewPaymentCommands(uow, gateway, clk, logger),
	}
}

// seedObligation stores an approved reservation and one obligation against it.
func (f *paymentCmdFixture) seedObligation(b *builder.ObligationBuilder) (*reservation.Reservation, *payment.Obligation) {
	res := builder.NewReservationBuilder().WithStatus(reservation.StatusApproved).BuildReconstructed()
	o := b.WithReservationID(res.ID()).BuildDomain()
	f.uow.Tx.ReservationStore.Put(res)
	f.uow.Tx.ObligationStore.Put(o)
	return res, o
}

func TestRecordManualSettlement(t *testing.T) {
	settledOn := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	t.Run("requester role is refused", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder())

		_, err := f.cmds.RecordManualSettlement(context.Background(), requester(uuid.New()), o.ID(), "check", settledOn)
		require.ErrorIs(t, err, errs.ErrPermission)
	})

	t.Run("unknown method is a validation failure", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder())

		_, err := f.cmds.RecordManualSettlement(context.Background(), staff, o.ID(), "barter", settledOn)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("pending fee settles in full", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder().WithAmount(50000))

		result, err := f.cmds.RecordManualSettlement(context.Background(), staff, o.ID(), "check", settledOn)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Deposit fee recorded as paid by check.", result.Message)

		stored := f.uow.Tx.ObligationStore.Get(o.ID())
		assert.Equal(t, payment.StatusPaid, stored.Status())
		require.NotNil(t, stored.SettledCents())
		assert.Equal(t, int64(50000), *stored.SettledCents())
	})

	t.Run("already settled fee is a failure result", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder().AsPaid())

		result, err := f.cmds.RecordManualSettlement(context.Background(), staff, o.ID(), "cash", settledOn)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "The deposit fee is paid; only a pending fee can be settled.", result.Message)
	})

	t.Run("unknown obligation", func(t *testing.T) {
		f := newPaymentCmdFixture(t)

		_, err := f.cmds.RecordManualSettlement(context.Background(), staff, uuid.New(), "cash", settledOn)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestWaiveAll(t *testing.T) {
	t.Run("staff role is refused", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		res, _ := f.seedObligation(builder.NewObligationBuilder())

		_, err := f.cmds.WaiveAll(context.Background(), staff, res.ID())
		require.ErrorIs(t, err, errs.ErrPermission)
	})

	t.Run("waives pending fees and leaves settled ones alone", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		res, deposit := f.seedObligation(builder.NewObligationBuilder().AsPaid())
		facility := builder.NewObligationBuilder().WithReservationID(res.ID()).WithFeeType(payment.FeeFacility).BuildDomain()
		cleaning := builder.NewObligationBuilder().WithReservationID(res.ID()).WithFeeType(payment.FeeCleaning).BuildDomain()
		f.uow.Tx.ObligationStore.Put(facility)
		f.uow.Tx.ObligationStore.Put(cleaning)

		result, err := f.cmds.WaiveAll(context.Background(), manager, res.ID())
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "2 payment(s) waived.", result.Message)

		assert.Equal(t, payment.StatusPaid, f.uow.Tx.ObligationStore.Get(deposit.ID()).Status())
		assert.Equal(t, payment.StatusWaived, f.uow.Tx.ObligationStore.Get(facility.ID()).Status())
		assert.Equal(t, payment.StatusWaived, f.uow.Tx.ObligationStore.Get(cleaning.ID()).Status())
	})

	t.Run("only an approved reservation can be waived", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		res := builder.NewReservationBuilder().WithStatus(reservation.StatusCompleted).BuildReconstructed()
		facility := builder.NewObligationBuilder().WithReservationID(res.ID()).WithFeeType(payment.FeeFacility).BuildDomain()
		f.uow.Tx.ReservationStore.Put(res)
		f.uow.Tx.ObligationStore.Put(facility)

		result, err := f.cmds.WaiveAll(context.Background(), manager, res.ID())
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Only payments on an approved reservation can be waived; this one is completed.", result.Message)
		assert.Equal(t, payment.StatusPending, f.uow.Tx.ObligationStore.Get(facility.ID()).Status(), "obligation untouched")
	})

	t.Run("nothing pending is a failure result", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		res, _ := f.seedObligation(builder.NewObligationBuilder().AsPaid())

		result, err := f.cmds.WaiveAll(context.Background(), manager, res.ID())
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "No pending payments to waive.", result.Message)
	})
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Run("owner links a gateway transaction", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		res, o := f.seedObligation(builder.NewObligationBuilder().WithAmount(50000))

		txnID, err := f.cmds.CreatePaymentIntent(context.Background(), requester(res.RequesterID()), o.ID())
		require.NoError(t, err)
		assert.Equal(t, "txn_abc123", txnID)

		stored := f.uow.Tx.ObligationStore.Get(o.ID())
		require.NotNil(t, stored.TransactionID())
		assert.Equal(t, "txn_abc123", *stored.TransactionID())

		require.Len(t, f.gateway.Calls, 1)
		intent := f.gateway.Calls[0]
		assert.Equal(t, "payment_obligations", intent.EntityTable)
		assert.Equal(t, "transaction_id", intent.LinkColumn)
		assert.Equal(t, int64(50000), intent.AmountCents)
	})

	t.Run("a stranger is refused", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder())

		_, err := f.cmds.CreatePaymentIntent(context.Background(), requester(uuid.New()), o.ID())
		require.ErrorIs(t, err, errs.ErrPermission)
		assert.Empty(t, f.gateway.Calls)
	})

	t.Run("settled fee is not applicable", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder().AsPaid())

		_, err := f.cmds.CreatePaymentIntent(context.Background(), staff, o.ID())
		require.ErrorIs(t, err, errs.ErrNotApplicable)
	})

	t.Run("gateway rejection surfaces as an error", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		f.gateway.Err = errors.New("gateway unavailable")
		_, o := f.seedObligation(builder.NewObligationBuilder())

		_, err := f.cmds.CreatePaymentIntent(context.Background(), staff, o.ID())
		require.Error(t, err)

		stored := f.uow.Tx.ObligationStore.Get(o.ID())
		assert.Nil(t, stored.TransactionID(), "no link recorded on failure")
	})
}

func TestOnGatewayTransactionUpdate(t *testing.T) {
	t.Run("success settles the linked obligation", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder().WithTransactionID("txn_1"))

		err := f.cmds.OnGatewayTransactionUpdate(context.Background(), "txn_1", commands.GatewayStatusSucceeded, 50000)
		require.NoError(t, err)

		stored := f.uow.Tx.ObligationStore.Get(o.ID())
		assert.Equal(t, payment.StatusPaid, stored.Status())
		require.NotNil(t, stored.Method())
		assert.Equal(t, payment.MethodCard, *stored.Method())
	})

	t.Run("replayed success is a silent no-op", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder().WithTransactionID("txn_1"))

		require.NoError(t, f.cmds.OnGatewayTransactionUpdate(context.Background(), "txn_1", commands.GatewayStatusSucceeded, 50000))
		firstSettled := *f.uow.Tx.ObligationStore.Get(o.ID()).SettledOn()

		f.clock.Add(time.Hour)
		require.NoError(t, f.cmds.OnGatewayTransactionUpdate(context.Background(), "txn_1", commands.GatewayStatusSucceeded, 50000))

		assert.Equal(t, firstSettled, *f.uow.Tx.ObligationStore.Get(o.ID()).SettledOn(), "first settlement preserved")
	})

	t.Run("unknown transaction is acknowledged and dropped", func(t *testing.T) {
		f := newPaymentCmdFixture(t)

		err := f.cmds.OnGatewayTransactionUpdate(context.Background(), "txn_missing", commands.GatewayStatusSucceeded, 50000)
		require.NoError(t, err)
	})

	t.Run("failure clears the link for a retry", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder().WithTransactionID("txn_1"))

		err := f.cmds.OnGatewayTransactionUpdate(context.Background(), "txn_1", commands.GatewayStatusFailed, 0)
		require.NoError(t, err)

		stored := f.uow.Tx.ObligationStore.Get(o.ID())
		assert.Equal(t, payment.StatusPending, stored.Status())
		assert.Nil(t, stored.TransactionID())
	})

	t.Run("unrecognized status is ignored", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder().WithTransactionID("txn_1"))

		err := f.cmds.OnGatewayTransactionUpdate(context.Background(), "txn_1", "processing", 0)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPending, f.uow.Tx.ObligationStore.Get(o.ID()).Status())
	})
}

func TestOnGatewayRefundUpdate(t *testing.T) {
	t.Run("refund marks the obligation refunded with the reported total", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder().AsPaid().WithTransactionID("txn_1"))

		err := f.cmds.OnGatewayRefundUpdate(context.Background(), "txn_1", 20000)
		require.NoError(t, err)

		stored := f.uow.Tx.ObligationStore.Get(o.ID())
		assert.Equal(t, payment.StatusRefunded, stored.Status())
		assert.Equal(t, int64(20000), stored.RefundedCents())
	})

	t.Run("refund for an unsettled obligation is dropped", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		_, o := f.seedObligation(builder.NewObligationBuilder().WithTransactionID("txn_1"))

		err := f.cmds.OnGatewayRefundUpdate(context.Background(), "txn_1", 20000)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusPending, f.uow.Tx.ObligationStore.Get(o.ID()).Status())
	})

	t.Run("refund for an unknown transaction is dropped", func(t *testing.T) {
		f := newPaymentCmdFixture(t)
		require.NoError(t, f.cmds.OnGatewayRefundUpdate(context.Background(), "txn_missing", 20000))
	})
}
