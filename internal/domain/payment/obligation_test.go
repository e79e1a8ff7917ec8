//go:build unit

package payment_test

import (
	"testing"
	"time"

	"venue-reservations/internal/domain/payment"
	"venue-reservations/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settledOn = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func TestNewObligation(t *testing.T) {
	t.Run("negative amount is rejected", func(t *testing.T) {
		b := builder.NewObligationBuilder()
		_, err := payment.NewObligation(b.ReservationID, payment.FeeDeposit, -1, b.DueDate)
		require.ErrorIs(t, err, payment.ErrNegativeAmount)
	})

	t.Run("unknown fee type is rejected", func(t *testing.T) {
		b := builder.NewObligationBuilder()
		_, err := payment.NewObligation(b.ReservationID, payment.FeeType("gratuity"), 1000, b.DueDate)
		require.ErrorIs(t, err, payment.ErrInvalidFeeType)
	})
}

func TestSettleManual(t *testing.T) {
	t.Run("pending obligation settles in full", func(t *testing.T) {
		o := builder.NewObligationBuilder().WithAmount(50000).BuildDomain()
		require.NoError(t, o.SettleManual(payment.MethodCheck, settledOn))

		assert.Equal(t, payment.StatusPaid, o.Status())
		require.NotNil(t, o.Method())
		assert.Equal(t, payment.MethodCheck, *o.Method())
		require.NotNil(t, o.SettledCents())
		assert.Equal(t, int64(50000), *o.SettledCents())
		require.NotNil(t, o.SettledOn())
		assert.Equal(t, settledOn, *o.SettledOn())
	})

	t.Run("non-pending obligation cannot be settled", func(t *testing.T) {
		for _, s := range []payment.Status{payment.StatusPaid, payment.StatusWaived, payment.StatusCancelled} {
			o := builder.NewObligationBuilder().WithStatus(s).BuildDomain()
			assert.ErrorIs(t, o.SettleManual(payment.MethodCash, settledOn), payment.ErrNotPending, "from %s", s)
		}
	})

	t.Run("invalid method is rejected before state changes", func(t *testing.T) {
		o := builder.NewObligationBuilder().BuildDomain()
		require.ErrorIs(t, o.SettleManual(payment.Method("crypto"), settledOn), payment.ErrInvalidMethod)
		assert.Equal(t, payment.StatusPending, o.Status())
	})
}

func TestWaiveAndCancel(t *testing.T) {
	t.Run("waive pending", func(t *testing.T) {
		o := builder.NewObligationBuilder().BuildDomain()
		require.NoError(t, o.Waive())
		assert.Equal(t, payment.StatusWaived, o.Status())
	})

	t.Run("waive paid fails", func(t *testing.T) {
		o := builder.NewObligationBuilder().AsPaid().BuildDomain()
		require.ErrorIs(t, o.Waive(), payment.ErrNotPending)
	})

	t.Run("cancel pending", func(t *testing.T) {
		o := builder.NewObligationBuilder().BuildDomain()
		require.NoError(t, o.CancelPending())
		assert.Equal(t, payment.StatusCancelled, o.Status())
	})

	t.Run("cancel leaves paid obligations untouched", func(t *testing.T) {
		o := builder.NewObligationBuilder().AsPaid().BuildDomain()
		require.ErrorIs(t, o.CancelPending(), payment.ErrNotPending)
		assert.Equal(t, payment.StatusPaid, o.Status())
	})
}

func TestGatewayCallbacks(t *testing.T) {
	t.Run("success settles by card", func(t *testing.T) {
		o := builder.NewObligationBuilder().WithTransactionID("txn_123").BuildDomain()
		require.NoError(t, o.ApplyGatewaySuccess(50000, settledOn))

		assert.Equal(t, payment.StatusPaid, o.Status())
		require.NotNil(t, o.Method())
		assert.Equal(t, payment.MethodCard, *o.Method())
	})

	t.Run("replayed success is signalled as already settled", func(t *testing.T) {
		o := builder.NewObligationBuilder().WithTransactionID("txn_123").BuildDomain()
		require.NoError(t, o.ApplyGatewaySuccess(50000, settledOn))

		err := o.ApplyGatewaySuccess(50000, settledOn.AddDate(0, 0, 1))
		require.ErrorIs(t, err, payment.ErrAlreadySettled)
		assert.Equal(t, settledOn, *o.SettledOn(), "first settlement is preserved")
	})

	t.Run("failure clears the transaction link", func(t *testing.T) {
		o := builder.NewObligationBuilder().WithTransactionID("txn_123").BuildDomain()
		require.NoError(t, o.ApplyGatewayFailure())

		assert.Equal(t, payment.StatusPending, o.Status())
		assert.Nil(t, o.TransactionID())
	})

	t.Run("relink after failure", func(t *testing.T) {
		o := builder.NewObligationBuilder().WithTransactionID("txn_old").BuildDomain()
		require.NoError(t, o.ApplyGatewayFailure())
		require.NoError(t, o.LinkTransaction("txn_new"))

		require.NotNil(t, o.TransactionID())
		assert.Equal(t, "txn_new", *o.TransactionID())
	})

	t.Run("link refused once settled", func(t *testing.T) {
		o := builder.NewObligationBuilder().AsPaid().BuildDomain()
		require.ErrorIs(t, o.LinkTransaction("txn_late"), payment.ErrNotPending)
	})
}

func TestApplyRefund(t *testing.T) {
	t.Run("refund moves paid to refunded", func(t *testing.T) {
		o := builder.NewObligationBuilder().AsPaid().BuildDomain()
		require.NoError(t, o.ApplyRefund(20000))

		assert.Equal(t, payment.StatusRefunded, o.Status())
		assert.Equal(t, int64(20000), o.RefundedCents())
	})

	t.Run("repeated refunds overwrite the cumulative total", func(t *testing.T) {
		o := builder.NewObligationBuilder().AsPaid().BuildDomain()
		require.NoError(t, o.ApplyRefund(20000))
		require.NoError(t, o.ApplyRefund(50000))

		assert.Equal(t, int64(50000), o.RefundedCents())
	})

	t.Run("refund on pending obligation fails", func(t *testing.T) {
		o := builder.NewObligationBuilder().BuildDomain()
		require.ErrorIs(t, o.ApplyRefund(1000), payment.ErrNotPending)
	})

	t.Run("negative total is rejected", func(t *testing.T) {
		o := builder.NewObligationBuilder().AsPaid().BuildDomain()
		require.ErrorIs(t, o.ApplyRefund(-1), payment.ErrNegativeAmount)
	})
}
