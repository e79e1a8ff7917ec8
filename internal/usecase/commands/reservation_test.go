//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"venue-reservations/internal/domain/payment"
	"venue-reservations/internal/domain/reservation"
	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/pkg/clock"
	"venue-reservations/internal/pkg/config"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/usecase/commands"
	"venue-reservations/internal/usecase/shared"
	"venue-reservations/tests/common/builder"
	"venue-reservations/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationCmdFixture struct {
	uow        *fake.UnitOfWork
	dispatcher *fake.Dispatcher
	clock      *clock.MockClock
	cmds       commands.ReservationCommands
}

func newReservationCmdFixture(t *testing.T) *reservationCmdFixture {
	t.Helper()
	uow := fake.NewUnitOfWork()
	uow.Tx.HolidayRuleStore.Rules = builder.DefaultHolidayRules()
	dispatcher := fake.NewDispatcher()
	clk := clock.NewMockClock(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	return &reservationCmdFixture{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
		cmds:       commands.NewReservationCommands(uow, dispatcher, clk, config.NewTestConfig()),
	}
}

// seedPending stores a pending reservation on a plain Wednesday evening.
func (f *reservationCmdFixture) seedPending() *reservation.Reservation {
	res := builder.NewReservationBuilder().
		WithSlot(
			time.Date(2025, 6, 18, 18, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 18, 22, 0, 0, 0, time.UTC),
		).
		BuildReconstructed()
	f.uow.Tx.ReservationStore.Put(res)
	return res
}

var (
	staff     = shared.Actor{ID: uuid.New(), Role: user.RoleStaff}
	manager   = shared.Actor{ID: uuid.New(), Role: user.RoleManager}
	admin     = shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}
	requester = func(id uuid.UUID) shared.Actor { return shared.Actor{ID: id, Role: user.RoleRequester} }
)

func TestSubmit(t *testing.T) {
	t.Run("stores the reservation and notifies the requester", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		in := commands.SubmitReservationInput{
			EventName:    "Board Meeting",
			ContactEmail: "chair@example.com",
			StartsAt:     time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC),
			EndsAt:       time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC),
			Attendees:    12,
			PolicyAck:    true,
		}

		id, err := f.cmds.Submit(context.Background(), requester(uuid.New()), in)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		stored := f.uow.Tx.ReservationStore.Get(id)
		require.NotNil(t, stored)
		assert.Equal(t, reservation.StatusPending, stored.Status())
		assert.Equal(t, []string{"reservation_submitted"}, f.dispatcher.SentTemplates())
	})

	t.Run("validation failures are marked", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		in := commands.SubmitReservationInput{
			EventName:    "Board Meeting",
			ContactEmail: "chair@example.com",
			StartsAt:     time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC),
			EndsAt:       time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC),
			Attendees:    12,
			PolicyAck:    false,
		}

		_, err := f.cmds.Submit(context.Background(), requester(uuid.New()), in)
		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Empty(t, f.dispatcher.Sent(), "nothing dispatched on failure")
	})

	t.Run("inverted slot is a validation failure", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		in := commands.SubmitReservationInput{
			EventName:    "Board Meeting",
			ContactEmail: "chair@example.com",
			StartsAt:     time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC),
			EndsAt:       time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC),
			Attendees:    12,
			PolicyAck:    true,
		}

		_, err := f.cmds.Submit(context.Background(), requester(uuid.New()), in)
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestApprove(t *testing.T) {
	t.Run("requester role is refused", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		_, err := f.cmds.Approve(context.Background(), requester(res.RequesterID()), res.ID())
		require.ErrorIs(t, err, errs.ErrPermission)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newReservationCmdFixture(t)

		_, err := f.cmds.Approve(context.Background(), staff, uuid.New())
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("weekday approval runs the full cascade at base tier", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		result, err := f.cmds.Approve(context.Background(), staff, res.ID())
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.Success)
		assert.Equal(t, "Reservation approved. Facility fee: $1500.00.", result.Message)

		stored := f.uow.Tx.ReservationStore.Get(res.ID())
		assert.Equal(t, reservation.StatusApproved, stored.Status())
		require.NotNil(t, stored.FeeCents())
		assert.Equal(t, int64(150000), *stored.FeeCents())
		require.NotNil(t, stored.PremiumRate())
		assert.False(t, *stored.PremiumRate())
		require.NotNil(t, stored.ReviewedBy())
		assert.Equal(t, staff.ID, *stored.ReviewedBy())

		assert.True(t, f.uow.Tx.SlotStore.Holds(res.ID()), "confirmed interval registered")
		assert.True(t, f.uow.Tx.ProjectionStore.Has(res.ID()), "public projection synced")

		obligations, err := f.uow.Tx.ObligationStore.ListByReservation(context.Background(), res.ID())
		require.NoError(t, err)
		require.Len(t, obligations, 3)
		amounts := map[payment.FeeType]int64{}
		for _, o := range obligations {
			amounts[o.FeeType()] = o.AmountCents()
			assert.Equal(t, payment.StatusPending, o.Status())
		}
		assert.Equal(t, int64(50000), amounts[payment.FeeDeposit])
		assert.Equal(t, int64(150000), amounts[payment.FeeFacility])
		assert.Equal(t, int64(30000), amounts[payment.FeeCleaning])

		assert.Equal(t, []string{"reservation_approved"}, f.dispatcher.SentTemplates())
	})

	t.Run("saturday event gets the premium tier", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := builder.NewReservationBuilder().
			WithSlot(
				time.Date(2025, 6, 21, 18, 0, 0, 0, time.UTC),
				time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC),
			).
			BuildReconstructed()
		f.uow.Tx.ReservationStore.Put(res)

		result, err := f.cmds.Approve(context.Background(), staff, res.ID())
		require.NoError(t, err)
		assert.Equal(t, "Reservation approved. Facility fee: $2500.00.", result.Message)

		stored := f.uow.Tx.ReservationStore.Get(res.ID())
		require.NotNil(t, stored.PremiumRate())
		assert.True(t, *stored.PremiumRate())
	})

	t.Run("holiday event gets the premium tier", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		// 2025-07-04 falls on a Friday
		res := builder.NewReservationBuilder().
			WithSlot(
				time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC),
				time.Date(2025, 7, 4, 14, 0, 0, 0, time.UTC),
			).
			BuildReconstructed()
		f.uow.Tx.ReservationStore.Put(res)

		result, err := f.cmds.Approve(context.Background(), staff, res.ID())
		require.NoError(t, err)
		assert.Equal(t, "Reservation approved. Facility fee: $2500.00.", result.Message)
	})

	t.Run("slot conflict aborts the cascade", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		holder := uuid.New()
		held, err := reservation.NewTimeSlot(
			time.Date(2025, 6, 18, 17, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 18, 19, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		require.NoError(t, f.uow.Tx.SlotStore.Confirm(context.Background(), holder, held))

		_, err = f.cmds.Approve(context.Background(), staff, res.ID())
		require.ErrorIs(t, err, errs.ErrSlotConflict)

		assert.Empty(t, f.uow.Tx.ObligationStore.All(), "no obligations created")
		assert.False(t, f.uow.Tx.ProjectionStore.Has(res.ID()))
		assert.Empty(t, f.dispatcher.Sent())
	})

	t.Run("repeat approval is a failure result, not an error", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		_, err := f.cmds.Approve(context.Background(), staff, res.ID())
		require.NoError(t, err)

		result, err := f.cmds.Approve(context.Background(), staff, res.ID())
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Reservation is already approved; no action taken.", result.Message)
	})

	t.Run("cancelled reservation cannot be approved", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := builder.NewReservationBuilder().WithStatus(reservation.StatusCancelled).BuildReconstructed()
		f.uow.Tx.ReservationStore.Put(res)

		result, err := f.cmds.Approve(context.Background(), staff, res.ID())
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Cannot approve a cancelled reservation.", result.Message)
	})
}

func TestDeny(t *testing.T) {
	t.Run("reason is mandatory", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		_, err := f.cmds.Deny(context.Background(), staff, res.ID(), "   ")
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("denial records the reason and notifies", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		result, err := f.cmds.Deny(context.Background(), staff, res.ID(), "venue maintenance")
		require.NoError(t, err)
		assert.True(t, result.Success)

		stored := f.uow.Tx.ReservationStore.Get(res.ID())
		assert.Equal(t, reservation.StatusDenied, stored.Status())
		assert.Equal(t, []string{"reservation_denied"}, f.dispatcher.SentTemplates())
	})
}

func TestCancel(t *testing.T) {
	t.Run("requester can cancel their own pending reservation", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		result, err := f.cmds.Cancel(context.Background(), requester(res.RequesterID()), res.ID(), "plans changed")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Reservation cancelled.", result.Message)
	})

	t.Run("cancelling a pending reservation still sweeps its obligations", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		deposit := builder.NewObligationBuilder().WithReservationID(res.ID()).AsPaid().BuildDomain()
		facility := builder.NewObligationBuilder().WithReservationID(res.ID()).WithFeeType(payment.FeeFacility).BuildDomain()
		cleaning := builder.NewObligationBuilder().WithReservationID(res.ID()).WithFeeType(payment.FeeCleaning).BuildDomain()
		f.uow.Tx.ObligationStore.Put(deposit)
		f.uow.Tx.ObligationStore.Put(facility)
		f.uow.Tx.ObligationStore.Put(cleaning)

		result, err := f.cmds.Cancel(context.Background(), requester(res.RequesterID()), res.ID(), "plans changed")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Reservation cancelled. 1 payment(s) may require refund processing.", result.Message)

		assert.Equal(t, payment.StatusPaid, f.uow.Tx.ObligationStore.Get(deposit.ID()).Status(), "paid deposit untouched")
		assert.Equal(t, payment.StatusCancelled, f.uow.Tx.ObligationStore.Get(facility.ID()).Status())
		assert.Equal(t, payment.StatusCancelled, f.uow.Tx.ObligationStore.Get(cleaning.ID()).Status())
	})

	t.Run("another requester is refused", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		_, err := f.cmds.Cancel(context.Background(), requester(uuid.New()), res.ID(), "plans changed")
		require.ErrorIs(t, err, errs.ErrPermission)
	})

	t.Run("cancelling a confirmed reservation releases the slot and cancels pending fees", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()
		_, err := f.cmds.Approve(context.Background(), staff, res.ID())
		require.NoError(t, err)

		// Settle the deposit so exactly one obligation is paid.
		var depositID uuid.UUID
		for _, o := range f.uow.Tx.ObligationStore.All() {
			if o.FeeType() == payment.FeeDeposit {
				depositID = o.ID()
				require.NoError(t, o.SettleManual(payment.MethodCash, f.clock.Now()))
			}
		}

		result, err := f.cmds.Cancel(context.Background(), staff, res.ID(), "requester emergency")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Reservation cancelled. 1 payment(s) may require refund processing.", result.Message)

		assert.False(t, f.uow.Tx.SlotStore.Holds(res.ID()), "slot released")
		assert.False(t, f.uow.Tx.ProjectionStore.Has(res.ID()), "projection removed")

		for _, o := range f.uow.Tx.ObligationStore.All() {
			switch o.ID() {
			case depositID:
				assert.Equal(t, payment.StatusPaid, o.Status(), "paid deposit untouched")
			default:
				assert.Equal(t, payment.StatusCancelled, o.Status(), "pending %s cancelled", o.FeeType())
			}
		}
	})
}

func TestCompleteAndClose(t *testing.T) {
	approve := func(t *testing.T, f *reservationCmdFixture) *reservation.Reservation {
		t.Helper()
		res := f.seedPending()
		_, err := f.cmds.Approve(context.Background(), staff, res.ID())
		require.NoError(t, err)
		return res
	}

	t.Run("manual complete does not wait for the event to end", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := approve(t, f)

		result, err := f.cmds.Complete(context.Background(), staff, res.ID())
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, reservation.StatusCompleted, f.uow.Tx.ReservationStore.Get(res.ID()).Status())
		assert.True(t, f.uow.Tx.SlotStore.Holds(res.ID()), "completed events keep their slot")
	})

	t.Run("close is blocked while the deposit is held", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := approve(t, f)
		for _, o := range f.uow.Tx.ObligationStore.All() {
			if o.FeeType() == payment.FeeDeposit {
				require.NoError(t, o.SettleManual(payment.MethodCash, f.clock.Now()))
			}
		}
		_, err := f.cmds.Complete(context.Background(), staff, res.ID())
		require.NoError(t, err)

		result, err := f.cmds.Close(context.Background(), staff, res.ID())
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "The deposit must be refunded or waived before closing.", result.Message)
		assert.Equal(t, reservation.StatusCompleted, f.uow.Tx.ReservationStore.Get(res.ID()).Status())
	})

	t.Run("close succeeds once the deposit is waived", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := approve(t, f)
		for _, o := range f.uow.Tx.ObligationStore.All() {
			require.NoError(t, o.Waive())
		}
		_, err := f.cmds.Complete(context.Background(), staff, res.ID())
		require.NoError(t, err)

		result, err := f.cmds.Close(context.Background(), staff, res.ID())
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, reservation.StatusClosed, f.uow.Tx.ReservationStore.Get(res.ID()).Status())
		assert.False(t, f.uow.Tx.SlotStore.Holds(res.ID()), "closed reservation frees the slot")
		assert.False(t, f.uow.Tx.ProjectionStore.Has(res.ID()))
	})
}

func TestDelete(t *testing.T) {
	t.Run("only admins may hard delete", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()

		_, err := f.cmds.Delete(context.Background(), manager, res.ID())
		require.ErrorIs(t, err, errs.ErrPermission)
	})

	t.Run("delete clears slot, projection and record", func(t *testing.T) {
		f := newReservationCmdFixture(t)
		res := f.seedPending()
		_, err := f.cmds.Approve(context.Background(), staff, res.ID())
		require.NoError(t, err)

		result, err := f.cmds.Delete(context.Background(), admin, res.ID())
		require.NoError(t, err)
		assert.True(t, result.Success)

		assert.Nil(t, f.uow.Tx.ReservationStore.Get(res.ID()))
		assert.False(t, f.uow.Tx.SlotStore.Holds(res.ID()))
		assert.False(t, f.uow.Tx.ProjectionStore.Has(res.ID()))
	})
}
