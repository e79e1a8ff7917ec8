package commands

import (
	"context"
	"errors"
	"time"

	"venue-reservations/internal/domain/holiday"
	"venue-reservations/internal/domain/payment"
	"venue-reservations/internal/domain/pricing"
	"venue-reservations/internal/domain/reservation"
	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/pkg/clock"
	"venue-reservations/internal/pkg/config"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubmitReservationInput struct {
	EventName    string
	Organization string
	ContactName  string
	ContactEmail string
	ContactPhone string
	StartsAt     time.Time
	EndsAt       time.Time
	Attendees    int
	IsPublic     bool
	PolicyAck    bool
}

type ReservationCommands interface {
	Submit(ctx context.Context, actor shared.Actor, in SubmitReservationInput) (uuid.UUID, error)
	Approve(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.Result, error)
	Deny(ctx context.Context, actor shared.Actor, id uuid.UUID, reason string) (*shared.Result, error)
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, reason string) (*shared.Result, error)
	Complete(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.Result, error)
	Close(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.Result, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.Result, error)
}

type reservationCommandsImpl struct {
	uow        shared.UnitOfWork
	dispatcher NotificationDispatcher
	clock      clock.Clock
	venue      config.VenueConfig
	fees       config.FeeConfig
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	dispatcher NotificationDispatcher,
	clk clock.Clock,
	cfg config.Config,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
		venue:      cfg.Venue,
		fees:       cfg.Fees,
	}
}

func (c *reservationCommandsImpl) Submit(ctx context.Context, actor shared.Actor, in SubmitReservationInput) (uuid.UUID, error) {
	slot, err := reservation.NewTimeSlot(in.StartsAt, in.EndsAt)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}
	contact := reservation.Contact{
		EventName:    in.EventName,
		Organization: in.Organization,
		Name:         in.ContactName,
		Email:        in.ContactEmail,
		Phone:        in.ContactPhone,
	}

	res, err := reservation.NewReservation(
		actor.ID, contact, slot,
		in.Attendees, in.IsPublic, in.PolicyAck,
		c.venue.Capacity, c.venue.AdvanceNoticeDays,
		c.clock.Now(),
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Reservations().Create(ctx, res)
		return err
	})
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to create reservation")
	}

	c.dispatcher.Send(context.WithoutCancel(ctx), Notification{
		Template:   "reservation_submitted",
		EntityType: "reservation",
		EntityID:   id,
		Payload: map[string]any{
			"event_name": in.EventName,
			"starts_at":  in.StartsAt,
		},
		Channels: []string{ChannelEmail},
	})
	return id, nil
}

// Approve performs the confirmation cascade in one transaction: stamp the
// computed fee on the reservation, register the confirmed interval, create
// the payment schedule, refresh the public projection. A slot overlap rolls
// the whole cascade back.
func (c *reservationCommandsImpl) Approve(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
	if !actor.HasRole(user.RoleStaff) {
		return nil, errs.ErrPermission
	}

	var (
		result *shared.Result
		notifs []Notification
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, notifs = nil, nil

		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapRepoErr(err)
		}

		rules, err := tx.HolidayRules().ListActive(ctx)
		if err != nil {
			return err
		}
		cal, err := holiday.NewCalendar(rules)
		if err != nil {
			return errs.Wrap(err, "invalid holiday rule configuration")
		}
		fee := pricing.FacilityFee(c.tiers(), cal, res.Slot().Start())

		now := c.clock.Now()
		if err := res.Approve(actor.ID, fee.Cents, fee.Premium, now); err != nil {
			result = transitionFail(err, "approve", res.Status())
			if result != nil {
				return nil
			}
			return err
		}

		if err := tx.Slots().Confirm(ctx, res.ID(), res.Slot()); err != nil {
			if _, ok := infra.AsSlotConflict(err); ok {
				return errs.Mark(err, errs.ErrSlotConflict)
			}
			return err
		}

		schedule, err := payment.BuildSchedule(res.ID(), c.feePolicy(), fee.Cents, now, res.Slot().Start())
		if err != nil {
			return err
		}
		if err := tx.Obligations().CreateAll(ctx, schedule); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := tx.Projections().Sync(ctx, res); err != nil {
			return err
		}

		result = shared.OK("Reservation approved. Facility fee: $%.2f.", float64(fee.Cents)/100)
		notifs = append(notifs, Notification{
			Template:   "reservation_approved",
			EntityType: "reservation",
			EntityID:   res.ID(),
			Payload: map[string]any{
				"event_name":   res.Contact().EventName,
				"fee_cents":    fee.Cents,
				"premium_rate": fee.Premium,
			},
			Channels: []string{ChannelEmail},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.send(ctx, notifs)
	return result, nil
}

func (c *reservationCommandsImpl) Deny(ctx context.Context, actor shared.Actor, id uuid.UUID, reason string) (*shared.Result, error) {
	if !actor.HasRole(user.RoleStaff) {
		return nil, errs.ErrPermission
	}

	var (
		result *shared.Result
		notifs []Notification
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, notifs = nil, nil

		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapRepoErr(err)
		}

		if err := res.Deny(actor.ID, reason, c.clock.Now()); err != nil {
			if errors.Is(err, reservation.ErrReasonRequired) {
				return errs.Mark(err, errs.ErrValidation)
			}
			result = transitionFail(err, "deny", res.Status())
			if result != nil {
				return nil
			}
			return err
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}

		result = shared.OK("Reservation denied.")
		notifs = append(notifs, Notification{
			Template:   "reservation_denied",
			EntityType: "reservation",
			EntityID:   res.ID(),
			Payload: map[string]any{
				"event_name": res.Contact().EventName,
				"reason":     reason,
			},
			Channels: []string{ChannelEmail},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.send(ctx, notifs)
	return result, nil
}

// Cancel is available to the requester on their own reservation and to staff
// on any. A confirmed reservation has its interval released; in every case
// still-pending obligations are cancelled, and paid ones are left for manual
// refund handling and surfaced in the result message.
func (c *reservationCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, reason string) (*shared.Result, error) {
	var (
		result *shared.Result
		notifs []Notification
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, notifs = nil, nil

		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapRepoErr(err)
		}
		if !actor.HasRole(user.RoleStaff) && res.RequesterID() != actor.ID {
			return errs.ErrPermission
		}

		wasConfirmed := res.Status().IsConfirmed()
		if err := res.Cancel(actor.ID, reason, c.clock.Now()); err != nil {
			if errors.Is(err, reservation.ErrReasonRequired) {
				return errs.Mark(err, errs.ErrValidation)
			}
			result = transitionFail(err, "cancel", res.Status())
			if result != nil {
				return nil
			}
			return err
		}

		if wasConfirmed {
			if err := tx.Slots().Release(ctx, res.ID()); err != nil {
				return err
			}
		}

		// The obligation sweep is not gated on the prior status: a still-pending
		// reservation can carry obligations too, e.g. after a deposit was paid
		// ahead of approval.
		paidCount := 0
		obligations, err := tx.Obligations().ListByReservationForUpdate(ctx, res.ID())
		if err != nil {
			return err
		}
		for _, o := range obligations {
			switch o.Status() {
			case payment.StatusPending:
				if err := o.CancelPending(); err != nil {
					return err
				}
				if err := tx.Obligations().Update(ctx, o); err != nil {
					return err
				}
			case payment.StatusPaid:
				paidCount++
			}
		}

		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := tx.Projections().Sync(ctx, res); err != nil {
			return err
		}

		if paidCount > 0 {
			result = shared.OK("Reservation cancelled. %d payment(s) may require refund processing.", paidCount)
		} else {
			result = shared.OK("Reservation cancelled.")
		}
		notifs = append(notifs, Notification{
			Template:   "reservation_cancelled",
			EntityType: "reservation",
			EntityID:   res.ID(),
			Payload: map[string]any{
				"event_name": res.Contact().EventName,
				"reason":     reason,
			},
			Channels: []string{ChannelEmail},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.send(ctx, notifs)
	return result, nil
}

// Complete is the staff manual override; it does not require the interval to
// have ended. The automation runner handles the scheduled path.
func (c *reservationCommandsImpl) Complete(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
	if !actor.HasRole(user.RoleStaff) {
		return nil, errs.ErrPermission
	}

	var result *shared.Result
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapRepoErr(err)
		}
		if err := res.Complete(c.clock.Now(), true); err != nil {
			result = transitionFail(err, "complete", res.Status())
			if result != nil {
				return nil
			}
			return err
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := tx.Projections().Sync(ctx, res); err != nil {
			return err
		}
		result = shared.OK("Reservation marked completed.")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close refuses while the refundable deposit is still held: it must be
// refunded or waived first so no money is silently kept.
func (c *reservationCommandsImpl) Close(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
	if !actor.HasRole(user.RoleStaff) {
		return nil, errs.ErrPermission
	}

	var result *shared.Result
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapRepoErr(err)
		}

		obligations, err := tx.Obligations().ListByReservationForUpdate(ctx, res.ID())
		if err != nil {
			return err
		}
		for _, o := range obligations {
			if o.FeeType() == payment.FeeDeposit && o.Status() == payment.StatusPaid {
				result = shared.Fail("The deposit must be refunded or waived before closing.")
				return nil
			}
		}

		if err := res.Close(); err != nil {
			result = transitionFail(err, "close", res.Status())
			if result != nil {
				return nil
			}
			return err
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := tx.Slots().Release(ctx, res.ID()); err != nil {
			return err
		}
		if err := tx.Projections().Sync(ctx, res); err != nil {
			return err
		}
		result = shared.OK("Reservation closed.")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete is the admin-only hard removal. Obligations go with the reservation
// via the schema's cascade; the slot row and projection are cleared here.
func (c *reservationCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.Result, error) {
	if !actor.HasRole(user.RoleAdmin) {
		return nil, errs.ErrPermission
	}

	var result *shared.Result
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapRepoErr(err)
		}
		if err := tx.Slots().Release(ctx, res.ID()); err != nil {
			return err
		}
		if err := tx.Projections().Delete(ctx, res.ID()); err != nil {
			return err
		}
		if err := tx.Reservations().Delete(ctx, res.ID()); err != nil {
			return err
		}
		result = shared.OK("Reservation permanently deleted.")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *reservationCommandsImpl) tiers() pricing.Tiers {
	return pricing.Tiers{
		BaseCents:    c.fees.FacilityBaseCents,
		PremiumCents: c.fees.FacilityPremiumCents,
	}
}

func (c *reservationCommandsImpl) feePolicy() payment.FeePolicy {
	return payment.FeePolicy{
		DepositCents:          c.fees.DepositCents,
		CleaningCents:         c.fees.CleaningCents,
		FacilityDueDaysBefore: c.fees.FacilityDueDaysBefore,
		CleaningDueDaysBefore: c.fees.CleaningDueDaysBefore,
	}
}

func (c *reservationCommandsImpl) send(ctx context.Context, notifs []Notification) {
	for _, n := range notifs {
		c.dispatcher.Send(context.WithoutCancel(ctx), n)
	}
}

// transitionFail converts the entity guard errors into a structured failure
// result, or returns nil for errors the caller should propagate.
func transitionFail(err error, verb string, current reservation.Status) *shared.Result {
	switch {
	case errors.Is(err, reservation.ErrAlreadyInStatus):
		return shared.Fail("Reservation is already %s; no action taken.", current)
	case errors.Is(err, reservation.ErrIllegalTransition):
		return shared.Fail("Cannot %s a %s reservation.", verb, current)
	default:
		return nil
	}
}

func mapRepoErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrNotFound)
	}
	return err
}
