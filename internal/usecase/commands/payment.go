package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"venue-reservations/internal/domain/payment"
	"venue-reservations/internal/domain/reservation"
	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/pkg/clock"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentCommands interface {
	RecordManualSettlement(ctx context.Context, actor shared.Actor, obligationID uuid.UUID, method string, settledOn time.Time) (*shared.Result, error)
	WaiveAll(ctx context.Context, actor shared.Actor, reservationID uuid.UUID) (*shared.Result, error)
	CreatePaymentIntent(ctx context.Context, actor shared.Actor, obligationID uuid.UUID) (string, error)
	// OnGatewayTransactionUpdate and OnGatewayRefundUpdate are webhook entry
	// points: unauthenticated by role, idempotent under replay, and silent on
	// unknown transaction ids.
	OnGatewayTransactionUpdate(ctx context.Context, transactionID, status string, amountCents int64) error
	OnGatewayRefundUpdate(ctx context.Context, transactionID string, totalRefundedCents int64) error
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
	logger  *slog.Logger
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway PaymentGateway, clk clock.Clock, logger *slog.Logger) PaymentCommands {
	return &paymentCommandsImpl{uow: uow, gateway: gateway, clock: clk, logger: logger}
}

func (c *paymentCommandsImpl) RecordManualSettlement(ctx context.Context, actor shared.Actor, obligationID uuid.UUID, method string, settledOn time.Time) (*shared.Result, error) {
	if !actor.HasRole(user.RoleStaff) {
		return nil, errs.ErrPermission
	}
	m, err := payment.NewMethod(method)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	var result *shared.Result
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		o, err := tx.Obligations().FindByIDForUpdate(ctx, obligationID)
		if err != nil {
			return mapRepoErr(err)
		}
		if err := o.SettleManual(m, settledOn); err != nil {
			if errors.Is(err, payment.ErrNotPending) {
				result = shared.Fail("The %s fee is %s; only a pending fee can be settled.", o.FeeType(), o.Status())
				return nil
			}
			return err
		}
		if err := tx.Obligations().Update(ctx, o); err != nil {
			return err
		}
		result = shared.OK("%s fee recorded as paid by %s.", titleFee(o.FeeType()), m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// WaiveAll marks every still-pending obligation of the reservation waived.
// It only applies while the reservation is approved, settled obligations are
// untouched, and nothing pending is a failure result so the caller learns
// there was nothing to do.
func (c *paymentCommandsImpl) WaiveAll(ctx context.Context, actor shared.Actor, reservationID uuid.UUID) (*shared.Result, error) {
	if !actor.HasRole(user.RoleManager) {
		return nil, errs.ErrPermission
	}

	var result *shared.Result
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		res, err := tx.Reservations().FindByID(ctx, reservationID)
		if err != nil {
			return mapRepoErr(err)
		}
		if res.Status() != reservation.StatusApproved {
			result = shared.Fail("Only payments on an approved reservation can be waived; this one is %s.", res.Status())
			return nil
		}
		obligations, err := tx.Obligations().ListByReservationForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}

		waived := 0
		for _, o := range obligations {
			if o.Status() != payment.StatusPending {
				continue
			}
			if err := o.Waive(); err != nil {
				return err
			}
			if err := tx.Obligations().Update(ctx, o); err != nil {
				return err
			}
			waived++
		}
		if waived == 0 {
			result = shared.Fail("No pending payments to waive.")
			return nil
		}
		result = shared.OK("%d payment(s) waived.", waived)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreatePaymentIntent asks the gateway for a checkout transaction and links
// its id to the obligation so the later webhook can find it.
func (c *paymentCommandsImpl) CreatePaymentIntent(ctx context.Context, actor shared.Actor, obligationID uuid.UUID) (string, error) {
	var transactionID string
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Obligations().FindByIDForUpdate(ctx, obligationID)
		if err != nil {
			return mapRepoErr(err)
		}
		if !actor.HasRole(user.RoleStaff) {
			res, err := tx.Reservations().FindByID(ctx, o.ReservationID())
			if err != nil {
				return mapRepoErr(err)
			}
			if res.RequesterID() != actor.ID {
				return errs.ErrPermission
			}
		}
		if o.Status() != payment.StatusPending {
			return errs.Mark(errs.Newf("the %s fee is %s and cannot be paid", o.FeeType(), o.Status()), errs.ErrNotApplicable)
		}

		transactionID, err = c.gateway.CreatePaymentIntent(ctx, PaymentIntent{
			EntityTable:    "payment_obligations",
			EntityIDColumn: "id",
			EntityID:       o.ID(),
			LinkColumn:     "transaction_id",
			AmountCents:    o.AmountCents(),
			Description:    fmt.Sprintf("%s fee for reservation %s", o.FeeType(), o.ReservationID()),
		})
		if err != nil {
			return errs.Wrap(err, "payment gateway rejected intent creation")
		}
		if err := o.LinkTransaction(transactionID); err != nil {
			return err
		}
		return tx.Obligations().Update(ctx, o)
	})
	if err != nil {
		return "", err
	}
	return transactionID, nil
}

func (c *paymentCommandsImpl) OnGatewayTransactionUpdate(ctx context.Context, transactionID, status string, amountCents int64) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Obligations().FindByTransactionIDForUpdate(ctx, transactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// Unknown transaction: the obligation may have been deleted
				// or the intent cancelled. Acknowledge and drop.
				c.logger.Warn("gateway callback for unknown transaction",
					slog.String("transaction_id", transactionID),
					slog.String("status", status))
				return nil
			}
			return err
		}

		switch status {
		case GatewayStatusSucceeded:
			if err := o.ApplyGatewaySuccess(amountCents, c.clock.Now()); err != nil {
				if errors.Is(err, payment.ErrAlreadySettled) {
					// Replayed webhook; already applied.
					return nil
				}
				if errors.Is(err, payment.ErrNotPending) {
					c.logger.Warn("gateway success for non-pending obligation",
						slog.String("transaction_id", transactionID),
						slog.String("obligation_status", o.Status().String()))
					return nil
				}
				return err
			}
		case GatewayStatusFailed, GatewayStatusCanceled:
			if err := o.ApplyGatewayFailure(); err != nil {
				if errors.Is(err, payment.ErrNotPending) {
					return nil
				}
				return err
			}
		default:
			c.logger.Info("ignoring gateway transaction status",
				slog.String("transaction_id", transactionID),
				slog.String("status", status))
			return nil
		}
		return tx.Obligations().Update(ctx, o)
	})
}

func (c *paymentCommandsImpl) OnGatewayRefundUpdate(ctx context.Context, transactionID string, totalRefundedCents int64) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Obligations().FindByTransactionIDForUpdate(ctx, transactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				c.logger.Warn("gateway refund for unknown transaction",
					slog.String("transaction_id", transactionID))
				return nil
			}
			return err
		}
		if err := o.ApplyRefund(totalRefundedCents); err != nil {
			if errors.Is(err, payment.ErrNotPending) {
				c.logger.Warn("gateway refund for unsettled obligation",
					slog.String("transaction_id", transactionID),
					slog.String("obligation_status", o.Status().String()))
				return nil
			}
			return err
		}
		return tx.Obligations().Update(ctx, o)
	})
}

func titleFee(f payment.FeeType) string {
	switch f {
	case payment.FeeDeposit:
		return "Deposit"
	case payment.FeeFacility:
		return "Facility"
	case payment.FeeCleaning:
		return "Cleaning"
	default:
		return string(f)
	}
}
