package queries

import (
	"context"

	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	// GetByID enforces ownership: requesters see only their own records,
	// staff and above see everything.
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*ReservationListItem, error)
	ListByStatus(ctx context.Context, actor shared.Actor, status string) ([]*ReservationListItem, error)
	ListObligations(ctx context.Context, actor shared.Actor, reservationID uuid.UUID) ([]*ObligationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*ReservationListItem, error)
	FindByStatus(ctx context.Context, status string) ([]*ReservationListItem, error)
	FindObligationsByReservation(ctx context.Context, reservationID uuid.UUID) ([]*ObligationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, err
	}
	if !actor.HasRole(user.RoleStaff) && view.RequesterID != actor.ID {
		return nil, errs.ErrPermission
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*ReservationListItem, error) {
	return q.repo.FindByRequesterID(ctx, requesterID)
}

func (q *reservationQueriesImpl) ListByStatus(ctx context.Context, actor shared.Actor, status string) ([]*ReservationListItem, error) {
	if !actor.HasRole(user.RoleStaff) {
		return nil, errs.ErrPermission
	}
	return q.repo.FindByStatus(ctx, status)
}

func (q *reservationQueriesImpl) ListObligations(ctx context.Context, actor shared.Actor, reservationID uuid.UUID) ([]*ObligationView, error) {
	view, err := q.repo.FindByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, err
	}
	if !actor.HasRole(user.RoleStaff) && view.RequesterID != actor.ID {
		return nil, errs.ErrPermission
	}
	return q.repo.FindObligationsByReservation(ctx, reservationID)
}
