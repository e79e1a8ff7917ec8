//go:build unit

// Package fake provides an in-memory unit of work for use case tests. It
// honors the repository contracts, including not-found kinds and slot
// conflict errors, without a database.
package fake

import (
	"context"
	"sort"
	"time"

	"venue-reservations/internal/domain/holiday"
	"venue-reservations/internal/domain/payment"
	"venue-reservations/internal/domain/reservation"
	"venue-reservations/internal/domain/user"
	"venue-reservations/internal/infra"
	"venue-reservations/internal/infra/db"
	"venue-reservations/internal/pkg/clock"
	"venue-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	Tx *Tx
	// WithinErr aborts Within before the closure runs.
	WithinErr error
}

func NewUnitOfWork() *UnitOfWork {
	tx := &Tx{
		ReservationStore: &ReservationStore{byID: map[uuid.UUID]*reservation.Reservation{}},
		ObligationStore:  &ObligationStore{byID: map[uuid.UUID]*payment.Obligation{}},
		SlotStore:        &SlotStore{slots: map[uuid.UUID]reservation.TimeSlot{}},
		ProjectionStore:  &ProjectionStore{rows: map[uuid.UUID]bool{}},
		HolidayRuleStore: &HolidayRuleStore{},
		UserStore:        &UserStore{byID: map[uuid.UUID]*user.User{}},
		RunStore:         &RunStore{},
	}
	tx.ObligationStore.reservations = tx.ReservationStore
	return &UnitOfWork{Tx: tx}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.WithinErr != nil {
		return u.WithinErr
	}
	return fn(ctx, u.Tx)
}

func (u *UnitOfWork) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

type Tx struct {
	ReservationStore *ReservationStore
	ObligationStore  *ObligationStore
	SlotStore        *SlotStore
	ProjectionStore  *ProjectionStore
	HolidayRuleStore *HolidayRuleStore
	UserStore        *UserStore
	RunStore         *RunStore
}

func (t *Tx) Reservations() shared.ReservationRepository { return t.ReservationStore }
func (t *Tx) Obligations() shared.ObligationRepository   { return t.ObligationStore }
func (t *Tx) Slots() shared.SlotRepository               { return t.SlotStore }
func (t *Tx) Projections() shared.ProjectionRepository   { return t.ProjectionStore }
func (t *Tx) HolidayRules() shared.HolidayRuleRepository { return t.HolidayRuleStore }
func (t *Tx) Users() shared.UserRepository               { return t.UserStore }
func (t *Tx) Runs() shared.RunRepository                 { return t.RunStore }
func (t *Tx) DB() db.DBTX                                { return nil }

type ReservationStore struct {
	byID map[uuid.UUID]*reservation.Reservation
	// ListEndedErr fails ListApprovedEndedBefore when set.
	ListEndedErr error
}

func (s *ReservationStore) Put(res *reservation.Reservation) {
	s.byID[res.ID()] = res
}

func (s *ReservationStore) Create(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	s.byID[res.ID()] = res
	return res.ID(), nil
}

func (s *ReservationStore) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := s.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res, nil
}

func (s *ReservationStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return s.FindByID(ctx, id)
}

func (s *ReservationStore) Update(_ context.Context, res *reservation.Reservation) error {
	if _, ok := s.byID[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	s.byID[res.ID()] = res
	return nil
}

func (s *ReservationStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	delete(s.byID, id)
	return nil
}

func (s *ReservationStore) ListApprovedEndedBefore(_ context.Context, cutoff time.Time) ([]*reservation.Reservation, error) {
	if s.ListEndedErr != nil {
		return nil, s.ListEndedErr
	}
	var out []*reservation.Reservation
	for _, res := range s.byID {
		if res.Status() == reservation.StatusApproved && res.Slot().End().Before(cutoff) {
			out = append(out, res)
		}
	}
	sortByID(out)
	return out, nil
}

func (s *ReservationStore) ListApprovedStartingOn(_ context.Context, day time.Time) ([]*reservation.Reservation, error) {
	next := day.AddDate(0, 0, 1)
	var out []*reservation.Reservation
	for _, res := range s.byID {
		start := res.Slot().Start()
		if res.Status() == reservation.StatusApproved && !start.Before(day) && start.Before(next) {
			out = append(out, res)
		}
	}
	sortByID(out)
	return out, nil
}

func (s *ReservationStore) Get(id uuid.UUID) *reservation.Reservation {
	return s.byID[id]
}

type ObligationStore struct {
	byID         map[uuid.UUID]*payment.Obligation
	reservations *ReservationStore
	// ListDueOnErr and ListDueBetweenErr fail the corresponding selections.
	ListDueOnErr      error
	ListDueBetweenErr error
}

func (s *ObligationStore) Put(o *payment.Obligation) {
	s.byID[o.ID()] = o
}

func (s *ObligationStore) CreateAll(_ context.Context, obligations []*payment.Obligation) error {
	for _, o := range obligations {
		exists := false
		for _, have := range s.byID {
			if have.ReservationID() == o.ReservationID() && have.FeeType() == o.FeeType() {
				exists = true
				break
			}
		}
		if !exists {
			s.byID[o.ID()] = o
		}
	}
	return nil
}

func (s *ObligationStore) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*payment.Obligation, error) {
	o, ok := s.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("obligation not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (s *ObligationStore) FindByTransactionIDForUpdate(_ context.Context, transactionID string) (*payment.Obligation, error) {
	for _, o := range s.byID {
		if o.TransactionID() != nil && *o.TransactionID() == transactionID {
			return o, nil
		}
	}
	return nil, infra.WrapRepoErr("obligation not found", nil, infra.KindNotFound)
}

func (s *ObligationStore) ListByReservation(_ context.Context, reservationID uuid.UUID) ([]*payment.Obligation, error) {
	var out []*payment.Obligation
	for _, o := range s.byID {
		if o.ReservationID() == reservationID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FeeType() < out[j].FeeType() })
	return out, nil
}

func (s *ObligationStore) ListByReservationForUpdate(ctx context.Context, reservationID uuid.UUID) ([]*payment.Obligation, error) {
	return s.ListByReservation(ctx, reservationID)
}

func (s *ObligationStore) Update(_ context.Context, o *payment.Obligation) error {
	if _, ok := s.byID[o.ID()]; !ok {
		return infra.WrapRepoErr("obligation not found", nil, infra.KindNotFound)
	}
	s.byID[o.ID()] = o
	return nil
}

func (s *ObligationStore) ListPendingDueOn(_ context.Context, day time.Time) ([]*shared.DueObligation, error) {
	if s.ListDueOnErr != nil {
		return nil, s.ListDueOnErr
	}
	return s.selectDue(func(due time.Time) bool {
		return due.Equal(clock.Midnight(day))
	}), nil
}

func (s *ObligationStore) ListPendingDueBetween(_ context.Context, from, to time.Time) ([]*shared.DueObligation, error) {
	if s.ListDueBetweenErr != nil {
		return nil, s.ListDueBetweenErr
	}
	lo, hi := clock.Midnight(from), clock.Midnight(to)
	return s.selectDue(func(due time.Time) bool {
		return !due.Before(lo) && !due.After(hi)
	}), nil
}

func (s *ObligationStore) selectDue(match func(time.Time) bool) []*shared.DueObligation {
	var out []*shared.DueObligation
	for _, o := range s.byID {
		if o.Status() != payment.StatusPending || !match(clock.Midnight(o.DueDate())) {
			continue
		}
		res := s.reservations.Get(o.ReservationID())
		if res == nil || res.Status() != reservation.StatusApproved {
			continue
		}
		out = append(out, &shared.DueObligation{
			ObligationID:  o.ID(),
			ReservationID: res.ID(),
			RequesterID:   res.RequesterID(),
			FeeType:       o.FeeType(),
			AmountCents:   o.AmountCents(),
			DueDate:       o.DueDate(),
			EventName:     res.Contact().EventName,
			ContactEmail:  res.Contact().Email,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObligationID.String() < out[j].ObligationID.String() })
	return out
}

func (s *ObligationStore) Get(id uuid.UUID) *payment.Obligation {
	return s.byID[id]
}

func (s *ObligationStore) All() []*payment.Obligation {
	var out []*payment.Obligation
	for _, o := range s.byID {
		out = append(out, o)
	}
	return out
}

type SlotStore struct {
	slots map[uuid.UUID]reservation.TimeSlot
}

func (s *SlotStore) Confirm(_ context.Context, reservationID uuid.UUID, slot reservation.TimeSlot) error {
	for id, held := range s.slots {
		if id != reservationID && held.Overlaps(slot) {
			return infra.SlotConflictError{CollidingID: id}
		}
	}
	s.slots[reservationID] = slot
	return nil
}

func (s *SlotStore) Release(_ context.Context, reservationID uuid.UUID) error {
	delete(s.slots, reservationID)
	return nil
}

func (s *SlotStore) Holds(reservationID uuid.UUID) bool {
	_, ok := s.slots[reservationID]
	return ok
}

type ProjectionStore struct {
	rows map[uuid.UUID]bool
	// SyncErr fails Sync for the reservation named by SyncErrFor when set.
	SyncErr    error
	SyncErrFor uuid.UUID
}

func (s *ProjectionStore) Sync(_ context.Context, res *reservation.Reservation) error {
	if s.SyncErr != nil && res.ID() == s.SyncErrFor {
		return s.SyncErr
	}
	if res.Status().IsConfirmed() {
		s.rows[res.ID()] = true
	} else {
		delete(s.rows, res.ID())
	}
	return nil
}

func (s *ProjectionStore) Delete(_ context.Context, reservationID uuid.UUID) error {
	delete(s.rows, reservationID)
	return nil
}

func (s *ProjectionStore) Has(reservationID uuid.UUID) bool {
	return s.rows[reservationID]
}

type HolidayRuleStore struct {
	Rules []holiday.Rule
}

func (s *HolidayRuleStore) ListActive(_ context.Context) ([]holiday.Rule, error) {
	return s.Rules, nil
}

type UserStore struct {
	byID map[uuid.UUID]*user.User
}

func (s *UserStore) Put(u *user.User) {
	s.byID[u.ID()] = u
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range s.byID {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (s *UserStore) UpdateLastLogin(_ context.Context, id uuid.UUID, _ time.Time) error {
	if _, ok := s.byID[id]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

type RunStore struct {
	Records []*shared.RunRecord
}

func (s *RunStore) Insert(_ context.Context, rec *shared.RunRecord) error {
	s.Records = append(s.Records, rec)
	return nil
}

func sortByID(rs []*reservation.Reservation) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID().String() < rs[j].ID().String() })
}
