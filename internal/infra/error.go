package infra

import (
	"errors"
	"fmt"

	"venue-reservations/internal/pkg/errs"

	"github.com/google/uuid"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(msg string, err error, kinds ...RepositoryErrorKind) error {
	kind := KindDBFailure
	if len(kinds) > 0 {
		kind = kinds[0]
	}
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// SlotConflictError reports an interval intersection in the confirmed slot
// registry, carrying the reservation already holding the slot.
type SlotConflictError struct {
	CollidingID uuid.UUID
}

func (e SlotConflictError) Error() string {
	return fmt.Sprintf("CONFLICT: slot overlaps confirmed reservation %s", e.CollidingID)
}

func AsSlotConflict(err error) (SlotConflictError, bool) {
	var e SlotConflictError
	ok := errors.As(err, &e)
	return e, ok
}
