package errs

import "errors"

// Sentinel errors shared across usecase layers. Handlers and the automation
// runner branch on these with errors.Is; everything else is treated as an
// internal failure.
var (
	// Rejected before any state change.
	ErrValidation = errors.New("validation error")

	// Requested transition is illegal for the current status.
	ErrStateTransition = errors.New("illegal state transition")

	// Re-invoking a transition on an already-terminal or already-target
	// status. A no-op outcome, never a crash.
	ErrNotApplicable = errors.New("transition not applicable")

	// Confirmation would overlap an existing confirmed interval.
	ErrSlotConflict = errors.New("time slot conflict")

	// Actor lacks the required role.
	ErrPermission = errors.New("permission denied")

	ErrNotFound = errors.New("not found")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
