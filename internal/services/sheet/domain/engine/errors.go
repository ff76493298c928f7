package engine

import (
	"errors"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
)

var (
	// ErrNothingToUndo reports an undo with the cursor at the start of the journal.
	ErrNothingToUndo = apperrors.New(apperrors.CodeHistoryNothingToUndo, "nothing to undo")
	// ErrNothingToRedo reports a redo with the cursor at the end of the journal.
	ErrNothingToRedo = apperrors.New(apperrors.CodeHistoryNothingToRedo, "nothing to redo")
	// ErrSnapshotRequired indicates a missing starting snapshot.
	ErrSnapshotRequired = errors.New("snapshot is required")
)

// nonRetryableError marks an invariant violation. Resubmitting the same
// mutation would hit the same check/apply mismatch, so callers should surface
// it as a permanent failure.
type nonRetryableError struct {
	err error
}

func (e *nonRetryableError) Error() string { return e.err.Error() }
func (e *nonRetryableError) Unwrap() error { return e.err }

// NonRetryable returns true from IsNonRetryable checks.
func (e *nonRetryableError) NonRetryable() bool { return true }

// wrapNonRetryable marks err as an invariant violation that must not be retried.
func wrapNonRetryable(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.CodeOf(err) != apperrors.CodeInvariantViolation {
		err = apperrors.Wrap(apperrors.CodeInvariantViolation, "apply broke an invariant", err)
	}
	return &nonRetryableError{err: err}
}

// IsNonRetryable returns true when the error (or any error in its chain)
// signals that the operation must not be retried.
func IsNonRetryable(err error) bool {
	var target interface{ NonRetryable() bool }
	if errors.As(err, &target) {
		return target.NonRetryable()
	}
	return false
}
