package list

import "fmt"

// NotFoundError occurs when an operation references an item id that is not
// present in the current items.
type NotFoundError struct {
	ID ID
}

// Error implements error.
func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s was not found", e.ID)
}

// NoMoreOpsError occurs when Undo is asked to retreat past fork, or Redo is
// asked to advance past the end of the log.
type NoMoreOpsError struct {
	// Redo is true when the failure was a redo past the head of the log,
	// false when it was an undo past the fork point.
	Redo bool
}

// Error implements error.
func (e NoMoreOpsError) Error() string {
	if e.Redo {
		return "no more operations to redo"
	}
	return "no more operations to undo"
}

// CannotCommitError occurs when Root.Commit hits a transform-level conflict
// it has no deterministic resolution for.
type CannotCommitError struct {
	Reason string
}

// Error implements error.
func (e CannotCommitError) Error() string {
	return fmt.Sprintf("cannot commit: %s", e.Reason)
}

// InvalidIDError occurs when an identifier's wire form could not be parsed.
type InvalidIDError struct {
	Input string
}

// Error implements error.
func (e InvalidIDError) Error() string {
	return fmt.Sprintf("%q is not a valid id, expected the form <agent>:<local>", e.Input)
}

// InvariantViolation is panicked (never returned) when the core detects its
// own bookkeeping has broken an invariant it is supposed to maintain
// internally, e.g. an Add of an id that is already present. This always indicates a bug in
// this package, not a caller mistake, and callers should not attempt to
// recover from it.
type InvariantViolation struct {
	What string
}

// Error implements error so this can also be wrapped if someone does choose
// to recover() it at a process boundary.
func (e InvariantViolation) Error() string {
	return "invariant violated: " + e.What
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(NotFoundError)
	return ok
}

// IsNoMoreOps reports whether err is a NoMoreOpsError.
func IsNoMoreOps(err error) bool {
	_, ok := err.(NoMoreOpsError)
	return ok
}

// IsCannotCommit reports whether err is a CannotCommitError.
func IsCannotCommit(err error) bool {
	_, ok := err.(CannotCommitError)
	return ok
}

// IsInvalidID reports whether err is an InvalidIDError.
func IsInvalidID(err error) bool {
	_, ok := err.(InvalidIDError)
	return ok
}
