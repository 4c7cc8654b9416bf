package rename

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the rename error kinds. Typed errors below match them
// through errors.Is.
var (
	// ErrConflict indicates the new name's artifacts already exist.
	ErrConflict = errors.New("naming conflict")

	// ErrPrecondition indicates an operation's expected filesystem state did not hold.
	ErrPrecondition = errors.New("precondition failed")

	// ErrIO indicates a filesystem failure while applying an operation.
	ErrIO = errors.New("filesystem error")

	// ErrValidation indicates the post-rename consistency check failed.
	ErrValidation = errors.New("rename validation failed")

	// ErrPlanOrder indicates an edit is ordered before the move that produces its file.
	ErrPlanOrder = errors.New("invalid operation order")

	// ErrNothingToRename indicates discovery found no artifacts for the old name.
	ErrNothingToRename = errors.New("nothing to rename")
)

// ConflictError lists the artifacts that block a rename.
type ConflictError struct {
	Kind      Kind
	NewName   string
	Conflicts []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot rename %s to %q: %d conflict(s): %s",
		e.Kind, e.NewName, len(e.Conflicts), strings.Join(e.Conflicts, "; "))
}

// Is makes errors.Is(err, ErrConflict) true.
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// PreconditionError reports a stale plan detected while applying operation Index.
type PreconditionError struct {
	Index  int
	Op     OpKind
	Path   string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("operation %d (%s %s): %s", e.Index+1, e.Op, e.Path, e.Reason)
}

// Is makes errors.Is(err, ErrPrecondition) true.
func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

// IOError wraps a filesystem failure while applying operation Index.
type IOError struct {
	Index int
	Op    OpKind
	Path  string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("operation %d (%s %s): %v", e.Index+1, e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) true.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// ValidationError reports that execution committed but the project is not
// consistent with the new name. It is a warning: nothing is rolled back.
type ValidationError struct {
	Kind    Kind
	OldName string
	NewName string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s rename %q -> %q applied, but validation found old-name artifacts remaining or new-name artifacts missing",
		e.Kind, e.OldName, e.NewName)
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PlanOrderError reports an ordering violation found by Plan.Verify.
type PlanOrderError struct {
	Index  int
	Path   string
	Reason string
}

func (e *PlanOrderError) Error() string {
	return fmt.Sprintf("operation %d (%s): %s", e.Index+1, e.Path, e.Reason)
}

// Is makes errors.Is(err, ErrPlanOrder) true.
func (e *PlanOrderError) Is(target error) bool { return target == ErrPlanOrder }
