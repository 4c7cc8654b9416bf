package cli

import (
	"errors"

	"github.com/modforge/modforge/internal/config"
	"github.com/modforge/modforge/internal/project"
	"github.com/modforge/modforge/internal/rename"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrConflict           = "CONFLICT"
	ErrPreconditionFailed = "PRECONDITION_FAILED"
	ErrIOError            = "IO_ERROR"
	ErrValidationFailed   = "VALIDATION_FAILED"
	ErrConfigInvalid      = "CONFIG_INVALID"
	ErrInvalidInput       = "INVALID_INPUT"
	ErrNothingToRename    = "NOTHING_TO_RENAME"
	ErrDatabaseError      = "DATABASE_ERROR"
	ErrInternal           = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnConflictsForced     = "CONFLICTS_FORCED"
	WarnRollbackLeftovers   = "ROLLBACK_LEFTOVERS"
	WarnRollbackIncomplete  = "ROLLBACK_INCOMPLETE"
	WarnHistoryFailed       = "HISTORY_WRITE_FAILED"
	WarnLoaderNotConfigured = "LOADER_NOT_CONFIGURED"
	WarnValidationSkipped   = "VALIDATION_SKIPPED"
	WarnConfigOverridden    = "CONFIG_OVERRIDDEN"
)

// errorCode maps an error to its stable code.
func errorCode(err error) string {
	var ce *codedError
	switch {
	case errors.As(err, &ce):
		return ce.code
	case errors.Is(err, rename.ErrConflict):
		return ErrConflict
	case errors.Is(err, rename.ErrPrecondition):
		return ErrPreconditionFailed
	case errors.Is(err, rename.ErrIO):
		return ErrIOError
	case errors.Is(err, rename.ErrValidation):
		return ErrValidationFailed
	case errors.Is(err, rename.ErrNothingToRename):
		return ErrNothingToRename
	case errors.Is(err, rename.ErrInvalidContext), errors.Is(err, project.ErrUnknownVersionScope):
		return ErrInvalidInput
	case errors.Is(err, config.ErrConfigNotFound):
		return ErrConfigInvalid
	default:
		return ErrInternal
	}
}

// suggestion returns a hint for the user, or "".
func suggestion(code string) string {
	switch code {
	case ErrConflict:
		return "Pick another name, or pass --force to rename anyway"
	case ErrPreconditionFailed:
		return "The project changed while renaming; re-run the command"
	case ErrValidationFailed:
		return "The changes were kept; inspect the remaining references with 'modforge refs'"
	case ErrConfigInvalid:
		return "Create " + config.FileName + " at the project root, or pass --mod-id and --package"
	case ErrNothingToRename:
		return "Check the name with 'modforge refs'"
	default:
		return ""
	}
}

// codedError attaches an explicit code to errors that have no sentinel.
type codedError struct {
	code string
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}
