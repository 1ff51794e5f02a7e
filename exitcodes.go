package nxvalidate

import (
	"errors"

	nxerrors "github.com/nxvalidate/nxvalidate/errors"
)

// Exit codes for semantic error classification.
const (
	ExitSuccess      = 0 // No findings at error severity
	ExitGeneralError = 1 // Unknown or unclassified error
	ExitFindings     = 2 // Validation completed with error findings
	ExitSchemaError  = 3 // Schema could not be loaded or resolved
	ExitDataError    = 4 // Data file could not be read
)

// ErrFindings signals that validation completed and the report contains
// findings at error severity.
var ErrFindings = errors.New("validation reported errors")

// ExitCodeForError returns the exit code for an error. Returns
// ExitSuccess for nil, semantic codes for classified errors, and
// ExitGeneralError otherwise.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrFindings) {
		return ExitFindings
	}
	if nxerrors.IsCode(err, nxerrors.CodeSourceUnavailable) {
		return ExitDataError
	}
	if _, ok := nxerrors.AsSchemaError(err); ok {
		return ExitSchemaError
	}
	return ExitGeneralError
}
