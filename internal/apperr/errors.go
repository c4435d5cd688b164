package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrConfig           = errors.New("invalid configuration")
	ErrValidationFailed = errors.New("validation failed")
	ErrSwapIncomplete   = errors.New("directory swap incomplete")
	ErrJournalPending   = errors.New("swap journal pending")
)

// Process exit codes.
const (
	ExitSuccess        = 0
	ExitGeneral        = 1
	ExitConfig         = 2
	ExitValidation     = 3
	ExitFileSystem     = 4
	ExitJournalPending = 5
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConfig):
		return ExitConfig
	case errors.Is(err, ErrValidationFailed):
		return ExitValidation
	case errors.Is(err, ErrJournalPending):
		return ExitJournalPending
	case errors.Is(err, ErrSwapIncomplete):
		return ExitFileSystem
	default:
		return ExitGeneral
	}
}
