package reminder

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget is returned when the target is missing or unparsable.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrNotInFuture is returned when the target is not after the current instant.
	ErrNotInFuture = errors.New("target is not in the future")

	// ErrMissingTarget is the ErrInvalidTarget flavour for empty input.
	ErrMissingTarget = fmt.Errorf("%w: no date and time chosen", ErrInvalidTarget)
)

// RejectionMessage renders an arming error as user-facing status text.
func RejectionMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingTarget):
		return "Please choose a date and time first."
	case errors.Is(err, ErrInvalidTarget):
		return "The selected time is not valid."
	case errors.Is(err, ErrNotInFuture):
		return "Please select a time in the future."
	default:
		return err.Error()
	}
}
