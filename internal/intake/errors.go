package intake

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionTerminated is returned for input submitted after completion or exit.
	ErrSessionTerminated = errors.New("session is terminated")
	// ErrNoInputExpected is returned when the current step does not collect a field.
	ErrNoInputExpected = errors.New("step does not accept input")
)

// ValidationError reports a rejected answer. The session stays on Step.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Step, e.Message)
}
