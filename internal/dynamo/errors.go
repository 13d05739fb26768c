package dynamo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState      = errors.New("dynamo: state is not finite")
	ErrUnstable          = errors.New("dynamo: state diverged")
	ErrParameterBounds   = errors.New("dynamo: parameter out of bounds")
	ErrUnknownParam      = errors.New("dynamo: unknown parameter")
	ErrStepTooSmall      = errors.New("dynamo: adaptive step below minimum")
	ErrStepRejected      = errors.New("dynamo: step error above tolerance")
	ErrDimensionMismatch = errors.New("dynamo: state does not match the system dimension")
)

// SimulationError records where in a run a step failed.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
