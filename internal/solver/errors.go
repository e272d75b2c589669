// Package solver implements the compressible PISO numerics: the Thomas
// tridiagonal solver, the Rhie-Chow face-flux operator, and the momentum,
// pressure-correction, energy, and turbulence assembly-and-solve passes.
package solver

import (
	"errors"
	"fmt"
)

// Domain errors for the PISO numerics.
var (
	// ErrNumericalBreakdown indicates an exactly zero pivot during the Thomas
	// forward sweep. Fatal for the step that produced it.
	ErrNumericalBreakdown = errors.New("solver: numerical breakdown (zero pivot in tridiagonal sweep)")

	// ErrDimensionMismatch indicates mismatched coefficient/state slice lengths.
	ErrDimensionMismatch = errors.New("solver: dimension mismatch between coefficient arrays")
)

// StepError wraps an error with the step/time/cell context it occurred in.
type StepError struct {
	Step int
	Time float64
	Cell int
	Err  error
}

func (e *StepError) Error() string {
	if e.Cell >= 0 {
		return fmt.Sprintf("step %d (t=%.6f), cell %d: %s", e.Step, e.Time, e.Cell, e.Err.Error())
	}
	return fmt.Sprintf("step %d (t=%.6f): %s", e.Step, e.Time, e.Err.Error())
}

func (e *StepError) Unwrap() error {
	return e.Err
}
