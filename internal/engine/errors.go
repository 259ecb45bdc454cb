package engine

import (
	"errors"
	"fmt"
)

// Domain errors for engine construction.
var (
	// ErrRodTooShort indicates a connecting rod that cannot reach the piston axis
	// for every crank angle.
	ErrRodTooShort = errors.New("engine: connecting rod must be longer than the crank radius")

	// ErrNonPositive indicates a geometry dimension that must be strictly positive.
	ErrNonPositive = errors.New("engine: dimension must be positive")

	// ErrCylinder indicates a cylinder that cannot contain the piston stroke.
	ErrCylinder = errors.New("engine: cylinder does not contain the piston stroke")

	// ErrOutOfSurface indicates geometry that falls outside the drawing surface.
	ErrOutOfSurface = errors.New("engine: geometry exceeds the drawing surface")

	// ErrSpeedGain indicates a tuning where rotation speed would not grow with efficiency.
	ErrSpeedGain = errors.New("engine: speed gain must be positive")
)

// GeometryError wraps a geometry violation with the offending field.
type GeometryError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s (%s=%g)", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *GeometryError) Unwrap() error {
	return e.Wrapped
}
