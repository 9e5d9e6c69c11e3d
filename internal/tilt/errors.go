package tilt

import "errors"

var (
	// ErrFrictionRange indicates a restitution factor outside [0,1].
	ErrFrictionRange = errors.New("tilt: friction must be within [0,1]")

	// ErrMaxVelocity indicates a non-positive speed clamp.
	ErrMaxVelocity = errors.New("tilt: max velocity must be positive")

	// ErrBounds indicates an inverted boundary range.
	ErrBounds = errors.New("tilt: invalid bounds")
)
