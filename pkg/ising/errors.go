package ising

import "errors"

var (
	// ErrInvalidDimensions reports a lattice with a non-positive width or height.
	ErrInvalidDimensions = errors.New("ising: invalid dimensions")

	// ErrInvalidCoupling reports a NaN or infinite coupling constant.
	ErrInvalidCoupling = errors.New("ising: coupling constant must be finite")

	// ErrInvalidTemperature reports a temperature that is not a finite positive number.
	ErrInvalidTemperature = errors.New("ising: temperature must be finite and positive")

	// ErrUnknownPolicy reports an acceptance policy name that does not parse.
	ErrUnknownPolicy = errors.New("ising: unknown acceptance policy")
)
