package ising

import (
	"fmt"
	"math"
)

// Temperature is a validated thermal scale. The zero value is invalid; use
// NewTemperature to obtain one.
type Temperature float64

// NewTemperature validates t and returns it as a Temperature.
func NewTemperature(t float64) (Temperature, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidTemperature, t)
	}
	return Temperature(t), nil
}

// MustTemperature is NewTemperature for constants known to be valid. It
// panics otherwise.
func MustTemperature(t float64) Temperature {
	temp, err := NewTemperature(t)
	if err != nil {
		panic(err)
	}
	return temp
}

// Valid reports whether t is finite and strictly positive.
func (t Temperature) Valid() bool {
	f := float64(t)
	return f > 0 && !math.IsInf(f, 0)
}

// Float64 returns the raw value.
func (t Temperature) Float64() float64 { return float64(t) }
