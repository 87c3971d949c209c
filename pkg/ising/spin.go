package ising

import "fmt"

// Spin is the magnetic state of one lattice site.
type Spin int8

const (
	Up   Spin = 1
	Down Spin = -1
)

// Flipped returns the opposite orientation.
func (s Spin) Flipped() Spin { return -s }

func (s Spin) String() string {
	if s == Up {
		return "+1"
	}
	return "-1"
}

// Site addresses a lattice cell in unwrapped coordinates.
type Site struct {
	X, Y int
}

func (s Site) String() string { return fmt.Sprintf("(%d,%d)", s.X, s.Y) }

// nnOffsets lists the north, south, east and west neighbours.
var nnOffsets = [4]Site{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
}

// wrap maps v onto [0, n) using mathematical modulo.
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
