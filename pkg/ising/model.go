package ising

import (
	"fmt"
	"math"

	"ising/pkg/core"
)

// Model is a toroidal lattice of spins coupled to their four nearest
// neighbours.
type Model struct {
	width, height int
	coupling      float64
	spins         []Spin

	src    Source
	policy Policy
}

// Option customizes a Model at construction time.
type Option func(*Model)

// WithSource makes the model draw all of its randomness from src, including
// the initial spin assignment. A nil src keeps the default entropy source.
func WithSource(src Source) Option {
	return func(m *Model) {
		if src != nil {
			m.src = src
		}
	}
}

// WithPolicy selects the acceptance rule used by Step.
func WithPolicy(p Policy) Option {
	return func(m *Model) { m.policy = p }
}

// New builds a width*height lattice with coupling constant J and assigns every
// spin independently Up or Down with equal probability.
func New(width, height int, coupling float64, opts ...Option) (*Model, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if math.IsNaN(coupling) || math.IsInf(coupling, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidCoupling, coupling)
	}
	m := &Model{
		width:    width,
		height:   height,
		coupling: coupling,
		spins:    make([]Spin, width*height),
		policy:   PolicyLegacy,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.src == nil {
		m.src = core.NewEntropyRNG()
	}
	choices := [2]Spin{Up, Down}
	for i := range m.spins {
		m.spins[i] = choices[m.src.IntN(2)]
	}
	return m, nil
}

// Width returns the number of columns.
func (m *Model) Width() int { return m.width }

// Height returns the number of rows.
func (m *Model) Height() int { return m.height }

// CouplingConstant returns J.
func (m *Model) CouplingConstant() float64 { return m.coupling }

// Policy returns the acceptance rule used by Step.
func (m *Model) Policy() Policy { return m.policy }

// Len returns the number of sites.
func (m *Model) Len() int { return len(m.spins) }

// Spins returns a copy of the grid in row-major order.
func (m *Model) Spins() []Spin {
	return append([]Spin(nil), m.spins...)
}

func (m *Model) index(i, j int) int {
	return wrap(i, m.width) + m.width*wrap(j, m.height)
}

// SpinAt returns the spin at (i, j) after wrapping both coordinates onto the
// torus.
func (m *Model) SpinAt(i, j int) Spin {
	return m.spins[m.index(i, j)]
}

// FlipSpin negates the spin at the wrapped site (i, j).
func (m *Model) FlipSpin(i, j int) {
	idx := m.index(i, j)
	m.spins[idx] = -m.spins[idx]
}

// SelectRandomSite draws a column in [0, width) and then a row in
// [0, height) from src.
func (m *Model) SelectRandomSite(src Source) Site {
	i := src.IntN(m.width)
	j := src.IntN(m.height)
	return Site{X: i, Y: j}
}

// EnergyContribution returns J * s(i,j) * (sum of the four neighbour spins).
// Summing it over every site counts each bond twice; see TotalEnergy.
func (m *Model) EnergyContribution(i, j int) float64 {
	var sum int
	for _, off := range nnOffsets {
		sum += int(m.SpinAt(i+off.X, j+off.Y))
	}
	return m.coupling * float64(int(m.SpinAt(i, j))*sum)
}

// Step proposes a single flip using the model's own source. It returns the
// flipped site and true, or false when the proposal was rejected. An invalid
// Temperature proposes nothing and returns false.
func (m *Model) Step(t Temperature) (Site, bool) {
	return m.StepWith(t, m.src)
}

// StepWith is Step drawing site and acceptance randomness from src.
func (m *Model) StepWith(t Temperature, src Source) (Site, bool) {
	if !t.Valid() {
		return Site{}, false
	}
	site := m.SelectRandomSite(src)
	e := m.EnergyContribution(site.X, site.Y)
	if !m.policy.accept(e, t, src) {
		return Site{}, false
	}
	m.FlipSpin(site.X, site.Y)
	return site, true
}

// TotalEnergy sums EnergyContribution over every site. Each nearest-neighbour
// bond is visited from both ends, so the result is twice the bond energy and
// carries the sign convention of EnergyContribution. BondEnergy returns the
// single-counted value.
func (m *Model) TotalEnergy() float64 {
	var total float64
	for i := 0; i < m.width; i++ {
		for j := 0; j < m.height; j++ {
			total += m.EnergyContribution(i, j)
		}
	}
	return total
}

// BondEnergy sums J*s*s' over every bond exactly once by visiting only the
// east and south neighbour of each site. It always equals TotalEnergy()/2.
func (m *Model) BondEnergy() float64 {
	var sum int
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			s := int(m.spins[x+m.width*y])
			sum += s * int(m.SpinAt(x+1, y))
			sum += s * int(m.SpinAt(x, y+1))
		}
	}
	return m.coupling * float64(sum)
}
