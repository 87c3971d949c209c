package ising

import (
	"errors"
	"math"
	"slices"
	"testing"

	"ising/pkg/core"
)

type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		panic("scriptedSource: int script exhausted")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scriptedSource: float script exhausted")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// allUp builds a lattice whose every spin starts Up and returns the scripted
// source driving it so tests can queue further draws.
func allUp(t *testing.T, w, h int, coupling float64, p Policy) (*Model, *scriptedSource) {
	t.Helper()
	src := &scriptedSource{ints: make([]int, w*h)}
	m, err := New(w, h, coupling, WithSource(src), WithPolicy(p))
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return m, src
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	cases := [][2]int{{0, 5}, {5, 0}, {-1, 3}, {3, -7}, {0, 0}}
	for _, c := range cases {
		m, err := New(c[0], c[1], 1.0)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("New(%d, %d) error = %v, want ErrInvalidDimensions", c[0], c[1], err)
		}
		if m != nil {
			t.Fatalf("New(%d, %d) returned a model alongside the error", c[0], c[1])
		}
	}
}

func TestNewRejectsNonFiniteCoupling(t *testing.T) {
	for _, j := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := New(2, 2, j); !errors.Is(err, ErrInvalidCoupling) {
			t.Fatalf("New with coupling %v error = %v, want ErrInvalidCoupling", j, err)
		}
	}
}

func TestNewSingleCell(t *testing.T) {
	m, err := New(1, 1, 0.0)
	if err != nil {
		t.Fatalf("New(1, 1): %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected a single site, got %d", m.Len())
	}
	if s := m.SpinAt(0, 0); s != Up && s != Down {
		t.Fatalf("sole spin = %d, want +1 or -1", s)
	}
	if m.Width() != 1 || m.Height() != 1 || m.CouplingConstant() != 0 {
		t.Fatalf("accessors = %dx%d J=%v", m.Width(), m.Height(), m.CouplingConstant())
	}
}

func TestNewAssignsBothOrientations(t *testing.T) {
	m, err := New(32, 32, 1, WithSource(core.NewRNG(3)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	up := 0
	for _, s := range m.Spins() {
		if s == Up {
			up++
		}
	}
	if up == 0 || up == m.Len() {
		t.Fatalf("initial grid is uniform (%d of %d up)", up, m.Len())
	}
}

func TestSpinAtWraps(t *testing.T) {
	m, err := New(3, 4, 1, WithSource(core.NewRNG(11)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := []struct {
		name         string
		i, j, wi, wj int
	}{
		{"negative column", -1, 0, 2, 0},
		{"negative row", 0, -1, 0, 3},
		{"column past width", 3, 0, 0, 0},
		{"row past height", 1, 4, 1, 0},
		{"far negative", -7, -9, 2, 3},
		{"far positive", 10, 13, 1, 1},
	}
	for _, c := range cases {
		if got, want := m.SpinAt(c.i, c.j), m.SpinAt(c.wi, c.wj); got != want {
			t.Fatalf("%s: SpinAt(%d,%d)=%v, SpinAt(%d,%d)=%v", c.name, c.i, c.j, got, c.wi, c.wj, want)
		}
	}

	// Flip through a wrapped coordinate and observe it at the canonical one.
	before := m.SpinAt(2, 3)
	m.FlipSpin(-1, -1)
	if m.SpinAt(2, 3) != -before {
		t.Fatal("FlipSpin(-1,-1) did not address (2,3)")
	}
}

func TestFlipSpinInvolution(t *testing.T) {
	m, err := New(5, 5, 1, WithSource(core.NewRNG(5)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	initial := m.Spins()
	m.FlipSpin(-3, 12)
	if slices.Equal(initial, m.Spins()) {
		t.Fatal("single flip left the grid unchanged")
	}
	m.FlipSpin(2, 2)
	if !slices.Equal(initial, m.Spins()) {
		t.Fatal("flipping the same wrapped site twice did not restore the grid")
	}
}

func TestEnergyContributionNeighbours(t *testing.T) {
	m, _ := allUp(t, 3, 3, 1, PolicyLegacy)
	if got := m.EnergyContribution(1, 1); got != 4 {
		t.Fatalf("aligned contribution = %v, want 4", got)
	}

	m.FlipSpin(1, 1)
	if got := m.EnergyContribution(1, 1); got != -4 {
		t.Fatalf("flipped centre contribution = %v, want -4", got)
	}
	// (1,0) sees the flipped centre to its south and three aligned neighbours.
	if got := m.EnergyContribution(1, 0); got != 2 {
		t.Fatalf("north neighbour contribution = %v, want 2", got)
	}
	if got := m.EnergyContribution(0, 0); got != 4 {
		t.Fatalf("corner contribution = %v, want 4", got)
	}
}

func TestEnergyContributionAntiferromagnetic(t *testing.T) {
	m, _ := allUp(t, 4, 4, -0.5, PolicyLegacy)
	if got := m.EnergyContribution(2, 2); got != -2 {
		t.Fatalf("aligned contribution with J=-0.5 = %v, want -2", got)
	}
}

func TestTotalEnergyDoubleCountsBonds(t *testing.T) {
	m, _ := allUp(t, 4, 4, 1, PolicyLegacy)
	if got := m.TotalEnergy(); got != 64 {
		t.Fatalf("TotalEnergy of aligned 4x4 = %v, want 64", got)
	}
	// 16 sites, two bonds each.
	if got := m.BondEnergy(); got != 32 {
		t.Fatalf("BondEnergy of aligned 4x4 = %v, want 32", got)
	}

	for _, size := range [][2]int{{1, 1}, {2, 3}, {7, 5}} {
		r, err := New(size[0], size[1], 0.75, WithSource(core.NewRNG(int64(size[0]*10+size[1]))))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if total, bonds := r.TotalEnergy(), r.BondEnergy(); math.Abs(total-2*bonds) > 1e-9 {
			t.Fatalf("%dx%d: TotalEnergy %v is not twice BondEnergy %v", size[0], size[1], total, bonds)
		}
	}
}

func TestSingleCellFlipsEveryStep(t *testing.T) {
	m, err := New(1, 1, 1.0, WithSource(core.NewRNG(9)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.EnergyContribution(0, 0); got != 4 {
		t.Fatalf("single cell contribution = %v, want 4*J", got)
	}
	initial := m.SpinAt(0, 0)
	temp := MustTemperature(1)
	for n := 1; n <= 11; n++ {
		site, ok := m.Step(temp)
		if !ok {
			t.Fatalf("step %d rejected on a 1x1 lattice with J>0", n)
		}
		if site != (Site{}) {
			t.Fatalf("step %d flipped %v, want (0,0)", n, site)
		}
		want := initial
		if n%2 == 1 {
			want = -initial
		}
		if got := m.SpinAt(0, 0); got != want {
			t.Fatalf("after %d steps spin = %v, want %v", n, got, want)
		}
	}
}

func TestStepPreservesSpinDomain(t *testing.T) {
	m, err := New(16, 12, 0.44, WithSource(core.NewRNG(21)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	temp := MustTemperature(2.3)
	prev := m.Spins()
	for n := 0; n < 5000; n++ {
		site, flipped := m.Step(temp)
		cur := m.Spins()
		if len(cur) != 16*12 {
			t.Fatalf("grid length changed to %d", len(cur))
		}
		changed := 0
		for k := range cur {
			if cur[k] != Up && cur[k] != Down {
				t.Fatalf("step %d produced spin %d at %d", n, cur[k], k)
			}
			if cur[k] != prev[k] {
				changed++
				if k != site.X+16*site.Y {
					t.Fatalf("step %d changed index %d but reported %v", n, k, site)
				}
			}
		}
		if flipped && changed != 1 || !flipped && changed != 0 {
			t.Fatalf("step %d flipped=%v changed %d cells", n, flipped, changed)
		}
		prev = cur
	}
}

func TestDeterministicTrajectory(t *testing.T) {
	run := func() ([]Site, []Spin) {
		m, err := New(20, 20, 0.5, WithSource(core.NewRNG(42)))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		var flips []Site
		temp := MustTemperature(1.5)
		for n := 0; n < 4000; n++ {
			if site, ok := m.Step(temp); ok {
				flips = append(flips, site)
			}
		}
		return flips, m.Spins()
	}
	flipsA, gridA := run()
	flipsB, gridB := run()
	if len(flipsA) == 0 {
		t.Fatal("expected at least one accepted flip")
	}
	if !slices.Equal(flipsA, flipsB) {
		t.Fatal("flip sequence differs between identically seeded runs")
	}
	if !slices.Equal(gridA, gridB) {
		t.Fatal("final grid differs between identically seeded runs")
	}
}

func TestStepWithInvalidTemperature(t *testing.T) {
	m, src := allUp(t, 3, 3, 1, PolicyLegacy)
	before := m.Spins()
	if _, ok := m.Step(Temperature(0)); ok {
		t.Fatal("Step with zero temperature reported a flip")
	}
	if _, ok := m.Step(Temperature(-2)); ok {
		t.Fatal("Step with negative temperature reported a flip")
	}
	if !slices.Equal(before, m.Spins()) {
		t.Fatal("invalid temperature mutated the grid")
	}
	if len(src.ints) != 0 || len(src.floats) != 0 {
		t.Fatal("unexpected script state")
	}
}

func TestStepWithUsesExplicitSource(t *testing.T) {
	m, _ := allUp(t, 3, 3, 1, PolicyLegacy)
	alt := &scriptedSource{ints: []int{2, 1}}
	site, ok := m.StepWith(MustTemperature(1), alt)
	if !ok || site != (Site{X: 2, Y: 1}) {
		t.Fatalf("StepWith = %v, %v; want (2,1), true", site, ok)
	}
	if m.SpinAt(2, 1) != Down {
		t.Fatal("site (2,1) was not flipped")
	}
}
