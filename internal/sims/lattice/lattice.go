package lattice

import (
	"ising/internal/core"
	pkgcore "ising/pkg/core"
	"ising/pkg/ising"

	"github.com/charmbracelet/log"
)

// FlipObserver is notified of every proposal the sim makes.
type FlipObserver interface {
	ObserveStep(site ising.Site, flipped bool)
}

// Lattice adapts an ising.Model to the host-facing core.Sim contract.
type Lattice struct {
	cfg    Config
	model  *ising.Model
	temp   ising.Temperature
	policy ising.Policy
	cells  *core.CellBuffer

	accepted uint64
	rejected uint64

	observers []FlipObserver
	logger    *log.Logger
}

// New validates cfg and builds the initial lattice.
func New(cfg Config) (*Lattice, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	temp, _ := ising.NewTemperature(cfg.Temperature)
	policy, _ := ising.ParsePolicy(cfg.Policy)
	l := &Lattice{
		cfg:    cfg,
		temp:   temp,
		policy: policy,
		cells:  core.NewCellBuffer(cfg.Width, cfg.Height),
		logger: log.Default(),
	}
	if err := l.rebuild(cfg.Seed); err != nil {
		return nil, err
	}
	return l, nil
}

// SetLogger replaces the logger used for lifecycle events.
func (l *Lattice) SetLogger(logger *log.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// AddObserver registers o for every subsequent proposal.
func (l *Lattice) AddObserver(o FlipObserver) {
	if o != nil {
		l.observers = append(l.observers, o)
	}
}

// Name returns the simulation identifier.
func (l *Lattice) Name() string { return "ising" }

// Size returns the grid dimensions.
func (l *Lattice) Size() core.Size { return core.Size{W: l.cfg.Width, H: l.cfg.Height} }

// Cells exposes the display buffer: 1 for an up spin, 0 for down.
func (l *Lattice) Cells() []uint8 { return l.cells.Cells() }

// Model exposes the underlying lattice for read access.
func (l *Lattice) Model() *ising.Model { return l.model }

// Config returns the active configuration including live adjustments.
func (l *Lattice) Config() Config { return l.cfg }

// Temperature returns the temperature used by Step.
func (l *Lattice) Temperature() ising.Temperature { return l.temp }

// Counts returns accepted and rejected proposals since the last reset.
func (l *Lattice) Counts() (accepted, rejected uint64) { return l.accepted, l.rejected }

// Reset draws a new random lattice. A zero seed falls back to the configured
// seed, and a zero configured seed draws from entropy.
func (l *Lattice) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = l.cfg.Seed
	}
	if err := l.rebuild(effective); err != nil {
		l.logger.Error("reset failed", "seed", effective, "err", err)
		return
	}
	l.logger.Debug("lattice reset", "seed", effective, "w", l.cfg.Width, "h", l.cfg.Height)
}

func (l *Lattice) rebuild(seed int64) error {
	opts := []ising.Option{ising.WithPolicy(l.policy)}
	if seed != 0 {
		opts = append(opts, ising.WithSource(pkgcore.NewRNG(seed)))
	}
	m, err := ising.New(l.cfg.Width, l.cfg.Height, l.cfg.Coupling, opts...)
	if err != nil {
		return err
	}
	l.model = m
	l.accepted, l.rejected = 0, 0
	l.syncCells()
	return nil
}

func (l *Lattice) syncCells() {
	w := l.cfg.Width
	l.cells.Fill(func(i int) uint8 {
		return cellValue(l.model.SpinAt(i%w, i/w))
	})
}

// Step runs one tick worth of single-site proposals.
func (l *Lattice) Step() {
	n := l.cfg.Sweep()
	for k := 0; k < n; k++ {
		site, flipped := l.model.Step(l.temp)
		if flipped {
			l.accepted++
			l.cells.Set(site.X, site.Y, cellValue(l.model.SpinAt(site.X, site.Y)))
		} else {
			l.rejected++
		}
		for _, o := range l.observers {
			o.ObserveStep(site, flipped)
		}
	}
}

func cellValue(s ising.Spin) uint8 {
	if s == ising.Up {
		return 1
	}
	return 0
}

func init() {
	core.Register("ising", func(cfg map[string]string) (core.Sim, error) {
		l, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return l, nil
	})
}
