//go:build ebiten

package app

import (
	"image/color"
	"time"

	"ising/internal/core"
	"ising/internal/render"
	"ising/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	logger  *log.Logger

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	onTick   func()
}

// New constructs a Game for the provided simulation. onTick, when non-nil,
// runs after every simulation tick.
func New(sim core.Sim, scale int, seed int64, logger *log.Logger, onTick func()) *Game {
	if scale < 1 {
		scale = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	return &Game{
		sim:      sim,
		painter:  gp,
		hud:      ui.NewHUD(sim, hudWidth),
		logger:   logger,
		onColor:  render.UpColor,
		offColor: render.DownColor,
		scale:    scale,
		seed:     seed,
		onTick:   onTick,
	}
}

// WindowSize returns the outer window size including the HUD panel.
func (g *Game) WindowSize() (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.logger.Info("reset", "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.hud.Update()

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
		if g.onTick != nil {
			g.onTick()
		}
	}
	return nil
}

// Draw renders the current lattice and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
