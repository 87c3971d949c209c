//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"ising/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const lineHeight = 16

// HUD renders the parameter panel to the right of the simulation view.
// Tab cycles the selected control; +/- nudge it by one step.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	snapshot core.ParameterSnapshot

	controls    []core.ParameterControl
	selected    int
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = provider.ParameterControls()
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the snapshot and applies keyboard adjustments.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	}
	if len(h.controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.selected = (h.selected + 1) % len(h.controls)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		h.adjust(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		h.adjust(-1)
	}
}

func (h *HUD) adjust(direction int) {
	ctrl := h.controls[h.selected]
	param, ok := h.snapshot.Lookup(ctrl.Key)
	if !ok {
		return
	}
	switch ctrl.Type {
	case core.ParamTypeFloat:
		cur, err := strconv.ParseFloat(param.Value, 64)
		if err != nil || h.floatSetter == nil {
			return
		}
		h.floatSetter.SetFloatParameter(ctrl.Key, ctrl.Clamp(cur+float64(direction)*ctrl.Step))
	case core.ParamTypeInt:
		cur, err := strconv.Atoi(param.Value)
		if err != nil || h.intSetter == nil {
			return
		}
		next := ctrl.Clamp(float64(cur) + float64(direction)*ctrl.Step)
		h.intSetter.SetIntParameter(ctrl.Key, int(next))
	}
}

// Draw paints the panel at offsetX, matching the scaled sim height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	y := lineHeight
	text.Draw(h.panel, strings.ToUpper(h.sim.Name()), basicfont.Face7x13, 8, y, color.White)
	y += lineHeight
	for _, group := range h.snapshot.Groups {
		y += lineHeight / 2
		text.Draw(h.panel, group.Name, basicfont.Face7x13, 8, y, color.RGBA{R: 160, G: 160, B: 180, A: 255})
		y += lineHeight
		for _, p := range group.Params {
			label := fmt.Sprintf("%s: %s", p.Label, p.Value)
			clr := color.Color(color.White)
			if h.isSelected(p.Key) {
				label = "> " + label
				clr = color.RGBA{R: 242, G: 193, B: 78, A: 255}
			}
			text.Draw(h.panel, label, basicfont.Face7x13, 12, y, clr)
			y += lineHeight
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) isSelected(key string) bool {
	return len(h.controls) > 0 && h.controls[h.selected].Key == key
}
