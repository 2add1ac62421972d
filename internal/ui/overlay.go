//go:build ebiten

package ui

import (
	"image/color"

	"difgrow/internal/core"
	"difgrow/internal/lattice"
	"difgrow/internal/report"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type stateProvider interface {
	State() *lattice.State
}

var (
	melanophoreBar = color.RGBA{R: 220, G: 40, B: 60, A: 200}
	xanthophoreBar = color.RGBA{R: 40, G: 120, B: 220, A: 200}
)

// Overlay draws optional visuals on top of the lattice: the iridophore tint
// (toggled with I) and the per-row melanophore and xanthophore fractions
// (toggled with P).
type Overlay struct {
	sim         core.Sim
	scale       int
	showIrid    bool
	showProfile bool
	pixel       *ebiten.Image
}

// NewOverlay constructs a new overlay instance with the iridophore tint on.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showIrid: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.showIrid = !o.showIrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		o.showProfile = !o.showProfile
	}
}

// Mask returns the iridophore mask to tint, or nil when the tint is hidden or
// the simulation has no lattice state.
func (o *Overlay) Mask() []bool {
	if !o.showIrid {
		return nil
	}
	sp, ok := o.sim.(stateProvider)
	if !ok {
		return nil
	}
	return sp.State().IridophoreMask()
}

// Draw renders the row profile bars along the left edge of the lattice.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showProfile {
		return
	}
	sp, ok := o.sim.(stateProvider)
	if !ok {
		return
	}
	st := sp.State()
	span := float64(st.Cols()*o.scale) / 3
	rowH := float64(o.scale)
	mel := report.RowProfile(st, lattice.Melanophore)
	xan := report.RowProfile(st, lattice.Xanthophore)
	for r := range mel {
		y := float64(r) * rowH
		o.drawRect(screen, 0, y, mel[r]*span, rowH/2, melanophoreBar)
		o.drawRect(screen, 0, y+rowH/2, xan[r]*span, rowH/2, xanthophoreBar)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
