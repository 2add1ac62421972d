//go:build !ebiten

package ui

import "difgrow/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Mask reports no iridophores in headless builds.
func (o *Overlay) Mask() []bool { return nil }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
