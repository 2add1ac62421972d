package render

import (
	"image/color"

	"difgrow/internal/lattice"
)

var (
	// EmptyColor renders cells without pigment.
	EmptyColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// XanthophoreColor renders xanthophores.
	XanthophoreColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	// MelanophoreColor renders melanophores.
	MelanophoreColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	// IridophoreTint is blended over iridophore sites when the overlay is on.
	IridophoreTint = color.RGBA{R: 120, G: 190, B: 230, A: 255}
)

// Palette returns the colours indexed by lattice.Cell.
func Palette() []color.RGBA {
	return []color.RGBA{
		lattice.Empty:       EmptyColor,
		lattice.Xanthophore: XanthophoreColor,
		lattice.Melanophore: MelanophoreColor,
	}
}

// ColorOf returns the colour of a single pigment state.
func ColorOf(c lattice.Cell) color.RGBA {
	switch c {
	case lattice.Xanthophore:
		return XanthophoreColor
	case lattice.Melanophore:
		return MelanophoreColor
	default:
		return EmptyColor
	}
}
