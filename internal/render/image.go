package render

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"

	"difgrow/internal/lattice"
)

// Options tunes how a lattice state is turned into an image.
type Options struct {
	// Scale is the number of pixels per cell along each axis; values below 1
	// are treated as 1.
	Scale int
	// Iridophores blends IridophoreTint over masked cells with the given
	// weight in (0, 1]. Zero disables the overlay.
	Iridophores float64
}

// Image renders the state row by row, one cell per pixel before scaling:
// rows map to y and columns to x.
func Image(s *lattice.State, opt Options) *image.RGBA {
	base := image.NewRGBA(image.Rect(0, 0, s.Cols(), s.Rows()))
	fillPaletteRGBA(base.Pix, s.Cells(), Palette())
	if opt.Iridophores > 0 {
		tintRGBA(base.Pix, s.IridophoreMask(), IridophoreTint, opt.Iridophores)
	}
	scale := opt.Scale
	if scale <= 1 {
		return base
	}
	dst := image.NewRGBA(image.Rect(0, 0, s.Cols()*scale, s.Rows()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteJPEG encodes img as JPEG with the given quality.
func WriteJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
