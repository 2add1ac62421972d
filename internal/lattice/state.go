package lattice

import (
	"fmt"

	"difgrow/internal/core"
)

// State holds the mutable pigment grid and the iridophore mask fixed at
// initialisation. Only the Monte Carlo engine mutates the grid during a run;
// nothing mutates the mask after construction.
type State struct {
	grid *core.ByteGrid
	irid []bool
}

// NewState allocates an all-empty state without iridophores.
func NewState(rows, cols int) (*State, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &State{
		grid: core.NewByteGrid(rows, cols),
		irid: make([]bool, rows*cols),
	}, nil
}

// Rows returns the number of lattice rows.
func (s *State) Rows() int { return s.grid.Rows }

// Cols returns the number of lattice columns.
func (s *State) Cols() int { return s.grid.Cols }

// Grid exposes the underlying byte grid.
func (s *State) Grid() *core.ByteGrid { return s.grid }

// Cells exposes the row-major cell values.
func (s *State) Cells() []uint8 { return s.grid.Cells() }

// At returns the pigment state at (row, col).
func (s *State) At(row, col int) Cell { return Cell(s.grid.At(row, col)) }

// Set stores c at (row, col).
func (s *State) Set(row, col int, c Cell) { s.grid.Set(row, col, uint8(c)) }

// Iridophore reports whether (row, col) permanently hosts an iridophore.
func (s *State) Iridophore(row, col int) bool { return s.irid[row*s.grid.Cols+col] }

// IridophoreMask exposes the row-major mask. Callers must treat it as
// read-only.
func (s *State) IridophoreMask() []bool { return s.irid }

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	return &State{grid: s.grid.Clone(), irid: append([]bool(nil), s.irid...)}
}

// Population counts cells per pigment state plus iridophore sites.
type Population struct {
	Empty       int
	Xanthophore int
	Melanophore int
	Iridophore  int
}

// Total returns the number of lattice sites counted.
func (p Population) Total() int { return p.Empty + p.Xanthophore + p.Melanophore }

// Fraction returns the share of sites holding c.
func (p Population) Fraction(c Cell) float64 {
	total := p.Total()
	if total == 0 {
		return 0
	}
	switch c {
	case Empty:
		return float64(p.Empty) / float64(total)
	case Xanthophore:
		return float64(p.Xanthophore) / float64(total)
	case Melanophore:
		return float64(p.Melanophore) / float64(total)
	default:
		return 0
	}
}

// Census counts the current population.
func (s *State) Census() Population {
	var p Population
	for i, v := range s.grid.Cells() {
		switch Cell(v) {
		case Xanthophore:
			p.Xanthophore++
		case Melanophore:
			p.Melanophore++
		default:
			p.Empty++
		}
		if s.irid[i] {
			p.Iridophore++
		}
	}
	return p
}
