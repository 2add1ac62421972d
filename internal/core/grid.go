package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	Rows, Cols int
	data       []uint8
}

// NewByteGrid allocates a grid with the given dimensions. Callers are
// expected to validate dimensions; non-positive values yield a 1-wide axis.
func NewByteGrid(rows, cols int) *ByteGrid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &ByteGrid{Rows: rows, Cols: cols, data: make([]uint8, rows*cols)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (row, col).
func (g *ByteGrid) Index(row, col int) int { return row*g.Cols + col }

// At returns the value stored at (row, col).
func (g *ByteGrid) At(row, col int) uint8 { return g.data[row*g.Cols+col] }

// Set stores v at (row, col).
func (g *ByteGrid) Set(row, col int, v uint8) { g.data[row*g.Cols+col] = v }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ByteGrid) Wrap(row, col int) (int, int) {
	row = (row%g.Rows + g.Rows) % g.Rows
	col = (col%g.Cols + g.Cols) % g.Cols
	return row, col
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Clone returns a deep copy of the grid.
func (g *ByteGrid) Clone() *ByteGrid {
	return &ByteGrid{Rows: g.Rows, Cols: g.Cols, data: append([]uint8(nil), g.data...)}
}
