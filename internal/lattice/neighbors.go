package lattice

import (
	"fmt"

	"difgrow/internal/core"
)

// Direction selects one of the four orthogonal neighbours of a cell.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// NumDirections is the size of the von Neumann neighbourhood.
const NumDirections = 4

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// RandomDirection draws a direction uniformly from src.
func RandomDirection(src core.Source) Direction {
	return Direction(src.IntN(NumDirections))
}

// ErrInvalidDimensions reports a grid with a non-positive axis.
var ErrInvalidDimensions = fmt.Errorf("%w: grid dimensions must be positive", core.ErrConfig)

// Neighbors holds precomputed toroidal neighbour indices. up and down store
// row indices, left and right store column indices; each table is row-major
// with one entry per cell.
type Neighbors struct {
	rows, cols int

	up    []int32
	down  []int32
	left  []int32
	right []int32
}

// BuildNeighbors computes the neighbour tables for a rows×cols torus.
func BuildNeighbors(rows, cols int) (*Neighbors, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	total := rows * cols
	n := &Neighbors{
		rows:  rows,
		cols:  cols,
		up:    make([]int32, total),
		down:  make([]int32, total),
		left:  make([]int32, total),
		right: make([]int32, total),
	}
	for r := 0; r < rows; r++ {
		up := int32((r - 1 + rows) % rows)
		down := int32((r + 1) % rows)
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			n.up[idx] = up
			n.down[idx] = down
			n.left[idx] = int32((c - 1 + cols) % cols)
			n.right[idx] = int32((c + 1) % cols)
		}
	}
	return n, nil
}

// Rows returns the number of rows the tables were built for.
func (n *Neighbors) Rows() int { return n.rows }

// Cols returns the number of columns the tables were built for.
func (n *Neighbors) Cols() int { return n.cols }

// Up returns the row index above (row, col).
func (n *Neighbors) Up(row, col int) int { return int(n.up[row*n.cols+col]) }

// Down returns the row index below (row, col).
func (n *Neighbors) Down(row, col int) int { return int(n.down[row*n.cols+col]) }

// Left returns the column index left of (row, col).
func (n *Neighbors) Left(row, col int) int { return int(n.left[row*n.cols+col]) }

// Right returns the column index right of (row, col).
func (n *Neighbors) Right(row, col int) int { return int(n.right[row*n.cols+col]) }

// Of returns the coordinates of the neighbour of (row, col) in direction d.
func (n *Neighbors) Of(d Direction, row, col int) (int, int) {
	idx := row*n.cols + col
	switch d {
	case Up:
		return int(n.up[idx]), col
	case Down:
		return int(n.down[idx]), col
	case Left:
		return row, int(n.left[idx])
	default:
		return row, int(n.right[idx])
	}
}
