package engine

import (
	"errors"
	"fmt"
	"math"

	"difgrow/internal/core"
	"difgrow/internal/lattice"
	"difgrow/internal/reaction"
)

var (
	// ErrMismatch reports a neighbour table built for a different lattice.
	ErrMismatch = fmt.Errorf("%w: neighbour table does not match lattice dimensions", core.ErrConfig)
	// ErrDistance reports a non-positive or non-finite activation distance.
	ErrDistance = fmt.Errorf("%w: activation distance must be positive", core.ErrConfig)
	// ErrBudget reports a non-positive cycle or trial count.
	ErrBudget = fmt.Errorf("%w: cycle and trial counts must be positive", core.ErrConfig)
)

// Trial records the decisions of one stochastic update attempt. Replaying a
// Trial with Apply reproduces its effect without consuming randomness.
type Trial struct {
	Row, Col int
	P        float64
	Event    reaction.Event

	// Angle is drawn only for long-range activation attempts whose
	// precondition held; Direction only for short-range kill attempts.
	Angle     float64
	Direction lattice.Direction

	Changed bool
}

// Stats counts how often each event was selected and how often it changed
// the lattice.
type Stats struct {
	Trials   int64
	Selected [reaction.NumEvents]int64
	Changed  [reaction.NumEvents]int64
}

// CycleFunc is invoked after every completed cycle. Returning an error aborts
// the run.
type CycleFunc func(cycle int, e *Engine) error

// Engine applies Monte Carlo trials to a lattice state in place.
type Engine struct {
	state *lattice.State
	grid  *core.ByteGrid
	cells []uint8
	irid  []bool
	nbr   *lattice.Neighbors
	sel   *reaction.Selector
	h     float64

	rows, cols int

	src    core.Source
	record func(Trial)
	stats  Stats
}

// New wires an engine over state. The neighbour table must have been built
// for the same dimensions and h must be positive.
func New(state *lattice.State, nbr *lattice.Neighbors, model *reaction.Model, h float64, src core.Source) (*Engine, error) {
	if state == nil || nbr == nil || model == nil || src == nil {
		return nil, fmt.Errorf("%w: engine requires state, neighbours, model and random source", core.ErrConfig)
	}
	if nbr.Rows() != state.Rows() || nbr.Cols() != state.Cols() {
		return nil, fmt.Errorf("%w: table %dx%d, lattice %dx%d", ErrMismatch, nbr.Rows(), nbr.Cols(), state.Rows(), state.Cols())
	}
	if !(h > 0) || math.IsInf(h, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrDistance, h)
	}
	return &Engine{
		state: state,
		grid:  state.Grid(),
		cells: state.Cells(),
		irid:  state.IridophoreMask(),
		nbr:   nbr,
		sel:   model.Selector(),
		h:     h,
		rows:  state.Rows(),
		cols:  state.Cols(),
		src:   src,
	}, nil
}

// State returns the lattice the engine mutates.
func (e *Engine) State() *lattice.State { return e.state }

// Stats returns a copy of the event counters.
func (e *Engine) Stats() Stats { return e.stats }

// SetRecorder installs fn to receive every trial performed by Step. Pass nil
// to stop recording.
func (e *Engine) SetRecorder(fn func(Trial)) { e.record = fn }

// Step performs one trial: a uniformly random cell, a uniform sample that
// selects the event, then the event's conditional effect.
func (e *Engine) Step() (Trial, error) {
	t := Trial{
		Row: e.src.IntN(e.rows),
		Col: e.src.IntN(e.cols),
		P:   e.src.Float64(),
	}
	ev, err := e.sel.Select(t.P)
	if err != nil {
		return t, err
	}
	t.Event = ev
	e.resolve(&t, true)
	if e.record != nil {
		e.record(t)
	}
	return t, nil
}

// Apply replays the decisions recorded in t against the current lattice and
// reports whether the cell changed. It draws no randomness.
func (e *Engine) Apply(t Trial) bool {
	if t.Row < 0 || t.Row >= e.rows || t.Col < 0 || t.Col >= e.cols || t.Event >= reaction.NumEvents {
		return false
	}
	e.resolve(&t, false)
	return t.Changed
}

// RunCycle performs perCycle trials.
func (e *Engine) RunCycle(perCycle int) error {
	for n := 0; n < perCycle; n++ {
		if _, err := e.Step(); err != nil {
			return fmt.Errorf("trial %d: %w", n, err)
		}
	}
	return nil
}

// Run performs numCycles cycles of perCycle trials each, calling every
// observer after each cycle. There is no early termination.
func (e *Engine) Run(numCycles, perCycle int, observers ...CycleFunc) error {
	if numCycles <= 0 || perCycle <= 0 {
		return fmt.Errorf("%w: cycles=%d per_cycle=%d", ErrBudget, numCycles, perCycle)
	}
	for cycle := 1; cycle <= numCycles; cycle++ {
		if err := e.RunCycle(perCycle); err != nil {
			return fmt.Errorf("cycle %d: %w", cycle, err)
		}
		for _, obs := range observers {
			if obs == nil {
				continue
			}
			if err := obs(cycle, e); err != nil {
				return fmt.Errorf("cycle %d observer: %w", cycle, err)
			}
		}
	}
	return nil
}

// resolve applies t.Event to the cell at (t.Row, t.Col). When draw is set the
// event's extra randomness (angle or direction) is drawn from the source and
// written back into t; otherwise the recorded values are used.
func (e *Engine) resolve(t *Trial, draw bool) {
	idx := t.Row*e.cols + t.Col
	cell := lattice.Cell(e.cells[idx])
	next := cell

	switch t.Event {
	case reaction.LongRangeActivation:
		if cell != lattice.Empty || e.irid[idx] {
			break
		}
		if draw {
			t.Angle = e.src.Float64() * 2 * math.Pi
		}
		if e.activates(t.Row, t.Col, t.Angle) {
			next = lattice.Melanophore
		}
	case reaction.KillMelanophore:
		if cell != lattice.Melanophore {
			break
		}
		if draw {
			t.Direction = lattice.RandomDirection(e.src)
		}
		if e.neighbor(t.Row, t.Col, t.Direction) == lattice.Xanthophore {
			next = lattice.Empty
		}
	case reaction.KillXanthophore:
		if cell != lattice.Xanthophore {
			break
		}
		if draw {
			t.Direction = lattice.RandomDirection(e.src)
		}
		if e.neighbor(t.Row, t.Col, t.Direction) == lattice.Melanophore {
			next = lattice.Empty
		}
	case reaction.BirthXanthophore:
		if cell == lattice.Empty {
			next = lattice.Xanthophore
		}
	case reaction.BirthMelanophore:
		if cell == lattice.Empty {
			next = lattice.Melanophore
		}
	case reaction.DeathXanthophore:
		if cell == lattice.Xanthophore {
			next = lattice.Empty
		}
	case reaction.DeathMelanophore:
		if cell == lattice.Melanophore {
			next = lattice.Empty
		}
	}

	t.Changed = next != cell
	if t.Changed {
		e.cells[idx] = uint8(next)
	}
	if draw {
		e.stats.Trials++
		e.stats.Selected[t.Event]++
		if t.Changed {
			e.stats.Changed[t.Event]++
		}
	}
}

// activates reports whether the cell at distance h along angle from
// (row, col) holds a melanophore. Offsets round half to even.
func (e *Engine) activates(row, col int, angle float64) bool {
	sin, cos := math.Sincos(angle)
	dr := int(math.RoundToEven(cos * e.h))
	dc := int(math.RoundToEven(sin * e.h))
	tr, tc := e.grid.Wrap(row+dr, col+dc)
	return lattice.Cell(e.cells[tr*e.cols+tc]) == lattice.Melanophore
}

func (e *Engine) neighbor(row, col int, d lattice.Direction) lattice.Cell {
	r, c := e.nbr.Of(d, row, col)
	return lattice.Cell(e.cells[r*e.cols+c])
}

// IsInvariant reports whether err stems from a broken internal invariant
// rather than from configuration.
func IsInvariant(err error) bool { return errors.Is(err, reaction.ErrInvariant) }
