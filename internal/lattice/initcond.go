package lattice

import (
	"fmt"
	"sort"

	"difgrow/internal/core"
)

var (
	// ErrBandwidth reports an iridophore band that does not fit the grid.
	ErrBandwidth = fmt.Errorf("%w: bandwidth must satisfy 0 < bandwidth <= rows", core.ErrConfig)
	// ErrIridRatio reports an iridophore probability outside [0, 1].
	ErrIridRatio = fmt.Errorf("%w: iridophore ratio must be within [0, 1]", core.ErrConfig)
	// ErrUnknownPolicy reports an unregistered initial-condition policy.
	ErrUnknownPolicy = fmt.Errorf("%w: unknown initial-condition policy", core.ErrConfig)
)

// Basic returns an all-empty state without iridophores.
func Basic(rows, cols int) (*State, error) {
	return NewState(rows, cols)
}

// IridophoreBand returns an empty state whose mask covers bandwidth
// contiguous rows starting at floor((rows-bandwidth)/2).
func IridophoreBand(rows, cols, bandwidth int) (*State, error) {
	s, err := NewState(rows, cols)
	if err != nil {
		return nil, err
	}
	if bandwidth <= 0 || bandwidth > rows {
		return nil, fmt.Errorf("%w: got %d for %d rows", ErrBandwidth, bandwidth, rows)
	}
	shift := (rows - bandwidth) / 2
	for b := 0; b < bandwidth; b++ {
		r := (b + shift) % rows
		for c := 0; c < cols; c++ {
			s.irid[r*cols+c] = true
		}
	}
	return s, nil
}

// RandomStart fills every cell from one uniform draw: below 1/3 becomes a
// xanthophore, above 2/3 a melanophore, otherwise empty. Each cell then hosts
// an iridophore with probability iridRatio, using a second pass of draws.
func RandomStart(rows, cols int, iridRatio float64, src core.Source) (*State, error) {
	s, err := NewState(rows, cols)
	if err != nil {
		return nil, err
	}
	if !(iridRatio >= 0 && iridRatio <= 1) {
		return nil, fmt.Errorf("%w: got %v", ErrIridRatio, iridRatio)
	}
	cells := s.grid.Cells()
	for i := range cells {
		u := src.Float64()
		switch {
		case u < 1.0/3:
			cells[i] = uint8(Xanthophore)
		case u > 2.0/3:
			cells[i] = uint8(Melanophore)
		default:
			cells[i] = uint8(Empty)
		}
	}
	for i := range s.irid {
		s.irid[i] = src.Float64() < iridRatio
	}
	return s, nil
}

// InitParams carries the policy-specific knobs of the generators.
type InitParams struct {
	Bandwidth int
	IridRatio float64
}

// Generator builds an initial state for a rows×cols lattice.
type Generator func(rows, cols int, p InitParams, src core.Source) (*State, error)

// Names of the built-in initial-condition policies.
const (
	PolicyBasic  = "basic"
	PolicyBand   = "band"
	PolicyRandom = "random"
)

var policies = map[string]Generator{
	PolicyBasic: func(rows, cols int, _ InitParams, _ core.Source) (*State, error) {
		return Basic(rows, cols)
	},
	PolicyBand: func(rows, cols int, p InitParams, _ core.Source) (*State, error) {
		return IridophoreBand(rows, cols, p.Bandwidth)
	},
	PolicyRandom: func(rows, cols int, p InitParams, src core.Source) (*State, error) {
		return RandomStart(rows, cols, p.IridRatio, src)
	},
}

// Policy returns the generator registered under name.
func Policy(name string) (Generator, error) {
	g, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownPolicy, name, PolicyNames())
	}
	return g, nil
}

// PolicyNames lists the registered policies in sorted order.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
