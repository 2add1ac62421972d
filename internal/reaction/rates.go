package reaction

import (
	"errors"
	"fmt"
	"math"

	"difgrow/internal/core"
)

var (
	// ErrNegativeRate reports a rate constant that is negative or not finite.
	ErrNegativeRate = fmt.Errorf("%w: rate constants must be finite and non-negative", core.ErrConfig)
	// ErrZeroTotal reports rate constants that are all zero; normalising them
	// would divide by zero.
	ErrZeroTotal = fmt.Errorf("%w: at least one rate constant must be positive", core.ErrConfig)
)

// RateConstants holds the seven non-negative rates of the reaction model.
type RateConstants struct {
	Bx float64 `toml:"bx"` // birth of xanthophores
	Bm float64 `toml:"bm"` // birth of melanophores
	Dx float64 `toml:"dx"` // death of xanthophores
	Dm float64 `toml:"dm"` // death of melanophores
	Sm float64 `toml:"sm"` // short-range killing of xanthophore by melanophore
	Sx float64 `toml:"sx"` // short-range killing of melanophore by xanthophore
	Lx float64 `toml:"lx"` // long-range activation strength
}

// DefaultRates returns the rates of the reference differential-growth run.
func DefaultRates() RateConstants {
	return RateConstants{Bx: 1, Bm: 0, Dx: 0, Dm: 0, Sm: 1, Sx: 1, Lx: 2.5}
}

// Rate returns the constant driving e.
func (r RateConstants) Rate(e Event) float64 {
	switch e {
	case LongRangeActivation:
		return r.Lx
	case KillMelanophore:
		return r.Sx
	case KillXanthophore:
		return r.Sm
	case BirthXanthophore:
		return r.Bx
	case BirthMelanophore:
		return r.Bm
	case DeathXanthophore:
		return r.Dx
	case DeathMelanophore:
		return r.Dm
	default:
		return 0
	}
}

// Set updates the rate stored under the event key ("lx", "bx", ...).
func (r *RateConstants) Set(key string, v float64) bool {
	switch key {
	case "lx":
		r.Lx = v
	case "sx":
		r.Sx = v
	case "sm":
		r.Sm = v
	case "bx":
		r.Bx = v
	case "bm":
		r.Bm = v
	case "dx":
		r.Dx = v
	case "dm":
		r.Dm = v
	default:
		return false
	}
	return true
}

// Validate reports every invalid rate and whether the rates can be
// normalised at all.
func (r RateConstants) Validate() error {
	var errs []error
	total := 0.0
	for _, e := range Events() {
		v := r.Rate(e)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s=%v", ErrNegativeRate, e, v))
			continue
		}
		total += v
	}
	if len(errs) == 0 && total == 0 {
		errs = append(errs, ErrZeroTotal)
	}
	return errors.Join(errs...)
}
