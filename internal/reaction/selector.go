package reaction

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvariant reports a broken internal invariant of the event selector.
// It indicates a programming error and is never recovered from.
var ErrInvariant = errors.New("internal invariant violated")

// thresholdTolerance bounds how far the accumulated probabilities may drift
// from 1 before the selector refuses them.
const thresholdTolerance = 1e-9

// Weighted pairs an event with its selection probability.
type Weighted struct {
	Event Event
	P     float64
}

// Selector samples an event from an ordered discrete distribution by
// inverse-CDF lookup over cumulative thresholds.
type Selector struct {
	events []Event
	cum    []float64
}

// NewSelector builds cumulative thresholds from ws in the given order. The
// probabilities must be non-negative and sum to 1 within 1e-9.
func NewSelector(ws []Weighted) (*Selector, error) {
	if len(ws) == 0 {
		return nil, fmt.Errorf("%w: selector needs at least one event", ErrInvariant)
	}
	probs := make([]float64, len(ws))
	events := make([]Event, len(ws))
	last := -1
	for i, w := range ws {
		if w.P < 0 || math.IsNaN(w.P) || math.IsInf(w.P, 0) {
			return nil, fmt.Errorf("%w: probability of %s is %v", ErrInvariant, w.Event, w.P)
		}
		probs[i] = w.P
		events[i] = w.Event
		if w.P > 0 {
			last = i
		}
	}
	if last < 0 {
		return nil, fmt.Errorf("%w: all probabilities are zero", ErrInvariant)
	}
	cum := floats.CumSum(make([]float64, len(probs)), probs)
	if d := math.Abs(cum[len(cum)-1] - 1); d > thresholdTolerance {
		return nil, fmt.Errorf("%w: probabilities sum to %v", ErrInvariant, cum[len(cum)-1])
	}
	// Pin the tail to exactly 1 so every p in [0,1) lands in some interval
	// and trailing zero-probability events keep an empty interval.
	for i := range cum {
		if i >= last || cum[i] > 1 {
			cum[i] = 1
		}
	}
	return &Selector{events: events, cum: cum}, nil
}

// Select returns the event whose interval [cum[k-1], cum[k]) contains p.
func (s *Selector) Select(p float64) (Event, error) {
	if p < 0 {
		return 0, fmt.Errorf("%w: sample %v below 0", ErrInvariant, p)
	}
	for i, t := range s.cum {
		if p < t {
			return s.events[i], nil
		}
	}
	return 0, fmt.Errorf("%w: sample %v matched no threshold", ErrInvariant, p)
}

// Thresholds returns a copy of the cumulative thresholds.
func (s *Selector) Thresholds() []float64 {
	return append([]float64(nil), s.cum...)
}

// Events returns the events in selection order.
func (s *Selector) Events() []Event {
	return append([]Event(nil), s.events...)
}
