package reaction

import "gonum.org/v1/gonum/floats"

// Probabilities holds the normalised event probabilities in dispatch order.
type Probabilities [NumEvents]float64

// Of returns the probability of e.
func (p Probabilities) Of(e Event) float64 { return p[e] }

// Sum returns the total probability mass.
func (p Probabilities) Sum() float64 { return floats.Sum(p[:]) }

// Model is the immutable reaction model derived from a set of rate constants.
type Model struct {
	rates RateConstants
	total float64
	probs Probabilities
	sel   *Selector
}

// NewModel validates rates and derives the event probabilities and selector.
func NewModel(rates RateConstants) (*Model, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	events := Events()
	raw := make([]float64, NumEvents)
	for i, e := range events {
		raw[i] = rates.Rate(e)
	}
	total := floats.Sum(raw)
	m := &Model{rates: rates, total: total}
	weights := make([]Weighted, NumEvents)
	for i, e := range events {
		m.probs[i] = raw[i] / total
		weights[i] = Weighted{Event: e, P: m.probs[i]}
	}
	sel, err := NewSelector(weights)
	if err != nil {
		return nil, err
	}
	m.sel = sel
	return m, nil
}

// Rates returns the rate constants the model was built from.
func (m *Model) Rates() RateConstants { return m.rates }

// Total returns the sum of all rate constants.
func (m *Model) Total() float64 { return m.total }

// Probabilities returns the normalised event probabilities.
func (m *Model) Probabilities() Probabilities { return m.probs }

// Selector returns the event selector backed by the model's probabilities.
func (m *Model) Selector() *Selector { return m.sel }
