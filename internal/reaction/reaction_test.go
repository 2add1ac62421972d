package reaction

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"difgrow/internal/core"
)

func TestEventOrder(t *testing.T) {
	got := Events()
	want := [NumEvents]Event{
		LongRangeActivation,
		KillMelanophore,
		KillXanthophore,
		BirthXanthophore,
		BirthMelanophore,
		DeathXanthophore,
		DeathMelanophore,
	}
	if got != want {
		t.Fatalf("unexpected event order %v", got)
	}
	keys := make([]string, 0, NumEvents)
	for _, e := range got {
		keys = append(keys, e.String())
	}
	if !slices.Equal(keys, []string{"lx", "sx", "sm", "bx", "bm", "dx", "dm"}) {
		t.Fatalf("unexpected event keys %v", keys)
	}
}

func TestProbabilitiesNormalized(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 0))
	cases := []RateConstants{
		DefaultRates(),
		{Bx: 1},
		{Lx: 1e-12, Dm: 3},
		{Bx: 1e9, Bm: 1e-9, Dx: 7, Dm: 0.1, Sm: 0.3, Sx: 2, Lx: 42},
	}
	for i := 0; i < 200; i++ {
		cases = append(cases, RateConstants{
			Bx: rng.Float64() * 10, Bm: rng.Float64(), Dx: rng.Float64(), Dm: rng.Float64(),
			Sm: rng.Float64() * 3, Sx: rng.Float64() * 3, Lx: rng.Float64() * 5,
		})
	}
	for _, rates := range cases {
		m, err := NewModel(rates)
		if err != nil {
			t.Fatalf("%+v: unexpected error %v", rates, err)
		}
		if sum := m.Probabilities().Sum(); math.Abs(sum-1) > 1e-9 {
			t.Fatalf("%+v: probabilities sum to %v", rates, sum)
		}
		for _, e := range Events() {
			want := rates.Rate(e) / m.Total()
			if got := m.Probabilities().Of(e); got != want {
				t.Fatalf("%+v: P(%s)=%v, expected %v", rates, e, got, want)
			}
		}
	}
}

func TestDefaultRateProbabilities(t *testing.T) {
	m, err := NewModel(DefaultRates())
	if err != nil {
		t.Fatal(err)
	}
	if m.Total() != 5.5 {
		t.Fatalf("total %v, expected 5.5", m.Total())
	}
	if got := m.Probabilities().Of(LongRangeActivation); math.Abs(got-2.5/5.5) > 1e-12 {
		t.Fatalf("P(lx)=%v", got)
	}
}

func TestNewModelRejectsInvalidRates(t *testing.T) {
	cases := []struct {
		name  string
		rates RateConstants
		want  error
	}{
		{"all zero", RateConstants{}, ErrZeroTotal},
		{"negative", RateConstants{Bx: 1, Dm: -1}, ErrNegativeRate},
		{"nan", RateConstants{Bx: 1, Lx: math.NaN()}, ErrNegativeRate},
		{"inf", RateConstants{Sx: math.Inf(1)}, ErrNegativeRate},
	}
	for _, tc := range cases {
		_, err := NewModel(tc.rates)
		if !errors.Is(err, tc.want) || !errors.Is(err, core.ErrConfig) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestRateConstantsSet(t *testing.T) {
	var r RateConstants
	for i, e := range Events() {
		if !r.Set(e.String(), float64(i+1)) {
			t.Fatalf("Set(%q) rejected", e)
		}
	}
	for i, e := range Events() {
		if r.Rate(e) != float64(i+1) {
			t.Fatalf("rate of %s = %v, expected %d", e, r.Rate(e), i+1)
		}
	}
	if r.Set("zz", 1) {
		t.Fatal("unknown key should be rejected")
	}
}

func TestSelectorBoundaries(t *testing.T) {
	sel, err := NewSelector([]Weighted{
		{Event: LongRangeActivation, P: 0.25},
		{Event: KillMelanophore, P: 0},
		{Event: KillXanthophore, P: 0.25},
		{Event: BirthXanthophore, P: 0.5},
		{Event: DeathMelanophore, P: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		p    float64
		want Event
	}{
		{0, LongRangeActivation},
		{0.2499999, LongRangeActivation},
		{0.25, KillXanthophore},
		{0.4999999, KillXanthophore},
		{0.5, BirthXanthophore},
		{math.Nextafter(1, 0), BirthXanthophore},
	}
	for _, tc := range cases {
		got, err := sel.Select(tc.p)
		if err != nil {
			t.Fatalf("p=%v: unexpected error %v", tc.p, err)
		}
		if got != tc.want {
			t.Fatalf("p=%v selected %s, expected %s", tc.p, got, tc.want)
		}
	}
	if th := sel.Thresholds(); th[len(th)-1] != 1 {
		t.Fatalf("last threshold %v, expected 1", th[len(th)-1])
	}
}

func TestSelectorNeverPicksZeroWidthTail(t *testing.T) {
	// 0.1 * 10 accumulates to slightly less than 1 in floating point.
	ws := make([]Weighted, 0, 12)
	for i := 0; i < 10; i++ {
		ws = append(ws, Weighted{Event: BirthXanthophore, P: 0.1})
	}
	ws = append(ws, Weighted{Event: DeathMelanophore, P: 0}, Weighted{Event: DeathXanthophore, P: 0})
	sel, err := NewSelector(ws)
	if err != nil {
		t.Fatal(err)
	}
	got, err := sel.Select(math.Nextafter(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got != BirthXanthophore {
		t.Fatalf("selected zero-probability event %s", got)
	}
}

func TestSelectorInvariantViolations(t *testing.T) {
	if _, err := NewSelector(nil); !errors.Is(err, ErrInvariant) {
		t.Fatalf("empty selector: expected ErrInvariant, got %v", err)
	}
	if _, err := NewSelector([]Weighted{{Event: BirthXanthophore, P: 0.6}}); !errors.Is(err, ErrInvariant) {
		t.Fatalf("unnormalised selector: expected ErrInvariant, got %v", err)
	}
	if _, err := NewSelector([]Weighted{{Event: BirthXanthophore, P: 1.5}, {Event: DeathXanthophore, P: -0.5}}); !errors.Is(err, ErrInvariant) {
		t.Fatalf("negative weight: expected ErrInvariant, got %v", err)
	}
	sel, err := NewSelector([]Weighted{{Event: BirthXanthophore, P: 1}})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []float64{-0.1, 1, 2, math.NaN()} {
		if _, err := sel.Select(p); !errors.Is(err, ErrInvariant) {
			t.Fatalf("p=%v: expected ErrInvariant, got %v", p, err)
		}
	}
}

func TestSelectorFrequencies(t *testing.T) {
	m, err := NewModel(DefaultRates())
	if err != nil {
		t.Fatal(err)
	}
	rng := core.NewRNG(99)
	var counts [NumEvents]int
	const draws = 200000
	for i := 0; i < draws; i++ {
		e, err := m.Selector().Select(rng.Float64())
		if err != nil {
			t.Fatal(err)
		}
		counts[e]++
	}
	for _, e := range Events() {
		got := float64(counts[e]) / draws
		if want := m.Probabilities().Of(e); math.Abs(got-want) > 0.01 {
			t.Fatalf("%s frequency %.4f, expected %.4f", e, got, want)
		}
	}
}
