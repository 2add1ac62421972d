package lattice

import (
	"errors"
	"math"
	"slices"
	"testing"

	"difgrow/internal/core"
)

func TestBasicIsEmpty(t *testing.T) {
	s, err := Basic(4, 6)
	if err != nil {
		t.Fatal(err)
	}
	if s.Rows() != 4 || s.Cols() != 6 {
		t.Fatalf("unexpected shape %dx%d", s.Rows(), s.Cols())
	}
	for i, v := range s.Cells() {
		if Cell(v) != Empty {
			t.Fatalf("cell %d = %v, expected empty", i, Cell(v))
		}
		if s.IridophoreMask()[i] {
			t.Fatalf("cell %d unexpectedly hosts an iridophore", i)
		}
	}
}

func TestIridophoreBandCentered(t *testing.T) {
	s, err := IridophoreBand(10, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 10; r++ {
		want := r == 4 || r == 5
		for c := 0; c < 3; c++ {
			if got := s.Iridophore(r, c); got != want {
				t.Fatalf("row %d col %d iridophore=%v, expected %v", r, c, got, want)
			}
		}
	}
	if pop := s.Census(); pop.Empty != 30 || pop.Iridophore != 6 {
		t.Fatalf("unexpected census %+v", pop)
	}
}

func TestIridophoreBandFullHeight(t *testing.T) {
	s, err := IridophoreBand(3, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range s.IridophoreMask() {
		if !v {
			t.Fatalf("cell %d should be covered by a full-height band", i)
		}
	}
}

func TestIridophoreBandRejectsBadWidth(t *testing.T) {
	for _, bw := range []int{0, -2, 11} {
		_, err := IridophoreBand(10, 10, bw)
		if !errors.Is(err, ErrBandwidth) || !errors.Is(err, core.ErrConfig) {
			t.Fatalf("bandwidth %d: expected configuration error, got %v", bw, err)
		}
	}
}

func TestRandomStartDeterministic(t *testing.T) {
	a, err := RandomStart(20, 30, 0.25, core.NewRNG(11))
	if err != nil {
		t.Fatal(err)
	}
	b, err := RandomStart(20, 30, 0.25, core.NewRNG(11))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Cells(), b.Cells()) || !slices.Equal(a.IridophoreMask(), b.IridophoreMask()) {
		t.Fatal("same seed should produce the same initial state")
	}
	c, err := RandomStart(20, 30, 0.25, core.NewRNG(12))
	if err != nil {
		t.Fatal(err)
	}
	if slices.Equal(a.Cells(), c.Cells()) {
		t.Fatal("different seeds should produce different initial states")
	}
}

func TestRandomStartProportions(t *testing.T) {
	s, err := RandomStart(200, 200, 0.1, core.NewRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	pop := s.Census()
	for _, c := range []Cell{Empty, Xanthophore, Melanophore} {
		if f := pop.Fraction(c); math.Abs(f-1.0/3) > 0.02 {
			t.Fatalf("%v fraction %.3f, expected about 1/3", c, f)
		}
	}
	if f := float64(pop.Iridophore) / float64(pop.Total()); math.Abs(f-0.1) > 0.02 {
		t.Fatalf("iridophore fraction %.3f, expected about 0.1", f)
	}
}

func TestRandomStartIridRatioBounds(t *testing.T) {
	none, err := RandomStart(10, 10, 0, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	if none.Census().Iridophore != 0 {
		t.Fatal("ratio 0 must not place iridophores")
	}
	all, err := RandomStart(10, 10, 1, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	if all.Census().Iridophore != 100 {
		t.Fatal("ratio 1 must place an iridophore on every cell")
	}
	for _, ratio := range []float64{-0.1, 1.5, math.NaN()} {
		if _, err := RandomStart(10, 10, ratio, core.NewRNG(1)); !errors.Is(err, ErrIridRatio) {
			t.Fatalf("ratio %v: expected ErrIridRatio, got %v", ratio, err)
		}
	}
}

func TestPolicyRegistry(t *testing.T) {
	if got := PolicyNames(); !slices.Equal(got, []string{PolicyBand, PolicyBasic, PolicyRandom}) {
		t.Fatalf("unexpected policy names %v", got)
	}
	gen, err := Policy(PolicyBand)
	if err != nil {
		t.Fatal(err)
	}
	s, err := gen(10, 4, InitParams{Bandwidth: 2}, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	if !s.Iridophore(4, 0) || s.Iridophore(3, 0) {
		t.Fatal("band policy should delegate to IridophoreBand")
	}
	if _, err := Policy("stripes"); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	s, err := IridophoreBand(4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	clone := s.Clone()
	clone.Set(0, 0, Melanophore)
	clone.IridophoreMask()[0] = true
	if s.At(0, 0) != Empty || s.Iridophore(0, 0) {
		t.Fatal("mutating a clone must not affect the original")
	}
}
