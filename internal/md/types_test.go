package md

import (
	"math"
	"testing"
)

func TestWrapRangeAndIdempotence(t *testing.T) {
	b := Box(4.0)
	cases := []Vec{
		{0, 0, 0},
		{0.49, -0.49, 0.25},
		{0.5, -0.5, 1.0},
		{1.25, -1.25, 3.7},
		{-0.5000001, 0.5000001, 100.3},
	}
	for _, v := range cases {
		w := b.Wrap(v)
		for k := 0; k < 3; k++ {
			if w[k] < -0.5 || w[k] >= 0.5 {
				t.Errorf("Wrap(%v)[%d] = %v, outside [-0.5, 0.5)", v, k, w[k])
			}
		}
		ww := b.Wrap(w)
		for k := 0; k < 3; k++ {
			if ww[k] != w[k] {
				t.Errorf("Wrap not idempotent for %v: %v then %v", v, w, ww)
			}
		}
	}
}

// Exact half-integer components are the boundary of the image cell: +0.5
// must fold to -0.5 and -0.5 must stay put, or the wrapped range leaks.
func TestWrapHalfIntegerBoundary(t *testing.T) {
	b := Box(1.0)
	cases := []struct {
		in, want Vec
	}{
		{Vec{0.5, -0.5, 1.5}, Vec{-0.5, -0.5, -0.5}},
		{Vec{-1.5, 2.5, -2.5}, Vec{-0.5, -0.5, -0.5}},
	}
	for _, c := range cases {
		w := b.Wrap(c.in)
		for k := 0; k < 3; k++ {
			if w[k] != c.want[k] {
				t.Errorf("Wrap(%v) = %v, want %v", c.in, w, c.want)
			}
		}
		if ww := b.Wrap(w); ww != w {
			t.Errorf("Wrap not idempotent at the half boundary: %v then %v", w, ww)
		}
	}
}

func TestZeroMomentum(t *testing.T) {
	s := NewState(4.0,
		[]Vec{{0, 0, 0}, {0.1, 0, 0}, {0.2, 0, 0}},
		[]Vec{{1, 2, 3}, {-0.5, 1, 0}, {0.25, 0, -2}},
	)
	s.ZeroMomentum()
	p := s.Momentum()
	for k := 0; k < 3; k++ {
		if math.Abs(p[k]) > 1e-14 {
			t.Errorf("momentum component %d = %v after COM correction", k, p[k])
		}
	}
}

func TestKinetic(t *testing.T) {
	s := NewState(4.0,
		[]Vec{{0, 0, 0}, {0.1, 0, 0}},
		[]Vec{{1, 0, 0}, {0, 2, 0}},
	)
	if got, want := s.Kinetic(), 0.5*(1.0+4.0); got != want {
		t.Errorf("Kinetic = %v, want %v", got, want)
	}
}
