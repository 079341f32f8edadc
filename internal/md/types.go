package md

import (
	"errors"
	"math"
)

// ErrOverlap signals a configuration with two particles closer than the
// force model's hard-core threshold.
var ErrOverlap = errors.New("particle overlap")

type Vec [3]float64

func (a Vec) Add(b Vec) Vec { return Vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func (a Vec) Sub(b Vec) Vec { return Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func (a Vec) Scale(s float64) Vec { return Vec{a[0] * s, a[1] * s, a[2] * s} }

func (a Vec) Dot(b Vec) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Box is the edge length of the cubic periodic box.
type Box float64

func (b Box) Volume() float64 { return float64(b) * float64(b) * float64(b) }

// Wrap maps a box-scaled coordinate onto its minimum image, each component
// in [-0.5, 0.5), by subtracting the nearest integer. Exact half values
// round up, so -0.5 stays -0.5 and +0.5 folds to -0.5; the force model uses
// the same convention for minimum-image displacements.
func (b Box) Wrap(v Vec) Vec {
	return Vec{
		v[0] - math.Floor(v[0]+0.5),
		v[1] - math.Floor(v[1]+0.5),
		v[2] - math.Floor(v[2]+0.5),
	}
}

// ForceBundle is the scalar output of one force evaluation. Pot is the
// cut-and-shifted potential energy, Cut the cut but unshifted one. Lap is
// the sum of Laplacian contributions, used by the configurational
// temperature estimator.
type ForceBundle struct {
	Pot     float64
	Cut     float64
	Vir     float64
	Lap     float64
	Overlap bool
}

// ForceModel is the pair-interaction collaborator. Evaluate must implement
// the minimum-image convention consistently with Box.Wrap. The LRC terms and
// the Hessian sum are consumed only by the property estimator.
type ForceModel interface {
	Evaluate(r []Vec, cutoff, box float64) ([]Vec, ForceBundle)
	PotentialLRC(density, cutoff float64) float64
	PressureLRC(density, cutoff float64) float64
	Hessian(r []Vec, cutoff, box float64) float64
}

// State is the particle ensemble: positions in box-scaled units, velocities
// and forces in physical units. It is owned by the run controller and
// mutated in place by the integrator.
type State struct {
	Box Box
	R   []Vec
	V   []Vec
	F   []Vec
}

func NewState(box float64, r, v []Vec) *State {
	return &State{
		Box: Box(box),
		R:   r,
		V:   v,
		F:   make([]Vec, len(r)),
	}
}

func (s *State) N() int { return len(s.R) }

// Kinetic returns the total kinetic energy 0.5*sum(v^2) (unit mass).
func (s *State) Kinetic() float64 {
	var kin float64
	for _, v := range s.V {
		kin += v.Dot(v)
	}
	return 0.5 * kin
}

// Momentum returns the total momentum, componentwise.
func (s *State) Momentum() Vec {
	var p Vec
	for _, v := range s.V {
		p = p.Add(v)
	}
	return p
}

// ZeroMomentum subtracts the mean velocity from every particle so the total
// centre-of-mass momentum is exactly zero.
func (s *State) ZeroMomentum() {
	if s.N() == 0 {
		return
	}
	mean := s.Momentum().Scale(1.0 / float64(s.N()))
	for i := range s.V {
		s.V[i] = s.V[i].Sub(mean)
	}
}

// ForceSq returns the total squared force sum(f.f).
func (s *State) ForceSq() float64 {
	var fsq float64
	for _, f := range s.F {
		fsq += f.Dot(f)
	}
	return fsq
}
