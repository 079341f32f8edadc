// Package obs computes the per-step thermodynamic observables of the NVE
// run from the instantaneous particle state and the force bundle.
package obs

import (
	"math"

	"ljmd/internal/md"
)

// Observable is a named scalar. MSD marks entries whose mean-squared
// deviation is also accumulated, for fluctuation-derived quantities such as
// the heat capacity.
type Observable struct {
	Name  string
	Value float64
	MSD   bool
}

// Schema returns the fixed, ordered variable set with zero values. The
// order matters for reporting; the two MSD-flagged entries come last and are
// excluded from display.
func Schema() []Observable {
	return []Observable{
		{Name: "E/N:cut&shifted"},
		{Name: "E/N:full"},
		{Name: "P:cut&shifted"},
		{Name: "P:full"},
		{Name: "T:kinetic"},
		{Name: "T:config"},
		{Name: "PE/sqrt(N):MSD", MSD: true},
		{Name: "E:MSD", MSD: true},
	}
}

// Estimator derives the observable set from state and force output. It is a
// pure computation; reporting is the caller's concern.
type Estimator struct {
	force  md.ForceModel
	cutoff float64
}

func NewEstimator(force md.ForceModel, cutoff float64) *Estimator {
	return &Estimator{force: force, cutoff: cutoff}
}

// Calculate fills the schema for the current configuration. The kinetic
// temperature removes exactly three degrees of freedom for the fixed total
// momentum. The configurational temperature reproduces the source formula
// without a guard for small total squared force.
func (e *Estimator) Calculate(s *md.State, total md.ForceBundle) []Observable {
	n := float64(s.N())
	box := float64(s.Box)
	vol := s.Box.Volume()
	rho := n / vol

	kin := s.Kinetic()
	tKin := 2.0 * kin / (3.0*n - 3.0)

	fsq := s.ForceSq()
	hes := e.force.Hessian(s.R, e.cutoff, box)
	tCfg := fsq / (total.Lap - 2.0*hes/fsq)

	vars := Schema()
	vars[0].Value = (kin + total.Pot) / n
	vars[1].Value = e.force.PotentialLRC(rho, e.cutoff) + (kin+total.Cut)/n
	vars[2].Value = rho*tKin + total.Vir/vol
	vars[3].Value = e.force.PressureLRC(rho, e.cutoff) + rho*tKin + total.Vir/vol
	vars[4].Value = tKin
	vars[5].Value = tCfg
	vars[6].Value = total.Pot / math.Sqrt(n)
	vars[7].Value = kin + total.Pot
	return vars
}
