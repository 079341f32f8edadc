// Package lj implements the cut-and-shifted Lennard-Jones force model in
// reduced units (sigma = epsilon = 1). It is the concrete collaborator
// behind the md.ForceModel contract; the engine core never depends on it
// directly.
package lj

import (
	"math"

	"ljmd/internal/md"
)

// Pairs with squared inverse separation above this are flagged as
// overlapping (r below about 0.752 sigma).
const sr2Overlap = 1.77

type LennardJones struct{}

// Evaluate computes per-particle forces and the potential/virial/Laplacian
// sums for all pairs inside the cutoff. Positions are box-scaled; the
// returned forces are in reduced physical units. Newton's third law halves
// the pair loop.
func (LennardJones) Evaluate(r []md.Vec, cutoff, box float64) ([]md.Vec, md.ForceBundle) {
	n := len(r)
	f := make([]md.Vec, n)
	b := md.Box(box)

	rCutBox := cutoff / box
	rCutBoxSq := rCutBox * rCutBox
	boxSq := box * box

	// pair potential at the cutoff, subtracted for the shifted form
	sr2 := 1.0 / (cutoff * cutoff)
	sr6 := sr2 * sr2 * sr2
	potCut := sr6*sr6 - sr6

	var total md.ForceBundle
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			rij := b.Wrap(r[i].Sub(r[j]))
			rijSq := rij.Dot(rij)
			if rijSq >= rCutBoxSq {
				continue
			}
			rijSq *= boxSq
			sr2 := 1.0 / rijSq
			if sr2 > sr2Overlap {
				total.Overlap = true
			}
			sr6 := sr2 * sr2 * sr2
			sr12 := sr6 * sr6
			cut := sr12 - sr6
			vir := cut + sr12
			total.Cut += cut
			total.Pot += cut - potCut
			total.Vir += vir
			total.Lap += (22.0*sr12 - 5.0*sr6) * sr2
			fij := rij.Scale(box * vir * sr2)
			f[i] = f[i].Add(fij)
			f[j] = f[j].Sub(fij)
		}
	}

	total.Pot *= 4.0
	total.Cut *= 4.0
	total.Vir *= 24.0 / 3.0
	total.Lap *= 24.0 * 2.0
	for i := range f {
		f[i] = f[i].Scale(24.0)
	}
	return f, total
}

// PotentialLRC is the long-range correction to the potential energy per
// particle for the unshifted potential truncated at the cutoff.
func (LennardJones) PotentialLRC(density, cutoff float64) float64 {
	sr3 := 1.0 / (cutoff * cutoff * cutoff)
	return math.Pi * ((8.0/9.0)*sr3*sr3*sr3 - (8.0/3.0)*sr3) * density
}

// PressureLRC is the long-range correction to the pressure.
func (LennardJones) PressureLRC(density, cutoff float64) float64 {
	sr3 := 1.0 / (cutoff * cutoff * cutoff)
	return math.Pi * ((32.0/9.0)*sr3*sr3*sr3 - (16.0/3.0)*sr3) * density * density
}

// Hessian returns the summed Hessian function of the configuration, the
// finite-size correction term of the configurational temperature.
func (LennardJones) Hessian(r []md.Vec, cutoff, box float64) float64 {
	n := len(r)
	b := md.Box(box)

	rCutBox := cutoff / box
	rCutBoxSq := rCutBox * rCutBox
	boxSq := box * box

	var hes float64
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			rij := b.Wrap(r[i].Sub(r[j]))
			rijSq := rij.Dot(rij)
			if rijSq >= rCutBoxSq {
				continue
			}
			rijSq *= boxSq
			rij = rij.Scale(box)
			sr2 := 1.0 / rijSq
			sr6 := sr2 * sr2 * sr2
			sr8 := sr6 * sr2
			sr10 := sr8 * sr2
			v1 := 24.0 * (1.0 - 2.0*sr6) * sr8
			v2 := 96.0 * (7.0*sr6 - 2.0) * sr10
			fij := rij.Scale(24.0 * (2.0*sr6*sr6 - sr6) * sr2)
			hes += v1*fij.Dot(fij) + v2*rij.Dot(fij)*rij.Dot(fij)
		}
	}
	return hes
}
