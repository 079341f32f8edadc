// Package lattice generates initial configurations: particles on a
// face-centred cubic lattice with Maxwell-Boltzmann velocities.
package lattice

import (
	"math"
	"math/rand"

	"ljmd/internal/md"
)

// fcc basis vectors within one unit cell, in cell-edge units
var basis = [4]md.Vec{
	{0.25, 0.25, 0.25},
	{0.75, 0.75, 0.25},
	{0.75, 0.25, 0.75},
	{0.25, 0.75, 0.75},
}

// FCC builds n = 4*cells^3 particles at the given number density. Positions
// are returned in physical units inside [0, box); velocities are Gaussian at
// the requested temperature with the centre-of-mass velocity zeroed.
func FCC(cells int, density, temperature float64, seed int64) (box float64, r, v []md.Vec) {
	n := 4 * cells * cells * cells
	box = math.Cbrt(float64(n) / density)
	cell := box / float64(cells)

	r = make([]md.Vec, 0, n)
	for ix := 0; ix < cells; ix++ {
		for iy := 0; iy < cells; iy++ {
			for iz := 0; iz < cells; iz++ {
				for _, b := range basis {
					r = append(r, md.Vec{
						(float64(ix) + b[0]) * cell,
						(float64(iy) + b[1]) * cell,
						(float64(iz) + b[2]) * cell,
					})
				}
			}
		}
	}

	rng := rand.New(rand.NewSource(seed))
	sigma := math.Sqrt(temperature)
	v = make([]md.Vec, n)
	for i := range v {
		v[i] = md.Vec{
			rng.NormFloat64() * sigma,
			rng.NormFloat64() * sigma,
			rng.NormFloat64() * sigma,
		}
	}

	var mean md.Vec
	for _, vi := range v {
		mean = mean.Add(vi)
	}
	mean = mean.Scale(1.0 / float64(n))
	for i := range v {
		v[i] = v[i].Sub(mean)
	}
	return box, r, v
}
