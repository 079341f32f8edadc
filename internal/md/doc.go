// Package md holds the core types of the NVE molecular dynamics engine:
// particle state, the cubic periodic box, the force-model contract, and the
// velocity-Verlet integrator.
//
// All quantities are in Lennard-Jones reduced units (sigma = epsilon = 1)
// with unit particle mass. Positions are kept in box-scaled units, each
// component in [-0.5, 0.5) once wrapped; velocities and forces are in
// physical units.
//
// The integrator splits the velocity update into two half-kicks around one
// drift per step, so it only ever needs the force of the current
// configuration:
//
//	vv := md.NewVelocityVerlet(force, dt, rCut)
//	if _, err := vv.Init(state); err != nil { ... } // initial forces
//	total, err := vv.Step(state)
//
// A step fails with [ErrOverlap] when the force model reports two particles
// inside its hard-core threshold.
package md
