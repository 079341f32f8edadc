// Package stats accumulates per-step observables into block averages and
// block averages into run averages. Blocking assumes identical step counts
// per block; the run average over B blocks is then the unweighted arithmetic
// mean of the B block averages.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"ljmd/internal/obs"
)

// Block carries the means of one block, plus variance estimates for the
// MSD-flagged entries (zero elsewhere).
type Block struct {
	Means []float64
	MSD   []float64
}

// BlockAccumulator keeps running sums within the current block and folds
// block results into run-level sums at block boundaries.
type BlockAccumulator struct {
	names []string
	msd   []bool

	blkSum   []float64
	blkSumSq []float64
	runSum   []float64
	runMSD   []float64

	steps   int
	blocks  int
	scratch []float64
}

func NewBlockAccumulator(schema []obs.Observable) *BlockAccumulator {
	n := len(schema)
	a := &BlockAccumulator{
		names:    make([]string, n),
		msd:      make([]bool, n),
		blkSum:   make([]float64, n),
		blkSumSq: make([]float64, n),
		runSum:   make([]float64, n),
		runMSD:   make([]float64, n),
		scratch:  make([]float64, n),
	}
	for i, v := range schema {
		a.names[i] = v.Name
		a.msd[i] = v.MSD
	}
	return a
}

func (a *BlockAccumulator) Names() []string { return a.names }

// MSDFlags reports which schema entries carry mean-squared-deviation
// tracking.
func (a *BlockAccumulator) MSDFlags() []bool { return a.msd }

func (a *BlockAccumulator) BeginBlock() {
	for i := range a.blkSum {
		a.blkSum[i] = 0
		a.blkSumSq[i] = 0
	}
	a.steps = 0
}

// Add folds one step's variable set into the current block sums.
func (a *BlockAccumulator) Add(vars []obs.Observable) error {
	if len(vars) != len(a.names) {
		return fmt.Errorf("variable set has %d entries, schema has %d", len(vars), len(a.names))
	}
	for i, v := range vars {
		a.scratch[i] = v.Value
	}
	floats.Add(a.blkSum, a.scratch)
	for i, v := range vars {
		if a.msd[i] {
			a.blkSumSq[i] += v.Value * v.Value
		}
	}
	a.steps++
	return nil
}

// EndBlock emits the block means, folds them into the run sums, and resets
// the block state. For MSD-flagged entries the emitted value is the
// within-block variance estimate <x^2> - <x>^2.
func (a *BlockAccumulator) EndBlock() Block {
	b := Block{
		Means: make([]float64, len(a.blkSum)),
		MSD:   make([]float64, len(a.blkSum)),
	}
	inv := 1.0 / float64(a.steps)
	copy(b.Means, a.blkSum)
	floats.Scale(inv, b.Means)
	for i := range b.MSD {
		if a.msd[i] {
			b.MSD[i] = a.blkSumSq[i]*inv - b.Means[i]*b.Means[i]
		}
	}

	floats.Add(a.runSum, b.Means)
	floats.Add(a.runMSD, b.MSD)
	a.blocks++
	a.BeginBlock()
	return b
}

// EndRun emits the run averages: block means and block variances averaged
// with equal weight over all completed blocks.
func (a *BlockAccumulator) EndRun() Block {
	b := Block{
		Means: make([]float64, len(a.runSum)),
		MSD:   make([]float64, len(a.runSum)),
	}
	inv := 1.0 / float64(a.blocks)
	copy(b.Means, a.runSum)
	copy(b.MSD, a.runMSD)
	floats.Scale(inv, b.Means)
	floats.Scale(inv, b.MSD)
	return b
}

// Blocks returns the number of completed blocks.
func (a *BlockAccumulator) Blocks() int { return a.blocks }
