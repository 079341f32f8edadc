// Package run orchestrates the block and step loops of an NVE molecular
// dynamics run: it owns the particle state, drives the integrator, feeds the
// property estimator into the block accumulator, and triggers checkpoints
// and reports at block boundaries.
package run

import (
	"context"
	"errors"
	"fmt"

	"ljmd/internal/config"
	"ljmd/internal/md"
	"ljmd/internal/obs"
	"ljmd/internal/stats"
)

// Phases an overlap can be detected in.
const (
	PhaseInitial = "initial"
	PhaseMidRun  = "mid-run"
	PhaseFinal   = "final"
)

// OverlapError is fatal: two particles fell inside the force model's
// hard-core threshold and the configuration is unphysical.
type OverlapError struct {
	Phase string
	Block int
	Step  int
}

func (e *OverlapError) Error() string {
	if e.Phase == PhaseMidRun {
		return fmt.Sprintf("particle overlap at block %d step %d", e.Block, e.Step)
	}
	return fmt.Sprintf("particle overlap in %s configuration", e.Phase)
}

func (e *OverlapError) Unwrap() error { return md.ErrOverlap }

// Info is the run header handed to the reporter before stepping starts.
type Info struct {
	N       int
	Box     float64
	Density float64
	Params  *config.Params
	Names   []string
	MSD     []bool
}

// Reporter receives console-facing events. Computation never depends on it;
// a NopReporter satisfies it for silent runs.
type Reporter interface {
	Start(info Info)
	Instant(label string, vars []obs.Observable)
	Block(index int, b stats.Block)
	Run(avg stats.Block)
}

type NopReporter struct{}

func (NopReporter) Start(Info)                       {}
func (NopReporter) Instant(string, []obs.Observable) {}
func (NopReporter) Block(int, stats.Block)           {}
func (NopReporter) Run(stats.Block)                  {}

// Checkpointer persists the current configuration under a tag at block
// boundaries and at run end.
type Checkpointer interface {
	Write(tag string, s *md.State) error
}

// Result collects everything a run produced, for storage and plotting.
type Result struct {
	Names  []string
	MSD    []bool
	Blocks []stats.Block
	Avg    stats.Block
}

type Controller struct {
	params *config.Params
	state  *md.State
	integ  *md.VelocityVerlet
	est    *obs.Estimator
	acc    *stats.BlockAccumulator
	rep    Reporter
	ckpt   Checkpointer
}

func NewController(p *config.Params, state *md.State, integ *md.VelocityVerlet,
	est *obs.Estimator, acc *stats.BlockAccumulator, rep Reporter, ckpt Checkpointer) *Controller {
	if rep == nil {
		rep = NopReporter{}
	}
	return &Controller{params: p, state: state, integ: integ, est: est, acc: acc, rep: rep, ckpt: ckpt}
}

// Run executes nblock blocks of nstep steps. Overlap anywhere terminates
// the run with an OverlapError tagged by phase; there is no retry.
// Cancellation is honoured between blocks.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	n := c.state.N()
	box := float64(c.state.Box)
	c.rep.Start(Info{
		N:       n,
		Box:     box,
		Density: float64(n) / c.state.Box.Volume(),
		Params:  c.params,
		Names:   c.acc.Names(),
		MSD:     c.acc.MSDFlags(),
	})

	total, err := c.integ.Init(c.state)
	if errors.Is(err, md.ErrOverlap) {
		return nil, &OverlapError{Phase: PhaseInitial}
	}
	c.rep.Instant("initial values", c.est.Calculate(c.state, total))

	result := &Result{
		Names:  c.acc.Names(),
		MSD:    c.acc.MSDFlags(),
		Blocks: make([]stats.Block, 0, c.params.NBlock),
	}

	for blk := 1; blk <= c.params.NBlock; blk++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		c.acc.BeginBlock()
		for stp := 1; stp <= c.params.NStep; stp++ {
			total, err = c.integ.Step(c.state)
			if errors.Is(err, md.ErrOverlap) {
				return result, &OverlapError{Phase: PhaseMidRun, Block: blk, Step: stp}
			}
			if err := c.acc.Add(c.est.Calculate(c.state, total)); err != nil {
				return result, err
			}
		}
		b := c.acc.EndBlock()
		result.Blocks = append(result.Blocks, b)
		c.rep.Block(blk, b)

		if c.ckpt != nil {
			if err := c.ckpt.Write(savTag(blk, c.params.NBlock), c.state); err != nil {
				return result, fmt.Errorf("checkpoint block %d: %w", blk, err)
			}
		}
	}

	result.Avg = c.acc.EndRun()
	c.rep.Run(result.Avg)

	total, err = c.integ.Init(c.state)
	if errors.Is(err, md.ErrOverlap) {
		return result, &OverlapError{Phase: PhaseFinal}
	}
	c.rep.Instant("final values", c.est.Calculate(c.state, total))

	if c.ckpt != nil {
		if err := c.ckpt.Write("out", c.state); err != nil {
			return result, fmt.Errorf("final checkpoint: %w", err)
		}
	}
	return result, nil
}

// savTag names per-block checkpoints by index while the count stays
// enumerable, and falls back to a single rolling tag otherwise.
func savTag(blk, nblock int) string {
	if nblock < 1000 {
		return fmt.Sprintf("%03d", blk)
	}
	return "sav"
}
