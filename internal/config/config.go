// Package config holds the run parameters and their YAML loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNBlock = 10
	DefaultNStep  = 50000
	DefaultRCut   = 2.5
	DefaultDt     = 0.002
)

type Params struct {
	NBlock int     `yaml:"nblock"`
	NStep  int     `yaml:"nstep"`
	RCut   float64 `yaml:"r_cut"`
	Dt     float64 `yaml:"dt"`
}

func Default() *Params {
	return &Params{
		NBlock: DefaultNBlock,
		NStep:  DefaultNStep,
		RCut:   DefaultRCut,
		Dt:     DefaultDt,
	}
}

// Load reads a YAML parameter file on top of the defaults and validates the
// result. A malformed file is fatal before any simulation state exists.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Check rejects parameter sets the engine cannot run.
func (p *Params) Check() error {
	if p.NBlock <= 0 {
		return fmt.Errorf("nblock must be positive, got %d", p.NBlock)
	}
	if p.NStep <= 0 {
		return fmt.Errorf("nstep must be positive, got %d", p.NStep)
	}
	if p.RCut <= 0 {
		return fmt.Errorf("r_cut must be positive, got %g", p.RCut)
	}
	if p.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", p.Dt)
	}
	return nil
}
