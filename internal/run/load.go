package run

import (
	"fmt"
	"path/filepath"

	"ljmd/internal/cnf"
	"ljmd/internal/md"
)

// Load reads a snapshot file and prepares the simulation state: positions
// are converted to box-scaled units and wrapped, and the centre-of-mass
// velocity is zeroed so total momentum is exactly zero.
func Load(path string) (*md.State, error) {
	box, r, v, err := cnf.ReadAtoms(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	s := md.NewState(box, r, v)
	for i := range s.R {
		s.R[i] = s.Box.Wrap(s.R[i].Scale(1.0 / box))
	}
	s.ZeroMomentum()
	return s, nil
}

// CnfCheckpointer writes checkpoints as cnf.<tag> snapshot files in a
// directory, rescaling positions back to physical units.
type CnfCheckpointer struct {
	Dir    string
	Prefix string
}

func NewCnfCheckpointer(dir string) *CnfCheckpointer {
	return &CnfCheckpointer{Dir: dir, Prefix: "cnf."}
}

func (c *CnfCheckpointer) Write(tag string, s *md.State) error {
	box := float64(s.Box)
	r := make([]md.Vec, s.N())
	for i := range r {
		r[i] = s.R[i].Scale(box)
	}
	return cnf.WriteAtoms(filepath.Join(c.Dir, c.Prefix+tag), box, r, s.V)
}
