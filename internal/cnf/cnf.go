// Package cnf reads and writes configuration snapshots: atom count, box
// edge length, then one "rx ry rz vx vy vz" row per atom with positions in
// physical units.
package cnf

import (
	"bufio"
	"fmt"
	"os"

	"ljmd/internal/md"
)

// ReadAtoms parses a snapshot file. Positions are returned as stored, in
// physical units; conversion to box-scaled units is the loader's job.
func ReadAtoms(path string) (box float64, r, v []md.Vec, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%s: unexpected end of file", path)
		}
		return sc.Text(), nil
	}

	var n int
	s, err := line()
	if err != nil {
		return 0, nil, nil, err
	}
	if _, err := fmt.Sscan(s, &n); err != nil || n <= 0 {
		return 0, nil, nil, fmt.Errorf("%s: bad atom count %q", path, s)
	}

	s, err = line()
	if err != nil {
		return 0, nil, nil, err
	}
	if _, err := fmt.Sscan(s, &box); err != nil || box <= 0 {
		return 0, nil, nil, fmt.Errorf("%s: bad box length %q", path, s)
	}

	r = make([]md.Vec, n)
	v = make([]md.Vec, n)
	for i := 0; i < n; i++ {
		s, err = line()
		if err != nil {
			return 0, nil, nil, err
		}
		_, err = fmt.Sscan(s, &r[i][0], &r[i][1], &r[i][2], &v[i][0], &v[i][1], &v[i][2])
		if err != nil {
			return 0, nil, nil, fmt.Errorf("%s: atom %d: %w", path, i+1, err)
		}
	}
	return box, r, v, nil
}

// WriteAtoms writes a snapshot. Positions must already be in physical
// units.
func WriteAtoms(path string, box float64, r, v []md.Vec) error {
	if len(r) != len(v) {
		return fmt.Errorf("position and velocity counts differ: %d vs %d", len(r), len(v))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n", len(r))
	fmt.Fprintf(w, "%15.8f\n", box)
	for i := range r {
		fmt.Fprintf(w, "%15.10f%15.10f%15.10f%15.10f%15.10f%15.10f\n",
			r[i][0], r[i][1], r[i][2], v[i][0], v[i][1], v[i][2])
	}
	return w.Flush()
}
