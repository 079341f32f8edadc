package lattice

import (
	"math"
	"testing"
)

func TestFCCGeometry(t *testing.T) {
	const cells, density = 3, 0.75
	box, r, v := FCC(cells, density, 1.0, 1)

	n := 4 * cells * cells * cells
	if len(r) != n || len(v) != n {
		t.Fatalf("got %d positions, %d velocities, want %d", len(r), len(v), n)
	}
	if want := math.Cbrt(float64(n) / density); math.Abs(box-want) > 1e-12 {
		t.Errorf("box = %v, want %v", box, want)
	}
	for i, ri := range r {
		for k := 0; k < 3; k++ {
			if ri[k] < 0 || ri[k] >= box {
				t.Errorf("particle %d outside box: %v", i, ri)
			}
		}
	}

	// nearest-neighbour distance on a perfect fcc lattice is cell/sqrt(2)
	cell := box / float64(cells)
	minSq := math.Inf(1)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var dSq float64
			for k := 0; k < 3; k++ {
				d := r[i][k] - r[j][k]
				dSq += d * d
			}
			minSq = math.Min(minSq, dSq)
		}
	}
	if want := cell / math.Sqrt2; math.Abs(math.Sqrt(minSq)-want) > 1e-10 {
		t.Errorf("nearest-neighbour distance = %v, want %v", math.Sqrt(minSq), want)
	}
}

func TestFCCVelocities(t *testing.T) {
	_, _, v := FCC(4, 0.5, 2.0, 7)

	var sum [3]float64
	for _, vi := range v {
		for k := 0; k < 3; k++ {
			sum[k] += vi[k]
		}
	}
	for k := 0; k < 3; k++ {
		if math.Abs(sum[k]) > 1e-10 {
			t.Errorf("net momentum component %d = %v", k, sum[k])
		}
	}

	// sample variance per component should sit near the requested temperature
	var sq float64
	for _, vi := range v {
		sq += vi[0]*vi[0] + vi[1]*vi[1] + vi[2]*vi[2]
	}
	variance := sq / float64(3*len(v))
	if variance < 1.5 || variance > 2.5 {
		t.Errorf("velocity variance = %v, want near 2.0", variance)
	}
}

func TestFCCDeterministicSeed(t *testing.T) {
	_, _, v1 := FCC(2, 0.75, 1.0, 42)
	_, _, v2 := FCC(2, 0.75, 1.0, 42)
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("same seed produced different velocities at %d", i)
		}
	}
	_, _, v3 := FCC(2, 0.75, 1.0, 43)
	if v1[0] == v3[0] {
		t.Error("different seeds produced identical velocities")
	}
}
