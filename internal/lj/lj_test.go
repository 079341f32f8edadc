package lj

import (
	"math"
	"testing"

	"ljmd/internal/md"
)

// two particles a distance d apart along x in a box big enough that no
// periodic image interferes
func pair(d, box float64) []md.Vec {
	return []md.Vec{{0, 0, 0}, {d / box, 0, 0}}
}

func TestForceAntisymmetry(t *testing.T) {
	f, _ := LennardJones{}.Evaluate(pair(1.2, 10.0), 2.5, 10.0)
	for k := 0; k < 3; k++ {
		if f[0][k]+f[1][k] != 0 {
			t.Errorf("forces not antisymmetric: %v vs %v", f[0], f[1])
		}
	}
}

func TestForceMatchesPotentialDerivative(t *testing.T) {
	const box, cutoff = 10.0, 2.5
	pot := func(d float64) float64 {
		_, total := LennardJones{}.Evaluate(pair(d, box), cutoff, box)
		return total.Pot
	}

	for _, d := range []float64{1.0, 1.122, 1.5, 2.0, 2.4} {
		f, _ := LennardJones{}.Evaluate(pair(d, box), cutoff, box)
		// force on particle 0 along x is +dU/dd (particle 1 sits at +x)
		h := 1e-6
		want := (pot(d+h) - pot(d-h)) / (2 * h)
		if math.Abs(f[0][0]-want) > 1e-4*math.Max(1, math.Abs(want)) {
			t.Errorf("d=%v: force %v, derivative %v", d, f[0][0], want)
		}
	}
}

func TestShiftedPotentialVanishesAtCutoff(t *testing.T) {
	const box, cutoff = 10.0, 2.5
	_, total := LennardJones{}.Evaluate(pair(cutoff-1e-9, box), cutoff, box)
	if math.Abs(total.Pot) > 1e-7 {
		t.Errorf("shifted potential at cutoff = %v, want ~0", total.Pot)
	}
	if total.Cut == 0 {
		t.Error("unshifted potential should be nonzero just inside the cutoff")
	}
}

func TestOverlapFlag(t *testing.T) {
	const box, cutoff = 10.0, 2.5
	_, total := LennardJones{}.Evaluate(pair(0.7, box), cutoff, box)
	if !total.Overlap {
		t.Error("expected overlap at separation 0.7")
	}
	_, total = LennardJones{}.Evaluate(pair(0.8, box), cutoff, box)
	if total.Overlap {
		t.Error("unexpected overlap at separation 0.8")
	}
}

func TestPairValues(t *testing.T) {
	// hand-computed for d=1.2, cutoff=2.5
	_, total := LennardJones{}.Evaluate(pair(1.2, 10.0), 2.5, 10.0)
	if math.Abs(total.Pot-(-0.874648396447076)) > 1e-12 {
		t.Errorf("Pot = %v", total.Pot)
	}
	if math.Abs(total.Vir-(-0.8846773368892314)) > 1e-12 {
		t.Errorf("Vir = %v", total.Vir)
	}
}

func TestLongRangeCorrections(t *testing.T) {
	// hand-computed for density=0.5, cutoff=2.5
	if got := (LennardJones{}).PotentialLRC(0.5, 2.5); math.Abs(got-(-0.26771655103318115)) > 1e-12 {
		t.Errorf("PotentialLRC = %v", got)
	}
	if got := (LennardJones{}).PressureLRC(0.5, 2.5); math.Abs(got-(-0.2673505289600333)) > 1e-12 {
		t.Errorf("PressureLRC = %v", got)
	}
}

func TestMinimumImage(t *testing.T) {
	// particles near opposite faces interact through the boundary
	const box, cutoff = 5.0, 2.5
	r := []md.Vec{{-0.45, 0, 0}, {0.45, 0, 0}} // separation 0.5 through the face
	f, total := LennardJones{}.Evaluate(r, cutoff, box)
	if total.Cut == 0 {
		t.Fatal("no interaction through the periodic boundary")
	}
	if !total.Overlap {
		t.Error("expected overlap at image distance 0.5")
	}
	if f[0][0] == 0 || f[0][0] != -f[1][0] {
		t.Errorf("image force wrong: %v vs %v", f[0], f[1])
	}
}
