package stats

import (
	"testing"

	"github.com/onsi/gomega"
	"gonum.org/v1/gonum/stat"

	"ljmd/internal/obs"
)

func feed(t *testing.T, a *BlockAccumulator, values []float64) {
	t.Helper()
	for _, v := range values {
		err := a.Add([]obs.Observable{
			{Name: "x", Value: v},
			{Name: "x:MSD", Value: v, MSD: true},
		})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}
}

// The run average over equal-sized blocks must equal the unweighted
// arithmetic mean of the block averages, and with equal step counts that is
// the plain mean of every sample.
func TestBlockingConsistency(t *testing.T) {
	g := gomega.NewWithT(t)

	schema := []obs.Observable{
		{Name: "x"},
		{Name: "x:MSD", MSD: true},
	}
	a := NewBlockAccumulator(schema)

	all := make([]float64, 0, 20)
	blockMeans := make([]float64, 0, 4)
	for blk := 0; blk < 4; blk++ {
		a.BeginBlock()
		values := make([]float64, 5)
		for i := range values {
			values[i] = float64(blk*5 + i + 1) // 1..20
			all = append(all, values[i])
		}
		feed(t, a, values)
		b := a.EndBlock()
		blockMeans = append(blockMeans, b.Means[0])
	}

	run := a.EndRun()
	g.Expect(a.Blocks()).To(gomega.Equal(4))
	g.Expect(run.Means[0]).To(gomega.BeNumerically("~", stat.Mean(blockMeans, nil), 1e-12))
	g.Expect(run.Means[0]).To(gomega.BeNumerically("~", stat.Mean(all, nil), 1e-12))
}

func TestMSDTracking(t *testing.T) {
	g := gomega.NewWithT(t)

	a := NewBlockAccumulator([]obs.Observable{
		{Name: "x"},
		{Name: "x:MSD", MSD: true},
	})

	a.BeginBlock()
	feed(t, a, []float64{1, 2, 3, 4, 5})
	b := a.EndBlock()

	// population variance of 1..5 is 2; the plain entry carries none
	g.Expect(b.Means[1]).To(gomega.BeNumerically("~", 3.0, 1e-12))
	g.Expect(b.MSD[1]).To(gomega.BeNumerically("~", 2.0, 1e-12))
	g.Expect(b.MSD[0]).To(gomega.BeZero())

	a.BeginBlock()
	feed(t, a, []float64{3, 3, 3, 3, 3})
	b = a.EndBlock()
	g.Expect(b.MSD[1]).To(gomega.BeNumerically("~", 0.0, 1e-12))

	run := a.EndRun()
	g.Expect(run.MSD[1]).To(gomega.BeNumerically("~", 1.0, 1e-12)) // mean of 2 and 0
}

func TestAddRejectsSchemaMismatch(t *testing.T) {
	a := NewBlockAccumulator([]obs.Observable{{Name: "x"}})
	a.BeginBlock()
	if err := a.Add([]obs.Observable{{Name: "x"}, {Name: "y"}}); err == nil {
		t.Error("expected error for mismatched variable set")
	}
}
