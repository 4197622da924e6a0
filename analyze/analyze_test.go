package analyze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amankrah/goclassify"
	"github.com/Amankrah/goclassify/feed"
)

// reportEnsemble is a small hand built separation: six type A particles of
// which four report to fine and one to coarse and one is lost, and four
// type B particles of which three report to coarse and one to fine.
func reportEnsemble() *goclassify.Ensemble {
	e := goclassify.NewEnsemble(10)

	micron := []float64{5, 6, 7, 8, 25, 30, 35, 40, 9, 12}
	kinds := []feed.Kind{
		feed.TypeA, feed.TypeA, feed.TypeA, feed.TypeA, feed.TypeA,
		feed.TypeB, feed.TypeB, feed.TypeB, feed.TypeB, feed.TypeA,
	}
	for i := range micron {
		e.Diameters[i] = micron[i] * 1e-6
		e.Densities[i] = 1400
		e.Kinds[i] = kinds[i]
		e.Active[i] = true
	}

	for _, i := range []int{0, 1, 2, 3} {
		e.Collect(i, goclassify.OutletFine, 1)
	}
	e.Collect(4, goclassify.OutletCoarse, 1)
	for _, i := range []int{5, 6, 7} {
		e.Collect(i, goclassify.OutletCoarse, 1)
	}
	e.Collect(8, goclassify.OutletFine, 1)
	e.MarkLost(9)

	return e
}

func TestSummarize(t *testing.T) {
	s := Summarize(reportEnsemble())

	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 6, s.TypeA)
	assert.Equal(t, 4, s.TypeB)
	assert.Equal(t, 5, s.Fine)
	assert.Equal(t, 4, s.Coarse)
	assert.Equal(t, 1, s.Lost)

	assert.Equal(t, 4, s.AToFine)
	assert.Equal(t, 1, s.BToFine)
	assert.Equal(t, 1, s.AToCoarse)
	assert.Equal(t, 3, s.BToCoarse)

	assert.Equal(t, 4.0/5.0, s.FinePurity, "wrong fine purity")
	assert.Equal(t, 3.0/4.0, s.CoarsePurity, "wrong coarse purity")
	assert.Equal(t, 4.0/6.0, s.Recovery, "wrong recovery")
	assert.Equal(t, 5.0/10.0, s.Yield, "wrong yield")

	// Largest fine diameter is 9 um, smallest coarse is 25 um.
	assert.InDelta(t, 17e-6, s.SplitEstimate, 1e-12, "wrong split estimate")
}

func TestSummarizeEmpty(t *testing.T) {
	e := goclassify.NewEnsemble(5)
	s := Summarize(e)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 0, s.Fine)
	assert.Equal(t, 0.0, s.FinePurity)
	assert.Equal(t, 0.0, s.Yield)
	assert.Equal(t, 0.0, s.SplitEstimate)
}

func TestMassBalance(t *testing.T) {
	e := reportEnsemble()
	assert.NoError(t, MassBalance(e))

	// Deactivating a particle behind the counters' back breaks the
	// balance.
	e2 := goclassify.NewEnsemble(3)
	e2.Active[0] = true
	e2.Active[1] = true
	assert.Error(t, MassBalance(e2))
}

func TestDiameterStats(t *testing.T) {
	e := reportEnsemble()

	s, ok := DiameterStats(e, goclassify.OutletFine)
	require.True(t, ok, "no fine stats")
	assert.Equal(t, 5, s.N)
	assert.InDelta(t, 7e-6, s.Mean, 1e-12, "wrong mean")
	assert.InDelta(t, math.Sqrt(2.5)*1e-6, s.Std, 1e-12, "wrong deviation")
	assert.InDelta(t, 5e-6, s.Min, 1e-18)
	assert.InDelta(t, 9e-6, s.Max, 1e-18)

	_, ok = DiameterStats(goclassify.NewEnsemble(4), goclassify.OutletCoarse)
	assert.False(t, ok, "stats from an empty population")
}

// splitEnsemble spreads n collected particles evenly over [2, 50] microns
// and retires everything below the split diameter to fine, the rest to
// coarse.
func splitEnsemble(n int, split float64) *goclassify.Ensemble {
	e := goclassify.NewEnsemble(n)
	for i := 0; i < n; i++ {
		d := (2 + 48*float64(i)/float64(n-1)) * 1e-6
		e.Diameters[i] = d
		e.Densities[i] = 1400
		e.Active[i] = true

		if d < split {
			e.Kinds[i] = feed.TypeA
			e.Collect(i, goclassify.OutletFine, 1)
		} else {
			e.Kinds[i] = feed.TypeB
			e.Collect(i, goclassify.OutletCoarse, 1)
		}
	}
	return e
}

func TestGradeCurveSharpSplit(t *testing.T) {
	g := NewGradeCurve(splitEnsemble(400, 20e-6), 30)

	assert.Equal(t, 30, len(g.Centers))
	assert.Equal(t, 0.0, g.At(5), "small sizes should all report to fine")
	assert.InDelta(t, 100.0, g.At(40), 1e-9,
		"large sizes should all report to coarse")

	d50 := g.CutSize()
	assert.True(t, d50 > 15 && d50 < 26, "cut size %g far from split", d50)

	kappa := g.Sharpness()
	assert.True(t, kappa >= 1, "sharpness below 1: %g", kappa)
	assert.True(t, kappa < 1.5, "sharp split graded dull: %g", kappa)
	assert.Equal(t, "excellent", SharpnessQuality(kappa))
}

func TestGradeCurveNeutralFill(t *testing.T) {
	// 10 to 30 micron feed leaves the outer bins empty.
	e := goclassify.NewEnsemble(100)
	for i := 0; i < 100; i++ {
		d := (10 + 20*float64(i)/99) * 1e-6
		e.Diameters[i] = d
		e.Densities[i] = 1400
		e.Active[i] = true
		if i%2 == 0 {
			e.Collect(i, goclassify.OutletFine, 1)
		} else {
			e.Collect(i, goclassify.OutletCoarse, 1)
		}
	}

	g := NewGradeCurve(e, 30)
	assert.Equal(t, 0, g.Feed[0], "1 micron bin should be empty")
	assert.Equal(t, neutralEfficiency, g.Efficiency[0],
		"empty bin not neutrally filled")
	assert.Equal(t, neutralEfficiency,
		g.Efficiency[len(g.Efficiency)-1], "empty top bin not neutrally filled")
}

func TestGradeCurveQuantiles(t *testing.T) {
	g := NewGradeCurve(splitEnsemble(400, 20e-6), 30)

	d25, d75 := g.Quantile(25), g.Quantile(75)
	assert.True(t, d25 <= g.CutSize(), "d25 above d50")
	assert.True(t, d75 >= g.CutSize(), "d75 below d50")

	// The empty outer bins must not produce phantom crossings.
	assert.True(t, d25 > 10, "quantile read from an unpopulated bin: %g", d25)
	assert.True(t, d75 < 30, "quantile read from an unpopulated bin: %g", d75)
}

func TestSharpnessQuality(t *testing.T) {
	assert.Equal(t, "excellent", SharpnessQuality(1.2))
	assert.Equal(t, "good", SharpnessQuality(1.7))
	assert.Equal(t, "acceptable", SharpnessQuality(2.5))
	assert.Equal(t, "poor", SharpnessQuality(4.0))
	assert.Equal(t, "unknown", SharpnessQuality(math.NaN()))
}

func TestResample(t *testing.T) {
	g := NewGradeCurve(splitEnsemble(400, 20e-6), 30)

	ds, effs := g.Resample(200)
	require.Equal(t, 200, len(ds))
	require.Equal(t, 200, len(effs))

	assert.Equal(t, g.Centers[0], ds[0], "resample does not start at the curve")
	assert.Equal(t, g.Centers[len(g.Centers)-1], ds[len(ds)-1],
		"resample does not end at the curve")
	for i := 1; i < len(ds); i++ {
		assert.True(t, ds[i] > ds[i-1], "resample diameters not increasing")
	}

	assert.InDelta(t, g.Efficiency[0], effs[0], 1e-9,
		"resample endpoint off the curve")
}
