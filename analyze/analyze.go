/*package analyze computes separation quality metrics from a finished or
in-flight classifier ensemble.

Summarize reports the per-kind collection counts and the standard purity,
recovery, and yield figures. GradeCurve bins the collected particles by
size and reports the grade efficiency (Tromp) curve, from which the cut
size and the sharpness index are read off.
*/
package analyze

import (
	"fmt"
	"log"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Amankrah/goclassify"
	"github.com/Amankrah/goclassify/feed"
	"github.com/Amankrah/goclassify/math/interpolate"
)

// Summary aggregates the terminal state of a separation run. Counts are
// particles, fractions are in [0, 1], and SplitEstimate is in meters.
type Summary struct {
	Total int

	TypeA, TypeB       int
	Fine, Coarse, Lost int

	AToFine, BToFine     int
	AToCoarse, BToCoarse int

	// FinePurity is the fraction of the fine product that is type A, and
	// CoarsePurity the fraction of the coarse product that is type B.
	FinePurity, CoarsePurity float64
	// Recovery is the fraction of all type A particles that reached the
	// fine product.
	Recovery float64
	// Yield is the fraction of the whole feed that reached the fine
	// product.
	Yield float64

	// SplitEstimate is a rough cut size: the mean of the largest fine
	// diameter and the smallest coarse diameter. Zero when either product
	// is empty.
	SplitEstimate float64
}

// Summarize reads the collection records of the ensemble. Particles are
// counted as collected only once they carry a positive collection time.
func Summarize(e *goclassify.Ensemble) Summary {
	s := Summary{Total: e.Len()}

	var maxFine, minCoarse float64
	for i := 0; i < e.Len(); i++ {
		a := e.Kinds[i] == feed.TypeA
		if a {
			s.TypeA++
		} else {
			s.TypeB++
		}

		if e.CollectionTimes[i] < 0 {
			s.Lost++
			continue
		} else if e.CollectionTimes[i] == 0 {
			continue
		}

		switch e.Outlets[i] {
		case goclassify.OutletFine:
			s.Fine++
			if a {
				s.AToFine++
			} else {
				s.BToFine++
			}
			if e.Diameters[i] > maxFine {
				maxFine = e.Diameters[i]
			}
		case goclassify.OutletCoarse:
			s.Coarse++
			if a {
				s.AToCoarse++
			} else {
				s.BToCoarse++
			}
			if minCoarse == 0 || e.Diameters[i] < minCoarse {
				minCoarse = e.Diameters[i]
			}
		}
	}

	if s.Fine > 0 {
		s.FinePurity = float64(s.AToFine) / float64(s.Fine)
	}
	if s.Coarse > 0 {
		s.CoarsePurity = float64(s.BToCoarse) / float64(s.Coarse)
	}
	if s.TypeA > 0 {
		s.Recovery = float64(s.AToFine) / float64(s.TypeA)
	}
	if s.Total > 0 {
		s.Yield = float64(s.Fine) / float64(s.Total)
	}
	if s.Fine > 0 && s.Coarse > 0 {
		s.SplitEstimate = (maxFine + minCoarse) / 2
	}

	return s
}

// MassBalance returns an error unless every particle is accounted for as
// active, collected, or lost.
func MassBalance(e *goclassify.Ensemble) error {
	active := e.ActiveCount()
	fine, coarse, lost := e.FineCount(), e.CoarseCount(), e.LostCount()
	if total := active + fine + coarse + lost; total != e.Len() {
		return fmt.Errorf(
			"Ensemble holds %d particles, but %d active + %d fine + "+
				"%d coarse + %d lost = %d.",
			e.Len(), active, fine, coarse, lost, total,
		)
	}
	return nil
}

// Stats summarizes one diameter population. All values are in meters.
type Stats struct {
	N                   int
	Mean, Std, Min, Max float64
}

// DiameterStats summarizes the diameters of the particles retired through
// the given outlet. The second return is false when no particle did.
func DiameterStats(e *goclassify.Ensemble, o goclassify.Outlet) (Stats, bool) {
	ds := []float64{}
	for i := 0; i < e.Len(); i++ {
		if e.Outlets[i] == o && e.CollectionTimes[i] > 0 {
			ds = append(ds, e.Diameters[i])
		}
	}
	if len(ds) == 0 {
		return Stats{}, false
	}

	s := Stats{
		N:    len(ds),
		Mean: stat.Mean(ds, nil),
		Min:  floats.Min(ds),
		Max:  floats.Max(ds),
	}
	if len(ds) > 1 {
		s.Std = stat.StdDev(ds, nil)
	}
	return s, true
}

// Grade curve bounds in microns. Particles outside the range are ignored.
const (
	gradeMin = 1.0
	gradeMax = 60.0
)

// neutralEfficiency fills bins the feed never reached.
const neutralEfficiency = 50.0

// GradeCurve is a grade efficiency (Tromp) curve: for each size bin, the
// percentage of the collected feed in that bin which reported to the
// coarse product. Centers are in microns, Efficiency in percent.
type GradeCurve struct {
	Centers    []float64
	Efficiency []float64

	Feed, Coarse []int
}

// NewGradeCurve bins the collected particles of the ensemble into nBins
// logarithmically spaced size bins between 1 and 60 microns. Non-positive
// nBins selects 30 bins.
func NewGradeCurve(e *goclassify.Ensemble, nBins int) *GradeCurve {
	if nBins <= 0 {
		nBins = 30
	}

	edges := make([]float64, nBins+1)
	floats.LogSpan(edges, gradeMin, gradeMax)
	edges[0], edges[nBins] = gradeMin, gradeMax

	g := &GradeCurve{
		Centers:    make([]float64, nBins),
		Efficiency: make([]float64, nBins),
		Feed:       make([]int, nBins),
		Coarse:     make([]int, nBins),
	}
	for i := range g.Centers {
		g.Centers[i] = (edges[i] + edges[i+1]) / 2
	}

	for i := 0; i < e.Len(); i++ {
		if e.CollectionTimes[i] <= 0 {
			continue
		}
		o := e.Outlets[i]
		if o != goclassify.OutletFine && o != goclassify.OutletCoarse {
			continue
		}

		d := e.Diameters[i] * 1e6
		if d < gradeMin || d > gradeMax {
			continue
		}
		bin := sort.SearchFloat64s(edges, d)
		if bin > 0 {
			bin--
		}
		if bin >= nBins {
			bin = nBins - 1
		}

		g.Feed[bin]++
		if o == goclassify.OutletCoarse {
			g.Coarse[bin]++
		}
	}

	for i := range g.Efficiency {
		if g.Feed[i] == 0 {
			g.Efficiency[i] = neutralEfficiency
		} else {
			g.Efficiency[i] = 100 * float64(g.Coarse[i]) / float64(g.Feed[i])
		}
	}

	return g
}

// At evaluates the curve at diameter d microns, interpolating linearly
// between bin centers and clamping outside them.
func (g *GradeCurve) At(d float64) float64 {
	in := interpolate.NewLinear(g.Centers, g.Efficiency)
	return in.Eval(d)
}

// Quantile returns the diameter in microns at which the curve crosses the
// given efficiency percentage. The crossing is interpolated within the
// first bracketing bin pair; if the curve never brackets the target, the
// center of the nearest bin is returned instead. Only measured bins are
// read: the neutral fill exists for plotting, and bracketing against it
// would invent crossings at the unpopulated curve ends.
func (g *GradeCurve) Quantile(pct float64) float64 {
	cs, es := []float64{}, []float64{}
	for i, f := range g.Feed {
		if f > 0 {
			cs = append(cs, g.Centers[i])
			es = append(es, g.Efficiency[i])
		}
	}
	if len(cs) == 0 {
		cs, es = g.Centers, g.Efficiency
	}

	for i := 0; i < len(es)-1; i++ {
		lo, hi := es[i]-pct, es[i+1]-pct
		if lo == 0 {
			return cs[i]
		}
		if lo*hi < 0 {
			frac := (pct - es[i]) / (es[i+1] - es[i])
			return cs[i] + frac*(cs[i+1]-cs[i])
		}
	}

	best, dist := 0, math.Inf(1)
	for i := range es {
		if d := math.Abs(es[i] - pct); d < dist {
			best, dist = i, d
		}
	}
	return cs[best]
}

// CutSize returns d50, the diameter reporting half to each product.
func (g *GradeCurve) CutSize() float64 {
	return g.Quantile(50)
}

// Sharpness returns the sharpness index d75/d25. An ideal classifier has
// index 1.
func (g *GradeCurve) Sharpness() float64 {
	d25 := g.Quantile(25)
	if d25 == 0 {
		return math.NaN()
	}
	return g.Quantile(75) / d25
}

// SharpnessQuality names the conventional quality band of a sharpness
// index.
func SharpnessQuality(kappa float64) string {
	switch {
	case math.IsNaN(kappa):
		return "unknown"
	case kappa < 1.5:
		return "excellent"
	case kappa < 2.0:
		return "good"
	case kappa < 3.0:
		return "acceptable"
	}
	return "poor"
}

// Resample evaluates a natural cubic spline through the curve at n log
// spaced diameters, for smooth plotting. n must be at least 2.
func (g *GradeCurve) Resample(n int) (ds, effs []float64) {
	if n < 2 {
		log.Fatalf("Resample() given point count %d.", n)
	}

	ds = make([]float64, n)
	floats.LogSpan(ds, g.Centers[0], g.Centers[len(g.Centers)-1])
	ds[0] = g.Centers[0]
	ds[n-1] = g.Centers[len(g.Centers)-1]

	sp := interpolate.NewSpline(g.Centers, g.Efficiency)
	return ds, sp.EvalAll(ds)
}
