package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func linearTable() ([]float64, []float64) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2*x + 1
	}
	return xs, ys
}

func TestLinearAtNodes(t *testing.T) {
	xs, ys := linearTable()
	in := NewLinear(xs, ys)
	for i := range xs {
		assert.Equal(t, ys[i], in.Eval(xs[i]), "node value not recovered")
	}
}

func TestLinearBetweenNodes(t *testing.T) {
	xs, ys := linearTable()
	in := NewLinear(xs, ys)
	for _, x := range []float64{0.25, 0.5, 1.75, 3.999} {
		assert.InDelta(t, 2*x+1, in.Eval(x), 1e-14,
			"linear data not interpolated exactly")
	}
}

func TestLinearClamps(t *testing.T) {
	xs, ys := linearTable()
	in := NewLinear(xs, ys)
	assert.Equal(t, ys[0], in.Eval(-10.0), "low end not clamped")
	assert.Equal(t, ys[len(ys)-1], in.Eval(+10.0), "high end not clamped")
}

func TestLinearDecreasing(t *testing.T) {
	xs := []float64{4, 3, 2, 1, 0}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2*x + 1
	}

	in := NewLinear(xs, ys)
	assert.InDelta(t, 2*2.5+1, in.Eval(2.5), 1e-14,
		"decreasing table not interpolated")
	assert.Equal(t, 1.0, in.Eval(-1.0), "decreasing table low end not clamped")
	assert.Equal(t, 9.0, in.Eval(10.0), "decreasing table high end not clamped")
}

func TestSplineAtNodes(t *testing.T) {
	xs := []float64{0, 0.5, 1.5, 2, 4}
	ys := []float64{1, -1, 3, 0, 2}
	sp := NewSpline(xs, ys)
	for i := range xs {
		assert.InDelta(t, ys[i], sp.Eval(xs[i]), 1e-12,
			"node value not recovered")
	}
}

func TestSplineLinearData(t *testing.T) {
	// A natural spline through collinear points is the line itself.
	xs, ys := linearTable()
	sp := NewSpline(xs, ys)
	for _, x := range []float64{0, 0.3, 1.5, 2.71, 4} {
		assert.InDelta(t, 2*x+1, sp.Eval(x), 1e-12,
			"spline does not reproduce line")
	}
}

func TestSplineSmoothData(t *testing.T) {
	n := 21
	xs, ys := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = math.Pi * float64(i) / float64(n-1)
		ys[i] = math.Sin(xs[i])
	}

	sp := NewSpline(xs, ys)
	for i := 0; i < n-1; i++ {
		x := (xs[i] + xs[i+1]) / 2
		assert.InDelta(t, math.Sin(x), sp.Eval(x), 1e-3,
			"spline misses smooth function at midpoint")
	}
}

func TestEvalAll(t *testing.T) {
	xs, ys := linearTable()
	in := NewLinear(xs, ys)

	pts := []float64{0.5, 1.5, 2.5}
	res := in.EvalAll(pts)
	assert.Equal(t, len(pts), len(res), "wrong result length")

	buf := make([]float64, len(pts))
	res2 := in.EvalAll(pts, buf)
	assert.Equal(t, &buf[0], &res2[0], "output buffer not used")
	assert.Equal(t, res, res2, "buffered result differs")
}

func TestTriDiag(t *testing.T) {
	// The system was built by multiplying out the solution [1, 2, 3].
	as := []float64{0, 1, 1}
	bs := []float64{2, 2, 2}
	cs := []float64{1, 1, 0}
	rs := []float64{4, 8, 8}

	us := TriDiag(as, bs, cs, rs)
	want := []float64{1, 2, 3}
	for i := range want {
		assert.InDelta(t, want[i], us[i], 1e-12, "wrong solution component")
	}
}

func BenchmarkSplineEval(b *testing.B) {
	n := 100
	xs, ys := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i)
		ys[i] = math.Sin(xs[i] / 10)
	}
	sp := NewSpline(xs, ys)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sp.Eval(float64(i % (n - 1)))
	}
}
