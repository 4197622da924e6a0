/*package interpolate implements interpolation on tables of 1D points.

Linear is a piecewise linear interpolator which clamps to the table's end
values outside its range. Spline is a natural cubic spline which treats out
of range points as caller errors. Both accept tables sorted in increasing
or decreasing x order.
*/
package interpolate

import (
	"log"
)

// tab holds a sorted point table and answers interval queries against it.
type tab struct {
	xs, ys []float64
	incr   bool

	// Usually the input data is uniform. This is our estimate of the point
	// spacing, used to guess the target interval before searching.
	dx float64
}

func (t *tab) init(xs, ys []float64, caller string) {
	if len(xs) != len(ys) {
		log.Fatalf(
			"Table given to %s has len(xs) = %d but len(ys) = %d.",
			caller, len(xs), len(ys),
		)
	} else if len(xs) <= 1 {
		log.Fatalf("Table given to %s has length of %d.", caller, len(xs))
	}

	t.xs, t.ys = xs, ys
	t.incr = xs[0] < xs[len(xs)-1]
	for i := 0; i < len(xs)-1; i++ {
		if (xs[i+1] < xs[i]) == t.incr {
			log.Fatalf("Table given to %s not sorted.", caller)
		}
	}

	t.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
}

// bounds returns the low and high x values covered by the table.
func (t *tab) bounds() (lo, hi float64) {
	lo, hi = t.xs[0], t.xs[len(t.xs)-1]
	if !t.incr {
		lo, hi = hi, lo
	}
	return lo, hi
}

// bsearch returns the index of the interval [xs[i], xs[i+1]] containing x.
func (t *tab) bsearch(x float64) int {
	// Guess under the assumption of uniform spacing.
	guess := int((x - t.xs[0]) / t.dx)
	if guess >= 0 && guess < len(t.xs)-1 &&
		(t.xs[guess] <= x == t.incr) &&
		(t.xs[guess+1] >= x == t.incr) {

		return guess
	}

	lo, hi := 0, len(t.xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if t.incr == (x >= t.xs[mid]) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Linear interpolates piecewise linearly on a table of points.
type Linear struct {
	tab
}

// NewLinear creates a Linear from a table of x and y values. The values
// must be sorted in increasing or decreasing order in x, and must not be
// modified during the lifetime of the Linear.
func NewLinear(xs, ys []float64) *Linear {
	in := new(Linear)
	in.init(xs, ys, "NewLinear()")
	return in
}

// Eval interpolates the table to the point x. Outside the table's range it
// returns the nearest end value.
func (in *Linear) Eval(x float64) float64 {
	lo, hi := in.bounds()
	if x <= lo {
		if in.incr {
			return in.ys[0]
		}
		return in.ys[len(in.ys)-1]
	} else if x >= hi {
		if in.incr {
			return in.ys[len(in.ys)-1]
		}
		return in.ys[0]
	}

	i := in.bsearch(x)
	frac := (x - in.xs[i]) / (in.xs[i+1] - in.xs[i])
	return in.ys[i]*(1-frac) + in.ys[i+1]*frac
}

// EvalAll interpolates the table to every point in xs. If an output slice
// is given, the results are written to it. Otherwise a new slice is
// allocated.
func (in *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	res := evalBuf(len(xs), out)
	for i, x := range xs {
		res[i] = in.Eval(x)
	}
	return res
}

// Spline is a natural cubic spline over a table of points.
type Spline struct {
	tab
	y2s, sqrs []float64
}

// NewSpline creates a Spline from a table of x and y values. The values
// must be sorted in increasing or decreasing order in x, and must not be
// modified during the lifetime of the Spline.
func NewSpline(xs, ys []float64) *Spline {
	sp := new(Spline)
	sp.init(xs, ys, "NewSpline()")

	sp.y2s = make([]float64, len(xs))
	sp.secondDerivative()

	sp.sqrs = make([]float64, len(xs)-1)
	for i := range sp.sqrs {
		sp.sqrs[i] = (xs[i+1] - xs[i]) * (xs[i+1] - xs[i])
	}

	return sp
}

// Eval interpolates the table to the point x, which must be within the
// table's range.
func (sp *Spline) Eval(x float64) float64 {
	low, high := sp.bounds()
	if x < low || x > high {
		log.Fatalf("Point %g given to Spline.Eval() out of bounds.", x)
	}

	lo := sp.bsearch(x)
	hi := lo + 1

	A := (sp.xs[hi] - x) / (sp.xs[hi] - sp.xs[lo])
	B := 1 - A
	C := (A*A*A - A) * sp.sqrs[lo] / 6
	D := (B*B*B - B) * sp.sqrs[lo] / 6
	return A*sp.ys[lo] + B*sp.ys[hi] + C*sp.y2s[lo] + D*sp.y2s[hi]
}

// EvalAll interpolates the table to every point in xs. If an output slice
// is given, the results are written to it. Otherwise a new slice is
// allocated.
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	res := evalBuf(len(xs), out)
	for i, x := range xs {
		res[i] = sp.Eval(x)
	}
	return res
}

func evalBuf(n int, out [][]float64) []float64 {
	if len(out) > 0 {
		if len(out[0]) != n {
			log.Fatalf(
				"EvalAll() output buffer has length %d, but needs %d.",
				len(out[0]), n,
			)
		}
		return out[0]
	}
	return make([]float64, n)
}

// secondDerivative computes the spline's second derivative at every table
// point. The boundary values are set to zero, which is what makes the
// spline natural.
func (sp *Spline) secondDerivative() {
	n := len(sp.xs)
	sp.y2s[0], sp.y2s[n-1] = 0, 0
	if n == 2 {
		return
	}

	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)

	xs, ys := sp.xs, sp.ys
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	TriDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}

// TriDiagAt solves the system of equations
//
// | b0 c0 ..    |   | out0 |   | r0 |
// | a1 b1 c1 .. |   | out1 |   | r1 |
// | ..          | * | ..   | = | .. |
// | ..    an bn |   | outn |   | rn |
//
// for out0 .. outn in place in the given slice.
func TriDiagAt(as, bs, cs, rs, out []float64) {
	if len(as) != len(bs) || len(as) != len(cs) ||
		len(as) != len(out) || len(as) != len(rs) {

		log.Fatal("Lengths of arguments to TriDiagAt() are unequal.")
	}

	tmp := make([]float64, len(as))

	beta := bs[0]
	if beta == 0 {
		log.Fatal("TriDiagAt() cannot solve given system.")
	}
	out[0] = rs[0] / beta

	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if beta == 0 {
			log.Fatal("TriDiagAt() cannot solve given system.")
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}
}

// TriDiag solves the same system as TriDiagAt, allocating the solution
// slice.
func TriDiag(as, bs, cs, rs []float64) []float64 {
	us := make([]float64, len(as))
	TriDiagAt(as, bs, cs, rs, us)
	return us
}
