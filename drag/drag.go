/*package drag implements the empirical drag laws acting on classifier
particles and the force-balance design formulas derived from them.

Three drag regimes are selected by particle Reynolds number: Stokes creeping
flow, the Schiller-Naumann correlation, and the constant Newton plateau. The
regimes meet at Re = 0.1 and Re = 1000 with the small kinks inherent to the
correlations themselves.
*/
package drag

import (
	"math"

	"github.com/Amankrah/goclassify/geom"
)

const (
	// StokesCutoff is the diameter below which the force kernel takes the
	// pure Stokes path instead of the full correlation.
	StokesCutoff = 50e-6

	// MinSpeed is the relative speed below which drag is treated as zero.
	MinSpeed = 1e-8

	// minRe keeps the Stokes branch finite for vanishing Reynolds number.
	minRe = 1e-3
)

// Reynolds returns the particle Reynolds number for a sphere of diameter d
// moving at the given speed relative to the fluid.
func Reynolds(speed, d, rhoAir, muAir float64) float64 {
	return rhoAir * speed * d / muAir
}

// Coefficient returns the drag coefficient at Reynolds number re.
func Coefficient(re float64) float64 {
	if re < 0.1 {
		return 24 / math.Max(re, minRe)
	} else if re < 1000 {
		return 24 / re * (1 + 0.15*math.Pow(re, 0.687))
	}
	return 0.44
}

// Force returns the drag force on a sphere of diameter d moving at vrel
// relative to the fluid, using the full three-regime correlation. The force
// opposes vrel.
func Force(vrel geom.Vec, d, rhoAir, muAir float64) geom.Vec {
	speed := vrel.Len()
	if speed < MinSpeed {
		return geom.Vec{}
	}

	re := Reynolds(speed, d, rhoAir, muAir)
	cd := Coefficient(re)
	area := math.Pi * d * d / 4
	mag := 0.5 * cd * rhoAir * speed * speed * area

	return vrel.Scale(-mag / speed)
}

// StokesForce returns the creeping-flow drag -3*pi*mu*d*vrel. It agrees
// with Force to within the Reynolds clamp whenever Re < 0.1 and is cheaper
// to evaluate, so the force kernel uses it for diameters below
// StokesCutoff.
func StokesForce(vrel geom.Vec, d, muAir float64) geom.Vec {
	return vrel.Scale(-3 * math.Pi * muAir * d)
}

// CutSize returns the theoretical cut diameter of a selector wheel with
// radius r and band height h, spinning at omega with air flow q. It comes
// from balancing Stokes drag against the centrifugal force at the wheel
// edge:
//
//	d50 = sqrt(9*mu*q / (pi*rhoP*omega^2*r^2*h))
func CutSize(muAir, q, rhoP, omega, r, h float64) float64 {
	return math.Sqrt(9 * muAir * q / (math.Pi * rhoP * omega * omega * r * r * h))
}

// OmegaForCutSize inverts CutSize, returning the rotor angular velocity
// that puts the cut at diameter d50.
func OmegaForCutSize(d50, muAir, q, rhoP, r, h float64) float64 {
	return math.Sqrt(9 * muAir * q / (d50 * d50 * math.Pi * rhoP * r * r * h))
}

// FlowForCutSize inverts CutSize, returning the air flow that puts the cut
// at diameter d50 for a fixed rotor speed.
func FlowForCutSize(d50, muAir, rhoP, omega, r, h float64) float64 {
	return d50 * d50 * math.Pi * rhoP * omega * omega * r * r * h / (9 * muAir)
}

// SettlingVelocity returns the terminal Stokes settling velocity of a
// sphere of diameter d and density rhoP in still air.
func SettlingVelocity(d, rhoP, rhoAir, muAir, g float64) float64 {
	return (rhoP - rhoAir) * g * d * d / (18 * muAir)
}

// StokesNumber returns the particle Stokes number for a flow with
// characteristic speed v and length l. Particles with St << 1 trace the
// flow; St >> 1 particles cross it.
func StokesNumber(d, rhoP, muAir, v, l float64) float64 {
	tau := rhoP * d * d / (18 * muAir)
	return tau * v / l
}
