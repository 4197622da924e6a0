/*package flow models the steady air velocity field inside the classifier
chamber.

The field is a closed form in cylindrical coordinates. Radial inflow comes
from mass continuity through the selector band, the swirl is a Rankine
vortex locked to the rotor, and the axial flow balances the same volumetric
rate through each zone's cross section: up through the cone and the central
core, down through the outer annulus above the selector. Zone edges are
sharp; the small discontinuities there are part of the model.
*/
package flow

import (
	"fmt"
	"math"

	"github.com/Amankrah/goclassify/geom"
)

const (
	// RadiusFloor clamps the cylindrical radius before any 1/r term.
	RadiusFloor = 0.01

	// MaxInflow caps the radial inflow speed near the selector axis [m/s].
	MaxInflow = 10.0

	// Fraction of the selector radius inside which the band inflow gives
	// way to the weak background flow.
	innerInflowFrac = 0.3

	// Background inflow strengths relative to full continuity, by zone.
	upperStrength = 0.3
	coneStrength  = 0.1
	lowerStrength = 0.05

	// Swirl decay outside the selector band: decaying fraction and
	// residual floor from the tangential inlets.
	swirlDecayFrac = 0.7
	swirlResidual  = 0.3

	// Width of the up/down transition ring as a fraction of the selector
	// radius.
	blendFrac = 0.1
)

// Conditions are the control board settings and fluid properties of a run.
type Conditions struct {
	Omega float64 // rotor angular velocity [rad/s]
	Flow  float64 // volumetric air flow [m^3/s]

	AirDensity   float64 // [kg/m^3]
	AirViscosity float64 // dynamic viscosity [Pa s]
	Gravity      float64 // [m/s^2]

	// Turbulence scales the random perturbation of the air velocity seen
	// by each particle. Zero disables it.
	Turbulence float64
}

// RPM converts a rotor speed in revolutions per minute to rad/s.
func RPM(rpm float64) float64 {
	return rpm * 2 * math.Pi / 60
}

// CubicMetersPerHour converts an air flow in m^3/h to m^3/s.
func CubicMetersPerHour(q float64) float64 {
	return q / 3600
}

// DefaultConditions returns the reference design point: 3000 RPM and
// 2000 m^3/h in standard air.
func DefaultConditions() Conditions {
	return Conditions{
		Omega:        RPM(3000),
		Flow:         CubicMetersPerHour(2000),
		AirDensity:   1.204,
		AirViscosity: 1.81e-5,
		Gravity:      9.81,
		Turbulence:   0,
	}
}

// CheckInit validates the operating conditions, returning an error naming
// the first offending field.
func (con *Conditions) CheckInit() error {
	if con.Omega < 0 {
		return fmt.Errorf("Omega must be non-negative, but is %g.", con.Omega)
	}
	if con.Flow <= 0 {
		return fmt.Errorf("Flow must be positive, but is %g.", con.Flow)
	}
	if con.AirDensity <= 0 {
		return fmt.Errorf("AirDensity must be positive, but is %g.",
			con.AirDensity)
	}
	if con.AirViscosity <= 0 {
		return fmt.Errorf("AirViscosity must be positive, but is %g.",
			con.AirViscosity)
	}
	if con.Gravity < 0 {
		return fmt.Errorf("Gravity must be non-negative, but is %g.",
			con.Gravity)
	}
	if con.Turbulence < 0 || con.Turbulence > 1 {
		return fmt.Errorf("Turbulence must be in [0, 1], but is %g.",
			con.Turbulence)
	}
	return nil
}

// Field evaluates the air velocity for one chamber and one set of operating
// conditions. Field is read-only after construction and safe for
// concurrent use.
type Field struct {
	ch  geom.Chamber
	con Conditions

	// Convenience variables.
	zMin, zMax, zCenter, height  float64
	aCentral, aAnnular, aChamber float64
}

// NewField creates a Field for the given chamber and conditions. Both are
// assumed to have passed their CheckInit.
func NewField(ch geom.Chamber, con Conditions) *Field {
	return &Field{
		ch: ch, con: con,
		zMin: ch.SelectorZMin(), zMax: ch.SelectorZMax(),
		zCenter: ch.SelectorZ, height: ch.SelectorHeight,
		aCentral: ch.CentralArea(),
		aAnnular: ch.AnnularArea(),
		aChamber: ch.Area(),
	}
}

// Conditions returns the operating conditions the field was built with.
func (f *Field) Conditions() Conditions { return f.con }

// VelocityAt returns the air velocity at p. The field is steady, so t is
// unused. Total on all of space: positions outside the machine get the
// velocity of whatever zone their coordinates fall in.
func (f *Field) VelocityAt(p geom.Vec, t float64) geom.Vec {
	x, y, z := p[0], p[1], p[2]

	r := math.Sqrt(x*x + y*y)
	if r < RadiusFloor {
		r = RadiusFloor
	}
	c, s := x/r, y/r

	inBand := z >= f.zMin-0.5*f.height && z <= f.zMax+0.5*f.height

	// Radial inflow from continuity, Q = 2*pi*r*h*v_r. Full strength
	// through the selector band, weak background flow elsewhere.
	var vr float64
	switch {
	case inBand && r > innerInflowFrac*f.ch.SelectorRadius:
		vr = -f.con.Flow / (2 * math.Pi * r * f.height)
		if vr < -MaxInflow {
			vr = -MaxInflow
		}
	case z > f.ch.DistributorZ && !inBand:
		vr = -f.con.Flow / (2 * math.Pi * r * f.ch.Radius) * upperStrength
	case z < 0:
		vr = -f.con.Flow / (2 * math.Pi * r * f.ch.Radius) * coneStrength
	default:
		vr = -f.con.Flow / (2 * math.Pi * r * f.ch.Radius) * lowerStrength
	}

	// Rankine vortex: solid body rotation inside the wheel, free vortex
	// outside, decaying with vertical distance from the band.
	var vt float64
	if r < f.ch.SelectorRadius {
		vt = f.con.Omega * r
	} else {
		vt = f.con.Omega * f.ch.SelectorRadius * f.ch.SelectorRadius / r
	}
	if !inBand {
		decay := math.Exp(-math.Abs(z-f.zCenter) / (2 * f.height))
		vt *= swirlDecayFrac*decay + swirlResidual
	}

	// Axial flow from continuity, v_z = Q/A. The up/down split at the
	// selector radius starts at the band bottom and is the separation
	// mechanism.
	var vz float64
	switch {
	case z < 0:
		cr := f.ch.ConeRadiusAt(z)
		if cr < RadiusFloor {
			cr = RadiusFloor
		}
		vz = f.con.Flow / (math.Pi * cr * cr)
	case z < f.zMin:
		vz = f.con.Flow / f.aChamber
	case inBand || z > f.zMax:
		up := f.con.Flow / f.aCentral
		down := -f.con.Flow / f.aAnnular
		ring := blendFrac * f.ch.SelectorRadius
		switch {
		case r < f.ch.SelectorRadius:
			vz = up
		case r < f.ch.SelectorRadius+ring:
			blend := (r - f.ch.SelectorRadius) / ring
			vz = up*(1-blend) + down*blend
		default:
			vz = down
		}
	}

	return geom.RadialJoin(vr, vt, vz, c, s)
}
