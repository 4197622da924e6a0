/*package geom contains the classifier chamber geometry and the small amount
of vector math the simulation kernels need.

All lengths are in meters. The coordinate origin sits on the rotor axis at
the junction between the cylindrical chamber and the lower cone, with z
increasing upward.
*/
package geom

import (
	"fmt"
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Add returns v + u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns v - u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns a*v.
func (v Vec) Scale(a float64) Vec {
	return Vec{a * v[0], a * v[1], a * v[2]}
}

// Dot returns the inner product of v and u.
func (v Vec) Dot(u Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Len returns |v|.
func (v Vec) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Radius returns the cylindrical radius of v, i.e. its distance from the
// z axis.
func (v Vec) Radius() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// RadialSplit decomposes the xy part of v into a radial and a tangential
// component relative to the unit direction (c, s) = (cos t, sin t).
func RadialSplit(v Vec, c, s float64) (vr, vt float64) {
	vr = v[0]*c + v[1]*s
	vt = -v[0]*s + v[1]*c
	return vr, vt
}

// RadialJoin recomposes cylindrical velocity components into a Cartesian
// vector. It is the inverse of RadialSplit.
func RadialJoin(vr, vt, vz, c, s float64) Vec {
	return Vec{vr*c - vt*s, vr*s + vt*c, vz}
}

// Chamber holds the scalar boundary parameters of an air classifier: the
// cylindrical chamber, the selector wheel band, the distributor plate, the
// two outlets, the lower cone, and the drive shaft. The simulation never
// consumes meshes, only these scalars.
type Chamber struct {
	// Cylindrical section.
	Radius, Height float64

	// Selector wheel: radius, band center z, and band height.
	SelectorRadius float64
	SelectorZ      float64
	SelectorHeight float64

	// Distributor plate the feed lands on.
	DistributorZ, DistributorRadius float64

	// Outlets. The fines outlet sits at the chamber top, the coarse outlet
	// at the cone apex (negative z).
	FinesZ, FinesRadius   float64
	CoarseZ, CoarseRadius float64

	// Lower cone depth below z = 0.
	ConeHeight float64

	// Drive shaft running down the axis above the cone.
	ShaftRadius float64
}

// DefaultChamber returns the reference 1 m classifier geometry: a 60 degree
// cone, a 200 mm selector wheel with a 100 mm band centered at z = 0.75,
// and 150 mm outlets top and bottom.
func DefaultChamber() Chamber {
	return Chamber{
		Radius: 0.5, Height: 1.2,
		SelectorRadius: 0.1, SelectorZ: 0.75, SelectorHeight: 0.1,
		DistributorZ: 0.5, DistributorRadius: 0.175,
		FinesZ: 1.2, FinesRadius: 0.075,
		CoarseZ: -0.866, CoarseRadius: 0.075,
		ConeHeight:  0.866,
		ShaftRadius: 0.025,
	}
}

// SelectorZMin returns the bottom of the selector band.
func (ch *Chamber) SelectorZMin() float64 {
	return ch.SelectorZ - ch.SelectorHeight/2
}

// SelectorZMax returns the top of the selector band.
func (ch *Chamber) SelectorZMax() float64 {
	return ch.SelectorZ + ch.SelectorHeight/2
}

// ConeRadiusAt returns the cone's interior radius at height z, interpolating
// between the chamber radius at z = 0 and zero at the apex. Callers clamp
// the result to whatever floor they need.
func (ch *Chamber) ConeRadiusAt(z float64) float64 {
	return ch.Radius * (ch.ConeHeight + z) / ch.ConeHeight
}

// Area returns the cross section of the cylindrical chamber.
func (ch *Chamber) Area() float64 {
	return math.Pi * ch.Radius * ch.Radius
}

// CentralArea returns the cross section inside the selector radius.
func (ch *Chamber) CentralArea() float64 {
	return math.Pi * ch.SelectorRadius * ch.SelectorRadius
}

// AnnularArea returns the cross section between the selector radius and the
// chamber wall.
func (ch *Chamber) AnnularArea() float64 {
	return math.Pi * (ch.Radius*ch.Radius -
		ch.SelectorRadius*ch.SelectorRadius)
}

// CheckInit validates the chamber, returning an error naming the first
// offending field. A Chamber must pass CheckInit before the simulation
// starts.
func (ch *Chamber) CheckInit() error {
	if ch.Radius <= 0 {
		return fmt.Errorf("Chamber Radius must be positive, but is %g.",
			ch.Radius)
	}
	if ch.Height <= 0 {
		return fmt.Errorf("Chamber Height must be positive, but is %g.",
			ch.Height)
	}

	if ch.SelectorRadius <= 0 || ch.SelectorRadius >= ch.Radius {
		return fmt.Errorf(
			"SelectorRadius must be in (0, %g), but is %g.",
			ch.Radius, ch.SelectorRadius,
		)
	}
	if ch.SelectorHeight <= 0 {
		return fmt.Errorf("SelectorHeight must be positive, but is %g.",
			ch.SelectorHeight)
	}
	if ch.SelectorZMin() < 0 || ch.SelectorZMax() > ch.Height {
		return fmt.Errorf(
			"Selector band [%g, %g] must lie inside the chamber [0, %g].",
			ch.SelectorZMin(), ch.SelectorZMax(), ch.Height,
		)
	}

	if ch.DistributorZ <= 0 || ch.DistributorZ >= ch.SelectorZMin() {
		return fmt.Errorf(
			"DistributorZ must be in (0, %g), but is %g.",
			ch.SelectorZMin(), ch.DistributorZ,
		)
	}
	if ch.DistributorRadius <= 0 || ch.DistributorRadius >= ch.Radius {
		return fmt.Errorf(
			"DistributorRadius must be in (0, %g), but is %g.",
			ch.Radius, ch.DistributorRadius,
		)
	}

	if ch.FinesRadius <= 0 || ch.FinesRadius >= ch.Radius {
		return fmt.Errorf(
			"FinesRadius must be in (0, %g), but is %g.",
			ch.Radius, ch.FinesRadius,
		)
	}
	if ch.FinesZ < ch.SelectorZMax() {
		return fmt.Errorf(
			"FinesZ must be at or above the selector band top %g, but is %g.",
			ch.SelectorZMax(), ch.FinesZ,
		)
	}

	if ch.ConeHeight <= 0 {
		return fmt.Errorf("ConeHeight must be positive, but is %g.",
			ch.ConeHeight)
	}
	if ch.CoarseRadius <= 0 || ch.CoarseRadius >= ch.Radius {
		return fmt.Errorf(
			"CoarseRadius must be in (0, %g), but is %g.",
			ch.Radius, ch.CoarseRadius,
		)
	}
	if ch.CoarseZ >= 0 || ch.CoarseZ < -ch.ConeHeight {
		return fmt.Errorf(
			"CoarseZ must be in [%g, 0), but is %g.",
			-ch.ConeHeight, ch.CoarseZ,
		)
	}

	if ch.ShaftRadius < 0 || ch.ShaftRadius >= ch.SelectorRadius {
		return fmt.Errorf(
			"ShaftRadius must be in [0, %g), but is %g.",
			ch.SelectorRadius, ch.ShaftRadius,
		)
	}

	return nil
}
