/*package feed builds the particle populations fed into the classifier.

A Class is one material population with a truncated normal size
distribution and a moisture-corrected density. A Mixture blends two classes
by number fraction, the way yellow pea flour blends protein and starch.
The physics kernels never read the class label; it exists so the analysis
can measure how well the two populations separate.
*/
package feed

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Amankrah/goclassify/geom"
	"github.com/Amankrah/goclassify/rand"
)

const (
	waterDensity = 1000.0

	// Feed ring bounds as fractions of the distributor radius.
	feedRingInner = 0.2
	feedRingOuter = 0.8

	// Drop height above the distributor plate.
	feedDropHeight = 0.01

	// Seed velocity of freshly fed particles.
	feedOutwardSpeed = 0.1
	feedDownSpeed    = 0.05
)

// Kind labels which class a particle was drawn from.
type Kind int

const (
	TypeA Kind = iota
	TypeB
)

func (k Kind) String() string {
	switch k {
	case TypeA:
		return "TypeA"
	case TypeB:
		return "TypeB"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Class describes one particle population. Diameters are in meters,
// densities in kg/m^3, moisture as a mass fraction.
type Class struct {
	Density float64

	MeanDiameter, StdDiameter float64
	MinDiameter, MaxDiameter  float64

	Moisture float64
}

// Protein returns the fine fraction of yellow pea flour.
func Protein() Class {
	return Class{
		Density:      1350,
		MeanDiameter: 10e-6, StdDiameter: 5e-6,
		MinDiameter: 2e-6, MaxDiameter: 20e-6,
		Moisture: 0.10,
	}
}

// Starch returns the coarse fraction of yellow pea flour.
func Starch() Class {
	return Class{
		Density:      1520,
		MeanDiameter: 30e-6, StdDiameter: 10e-6,
		MinDiameter: 15e-6, MaxDiameter: 60e-6,
		Moisture: 0.10,
	}
}

// Monodisperse returns a narrow class centered on diameter d, used for
// single-size calibration runs.
func Monodisperse(d, density float64) Class {
	return Class{
		Density:      density,
		MeanDiameter: d, StdDiameter: 0.1 * d,
		MinDiameter: 0.5 * d, MaxDiameter: 1.5 * d,
		Moisture: 0,
	}
}

// EffectiveDensity returns the particle density corrected for moisture,
// with the water filling pores at 1000 kg/m^3.
func (c *Class) EffectiveDensity() float64 {
	return c.Density*(1-c.Moisture) + waterDensity*c.Moisture
}

// SampleDiameter draws one diameter from the class's truncated normal
// distribution by rejection.
func (c *Class) SampleDiameter(gen *rand.Generator) float64 {
	for {
		d := gen.Normal(c.MeanDiameter, c.StdDiameter)
		if d >= c.MinDiameter && d <= c.MaxDiameter {
			return d
		}
	}
}

// CheckInit validates the class, returning an error naming the first
// offending field.
func (c *Class) CheckInit() error {
	if c.Density <= 0 {
		return fmt.Errorf("Density must be positive, but is %g.", c.Density)
	}
	if c.MinDiameter <= 0 {
		return fmt.Errorf("MinDiameter must be positive, but is %g.",
			c.MinDiameter)
	}
	if c.MaxDiameter <= c.MinDiameter {
		return fmt.Errorf(
			"MaxDiameter must be above MinDiameter = %g, but is %g.",
			c.MinDiameter, c.MaxDiameter,
		)
	}
	if c.MeanDiameter < c.MinDiameter || c.MeanDiameter > c.MaxDiameter {
		return fmt.Errorf(
			"MeanDiameter must be in [%g, %g], but is %g.",
			c.MinDiameter, c.MaxDiameter, c.MeanDiameter,
		)
	}
	if c.StdDiameter <= 0 {
		return fmt.Errorf("StdDiameter must be positive, but is %g.",
			c.StdDiameter)
	}
	if c.Moisture < 0 || c.Moisture >= 1 {
		return fmt.Errorf("Moisture must be in [0, 1), but is %g.",
			c.Moisture)
	}
	return nil
}

// FitClass builds a Class from a measured size table. Column dCol must
// hold diameters in microns, one sampled particle per row. The mean and
// standard deviation come from the sample moments and the bounds from the
// observed extremes.
func FitClass(fname string, dCol int, density, moisture float64) (Class, error) {
	cols, err := table.ReadTable(fname, []int{dCol}, nil)
	if err != nil {
		return Class{}, err
	}
	ds := cols[0]
	if len(ds) < 2 {
		return Class{}, fmt.Errorf(
			"Size table %s needs at least 2 rows, but has %d.",
			fname, len(ds),
		)
	}

	c := Class{
		Density:      density,
		MeanDiameter: stat.Mean(ds, nil) * 1e-6,
		StdDiameter:  stat.StdDev(ds, nil) * 1e-6,
		MinDiameter:  floats.Min(ds) * 1e-6,
		MaxDiameter:  floats.Max(ds) * 1e-6,
		Moisture:     moisture,
	}
	return c, c.CheckInit()
}

// Mixture blends two classes by number fraction.
type Mixture struct {
	A, B Class

	// FracA is the number fraction of class A particles in (0, 1].
	FracA float64
}

// YellowPea returns the reference feed: 23% protein, the rest starch.
func YellowPea() Mixture {
	return Mixture{A: Protein(), B: Starch(), FracA: 0.23}
}

// CheckInit validates both classes and the mixing fraction.
func (mix *Mixture) CheckInit() error {
	if err := mix.A.CheckInit(); err != nil {
		return fmt.Errorf("Class A: %s", err.Error())
	}
	if err := mix.B.CheckInit(); err != nil {
		return fmt.Errorf("Class B: %s", err.Error())
	}
	if mix.FracA <= 0 || mix.FracA > 1 {
		return fmt.Errorf("FracA must be in (0, 1], but is %g.", mix.FracA)
	}
	return nil
}

// Sample draws n particles from the mixture in shuffled order, returning
// their diameters, effective densities, and class labels.
func (mix *Mixture) Sample(
	n int, gen *rand.Generator,
) (ds, rhos []float64, kinds []Kind) {
	nA := int(float64(n) * mix.FracA)

	ds = make([]float64, n)
	rhos = make([]float64, n)
	kinds = make([]Kind, n)

	rhoA, rhoB := mix.A.EffectiveDensity(), mix.B.EffectiveDensity()
	for i := 0; i < n; i++ {
		if i < nA {
			ds[i], rhos[i], kinds[i] = mix.A.SampleDiameter(gen), rhoA, TypeA
		} else {
			ds[i], rhos[i], kinds[i] = mix.B.SampleDiameter(gen), rhoB, TypeB
		}
	}

	// Fisher-Yates shuffle so the two classes interleave.
	for i := n - 1; i > 0; i-- {
		j := gen.UniformInt(0, i+1)
		ds[i], ds[j] = ds[j], ds[i]
		rhos[i], rhos[j] = rhos[j], rhos[i]
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}

	return ds, rhos, kinds
}

// Place draws an initial position and seed velocity for one fed particle.
// The feed lands in a ring above the distributor plate and starts with a
// slight outward and downward drift.
func Place(
	gen *rand.Generator, distributorZ, distributorRadius float64,
) (pos, vel geom.Vec) {
	angle := gen.Uniform(0, 2*math.Pi)
	r := gen.Uniform(
		feedRingInner*distributorRadius, feedRingOuter*distributorRadius,
	)
	c, s := math.Cos(angle), math.Sin(angle)

	pos = geom.Vec{r * c, r * s, distributorZ + feedDropHeight}
	vel = geom.Vec{feedOutwardSpeed * c, feedOutwardSpeed * s, -feedDownSpeed}
	return pos, vel
}
