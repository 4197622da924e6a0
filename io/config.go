package io

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/Amankrah/goclassify"
	"github.com/Amankrah/goclassify/feed"
	"github.com/Amankrah/goclassify/flow"
	"github.com/Amankrah/goclassify/geom"
)

const ExampleClassifierFile = `[Run]

#######################
# Required Parameters #
#######################

# Number of feed particles tracked through the chamber.
Particles = 2000

# Simulated time in seconds.
Duration = 5.0

#######################
# Optional Parameters #
#######################

# Integration time step in seconds.
# TimeStep = 1e-3

# Simulated seconds between rows of the time series output. Values below
# TimeStep sample every step.
# SaveInterval = 0.05

# Seed for the feed draw and the turbulence streams. Runs with the same seed
# and parameters are bit for bit identical at any thread count.
# Seed = 42

# Worker goroutines used by the simulation kernels. 0 means one per core.
# Threads = 0

# Directory which the series, snapshot, and report files are written to.
# Output = path/to/output/dir

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out

[Geometry]

# All lengths are in meters. z = 0 sits at the junction between the
# cylindrical chamber and the lower cone, with z increasing upward.

#######################
# Required Parameters #
#######################

# Cylindrical chamber.
Radius = 0.5
Height = 1.2

# Selector wheel radius and the center and height of its band.
SelectorRadius = 0.2
SelectorZ = 0.75
SelectorHeight = 0.1

# Distributor plate the feed lands on.
DistributorZ = 0.5
DistributorRadius = 0.175

#######################
# Optional Parameters #
#######################

# Angle of the lower cone measured from the horizontal, in degrees. The cone
# depth is Radius * tan(ConeAngle) and the coarse outlet sits at its apex.
# ConeAngle = 60

# Fines outlet at the chamber top. FinesZ defaults to Height and FinesRadius
# to 0.15 * Radius.
# FinesZ = 1.2
# FinesRadius = 0.075

# Coarse outlet radius at the cone apex. Defaults to 0.15 * Radius.
# CoarseRadius = 0.075

# Drive shaft running down the axis above the cone. 0 removes the shaft.
# ShaftRadius = 0.025

[Operating]

#######################
# Required Parameters #
#######################

RotorRPM = 3000

# Air flow in cubic meters per hour.
AirFlow = 2000

#######################
# Optional Parameters #
#######################

# Fluid properties. Defaults are standard air at 20 C.
# AirDensity = 1.204
# AirViscosity = 1.81e-5

# Gravity in m/s^2.
# Gravity = 9.81

# Fractional random perturbation of the air velocity seen by each particle,
# in [0, 1]. 0 disables turbulence.
# Turbulence = 0.2

[Feed]

# Preset feed covering both classes and the mixing fraction. YellowPea is
# currently the only preset: 23% protein fines in starch. When Preset is
# set, the ClassA and ClassB sections are ignored.
# Preset = YellowPea

# Number fraction of class A particles in (0, 1]. Required without Preset.
FracA = 0.23

[ClassA]

# Class A is the fine target. Either name a built-in Material, point
# SizeTable at a measured size distribution, or describe a truncated normal
# explicitly. Diameters are in microns, densities in kg/m^3.

Material = Protein

# SizeTable = path/to/sizes.txt
# SizeColumn = 0

# Density = 1350
# MeanDiameter = 10
# StdDiameter = 5
# MinDiameter = 2
# MaxDiameter = 20
# Moisture = 0.10

[ClassB]

Material = Starch
`

// RunConfig mirrors the [Run] section of a classifier config file.
type RunConfig struct {
	// Required
	Particles int
	Duration  float64

	// Optional
	TimeStep     float64
	SaveInterval float64
	Seed         int
	Threads      int

	Output               string
	LogFile, ProfileFile string
}

func (run *RunConfig) ValidOutput() bool {
	return run.Output != ""
}
func (run *RunConfig) ValidLogFile() bool {
	return run.LogFile != ""
}
func (run *RunConfig) ValidProfileFile() bool {
	return run.ProfileFile != ""
}

func (run *RunConfig) CheckInit() error {
	if run.Particles <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Particles count in [Run], but got %d.",
			run.Particles,
		)
	} else if run.Duration <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Duration in [Run], but got %g.",
			run.Duration,
		)
	} else if run.TimeStep <= 0 {
		return fmt.Errorf(
			"TimeStep in [Run] must be positive, but is %g.", run.TimeStep,
		)
	} else if run.SaveInterval < 0 {
		return fmt.Errorf(
			"SaveInterval in [Run] must not be negative, but is %g.",
			run.SaveInterval,
		)
	} else if run.Seed < 0 {
		return fmt.Errorf(
			"Seed in [Run] must not be negative, but is %d.", run.Seed,
		)
	} else if run.Threads < 0 {
		return fmt.Errorf(
			"Threads in [Run] must not be negative, but is %d.", run.Threads,
		)
	}
	return nil
}

// Config converts the section to simulation run parameters. CheckInit must
// have passed first.
func (run *RunConfig) Config() goclassify.Config {
	return goclassify.Config{
		N:            run.Particles,
		Dt:           run.TimeStep,
		Duration:     run.Duration,
		SaveInterval: run.SaveInterval,
		Seed:         uint64(run.Seed),
		Workers:      run.Threads,
	}
}

// GeometryConfig mirrors the [Geometry] section. All lengths are in meters
// and ConeAngle is in degrees.
type GeometryConfig struct {
	// Required
	Radius, Height                            float64
	SelectorRadius, SelectorZ, SelectorHeight float64
	DistributorZ, DistributorRadius           float64

	// Optional
	ConeAngle    float64
	FinesZ       float64
	FinesRadius  float64
	CoarseRadius float64
	ShaftRadius  float64
}

// CheckInit validates the section and fills the geometry dependent
// defaults: FinesZ from Height and the outlet radii from Radius.
func (g *GeometryConfig) CheckInit() error {
	if g.Radius <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Radius in [Geometry], but got %g.",
			g.Radius,
		)
	} else if g.Height <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Height in [Geometry], but got %g.",
			g.Height,
		)
	} else if g.SelectorRadius <= 0 {
		return fmt.Errorf(
			"Need to specify a positive SelectorRadius in [Geometry], "+
				"but got %g.", g.SelectorRadius,
		)
	} else if g.SelectorZ <= 0 {
		return fmt.Errorf(
			"Need to specify a positive SelectorZ in [Geometry], but got %g.",
			g.SelectorZ,
		)
	} else if g.SelectorHeight <= 0 {
		return fmt.Errorf(
			"Need to specify a positive SelectorHeight in [Geometry], "+
				"but got %g.", g.SelectorHeight,
		)
	} else if g.DistributorZ <= 0 {
		return fmt.Errorf(
			"Need to specify a positive DistributorZ in [Geometry], "+
				"but got %g.", g.DistributorZ,
		)
	} else if g.DistributorRadius <= 0 {
		return fmt.Errorf(
			"Need to specify a positive DistributorRadius in [Geometry], "+
				"but got %g.", g.DistributorRadius,
		)
	}

	if g.ConeAngle <= 0 || g.ConeAngle >= 90 {
		return fmt.Errorf(
			"ConeAngle must be in (0, 90) degrees, but is %g.", g.ConeAngle,
		)
	}

	if g.FinesZ == 0 {
		g.FinesZ = g.Height
	}
	if g.FinesRadius == 0 {
		g.FinesRadius = 0.15 * g.Radius
	}
	if g.CoarseRadius == 0 {
		g.CoarseRadius = 0.15 * g.Radius
	}
	if g.ShaftRadius < 0 {
		return fmt.Errorf(
			"ShaftRadius must not be negative, but is %g.", g.ShaftRadius,
		)
	}

	return nil
}

// Chamber converts the section to a chamber. The cone depth comes from the
// cone angle and the coarse outlet sits at the cone apex. CheckInit must
// have passed first.
func (g *GeometryConfig) Chamber() geom.Chamber {
	coneHeight := g.Radius * math.Tan(g.ConeAngle*math.Pi/180)
	return geom.Chamber{
		Radius: g.Radius, Height: g.Height,
		SelectorRadius: g.SelectorRadius, SelectorZ: g.SelectorZ,
		SelectorHeight: g.SelectorHeight,
		DistributorZ: g.DistributorZ, DistributorRadius: g.DistributorRadius,
		FinesZ: g.FinesZ, FinesRadius: g.FinesRadius,
		CoarseZ: -coneHeight, CoarseRadius: g.CoarseRadius,
		ConeHeight:  coneHeight,
		ShaftRadius: g.ShaftRadius,
	}
}

// OperatingConfig mirrors the [Operating] section. The rotor speed is in
// RPM and the air flow in m^3/h.
type OperatingConfig struct {
	// Required
	RotorRPM float64
	AirFlow  float64

	// Optional
	AirDensity   float64
	AirViscosity float64
	Gravity      float64
	Turbulence   float64
}

func (op *OperatingConfig) CheckInit() error {
	if op.RotorRPM < 0 {
		return fmt.Errorf(
			"RotorRPM in [Operating] must not be negative, but is %g.",
			op.RotorRPM,
		)
	} else if op.AirFlow <= 0 {
		return fmt.Errorf(
			"Need to specify a positive AirFlow in [Operating], but got %g.",
			op.AirFlow,
		)
	} else if op.AirDensity <= 0 {
		return fmt.Errorf(
			"AirDensity in [Operating] must be positive, but is %g.",
			op.AirDensity,
		)
	} else if op.AirViscosity <= 0 {
		return fmt.Errorf(
			"AirViscosity in [Operating] must be positive, but is %g.",
			op.AirViscosity,
		)
	} else if op.Gravity < 0 {
		return fmt.Errorf(
			"Gravity in [Operating] must not be negative, but is %g.",
			op.Gravity,
		)
	} else if op.Turbulence < 0 || op.Turbulence > 1 {
		return fmt.Errorf(
			"Turbulence in [Operating] must be in [0, 1], but is %g.",
			op.Turbulence,
		)
	}
	return nil
}

// Conditions converts the section to operating conditions in SI units.
// CheckInit must have passed first.
func (op *OperatingConfig) Conditions() flow.Conditions {
	return flow.Conditions{
		Omega: flow.RPM(op.RotorRPM),
		Flow:  flow.CubicMetersPerHour(op.AirFlow),

		AirDensity:   op.AirDensity,
		AirViscosity: op.AirViscosity,
		Gravity:      op.Gravity,
		Turbulence:   op.Turbulence,
	}
}

// FeedConfig mirrors the [Feed] section.
type FeedConfig struct {
	// Optional
	Preset string
	FracA  float64
}

func (f *FeedConfig) ValidPreset() bool {
	return f.Preset != ""
}

// ClassConfig mirrors the [ClassA] and [ClassB] sections. Diameters are in
// microns. Material names a built-in class and overrides everything else;
// SizeTable fits the distribution to a measured size table instead.
type ClassConfig struct {
	Material string

	SizeTable  string
	SizeColumn int

	Density                   float64
	MeanDiameter, StdDiameter float64
	MinDiameter, MaxDiameter  float64
	Moisture                  float64
}

// Class builds the feed class the section describes.
func (c *ClassConfig) Class(name string) (feed.Class, error) {
	switch strings.ToLower(strings.Trim(c.Material, " ")) {
	case "protein":
		return feed.Protein(), nil
	case "starch":
		return feed.Starch(), nil
	case "":
	default:
		return feed.Class{}, fmt.Errorf(
			"Material of [%s] must be one of [Protein | Starch], but is "+
				"'%s'.", name, c.Material,
		)
	}

	if c.SizeTable != "" {
		cl, err := feed.FitClass(
			c.SizeTable, c.SizeColumn, c.Density, c.Moisture,
		)
		if err != nil {
			return feed.Class{}, fmt.Errorf("[%s]: %s", name, err.Error())
		}
		return cl, nil
	}

	cl := feed.Class{
		Density:      c.Density,
		MeanDiameter: c.MeanDiameter * 1e-6,
		StdDiameter:  c.StdDiameter * 1e-6,
		MinDiameter:  c.MinDiameter * 1e-6,
		MaxDiameter:  c.MaxDiameter * 1e-6,
		Moisture:     c.Moisture,
	}
	if err := cl.CheckInit(); err != nil {
		return feed.Class{}, fmt.Errorf("[%s]: %s", name, err.Error())
	}
	return cl, nil
}

// ClassifierWrapper collects every section of a classifier config file.
type ClassifierWrapper struct {
	Run       RunConfig
	Geometry  GeometryConfig
	Operating OperatingConfig
	Feed      FeedConfig
	ClassA    ClassConfig
	ClassB    ClassConfig
}

// DefaultClassifierWrapper returns a wrapper with the optional parameters
// set to their defaults, ready for gcfg to overwrite.
func DefaultClassifierWrapper() *ClassifierWrapper {
	w := &ClassifierWrapper{}

	w.Run.TimeStep = 1e-3
	w.Run.SaveInterval = 0.05
	w.Run.Seed = 42

	w.Geometry.ConeAngle = 60

	w.Operating.AirDensity = 1.204
	w.Operating.AirViscosity = 1.81e-5
	w.Operating.Gravity = 9.81

	return w
}

// Mixture builds the feed mixture the [Feed], [ClassA], and [ClassB]
// sections describe.
func (w *ClassifierWrapper) Mixture() (feed.Mixture, error) {
	if w.Feed.ValidPreset() {
		switch strings.ToLower(strings.Trim(w.Feed.Preset, " ")) {
		case "yellowpea":
			return feed.YellowPea(), nil
		}
		return feed.Mixture{}, fmt.Errorf(
			"Preset in [Feed] must be YellowPea, but is '%s'.", w.Feed.Preset,
		)
	}

	a, err := w.ClassA.Class("ClassA")
	if err != nil {
		return feed.Mixture{}, err
	}
	b, err := w.ClassB.Class("ClassB")
	if err != nil {
		return feed.Mixture{}, err
	}

	mix := feed.Mixture{A: a, B: b, FracA: w.Feed.FracA}
	if err := mix.CheckInit(); err != nil {
		return feed.Mixture{}, err
	}
	return mix, nil
}

func (w *ClassifierWrapper) CheckInit() error {
	if err := w.Run.CheckInit(); err != nil {
		return err
	}
	if err := w.Geometry.CheckInit(); err != nil {
		return err
	}
	if err := w.Operating.CheckInit(); err != nil {
		return err
	}
	return nil
}

// ReadConfig parses and validates the classifier config file at fname. The
// feed sections are checked lazily by Mixture, since fitting a class may
// touch the file system.
func ReadConfig(fname string) (*ClassifierWrapper, error) {
	w := DefaultClassifierWrapper()

	if err := gcfg.ReadFileInto(w, fname); err != nil {
		return nil, err
	}
	if err := w.CheckInit(); err != nil {
		return nil, err
	}

	return w, nil
}
