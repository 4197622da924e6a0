package goclassify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amankrah/goclassify/drag"
	"github.com/Amankrah/goclassify/feed"
	"github.com/Amankrah/goclassify/flow"
	"github.com/Amankrah/goclassify/geom"
)

// rotorField is solid body rotation with no radial or axial component.
type rotorField struct {
	omega float64
}

func (f rotorField) VelocityAt(x geom.Vec, t float64) geom.Vec {
	return geom.Vec{-f.omega * x[1], f.omega * x[0], 0}
}

func testSim(t *testing.T, n int) *Simulator {
	cfg := DefaultConfig()
	cfg.N = n
	cfg.Workers = 1

	sim, err := NewSimulator(
		geom.DefaultChamber(), flow.DefaultConditions(), feed.YellowPea(), cfg,
	)
	require.NoError(t, err)
	return sim
}

// setParticle overwrites slot i with a particle of the given diameter and
// density at rest at position p.
func setParticle(e *Ensemble, i int, p geom.Vec, d, rho float64) {
	e.Positions[i] = p
	e.Velocities[i] = geom.Vec{}
	e.Diameters[i] = d
	e.Densities[i] = rho
	e.Masses[i] = rho * math.Pi / 6 * d * d * d
}

func TestForceIsDragPlusGravity(t *testing.T) {
	sim := testSim(t, 4)
	con := sim.Conditions()
	sim.field = rotorField{con.Omega}

	e := sim.Ensemble()
	d := 10e-6
	setParticle(e, 0, geom.Vec{0.2, 0, 0.75}, d, 1400)

	sim.chanForce(0, sim.out)
	<-sim.out

	vAir := geom.Vec{0, con.Omega * 0.2, 0}
	want := drag.StokesForce(e.Velocities[0].Sub(vAir), d, con.AirViscosity)
	want[2] -= con.Gravity * e.Masses[0]

	assert.Equal(t, want, e.Forces[0], "force is not drag plus gravity")
	assert.Equal(t, 0.0, e.Forces[0][0],
		"rotation alone induced a radial force on a resting particle")
}

func TestForceRegimeSplit(t *testing.T) {
	sim := testSim(t, 4)
	con := sim.Conditions()
	sim.field = rotorField{con.Omega}

	p := geom.Vec{0.3, 0, 0.75}
	setParticle(sim.e, 0, p, 40e-6, 1400)
	setParticle(sim.e, 1, p, 60e-6, 1400)

	sim.chanForce(0, sim.out)
	<-sim.out

	vrel := geom.Vec{0, -con.Omega * 0.3, 0}

	want := drag.StokesForce(vrel, 40e-6, con.AirViscosity)
	want[2] -= con.Gravity * sim.e.Masses[0]
	assert.Equal(t, want, sim.e.Forces[0], "small particle not on Stokes path")

	want = drag.Force(vrel, 60e-6, con.AirDensity, con.AirViscosity)
	want[2] -= con.Gravity * sim.e.Masses[1]
	assert.Equal(t, want, sim.e.Forces[1], "large particle not on full path")
}

func TestForceInactiveZero(t *testing.T) {
	sim := testSim(t, 4)
	e := sim.Ensemble()

	e.Forces[2] = geom.Vec{1, 2, 3}
	e.MarkLost(2)

	sim.chanForce(0, sim.out)
	<-sim.out

	assert.Equal(t, geom.Vec{}, e.Forces[2], "inactive particle keeps force")
}

func TestTurbulenceReproducible(t *testing.T) {
	con := flow.DefaultConditions()
	con.Turbulence = 0.3

	cfg := DefaultConfig()
	cfg.N = 64
	cfg.Workers = 1

	sim1, err := NewSimulator(geom.DefaultChamber(), con, feed.YellowPea(), cfg)
	require.NoError(t, err)
	sim2, err := NewSimulator(geom.DefaultChamber(), con, feed.YellowPea(), cfg)
	require.NoError(t, err)

	sim1.chanForce(0, sim1.out)
	<-sim1.out
	sim2.chanForce(0, sim2.out)
	<-sim2.out

	assert.Equal(t, sim1.e.Forces, sim2.e.Forces,
		"equal seeds draw different turbulence")

	// A later step draws different perturbations.
	sim2.step++
	sim2.chanForce(0, sim2.out)
	<-sim2.out
	assert.NotEqual(t, sim1.e.Forces, sim2.e.Forces,
		"turbulence does not vary with the step")
}
