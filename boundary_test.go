package goclassify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amankrah/goclassify/geom"
)

func TestBounceCollectsFine(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	p := geom.Vec{0.02, 0, 1.25}
	setParticle(e, 0, p, 10e-6, 1400)
	e.Velocities[0] = geom.Vec{0, 0, 2}

	sim.bounce(0, 0.5)

	assert.False(t, e.Active[0], "collected particle still active")
	assert.Equal(t, OutletFine, e.Outlets[0])
	assert.Equal(t, 0.5, e.CollectionTimes[0])
	assert.Equal(t, p, e.CollectionPositions[0])
	assert.Equal(t, 1, e.FineCount())
}

func TestBounceCollectsCoarse(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	setParticle(e, 0, geom.Vec{0.03, 0.04, -0.9}, 40e-6, 1500)
	e.Velocities[0] = geom.Vec{0, 0, -1}

	sim.bounce(0, 1.25)

	assert.False(t, e.Active[0], "collected particle still active")
	assert.Equal(t, OutletCoarse, e.Outlets[0])
	assert.Equal(t, 1.25, e.CollectionTimes[0])
	assert.Equal(t, 1, e.CoarseCount())
}

func TestBounceTopPlate(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	// Outside the fines outlet, so the plate reflects instead of collecting.
	v0 := geom.Vec{0.1, 0.2, 1.5}
	setParticle(e, 0, geom.Vec{0.3, 0, 1.21}, 10e-6, 1400)
	e.Velocities[0] = v0

	sim.bounce(0, 0.5)

	require.True(t, e.Active[0], "plate contact retired the particle")

	want := geom.Vec{0.3, 0, sim.ch.FinesZ - 0.01}
	assert.Equal(t, want, e.Positions[0])
	assert.Equal(t, v0[0], e.Velocities[0][0], "vx changed at the plate")
	assert.Equal(t, v0[1], e.Velocities[0][1], "vy changed at the plate")
	assert.Equal(t, -math.Abs(v0[2])*restitution, e.Velocities[0][2])
}

func TestBounceConeApex(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	// Below the apex plane but too far out for the outlet.
	p0 := geom.Vec{0.1, 0, -0.9}
	v0 := geom.Vec{1, -2, -3}
	setParticle(e, 0, p0, 40e-6, 1500)
	e.Velocities[0] = v0

	sim.bounce(0, 0.5)

	require.True(t, e.Active[0], "apex contact retired the particle")
	assert.Equal(t, 0, e.CoarseCount())

	want := geom.Vec{p0[0] * 0.95, p0[1] * 0.95, sim.ch.CoarseZ + 0.01}
	assert.Equal(t, want, e.Positions[0])
	assert.Equal(t, v0[0]*0.5, e.Velocities[0][0])
	assert.Equal(t, v0[1]*0.5, e.Velocities[0][1])
	assert.Equal(t, -math.Abs(v0[2])*restitution, e.Velocities[0][2])
}

func TestBounceCylinderWall(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	// On the +x axis, so vx is the radial component and vy the swirl.
	p0 := geom.Vec{sim.ch.Radius, 0, 0.75}
	v0 := geom.Vec{2, 3, -1}
	setParticle(e, 0, p0, 10e-6, 1400)
	e.Velocities[0] = v0

	r0 := p0.Radius()
	sim.bounce(0, 0.5)

	require.True(t, e.Active[0], "wall contact retired the particle")

	scale := 0.98 * sim.ch.Radius / r0
	assert.Equal(t, geom.Vec{p0[0] * scale, 0, p0[2]}, e.Positions[0])

	want := geom.Vec{-v0[0] * restitution, v0[1], v0[2]}
	assert.Equal(t, want, e.Velocities[0], "swirl not kept at the wall")
}

func TestBounceConeWall(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	// Halfway down the cone the interior radius contracts to half the
	// chamber radius.
	z := -sim.ch.ConeHeight / 2
	coneR := sim.ch.ConeRadiusAt(z)
	require.True(t, coneR > sim.ch.CoarseRadius)

	p0 := geom.Vec{coneR, 0, z}
	v0 := geom.Vec{1, 0.5, -0.2}
	setParticle(e, 0, p0, 40e-6, 1500)
	e.Velocities[0] = v0

	r0 := p0.Radius()
	sim.bounce(0, 0.5)

	require.True(t, e.Active[0], "cone contact retired the particle")

	scale := 0.95 * coneR / math.Max(r0, 0.01)
	assert.Equal(t, p0[0]*scale, e.Positions[0][0])
	assert.Equal(t, z, e.Positions[0][2], "cone contact moved the particle in z")

	want := geom.Vec{-v0[0] * restitution * 0.5, v0[1], v0[2]*0.5 - 0.1}
	assert.Equal(t, want, e.Velocities[0])
	assert.True(t, e.Velocities[0][2] < v0[2], "cone did not bias downward")
}

func TestBounceShaft(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	p0 := geom.Vec{0.01, 0, 0.75}
	setParticle(e, 0, p0, 10e-6, 1400)
	setParticle(e, 1, p0, 10e-6, 1400)
	e.Velocities[0] = geom.Vec{-0.4, 0.2, 0.1}
	e.Velocities[1] = geom.Vec{0.5, 0, 0}

	r0 := p0.Radius()
	sim.bounce(0, 0.5)
	sim.bounce(1, 0.5)

	scale := 1.1 * sim.ch.ShaftRadius / r0
	want := geom.Vec{p0[0] * scale, 0, p0[2]}
	assert.Equal(t, want, e.Positions[0])
	assert.Equal(t, want, e.Positions[1])

	// Inward motion reflects, outward motion passes through.
	assert.Equal(t, geom.Vec{-(-0.4) * restitution, 0.2, 0.1}, e.Velocities[0])
	assert.Equal(t, geom.Vec{0.5, 0, 0}, e.Velocities[1])
}

func TestBounceOutletBeatsWall(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	// Widen the fines outlet until it overlaps the cylinder wall. A particle
	// matching both tests must be collected, not reflected.
	sim.ch.FinesRadius = 2 * sim.ch.Radius

	p := geom.Vec{sim.ch.Radius, 0, 1.25}
	setParticle(e, 0, p, 10e-6, 1400)
	e.Velocities[0] = geom.Vec{1, 1, 1}

	sim.bounce(0, 0.5)

	assert.False(t, e.Active[0], "particle bounced instead of collecting")
	assert.Equal(t, OutletFine, e.Outlets[0])
	assert.Equal(t, p, e.CollectionPositions[0], "wall rule moved the particle")
	assert.Equal(t, p, e.Positions[0])
}

func TestBounceFineBeatsCoarseZone(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	// Lower the top plate below the cone apex so a particle can sit in the
	// fine capture zone and the coarse redirect zone at once.
	sim.ch.FinesZ = sim.ch.CoarseZ - 0.1
	sim.ch.CoarseRadius = 0.01

	p := geom.Vec{0.05, 0, sim.ch.CoarseZ - 0.05}
	setParticle(e, 0, p, 10e-6, 1400)
	e.Velocities[0] = geom.Vec{0, 0, -1}

	sim.bounce(0, 0.5)

	assert.False(t, e.Active[0], "particle redirected instead of collecting")
	assert.Equal(t, OutletFine, e.Outlets[0])
	assert.Equal(t, p, e.Positions[0], "redirect rule moved the particle")
	assert.Equal(t, 1, e.FineCount())
	assert.Equal(t, 0, e.CoarseCount())
}

func TestBouncePlateBeatsWall(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	// In the top corner both the plate and the cylinder wall match. Only the
	// plate reflection may run.
	p0 := geom.Vec{sim.ch.Radius, 0, 1.25}
	setParticle(e, 0, p0, 10e-6, 1400)
	e.Velocities[0] = geom.Vec{1, 0, 1}

	sim.bounce(0, 0.5)

	require.True(t, e.Active[0])
	assert.Equal(t, p0[0], e.Positions[0][0], "wall rule rescaled the radius")
	assert.Equal(t, sim.ch.FinesZ-0.01, e.Positions[0][2])
	assert.Equal(t, 1.0, e.Velocities[0][0], "wall rule reflected vx")
}

func TestBoundarySkipsInactive(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	setParticle(e, 0, geom.Vec{0.02, 0, 1.25}, 10e-6, 1400)
	e.MarkLost(0)

	sim.chanBoundary(0, sim.out)
	<-sim.out

	assert.Equal(t, 0, e.FineCount(), "lost particle was collected")
	assert.Equal(t, 1, e.LostCount())
}

func TestBoundaryStampsEndOfStep(t *testing.T) {
	sim := testSim(t, 8)
	e := sim.Ensemble()

	setParticle(e, 0, geom.Vec{0.02, 0, 1.25}, 10e-6, 1400)

	sim.chanBoundary(0, sim.out)
	<-sim.out

	require.False(t, e.Active[0])
	assert.Equal(t, sim.cfg.Dt, e.CollectionTimes[0],
		"collection not stamped with the end of step time")
}
