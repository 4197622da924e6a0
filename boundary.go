package goclassify

import (
	"math"

	"github.com/Amankrah/goclassify/geom"
)

const (
	// restitution scales reflected velocity components at every wall.
	restitution = 0.3
	// wallFactor is the fraction of a wall radius at which a particle
	// counts as touching that wall.
	wallFactor = 0.99
)

// chanBoundary resolves outlet collection and wall contact on this
// worker's share of the particles.
func (sim *Simulator) chanBoundary(worker int, out chan<- int) {
	e := sim.e
	t := sim.time + sim.cfg.Dt

	for i := range e.Positions {
		if i%sim.workers != worker {
			continue
		}
		if !e.Active[i] {
			continue
		}
		sim.bounce(i, t)
	}

	out <- worker
}

// bounce applies the boundary rules to active particle i. The rules are
// checked in a fixed priority order and only the first match applies, so a
// particle satisfying both an outlet test and a wall test in the same step
// is collected.
func (sim *Simulator) bounce(i int, t float64) {
	e, ch := sim.e, &sim.ch

	p := e.Positions[i]
	v := e.Velocities[i]
	r := p.Radius()
	z := p[2]

	coneR := 0.0
	inCone := z < 0 && z > ch.CoarseZ
	if inCone {
		coneR = ch.ConeRadiusAt(z)
		if coneR < ch.CoarseRadius {
			coneR = ch.CoarseRadius
		}
	}

	if z >= ch.FinesZ && r < ch.FinesRadius {
		// Fines outlet.
		e.Collect(i, OutletFine, t)
	} else if z >= ch.FinesZ {
		// Top plate outside the outlet.
		p[2] = ch.FinesZ - 0.01
		v[2] = -math.Abs(v[2]) * restitution
		e.Positions[i], e.Velocities[i] = p, v
	} else if z <= ch.CoarseZ && r < ch.CoarseRadius {
		// Coarse outlet.
		e.Collect(i, OutletCoarse, t)
	} else if z <= ch.CoarseZ {
		// Below the cone apex but off the outlet. Nudge back up and
		// inward so the cone wall funnels the particle in.
		p[0] *= 0.95
		p[1] *= 0.95
		p[2] = ch.CoarseZ + 0.01
		v[0] *= 0.5
		v[1] *= 0.5
		v[2] = -math.Abs(v[2]) * restitution
		e.Positions[i], e.Velocities[i] = p, v
	} else if r >= wallFactor*ch.Radius {
		// Cylinder wall. Reflect the radial component, keep the swirl.
		if r > 0.01 {
			c, s := p[0]/r, p[1]/r
			vr, vt := geom.RadialSplit(v, c, s)
			vr = -vr * restitution
			e.Velocities[i] = geom.RadialJoin(vr, vt, v[2], c, s)
		}
		scale := 0.98 * ch.Radius / r
		p[0] *= scale
		p[1] *= scale
		e.Positions[i] = p
	} else if inCone && r >= wallFactor*coneR {
		// Cone wall. Damp the reflection harder and bias downward so
		// particles slide toward the coarse outlet.
		if r > 0.01 {
			c, s := p[0]/r, p[1]/r
			vr, vt := geom.RadialSplit(v, c, s)
			vr = -vr * restitution * 0.5
			vz := v[2]*0.5 - 0.1
			e.Velocities[i] = geom.RadialJoin(vr, vt, vz, c, s)
		}
		scale := 0.95 * coneR / math.Max(r, 0.01)
		p[0] *= scale
		p[1] *= scale
		e.Positions[i] = p
	} else if r < ch.ShaftRadius && z > 0 {
		// Rotor shaft. Push outward and reflect only inward motion.
		if r > 1e-3 {
			c, s := p[0]/r, p[1]/r
			scale := 1.1 * ch.ShaftRadius / r
			p[0] *= scale
			p[1] *= scale
			e.Positions[i] = p

			vr, vt := geom.RadialSplit(v, c, s)
			if vr < 0 {
				vr = -vr * restitution
				e.Velocities[i] = geom.RadialJoin(vr, vt, v[2], c, s)
			}
		}
	}
}
