package goclassify

import (
	"github.com/Amankrah/goclassify/drag"
	"github.com/Amankrah/goclassify/geom"
	"github.com/Amankrah/goclassify/rand"
)

// turbulentZDamp scales the vertical turbulent fluctuation relative to the
// horizontal ones.
const turbulentZDamp = 0.3

// chanForce writes the force on this worker's share of the particles into
// the ensemble's force array. The force is drag toward the local air
// velocity plus gravity. There is no explicit centrifugal term: the
// tangential drag combined with the curved trajectory produces the
// centrifugal drift on its own.
func (sim *Simulator) chanForce(worker int, out chan<- int) {
	e := sim.e
	turb := sim.con.Turbulence

	for i := range e.Positions {
		if i%sim.workers != worker {
			continue
		}
		if !e.Active[i] {
			e.Forces[i] = geom.Vec{}
			continue
		}

		vAir := sim.field.VelocityAt(e.Positions[i], sim.time)
		if turb > 0 {
			// The fluctuation scale follows the local air speed. Keying
			// the stream on (seed, particle, step) keeps the draws
			// identical under any worker schedule.
			st := rand.NewStream(sim.cfg.Seed, int64(i), sim.step)
			mag := turb * vAir.Len()
			vAir[0] += st.Uniform(-1, 1) * mag
			vAir[1] += st.Uniform(-1, 1) * mag
			vAir[2] += st.Uniform(-1, 1) * mag * turbulentZDamp
		}

		vrel := e.Velocities[i].Sub(vAir)
		d := e.Diameters[i]

		var f geom.Vec
		if d < drag.StokesCutoff {
			f = drag.StokesForce(vrel, d, sim.con.AirViscosity)
		} else {
			f = drag.Force(vrel, d, sim.con.AirDensity, sim.con.AirViscosity)
		}
		f[2] -= sim.con.Gravity * e.Masses[i]

		e.Forces[i] = f
	}

	out <- worker
}
