package goclassify

const (
	// damping is applied to the velocity once per step.
	damping = 0.999
	// maxSpeed clamps the velocity magnitude after every update.
	maxSpeed = 50.0
	// minMass is the smallest mass the integrator will divide by.
	minMass = 1e-20
)

// chanIntegrate advances velocity then position on this worker's share of
// the particles. Updating velocity first makes the step semi-implicit,
// which keeps the stiff drag on small particles stable at the reference
// timestep. Inactive slots are left untouched.
func (sim *Simulator) chanIntegrate(worker int, out chan<- int) {
	e, dt := sim.e, sim.cfg.Dt

	for i := range e.Positions {
		if i%sim.workers != worker {
			continue
		}
		if !e.Active[i] || e.Masses[i] < minMass {
			continue
		}

		v := e.Velocities[i].Add(e.Forces[i].Scale(dt / e.Masses[i]))
		v = v.Scale(damping)
		if s := v.Len(); s > maxSpeed {
			v = v.Scale(maxSpeed / s)
		}

		e.Velocities[i] = v
		e.Positions[i] = e.Positions[i].Add(v.Scale(dt))
	}

	out <- worker
}
