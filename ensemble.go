package goclassify

import (
	"log"
	"math"
	"sync/atomic"

	"github.com/Amankrah/goclassify/feed"
	"github.com/Amankrah/goclassify/geom"
	"github.com/Amankrah/goclassify/rand"
)

// Outlet identifies where a particle left the simulation.
type Outlet int

const (
	OutletNone Outlet = iota
	OutletFine
	OutletCoarse
)

func (o Outlet) String() string {
	switch o {
	case OutletNone:
		return "None"
	case OutletFine:
		return "Fine"
	case OutletCoarse:
		return "Coarse"
	}
	return "Unknown"
}

// lostTime is the collection time recorded for particles which left the
// simulation without reaching an outlet. Collected particles always have
// positive collection times, so the three terminal states are
// distinguishable from the time alone.
const lostTime = -1.0

// Ensemble holds the state of every particle in structure of arrays form.
// All slices share one length, fixed at creation. A particle keeps its
// index for the whole run; retiring a particle clears its active flag and
// leaves its terminal record behind for analysis.
//
// The kernels mutate the arrays in place, with each index touched by
// exactly one worker per stage. The collection counters are the only
// shared writes and are atomic.
type Ensemble struct {
	Positions  []geom.Vec
	Velocities []geom.Vec
	Forces     []geom.Vec

	Diameters []float64
	Densities []float64
	Masses    []float64
	Kinds     []feed.Kind

	Active              []bool
	Outlets             []Outlet
	CollectionTimes     []float64
	CollectionPositions []geom.Vec

	fine, coarse, lost int64
}

// NewEnsemble creates an ensemble of n empty particle slots.
func NewEnsemble(n int) *Ensemble {
	if n <= 0 {
		log.Fatalf("NewEnsemble() given non-positive length %d.", n)
	}

	return &Ensemble{
		Positions:  make([]geom.Vec, n),
		Velocities: make([]geom.Vec, n),
		Forces:     make([]geom.Vec, n),

		Diameters: make([]float64, n),
		Densities: make([]float64, n),
		Masses:    make([]float64, n),
		Kinds:     make([]feed.Kind, n),

		Active:              make([]bool, n),
		Outlets:             make([]Outlet, n),
		CollectionTimes:     make([]float64, n),
		CollectionPositions: make([]geom.Vec, n),
	}
}

// Len returns the number of particle slots.
func (e *Ensemble) Len() int { return len(e.Positions) }

// Fill seeds every slot from the mixture. Diameters and densities follow
// the class distributions, positions fall in the feed ring above the
// distributor, and every particle starts active with the small outward and
// downward release velocity of the feed.
func (e *Ensemble) Fill(mix feed.Mixture, ch geom.Chamber, gen *rand.Generator) {
	ds, rhos, kinds := mix.Sample(e.Len(), gen)
	for i := range e.Positions {
		d, rho := ds[i], rhos[i]

		e.Diameters[i] = d
		e.Densities[i] = rho
		e.Masses[i] = rho * math.Pi / 6 * d * d * d
		e.Kinds[i] = kinds[i]

		e.Positions[i], e.Velocities[i] = feed.Place(
			gen, ch.DistributorZ, ch.DistributorRadius,
		)
		e.Active[i] = true
	}
}

// Collect retires particle i through the given outlet at time t, recording
// the time and position of collection and bumping the outlet's counter.
// t must be positive and each particle may be retired at most once.
func (e *Ensemble) Collect(i int, o Outlet, t float64) {
	switch o {
	case OutletFine:
		atomic.AddInt64(&e.fine, 1)
	case OutletCoarse:
		atomic.AddInt64(&e.coarse, 1)
	default:
		log.Fatalf("Collect() given outlet %d.", o)
	}

	e.Active[i] = false
	e.Outlets[i] = o
	e.CollectionTimes[i] = t
	e.CollectionPositions[i] = e.Positions[i]
}

// MarkLost retires particle i as escaped. Lost particles keep no outlet
// and a negative collection time.
func (e *Ensemble) MarkLost(i int) {
	atomic.AddInt64(&e.lost, 1)

	e.Active[i] = false
	e.Outlets[i] = OutletNone
	e.CollectionTimes[i] = lostTime
	e.CollectionPositions[i] = e.Positions[i]
}

// FineCount returns the number of particles collected at the fines outlet.
func (e *Ensemble) FineCount() int { return int(atomic.LoadInt64(&e.fine)) }

// CoarseCount returns the number of particles collected at the coarse
// outlet.
func (e *Ensemble) CoarseCount() int { return int(atomic.LoadInt64(&e.coarse)) }

// LostCount returns the number of particles retired without an outlet.
func (e *Ensemble) LostCount() int { return int(atomic.LoadInt64(&e.lost)) }

// ActiveCount counts the particles still in flight by scanning the active
// flags. At every step boundary it satisfies
// ActiveCount + FineCount + CoarseCount + LostCount == Len.
func (e *Ensemble) ActiveCount() int {
	n := 0
	for _, a := range e.Active {
		if a {
			n++
		}
	}
	return n
}

// Recount rebuilds the collection counters from the per-particle terminal
// records. It exists for ensembles reconstructed from a snapshot file,
// where the arrays arrive without counters.
func (e *Ensemble) Recount() {
	var fine, coarse, lost int64
	for i := range e.Outlets {
		switch {
		case e.Outlets[i] == OutletFine:
			fine++
		case e.Outlets[i] == OutletCoarse:
			coarse++
		case e.CollectionTimes[i] < 0:
			lost++
		}
	}

	atomic.StoreInt64(&e.fine, fine)
	atomic.StoreInt64(&e.coarse, coarse)
	atomic.StoreInt64(&e.lost, lost)
}

// Snapshot returns a deep copy of the ensemble which is safe to inspect
// while the original continues to advance.
func (e *Ensemble) Snapshot() *Ensemble {
	s := NewEnsemble(e.Len())

	copy(s.Positions, e.Positions)
	copy(s.Velocities, e.Velocities)
	copy(s.Forces, e.Forces)
	copy(s.Diameters, e.Diameters)
	copy(s.Densities, e.Densities)
	copy(s.Masses, e.Masses)
	copy(s.Kinds, e.Kinds)
	copy(s.Active, e.Active)
	copy(s.Outlets, e.Outlets)
	copy(s.CollectionTimes, e.CollectionTimes)
	copy(s.CollectionPositions, e.CollectionPositions)

	s.fine = atomic.LoadInt64(&e.fine)
	s.coarse = atomic.LoadInt64(&e.coarse)
	s.lost = atomic.LoadInt64(&e.lost)

	return s
}
