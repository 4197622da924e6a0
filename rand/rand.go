/*package rand supplies the pseudo-random generators used by the simulation.

Generator is a conventional seeded stream used for feed construction and
anywhere else draw order does not matter. Stream is a stateless counter
generator keyed on (seed, particle, step): its draws are a pure function of
the key, so any worker can reproduce any particle's perturbations for any
step without shared state.
*/
package rand

import (
	"math"
	"time"
)

// GeneratorType selects the underlying bit generator.
type GeneratorType int

const (
	Xorshift GeneratorType = iota
	Tausworthe
)

// Generator is a seeded pseudo-random stream.
type Generator struct {
	t GeneratorType

	// xorshift state
	x uint64

	// tausworthe state
	s1, s2, s3 uint32
}

// New creates a seeded Generator of the given type. Any seed is legal,
// including zero.
func New(t GeneratorType, seed uint64) *Generator {
	gen := &Generator{t: t}

	h := mix64(seed)
	if h == 0 {
		h = 1
	}
	gen.x = h

	// The tausworthe components require small state minimums.
	gen.s1 = uint32(h>>32) | 16
	gen.s2 = uint32(h) | 16
	gen.s3 = uint32(mix64(h)) | 16

	return gen
}

// NewTimeSeed creates a Generator seeded from the wall clock.
func NewTimeSeed(t GeneratorType) *Generator {
	return New(t, uint64(time.Now().UnixNano()))
}

func (gen *Generator) next() uint64 {
	switch gen.t {
	case Xorshift:
		x := gen.x
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		gen.x = x
		return x
	case Tausworthe:
		return uint64(gen.taus())<<32 | uint64(gen.taus())
	}
	panic("Unknown GeneratorType.")
}

// taus advances the combined Tausworthe generator of L'Ecuyer by one
// 32 bit step.
func (gen *Generator) taus() uint32 {
	gen.s1 = ((gen.s1 & 0xfffffffe) << 12) ^ (((gen.s1 << 13) ^ gen.s1) >> 19)
	gen.s2 = ((gen.s2 & 0xfffffff8) << 4) ^ (((gen.s2 << 2) ^ gen.s2) >> 25)
	gen.s3 = ((gen.s3 & 0xfffffff0) << 17) ^ (((gen.s3 << 3) ^ gen.s3) >> 11)
	return gen.s1 ^ gen.s2 ^ gen.s3
}

// Uniform returns a draw from [low, high).
func (gen *Generator) Uniform(low, high float64) float64 {
	return low + (high-low)*unit(gen.next())
}

// UniformAt fills target with draws from [low, high).
func (gen *Generator) UniformAt(low, high float64, target []float64) {
	for i := range target {
		target[i] = gen.Uniform(low, high)
	}
}

// UniformInt returns a draw from the integers [low, high).
func (gen *Generator) UniformInt(low, high int) int {
	return low + int(gen.next()%uint64(high-low))
}

// Normal returns a Gaussian draw with the given mean and standard
// deviation, via the Box-Muller transform.
func (gen *Generator) Normal(mean, std float64) float64 {
	// 1 - u maps [0, 1) onto (0, 1] so the log is finite.
	u1 := 1 - unit(gen.next())
	u2 := unit(gen.next())
	return mean + std*math.Sqrt(-2*math.Log(u1))*math.Cos(2*math.Pi*u2)
}

// Stream is a stateless counter generator. Two Streams built from the same
// key produce the same draws in the same order.
type Stream struct {
	state uint64
}

// NewStream keys a Stream on a global seed, a particle index, and a step
// index.
func NewStream(seed uint64, index, step int64) Stream {
	h := mix64(seed ^ uint64(index))
	h = mix64(h ^ uint64(step))
	return Stream{h}
}

func (st *Stream) next() uint64 {
	st.state += 0x9e3779b97f4a7c15
	return mix64(st.state)
}

// Uniform returns a draw from [low, high).
func (st *Stream) Uniform(low, high float64) float64 {
	return low + (high-low)*unit(st.next())
}

// unit maps 64 random bits onto [0, 1) at full float64 resolution.
func unit(u uint64) float64 {
	return float64(u>>11) / (1 << 53)
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
