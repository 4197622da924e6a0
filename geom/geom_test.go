package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVecOps(t *testing.T) {
	v := Vec{1, 2, 3}
	u := Vec{4, -5, 6}

	assert.Equal(t, Vec{5, -3, 9}, v.Add(u), "add")
	assert.Equal(t, Vec{-3, 7, -3}, v.Sub(u), "sub")
	assert.Equal(t, Vec{2, 4, 6}, v.Scale(2), "scale")
	assert.Equal(t, 1.0*4-2.0*5+3.0*6, v.Dot(u), "dot")
	assert.Equal(t, math.Sqrt(14), v.Len(), "len")
	assert.Equal(t, math.Sqrt(5), v.Radius(), "radius")
}

func TestRadialSplit(t *testing.T) {
	// A purely radial vector at 45 degrees has no tangential part.
	c, s := math.Sqrt2/2, math.Sqrt2/2
	vr, vt := RadialSplit(Vec{1, 1, 0}, c, s)
	assert.InDelta(t, math.Sqrt2, vr, 1e-14, "radial part")
	assert.InDelta(t, 0, vt, 1e-14, "tangential part")

	// Splitting and joining recovers the original vector.
	v := Vec{0.3, -1.7, 2.2}
	vr, vt = RadialSplit(v, c, s)
	back := RadialJoin(vr, vt, v[2], c, s)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, v[k], back[k], 1e-14, "roundtrip")
	}
}

func TestDefaultChamber(t *testing.T) {
	ch := DefaultChamber()
	assert.NoError(t, ch.CheckInit(), "reference geometry")

	assert.InDelta(t, 0.70, ch.SelectorZMin(), 1e-14, "band bottom")
	assert.InDelta(t, 0.80, ch.SelectorZMax(), 1e-14, "band top")

	assert.Equal(t, ch.Radius, ch.ConeRadiusAt(0), "cone joins chamber")
	assert.Equal(t, 0.0, ch.ConeRadiusAt(-ch.ConeHeight), "cone apex")

	assert.InDelta(t, ch.Area(),
		ch.CentralArea()+ch.AnnularArea(), 1e-14, "areas partition")
}

func TestChamberCheckInit(t *testing.T) {
	table := []struct {
		name string
		mut  func(ch *Chamber)
	}{
		{"zero radius", func(ch *Chamber) { ch.Radius = 0 }},
		{"zero height", func(ch *Chamber) { ch.Height = 0 }},
		{"selector too wide", func(ch *Chamber) { ch.SelectorRadius = 0.5 }},
		{"zero band height", func(ch *Chamber) { ch.SelectorHeight = 0 }},
		{"band above chamber", func(ch *Chamber) { ch.SelectorZ = 1.2 }},
		{"distributor above band", func(ch *Chamber) { ch.DistributorZ = 0.75 }},
		{"zero distributor radius", func(ch *Chamber) { ch.DistributorRadius = 0 }},
		{"zero fines radius", func(ch *Chamber) { ch.FinesRadius = 0 }},
		{"fines below band", func(ch *Chamber) { ch.FinesZ = 0.5 }},
		{"zero cone height", func(ch *Chamber) { ch.ConeHeight = 0 }},
		{"zero coarse radius", func(ch *Chamber) { ch.CoarseRadius = 0 }},
		{"coarse below cone", func(ch *Chamber) { ch.CoarseZ = -2 }},
		{"coarse above cone", func(ch *Chamber) { ch.CoarseZ = 0.1 }},
		{"shaft swallows core", func(ch *Chamber) { ch.ShaftRadius = 0.1 }},
	}

	for _, test := range table {
		ch := DefaultChamber()
		test.mut(&ch)
		assert.Error(t, ch.CheckInit(), test.name)
	}
}
