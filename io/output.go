package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"unsafe"

	"github.com/Amankrah/goclassify"
	"github.com/Amankrah/goclassify/feed"
	"github.com/Amankrah/goclassify/flow"
	"github.com/Amankrah/goclassify/geom"
)

var end = binary.LittleEndian

/*
The snapshot binary format is as follows:
    |-- 1 --||-- ... 2 ... --| ... |-- ... 10 ... --|

    1  - (SnapshotHeader) Fixed size header giving the endianness flag, the
         header size, the particle count, the operating point, and the
         chamber geometry. The endianness flag is -1 for little endian
         files and 0 for big endian files.
    2  - ([][3]float64) Particle positions. Given in meters.
    3  - ([][3]float64) Particle velocities. Given in m/s.
    4  - ([]float64) Particle diameters. Given in meters.
    5  - ([]float64) Particle effective densities. Given in kg/m^3.
    6  - ([]int64) Class labels.
    7  - ([]int64) Active flags, 1 while a particle is still in flight.
    8  - ([]int64) Outlets of collected particles.
    9  - ([]float64) Collection times. Zero while in flight and negative
         for lost particles.
    10 - ([][3]float64) Collection positions.

Masses and forces are not stored. Masses are rebuilt from the diameters and
densities on read and forces are cleared.
*/
type SnapshotHeader struct {
	Type TypeInfo
	Run  RunInfo
	Geom GeomInfo
}

type TypeInfo struct {
	Endianness int64
	HeaderSize int64
	Particles  int64
}

type RunInfo struct {
	Time float64

	Omega, Flow              float64
	AirDensity, AirViscosity float64
	Gravity, Turbulence      float64
}

type GeomInfo struct {
	Radius, Height                            float64
	SelectorRadius, SelectorZ, SelectorHeight float64
	DistributorZ, DistributorRadius           float64
	FinesZ, FinesRadius                       float64
	CoarseZ, CoarseRadius                     float64
	ConeHeight, ShaftRadius                   float64
}

func newRunInfo(time float64, con flow.Conditions) RunInfo {
	return RunInfo{
		time,
		con.Omega, con.Flow,
		con.AirDensity, con.AirViscosity,
		con.Gravity, con.Turbulence,
	}
}

func (ri *RunInfo) conditions() flow.Conditions {
	return flow.Conditions{
		Omega: ri.Omega, Flow: ri.Flow,
		AirDensity: ri.AirDensity, AirViscosity: ri.AirViscosity,
		Gravity: ri.Gravity, Turbulence: ri.Turbulence,
	}
}

func newGeomInfo(ch geom.Chamber) GeomInfo {
	return GeomInfo{
		ch.Radius, ch.Height,
		ch.SelectorRadius, ch.SelectorZ, ch.SelectorHeight,
		ch.DistributorZ, ch.DistributorRadius,
		ch.FinesZ, ch.FinesRadius,
		ch.CoarseZ, ch.CoarseRadius,
		ch.ConeHeight, ch.ShaftRadius,
	}
}

func (gi *GeomInfo) chamber() geom.Chamber {
	return geom.Chamber{
		Radius: gi.Radius, Height: gi.Height,
		SelectorRadius: gi.SelectorRadius, SelectorZ: gi.SelectorZ,
		SelectorHeight: gi.SelectorHeight,
		DistributorZ: gi.DistributorZ, DistributorRadius: gi.DistributorRadius,
		FinesZ: gi.FinesZ, FinesRadius: gi.FinesRadius,
		CoarseZ: gi.CoarseZ, CoarseRadius: gi.CoarseRadius,
		ConeHeight:  gi.ConeHeight,
		ShaftRadius: gi.ShaftRadius,
	}
}

// Snapshot is the complete state of a run at one instant: enough to resume
// the simulation or to analyze its outcome offline.
type Snapshot struct {
	Time       float64
	Chamber    geom.Chamber
	Conditions flow.Conditions
	Particles  *goclassify.Ensemble
}

// WriteSnapshot writes the snapshot to wr in the little endian binary
// format described above.
func WriteSnapshot(snap *Snapshot, wr io.Writer) error {
	e := snap.Particles
	n := e.Len()

	var endFlag int64
	if end == binary.LittleEndian {
		endFlag = -1
	} else {
		endFlag = 0
	}

	hd := SnapshotHeader{}
	hd.Type.Endianness = endFlag
	hd.Type.HeaderSize = int64(unsafe.Sizeof(hd))
	hd.Type.Particles = int64(n)
	hd.Run = newRunInfo(snap.Time, snap.Conditions)
	hd.Geom = newGeomInfo(snap.Chamber)

	if err := binary.Write(wr, end, &hd); err != nil {
		return err
	}

	kinds := make([]int64, n)
	active := make([]int64, n)
	outlets := make([]int64, n)
	for i := 0; i < n; i++ {
		kinds[i] = int64(e.Kinds[i])
		if e.Active[i] {
			active[i] = 1
		}
		outlets[i] = int64(e.Outlets[i])
	}

	arrays := []interface{}{
		e.Positions, e.Velocities,
		e.Diameters, e.Densities,
		kinds, active, outlets,
		e.CollectionTimes, e.CollectionPositions,
	}
	for _, xs := range arrays {
		if err := binary.Write(wr, end, xs); err != nil {
			return err
		}
	}

	return nil
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(rd io.Reader) (*Snapshot, error) {
	hd := &SnapshotHeader{}
	if err := binary.Read(rd, end, hd); err != nil {
		return nil, err
	}

	if hd.Type.Endianness != -1 {
		return nil, fmt.Errorf(
			"Snapshot endianness flag is %d. Only little endian files, "+
				"flagged -1, are supported.", hd.Type.Endianness,
		)
	}
	if hd.Type.HeaderSize != int64(unsafe.Sizeof(*hd)) {
		return nil, fmt.Errorf(
			"Snapshot header size is %d bytes, but %d bytes were expected.",
			hd.Type.HeaderSize, unsafe.Sizeof(*hd),
		)
	}
	n := int(hd.Type.Particles)
	if n <= 0 {
		return nil, fmt.Errorf("Snapshot particle count is %d.", n)
	}

	e := goclassify.NewEnsemble(n)
	kinds := make([]int64, n)
	active := make([]int64, n)
	outlets := make([]int64, n)

	arrays := []interface{}{
		e.Positions, e.Velocities,
		e.Diameters, e.Densities,
		kinds, active, outlets,
		e.CollectionTimes, e.CollectionPositions,
	}
	for _, xs := range arrays {
		if err := binary.Read(rd, end, xs); err != nil {
			return nil, err
		}
	}

	for i := 0; i < n; i++ {
		e.Kinds[i] = feed.Kind(kinds[i])
		e.Active[i] = active[i] == 1
		e.Outlets[i] = goclassify.Outlet(outlets[i])

		d := e.Diameters[i]
		e.Masses[i] = e.Densities[i] * math.Pi / 6 * d * d * d
	}
	e.Recount()

	snap := &Snapshot{
		Time:       hd.Run.Time,
		Chamber:    hd.Geom.chamber(),
		Conditions: hd.Run.conditions(),
		Particles:  e,
	}
	return snap, nil
}

// SaveSnapshot writes the snapshot to the file at fname.
func SaveSnapshot(snap *Snapshot, fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteSnapshot(snap, f)
}

// LoadSnapshot reads the snapshot in the file at fname.
func LoadSnapshot(fname string) (*Snapshot, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSnapshot(f)
}
