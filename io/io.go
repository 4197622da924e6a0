/*package io reads and writes the on disk artifacts of a classifier run:
gcfg config files, binary state snapshots, and whitespace separated series
and grade tables readable by github.com/phil-mansfield/table.
*/
package io

import (
	"fmt"
	"io"
	"os"

	"github.com/phil-mansfield/table"

	"github.com/Amankrah/goclassify"
	"github.com/Amankrah/goclassify/analyze"
)

// WriteSeries writes one whitespace separated row per sample: the simulated
// time in seconds followed by the active, fine, and coarse counts. Floats
// are printed exactly, so a read back series matches bit for bit.
func WriteSeries(samples []goclassify.Sample, wr io.Writer) error {
	_, err := fmt.Fprintf(
		wr, "# %10s %8s %8s %8s\n", "time", "active", "fine", "coarse",
	)
	if err != nil {
		return err
	}

	for i := range samples {
		s := &samples[i]
		_, err := fmt.Fprintf(
			wr, "  %10g %8d %8d %8d\n", s.Time, s.Active, s.Fine, s.Coarse,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// SaveSeries writes the sample series to the file at fname.
func SaveSeries(samples []goclassify.Sample, fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteSeries(samples, f)
}

// ReadSeries reads a sample series written by WriteSeries.
func ReadSeries(fname string) ([]goclassify.Sample, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return nil, err
	}

	samples := make([]goclassify.Sample, len(cols[0]))
	for i := range samples {
		samples[i] = goclassify.Sample{
			Time:   cols[0][i],
			Active: int(cols[1][i]),
			Fine:   int(cols[2][i]),
			Coarse: int(cols[3][i]),
		}
	}
	return samples, nil
}

// WriteGradeCurve writes one whitespace separated row per grade bin: the
// bin center diameter in microns, the coarse efficiency in percent, and the
// feed and coarse counts the bin collected.
func WriteGradeCurve(g *analyze.GradeCurve, wr io.Writer) error {
	_, err := fmt.Fprintf(
		wr, "# %10s %10s %8s %8s\n", "diameter", "efficiency", "feed", "coarse",
	)
	if err != nil {
		return err
	}

	for i := range g.Centers {
		_, err := fmt.Fprintf(
			wr, "  %10g %10g %8d %8d\n",
			g.Centers[i], g.Efficiency[i], g.Feed[i], g.Coarse[i],
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// SaveGradeCurve writes the grade efficiency table to the file at fname.
func SaveGradeCurve(g *analyze.GradeCurve, fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteGradeCurve(g, f)
}
