package main

import (
	"fmt"
	"log"
	"os"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/Amankrah/goclassify/analyze"
	"github.com/Amankrah/goclassify/io"
)

const resamplePoints = 200

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Usage: $ %s snapshot_file out_file", os.Args[0])
	}

	snapFile, outFile := os.Args[1], os.Args[2]

	snap, err := io.LoadSnapshot(snapFile)
	if err != nil { log.Fatal(err.Error()) }

	g := analyze.NewGradeCurve(snap.Particles, 0)
	ds, effs := g.Resample(resamplePoints)
	d50 := g.CutSize()

	// Measured bins as points, the resampled curve through them, and
	// crosshairs at the cut size.
	plt.Reset()
	plt.Figure()

	plt.Plot(ds, effs, plt.LW(3), plt.C("DodgerBlue"))
	plt.Plot(g.Centers, g.Efficiency, "ok")
	if d50 > 0 {
		plt.Plot([]float64{d50, d50}, []float64{0, 100}, "k", plt.LW(2))
		plt.Plot([]float64{ds[0], ds[len(ds)-1]},
			[]float64{50, 50}, "k", plt.LW(2))
	}

	plt.Title(fmt.Sprintf(
		`$d_{50}$ = %.2f $\mu$m, sharpness = %.2f`, d50, g.Sharpness(),
	))
	plt.XLabel(`$d$ [$\mu$m]`, plt.FontSize(16))
	plt.YLabel("Coarse recovery [%]", plt.FontSize(16))

	plt.XScale("log")
	plt.YLim(0, 100)

	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(outFile)

	plt.Execute()
}
