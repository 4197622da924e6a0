package main

import (
	"log"
	"os"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/Amankrah/goclassify/io"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Usage: $ %s series_file out_file", os.Args[0])
	}

	seriesFile, outFile := os.Args[1], os.Args[2]

	samples, err := io.ReadSeries(seriesFile)
	if err != nil { log.Fatal(err.Error()) }

	ts := make([]float64, len(samples))
	active := make([]float64, len(samples))
	fine := make([]float64, len(samples))
	coarse := make([]float64, len(samples))
	for i, s := range samples {
		ts[i] = s.Time
		active[i] = float64(s.Active)
		fine[i] = float64(s.Fine)
		coarse[i] = float64(s.Coarse)
	}

	plt.Reset()
	plt.Figure()

	plt.Plot(ts, active, plt.LW(3), plt.C("DimGray"))
	plt.Plot(ts, fine, plt.LW(3), plt.C("DodgerBlue"))
	plt.Plot(ts, coarse, plt.LW(3), plt.C("DarkOrange"))

	plt.Title("In flight (gray), fine (blue), coarse (orange)")
	plt.XLabel(`$t$ [s]`, plt.FontSize(16))
	plt.YLabel("Particles", plt.FontSize(16))

	plt.Grid(plt.Axis("y"))
	plt.SaveFig(outFile)

	plt.Execute()
}
