package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Amankrah/goclassify"
	"github.com/Amankrah/goclassify/analyze"
	"github.com/Amankrah/goclassify/drag"
	"github.com/Amankrah/goclassify/flow"
	"github.com/Amankrah/goclassify/geom"
	"github.com/Amankrah/goclassify/io"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil { log.Fatal(err.Error()) }
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil { log.Fatal(err.Error()) }
	}
}

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode.

	var (
		runStr, reportStr string
		exampleConfig     string
	)
	vars := map[string]*string{
		"Run":           &runStr,
		"Report":        &reportStr,
		"ExampleConfig": &exampleConfig,
	}

	threads := flag.Int(
		"Threads", 0,
		"Number of worker goroutines used by the simulation kernels. "+
			"Default is the config file's Threads value, or one per core.",
	)
	flag.StringVar(
		&runStr, "Run", "",
		"Configuration file for [Run] mode: simulate the configured "+
			"separation and print its report.",
	)
	flag.StringVar(
		&reportStr, "Report", "",
		"Snapshot file to reanalyze. Prints the same report as a completed "+
			"run.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Classifier'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil { log.Fatal(err.Error()) }

	switch modeName {
	case "Run":
		wrap, err := io.ReadConfig(runStr)
		if err != nil { log.Fatal(err.Error()) }
		if *threads > 0 {
			wrap.Run.Threads = *threads
		}
		runMain(wrap)

	case "Report":
		reportMain(reportStr)

	case "ExampleConfig":
		switch exampleConfig {
		case "Classifier":
			fmt.Println(io.ExampleClassifierFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Classifier'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive
// error if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" { setNames = append(setNames, name) }
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but goclassify only "+
				"accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupIO prepares the log and profile files named by the [Run] section.
func setupIO(run *io.RunConfig) *FileGroup {
	var err error
	fg := new(FileGroup)

	if run.ValidLogFile() {
		fg.log, err = os.Create(run.LogFile)
		if err != nil { log.Fatal(err.Error()) }
		log.SetOutput(fg.log)
	}

	if run.ValidProfileFile() {
		fg.prof, err = os.Create(run.ProfileFile)
		if err != nil { log.Fatal(err.Error()) }
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil { log.Fatal(err.Error()) }
	}

	return fg
}

// runMain simulates the configured separation and writes its artifacts.
func runMain(wrap *io.ClassifierWrapper) {
	fg := setupIO(&wrap.Run)
	defer fg.Close()

	mix, err := wrap.Mixture()
	if err != nil { log.Fatal(err.Error()) }

	ch := wrap.Geometry.Chamber()
	con := wrap.Operating.Conditions()
	cfg := wrap.Run.Config()

	sim, err := goclassify.NewSimulator(ch, con, mix, cfg)
	if err != nil { log.Fatal(err.Error()) }

	log.Printf(
		"Simulating %d particles for %g s at dt = %g s on %d threads.",
		cfg.N, cfg.Duration, cfg.Dt, workerCount(cfg.Workers),
	)

	start := time.Now()
	samples := sim.Run()
	log.Printf("Finished %g s of simulated time in %v.",
		sim.Time(), time.Since(start))

	e := sim.Ensemble()
	log.Printf(
		"Collected %d fine and %d coarse particles. %d lost, %d still in "+
			"flight.",
		e.FineCount(), e.CoarseCount(), e.LostCount(), e.ActiveCount(),
	)

	if wrap.Run.ValidOutput() {
		if err = os.MkdirAll(wrap.Run.Output, 0777); err != nil {
			log.Fatal(err.Error())
		}

		series := path.Join(wrap.Run.Output, "series.txt")
		if err = io.SaveSeries(samples, series); err != nil {
			log.Fatal(err.Error())
		}

		grade := path.Join(wrap.Run.Output, "grade.txt")
		err = io.SaveGradeCurve(analyze.NewGradeCurve(e, 0), grade)
		if err != nil { log.Fatal(err.Error()) }

		snap := &io.Snapshot{
			Time: sim.Time(), Chamber: ch, Conditions: con, Particles: e,
		}
		file := path.Join(wrap.Run.Output, "final.snap")
		if err = io.SaveSnapshot(snap, file); err != nil {
			log.Fatal(err.Error())
		}

		log.Printf("Wrote series, grade, and snapshot files to %s.",
			wrap.Run.Output)
	}

	printReport(e, ch, con)
}

// reportMain reanalyzes a snapshot file.
func reportMain(fname string) {
	snap, err := io.LoadSnapshot(fname)
	if err != nil { log.Fatal(err.Error()) }

	log.Printf("Loaded %d particles at t = %g s from %s.",
		snap.Particles.Len(), snap.Time, fname)

	printReport(snap.Particles, snap.Chamber, snap.Conditions)
}

func workerCount(workers int) int {
	if workers > 0 {
		return workers
	}
	return runtime.NumCPU()
}

// printReport writes the separation report to stdout.
func printReport(
	e *goclassify.Ensemble, ch geom.Chamber, con flow.Conditions,
) {
	if err := analyze.MassBalance(e); err != nil { log.Fatal(err.Error()) }

	sum := analyze.Summarize(e)

	fmt.Println("Separation summary:")
	fmt.Printf("  Feed:   %6d particles, %d type A and %d type B\n",
		sum.Total, sum.TypeA, sum.TypeB)
	fmt.Printf("  Fine:   %6d collected, %d A and %d B\n",
		sum.Fine, sum.AToFine, sum.BToFine)
	fmt.Printf("  Coarse: %6d collected, %d A and %d B\n",
		sum.Coarse, sum.AToCoarse, sum.BToCoarse)
	fmt.Printf("  Lost:   %6d\n", sum.Lost)
	fmt.Println()
	fmt.Printf("  Fine purity:    %7.2f%%\n", 100*sum.FinePurity)
	fmt.Printf("  Coarse purity:  %7.2f%%\n", 100*sum.CoarsePurity)
	fmt.Printf("  Recovery:       %7.2f%%\n", 100*sum.Recovery)
	fmt.Printf("  Yield:          %7.2f%%\n", 100*sum.Yield)
	if sum.SplitEstimate > 0 {
		fmt.Printf("  Split estimate: %7.2f um\n", sum.SplitEstimate*1e6)
	}

	if st, ok := analyze.DiameterStats(e, goclassify.OutletFine); ok {
		fmt.Printf("  Fine stream:   %6.2f +/- %.2f um in [%.2f, %.2f]\n",
			st.Mean*1e6, st.Std*1e6, st.Min*1e6, st.Max*1e6)
	}
	if st, ok := analyze.DiameterStats(e, goclassify.OutletCoarse); ok {
		fmt.Printf("  Coarse stream: %6.2f +/- %.2f um in [%.2f, %.2f]\n",
			st.Mean*1e6, st.Std*1e6, st.Min*1e6, st.Max*1e6)
	}

	g := analyze.NewGradeCurve(e, 0)
	d50, kappa := g.CutSize(), g.Sharpness()
	rho := stat.Mean(e.Densities, nil)
	predicted := drag.CutSize(
		con.AirViscosity, con.Flow, rho,
		con.Omega, ch.SelectorRadius, ch.SelectorHeight,
	)

	fmt.Println()
	fmt.Printf("  Cut size d50:   %7.2f um (force balance predicts %.2f)\n",
		d50, predicted*1e6)
	fmt.Printf("  Sharpness:      %7.2f, %s\n",
		kappa, analyze.SharpnessQuality(kappa))
}
