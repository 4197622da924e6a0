package goclassify

import (
	"fmt"
)

// Config holds the run parameters of a Simulator.
type Config struct {
	// N is the number of particles in the ensemble.
	N int
	// Dt is the integration timestep in seconds.
	Dt float64
	// Duration is the amount of simulated time Run covers.
	Duration float64
	// SaveInterval is the simulated time between the samples Run records.
	// Intervals smaller than Dt sample every step.
	SaveInterval float64
	// Seed drives feed construction and the turbulence streams. Runs with
	// equal seeds and configurations are identical.
	Seed uint64
	// Workers is the number of goroutines each kernel stage is split
	// across. Zero selects runtime.NumCPU().
	Workers int
}

// DefaultConfig returns the run parameters of the reference separations.
func DefaultConfig() Config {
	return Config{
		N:            1000,
		Dt:           1e-3,
		Duration:     5,
		SaveInterval: 0.05,
		Seed:         42,
	}
}

// CheckInit returns an error if the parameters do not describe a runnable
// simulation.
func (cfg *Config) CheckInit() error {
	if cfg.N <= 0 {
		return fmt.Errorf("N must be positive, but is %d.", cfg.N)
	} else if cfg.Dt <= 0 {
		return fmt.Errorf("Dt must be positive, but is %g.", cfg.Dt)
	} else if cfg.Duration <= 0 {
		return fmt.Errorf("Duration must be positive, but is %g.", cfg.Duration)
	} else if cfg.SaveInterval < 0 {
		return fmt.Errorf(
			"SaveInterval must not be negative, but is %g.", cfg.SaveInterval,
		)
	} else if cfg.Workers < 0 {
		return fmt.Errorf("Workers must not be negative, but is %d.", cfg.Workers)
	}
	return nil
}
