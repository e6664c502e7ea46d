package main

import "errors"

// Config validation errors
var (
	ErrInvalidWorkers     = errors.New("workers must be positive")
	ErrInvalidIterations  = errors.New("iterations must be positive")
	ErrInvalidBurst       = errors.New("burst must be positive")
	ErrInvalidSource      = errors.New("source must be 'heap' or 'arrow'")
	ErrInvalidMetricsAddr = errors.New("metrics address cannot be empty")
)

// benchConfig holds the workload shape for one run.
type benchConfig struct {
	Workers     int
	Iterations  int
	Burst       int
	Source      string
	MetricsAddr string
}

// validateConfig validates the configuration and returns an error if invalid
func validateConfig(cfg *benchConfig) error {
	if cfg.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if cfg.Iterations <= 0 {
		return ErrInvalidIterations
	}
	if cfg.Burst <= 0 {
		return ErrInvalidBurst
	}
	if cfg.Source != "heap" && cfg.Source != "arrow" {
		return ErrInvalidSource
	}
	if cfg.MetricsAddr == "" {
		return ErrInvalidMetricsAddr
	}
	return nil
}
