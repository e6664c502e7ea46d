package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validBenchConfig() benchConfig {
	return benchConfig{
		Workers:     4,
		Iterations:  10,
		Burst:       100,
		Source:      "heap",
		MetricsAddr: "0.0.0.0:9090",
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := validBenchConfig()
	require.NoError(t, validateConfig(&cfg))
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*benchConfig)
		want   error
	}{
		{"zero workers", func(c *benchConfig) { c.Workers = 0 }, ErrInvalidWorkers},
		{"zero iterations", func(c *benchConfig) { c.Iterations = 0 }, ErrInvalidIterations},
		{"zero burst", func(c *benchConfig) { c.Burst = 0 }, ErrInvalidBurst},
		{"bad source", func(c *benchConfig) { c.Source = "mmap" }, ErrInvalidSource},
		{"empty metrics addr", func(c *benchConfig) { c.MetricsAddr = "" }, ErrInvalidMetricsAddr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBenchConfig()
			tt.mutate(&cfg)
			require.ErrorIs(t, validateConfig(&cfg), tt.want)
		})
	}
}
