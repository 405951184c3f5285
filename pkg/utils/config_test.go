package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 900, cfg.Render.Width)
	assert.Equal(t, 600, cfg.Render.Height)
	assert.Equal(t, 100.0, cfg.Simulation.Years)
	assert.True(t, cfg.Archive.Enabled)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, validateConfig(cfg))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, "output directory"},
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render dimensions"},
		{"negative duration", func(c *Config) { c.Simulation.Years = -1 }, "duration"},
		{"zero step", func(c *Config) { c.Simulation.StepDays = 0 }, "step"},
		{"snapshot shorter than step", func(c *Config) {
			c.Simulation.StepDays = 10
			c.Simulation.SnapshotDays = 1
		}, "snapshot interval"},
		{"archive without database", func(c *Config) { c.Archive.Database = "" }, "archive database"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestArtifactPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Dir = "/tmp/orrery-out"
	assert.Equal(t, "/tmp/orrery-out/orbits.png", cfg.ArtifactPath("orbits.png"))
}
