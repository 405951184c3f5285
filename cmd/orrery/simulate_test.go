package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astromath "github.com/astroplot/orrery/pkg/astro/math"
	"github.com/astroplot/orrery/pkg/catalog"
)

func TestStepCount_TruncatesPartialStep(t *testing.T) {
	cases := []struct {
		name     string
		duration float64
		step     float64
		want     int
	}{
		{"exact multiple", 10, 2.5, 4},
		{"partial step dropped", 10, 3, 3},
		{"shorter than one step", 2, 3, 0},
		{"one year daily", 365.25, 1, 365},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stepCount(tc.duration, tc.step))
		})
	}
}

func TestBuildSystem_RecentersBarycenter(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	system, err := buildSystem(c)
	require.NoError(t, err)
	require.Len(t, system.Bodies, len(c.Bodies))

	totalMass := 0.0
	var weighted astromath.Vector3
	for _, b := range system.Bodies {
		totalMass += b.Mass
		weighted = weighted.Add(b.Position.Scale(b.Mass))
	}
	require.Greater(t, totalMass, 0.0)
	assert.InDelta(t, 0, weighted.Scale(1/totalMass).Magnitude(), 1e-9)
}
