package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroplot/orrery/pkg/astro/units"
)

func TestDefault_EightPlanetsAndSun(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	star, err := c.Star()
	require.NoError(t, err)
	assert.Equal(t, "Sun", star.Name)

	planets := c.Planets()
	require.Len(t, planets, 8)

	// Ordered outward from the Sun.
	assert.Equal(t, "Mercury", planets[0].Name)
	assert.Equal(t, "Neptune", planets[7].Name)
	for i := 1; i < len(planets); i++ {
		assert.Greater(t, planets[i].SemiMajorAxis, planets[i-1].SemiMajorAxis)
	}
}

func TestBody_UnitAccessors(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	var earth Body
	for _, p := range c.Planets() {
		if p.Name == "Earth" {
			earth = p
		}
	}
	require.NotEmpty(t, earth.Name)

	assert.InDelta(t, 1.0, earth.SemiMajorAxisAU(), 0.01)
	assert.InDelta(t, 1.0, earth.PeriodYears(), 0.01)
	assert.InDelta(t, 6371.0, earth.RadiusKm(), 1.0)
	assert.InDelta(t, 3.0e-6, earth.MassSolar(), 1e-7)

	// The base fields stay SI, so they round-trip through the constants.
	assert.InDelta(t, units.EarthMass, earth.Mass, units.EarthMass*0.01)
	assert.InDelta(t, units.AUToMeters(1), earth.SemiMajorAxis, units.AUToMeters(1)*0.01)

	el := earth.Elements()
	assert.InDelta(t, 1.0, el.SemiMajorAxis, 0.01)
	assert.InDelta(t, 0.0167, el.Eccentricity, 1e-9)
}

func TestLoadFile_RejectsMalformed(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "invalid json",
			content: "{not json",
			errText: "parsing catalog",
		},
		{
			name: "negative mass",
			content: `{"sun": {"name": "Sun", "type": "star", "mass": -1, "radius": 1},
				"p": {"name": "P", "type": "planet", "mass": 1, "radius": 1,
				"semi_major_axis": 1, "orbital_period_days": 1}}`,
			errText: "mass must be positive",
		},
		{
			name: "unbound eccentricity",
			content: `{"sun": {"name": "Sun", "type": "star", "mass": 1, "radius": 1},
				"p": {"name": "P", "type": "planet", "mass": 1, "radius": 1,
				"semi_major_axis": 1, "eccentricity": 1.2, "orbital_period_days": 1}}`,
			errText: "eccentricity",
		},
		{
			name: "no star",
			content: `{"p": {"name": "P", "type": "planet", "mass": 1, "radius": 1,
				"semi_major_axis": 1, "orbital_period_days": 1}}`,
			errText: "exactly one star",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Bodies, 9)
}

func TestLoadMinorBodies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "etnos.csv")

	content := "designation,a,e,i,node,peri,M,epoch,H\n" +
		"Sedna,506.8,0.855,11.93,144.4,311.3,358.2,2459000.5,1.52\n" +
		"2012 VP113,261.0,0.689,24.1,90.8,293.9,3.4,2459000.5,4.0\n" +
		"bad row,notanumber,0.1,1,1,1,1\n" +
		"short,1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	bodies, err := LoadMinorBodies(path)
	require.NoError(t, err)
	require.Len(t, bodies, 2) // malformed rows skipped

	sedna := bodies[0]
	assert.Equal(t, "Sedna", sedna.Designation)
	assert.InDelta(t, 506.8, sedna.Elements.SemiMajorAxis, 1e-9)
	assert.InDelta(t, 0.855, sedna.Elements.Eccentricity, 1e-9)
	assert.Greater(t, sedna.DiameterKm, 0.0)
}

func TestEstimateDiameter(t *testing.T) {
	// Brighter objects (lower H) are larger at fixed albedo.
	assert.Greater(t, EstimateDiameter(1.0, 0.1), EstimateDiameter(5.0, 0.1))
	// Zero albedo falls back to the 0.1 default.
	assert.Equal(t, EstimateDiameter(3.0, 0.1), EstimateDiameter(3.0, 0))
}
