package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroplot/orrery/pkg/catalog"
)

func defaultReport(t *testing.T) *Report {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	r, err := Compute(c)
	require.NoError(t, err)
	return r
}

func TestCompute_DerivedColumns(t *testing.T) {
	r := defaultReport(t)
	require.Len(t, r.Rows, 8)

	for _, row := range r.Rows {
		// Bound orbits have negative energy and positive momentum.
		assert.Negative(t, row.OrbitalEnergy, "planet %s", row.Name)
		assert.Positive(t, row.AngularMomentum, "planet %s", row.Name)
		assert.Positive(t, row.OrbitalSpeed, "planet %s", row.Name)
	}

	// Earth's circular-equivalent speed is about 29.8 km/s.
	var earth Row
	for _, row := range r.Rows {
		if row.Name == "Earth" {
			earth = row
		}
	}
	assert.InDelta(t, 29.8e3, earth.OrbitalSpeed, 0.2e3)
}

func TestCompute_EnergyGrowsTowardZeroOutward(t *testing.T) {
	r := defaultReport(t)

	// E = -GM/2a: outer planets are less bound.
	for i := 1; i < len(r.Rows); i++ {
		assert.Greater(t, r.Rows[i].OrbitalEnergy, r.Rows[i-1].OrbitalEnergy)
	}
}

func TestVerifyKepler(t *testing.T) {
	r := defaultReport(t)
	check := r.VerifyKepler()

	require.Len(t, check.Ratios, 8)
	for i, ratio := range check.Ratios {
		assert.InDelta(t, 1.0, ratio, 0.02, "planet %s", check.Names[i])
	}
	assert.InDelta(t, 1.0, check.MeanRatio, 0.01)
	assert.Less(t, check.StdDev, 0.02)

	// log T vs log a slope is 3/2.
	assert.InDelta(t, 1.5, check.Slope, 0.01)
	assert.InDelta(t, 0.0, check.Intercept, 0.01)
}

func TestCorrelate(t *testing.T) {
	r := defaultReport(t)

	corr, err := r.Correlate()
	require.NoError(t, err)
	require.Len(t, corr.Labels, 7)
	require.Len(t, corr.Matrix, 7)

	for i := range corr.Matrix {
		// Unit diagonal, symmetric, all values in [-1, 1].
		assert.InDelta(t, 1.0, corr.Matrix[i][i], 1e-12)
		for j := range corr.Matrix[i] {
			assert.InDelta(t, corr.Matrix[j][i], corr.Matrix[i][j], 1e-12)
			assert.LessOrEqual(t, corr.Matrix[i][j], 1.0+1e-12)
			assert.GreaterOrEqual(t, corr.Matrix[i][j], -1.0-1e-12)
		}
	}

	// Period and semi-major axis are almost perfectly correlated.
	assert.Greater(t, corr.Matrix[2][3], 0.98)
}

func TestCorrelate_TooFewPlanets(t *testing.T) {
	r := &Report{Rows: []Row{{Name: "A"}, {Name: "B"}}}
	_, err := r.Correlate()
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	r := defaultReport(t)

	ecc := r.Summarize(func(row Row) float64 { return row.Eccentricity })
	assert.Greater(t, ecc.Mean, 0.0)
	assert.Less(t, ecc.Mean, 0.3)
	assert.Positive(t, ecc.StdDev)
}

func TestCompute_NoPlanets(t *testing.T) {
	c := &catalog.Catalog{Bodies: []catalog.Body{{
		Name: "Sun", Type: catalog.BodyTypeStar, Mass: 1.989e30, Radius: 6.96e8,
	}}}
	_, err := Compute(c)
	assert.Error(t, err)
}
