package orbital

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroplot/orrery/pkg/astro/units"
)

func TestSolveKepler_CircularOrbit(t *testing.T) {
	el := Elements{SemiMajorAxis: 1, Eccentricity: 0}

	// With e = 0 the eccentric anomaly equals the mean anomaly.
	for _, m := range []float64{0, 0.5, math.Pi, 5.0} {
		assert.InDelta(t, m, el.solveKepler(m), 1e-12)
	}
}

func TestSolveKepler_SatisfiesEquation(t *testing.T) {
	cases := []struct {
		name string
		e, m float64
	}{
		{"low eccentricity", 0.0167, 1.3},
		{"moderate eccentricity", 0.3, 2.7},
		{"high eccentricity", 0.95, 0.4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el := Elements{SemiMajorAxis: 1, Eccentricity: tc.e}
			E := el.solveKepler(tc.m)
			assert.InDelta(t, tc.m, E-tc.e*math.Sin(E), 1e-9)
		})
	}
}

func TestStateVectors_CircularOrbit(t *testing.T) {
	el := Elements{SemiMajorAxis: 1, Eccentricity: 0}

	pos, vel := el.StateVectors(units.MuYear)

	// Radius a and circular speed sqrt(mu/a) = 2π AU/yr for Earth.
	assert.InDelta(t, 1.0, pos.Magnitude(), 1e-9)
	assert.InDelta(t, 2*math.Pi, vel.Magnitude(), 1e-9)
	// Velocity is perpendicular to the radius on a circle.
	assert.InDelta(t, 0, pos.Dot(vel), 1e-9)
}

func TestElementRecovery_RoundTrip(t *testing.T) {
	orig := FromDegrees(5.2038, 0.0489, 1.303, 100.464, 273.867, 20.020)

	pos, vel := orig.StateVectors(units.MuYear)
	got := FromStateVectors(pos, vel, units.MuYear)

	assert.InDelta(t, orig.SemiMajorAxis, got.SemiMajorAxis, 1e-6)
	assert.InDelta(t, orig.Eccentricity, got.Eccentricity, 1e-6)
	assert.InDelta(t, orig.Inclination, got.Inclination, 1e-6)
	assert.InDelta(t, orig.LongitudeAscendingNode, got.LongitudeAscendingNode, 1e-6)
	assert.InDelta(t, orig.ArgumentPerihelion, got.ArgumentPerihelion, 1e-5)
}

func TestPeriod_KeplerThirdLaw(t *testing.T) {
	// T = 1 yr at 1 AU, T = a^1.5 elsewhere.
	earth := Elements{SemiMajorAxis: 1}
	assert.InDelta(t, 1.0, earth.Period(units.MuYear), 1e-9)

	jupiter := Elements{SemiMajorAxis: 5.2038}
	assert.InDelta(t, math.Pow(5.2038, 1.5), jupiter.Period(units.MuYear), 1e-9)
}

func TestApsides(t *testing.T) {
	el := Elements{SemiMajorAxis: 2, Eccentricity: 0.5}

	assert.InDelta(t, 1.0, el.Perihelion(), 1e-12)
	assert.InDelta(t, 3.0, el.Aphelion(), 1e-12)
}

func TestSamplePath_ClosedAndBounded(t *testing.T) {
	el := FromDegrees(1.524, 0.0935, 1.9, 49.6, 286.5, 0)

	path := el.SamplePath(128)
	require.Len(t, path, 129)
	assert.Equal(t, path[0], path[len(path)-1])

	for _, p := range path {
		r := p.Magnitude()
		assert.GreaterOrEqual(t, r, el.Perihelion()-1e-9)
		assert.LessOrEqual(t, r, el.Aphelion()+1e-9)
	}
}

func TestSamplePath_MinimumResolution(t *testing.T) {
	el := Elements{SemiMajorAxis: 1, Eccentricity: 0.1}
	assert.Len(t, el.SamplePath(0), 4)
}

func TestSpeedAt_VisViva(t *testing.T) {
	el := Elements{SemiMajorAxis: 1, Eccentricity: 0.2}

	vPeri := el.SpeedAt(units.MuYear, el.Perihelion())
	vAph := el.SpeedAt(units.MuYear, el.Aphelion())

	// Fastest at perihelion; angular momentum r*v matches the closed form.
	assert.Greater(t, vPeri, vAph)
	assert.InDelta(t, el.SpecificAngularMomentum(units.MuYear), el.Perihelion()*vPeri, 1e-9)
}

func TestLongitudeOfPerihelion_Normalized(t *testing.T) {
	el := Elements{LongitudeAscendingNode: 5.5, ArgumentPerihelion: 5.5}

	l := el.LongitudeOfPerihelion()
	assert.GreaterOrEqual(t, l, 0.0)
	assert.Less(t, l, 2*math.Pi)
	assert.InDelta(t, math.Mod(11.0, 2*math.Pi), l, 1e-12)
}

func TestSpecificEnergy_NegativeForBoundOrbits(t *testing.T) {
	el := Elements{SemiMajorAxis: 30.0479, Eccentricity: 0.0087}
	assert.Negative(t, el.SpecificEnergy(units.MuYear))
}
