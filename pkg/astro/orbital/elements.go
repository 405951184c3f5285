package orbital

import (
	"math"

	astromath "github.com/astroplot/orrery/pkg/astro/math"
)

// Elements is a set of Keplerian orbital elements. Angles are stored in
// radians; use FromDegrees when building elements from fact-sheet values.
type Elements struct {
	SemiMajorAxis          float64 // a - semi-major axis (AU)
	Eccentricity           float64 // e - eccentricity [0,1) for bound orbits
	Inclination            float64 // i - inclination (rad)
	LongitudeAscendingNode float64 // Ω - longitude of ascending node (rad)
	ArgumentPerihelion     float64 // ω - argument of perihelion (rad)
	MeanAnomaly            float64 // M - mean anomaly at epoch (rad)
	Epoch                  float64 // JD - Julian date of epoch
}

// FromDegrees builds Elements from angles in degrees, the convention of
// the catalog and of published element tables.
func FromDegrees(a, e, incDeg, nodeDeg, periDeg, meanDeg float64) Elements {
	return Elements{
		SemiMajorAxis:          a,
		Eccentricity:           e,
		Inclination:            incDeg * math.Pi / 180,
		LongitudeAscendingNode: nodeDeg * math.Pi / 180,
		ArgumentPerihelion:     periDeg * math.Pi / 180,
		MeanAnomaly:            meanDeg * math.Pi / 180,
	}
}

// solveKepler solves Kepler's equation M = E - e*sin(E) for the eccentric
// anomaly E by Newton-Raphson iteration.
func (el Elements) solveKepler(meanAnomaly float64) float64 {
	E := meanAnomaly
	if el.Eccentricity > 0.8 {
		E = math.Pi // better seed for high eccentricity
	}

	const tolerance = 1e-10
	const maxIterations = 50

	for i := 0; i < maxIterations; i++ {
		f := E - el.Eccentricity*math.Sin(E) - meanAnomaly
		fp := 1 - el.Eccentricity*math.Cos(E)

		deltaE := f / fp
		E -= deltaE

		if math.Abs(deltaE) < tolerance {
			break
		}
	}

	return E
}

// rotation returns the orbital-plane to inertial-frame rotation matrix as
// six coefficients (the bottom row of the position never multiplies vz).
func (el Elements) rotation() (r11, r12, r21, r22, r31, r32 float64) {
	cosNode := math.Cos(el.LongitudeAscendingNode)
	sinNode := math.Sin(el.LongitudeAscendingNode)
	cosInc := math.Cos(el.Inclination)
	sinInc := math.Sin(el.Inclination)
	cosPeri := math.Cos(el.ArgumentPerihelion)
	sinPeri := math.Sin(el.ArgumentPerihelion)

	r11 = cosNode*cosPeri - sinNode*sinPeri*cosInc
	r12 = -cosNode*sinPeri - sinNode*cosPeri*cosInc
	r21 = sinNode*cosPeri + cosNode*sinPeri*cosInc
	r22 = -sinNode*sinPeri + cosNode*cosPeri*cosInc
	r31 = sinPeri * sinInc
	r32 = cosPeri * sinInc
	return
}

// StateVectors converts the elements to a cartesian position and velocity
// at the stored mean anomaly. mu is the gravitational parameter in units
// consistent with the semi-major axis; with a in AU and mu in AU³/yr² the
// velocity comes back in AU/yr.
func (el Elements) StateVectors(mu float64) (pos, vel astromath.Vector3) {
	E := el.solveKepler(el.MeanAnomaly)
	cosE := math.Cos(E)

	nu := 2.0 * math.Atan2(
		math.Sqrt(1+el.Eccentricity)*math.Sin(E/2),
		math.Sqrt(1-el.Eccentricity)*math.Cos(E/2),
	)

	// Distance from focus and position in the orbital plane.
	r := el.SemiMajorAxis * (1 - el.Eccentricity*cosE)
	x := r * math.Cos(nu)
	y := r * math.Sin(nu)

	// Velocity in the orbital plane.
	factor := math.Sqrt(mu/el.SemiMajorAxis) / math.Sqrt(1-el.Eccentricity*el.Eccentricity)
	vx := -factor * el.SemiMajorAxis * math.Sin(E)
	vy := factor * el.SemiMajorAxis * math.Sqrt(1-el.Eccentricity*el.Eccentricity) * cosE

	r11, r12, r21, r22, r31, r32 := el.rotation()

	pos = astromath.Vector3{
		X: r11*x + r12*y,
		Y: r21*x + r22*y,
		Z: r31*x + r32*y,
	}
	vel = astromath.Vector3{
		X: r11*vx + r12*vy,
		Y: r21*vx + r22*vy,
		Z: r31*vx + r32*vy,
	}
	return pos, vel
}

// PositionAt evaluates the orbit position at an arbitrary mean anomaly
// without touching the stored epoch anomaly.
func (el Elements) PositionAt(meanAnomaly float64) astromath.Vector3 {
	E := el.solveKepler(meanAnomaly)
	cosE := math.Cos(E)

	nu := 2.0 * math.Atan2(
		math.Sqrt(1+el.Eccentricity)*math.Sin(E/2),
		math.Sqrt(1-el.Eccentricity)*math.Cos(E/2),
	)

	r := el.SemiMajorAxis * (1 - el.Eccentricity*cosE)
	x := r * math.Cos(nu)
	y := r * math.Sin(nu)

	r11, r12, r21, r22, r31, r32 := el.rotation()

	return astromath.Vector3{
		X: r11*x + r12*y,
		Y: r21*x + r22*y,
		Z: r31*x + r32*y,
	}
}

// SamplePath evaluates the orbit at n evenly spaced mean anomalies and
// returns the resulting polyline. The first point is repeated at the end
// so the path renders as a closed ellipse. n must be at least 3.
func (el Elements) SamplePath(n int) []astromath.Vector3 {
	if n < 3 {
		n = 3
	}
	path := make([]astromath.Vector3, 0, n+1)
	for i := 0; i < n; i++ {
		m := 2 * math.Pi * float64(i) / float64(n)
		path = append(path, el.PositionAt(m))
	}
	path = append(path, path[0])
	return path
}

// Perihelion returns the perihelion distance a(1-e).
func (el Elements) Perihelion() float64 {
	return el.SemiMajorAxis * (1 - el.Eccentricity)
}

// Aphelion returns the aphelion distance a(1+e).
func (el Elements) Aphelion() float64 {
	return el.SemiMajorAxis * (1 + el.Eccentricity)
}

// Period returns the orbital period for gravitational parameter mu, in
// the time unit implied by mu.
func (el Elements) Period(mu float64) float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(el.SemiMajorAxis, 3)/mu)
}

// LongitudeOfPerihelion returns ϖ = Ω + ω normalized to [0, 2π).
func (el Elements) LongitudeOfPerihelion() float64 {
	l := math.Mod(el.LongitudeAscendingNode+el.ArgumentPerihelion, 2*math.Pi)
	if l < 0 {
		l += 2 * math.Pi
	}
	return l
}

// SpecificEnergy returns the specific orbital energy -mu/2a.
func (el Elements) SpecificEnergy(mu float64) float64 {
	return -mu / (2 * el.SemiMajorAxis)
}

// SpecificAngularMomentum returns the magnitude of the specific angular
// momentum sqrt(mu*a*(1-e²)).
func (el Elements) SpecificAngularMomentum(mu float64) float64 {
	return math.Sqrt(mu * el.SemiMajorAxis * (1 - el.Eccentricity*el.Eccentricity))
}

// SpeedAt returns the orbital speed at radial distance r via the vis-viva
// equation.
func (el Elements) SpeedAt(mu, r float64) float64 {
	return math.Sqrt(mu * (2/r - 1/el.SemiMajorAxis))
}
