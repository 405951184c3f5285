package orbital

import (
	"math"

	astromath "github.com/astroplot/orrery/pkg/astro/math"
)

// FromStateVectors recovers Keplerian elements from a cartesian position
// and velocity. mu must be in units consistent with pos and vel. Only
// bound (e < 1) orbits are meaningful here; the caller is expected to
// check the recovered eccentricity.
func FromStateVectors(pos, vel astromath.Vector3, mu float64) Elements {
	h := pos.Cross(vel)

	r := pos.Magnitude()
	v := vel.Magnitude()

	// Eccentricity vector.
	eVec := vel.Cross(h).Scale(1.0 / mu).Sub(pos.Scale(1.0 / r))
	e := eVec.Magnitude()

	// Semi-major axis from the vis-viva relation.
	a := 1.0 / (2.0/r - v*v/mu)

	i := math.Acos(h.Z / h.Magnitude())

	// Node vector points at the ascending node.
	n := astromath.Vector3{Z: 1}.Cross(h)
	node := 0.0
	if n.Magnitude() > 1e-10 {
		node = math.Atan2(n.Y, n.X)
		if node < 0 {
			node += 2 * math.Pi
		}
	}

	peri := 0.0
	if n.Magnitude() > 1e-10 && e > 1e-10 {
		cosPeri := n.Dot(eVec) / (n.Magnitude() * e)
		if math.Abs(cosPeri) <= 1.0 {
			peri = math.Acos(cosPeri)
			if eVec.Z < 0 {
				peri = 2*math.Pi - peri
			}
		}
	}

	// Eccentric anomaly from the radial distance, quadrant fixed by the
	// sign of r·v, then mean anomaly via Kepler's equation.
	E := 0.0
	if e > 1e-10 {
		cosE := (1 - r/a) / e
		if math.Abs(cosE) <= 1.0 {
			E = math.Acos(cosE)
			if pos.Dot(vel) < 0 {
				E = 2*math.Pi - E
			}
		}
	}
	M := E - e*math.Sin(E)

	return Elements{
		SemiMajorAxis:          a,
		Eccentricity:           e,
		Inclination:            i,
		LongitudeAscendingNode: node,
		ArgumentPerihelion:     peri,
		MeanAnomaly:            M,
	}
}
