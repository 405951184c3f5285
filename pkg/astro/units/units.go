package units

// Astronomical constants and conversion factors shared by the catalog,
// orbital and nbody packages. Values follow the IAU 2012 definition of the
// astronomical unit and the NASA fact-sheet convention for everything else.
const (
	// AU is the astronomical unit in meters.
	AU = 149597870700.0

	// G is the gravitational constant in m³/(kg·s²).
	G = 6.67430e-11

	// SolarMass is the mass of the Sun in kg.
	SolarMass = 1.989e30

	// EarthMass is the mass of the Earth in kg.
	EarthMass = 5.972e24

	// SecondsPerDay and DaysPerYear convert between time units.
	SecondsPerDay = 86400.0
	DaysPerYear   = 365.25

	// MuYear is the heliocentric gravitational parameter in AU³/yr².
	// With a in AU and T in years Kepler's third law reduces to T² = a³.
	MuYear = 4 * 3.14159265358979323846 * 3.14159265358979323846

	// GDay is the gravitational constant in AU³/(M☉·day²), the unit
	// system the N-body integrator runs in.
	GDay = 2.959122e-4
)

// MetersToAU converts a distance in meters to astronomical units.
func MetersToAU(m float64) float64 { return m / AU }

// AUToMeters converts a distance in astronomical units to meters.
func AUToMeters(au float64) float64 { return au * AU }

// KgToSolar converts a mass in kilograms to solar masses.
func KgToSolar(kg float64) float64 { return kg / SolarMass }

// DaysToYears converts a duration in days to Julian years.
func DaysToYears(d float64) float64 { return d / DaysPerYear }

// YearsToDays converts a duration in Julian years to days.
func YearsToDays(y float64) float64 { return y * DaysPerYear }

// AUPerYearToAUPerDay rescales a velocity from AU/yr to AU/day, the
// conversion required at every hand-off into the integrator.
func AUPerYearToAUPerDay(v float64) float64 { return v / DaysPerYear }
