package catalog

import (
	"fmt"

	"github.com/astroplot/orrery/pkg/astro/orbital"
	"github.com/astroplot/orrery/pkg/astro/units"
)

// BodyType distinguishes the central star from the planets.
type BodyType string

const (
	BodyTypeStar   BodyType = "star"
	BodyTypePlanet BodyType = "planet"
)

// Body is one record of the planetary catalog, a transcription of NASA
// fact-sheet values. Base quantities are SI (kg, m); the fact-sheet
// extras keep their customary units, noted per field.
type Body struct {
	Name  string   `json:"name"`
	Type  BodyType `json:"type"`
	Mass  float64  `json:"mass"`   // kg
	Radius float64 `json:"radius"` // m
	Color string   `json:"color"`  // hex, used by every renderer

	// Orbital elements, empty for the star.
	SemiMajorAxis     float64 `json:"semi_major_axis,omitempty"` // m
	Eccentricity      float64 `json:"eccentricity,omitempty"`
	InclinationDeg    float64 `json:"inclination_deg,omitempty"`
	AscendingNodeDeg  float64 `json:"ascending_node_deg,omitempty"`
	PerihelionArgDeg  float64 `json:"perihelion_arg_deg,omitempty"`
	MeanAnomalyDeg    float64 `json:"mean_anomaly_deg,omitempty"`
	OrbitalPeriodDays float64 `json:"orbital_period_days,omitempty"`

	// Fact-sheet extras.
	Density          float64 `json:"density,omitempty"`            // g/cm³
	SurfaceGravity   float64 `json:"surface_gravity,omitempty"`    // m/s²
	EscapeVelocity   float64 `json:"escape_velocity,omitempty"`    // km/s
	Albedo           float64 `json:"albedo,omitempty"`
	MeanTemperatureC float64 `json:"mean_temperature_c,omitempty"` // °C
	DayLengthHours   float64 `json:"day_length_hours,omitempty"`
	MoonCount        int     `json:"moon_count,omitempty"`
	DiscoveryYear    int     `json:"discovery_year,omitempty"` // 0 = known since antiquity
}

// SemiMajorAxisAU returns the semi-major axis in AU.
func (b Body) SemiMajorAxisAU() float64 {
	return units.MetersToAU(b.SemiMajorAxis)
}

// RadiusKm returns the body radius in kilometers.
func (b Body) RadiusKm() float64 {
	return b.Radius / 1000
}

// MassSolar returns the mass in solar masses.
func (b Body) MassSolar() float64 {
	return units.KgToSolar(b.Mass)
}

// PeriodYears returns the orbital period in Julian years.
func (b Body) PeriodYears() float64 {
	return units.DaysToYears(b.OrbitalPeriodDays)
}

// Elements converts the catalog record to Keplerian elements in AU and
// radians, the units the orbital package works in.
func (b Body) Elements() orbital.Elements {
	return orbital.FromDegrees(
		b.SemiMajorAxisAU(),
		b.Eccentricity,
		b.InclinationDeg,
		b.AscendingNodeDeg,
		b.PerihelionArgDeg,
		b.MeanAnomalyDeg,
	)
}

// Catalog is an ordered set of bodies: the star first, planets by
// increasing semi-major axis.
type Catalog struct {
	Bodies []Body
}

// Star returns the catalog's central star.
func (c *Catalog) Star() (Body, error) {
	for _, b := range c.Bodies {
		if b.Type == BodyTypeStar {
			return b, nil
		}
	}
	return Body{}, fmt.Errorf("catalog has no star")
}

// Planets returns the planets in catalog order.
func (c *Catalog) Planets() []Body {
	planets := make([]Body, 0, len(c.Bodies))
	for _, b := range c.Bodies {
		if b.Type == BodyTypePlanet {
			planets = append(planets, b)
		}
	}
	return planets
}

// Validate checks the physical invariants of every record: positive
// values where physically meaningful, bound eccentricities, exactly one
// star. A catalog that fails validation is never handed to a renderer.
func (c *Catalog) Validate() error {
	if len(c.Bodies) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	stars := 0
	for _, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("body with empty name")
		}
		if b.Mass <= 0 {
			return fmt.Errorf("body %s: mass must be positive, got %g", b.Name, b.Mass)
		}
		if b.Radius <= 0 {
			return fmt.Errorf("body %s: radius must be positive, got %g", b.Name, b.Radius)
		}

		switch b.Type {
		case BodyTypeStar:
			stars++
		case BodyTypePlanet:
			if b.SemiMajorAxis <= 0 {
				return fmt.Errorf("planet %s: semi-major axis must be positive, got %g", b.Name, b.SemiMajorAxis)
			}
			if b.Eccentricity < 0 || b.Eccentricity >= 1 {
				return fmt.Errorf("planet %s: eccentricity must be in [0,1), got %g", b.Name, b.Eccentricity)
			}
			if b.OrbitalPeriodDays <= 0 {
				return fmt.Errorf("planet %s: orbital period must be positive, got %g", b.Name, b.OrbitalPeriodDays)
			}
		default:
			return fmt.Errorf("body %s: unknown type %q", b.Name, b.Type)
		}
	}

	if stars != 1 {
		return fmt.Errorf("catalog must contain exactly one star, found %d", stars)
	}
	return nil
}
