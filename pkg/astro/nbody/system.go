package nbody

import (
	astromath "github.com/astroplot/orrery/pkg/astro/math"
	"github.com/astroplot/orrery/pkg/astro/units"
)

// Body is a point mass in the N-body system. A zero mass marks a test
// particle: it feels gravity but exerts none.
type Body struct {
	Name     string             `json:"name"`
	Mass     float64            `json:"mass"`     // solar masses
	Position astromath.Vector3  `json:"position"` // AU
	Velocity astromath.Vector3  `json:"velocity"` // AU/day
}

// Snapshot is the state of all bodies at a simulation time.
type Snapshot struct {
	TimeDays float64 `json:"time_days"`
	Bodies   []Body  `json:"bodies"`
}

// System holds the bodies and the running clock of an integration.
type System struct {
	Bodies []Body
	Time   float64 // days since the start of the integration
	G      float64 // AU³/(M☉·day²)
}

// NewSystem creates an empty system in solar-system units.
func NewSystem() *System {
	return &System{
		Bodies: make([]Body, 0),
		G:      units.GDay,
	}
}

// Add appends a body to the system.
func (s *System) Add(b Body) {
	s.Bodies = append(s.Bodies, b)
}

// Copy returns a deep copy of the system.
func (s *System) Copy() *System {
	out := &System{
		Bodies: make([]Body, len(s.Bodies)),
		Time:   s.Time,
		G:      s.G,
	}
	copy(out.Bodies, s.Bodies)
	return out
}

// snapshot captures the current state.
func (s *System) snapshot() Snapshot {
	bodies := make([]Body, len(s.Bodies))
	copy(bodies, s.Bodies)
	return Snapshot{TimeDays: s.Time, Bodies: bodies}
}

// RecenterToBarycenter shifts positions and velocities so the center of
// mass sits at the origin with zero net momentum. Without this the whole
// system drifts over long integrations.
func (s *System) RecenterToBarycenter() {
	totalMass := 0.0
	var comPos, comVel astromath.Vector3

	for _, b := range s.Bodies {
		if b.Mass == 0 {
			continue
		}
		totalMass += b.Mass
		comPos = comPos.Add(b.Position.Scale(b.Mass))
		comVel = comVel.Add(b.Velocity.Scale(b.Mass))
	}
	if totalMass == 0 {
		return
	}
	comPos = comPos.Scale(1.0 / totalMass)
	comVel = comVel.Scale(1.0 / totalMass)

	for i := range s.Bodies {
		s.Bodies[i].Position = s.Bodies[i].Position.Sub(comPos)
		s.Bodies[i].Velocity = s.Bodies[i].Velocity.Sub(comVel)
	}
}

// KineticEnergy returns the total kinetic energy of the massive bodies.
func (s *System) KineticEnergy() float64 {
	energy := 0.0
	for _, b := range s.Bodies {
		if b.Mass > 0 {
			energy += 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
		}
	}
	return energy
}

// PotentialEnergy returns the total gravitational potential energy of the
// massive bodies.
func (s *System) PotentialEnergy() float64 {
	energy := 0.0
	n := len(s.Bodies)

	for i := 0; i < n-1; i++ {
		if s.Bodies[i].Mass == 0 {
			continue
		}
		for j := i + 1; j < n; j++ {
			if s.Bodies[j].Mass == 0 {
				continue
			}
			r := s.Bodies[i].Position.Distance(s.Bodies[j].Position)
			if r > 1e-10 {
				energy -= s.G * s.Bodies[i].Mass * s.Bodies[j].Mass / r
			}
		}
	}

	return energy
}

// TotalEnergy returns kinetic plus potential energy. Conserved by the
// leapfrog scheme up to a bounded oscillation.
func (s *System) TotalEnergy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}

// AngularMomentum returns the total angular momentum of the massive
// bodies about the origin.
func (s *System) AngularMomentum() astromath.Vector3 {
	var total astromath.Vector3
	for _, b := range s.Bodies {
		if b.Mass > 0 {
			total = total.Add(b.Position.Cross(b.Velocity).Scale(b.Mass))
		}
	}
	return total
}
