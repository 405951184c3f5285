package nbody

import (
	"math"

	astromath "github.com/astroplot/orrery/pkg/astro/math"
)

// Integrate advances the system by durationDays using fixed leapfrog
// steps of dtDays, recording a snapshot every snapEveryDays of simulated
// time (and always the initial and final states). If sink is non-nil each
// recorded snapshot is also pushed to it as it is produced.
func (s *System) Integrate(durationDays, dtDays, snapEveryDays float64, sink SnapshotSink) ([]Snapshot, error) {
	if snapEveryDays <= 0 {
		snapEveryDays = dtDays
	}
	numSteps := int(durationDays / dtDays)

	if sink != nil {
		if err := sink.OnStart(numSteps, int(snapEveryDays/dtDays)); err != nil {
			return nil, err
		}
	}

	history := make([]Snapshot, 0, numSteps/int(math.Max(snapEveryDays/dtDays, 1))+2)

	record := func(snap Snapshot) error {
		history = append(history, snap)
		if sink != nil {
			return sink.OnSnapshot(snap.TimeDays, snap.Bodies)
		}
		return nil
	}

	if err := record(s.snapshot()); err != nil {
		return nil, err
	}

	nextSnap := snapEveryDays
	for step := 0; step < numSteps; step++ {
		s.LeapfrogStep(dtDays)

		if s.Time >= nextSnap || step == numSteps-1 {
			if err := record(s.snapshot()); err != nil {
				return nil, err
			}
			nextSnap += snapEveryDays
		}
	}

	if sink != nil {
		if err := sink.OnEnd(s.Time); err != nil {
			return nil, err
		}
	}
	return history, nil
}

// LeapfrogStep performs one kick-drift-kick step. The scheme is second
// order and symplectic, which keeps the energy error bounded instead of
// accumulating.
func (s *System) LeapfrogStep(dt float64) {
	acc := s.accelerations()

	// Half kick.
	for i := range s.Bodies {
		s.Bodies[i].Velocity = s.Bodies[i].Velocity.Add(acc[i].Scale(dt * 0.5))
	}

	// Full drift.
	for i := range s.Bodies {
		s.Bodies[i].Position = s.Bodies[i].Position.Add(s.Bodies[i].Velocity.Scale(dt))
	}

	// Half kick with the new positions.
	acc = s.accelerations()
	for i := range s.Bodies {
		s.Bodies[i].Velocity = s.Bodies[i].Velocity.Add(acc[i].Scale(dt * 0.5))
	}

	s.Time += dt
}

// accelerations computes gravitational accelerations for all bodies.
// Test particles feel the massive bodies but not each other.
func (s *System) accelerations() []astromath.Vector3 {
	n := len(s.Bodies)
	acc := make([]astromath.Vector3, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || s.Bodies[j].Mass == 0 {
				continue
			}
			acc[i] = acc[i].Add(s.acceleration(i, j))
		}
	}

	return acc
}

// acceleration returns the acceleration on body i due to massive body j.
func (s *System) acceleration(i, j int) astromath.Vector3 {
	r := s.Bodies[j].Position.Sub(s.Bodies[i].Position)
	rMag := r.Magnitude()

	if rMag < 1e-10 {
		return astromath.Vector3{}
	}

	return r.Scale(s.G * s.Bodies[j].Mass / (rMag * rMag * rMag))
}

// ChooseStep picks a timestep in days as a fraction of the shortest
// orbital period in the system, clamped to [minDays, maxDays]. stepsPerOrbit
// around 100-200 keeps the inner planets stable.
func (s *System) ChooseStep(stepsPerOrbit int, minDays, maxDays float64) float64 {
	if stepsPerOrbit <= 0 {
		stepsPerOrbit = 100
	}

	central := 0.0
	for _, b := range s.Bodies {
		if b.Mass > central {
			central = b.Mass
		}
	}
	if central == 0 {
		return maxDays
	}

	shortest := math.MaxFloat64
	for _, b := range s.Bodies {
		r := b.Position.Magnitude()
		if r < 1e-10 {
			continue // central body
		}
		// Circular-orbit period at this radius, in days.
		period := 2 * math.Pi * math.Sqrt(r*r*r/(s.G*central))
		if period < shortest {
			shortest = period
		}
	}
	if shortest == math.MaxFloat64 {
		return maxDays
	}

	dt := shortest / float64(stepsPerOrbit)
	return math.Min(math.Max(dt, minDays), maxDays)
}
