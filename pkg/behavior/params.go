package behavior

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidParameters = errors.New("invalid simulation parameters")

// Parameters controls the physics constants shared by every agent of a run.
// Angles are in degrees, distances in world units, speeds in units per second.
type Parameters struct {
	InitialSpeed float64
	MinSpeed     float64
	MaxSpeed     float64

	MinNeighborDistance float64 // How close another boid needs to be to be considered a neighbor
	NeighborFOV         float64 // Half-angle of the field of view, in degrees

	EdgeEffectDistance float64 // How close to a wall a boid can get before the wall pushes back

	WallWeight       float64
	AlignmentWeight  float64
	CohesionWeight   float64
	SeparationWeight float64

	TargetAttractionWeight  float64
	ObstacleRejectionWeight float64
}

// DefaultParameters returns values tuned for a fish tank sized volume.
func DefaultParameters() Parameters {
	return Parameters{
		InitialSpeed:            2,
		MinSpeed:                2,
		MaxSpeed:                5,
		MinNeighborDistance:     1,
		NeighborFOV:             90,
		EdgeEffectDistance:      3,
		WallWeight:              1,
		AlignmentWeight:         2,
		CohesionWeight:          3,
		SeparationWeight:        5,
		TargetAttractionWeight:  3,
		ObstacleRejectionWeight: 10,
	}
}

// Validate checks the invariants every rule relies on. NaN fails every check.
func (p Parameters) Validate() error {
	if !(p.MinSpeed >= 0) {
		return fmt.Errorf("%w: negative min speed %v", ErrInvalidParameters, p.MinSpeed)
	}
	if !(p.MinSpeed <= p.MaxSpeed) {
		return fmt.Errorf("%w: min speed %v exceeds max speed %v", ErrInvalidParameters, p.MinSpeed, p.MaxSpeed)
	}
	if !(p.InitialSpeed >= 0) {
		return fmt.Errorf("%w: negative initial speed %v", ErrInvalidParameters, p.InitialSpeed)
	}
	if !(p.MinNeighborDistance >= 0) {
		return fmt.Errorf("%w: negative neighbor distance %v", ErrInvalidParameters, p.MinNeighborDistance)
	}
	if !(p.NeighborFOV >= 0 && p.NeighborFOV <= 180) {
		return fmt.Errorf("%w: neighbor fov %v outside [0, 180]", ErrInvalidParameters, p.NeighborFOV)
	}
	if !(p.EdgeEffectDistance >= 0) {
		return fmt.Errorf("%w: negative edge effect distance %v", ErrInvalidParameters, p.EdgeEffectDistance)
	}
	weights := []struct {
		name  string
		value float64
	}{
		{"wall", p.WallWeight},
		{"alignment", p.AlignmentWeight},
		{"cohesion", p.CohesionWeight},
		{"separation", p.SeparationWeight},
		{"target", p.TargetAttractionWeight},
		{"obstacle", p.ObstacleRejectionWeight},
	}
	for _, w := range weights {
		if !(w.value >= 0) {
			return fmt.Errorf("%w: %s weight must be non-negative, got %v", ErrInvalidParameters, w.name, w.value)
		}
	}
	return nil
}

// Rules returns the parameters together with the values derived from them.
// Call it once per run (or again after changing parameters), never per agent.
func (p Parameters) Rules() Rules {
	return Rules{
		Parameters:      p,
		ViewThreshold:   math.Cos(p.NeighborFOV * math.Pi / 180),
		Omnidirectional: p.NeighborFOV >= 180,
	}
}

// Rules is Parameters plus the cached derived values used in the hot loops.
type Rules struct {
	Parameters

	// ViewThreshold is cos(NeighborFOV); a neighbor must have dot(forward, dir) above it.
	ViewThreshold float64
	// Omnidirectional is set for a 180° half-angle: every direction is visible.
	Omnidirectional bool
}
