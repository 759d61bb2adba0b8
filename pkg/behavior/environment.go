package behavior

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

var (
	ErrInvalidTarget   = errors.New("invalid target")
	ErrInvalidObstacle = errors.New("invalid obstacle")
	ErrInvalidVolume   = errors.New("invalid simulation volume")
)

// Target is a stationary attractor. Agents inside the core radius are no longer
// attracted so they don't all end up circling its center.
// Radii are stored squared to keep square roots out of the per-agent loop.
type Target struct {
	Position           geometry.Vector3D
	CoreRadiusSq       float64
	AttractionRadiusSq float64
}

// NewTarget builds a Target from plain (non squared) radii.
func NewTarget(position geometry.Vector3D, coreRadius, attractionRadius float64) (Target, error) {
	if coreRadius < 0 || attractionRadius < 0 {
		return Target{}, fmt.Errorf("%w: negative radius (core=%v, attraction=%v)", ErrInvalidTarget, coreRadius, attractionRadius)
	}
	if coreRadius > attractionRadius {
		return Target{}, fmt.Errorf("%w: core radius %v exceeds attraction radius %v", ErrInvalidTarget, coreRadius, attractionRadius)
	}
	return Target{
		Position:           position,
		CoreRadiusSq:       coreRadius * coreRadius,
		AttractionRadiusSq: attractionRadius * attractionRadius,
	}, nil
}

// Attracts reports whether a point at squared distance distSq lies in the attraction ring.
func (t Target) Attracts(distSq float64) bool {
	return distSq > t.CoreRadiusSq && distSq < t.AttractionRadiusSq
}

// Obstacle is a repulsor. Its position is moved between ticks by an external patrol.
type Obstacle struct {
	Position geometry.Vector3D
	RadiusSq float64
}

// NewObstacle builds an Obstacle from a plain radius.
func NewObstacle(position geometry.Vector3D, radius float64) (Obstacle, error) {
	if radius < 0 {
		return Obstacle{}, fmt.Errorf("%w: negative radius %v", ErrInvalidObstacle, radius)
	}
	return Obstacle{Position: position, RadiusSq: radius * radius}, nil
}

// Rejects reports whether a point at squared distance distSq is inside the obstacle radius.
func (o Obstacle) Rejects(distSq float64) bool {
	return distSq < o.RadiusSq
}

// Volume is the axis-aligned cube agents are kept in.
type Volume struct {
	Center             geometry.Vector3D
	Size               float64 // edge length
	EdgeEffectDistance float64 // distance from a face where the wall force kicks in
}

// NewVolume validates and builds a Volume.
func NewVolume(center geometry.Vector3D, size, edgeEffectDistance float64) (Volume, error) {
	if size <= 0 {
		return Volume{}, fmt.Errorf("%w: size must be positive, got %v", ErrInvalidVolume, size)
	}
	if edgeEffectDistance < 0 {
		return Volume{}, fmt.Errorf("%w: negative edge effect distance %v", ErrInvalidVolume, edgeEffectDistance)
	}
	return Volume{Center: center, Size: size, EdgeEffectDistance: edgeEffectDistance}, nil
}

// HalfSize is the distance from the center to every face.
func (v Volume) HalfSize() float64 {
	return v.Size * 0.5
}

// Min returns the corner with the smallest coordinates.
func (v Volume) Min() geometry.Vector3D {
	h := v.HalfSize()
	return v.Center.Sub(geometry.Vector3D{X: h, Y: h, Z: h})
}

// Max returns the corner with the largest coordinates.
func (v Volume) Max() geometry.Vector3D {
	h := v.HalfSize()
	return v.Center.Add(geometry.Vector3D{X: h, Y: h, Z: h})
}

// Contains reports whether p is inside the cube (faces included).
func (v Volume) Contains(p geometry.Vector3D) bool {
	lo, hi := v.Min(), v.Max()
	return p.X >= lo.X && p.X <= hi.X &&
		p.Y >= lo.Y && p.Y <= hi.Y &&
		p.Z >= lo.Z && p.Z <= hi.Z
}

// Environment groups everything the force model reads besides the agents.
// It is never mutated during a tick.
type Environment struct {
	Targets   []Target
	Obstacles []Obstacle
	Volume    Volume
}

// Clone returns a copy that shares no slices with e.
func (e Environment) Clone() Environment {
	return Environment{
		Targets:   append([]Target(nil), e.Targets...),
		Obstacles: append([]Obstacle(nil), e.Obstacles...),
		Volume:    e.Volume,
	}
}
