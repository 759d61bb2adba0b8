package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon Precision constant used for float64 comparisons and for
// deciding when a vector is too short to carry a direction.
const (
	Epsilon = 1e-9
)

var (
	// Zero is the additive identity.
	Zero = Vector3D{}
	// Right, Up and Forward follow a left-handed, Y-up frame.
	Right   = Vector3D{X: 1}
	Up      = Vector3D{Y: 1}
	Forward = Vector3D{Z: 1}
)

// Vector3D represents a 3D vector or point in cartesian space.
// Fields are public because they are fundamental data, not internal state,
// which keeps literal initialization short: v := Vector3D{1, 2, 3}
type Vector3D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// NewVector creates a new Vector3D.
func NewVector(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// NewVectorSpherical creates a vector from spherical coordinates.
// theta is the azimuth around the Y axis, phi the polar angle from +Y, both in radians.
func NewVectorSpherical(radius, theta, phi float64) Vector3D {
	sinPhi := math.Sin(phi)
	v := Vector3D{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	}
	// Snap values that only exist because of float noise.
	if math.Abs(v.X) < Epsilon {
		v.X = 0
	}
	if math.Abs(v.Y) < Epsilon {
		v.Y = 0
	}
	if math.Abs(v.Z) < Epsilon {
		v.Z = 0
	}
	return v
}

// String implements the fmt.Stringer interface.
func (v Vector3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers returning new values keep vectors immutable.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts the other vector from the current vector.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul scales the vector by a scalar value.
func (v Vector3D) Mul(scalar float64) Vector3D {
	return Vector3D{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Div scales the vector by 1/scalar.
// A zero scalar yields an Inf vector together with an error.
func (v Vector3D) Div(scalar float64) (Vector3D, error) {
	if scalar == 0 {
		return Vector3D{math.Inf(1), math.Inf(1), math.Inf(1)}, errors.New("vector cannot be divided by zero")
	}
	return Vector3D{v.X / scalar, v.Y / scalar, v.Z / scalar}, nil
}

// Neg returns the opposite vector.
func (v Vector3D) Neg() Vector3D {
	return Vector3D{-v.X, -v.Y, -v.Z}
}

// ---------------------------------------------------------------------
// Vector3D Products
// ---------------------------------------------------------------------

// Dot calculates the dot product of two vectors.
func (v Vector3D) Dot(other Vector3D) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross calculates the cross product v × other.
func (v Vector3D) Cross(other Vector3D) Vector3D {
	return Vector3D{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Cheaper than Len() since it avoids the square root; use it for comparisons.
func (v Vector3D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3D) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector3D) Normalize() Vector3D {
	l := v.Len()
	if l < Epsilon {
		return Vector3D{}
	}
	return v.Mul(1 / l)
}

// NormalizeOr returns the unit vector of v, or fallback when v has no direction.
func (v Vector3D) NormalizeOr(fallback Vector3D) Vector3D {
	l := v.Len()
	if l < Epsilon {
		return fallback
	}
	return v.Mul(1 / l)
}

// IsZero reports whether the vector is too short to carry a direction.
func (v Vector3D) IsZero() bool {
	return v.LenSqr() < Epsilon*Epsilon
}

// IsFinite reports whether every component is neither NaN nor Inf.
func (v Vector3D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector3D) DistanceTo(other Vector3D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector3D) DistanceSquaredTo(other Vector3D) float64 {
	return v.Sub(other).LenSqr()
}

// AngleBetween returns the unsigned angle in radians between v and other.
// Returns 0 when either vector has no direction.
func (v Vector3D) AngleBetween(other Vector3D) float64 {
	a, b := v.Normalize(), other.Normalize()
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return math.Acos(Clamp(a.Dot(b), -1, 1))
}

// Lerp (Linear Interpolate) calculates a point between v and target based on t [0, 1].
func (v Vector3D) Lerp(target Vector3D, t float64) Vector3D {
	return v.Add(target.Sub(v).Mul(t))
}

// Project projects vector v onto vector on.
func (v Vector3D) Project(on Vector3D) Vector3D {
	scalar := v.Dot(on) / on.LenSqr()
	return on.Mul(scalar)
}

// ClampLen returns v rescaled so its length lies in [min, max].
// A vector without direction is returned unchanged.
func (v Vector3D) ClampLen(min, max float64) Vector3D {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return v.Mul(Clamp(l, min, max) / l)
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector3D) Eq(other Vector3D) bool {
	return math.Abs(v.X-other.X) <= Epsilon &&
		math.Abs(v.Y-other.Y) <= Epsilon &&
		math.Abs(v.Z-other.Z) <= Epsilon
}

// Clamp restricts x to [min, max].
func Clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
