package geometry

import (
	"fmt"
	"math"
)

// Quaternion is a rotation in 3D space, stored as W + Xi + Yj + Zk.
type Quaternion struct {
	W float64 `json:"w" yaml:"w"`
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Identity is the rotation that leaves every vector unchanged.
var Identity = Quaternion{W: 1}

func (q Quaternion) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f, %.3f)", q.W, q.X, q.Y, q.Z)
}

// LookRotation returns the rotation that maps Forward onto forward while keeping
// Up as close as possible to up. The frame is left-handed and Y-up.
// When forward has no direction it returns Identity and false so callers can
// hold their previous orientation instead.
func LookRotation(forward, up Vector3D) (Quaternion, bool) {
	z := forward.Normalize()
	if z.IsZero() {
		return Identity, false
	}

	x := up.Cross(z)
	if x.IsZero() {
		// forward is parallel to up, any perpendicular axis will do
		x = Right.Cross(z)
		if x.IsZero() {
			x = Forward.Cross(z)
		}
	}
	x = x.Normalize()
	y := z.Cross(x)

	return fromBasis(x, y, z), true
}

// fromBasis converts the orthonormal basis (columns x, y, z) to a quaternion.
func fromBasis(x, y, z Vector3D) Quaternion {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	var q Quaternion
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = Quaternion{W: 0.25 * s, X: (m21 - m12) / s, Y: (m02 - m20) / s, Z: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = Quaternion{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = Quaternion{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = Quaternion{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}
	return q.Normalize()
}

// Len returns the quaternion norm.
func (q Quaternion) Len() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize returns a unit quaternion, or Identity when q is degenerate.
func (q Quaternion) Normalize() Quaternion {
	l := q.Len()
	if l < Epsilon {
		return Identity
	}
	return Quaternion{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

// Rotate applies the rotation to v.
func (q Quaternion) Rotate(v Vector3D) Vector3D {
	u := Vector3D{q.X, q.Y, q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Forward returns the direction the rotation faces.
func (q Quaternion) Forward() Vector3D {
	return q.Rotate(Forward)
}

// Eq reports whether q and other describe the same rotation within Epsilon.
// q and -q are the same rotation.
func (q Quaternion) Eq(other Quaternion) bool {
	same := math.Abs(q.W-other.W) <= Epsilon && math.Abs(q.X-other.X) <= Epsilon &&
		math.Abs(q.Y-other.Y) <= Epsilon && math.Abs(q.Z-other.Z) <= Epsilon
	opposite := math.Abs(q.W+other.W) <= Epsilon && math.Abs(q.X+other.X) <= Epsilon &&
		math.Abs(q.Y+other.Y) <= Epsilon && math.Abs(q.Z+other.Z) <= Epsilon
	return same || opposite
}

// Yaw returns the heading angle around +Y in radians, measured from +Z toward +X.
func (q Quaternion) Yaw() float64 {
	f := q.Forward()
	return math.Atan2(f.X, f.Z)
}
