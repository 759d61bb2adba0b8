package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewVector(t *testing.T) {
	v := NewVector(1, 2, 3)
	if v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Errorf("NewVector(1, 2, 3) = %v; want (1, 2, 3)", v)
	}
}

func TestNewVectorSpherical(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		theta  float64
		phi    float64
		want   Vector3D
	}{
		{"Zero radius", 0, 0, 0, Vector3D{0, 0, 0}},
		{"Up pole", 10, 0, 0, Vector3D{0, 10, 0}},
		{"Equator forward", 10, 0, math.Pi / 2, Vector3D{0, 0, 10}},
		{"Equator right", 10, math.Pi / 2, math.Pi / 2, Vector3D{10, 0, 0}},
		{"Down pole", 2, 0, math.Pi, Vector3D{0, -2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVectorSpherical(tt.radius, tt.theta, tt.phi)
			if !got.Eq(tt.want) {
				t.Errorf("NewVectorSpherical(%v, %v, %v) = %v; want %v", tt.radius, tt.theta, tt.phi, got, tt.want)
			}
		})
	}
}

func TestVector_String(t *testing.T) {
	v := Vector3D{1.234, 5.678, -0.5}
	want := "(1.23, 5.68, -0.50)"
	if got := v.String(); got != want {
		t.Errorf("Vector3D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector3D{1, 2, 3}
	v2 := Vector3D{4, 5, 6}

	t.Run("Add", func(t *testing.T) {
		want := Vector3D{5, 7, 9}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector3D{-3, -3, -3}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector3D{2, 4, 6}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("Neg", func(t *testing.T) {
		want := Vector3D{-1, -2, -3}
		if got := v1.Neg(); !got.Eq(want) {
			t.Errorf("%v.Neg() = %v; want %v", v1, got, want)
		}
	})

	t.Run("Div", func(t *testing.T) {
		want := Vector3D{0.5, 1, 1.5}
		got, err := v1.Div(2)
		if err != nil {
			t.Errorf("%v.Div(2) returned error %v; want nil", v1, err)
		}
		if !got.Eq(want) {
			t.Errorf("%v.Div(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("DivByZero", func(t *testing.T) {
		got, err := v1.Div(0)
		if err == nil {
			t.Errorf("%v.Div(0) should have returned an error, got %v", v1, got)
		}
		if !math.IsInf(got.X, 0) || !math.IsInf(got.Y, 0) || !math.IsInf(got.Z, 0) {
			t.Errorf("Div(0) should result in Inf coordinates, got %v", got)
		}
	})
}

func TestVector_Products(t *testing.T) {
	t.Run("Dot", func(t *testing.T) {
		if got := Right.Dot(Up); got != 0 {
			t.Errorf("Dot orthogonal = %v; want 0", got)
		}
		if got := Right.Dot(Vector3D{2, 0, 0}); got != 2 {
			t.Errorf("Dot parallel = %v; want 2", got)
		}
	})

	t.Run("Cross", func(t *testing.T) {
		if got := Right.Cross(Up); !got.Eq(Forward) {
			t.Errorf("Cross X,Y = %v; want %v", got, Forward)
		}
		if got := Up.Cross(Forward); !got.Eq(Right) {
			t.Errorf("Cross Y,Z = %v; want %v", got, Right)
		}
		v := Vector3D{1, 1, 1}
		if got := v.Cross(v); !got.Eq(Zero) {
			t.Errorf("Cross self = %v; want zero", got)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector3D{2, 3, 6} // 2-3-6-7 quadruple

	t.Run("Len", func(t *testing.T) {
		if got := v.Len(); got != 7 {
			t.Errorf("Len = %v; want 7", got)
		}
	})

	t.Run("LenSqr", func(t *testing.T) {
		if got := v.LenSqr(); got != 49 {
			t.Errorf("LenSqr = %v; want 49", got)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		got := v.Normalize()
		want := Vector3D{2.0 / 7, 3.0 / 7, 6.0 / 7}
		if !got.Eq(want) {
			t.Errorf("Normalize = %v; want %v", got, want)
		}
		if !floatEquals(got.Len(), 1.0) {
			t.Errorf("Normalize length = %v; want 1", got.Len())
		}
	})

	t.Run("NormalizeZero", func(t *testing.T) {
		got := Zero.Normalize()
		if !got.Eq(Zero) {
			t.Errorf("Normalize(0,0,0) = %v; want zero", got)
		}
		if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsNaN(got.Z) {
			t.Errorf("Normalize(0,0,0) produced NaN: %v", got)
		}
	})

	t.Run("NormalizeOr", func(t *testing.T) {
		if got := Zero.NormalizeOr(Up); !got.Eq(Up) {
			t.Errorf("NormalizeOr fallback = %v; want %v", got, Up)
		}
		if got := (Vector3D{0, 0, 5}).NormalizeOr(Up); !got.Eq(Forward) {
			t.Errorf("NormalizeOr = %v; want %v", got, Forward)
		}
	})

	t.Run("ClampLen", func(t *testing.T) {
		if got := (Vector3D{10, 0, 0}).ClampLen(1, 5); !got.Eq(Vector3D{5, 0, 0}) {
			t.Errorf("ClampLen above max = %v", got)
		}
		if got := (Vector3D{0, 0.5, 0}).ClampLen(1, 5); !got.Eq(Vector3D{0, 1, 0}) {
			t.Errorf("ClampLen below min = %v", got)
		}
		if got := Zero.ClampLen(1, 5); !got.Eq(Zero) {
			t.Errorf("ClampLen zero = %v; want zero", got)
		}
	})
}

func TestVector_Distance(t *testing.T) {
	v1 := Vector3D{1, 1, 1}
	v2 := Vector3D{3, 4, 7} // d=(2,3,6), dist=7

	if got := v1.DistanceTo(v2); got != 7 {
		t.Errorf("DistanceTo = %v; want 7", got)
	}

	if got := v1.DistanceSquaredTo(v2); got != 49 {
		t.Errorf("DistanceSquaredTo = %v; want 49", got)
	}
}

func TestVector_AngleBetween(t *testing.T) {
	tests := []struct {
		a, b Vector3D
		want float64
	}{
		{Right, Right, 0},
		{Right, Up, math.Pi / 2},
		{Right, Right.Neg(), math.Pi},
		{Zero, Up, 0},
	}
	for _, tt := range tests {
		if got := tt.a.AngleBetween(tt.b); !floatEquals(got, tt.want) {
			t.Errorf("%v.AngleBetween(%v) = %v; want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVector_Utilities(t *testing.T) {
	t.Run("Lerp", func(t *testing.T) {
		got := Zero.Lerp(Vector3D{10, 10, 10}, 0.5)
		want := Vector3D{5, 5, 5}
		if !got.Eq(want) {
			t.Errorf("Lerp(0.5) = %v; want %v", got, want)
		}
	})

	t.Run("Project", func(t *testing.T) {
		got := (Vector3D{3, 3, 3}).Project(Vector3D{0, 0, 5})
		want := Vector3D{0, 0, 3}
		if !got.Eq(want) {
			t.Errorf("Project = %v; want %v", got, want)
		}
	})

	t.Run("IsFinite", func(t *testing.T) {
		if !(Vector3D{1, 2, 3}).IsFinite() {
			t.Error("finite vector reported as non-finite")
		}
		if (Vector3D{math.NaN(), 0, 0}).IsFinite() {
			t.Error("NaN vector reported as finite")
		}
		if (Vector3D{0, 0, math.Inf(-1)}).IsFinite() {
			t.Error("Inf vector reported as finite")
		}
	})

	t.Run("Clamp", func(t *testing.T) {
		if got := Clamp(7, 2, 5); got != 5 {
			t.Errorf("Clamp(7,2,5) = %v", got)
		}
		if got := Clamp(-1, 2, 5); got != 2 {
			t.Errorf("Clamp(-1,2,5) = %v", got)
		}
		if got := Clamp(3, 2, 5); got != 3 {
			t.Errorf("Clamp(3,2,5) = %v", got)
		}
	})
}

func TestVector_Eq(t *testing.T) {
	v := Vector3D{1, 2, 3}

	if !v.Eq(Vector3D{1, 2, 3}) {
		t.Error("Eq exact match failed")
	}

	vClose := Vector3D{1 + Epsilon/2, 2 - Epsilon/2, 3}
	if !v.Eq(vClose) {
		t.Error("Eq epsilon match failed")
	}

	if v.Eq(Vector3D{1, 2, 3.1}) {
		t.Error("Eq mismatch failed")
	}
}
