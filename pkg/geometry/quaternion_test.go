package geometry

import (
	"math"
	"testing"
)

func TestLookRotation(t *testing.T) {
	tests := []struct {
		name    string
		forward Vector3D
	}{
		{"Forward", Forward},
		{"Right", Right},
		{"Back", Forward.Neg()},
		{"Diagonal", Vector3D{1, 1, 1}},
		{"Straight up", Up},
		{"Straight down", Up.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := LookRotation(tt.forward, Up)
			if !ok {
				t.Fatalf("LookRotation(%v) reported degenerate forward", tt.forward)
			}
			if !floatEquals(q.Len(), 1) {
				t.Errorf("LookRotation(%v) is not unit: %v", tt.forward, q.Len())
			}
			if got, want := q.Forward(), tt.forward.Normalize(); !got.Eq(want) {
				t.Errorf("LookRotation(%v).Forward() = %v; want %v", tt.forward, got, want)
			}
		})
	}
}

func TestLookRotation_KeepsUp(t *testing.T) {
	q, ok := LookRotation(Right, Up)
	if !ok {
		t.Fatal("unexpected degenerate forward")
	}
	if got := q.Rotate(Up); !got.Eq(Up) {
		t.Errorf("Rotate(Up) = %v; want %v", got, Up)
	}
}

func TestLookRotation_Zero(t *testing.T) {
	q, ok := LookRotation(Zero, Up)
	if ok {
		t.Error("zero forward should be reported as degenerate")
	}
	if !q.Eq(Identity) {
		t.Errorf("zero forward = %v; want identity", q)
	}
}

func TestQuaternion_Identity(t *testing.T) {
	v := Vector3D{1, 2, 3}
	if got := Identity.Rotate(v); !got.Eq(v) {
		t.Errorf("Identity.Rotate(%v) = %v", v, got)
	}
	q, _ := LookRotation(Forward, Up)
	if !q.Eq(Identity) {
		t.Errorf("LookRotation(Forward) = %v; want identity", q)
	}
}

func TestQuaternion_Yaw(t *testing.T) {
	q, _ := LookRotation(Right, Up)
	if got := q.Yaw(); !floatEquals(got, math.Pi/2) {
		t.Errorf("Yaw = %v; want %v", got, math.Pi/2)
	}
}

func TestQuaternion_NormalizeDegenerate(t *testing.T) {
	if got := (Quaternion{}).Normalize(); !got.Eq(Identity) {
		t.Errorf("Normalize(0) = %v; want identity", got)
	}
}
