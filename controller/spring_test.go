package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSpring_ForceOpposesDisplacement(t *testing.T) {
	s := Spring{Strength: 100, Damping: 0}

	if f := s.Force(0.5, 0, 1); !approxEq(f, -50, 1e-5) {
		t.Errorf("expected -50 for positive displacement, got %f", f)
	}
	if f := s.Force(-0.5, 0, 1); !approxEq(f, 50, 1e-5) {
		t.Errorf("expected 50 for negative displacement, got %f", f)
	}
}

func TestSpring_DampingOpposesVelocity(t *testing.T) {
	s := Spring{Strength: 100, Damping: 0.8}

	// 2 * sqrt(100 * 1) * 0.8 = 16
	if c := s.DampCoefficient(1); !approxEq(c, 16, 1e-5) {
		t.Errorf("expected damp coefficient 16, got %f", c)
	}
	if f := s.Force(0, 2, 1); !approxEq(f, -32, 1e-4) {
		t.Errorf("expected -32 damping force, got %f", f)
	}
}

func TestSpring_DampCoefficientScalesWithMass(t *testing.T) {
	s := Spring{Strength: 100, Damping: 1}

	// Critical damping: 2*sqrt(k*m).
	if c := s.DampCoefficient(4); !approxEq(c, 40, 1e-4) {
		t.Errorf("expected 40 for mass 4, got %f", c)
	}
}

func TestSpring_ZeroSpringProducesNoForce(t *testing.T) {
	var s Spring

	if f := s.Force(1, 1, 1); f != 0 {
		t.Errorf("expected zero force, got %f", f)
	}
}

func TestSpring_ForceVecMatchesPerAxis(t *testing.T) {
	s := Spring{Strength: 10, Damping: 0.5}
	d := mgl32.Vec3{1, -2, 0}
	v := mgl32.Vec3{0, 1, -1}

	got := s.ForceVec(d, v, 2)
	for i := 0; i < 3; i++ {
		want := s.Force(d[i], v[i], 2)
		if !approxEq(got[i], want, 1e-5) {
			t.Errorf("axis %d: expected %f, got %f", i, want, got[i])
		}
	}
}
