package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// ---------- integration ----------

func TestStep_IntegratesForceAndGravity(t *testing.T) {
	w := NewWorld(mgl32.Vec3{0, -10, 0})
	b := NewBody(Dynamic, Sphere(0.5))
	b.Mass = 2
	b.Position = mgl32.Vec3{0, 100, 0}
	id := w.AddBody(b)

	w.ApplyForce(id, mgl32.Vec3{40, 0, 0})
	w.Step(0.5)

	if !almostEq(b.Velocity.X(), 10, 1e-4) || !almostEq(b.Velocity.Y(), -5, 1e-4) {
		t.Errorf("expected velocity (10,-5,0), got %v", b.Velocity)
	}
	if !almostEq(b.Position.X(), 5, 1e-4) || !almostEq(b.Position.Y(), 97.5, 1e-4) {
		t.Errorf("expected position (5,97.5,0), got %v", b.Position)
	}

	// Forces are consumed by the step.
	w.Step(0.5)
	if !almostEq(b.Velocity.X(), 10, 1e-4) || !almostEq(b.Velocity.Y(), -10, 1e-4) {
		t.Errorf("expected only gravity on the second step, got %v", b.Velocity)
	}
}

func TestStep_GravityScaleZeroFloats(t *testing.T) {
	w := NewWorld(mgl32.Vec3{0, -20, 0})
	b := NewBody(Dynamic, Sphere(0.5))
	b.GravityScale = 0
	b.Position = mgl32.Vec3{0, 10, 0}
	w.AddBody(b)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}

	if b.Velocity.Len() != 0 {
		t.Errorf("expected no gravity on the controlled body, got %v", b.Velocity)
	}
}

func TestStep_KinematicIgnoresForces(t *testing.T) {
	w := NewWorld(mgl32.Vec3{0, -20, 0})
	b := NewBody(Kinematic, Box(mgl32.Vec3{1, 0.5, 1}))
	b.Velocity = mgl32.Vec3{1, 0, 0}
	id := w.AddBody(b)

	w.ApplyForce(id, mgl32.Vec3{0, 100, 0})
	w.Step(1)

	if !almostEq(b.Position.X(), 1, 1e-5) || b.Position.Y() != 0 {
		t.Errorf("expected pure velocity motion, got %v", b.Position)
	}
	if b.Velocity.Y() != 0 {
		t.Errorf("expected forces and gravity ignored, got %v", b.Velocity)
	}
}

func TestApplyForceAt_SpinsBody(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	b := NewBody(Dynamic, Sphere(0.5))
	id := w.AddBody(b)

	w.ApplyForceAt(id, mgl32.Vec3{0, 0, 10}, mgl32.Vec3{1, 0, 0})
	w.Step(0.1)

	if !almostEq(b.Velocity.Z(), 1, 1e-5) {
		t.Errorf("expected linear push, got %v", b.Velocity)
	}
	if !almostEq(b.AngularVelocity.Y(), -1, 1e-5) {
		t.Errorf("expected spin about -Y, got %v", b.AngularVelocity)
	}
}

// ---------- contacts ----------

func TestStep_BoxSettlesOnFloor(t *testing.T) {
	w := NewWorld(mgl32.Vec3{0, -20, 0})
	w.AddBody(NewBody(Static, Plane(mgl32.Vec3{0, 1, 0})))
	crate := NewBody(Dynamic, Box(mgl32.Vec3{0.5, 0.5, 0.5}))
	crate.Position = mgl32.Vec3{0, 3, 0}
	w.AddBody(crate)

	for i := 0; i < 300; i++ {
		w.Step(1.0 / 60)
	}

	if !almostEq(crate.Position.Y(), 0.5, 1e-3) {
		t.Errorf("expected crate resting at half height, got %v", crate.Position)
	}
	if crate.Velocity.Y() != 0 {
		t.Errorf("expected settled crate, got velocity %v", crate.Velocity)
	}
}

func TestStep_BallRidesKinematicPlatform(t *testing.T) {
	w := NewWorld(mgl32.Vec3{0, -20, 0})
	platform := NewBody(Kinematic, Box(mgl32.Vec3{1, 0.25, 1}))
	platform.Velocity = mgl32.Vec3{2, 0, 0}
	w.AddBody(platform)
	ball := NewBody(Dynamic, Sphere(0.25))
	ball.Position = mgl32.Vec3{0, 0.49, 0}
	w.AddBody(ball)

	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60)
	}

	if !almostEq(ball.Velocity.X(), 2, 0.05) {
		t.Errorf("expected friction to carry the ball at platform speed, got %v", ball.Velocity)
	}
	if !almostEq(ball.Position.Y(), 0.5, 0.02) {
		t.Errorf("expected ball on the platform top, got %v", ball.Position)
	}
}

func TestStep_DynamicPairSeparatesByMass(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	a := NewBody(Dynamic, Sphere(0.5))
	a.Position = mgl32.Vec3{-0.3, 0, 0}
	w.AddBody(a)
	b := NewBody(Dynamic, Sphere(0.5))
	b.Position = mgl32.Vec3{0.3, 0, 0}
	b.Mass = 3
	w.AddBody(b)

	w.Step(1.0 / 60)

	// Penetration 0.4 splits 3:1 against the lighter body.
	if !almostEq(a.Position.X(), -0.6, 1e-4) {
		t.Errorf("expected light body pushed to -0.6, got %v", a.Position)
	}
	if !almostEq(b.Position.X(), 0.4, 1e-4) {
		t.Errorf("expected heavy body pushed to 0.4, got %v", b.Position)
	}
}

// ---------- lookups ----------

func TestWorld_FrictionLookup(t *testing.T) {
	w := NewWorld(mgl32.Vec3{})
	slick := NewBody(Static, Plane(mgl32.Vec3{0, 1, 0}))
	slick.Friction = 0.05
	id := w.AddBody(slick)

	if got := w.Friction(id); !almostEq(got, 0.05, 1e-6) {
		t.Errorf("expected body friction 0.05, got %f", got)
	}
	if got := w.Friction(9999); !almostEq(got, DefaultFriction, 1e-6) {
		t.Errorf("expected default friction for unknown body, got %f", got)
	}
}
