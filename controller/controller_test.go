package controller

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const testDT = float32(1.0 / 60.0)

// approxEq reports whether two floats are within eps of each other.
func approxEq(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func approxVec(a, b mgl32.Vec3, eps float32) bool {
	return approxEq(a.X(), b.X(), eps) && approxEq(a.Y(), b.Y(), eps) && approxEq(a.Z(), b.Z(), eps)
}

// ---------- test world ----------

// flatWorld is a stub physics world: one horizontal plane at groundY plus a
// friction table. The probe travel distance is measured from the cast origin
// to sphere contact with the plane.
type flatWorld struct {
	groundY     float32
	groundVel   mgl32.Vec3
	normal      mgl32.Vec3
	groundBody  uint64
	miss        bool
	frictions   map[uint64]float32
	defFriction float32
}

func newFlatWorld() *flatWorld {
	return &flatWorld{groundBody: 99, defFriction: 0.5}
}

func (w *flatWorld) CastGround(origin, dir mgl32.Vec3, radius, maxDist float32, filter func(uint64) bool) (Hit, bool) {
	if w.miss {
		return Hit{}, false
	}
	if filter != nil && !filter(w.groundBody) {
		return Hit{}, false
	}
	dist := origin.Y() - w.groundY - radius
	if dist < 0 {
		dist = 0
	}
	if dist > maxDist {
		return Hit{}, false
	}
	n := w.normal
	if n.LenSqr() == 0 {
		n = mgl32.Vec3{0, 1, 0}
	}
	point := mgl32.Vec3{origin.X(), w.groundY, origin.Z()}
	return Hit{
		Body:          w.groundBody,
		Point:         point,
		Normal:        n,
		Distance:      dist,
		PointVelocity: w.groundVel,
	}, true
}

func (w *flatWorld) Friction(body uint64) float32 {
	if f, ok := w.frictions[body]; ok {
		return f
	}
	return w.defFriction
}

// ---------- test body ----------

// charBody drives a controller with a minimal explicit-Euler integrator.
// Height 0.8 over a plane at y=0 is the character preset's exact float
// equilibrium (cast travel 0.35, sag 0.2 below the 0.55 target, where the
// spring's +20 cancels gravity's -20).
type charBody struct {
	ctl    Controller
	pos    mgl32.Vec3
	vel    mgl32.Vec3
	angVel mgl32.Vec3
	rot    mgl32.Quat
	mass   float32
}

func newCharBody() *charBody {
	ctl := Character()
	ctl.Body = 1
	return &charBody{
		ctl:  ctl,
		pos:  mgl32.Vec3{0, 0.8, 0},
		rot:  mgl32.QuatIdent(),
		mass: 1,
	}
}

func (b *charBody) frame(in Input) Frame {
	return Frame{
		Input:           in,
		Velocity:        b.vel,
		AngularVelocity: b.angVel,
		Mass:            b.mass,
		Position:        b.pos,
		Rotation:        b.rot,
		DT:              testDT,
	}
}

func (b *charBody) step(w World, in Input) Output {
	out := b.ctl.Tick(w, b.frame(in))
	b.vel = b.vel.Add(out.Linear.Mul(testDT / b.mass))
	b.pos = b.pos.Add(b.vel.Mul(testDT))
	return out
}

// ---------- Tick integration ----------

func TestTick_WalkReachesMaxSpeedWithoutOvershoot(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()
	in := Input{Movement: mgl32.Vec3{1, 0, 0}}

	maxImpulse := b.ctl.Movement.MaxSpeed * b.mass / testDT
	prev := float32(0)
	for i := 0; i < 60; i++ {
		out := b.step(w, in)
		if i == 0 && out.Linear.X() > maxImpulse+1e-3 {
			t.Fatalf("first-tick movement impulse %f exceeds displacement cap %f", out.Linear.X(), maxImpulse)
		}
		if b.vel.X() < prev-1e-4 {
			t.Fatalf("speed regressed at tick %d: %f -> %f", i, prev, b.vel.X())
		}
		if b.vel.X() > b.ctl.Movement.MaxSpeed+1e-3 {
			t.Fatalf("overshot max speed at tick %d: %f", i, b.vel.X())
		}
		prev = b.vel.X()
	}
	if !approxEq(b.vel.X(), 10, 1e-2) {
		t.Errorf("expected horizontal speed ~10 after 1s, got %f", b.vel.X())
	}
}

func TestTick_StandingEquilibriumIsStable(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()

	for i := 0; i < 120; i++ {
		b.step(w, Input{})
	}
	if !approxEq(b.pos.Y(), 0.8, 1e-3) {
		t.Errorf("expected body to hold float equilibrium 0.8, got %f", b.pos.Y())
	}
	if !approxEq(b.vel.Y(), 0, 1e-3) {
		t.Errorf("expected settled vertical velocity, got %f", b.vel.Y())
	}
	if !b.ctl.Cast.Grounded {
		t.Error("expected grounded at equilibrium")
	}
}

func TestTick_JumpLaunchZeroesFloatAndGravity(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()
	b.step(w, Input{}) // settle one tick, establishes grounding

	b.step(w, Input{Jumping: true})

	if b.ctl.FloatForce.Linear.Len() != 0 {
		t.Errorf("float force should be zeroed on launch, got %v", b.ctl.FloatForce.Linear)
	}
	if b.ctl.GravityForce.Linear.Len() != 0 {
		t.Errorf("gravity force should be zeroed on launch, got %v", b.ctl.GravityForce.Linear)
	}
	if !approxEq(b.vel.Y(), b.ctl.Jump.InitialForce, 1e-3) {
		t.Errorf("expected launch speed %f, got %f", b.ctl.Jump.InitialForce, b.vel.Y())
	}
}

func TestTick_GroundReactionReportsSupportPush(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()
	b.pos = mgl32.Vec3{0, 0.7, 0} // compressed suspension, offset -0.3

	out := b.ctl.Tick(w, b.frame(Input{}))

	if !out.HasGround {
		t.Fatal("expected a ground reaction target")
	}
	if out.Ground != w.groundBody {
		t.Errorf("expected reaction against body %d, got %d", w.groundBody, out.Ground)
	}
	// Float pushes up 30, gravity pulls 20: net support 10 up, so the
	// ground is pushed 10 down.
	if !approxEq(out.GroundForce.Y(), -10, 1e-3) {
		t.Errorf("expected ground reaction -10, got %f", out.GroundForce.Y())
	}
}

func TestTick_MovingPlatformCarriesBody(t *testing.T) {
	w := newFlatWorld()
	w.groundVel = mgl32.Vec3{2, 0, 0}
	b := newCharBody()

	for i := 0; i < 90; i++ {
		b.step(w, Input{})
	}
	if !approxEq(b.vel.X(), 2, 1e-2) {
		t.Errorf("expected friction to carry body to platform speed 2, got %f", b.vel.X())
	}
}

func TestTick_StarshipDriftsWithoutGravity(t *testing.T) {
	w := newFlatWorld()
	w.miss = true
	ctl := Starship()
	ctl.Body = 1
	b := &charBody{ctl: ctl, pos: mgl32.Vec3{0, 50, 0}, rot: mgl32.QuatIdent(), mass: 1}

	out := b.step(w, Input{Movement: mgl32.Vec3{0, 0, -1}})

	if out.Linear.Y() != 0 {
		t.Errorf("starship should have no gravity, got linear.y %f", out.Linear.Y())
	}
	// Flat acceleration 0.3 against a goal of 100 gives a 30 N push.
	if !approxEq(out.Linear.Z(), -30, 1e-3) {
		t.Errorf("expected -30 thrust, got %f", out.Linear.Z())
	}
	if out.Angular.Len() != 0 {
		t.Errorf("starship should produce no torque, got %v", out.Angular)
	}
}

func TestResetState_RestoresJumpsAndClearsTimers(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()
	b.step(w, Input{})
	b.step(w, Input{Jumping: true})

	b.ctl.ResetState()

	if b.ctl.Jump.RemainingJumps != b.ctl.Jump.Jumps {
		t.Errorf("expected full jumps after reset, got %d", b.ctl.Jump.RemainingJumps)
	}
	if b.ctl.Caster.SkipGroundCheckTimer != 0 {
		t.Error("expected skip-ground-check timer cleared")
	}
	if b.ctl.Cast.HasCurrent || b.ctl.Cast.HasViable {
		t.Error("expected cast cleared")
	}
}
