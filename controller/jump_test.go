package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// jumpTick drives the jump subsystem directly, bypassing ground sensing, so
// tests can script exact grounded/airborne sequences through c.Cast.
func jumpTick(c *Controller, vel mgl32.Vec3, jumping bool) mgl32.Vec3 {
	frame := Frame{
		Input:    Input{Jumping: jumping},
		Velocity: vel,
		Mass:     1,
		Rotation: mgl32.QuatIdent(),
		DT:       testDT,
	}
	UpdateJumpForce(c, frame)
	return c.JumpForce.Linear
}

func groundedCast() GroundCast {
	return GroundCast{
		Current:    Contact{Body: 99, Normal: mgl32.Vec3{0, 1, 0}, Stable: true},
		HasCurrent: true,
		Viable:     Contact{Body: 99, Normal: mgl32.Vec3{0, 1, 0}, Stable: true},
		HasViable:  true,
		Fresh:      true,
		Grounded:   true,
	}
}

// ---------- launch ----------

func TestUpdateJumpForce_LaunchCancelsFallSpeed(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()
	b.vel = mgl32.Vec3{0, -5, 0}

	b.step(w, Input{Jumping: true})

	// The launch first cancels the 5 m/s fall, then adds the full launch
	// speed, so the result does not depend on how hard we were falling.
	if !approxEq(b.vel.Y(), 15, 1e-3) {
		t.Errorf("expected launch speed 15 regardless of fall, got %f", b.vel.Y())
	}
}

func TestUpdateJumpForce_LaunchIsRelativeToGround(t *testing.T) {
	ctl := Character()
	ctl.Cast = groundedCast()
	ctl.Cast.Viable.PointVelocity = mgl32.Vec3{0, 2, 0} // rising platform

	force := jumpTick(&ctl, mgl32.Vec3{0, 2, 0}, true)

	// Riding the platform means zero relative up velocity: nothing to
	// cancel, just the launch push.
	if !approxEq(force.Y(), 15*60, 1e-1) {
		t.Errorf("expected pure launch force 900, got %f", force.Y())
	}
}

func TestUpdateJumpForce_HoldingDoesNotRetrigger(t *testing.T) {
	ctl := Character()
	ctl.Cast = groundedCast()

	jumpTick(&ctl, mgl32.Vec3{}, true)
	if ctl.Jump.RemainingJumps != 0 {
		t.Fatalf("expected jump consumed, remaining %d", ctl.Jump.RemainingJumps)
	}

	// Still holding on later ticks: edge detection keeps the jump single.
	ctl.Cast = GroundCast{}
	force := jumpTick(&ctl, mgl32.Vec3{0, 15, 0}, true)
	if force.Y() < 0 || force.Y() > 1 {
		t.Errorf("expected only sustain force while held, got %f", force.Y())
	}
}

// ---------- multi-jump ----------

func TestUpdateJumpForce_AirJumpChainConsumesCount(t *testing.T) {
	ctl := Character()
	ctl.Jump.Jumps = 2
	ctl.Jump.RemainingJumps = 2
	ctl.Jump.FirstJumpGrounded = false

	if f := jumpTick(&ctl, mgl32.Vec3{}, true); f.Y() <= 0 {
		t.Fatalf("expected first air jump to fire, got %v", f)
	}
	if ctl.Jump.RemainingJumps != 1 {
		t.Fatalf("expected 1 jump left, got %d", ctl.Jump.RemainingJumps)
	}

	jumpTick(&ctl, mgl32.Vec3{0, 15, 0}, false)

	if f := jumpTick(&ctl, mgl32.Vec3{0, 12, 0}, true); f.Y() <= 0 {
		t.Fatalf("expected second air jump to fire, got %v", f)
	}
	if ctl.Jump.RemainingJumps != 0 {
		t.Fatalf("expected no jumps left, got %d", ctl.Jump.RemainingJumps)
	}

	jumpTick(&ctl, mgl32.Vec3{0, 15, 0}, false)

	// Third press finds the tank empty.
	if f := jumpTick(&ctl, mgl32.Vec3{0, 12, 0}, true); f.Y() != 0 {
		t.Errorf("expected exhausted jump chain to produce nothing, got %v", f)
	}
}

func TestUpdateJumpForce_FirstJumpRequiresGround(t *testing.T) {
	ctl := Character() // airborne, no coyote time banked

	if f := jumpTick(&ctl, mgl32.Vec3{}, true); f.Len() != 0 {
		t.Errorf("expected grounded-only first jump to refuse midair, got %v", f)
	}
	if ctl.Jump.RemainingJumps != 1 {
		t.Errorf("expected refused jump not consumed, got %d", ctl.Jump.RemainingJumps)
	}
}

// ---------- coyote time ----------

func coyoteSetup() *Controller {
	ctl := Character()
	ctl.Cast = groundedCast()
	c := &ctl
	jumpTick(c, mgl32.Vec3{}, false) // bank coyote time on the ground
	c.Cast = GroundCast{}            // walk off the edge
	return c
}

func TestUpdateJumpForce_CoyoteWindowAllowsLateJump(t *testing.T) {
	c := coyoteSetup()
	for i := 0; i < 5; i++ {
		jumpTick(c, mgl32.Vec3{0, -1, 0}, false)
	}

	// Six ticks past the edge is 0.1s, inside the 0.16s window.
	if f := jumpTick(c, mgl32.Vec3{0, -1, 0}, true); f.Y() <= 0 {
		t.Errorf("expected coyote jump to fire, got %v", f)
	}
}

func TestUpdateJumpForce_CoyoteWindowExpires(t *testing.T) {
	c := coyoteSetup()
	for i := 0; i < 11; i++ {
		jumpTick(c, mgl32.Vec3{0, -1, 0}, false)
	}

	// Twelve ticks past the edge is 0.2s, past the window.
	if f := jumpTick(c, mgl32.Vec3{0, -1, 0}, true); f.Y() != 0 {
		t.Errorf("expected coyote window expired, got %v", f)
	}
}

func TestUpdateJumpForce_CoyoteDurationSurvivesTicking(t *testing.T) {
	c := coyoteSetup()
	for i := 0; i < 30; i++ {
		jumpTick(c, mgl32.Vec3{0, -1, 0}, false)
	}

	// Only the countdown may move. The configured window must be intact
	// for the next grounding.
	if c.Jump.CoyoteDuration != 0.16 {
		t.Errorf("expected configured window untouched, got %f", c.Jump.CoyoteDuration)
	}
	if c.Jump.CoyoteTimer != 0 {
		t.Errorf("expected countdown drained, got %f", c.Jump.CoyoteTimer)
	}
}

// ---------- jump buffering ----------

func TestUpdateJumpForce_BufferedPressFiresOnLanding(t *testing.T) {
	ctl := Character()
	c := &ctl

	// Press in the air: refused, but queued.
	if f := jumpTick(c, mgl32.Vec3{0, -3, 0}, true); f.Len() != 0 {
		t.Fatalf("expected air press refused, got %v", f)
	}
	if c.Jump.BufferTimer <= 0 {
		t.Fatalf("expected press buffered, timer %f", c.Jump.BufferTimer)
	}

	jumpTick(c, mgl32.Vec3{0, -3, 0}, false)
	jumpTick(c, mgl32.Vec3{0, -3, 0}, false)

	// Land three ticks later, control already released.
	c.Cast = groundedCast()
	f := jumpTick(c, mgl32.Vec3{0, -3, 0}, false)

	if !approxEq(f.Y(), (3+15)*60, 1e-1) {
		t.Errorf("expected buffered jump to fire on landing, got %v", f)
	}
}

func TestUpdateJumpForce_BufferExpiresBeforeLanding(t *testing.T) {
	ctl := Character()
	c := &ctl

	jumpTick(c, mgl32.Vec3{0, -3, 0}, true)
	for i := 0; i < 10; i++ { // 11 ticks > 0.16s
		jumpTick(c, mgl32.Vec3{0, -3, 0}, false)
	}

	c.Cast = groundedCast()
	if f := jumpTick(c, mgl32.Vec3{0, -3, 0}, false); f.Len() != 0 {
		t.Errorf("expected stale buffer ignored on landing, got %v", f)
	}
}

// ---------- sustain and release ----------

func TestUpdateJumpForce_SustainPushesAndSuppressesGroundCheck(t *testing.T) {
	ctl := Character()
	ctl.Jump.Force = 20
	ctl.Jump.JumpTimer = 0.5
	ctl.Jump.PressedLastFrame = true

	force := jumpTick(&ctl, mgl32.Vec3{0, 14, 0}, true)

	// One tick in: progress 1/30, sqrt decay ~0.983.
	if !approxEq(force.Y(), 19.664, 0.01) {
		t.Errorf("expected decayed sustain push, got %f", force.Y())
	}
	if ctl.Caster.SkipGroundCheckTimer != 0.5 {
		t.Errorf("expected ground check suppressed, timer %f", ctl.Caster.SkipGroundCheckTimer)
	}
}

func TestUpdateJumpForce_ReleaseBrakesAscent(t *testing.T) {
	ctl := Character()
	ctl.Jump.JumpTimer = 0.5
	ctl.Jump.PressedLastFrame = true

	force := jumpTick(&ctl, mgl32.Vec3{0, 10, 0}, false)

	if !approxEq(force.Y(), -3, 1e-3) {
		t.Errorf("expected stop force -3 against 10 m/s ascent, got %f", force.Y())
	}
	if ctl.Caster.SkipGroundCheckTimer != 0 {
		t.Errorf("expected release not to suppress ground checks, timer %f", ctl.Caster.SkipGroundCheckTimer)
	}
}

// ---------- cooldown ----------

func TestUpdateJumpForce_CooldownHoldsRepeatAndReset(t *testing.T) {
	ctl := Character()
	ctl.Jump = DefaultJump()
	ctl.Cast = groundedCast()
	c := &ctl

	jumpTick(c, mgl32.Vec3{}, true)
	if c.Jump.CooldownTimer != 0.25 {
		t.Fatalf("expected cooldown armed, got %f", c.Jump.CooldownTimer)
	}

	// Grounded again immediately: cooldown blocks both the refire and the
	// jump count reset.
	jumpTick(c, mgl32.Vec3{}, false)
	jumpTick(c, mgl32.Vec3{}, true)
	if c.Jump.RemainingJumps != 0 {
		t.Errorf("expected count reset blocked during cooldown, got %d", c.Jump.RemainingJumps)
	}
	if c.Jump.CooldownTimer >= 0.25 {
		t.Errorf("expected press during cooldown not to refire, timer %f", c.Jump.CooldownTimer)
	}

	for i := 0; i < 15; i++ {
		jumpTick(c, mgl32.Vec3{}, false)
	}
	if c.Jump.RemainingJumps != c.Jump.Jumps {
		t.Errorf("expected jumps restored after cooldown, got %d", c.Jump.RemainingJumps)
	}
}

// ---------- decay curves ----------

func TestJumpDecay_MultiplierCurves(t *testing.T) {
	cases := []struct {
		decay    JumpDecay
		progress float32
		want     float32
	}{
		{DecayConstant, 0, 1},
		{DecayConstant, 0.9, 1},
		{DecayLinear, 0, 1},
		{DecayLinear, 0.25, 0.75},
		{DecayLinear, 1, 0},
		{DecaySqrt, 0, 1},
		{DecaySqrt, 0.75, 0.5},
		{DecaySqrt, 1, 0},
	}
	for _, tc := range cases {
		if got := tc.decay.Multiplier(tc.progress); !approxEq(got, tc.want, 1e-5) {
			t.Errorf("decay %d at %f: expected %f, got %f", tc.decay, tc.progress, tc.want, got)
		}
	}
}

func TestJump_ProgressGuardsZeroDuration(t *testing.T) {
	j := Jump{}
	if got := j.Progress(); got != 1 {
		t.Errorf("expected zero-duration jump already complete, got %f", got)
	}
}
