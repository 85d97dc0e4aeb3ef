package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func moveOnce(w *flatWorld, b *charBody, in Input) mgl32.Vec3 {
	frame := b.frame(in)
	UpdateGroundCast(&b.ctl, w, frame)
	UpdateMovementForce(&b.ctl, w, frame)
	return b.ctl.MovementForce.Linear
}

// ---------- acceleration and the overshoot cap ----------

func TestUpdateMovementForce_FirstTickBelowOvershootCap(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()

	linear := moveOnce(w, b, Input{Movement: mgl32.Vec3{1, 0, 0}})

	// Full push is 10*50=500, under the 600 that would close the velocity
	// gap in a single tick.
	if !approxEq(linear.X(), 500, 1e-2) {
		t.Errorf("expected 500 push on first tick, got %f", linear.X())
	}
	if linear.Y() != 0 || linear.Z() != 0 {
		t.Errorf("expected push confined to input axis, got %v", linear)
	}
}

func TestUpdateMovementForce_SelfBalancesAtGoalSpeed(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()
	b.vel = mgl32.Vec3{10, 0, 0}

	linear := moveOnce(w, b, Input{Movement: mgl32.Vec3{1, 0, 0}})

	// At goal speed the capped push exactly pays the friction bill.
	if !approxEq(linear.Len(), 0, 1e-2) {
		t.Errorf("expected zero net force at goal speed, got %v", linear)
	}
}

func TestUpdateMovementForce_MaxForceBoundsRawPush(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()
	b.ctl.Movement.Acceleration = FlatStrength(100)

	linear := moveOnce(w, b, Input{Movement: mgl32.Vec3{1, 0, 0}})

	// Raw push of 1000 collapses to the 10 m/s-per-tick force bound.
	if !approxEq(linear.X(), 600, 1e-2) {
		t.Errorf("expected push bounded to 600, got %f", linear.X())
	}
}

func TestUpdateMovementForce_OversaturatedInputIsNormalized(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()

	linear := moveOnce(w, b, Input{Movement: mgl32.Vec3{1, 0, 1}})

	want := float32(353.553) // 500/sqrt(2) per axis
	if !approxEq(linear.X(), want, 0.01) || !approxEq(linear.Z(), want, 0.01) {
		t.Errorf("expected diagonal input normalized to %f per axis, got %v", want, linear)
	}
}

// ---------- friction ----------

func TestUpdateMovementForce_FrictionDecaysResidualDrift(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()
	b.vel = mgl32.Vec3{4, 0, 0}

	linear := moveOnce(w, b, Input{})

	// Coefficient 0.5 takes back half the relative velocity each tick.
	if !approxEq(linear.X(), -120, 1e-2) {
		t.Errorf("expected -120 friction force, got %f", linear.X())
	}
}

func TestUpdateMovementForce_FrictionUsesStickierSurface(t *testing.T) {
	w := newFlatWorld()
	w.frictions = map[uint64]float32{99: 1.0}
	b := newCharBody()
	b.vel = mgl32.Vec3{4, 0, 0}

	linear := moveOnce(w, b, Input{})

	// Ground friction 1.0 wins over the body's 0.5 and arrests the drift
	// in a single tick.
	if !approxEq(linear.X(), -240, 1e-2) {
		t.Errorf("expected -240 friction force on sticky ground, got %f", linear.X())
	}
}

func TestUpdateMovementForce_NoFrictionWhileAirborne(t *testing.T) {
	w := newFlatWorld()
	w.miss = true
	b := newCharBody()
	b.vel = mgl32.Vec3{4, 0, 0}

	linear := moveOnce(w, b, Input{})

	if linear.Len() != 0 {
		t.Errorf("expected no braking in the air, got %v", linear)
	}
}

func TestUpdateMovementForce_AirControlStillCapped(t *testing.T) {
	w := newFlatWorld()
	w.miss = true
	b := newCharBody()
	b.vel = mgl32.Vec3{4, 0, 0}

	linear := moveOnce(w, b, Input{Movement: mgl32.Vec3{1, 0, 0}})

	// Without friction the cap is the force that closes the 6 m/s gap.
	if !approxEq(linear.X(), 360, 1e-2) {
		t.Errorf("expected air push capped at 360, got %f", linear.X())
	}
}

func TestUpdateMovementForce_ForceScaleMasksVerticalVelocity(t *testing.T) {
	w := newFlatWorld()
	b := newCharBody()
	b.vel = mgl32.Vec3{0, -5, 0}

	linear := moveOnce(w, b, Input{})

	// Falling speed is the suspension's problem, not friction's.
	if linear.Len() != 0 {
		t.Errorf("expected vertical velocity ignored, got %v", linear)
	}
}

// ---------- steep ground ----------

// slope60 tilts the contact normal 60 degrees about Z, past the 45 degree
// walkable limit. Uphill is -X.
func slope60(w *flatWorld) {
	w.normal = mgl32.Vec3{0.8660254, 0.5, 0}
}

func TestUpdateMovementForce_SteepSlopeRejectsUphillGoal(t *testing.T) {
	w := newFlatWorld()
	slope60(w)
	b := newCharBody()

	linear := moveOnce(w, b, Input{Movement: mgl32.Vec3{-1, 0, 0}})

	// The uphill goal is stripped entirely, leaving only the unit shove
	// down the slope.
	if !approxEq(linear.X(), 1, 1e-3) {
		t.Errorf("expected bare downhill shove, got %v", linear)
	}
}

func TestUpdateMovementForce_SteepSlopeKeepsDownhillGoal(t *testing.T) {
	w := newFlatWorld()
	slope60(w)
	b := newCharBody()

	linear := moveOnce(w, b, Input{Movement: mgl32.Vec3{1, 0, 0}})

	// Downhill input passes through, plus the slide shove.
	if !approxEq(linear.X(), 501, 1e-2) {
		t.Errorf("expected downhill push with slide shove, got %v", linear)
	}
}

func TestUpdateMovementForce_SlipScaleSoftensRejection(t *testing.T) {
	w := newFlatWorld()
	slope60(w)
	b := newCharBody()
	b.ctl.Movement.SlipForceScale = mgl32.Vec3{0.5, 0.5, 0.5}

	linear := moveOnce(w, b, Input{Movement: mgl32.Vec3{-1, 0, 0}})

	// Half the uphill goal survives: the cap becomes 5 m/s worth of force
	// against an unclamped -500 raw push, minus the downhill shove.
	if !approxEq(linear.X(), -299, 1e-2) {
		t.Errorf("expected softened uphill push, got %v", linear)
	}
}

// ---------- force scale resolution ----------

func TestForceScale_UpMasksUpAxis(t *testing.T) {
	got := ForceScale{Mode: ForceScaleUp}.Resolve(mgl32.Vec3{0, 1, 0})
	want := mgl32.Vec3{1, 0, 1}
	if !approxVec(got, want, 1e-5) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = ForceScale{Mode: ForceScaleUp}.Resolve(mgl32.Vec3{1, 0, 0})
	want = mgl32.Vec3{0, 1, 1}
	if !approxVec(got, want, 1e-5) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestForceScale_UpWithZeroUpPassesThrough(t *testing.T) {
	got := ForceScale{Mode: ForceScaleUp}.Resolve(mgl32.Vec3{})
	if !approxVec(got, mgl32.Vec3{1, 1, 1}, 0) {
		t.Errorf("expected identity mask, got %v", got)
	}
}

func TestForceScale_NoneAndExplicit(t *testing.T) {
	if got := (ForceScale{Mode: ForceScaleNone}).Resolve(mgl32.Vec3{0, 1, 0}); !approxVec(got, mgl32.Vec3{1, 1, 1}, 0) {
		t.Errorf("expected identity mask, got %v", got)
	}
	mask := mgl32.Vec3{1, 0.25, 0}
	if got := ExplicitForceScale(mask).Resolve(mgl32.Vec3{0, 1, 0}); !approxVec(got, mask, 0) {
		t.Errorf("expected explicit mask %v, got %v", mask, got)
	}
}

// ---------- strength modes ----------

func TestStrength_GetResolvesModes(t *testing.T) {
	if got := ScaledStrength(2).Get(3, 0.5); !approxEq(got, 12, 1e-5) {
		t.Errorf("expected scaled strength 12, got %f", got)
	}
	if got := FlatStrength(7).Get(3, 0.5); got != 7 {
		t.Errorf("expected flat strength 7, got %f", got)
	}
}
