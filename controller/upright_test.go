package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func uprightOnce(ctl *Controller, rot mgl32.Quat, angVel mgl32.Vec3) mgl32.Vec3 {
	frame := Frame{
		Rotation:        rot,
		AngularVelocity: angVel,
		Mass:            1,
		DT:              testDT,
	}
	UpdateUprightForce(ctl, frame)
	return ctl.UprightForce.Angular
}

func TestUpdateUprightForce_TorqueOpposesTilt(t *testing.T) {
	ctl := Character()
	tilt := mgl32.QuatRotate(30*deg, mgl32.Vec3{0, 0, 1})

	torque := uprightOnce(&ctl, tilt, mgl32.Vec3{})

	// Tilted +30 degrees about Z, the spring pushes back about -Z with
	// magnitude strength*angle.
	if !approxEq(torque.Z(), -5.236, 1e-3) {
		t.Errorf("expected corrective torque -5.236 about Z, got %v", torque)
	}
	if !approxEq(torque.X(), 0, 1e-5) || !approxEq(torque.Y(), 0, 1e-5) {
		t.Errorf("expected torque confined to the tilt axis, got %v", torque)
	}
}

func TestUpdateUprightForce_DampsSpinWhenAligned(t *testing.T) {
	ctl := Character()

	torque := uprightOnce(&ctl, mgl32.QuatIdent(), mgl32.Vec3{0, 0, 2})

	// No displacement, only the damping term: 2*sqrt(10)*0.5 against 2 rad/s.
	if !approxEq(torque.Z(), -6.3246, 1e-3) {
		t.Errorf("expected pure damping torque, got %v", torque)
	}
}

func TestUpdateUprightForce_DampingBrakesOvercorrection(t *testing.T) {
	ctl := Character()
	tilt := mgl32.QuatRotate(30*deg, mgl32.Vec3{0, 0, 1})

	// Already swinging back hard: damping outweighs the spring and the
	// torque flips to brake the swing.
	torque := uprightOnce(&ctl, tilt, mgl32.Vec3{0, 0, -3})

	if !approxEq(torque.Z(), 4.251, 1e-2) {
		t.Errorf("expected braking torque 4.251, got %v", torque)
	}
}

func TestUpdateUprightForce_ZeroSpringTumblesFreely(t *testing.T) {
	ctl := Starship()
	tilt := mgl32.QuatRotate(90*deg, mgl32.Vec3{1, 0, 0})

	torque := uprightOnce(&ctl, tilt, mgl32.Vec3{1, 2, 3})

	if torque.Len() != 0 {
		t.Errorf("expected no righting torque, got %v", torque)
	}
}

func TestUpdateUprightForce_ZeroUpVectorDisables(t *testing.T) {
	ctl := Character()
	ctl.Gravity.UpVector = mgl32.Vec3{}

	torque := uprightOnce(&ctl, mgl32.QuatRotate(45*deg, mgl32.Vec3{0, 0, 1}), mgl32.Vec3{0, 0, 1})

	if torque.Len() != 0 {
		t.Errorf("expected no torque without an up vector, got %v", torque)
	}
}
