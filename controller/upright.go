package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Upright configures the torque spring that keeps a controller aligned with
// its up vector. A zero spring disables correction entirely, letting the
// body tumble.
type Upright struct {
	Spring Spring
}

// UprightForce is the orientation-correction accumulator, rewritten every
// tick.
type UprightForce struct {
	Angular mgl32.Vec3
}

// localUp is the body-space axis uprighting aligns with the up vector.
var localUp = mgl32.Vec3{0, 1, 0}

// UpdateUprightForce computes the corrective torque toward the configured up
// vector, damped by angular velocity.
func UpdateUprightForce(c *Controller, frame Frame) {
	c.UprightForce.Angular = mgl32.Vec3{}

	if c.Upright.Spring.Strength == 0 && c.Upright.Spring.Damping == 0 {
		return
	}
	up := c.Gravity.UpVector
	if up.LenSqr() == 0 {
		return
	}

	bodyUp := frame.Rotation.Rotate(localUp)
	if bodyUp.LenSqr() == 0 {
		return
	}

	// Axis-angle rotation taking the body's up onto the target up; its
	// negation is the angular displacement the spring corrects.
	rot := mgl32.QuatBetweenVectors(bodyUp, up).Normalize()
	angle := 2 * math32.Acos(clampFloat(rot.W, -1, 1))
	if angle < 1e-6 {
		c.UprightForce.Angular = c.Upright.Spring.ForceVec(mgl32.Vec3{}, frame.AngularVelocity, frame.Mass)
		return
	}
	sinHalf := math32.Sin(angle / 2)
	if sinHalf == 0 {
		return
	}
	axis := rot.V.Mul(1 / sinHalf)
	displacement := axis.Mul(-angle)

	c.UprightForce.Angular = c.Upright.Spring.ForceVec(displacement, frame.AngularVelocity, frame.Mass)
}
