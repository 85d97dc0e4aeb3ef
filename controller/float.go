package controller

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Float configures the hovering suspension that keeps a controller riding
// above the ground instead of resting on it.
type Float struct {
	// Distance is the target gap between the cast origin and the ground.
	Distance float32
	// MinOffset and MaxOffset bound how far the measured gap may deviate
	// from Distance while still counting as grounded.
	MinOffset float32
	MaxOffset float32
	// Spring drives the body toward Distance.
	Spring Spring
}

// FloatForce is the suspension impulse accumulator, rewritten every tick.
type FloatForce struct {
	Linear mgl32.Vec3
}

// GravityForce is the controller-owned gravity accumulator, rewritten every
// tick and zeroed by the jump subsystem on launch.
type GravityForce struct {
	Linear mgl32.Vec3
}

// UpdateGravityForce accumulates this tick's gravity pull along the
// configured up vector.
func UpdateGravityForce(c *Controller, frame Frame) {
	c.GravityForce.Linear = c.Gravity.UpVector.Mul(c.Gravity.Strength * frame.Mass)
}

// UpdateFloatForce computes the suspension impulse toward the float
// distance. Zero while ungrounded or mid-jump, so it never fights a launch.
func UpdateFloatForce(c *Controller, frame Frame) {
	c.FloatForce.Linear = mgl32.Vec3{}

	if !c.Cast.Grounded || c.Jump.Jumping() {
		return
	}

	up := c.Gravity.UpVector
	displacement := c.Cast.Current.Distance - c.Float.Distance
	relativeUpVel := frame.Velocity.Sub(c.Cast.GroundVelocity()).Dot(up)

	c.FloatForce.Linear = up.Mul(c.Float.Spring.Force(displacement, relativeUpVel, frame.Mass))
}
