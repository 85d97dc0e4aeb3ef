// Package controller computes per-tick locomotion forces for physics-driven
// characters: floating suspension above the ground, movement toward a goal
// velocity with friction and slope handling, a jump state machine with
// coyote time and input buffering, and an upright torque spring. It consumes
// ground casts and body state through small interfaces and owns no storage
// beyond explicit per-controller state, so hosts integrate it by calling
// Tick once per fixed physics step and applying the returned impulses.
package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// deg converts degrees to radians when multiplied.
const deg = math32.Pi / 180

// World is what a controller needs from the host physics engine each tick.
type World interface {
	GroundQuery
	FrictionLookup
}

// Input is the per-tick movement intent for one controller.
type Input struct {
	// Movement is the desired direction with magnitude up to 1.
	Movement mgl32.Vec3
	// Jumping reports whether the jump control is held.
	Jumping bool
}

// Gravity fixes a controller's up direction and gravity strength. Strength
// is negative to pull along -up.
type Gravity struct {
	UpVector mgl32.Vec3
	Strength float32
}

// Frame is the immutable per-tick snapshot of the controlled body and its
// input. DT is the fixed physics timestep and is always positive.
type Frame struct {
	Input           Input
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Mass            float32
	Position        mgl32.Vec3
	Rotation        mgl32.Quat
	DT              float32
}

// Output is the impulse set a tick produces, applied once by the host
// physics step.
type Output struct {
	// Linear and Angular are the impulses for the controlled body.
	Linear  mgl32.Vec3
	Angular mgl32.Vec3
	// Ground reaction against the supporting body, when there is one.
	HasGround   bool
	Ground      uint64
	GroundPoint mgl32.Vec3
	GroundForce mgl32.Vec3
}

// Controller bundles the tuning and runtime state of one controlled body.
// All force accumulators are rewritten every tick.
type Controller struct {
	// Body is the controlled body's id, excluded from ground casts.
	Body uint64

	Gravity  Gravity
	Movement Movement
	Jump     Jump
	Float    Float
	Upright  Upright
	Caster   GroundCaster

	// OpposingImpulseScale scales the reaction pushed into the ground from
	// support forces; OpposingMovementImpulseScale from movement force.
	// Zero the latter to stop loose ground slipping out underfoot.
	OpposingImpulseScale         float32
	OpposingMovementImpulseScale float32

	Cast GroundCast

	GravityForce  GravityForce
	FloatForce    FloatForce
	MovementForce MovementForce
	JumpForce     JumpForce
	UprightForce  UprightForce
}

// Tick runs one fixed physics step for the controller: sense the ground,
// rebuild every force accumulator, and return the summed impulses. The jump
// subsystem runs after float and gravity so its launch-tick zeroing of both
// is what the sum sees.
func (c *Controller) Tick(w World, frame Frame) Output {
	UpdateGroundCast(c, w, frame)
	UpdateGravityForce(c, frame)
	UpdateFloatForce(c, frame)
	UpdateMovementForce(c, w, frame)
	UpdateJumpForce(c, frame)
	UpdateUprightForce(c, frame)

	out := Output{
		Linear: c.GravityForce.Linear.
			Add(c.FloatForce.Linear).
			Add(c.MovementForce.Linear).
			Add(c.JumpForce.Linear),
		Angular: c.UprightForce.Angular.Add(c.MovementForce.Angular),
	}

	if c.Cast.HasViable {
		support := c.GravityForce.Linear.Add(c.FloatForce.Linear).Add(c.JumpForce.Linear)
		reaction := support.Mul(-c.OpposingImpulseScale).
			Sub(c.MovementForce.Linear.Mul(c.OpposingMovementImpulseScale))
		out.HasGround = true
		out.Ground = c.Cast.Viable.Body
		out.GroundPoint = c.Cast.Viable.Point
		out.GroundForce = reaction
	}

	return out
}

// ResetState clears runtime state (timers, cast, accumulators) while
// keeping tuning, for respawns.
func (c *Controller) ResetState() {
	c.Cast = GroundCast{}
	c.Caster.SkipGroundCheckTimer = 0
	c.Jump.JumpTimer = 0
	c.Jump.CooldownTimer = 0
	c.Jump.CoyoteTimer = 0
	c.Jump.BufferTimer = 0
	c.Jump.RemainingJumps = c.Jump.Jumps
	c.Jump.PressedLastFrame = false
	c.GravityForce = GravityForce{}
	c.FloatForce = FloatForce{}
	c.MovementForce = MovementForce{}
	c.JumpForce = JumpForce{}
	c.UprightForce = UprightForce{}
}

// DefaultJump is the baseline jump tuning for controllers configured from
// scratch.
func DefaultJump() Jump {
	return Jump{
		InitialForce:            30,
		Force:                   20,
		StopForce:               0.3,
		Decay:                   DecaySqrt,
		JumpDuration:            0.1,
		CooldownDuration:        0.25,
		CoyoteDuration:          0.2,
		BufferDuration:          0.3,
		SkipGroundCheckDuration: 0.3,
		Jumps:                   1,
		FirstJumpGrounded:       true,
		RemainingJumps:          1,
	}
}

// Character is a preset for a standard walking character, fit for most
// first and third person games.
func Character() Controller {
	return Controller{
		Gravity: Gravity{UpVector: mgl32.Vec3{0, 1, 0}, Strength: -20},
		Movement: Movement{
			Acceleration:   FlatStrength(50),
			MaxSpeed:       10,
			MaxForce:       10,
			ForceScale:     ExplicitForceScale(mgl32.Vec3{1, 0, 1}),
			SlipForceScale: mgl32.Vec3{1, 1, 1},
		},
		Jump: Jump{
			InitialForce:            15,
			StopForce:               0.3,
			Decay:                   DecaySqrt,
			JumpDuration:            0.5,
			CoyoteDuration:          0.16,
			BufferDuration:          0.16,
			SkipGroundCheckDuration: 0.5,
			Jumps:                   1,
			FirstJumpGrounded:       true,
			RemainingJumps:          1,
		},
		Float: Float{
			Distance:  0.55,
			MinOffset: -0.3,
			MaxOffset: 0.05,
			Spring:    Spring{Strength: 100, Damping: 0.8},
		},
		Upright: Upright{Spring: Spring{Strength: 10, Damping: 0.5}},
		Caster: GroundCaster{
			CastLength:     1.0,
			CastRadius:     0.45,
			MaxGroundAngle: 45 * deg,
		},
		OpposingImpulseScale:         1,
		OpposingMovementImpulseScale: 1,
	}
}

// Starship is a preset for a craft that flies freely in any direction and
// never rights itself.
func Starship() Controller {
	return Controller{
		Gravity: Gravity{UpVector: mgl32.Vec3{0, 1, 0}},
		Movement: Movement{
			Acceleration:   FlatStrength(0.3),
			MaxSpeed:       100,
			MaxForce:       10,
			ForceScale:     ExplicitForceScale(mgl32.Vec3{1, 1, 1}),
			SlipForceScale: mgl32.Vec3{1, 1, 1},
		},
		Jump:                         Jump{FirstJumpGrounded: true},
		Upright:                      Upright{},
		OpposingImpulseScale:         1,
		OpposingMovementImpulseScale: 1,
	}
}
