package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// JumpDecay names the curve shaping sustained jump force over the jump's
// progress. The zero value applies no decay.
type JumpDecay uint8

const (
	// DecayConstant keeps the sustained force flat for the whole jump.
	DecayConstant JumpDecay = iota
	// DecayLinear fades the force linearly to zero at the jump's end.
	DecayLinear
	// DecaySqrt fades as sqrt(1-progress), front-loading the thrust.
	DecaySqrt
)

// Multiplier evaluates the curve at a progress in [0, 1].
func (d JumpDecay) Multiplier(progress float32) float32 {
	switch d {
	case DecayLinear:
		return 1 - progress
	case DecaySqrt:
		return math32.Sqrt(1 - clampFloat(progress, 0, 1))
	default:
		return 1
	}
}

// Jump holds jumping configuration and the state machine that drives it.
// Timers are plain countdowns in seconds; the matching *Duration fields are
// configuration and are never written by the tick.
type Jump struct {
	// InitialForce is the launch speed along up on the first frame of a
	// jump, applied after cancelling existing up velocity.
	InitialForce float32
	// Force is the sustained push along up while the jump is held, shaped
	// by Decay.
	Force float32
	// StopForce scales the brake applied when the control is released
	// before the jump expires, cutting the jump short.
	StopForce float32
	// Decay shapes Force over the jump duration.
	Decay JumpDecay

	// JumpDuration is how long a jump can last.
	JumpDuration float32
	// CooldownDuration is the wait before the next jump can fire.
	CooldownDuration float32
	// CoyoteDuration is how long after leaving the ground a first jump
	// still succeeds.
	CoyoteDuration float32
	// BufferDuration is how long a jump pressed in the air stays queued to
	// fire on landing.
	BufferDuration float32
	// SkipGroundCheckDuration is how long ground sensing is suppressed
	// after launch.
	SkipGroundCheckDuration float32
	// Jumps is how many jumps are available between groundings.
	Jumps int
	// FirstJumpGrounded requires ground (or coyote time) for the first
	// jump. Disable for controllers that may start their chain airborne.
	FirstJumpGrounded bool

	// Runtime state.
	JumpTimer        float32
	CooldownTimer    float32
	CoyoteTimer      float32
	BufferTimer      float32
	RemainingJumps   int
	PressedLastFrame bool
}

// JumpForce is the jump impulse accumulator, rewritten every tick.
type JumpForce struct {
	Linear mgl32.Vec3
}

// tickTimers counts all jump countdowns toward zero. Only the timer fields
// move; configured durations stay put.
func (j *Jump) tickTimers(dt float32) {
	tickTimer(&j.CooldownTimer, dt)
	tickTimer(&j.JumpTimer, dt)
	tickTimer(&j.BufferTimer, dt)
	tickTimer(&j.CoyoteTimer, dt)
}

// Jumping reports whether a jump is currently in flight.
func (j *Jump) Jumping() bool {
	return j.JumpTimer > 0
}

// CanJump reports whether a jump may fire right now.
func (j *Jump) CanJump(grounded bool) bool {
	first := j.RemainingJumps == j.Jumps
	grounded = grounded || j.CoyoteTimer > 0
	if j.FirstJumpGrounded && first && !grounded {
		return false
	}
	return j.CooldownTimer <= 0 && j.RemainingJumps > 0
}

// resetJump restores the full jump count on the ground.
func (j *Jump) resetJump() {
	j.RemainingJumps = j.Jumps
	j.JumpTimer = 0
}

// Progress is how far through the current jump we are, in [0, 1].
func (j *Jump) Progress() float32 {
	if j.JumpDuration <= 0 {
		return 1
	}
	return (j.JumpDuration - j.JumpTimer) / j.JumpDuration
}

// UpdateJumpForce advances the jump state machine one tick and computes its
// impulse. It may zero the float and gravity accumulators on launch, so it
// must run after them and before summation.
func UpdateJumpForce(c *Controller, frame Frame) {
	j := &c.Jump
	cast := &c.Cast
	up := c.Gravity.UpVector

	c.JumpForce.Linear = mgl32.Vec3{}

	grounded := cast.Grounded
	j.tickTimers(frame.DT)

	if grounded {
		j.CoyoteTimer = j.CoyoteDuration
	}
	if j.CooldownTimer <= 0 && grounded {
		j.resetJump()
	}

	velocity := frame.Velocity
	if cast.HasViable {
		velocity = velocity.Sub(cast.Viable.PointVelocity)
	}

	jumpInputted := frame.Input.Jumping && !j.PressedLastFrame
	justJumped := jumpInputted || j.BufferTimer > 0

	if jumpInputted && !grounded {
		j.BufferTimer = j.BufferDuration
	}

	if j.CanJump(grounded) && justJumped {
		// Cancelling the up velocity first keeps falling jumps consistent
		// and stops repeated jumps from stacking launch speed.
		negateUpVelocity := up.Mul(-velocity.Dot(up) * frame.Mass / frame.DT)
		initial := up.Mul(j.InitialForce * frame.Mass / frame.DT)
		c.JumpForce.Linear = c.JumpForce.Linear.Add(negateUpVelocity).Add(initial)

		c.GravityForce.Linear = mgl32.Vec3{}
		c.FloatForce.Linear = mgl32.Vec3{}

		if j.RemainingJumps > 0 {
			j.RemainingJumps--
		}
		j.CooldownTimer = j.CooldownDuration
		j.JumpTimer = j.JumpDuration
	} else if j.Jumping() {
		if !frame.Input.Jumping {
			// Cut the jump short on release.
			stop := projectOnto(velocity, up).Mul(-j.StopForce)
			c.JumpForce.Linear = c.JumpForce.Linear.Add(stop)
		} else {
			c.Caster.SkipGroundCheckTimer = j.SkipGroundCheckDuration
			sustain := up.Mul(j.Force * j.Decay.Multiplier(j.Progress()))
			c.JumpForce.Linear = c.JumpForce.Linear.Add(sustain)
		}
	}

	j.PressedLastFrame = frame.Input.Jumping
}
