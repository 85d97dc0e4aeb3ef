package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FrictionLookup resolves a friction coefficient for a body, falling back
// to a neutral default when none is registered.
type FrictionLookup interface {
	Friction(body uint64) float32
}

// StrengthMode selects how Movement acceleration scales.
type StrengthMode uint8

const (
	// StrengthScaled multiplies the value by mass/dt, so it reads as
	// velocity change per tick.
	StrengthScaled StrengthMode = iota
	// StrengthFlat uses the value as a force directly.
	StrengthFlat
)

// Strength is an acceleration magnitude in one of two scaling modes.
type Strength struct {
	Mode  StrengthMode
	Value float32
}

// FlatStrength returns a Strength applied as a raw force.
func FlatStrength(v float32) Strength {
	return Strength{Mode: StrengthFlat, Value: v}
}

// ScaledStrength returns a Strength applied as velocity change per tick.
func ScaledStrength(v float32) Strength {
	return Strength{Mode: StrengthScaled, Value: v}
}

// Get resolves the strength for a body of the given mass at timestep dt.
func (s Strength) Get(mass, dt float32) float32 {
	if s.Mode == StrengthScaled {
		return s.Value * mass / dt
	}
	return s.Value
}

// ForceScaleMode selects how the movement force mask is derived.
type ForceScaleMode uint8

const (
	// ForceScaleUp masks out the up axis, confining movement force to the
	// plane orthogonal to the up vector.
	ForceScaleUp ForceScaleMode = iota
	// ForceScaleNone applies no masking.
	ForceScaleNone
	// ForceScaleExplicit uses the configured vector as the mask.
	ForceScaleExplicit
)

// ForceScale is a per-axis movement force mask as a small tagged choice.
type ForceScale struct {
	Mode  ForceScaleMode
	Value mgl32.Vec3
}

// ExplicitForceScale returns a ForceScale with a fixed per-axis mask.
func ExplicitForceScale(v mgl32.Vec3) ForceScale {
	return ForceScale{Mode: ForceScaleExplicit, Value: v}
}

// Resolve computes the mask vector for the given up direction.
func (f ForceScale) Resolve(up mgl32.Vec3) mgl32.Vec3 {
	switch f.Mode {
	case ForceScaleExplicit:
		return f.Value
	case ForceScaleUp:
		if up.LenSqr() == 0 {
			return mgl32.Vec3{1, 1, 1}
		}
		u, v := anyOrthonormalPair(up.Normalize())
		return mgl32.Vec3{
			math32.Abs(u.X()) + math32.Abs(v.X()),
			math32.Abs(u.Y()) + math32.Abs(v.Y()),
			math32.Abs(u.Z()) + math32.Abs(v.Z()),
		}
	default:
		return mgl32.Vec3{1, 1, 1}
	}
}

// Movement configures how a controller accelerates toward its goal velocity.
type Movement struct {
	// Acceleration is how hard the controller pushes toward the goal.
	Acceleration Strength
	// MaxSpeed is the goal speed for a fully saturated input.
	MaxSpeed float32
	// MaxForce bounds the raw movement force magnitude, as velocity change
	// per tick, before the overshoot cap. Zero disables the bound.
	MaxForce float32
	// ForceScale masks which axes movement force may touch.
	ForceScale ForceScale
	// SlipForceScale scales how strongly steep slopes reject uphill goal
	// velocity. Below one the controller can fight partway up.
	SlipForceScale mgl32.Vec3
}

// MovementForce is the locomotion impulse accumulator, rewritten every tick.
type MovementForce struct {
	Linear  mgl32.Vec3
	Angular mgl32.Vec3
}

// UpdateMovementForce computes the capped impulse that drives the body
// toward its goal velocity while cancelling velocity relative to the ground
// and rejecting movement up slopes beyond the walkable limit.
func UpdateMovementForce(c *Controller, frictions FrictionLookup, frame Frame) {
	c.MovementForce.Linear = mgl32.Vec3{}
	c.MovementForce.Angular = mgl32.Vec3{}

	mv := &c.Movement
	cast := &c.Cast
	up := c.Gravity.UpVector
	forceScale := mv.ForceScale.Resolve(up)

	inputDir := clampLen(frame.Input.Movement, 1)
	inputGoalVel := inputDir.Mul(mv.MaxSpeed)
	goalVel := inputGoalVel

	// Steep ground: strip the uphill component out of the goal velocity and
	// push down the slope instead. The slip vector is the part of up lying
	// in the ground plane, which points up the slope.
	var slide mgl32.Vec3
	hasSlide := false
	if cast.HasCurrent && !cast.Current.Stable {
		nu, nv := anyOrthonormalPair(cast.Current.Normal)
		slip := mulElem(projectOnto(up, nu).Add(projectOnto(up, nv)), forceScale)
		// Ignore surfaces flat enough that the slip direction degenerates.
		if slip.Len() > 0.01 {
			slipDir := slip.Normalize()
			if uphill := goalVel.Dot(slipDir); uphill > 0 {
				slipGoal := slipDir.Mul(uphill)
				goalVel = goalVel.Sub(mulElem(slipGoal, mv.SlipForceScale))
			}
			slide = mulElem(slip, forceScale).Normalize()
			hasSlide = true
		}
	}

	relativeVelocity := mulElem(frame.Velocity.Sub(cast.GroundVelocity()), forceScale)

	var friction mgl32.Vec3
	if cast.HasViable && cast.Fresh {
		coeff := math32.Max(frictions.Friction(c.Body), frictions.Friction(cast.Viable.Body))
		friction = relativeVelocity.Mul(coeff * frame.Mass / frame.DT)
	}

	strength := mv.Acceleration.Get(frame.Mass, frame.DT)
	raw := mulElem(inputGoalVel.Mul(strength), forceScale)
	if mv.MaxForce > 0 {
		raw = clampLen(raw, mv.MaxForce*frame.Mass/frame.DT)
	}

	// Never push past the goal within one tick: cap against the force that
	// would close the remaining velocity gap exactly, plus what friction
	// takes back.
	clampedVelocity := capVec(relativeVelocity, goalVel)
	displacement := goalVel.Sub(clampedVelocity)
	maxForce := mulElem(displacement.Mul(frame.Mass/frame.DT), forceScale).Add(friction)
	capped := capVec(raw, maxForce)

	linear := capped.Sub(friction)
	if hasSlide {
		linear = linear.Sub(slide)
	}
	c.MovementForce.Linear = linear
}
