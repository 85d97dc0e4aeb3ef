package controller

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GroundQuery is the shape-cast service a controller senses the ground
// through, implemented by the host physics world.
type GroundQuery interface {
	// CastGround sweeps a sphere of the given radius from origin along dir
	// (unit length) up to maxDist and reports the nearest hit. Bodies for
	// which filter returns false are ignored.
	CastGround(origin, dir mgl32.Vec3, radius, maxDist float32, filter func(body uint64) bool) (Hit, bool)
}

// Hit is a single shape-cast result.
type Hit struct {
	Body     uint64
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
	// PointVelocity is the hit body's velocity at the contact point,
	// including any rotational contribution.
	PointVelocity mgl32.Vec3
}

// Contact is a classified ground hit.
type Contact struct {
	Body          uint64
	Point         mgl32.Vec3
	Normal        mgl32.Vec3
	Distance      float32
	PointVelocity mgl32.Vec3
	// Stable reports whether the surface is walkable, i.e. its normal is
	// within MaxGroundAngle of the up vector.
	Stable bool
}

// GroundCast is the per-tick result of ground sensing. It is overwritten by
// UpdateGroundCast every tick and read-only to the force subsystems.
type GroundCast struct {
	// Current is this tick's nearest contact, stable or not.
	Current    Contact
	HasCurrent bool
	// Viable is the most recent stable contact. It survives for exactly one
	// tick after the contact is lost so that ground-relative velocity does
	// not jump when a contact drops for a single frame.
	Viable    Contact
	HasViable bool
	// Fresh reports whether Viable was produced this tick rather than
	// carried over.
	Fresh bool
	// Grounded reports a stable contact resting within the float window.
	Grounded bool
}

// GroundVelocity returns the viable contact's velocity at the contact point,
// or zero without one.
func (c *GroundCast) GroundVelocity() mgl32.Vec3 {
	if !c.HasViable {
		return mgl32.Vec3{}
	}
	return c.Viable.PointVelocity
}

// GroundCaster configures and drives ground sensing for one controller.
type GroundCaster struct {
	// CastLength is how far below the body to probe.
	CastLength float32
	// CastOrigin offsets the probe start from the body position, in body
	// local space.
	CastOrigin mgl32.Vec3
	// CastRadius is the probe sphere radius.
	CastRadius float32
	// MaxGroundAngle is the walkable slope limit in radians, measured
	// between the surface normal and the up vector.
	MaxGroundAngle float32
	// Exclude lists bodies never treated as ground, beyond the controller's
	// own body.
	Exclude map[uint64]struct{}

	// SkipGroundCheckTimer suppresses the cast while positive. The jump
	// subsystem arms it on launch so the surface just pushed off is not
	// immediately re-detected.
	SkipGroundCheckTimer float32
	// SkipGroundCheckOverride suppresses the cast unconditionally.
	SkipGroundCheckOverride bool
}

// UpdateGroundCast performs the per-tick ground probe for c and rewrites
// c.Cast. Must run before any force subsystem reads the cast.
func UpdateGroundCast(c *Controller, q GroundQuery, frame Frame) {
	caster := &c.Caster
	cast := &c.Cast

	tickTimer(&caster.SkipGroundCheckTimer, frame.DT)

	prevViable := cast.Viable
	prevHadViable := cast.HasViable
	prevFresh := cast.Fresh

	*cast = GroundCast{}

	up := c.Gravity.UpVector
	skip := caster.SkipGroundCheckTimer > 0 || caster.SkipGroundCheckOverride
	if !skip && up.LenSqr() > 0 {
		origin := frame.Position.Add(frame.Rotation.Rotate(caster.CastOrigin))
		dir := up.Normalize().Mul(-1)
		hit, ok := q.CastGround(origin, dir, caster.CastRadius, caster.CastLength, func(body uint64) bool {
			if body == c.Body {
				return false
			}
			_, excluded := caster.Exclude[body]
			return !excluded
		})
		if ok {
			cast.Current = Contact{
				Body:          hit.Body,
				Point:         hit.Point,
				Normal:        hit.Normal,
				Distance:      hit.Distance,
				PointVelocity: hit.PointVelocity,
				Stable:        angleBetween(hit.Normal, up) <= caster.MaxGroundAngle,
			}
			cast.HasCurrent = true
		}
	}

	switch {
	case cast.HasCurrent && cast.Current.Stable:
		cast.Viable = cast.Current
		cast.HasViable = true
		cast.Fresh = true
	case prevHadViable && prevFresh:
		// One-tick grace: keep the last stable contact so dependent forces
		// see continuous ground velocity across a single dropped frame.
		cast.Viable = prevViable
		cast.HasViable = true
		cast.Fresh = false
	}

	if cast.HasCurrent && cast.Current.Stable {
		offset := cast.Current.Distance - c.Float.Distance
		cast.Grounded = offset >= c.Float.MinOffset && offset <= c.Float.MaxOffset
	}
}
