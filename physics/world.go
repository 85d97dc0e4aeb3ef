package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultFriction is the coefficient reported for bodies that never set one.
const DefaultFriction float32 = 0.5

// World owns all bodies and advances them with a fixed timestep. Bodies are
// kept in insertion order so casts and contact resolution are deterministic.
type World struct {
	Gravity mgl32.Vec3

	bodies []*Body
	byID   map[uint64]*Body
	nextID uint64
}

// NewWorld returns an empty world pulled on by gravity.
func NewWorld(gravity mgl32.Vec3) *World {
	return &World{
		Gravity: gravity,
		byID:    make(map[uint64]*Body),
		nextID:  1,
	}
}

// AddBody registers b and assigns its id.
func (w *World) AddBody(b *Body) uint64 {
	b.ID = w.nextID
	w.nextID++
	w.bodies = append(w.bodies, b)
	w.byID[b.ID] = b
	return b.ID
}

// Body looks up a body by id, nil when unknown.
func (w *World) Body(id uint64) *Body {
	return w.byID[id]
}

// Bodies returns the live body list in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Friction reports a body's friction coefficient, with a neutral default for
// unknown bodies.
func (w *World) Friction(id uint64) float32 {
	if b, ok := w.byID[id]; ok {
		return b.Friction
	}
	return DefaultFriction
}

// ApplyForce accumulates a force on a dynamic body for the next step.
func (w *World) ApplyForce(id uint64, force mgl32.Vec3) {
	b, ok := w.byID[id]
	if !ok || b.Kind != Dynamic {
		return
	}
	b.force = b.force.Add(force)
}

// ApplyTorque accumulates a torque on a dynamic body for the next step.
func (w *World) ApplyTorque(id uint64, torque mgl32.Vec3) {
	b, ok := w.byID[id]
	if !ok || b.Kind != Dynamic {
		return
	}
	b.torque = b.torque.Add(torque)
}

// ApplyForceAt accumulates a force acting at a world point, producing torque
// about the body center. Non-dynamic bodies ignore it.
func (w *World) ApplyForceAt(id uint64, force, point mgl32.Vec3) {
	b, ok := w.byID[id]
	if !ok || b.Kind != Dynamic {
		return
	}
	b.force = b.force.Add(force)
	b.torque = b.torque.Add(point.Sub(b.Position).Cross(force))
}

// Step advances the world by dt: integrate accumulated forces and gravity,
// move bodies, then resolve penetrations against the scene.
//
// Rotational inertia is approximated by mass, so torque integrates as
// omega += torque*dt/m.
func (w *World) Step(dt float32) {
	for _, b := range w.bodies {
		switch b.Kind {
		case Dynamic:
			if b.Mass > 0 {
				b.Velocity = b.Velocity.
					Add(w.Gravity.Mul(b.GravityScale * dt)).
					Add(b.force.Mul(dt / b.Mass))
				b.AngularVelocity = b.AngularVelocity.Add(b.torque.Mul(dt / b.Mass))
			}
			b.Position = b.Position.Add(b.Velocity.Mul(dt))
			integrateRotation(b, dt)
		case Kinematic:
			b.Position = b.Position.Add(b.Velocity.Mul(dt))
		}
		b.force = mgl32.Vec3{}
		b.torque = mgl32.Vec3{}
	}

	w.resolveContacts()
}

func integrateRotation(b *Body, dt float32) {
	speed := b.AngularVelocity.Len()
	if speed <= 1e-8 {
		return
	}
	spin := mgl32.QuatRotate(speed*dt, b.AngularVelocity.Mul(1/speed))
	b.Rotation = spin.Mul(b.Rotation).Normalize()
}

// resolveContacts pushes dynamic bodies out of whatever they sank into and
// settles their contact velocity. Box-box pairs are not resolved; scenes do
// not stack boxes on boxes.
func (w *World) resolveContacts() {
	for _, d := range w.bodies {
		if d.Kind != Dynamic {
			continue
		}
		for _, o := range w.bodies {
			if o == d {
				continue
			}
			if o.Kind == Dynamic && o.ID < d.ID {
				continue // pair already handled from the other side
			}
			normal, penetration, ok := contact(d, o)
			if !ok || penetration <= 0 {
				continue
			}
			if o.Kind == Dynamic {
				w.resolveDynamicPair(d, o, normal, penetration)
			} else {
				resolveFixedContact(d, o, normal, penetration)
			}
		}
	}
}

// contact returns the push-out normal (toward d) and penetration depth of d
// against o.
func contact(d, o *Body) (mgl32.Vec3, float32, bool) {
	switch d.Shape.Kind {
	case ShapeSphere:
		switch o.Shape.Kind {
		case ShapePlane:
			return spherePlaneContact(d, o)
		case ShapeBox:
			return sphereBoxContact(d, o)
		case ShapeSphere:
			return sphereSphereContact(d, o)
		}
	case ShapeBox:
		switch o.Shape.Kind {
		case ShapePlane:
			return boxPlaneContact(d, o)
		case ShapeSphere:
			n, pen, ok := sphereBoxContact(o, d)
			return n.Mul(-1), pen, ok
		}
	}
	return mgl32.Vec3{}, 0, false
}

func spherePlaneContact(s, p *Body) (mgl32.Vec3, float32, bool) {
	n := p.Shape.Normal
	dist := s.Position.Sub(p.Position).Dot(n)
	return n, s.Shape.Radius - dist, true
}

func sphereSphereContact(a, b *Body) (mgl32.Vec3, float32, bool) {
	diff := a.Position.Sub(b.Position)
	dist := diff.Len()
	if dist < 1e-4 {
		return mgl32.Vec3{}, 0, false
	}
	return diff.Mul(1 / dist), a.Shape.Radius + b.Shape.Radius - dist, true
}

func sphereBoxContact(s, b *Body) (mgl32.Vec3, float32, bool) {
	closest := closestPointOnBox(b, s.Position)
	diff := s.Position.Sub(closest)
	dist := diff.Len()
	if dist < 1e-4 {
		return mgl32.Vec3{}, 0, false
	}
	return diff.Mul(1 / dist), s.Shape.Radius - dist, true
}

// boxPlaneContact measures the deepest corner of the box below the plane.
func boxPlaneContact(b, p *Body) (mgl32.Vec3, float32, bool) {
	n := p.Shape.Normal
	h := b.Shape.HalfExtents
	deepest := float32(math32.MaxFloat32)
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{h.X(), h.Y(), h.Z()}
		if i&1 != 0 {
			corner[0] = -corner[0]
		}
		if i&2 != 0 {
			corner[1] = -corner[1]
		}
		if i&4 != 0 {
			corner[2] = -corner[2]
		}
		world := b.Position.Add(b.Rotation.Rotate(corner))
		if dist := world.Sub(p.Position).Dot(n); dist < deepest {
			deepest = dist
		}
	}
	return n, -deepest, true
}

// closestPointOnBox clamps a world point into the box's local extents.
func closestPointOnBox(b *Body, point mgl32.Vec3) mgl32.Vec3 {
	local := b.Rotation.Conjugate().Rotate(point.Sub(b.Position))
	h := b.Shape.HalfExtents
	clamped := mgl32.Vec3{
		clamp(local.X(), -h.X(), h.X()),
		clamp(local.Y(), -h.Y(), h.Y()),
		clamp(local.Z(), -h.Z(), h.Z()),
	}
	return b.Position.Add(b.Rotation.Rotate(clamped))
}

// resolveFixedContact pushes a dynamic body out of a static or kinematic one
// and settles the approach velocity against the contact's own motion.
func resolveFixedContact(d, o *Body, normal mgl32.Vec3, penetration float32) {
	d.Position = d.Position.Add(normal.Mul(penetration))

	rel := d.Velocity.Sub(o.Velocity)
	approach := rel.Dot(normal)
	if approach >= 0 {
		return
	}
	d.Velocity = d.Velocity.Sub(normal.Mul((1 + d.Bounciness) * approach))

	// Per-contact tangential damping keeps settled bodies from drifting.
	tangent := rel.Sub(normal.Mul(rel.Dot(normal)))
	d.Velocity = d.Velocity.Sub(tangent.Mul(d.Friction))
}

// resolveDynamicPair splits the push by mass and exchanges a restitution
// impulse.
func (w *World) resolveDynamicPair(a, b *Body, normal mgl32.Vec3, penetration float32) {
	total := a.Mass + b.Mass
	if total <= 0 {
		return
	}
	a.Position = a.Position.Add(normal.Mul(penetration * b.Mass / total))
	b.Position = b.Position.Sub(normal.Mul(penetration * a.Mass / total))

	rel := a.Velocity.Sub(b.Velocity)
	approach := rel.Dot(normal)
	if approach >= 0 {
		return
	}
	e := (a.Bounciness + b.Bounciness) / 2
	j := -(1 + e) * approach / (1/a.Mass + 1/b.Mass)
	impulse := normal.Mul(j)
	a.Velocity = a.Velocity.Add(impulse.Mul(1 / a.Mass))
	b.Velocity = b.Velocity.Sub(impulse.Mul(1 / b.Mass))
}

func clamp(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
