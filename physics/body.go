// Package physics is the minimal 3D backend the demo runs on: rigid bodies
// with sphere, box, and half-space shapes, a sphere cast for ground sensing,
// and explicit Euler integration. It implements the query interfaces the
// controller package consumes.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Kind classifies how a body participates in integration.
type Kind uint8

const (
	// Static bodies never move.
	Static Kind = iota
	// Kinematic bodies move by their velocity but ignore forces.
	Kinematic
	// Dynamic bodies integrate forces, gravity, and contacts.
	Dynamic
)

// ShapeKind selects a collision shape.
type ShapeKind uint8

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapePlane
)

// Shape is a tagged collision shape. Only the fields of the active kind are
// meaningful.
type Shape struct {
	Kind ShapeKind
	// Radius of a sphere.
	Radius float32
	// HalfExtents of a box along its local axes.
	HalfExtents mgl32.Vec3
	// Normal of a half-space plane passing through the body position.
	Normal mgl32.Vec3
}

// Sphere returns a sphere shape.
func Sphere(radius float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Box returns a box shape with the given half extents.
func Box(halfExtents mgl32.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

// Plane returns a half-space shape facing along normal.
func Plane(normal mgl32.Vec3) Shape {
	return Shape{Kind: ShapePlane, Normal: normal.Normalize()}
}

// Body is one rigid body. Position and velocity are freely readable and
// writable between steps; forces accumulate until the next Step consumes
// them.
type Body struct {
	ID    uint64
	Kind  Kind
	Shape Shape

	Position        mgl32.Vec3
	Rotation        mgl32.Quat
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3

	Mass     float32
	Friction float32
	// Bounciness is the restitution used when contacts are resolved.
	Bounciness float32
	// GravityScale scales world gravity for this body. Controlled characters
	// set it to zero because their controller owns gravity.
	GravityScale float32

	force  mgl32.Vec3
	torque mgl32.Vec3
}

// NewBody returns a body of the given kind and shape with neutral defaults.
func NewBody(kind Kind, shape Shape) *Body {
	return &Body{
		Kind:         kind,
		Shape:        shape,
		Rotation:     mgl32.QuatIdent(),
		Mass:         1,
		Friction:     DefaultFriction,
		GravityScale: 1,
	}
}

// PointVelocity is the body's velocity at a world point, including the
// rotational contribution.
func (b *Body) PointVelocity(point mgl32.Vec3) mgl32.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(point.Sub(b.Position)))
}
