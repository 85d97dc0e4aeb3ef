// Package components defines ECS components for the simulation.
package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/stride/controller"
)

// Transform mirrors a body's pose for systems that only read position, such
// as rendering and the camera. The physics step is the source of truth; the
// sync system copies it here once per tick.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// RigidBodyRef links an entity to its body in the physics world.
type RigidBodyRef struct {
	ID uint64
}

// Character carries the full controller state and tuning for one controlled
// body.
type Character struct {
	Controller controller.Controller
}

// PlayerInput is the per-tick movement intent, already resolved into world
// space.
type PlayerInput struct {
	Movement mgl32.Vec3
	Jumping  bool
}

// PlatformPath makes a kinematic body shuttle between waypoints at a fixed
// speed.
type PlatformPath struct {
	Points []mgl32.Vec3
	Speed  float32
	// Target is the waypoint currently steered toward.
	Target int
}

// Prop tags loose dynamic bodies placed in a scene.
type Prop struct{}
