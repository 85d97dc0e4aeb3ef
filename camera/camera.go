// Package camera provides a third-person orbit camera for the demo.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const deg = math32.Pi / 180

// Camera orbits a followed point at a fixed boom length. The look target is
// smoothed toward the followed body so fixed-step motion reads cleanly at
// any frame rate.
type Camera struct {
	// Target is the smoothed look-at point in world coordinates.
	Target mgl32.Vec3

	// Orbit state: angles in radians, boom length in world units.
	Yaw      float32
	Pitch    float32
	Distance float32

	FOV float32

	// Smoothing is the follow responsiveness. Higher snaps harder; zero or
	// negative disables smoothing entirely.
	Smoothing float32

	// Orbit constraints.
	MinPitch, MaxPitch       float32
	MinDistance, MaxDistance float32
}

// New creates an orbit camera from degree-based tuning.
func New(distance, pitchDeg, yawDeg, fov, smoothing float32) *Camera {
	return &Camera{
		Yaw:         yawDeg * deg,
		Pitch:       pitchDeg * deg,
		Distance:    distance,
		FOV:         fov,
		Smoothing:   smoothing,
		MinPitch:    -35 * deg,
		MaxPitch:    85 * deg,
		MinDistance: 2,
		MaxDistance: 30,
	}
}

// Follow moves the look target toward the followed point. dt is the real
// frame delta, not the simulation step.
func (c *Camera) Follow(point mgl32.Vec3, dt float32) {
	if c.Smoothing <= 0 {
		c.Target = point
		return
	}
	t := 1 - math32.Exp(-c.Smoothing*dt)
	c.Target = c.Target.Add(point.Sub(c.Target).Mul(t))
}

// Orbit adjusts the yaw and pitch by the given radian deltas, clamping pitch.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// Dolly scales the boom length, clamped to the distance constraints.
func (c *Camera) Dolly(factor float32) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Position returns the camera eye point for the current orbit state.
func (c *Camera) Position() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	offset := mgl32.Vec3{
		cp * math32.Sin(c.Yaw) * c.Distance,
		math32.Sin(c.Pitch) * c.Distance,
		cp * math32.Cos(c.Yaw) * c.Distance,
	}
	return c.Target.Add(offset)
}

// FlatForward returns the camera's view direction projected onto the ground
// plane, for camera-relative movement input.
func (c *Camera) FlatForward() mgl32.Vec3 {
	return mgl32.Vec3{-math32.Sin(c.Yaw), 0, -math32.Cos(c.Yaw)}
}

// FlatRight returns the ground-plane right vector matching FlatForward.
func (c *Camera) FlatRight() mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(c.Yaw), 0, -math32.Sin(c.Yaw)}
}

// Reset snaps the target to the given point and restores the default orbit.
func (c *Camera) Reset(point mgl32.Vec3, distance, pitchDeg, yawDeg float32) {
	c.Target = point
	c.Yaw = yawDeg * deg
	c.Pitch = pitchDeg * deg
	c.Distance = clamp(distance, c.MinDistance, c.MaxDistance)
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
