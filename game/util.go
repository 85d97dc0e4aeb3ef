package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// deg converts degrees to radians when multiplied.
const deg = math32.Pi / 180

// planarSpeed is the velocity magnitude with the up component removed.
func planarSpeed(vel, up mgl32.Vec3) float32 {
	planar := vel.Sub(up.Mul(vel.Dot(up)))
	return planar.Len()
}

// tiltDegrees measures how far a body's local up has rolled away from the
// world up, in degrees.
func tiltDegrees(rot mgl32.Quat, up mgl32.Vec3) float32 {
	bodyUp := rot.Rotate(up)
	cos := clamp32(bodyUp.Dot(up), -1, 1)
	return math32.Acos(cos) / deg
}

func clamp32(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
