package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Spring parameterizes a damped harmonic oscillator. Strength is the
// restoring constant; Damping is a ratio where 1.0 is critically damped.
type Spring struct {
	Strength float32
	Damping  float32
}

// DampCoefficient returns the damping coefficient for a body of the given
// mass. A Damping ratio of 1.0 yields the critical coefficient 2*sqrt(k*m).
func (s Spring) DampCoefficient(mass float32) float32 {
	return 2 * math32.Sqrt(s.Strength*mass) * s.Damping
}

// Force computes the restoring force for a scalar displacement from rest and
// the velocity of the body relative to whatever it is sprung against.
// Displacement is measured current-minus-target, so the force points back
// toward the target.
func (s Spring) Force(displacement, relativeVelocity, mass float32) float32 {
	return -s.Strength*displacement - s.DampCoefficient(mass)*relativeVelocity
}

// ForceVec is Force applied per-axis to vector displacement and velocity,
// used for angular correction where displacement is an axis-angle vector.
func (s Spring) ForceVec(displacement, relativeVelocity mgl32.Vec3, mass float32) mgl32.Vec3 {
	damp := s.DampCoefficient(mass)
	return displacement.Mul(-s.Strength).Sub(relativeVelocity.Mul(damp))
}
