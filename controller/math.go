package controller

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vector helpers shared by the force subsystems.

// mulElem multiplies two vectors componentwise.
func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// capAxis clamps a single axis against its cap. A zero cap forces the axis
// to zero, a negative cap bounds it from below, a positive cap from above.
func capAxis(v, cap float32) float32 {
	if cap == 0 || (cap < 0 && v < cap) || (cap > 0 && v > cap) {
		return cap
	}
	return v
}

// capVec applies capAxis per axis.
func capVec(v, cap mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		capAxis(v.X(), cap.X()),
		capAxis(v.Y(), cap.Y()),
		capAxis(v.Z(), cap.Z()),
	}
}

// clampLen scales v down to the given length when it is longer.
func clampLen(v mgl32.Vec3, maxLen float32) mgl32.Vec3 {
	l := v.Len()
	if l <= maxLen || l == 0 {
		return v
	}
	return v.Mul(maxLen / l)
}

// projectOnto projects v onto the direction of onto. A degenerate onto
// yields the zero vector.
func projectOnto(v, onto mgl32.Vec3) mgl32.Vec3 {
	d := onto.LenSqr()
	if d <= 0 {
		return mgl32.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / d)
}

// anyOrthonormalPair builds two unit vectors orthogonal to a unit vector n
// and to each other, without branching on near-axis cases.
func anyOrthonormalPair(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	sign := float32(1)
	if math32.Signbit(n.Z()) {
		sign = -1
	}
	a := -1 / (sign + n.Z())
	b := n.X() * n.Y() * a
	u := mgl32.Vec3{1 + sign*n.X()*n.X()*a, sign * b, -sign * n.X()}
	v := mgl32.Vec3{b, sign + n.Y()*n.Y()*a, -n.Y()}
	return u, v
}

// angleBetween returns the angle in radians between two vectors, zero when
// either is degenerate.
func angleBetween(a, b mgl32.Vec3) float32 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := a.Dot(b) / (la * lb)
	return math32.Acos(clampFloat(cos, -1, 1))
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// tickTimer counts a timer down toward zero without going past it.
func tickTimer(t *float32, dt float32) {
	if *t > 0 {
		*t = math32.Max(*t-dt, 0)
	}
}
