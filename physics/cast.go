package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/stride/controller"
)

// CastGround sweeps a sphere of the given radius from origin along dir (unit
// length) and reports the nearest contact within maxDist. Distance is the
// travel of the sphere center, zero when already touching at the start.
// Bodies rejected by filter are skipped.
func (w *World) CastGround(origin, dir mgl32.Vec3, radius, maxDist float32, filter func(body uint64) bool) (controller.Hit, bool) {
	best := controller.Hit{Distance: maxDist}
	found := false

	for _, b := range w.bodies {
		if filter != nil && !filter(b.ID) {
			continue
		}
		var (
			t      float32
			normal mgl32.Vec3
			ok     bool
		)
		switch b.Shape.Kind {
		case ShapePlane:
			t, normal, ok = castPlane(b, origin, dir, radius)
		case ShapeSphere:
			t, normal, ok = castSphere(b, origin, dir, radius)
		case ShapeBox:
			t, normal, ok = castBox(b, origin, dir, radius)
		}
		if !ok || t > maxDist {
			continue
		}
		if found && t >= best.Distance {
			continue
		}
		point := origin.Add(dir.Mul(t)).Sub(normal.Mul(radius))
		best = controller.Hit{
			Body:          b.ID,
			Point:         point,
			Normal:        normal,
			Distance:      t,
			PointVelocity: b.PointVelocity(point),
		}
		found = true
	}

	return best, found
}

// castPlane sweeps against a half-space. The cast sphere touches when its
// center is radius above the plane.
func castPlane(b *Body, origin, dir mgl32.Vec3, radius float32) (float32, mgl32.Vec3, bool) {
	n := b.Shape.Normal
	denom := dir.Dot(n)
	if denom >= -1e-6 {
		return 0, mgl32.Vec3{}, false
	}
	s0 := origin.Sub(b.Position).Dot(n)
	t := (s0 - radius) / -denom
	if t < 0 {
		if s0 < 0 {
			return 0, mgl32.Vec3{}, false
		}
		t = 0
	}
	return t, n, true
}

// castSphere sweeps against a sphere by expanding it with the cast radius
// and intersecting the center ray.
func castSphere(b *Body, origin, dir mgl32.Vec3, radius float32) (float32, mgl32.Vec3, bool) {
	rr := b.Shape.Radius + radius
	oc := origin.Sub(b.Position)
	half := oc.Dot(dir)
	c := oc.Dot(oc) - rr*rr
	disc := half*half - c
	if disc < 0 {
		return 0, mgl32.Vec3{}, false
	}
	t := -half - math32.Sqrt(disc)
	if t < 0 {
		if c > 0 {
			return 0, mgl32.Vec3{}, false
		}
		t = 0
	}
	at := origin.Add(dir.Mul(t))
	diff := at.Sub(b.Position)
	if l := diff.Len(); l > 1e-6 {
		return t, diff.Mul(1 / l), true
	}
	return 0, mgl32.Vec3{}, false
}

// castBox sweeps against an oriented box using the slab method in the box's
// local frame. Half-extents grow by the cast radius; corners are treated
// square.
func castBox(b *Body, origin, dir mgl32.Vec3, radius float32) (float32, mgl32.Vec3, bool) {
	inv := b.Rotation.Conjugate()
	o := inv.Rotate(origin.Sub(b.Position))
	d := inv.Rotate(dir)
	h := b.Shape.HalfExtents.Add(mgl32.Vec3{radius, radius, radius})

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	axis := -1

	for i := 0; i < 3; i++ {
		if math32.Abs(d[i]) < 1e-8 {
			if o[i] < -h[i] || o[i] > h[i] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		t1 := (-h[i] - o[i]) / d[i]
		t2 := (h[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmin > tmax || tmax < 0 || tmin < 0 || axis < 0 {
		return 0, mgl32.Vec3{}, false
	}

	var local mgl32.Vec3
	if d[axis] > 0 {
		local[axis] = -1
	} else {
		local[axis] = 1
	}
	return tmin, b.Rotation.Rotate(local), true
}
