package broadphase

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/midgard-geom/pkg/math"
)

// Ray is a half line from Origin along the unit vector Direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// NewRay creates a ray, normalizing dir. A zero dir gives a ray that hits
// only boxes containing the origin.
func NewRay(origin, dir math.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.NormalizeSafe()}
}

// Transformed returns the ray moved by m. The direction ignores the
// translation of m and is normalized again.
func (r Ray) Transformed(m math.Mat4) Ray {
	return NewRay(m.MulVec3(r.Origin), m.TransformDirection(r.Direction))
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectAABB returns the distance to the first crossing of box using the
// slab method. If the ray starts inside the box the exit distance is
// returned.
func (r Ray) IntersectAABB(box math.AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	lo, hi := box.MinExtents(), box.MaxExtents()

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin.Index(axis), r.Direction.Index(axis)
		if d == 0 {
			if o < lo.Index(axis) || o > hi.Index(axis) {
				return 0, false
			}
			continue
		}
		t1 := (lo.Index(axis) - o) / d
		t2 := (hi.Index(axis) - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectSphere returns the distance to the first crossing of s, or the
// exit distance when the origin is inside.
func (r Ray) IntersectSphere(s math.BoundingSphere) (t float32, hit bool) {
	oc := r.Origin.Sub(s.Center())
	b := oc.Dot(r.Direction)
	c := oc.SquareLength() - s.Radius()*s.Radius()
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(gomath.Sqrt(float64(disc)))
	near, far := -b-sq, -b+sq
	switch {
	case far < 0:
		return 0, false
	case near < 0:
		return far, true
	default:
		return near, true
	}
}

// Hit is a body crossed by a ray.
type Hit struct {
	Body     *Body
	Distance float32
	Point    math.Vec3
}

// Raycast returns every body the ray crosses, nearest first. Ties keep
// input order.
func Raycast(bodies []Body, ray Ray, useSpheres bool) []Hit {
	var hits []Hit
	for i := range bodies {
		b := &bodies[i]
		if !b.finite() {
			continue
		}
		var (
			t  float32
			ok bool
		)
		if useSpheres {
			t, ok = ray.IntersectSphere(b.Sphere)
		} else {
			t, ok = ray.IntersectAABB(b.Box)
		}
		if ok {
			hits = append(hits, Hit{Body: b, Distance: t, Point: ray.At(t)})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}
