package math

// IntersectData is the result of an intersection query.
type IntersectData struct {
	doesIntersect bool
	distance      float32
}

// NewIntersectData creates a query result.
func NewIntersectData(doesIntersect bool, distance float32) IntersectData {
	return IntersectData{doesIntersect: doesIntersect, distance: distance}
}

// DoesIntersect reports whether the volumes overlap.
func (d IntersectData) DoesIntersect() bool { return d.doesIntersect }

// Distance is the signed separation: negative values are penetration depth,
// positive values are the gap.
func (d IntersectData) Distance() float32 { return d.distance }

// AABB is an axis-aligned bounding box. Min <= Max per axis is assumed.
type AABB struct {
	min, max Vec3
}

// NewAABB creates a box from its minimum and maximum corners.
func NewAABB(minExtents, maxExtents Vec3) AABB {
	return AABB{min: minExtents, max: maxExtents}
}

// AABBFromPoints returns the smallest box enclosing every point.
// It returns the zero box for no points.
func AABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{min: points[0], max: points[0]}
	for _, p := range points[1:] {
		b.min = b.min.Min(p)
		b.max = b.max.Max(p)
	}
	return b
}

// MinExtents returns the corner with the smallest coordinates.
func (b AABB) MinExtents() Vec3 { return b.min }

// MaxExtents returns the corner with the largest coordinates.
func (b AABB) MaxExtents() Vec3 { return b.max }

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return b.min.Add(b.max).Scale(0.5)
}

// Size returns the edge lengths.
func (b AABB) Size() Vec3 {
	return b.max.Sub(b.min)
}

// IntersectAABB tests b against other. Per axis the gap is the larger of
// (other.min - b.max) and (b.min - other.max); the largest gap over the three
// axes is the distance, and the boxes overlap iff it is negative.
func (b AABB) IntersectAABB(other AABB) IntersectData {
	d1 := other.min.Sub(b.max)
	d2 := b.min.Sub(other.max)
	d := d1.Max(d2).MaxComponent()
	return NewIntersectData(d < 0, d)
}

// Transform returns the box enclosing the eight corners of b transformed by m.
func (b AABB) Transform(m Mat4) AABB {
	var corners [8]Vec3
	for i := range corners {
		c := b.min
		if i&1 != 0 {
			c.X = b.max.X
		}
		if i&2 != 0 {
			c.Y = b.max.Y
		}
		if i&4 != 0 {
			c.Z = b.max.Z
		}
		corners[i] = m.MulVec3(c)
	}
	return AABBFromPoints(corners[:]...)
}

// BoundingSphere returns the sphere through the corners of b.
func (b AABB) BoundingSphere() BoundingSphere {
	return NewBoundingSphere(b.Center(), b.Size().Length()*0.5)
}

// BoundingSphere is a sphere used as a coarse collider. Radius >= 0 is assumed.
type BoundingSphere struct {
	center Vec3
	radius float32
}

// NewBoundingSphere creates a sphere.
func NewBoundingSphere(center Vec3, radius float32) BoundingSphere {
	return BoundingSphere{center: center, radius: radius}
}

// Center returns the center point.
func (s BoundingSphere) Center() Vec3 { return s.center }

// Radius returns the radius.
func (s BoundingSphere) Radius() float32 { return s.radius }

// IntersectBoundingSphere tests s against other. The distance is the gap
// between the surfaces along the line of centers.
func (s BoundingSphere) IntersectBoundingSphere(other BoundingSphere) IntersectData {
	radiusDistance := s.radius + other.radius
	centerDistance := other.center.Sub(s.center).Length()
	d := centerDistance - radiusDistance
	return NewIntersectData(d < 0, d)
}
