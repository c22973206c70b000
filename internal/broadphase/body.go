// Package broadphase finds overlapping bodies using a uniform hash grid
// followed by exact AABB or bounding sphere tests.
package broadphase

import (
	gomath "math"

	"github.com/google/uuid"

	"github.com/Faultbox/midgard-geom/pkg/math"
)

// Body is a named collision volume.
type Body struct {
	ID     uuid.UUID
	Name   string
	Box    math.AABB
	Sphere math.BoundingSphere
}

// NewBody creates a body with a fresh ID and a sphere enclosing box.
func NewBody(name string, box math.AABB) Body {
	return Body{
		ID:     uuid.New(),
		Name:   name,
		Box:    box,
		Sphere: box.BoundingSphere(),
	}
}

// Transformed returns a copy of b moved by m. The ID is kept.
func (b Body) Transformed(m math.Mat4) Body {
	box := b.Box.Transform(m)
	return Body{ID: b.ID, Name: b.Name, Box: box, Sphere: box.BoundingSphere()}
}

func (b Body) finite() bool {
	for _, v := range []math.Vec3{b.Box.MinExtents(), b.Box.MaxExtents()} {
		for _, f := range v.Array() {
			if gomath.IsNaN(float64(f)) || gomath.IsInf(float64(f), 0) {
				return false
			}
		}
	}
	return true
}
