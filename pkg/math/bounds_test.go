package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func unitBox() AABB {
	return NewAABB(Vec3{0, 0, 0}, Vec3{1, 1, 1})
}

func TestAABBIntersect(t *testing.T) {
	tests := []struct {
		name      string
		other     AABB
		intersect bool
		distance  float32
	}{
		{"gap on X", NewAABB(Vec3{2, 0, 0}, Vec3{3, 1, 1}), false, 1},
		{"overlap on X", NewAABB(Vec3{0.5, 0, 0}, Vec3{1.5, 1, 1}), true, -0.5},
		{"gap on negative Y", NewAABB(Vec3{0, -3, 0}, Vec3{1, -1, 1}), false, 1},
		{"gap on Z", NewAABB(Vec3{0, 0, 1.25}, Vec3{1, 1, 2}), false, 0.25},
		{"touching", NewAABB(Vec3{1, 0, 0}, Vec3{2, 1, 1}), false, 0},
		{"contained", NewAABB(Vec3{0.25, 0.25, 0.25}, Vec3{0.75, 0.75, 0.75}), true, -0.75},
		{"identical", unitBox(), true, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := unitBox().IntersectAABB(tt.other)
			assert.Equal(t, tt.intersect, got.DoesIntersect())
			assert.InDelta(t, tt.distance, got.Distance(), 1e-6)

			// Symmetric in both result fields.
			rev := tt.other.IntersectAABB(unitBox())
			assert.Equal(t, got.DoesIntersect(), rev.DoesIntersect())
			assert.InDelta(t, got.Distance(), rev.Distance(), 1e-6)
		})
	}
}

func TestBoundingSphereIntersect(t *testing.T) {
	a := NewBoundingSphere(Vec3{0, 0, 0}, 1)

	got := a.IntersectBoundingSphere(NewBoundingSphere(Vec3{3, 0, 0}, 1))
	assert.False(t, got.DoesIntersect())
	assert.Equal(t, float32(1), got.Distance())

	got = a.IntersectBoundingSphere(NewBoundingSphere(Vec3{1.5, 0, 0}, 1))
	assert.True(t, got.DoesIntersect())
	assert.Equal(t, float32(-0.5), got.Distance())

	got = a.IntersectBoundingSphere(NewBoundingSphere(Vec3{0, 2, 0}, 1))
	assert.False(t, got.DoesIntersect(), "touching spheres do not intersect")
	assert.Equal(t, float32(0), got.Distance())

	got = a.IntersectBoundingSphere(NewBoundingSphere(Vec3{0, 0, 5}, 0))
	assert.InDelta(t, 4, got.Distance(), 1e-6)
}

func TestAABBHelpers(t *testing.T) {
	b := NewAABB(Vec3{-1, 0, 2}, Vec3{3, 2, 4})
	assert.Equal(t, Vec3{-1, 0, 2}, b.MinExtents())
	assert.Equal(t, Vec3{3, 2, 4}, b.MaxExtents())
	assert.Equal(t, Vec3{1, 1, 3}, b.Center())
	assert.Equal(t, Vec3{4, 2, 2}, b.Size())

	s := b.BoundingSphere()
	assert.Equal(t, Vec3{1, 1, 3}, s.Center())
	assert.InDelta(t, 2.449489, s.Radius(), 1e-5)
}

func TestAABBFromPoints(t *testing.T) {
	b := AABBFromPoints(Vec3{1, 5, -2}, Vec3{-3, 0, 4}, Vec3{0, 7, 1})
	assert.Equal(t, Vec3{-3, 0, -2}, b.MinExtents())
	assert.Equal(t, Vec3{1, 7, 4}, b.MaxExtents())

	assert.Equal(t, AABB{}, AABBFromPoints())
}

func TestAABBTransform(t *testing.T) {
	b := unitBox().Transform(Translation(Vec3{10, 0, 0}).Mul(Scaling(Vec3{2, 2, 2})))
	assert.Equal(t, Vec3{10, 0, 0}, b.MinExtents())
	assert.Equal(t, Vec3{12, 2, 2}, b.MaxExtents())

	// A quarter turn about Z keeps the box axis-aligned but flips X.
	b = unitBox().Transform(RotationZ(1.5707964))
	assertVec3Near(t, Vec3{-1, 0, 0}, b.MinExtents(), 1e-6)
	assertVec3Near(t, Vec3{0, 1, 1}, b.MaxExtents(), 1e-6)
}
