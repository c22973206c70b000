package broadphase

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-geom/pkg/math"
)

func TestRayIntersectAABB(t *testing.T) {
	unit := box(0, 0, 0, 1, 1, 1)

	tests := []struct {
		name   string
		ray    Ray
		wantT  float32
		wantOK bool
	}{
		{"hit from outside", NewRay(math.Vec3{X: -2, Y: 0.5, Z: 0.5}, math.Vec3{X: 1}), 2, true},
		{"hit from inside returns exit", NewRay(math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, math.Vec3{Y: 1}), 0.5, true},
		{"pointing away", NewRay(math.Vec3{X: -2, Y: 0.5, Z: 0.5}, math.Vec3{X: -1}), 0, false},
		{"parallel outside slab", NewRay(math.Vec3{X: -2, Y: 5, Z: 0.5}, math.Vec3{X: 1}), 0, false},
		{"misses diagonally", NewRay(math.Vec3{X: -2, Y: 0.5, Z: 0.5}, math.Vec3{X: 1, Y: 2}), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectAABB(unit)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantT, got, 1e-6)
		})
	}
}

func TestRayIntersectSphere(t *testing.T) {
	s := math.NewBoundingSphere(math.Vec3{X: 5}, 1)

	d, ok := NewRay(math.Vec3{}, math.Vec3{X: 3}).IntersectSphere(s)
	require.True(t, ok)
	assert.InDelta(t, 4, d, 1e-6)

	d, ok = NewRay(math.Vec3{X: 5}, math.Vec3{Y: 1}).IntersectSphere(s)
	require.True(t, ok)
	assert.InDelta(t, 1, d, 1e-6)

	_, ok = NewRay(math.Vec3{}, math.Vec3{X: -1}).IntersectSphere(s)
	assert.False(t, ok)

	_, ok = NewRay(math.Vec3{Y: 2}, math.Vec3{X: 1}).IntersectSphere(s)
	assert.False(t, ok)
}

func TestRaycastOrdersByDistance(t *testing.T) {
	bodies := []Body{
		NewBody("far", box(10, -1, -1, 11, 1, 1)),
		NewBody("off", box(0, 5, 0, 1, 6, 1)),
		NewBody("near", box(2, -1, -1, 3, 1, 1)),
	}
	ray := NewRay(math.Vec3{}, math.Vec3{X: 1})

	hits := Raycast(bodies, ray, false)
	require.Len(t, hits, 2)
	assert.Equal(t, "near", hits[0].Body.Name)
	assert.InDelta(t, 2, hits[0].Distance, 1e-6)
	assert.Equal(t, math.Vec3{X: 2}, hits[0].Point)
	assert.Equal(t, "far", hits[1].Body.Name)

	hits = Raycast(bodies, ray, true)
	require.Len(t, hits, 2)
	assert.Equal(t, "near", hits[0].Body.Name)
}

func TestRayTransformed(t *testing.T) {
	m := math.Translation(math.Vec3{X: 1, Y: 2, Z: 3}).
		Mul(math.RotationZ(gomath.Pi / 2)).
		Mul(math.Scaling(math.Vec3{X: 2, Y: 2, Z: 2}))

	r := NewRay(math.Vec3{X: 1}, math.Vec3{X: 1}).Transformed(m)
	assert.True(t, r.Origin.Equal(math.Vec3{X: 1, Y: 4, Z: 3}, 1e-5), "origin %v", r.Origin)
	assert.True(t, r.Direction.Equal(math.Vec3{Y: 1}, 1e-6), "direction %v", r.Direction)
}
