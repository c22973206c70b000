package anim

import (
	"github.com/Faultbox/midgard-geom/pkg/math"
)

// Transform is a node pose split into its components.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// IdentityTransform returns the rest pose: no offset, no rotation, unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// TransformFromMatrix decomposes a baked node matrix.
func TransformFromMatrix(m math.Mat4) Transform {
	scale, rot, pos := m.Decompose()
	return Transform{Position: pos, Rotation: rot, Scale: scale}
}

// Matrix composes the pose as translation * rotation * scaling.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Scale, t.Rotation.Normalize(), t.Position)
}

// NodeChannel animates a single node. All keys are absolute, not relative
// to the node's default pose, and must be sorted by time.
type NodeChannel struct {
	NodeName     string
	PositionKeys []VectorKey
	RotationKeys []QuatKey
	ScalingKeys  []VectorKey
	PreState     Behaviour
	PostState    Behaviour
}

// Empty reports whether the channel carries no keys at all.
func (c *NodeChannel) Empty() bool {
	return len(c.PositionKeys) == 0 && len(c.RotationKeys) == 0 && len(c.ScalingKeys) == 0
}

// Range returns the earliest and latest key time over all three series.
func (c *NodeChannel) Range() (first, last float64) {
	seen := false
	visit := func(t float64) {
		if !seen || t < first {
			first = t
		}
		if !seen || t > last {
			last = t
		}
		seen = true
	}
	for _, k := range c.PositionKeys {
		visit(k.Time)
	}
	for _, k := range c.RotationKeys {
		visit(k.Time)
	}
	for _, k := range c.ScalingKeys {
		visit(k.Time)
	}
	return first, last
}

// Sample evaluates the channel at time t (ticks). Series without keys, and
// times outside the key range with BehaviourDefault, take their value from
// fallback.
func (c *NodeChannel) Sample(t float64, fallback Transform) Transform {
	return Transform{
		Position: sampleKeys(c.PositionKeys, t, c.PreState, c.PostState,
			math.LinearInterpolator[math.Vec3]{}, fallback.Position),
		Rotation: sampleKeys(c.RotationKeys, t, c.PreState, c.PostState,
			math.SlerpInterpolator{}, fallback.Rotation).Normalize(),
		Scale: sampleKeys(c.ScalingKeys, t, c.PreState, c.PostState,
			math.LinearInterpolator[math.Vec3]{}, fallback.Scale),
	}
}

// Matrix evaluates the channel at time t and composes the local matrix.
func (c *NodeChannel) Matrix(t float64, fallback Transform) math.Mat4 {
	return c.Sample(t, fallback).Matrix()
}

// MeshChannel switches between mesh attachments over time.
type MeshChannel struct {
	MeshName string
	Keys     []MeshKey
}

// Sample returns the attachment index active at time t. Outside the key
// range the nearest key is held.
func (c *MeshChannel) Sample(t float64) uint32 {
	return sampleKeys(c.Keys, t, BehaviourConstant, BehaviourConstant, math.StepInterpolator{}, 0)
}
