// Package anim samples keyframe animation channels into node transforms.
package anim

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/midgard-geom/pkg/math"
)

// Key is a keyframe: a value at a time in ticks.
type Key[T comparable] struct {
	Time  float64
	Value T
}

// Before reports whether k comes earlier than o.
func (k Key[T]) Before(o Key[T]) bool { return k.Time < o.Time }

// SameValue reports whether both keys carry the same value, ignoring time.
func (k Key[T]) SameValue(o Key[T]) bool { return k.Value == o.Value }

// VectorKey is a position or scaling key.
type VectorKey = Key[math.Vec3]

// QuatKey is a rotation key.
type QuatKey = Key[math.Quat]

// MeshKey selects a mesh attachment index at a given time.
type MeshKey = Key[uint32]

// Behaviour defines what a channel yields outside its key range.
type Behaviour int

const (
	// BehaviourDefault uses the node's default transform.
	BehaviourDefault Behaviour = iota
	// BehaviourConstant holds the nearest key.
	BehaviourConstant
	// BehaviourLinear extrapolates from the nearest two keys.
	BehaviourLinear
	// BehaviourRepeat wraps time into the key range.
	BehaviourRepeat
)

var behaviourNames = map[Behaviour]string{
	BehaviourDefault:  "default",
	BehaviourConstant: "constant",
	BehaviourLinear:   "linear",
	BehaviourRepeat:   "repeat",
}

func (b Behaviour) String() string {
	if s, ok := behaviourNames[b]; ok {
		return s
	}
	return "unknown"
}

// ParseBehaviour converts a name such as "repeat" into a Behaviour.
// Unknown names map to BehaviourDefault and ok is false.
func ParseBehaviour(name string) (b Behaviour, ok bool) {
	for k, v := range behaviourNames {
		if v == name {
			return k, true
		}
	}
	return BehaviourDefault, name == ""
}

// SortKeys orders keys chronologically in place. Keys from importers are
// usually sorted already; the sort is stable so equal times keep their order.
func SortKeys[T comparable](keys []Key[T]) {
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
}

// sampleKeys evaluates a sorted key series at time t.
func sampleKeys[T comparable](keys []Key[T], t float64, pre, post Behaviour, ipl math.Interpolator[T], fallback T) T {
	n := len(keys)
	if n == 0 {
		return fallback
	}
	if n == 1 {
		return keys[0].Value
	}

	first, last := keys[0].Time, keys[n-1].Time
	switch {
	case t < first:
		switch pre {
		case BehaviourDefault:
			return fallback
		case BehaviourConstant:
			return keys[0].Value
		case BehaviourLinear:
			return blendAt(keys[0], keys[1], t, ipl)
		case BehaviourRepeat:
			t = wrap(t, first, last)
		}
	case t > last:
		switch post {
		case BehaviourDefault:
			return fallback
		case BehaviourConstant:
			return keys[n-1].Value
		case BehaviourLinear:
			return blendAt(keys[n-2], keys[n-1], t, ipl)
		case BehaviourRepeat:
			t = wrap(t, first, last)
		}
	}

	// First key strictly after t.
	next := sort.Search(n, func(i int) bool { return keys[i].Time > t })
	if next == 0 {
		return keys[0].Value
	}
	if next == n {
		return keys[n-1].Value
	}
	return blendAt(keys[next-1], keys[next], t, ipl)
}

// blendAt interpolates between a and b at time t. t outside [a.Time, b.Time]
// extrapolates.
func blendAt[T comparable](a, b Key[T], t float64, ipl math.Interpolator[T]) T {
	span := b.Time - a.Time
	if span == 0 {
		return a.Value
	}
	return ipl.Interpolate(a.Value, b.Value, float32((t-a.Time)/span))
}

// wrap maps t into [first, last].
func wrap(t, first, last float64) float64 {
	span := last - first
	if span <= 0 {
		return first
	}
	r := gomath.Mod(t-first, span)
	if r < 0 {
		r += span
	}
	return first + r
}
