package math

// Lerper is a value that can blend linearly towards another of its type.
type Lerper[T any] interface {
	Lerp(other T, t float32) T
}

// Interpolator blends two neighbouring keyframe values. factor is in [0, 1].
type Interpolator[T any] interface {
	Interpolate(a, b T, factor float32) T
}

// LinearInterpolator blends vectors and colors as a + (b-a)*factor.
type LinearInterpolator[T Lerper[T]] struct{}

// Interpolate implements Interpolator.
func (LinearInterpolator[T]) Interpolate(a, b T, factor float32) T {
	return a.Lerp(b, factor)
}

// SlerpInterpolator blends rotations along the shorter arc.
type SlerpInterpolator struct{}

// Interpolate implements Interpolator.
func (SlerpInterpolator) Interpolate(a, b Quat, factor float32) Quat {
	return a.Slerp(b, factor)
}

// StepInterpolator picks the nearer of two integer keys (mesh indices).
type StepInterpolator struct{}

// Interpolate implements Interpolator.
func (StepInterpolator) Interpolate(a, b uint32, factor float32) uint32 {
	if factor > 0.5 {
		return b
	}
	return a
}

var (
	_ Interpolator[Vec3]   = LinearInterpolator[Vec3]{}
	_ Interpolator[Vec2]   = LinearInterpolator[Vec2]{}
	_ Interpolator[Color4] = LinearInterpolator[Color4]{}
	_ Interpolator[Quat]   = SlerpInterpolator{}
	_ Interpolator[uint32] = StepInterpolator{}
)

// KeyKind is the declared value type of an animation channel.
type KeyKind int

const (
	KeyVector KeyKind = iota
	KeyQuaternion
	KeyMeshIndex
)

func (k KeyKind) String() string {
	switch k {
	case KeyVector:
		return "vector"
	case KeyQuaternion:
		return "quaternion"
	case KeyMeshIndex:
		return "mesh"
	default:
		return "unknown"
	}
}

// KeyValue holds one keyframe value; only the field matching Kind is used.
type KeyValue struct {
	Kind  KeyKind
	Vec   Vec3
	Quat  Quat
	Index uint32
}

// Blend interpolates two key values of the same kind, dispatching on a.Kind.
// When the kinds differ there is nothing to blend and a is returned as is.
func Blend(a, b KeyValue, factor float32) KeyValue {
	if a.Kind != b.Kind {
		return a
	}
	out := KeyValue{Kind: a.Kind}
	switch a.Kind {
	case KeyQuaternion:
		out.Quat = SlerpInterpolator{}.Interpolate(a.Quat, b.Quat, factor)
	case KeyMeshIndex:
		out.Index = StepInterpolator{}.Interpolate(a.Index, b.Index, factor)
	default:
		out.Vec = LinearInterpolator[Vec3]{}.Interpolate(a.Vec, b.Vec, factor)
	}
	return out
}
