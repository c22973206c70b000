package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec3From64 builds a Vec3 from double precision components.
func Vec3From64(x, y, z float64) Vec3 {
	return Vec3{float32(x), float32(y), float32(z)}
}

// Vec3FromArray converts a [3]float32 as used by file formats.
func Vec3FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

// Array returns the components as [3]float32.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Float64s returns the components in double precision.
func (v Vec3) Float64s() [3]float64 {
	return [3]float64{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / scalar.
func (v Vec3) Div(s float32) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// SymMul multiplies componentwise.
func (v Vec3) SymMul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// SymDiv divides componentwise.
func (v Vec3) SymDiv(other Vec3) Vec3 {
	return Vec3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// SquareLength returns the squared magnitude.
func (v Vec3) SquareLength() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.SquareLength())))
}

// Normalize divides v by its length. A zero vector yields NaN components;
// use NormalizeSafe when the input may be degenerate.
func (v Vec3) Normalize() Vec3 {
	return v.Div(v.Length())
}

// NormalizeSafe is Normalize but returns the zero vector for zero length.
func (v Vec3) NormalizeSafe() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Div(l)
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Max returns the componentwise maximum of v and other.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// Min returns the componentwise minimum of v and other.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// MaxComponent returns the largest of X, Y and Z.
func (v Vec3) MaxComponent() float32 {
	return max(v.X, v.Y, v.Z)
}

// Index returns component i (0 = X, 1 = Y, 2 = Z).
func (v Vec3) Index(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("math: Vec3 index out of range")
}

// SetIndex sets component i.
func (v *Vec3) SetIndex(i int, f float32) {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	case 2:
		v.Z = f
	default:
		panic("math: Vec3 index out of range")
	}
}

// Lerp linearly blends v towards other: v + (other-v)*t.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.Add(other.Sub(v).Scale(t))
}

// Equal reports whether every component differs by at most epsilon.
func (v Vec3) Equal(other Vec3, epsilon float32) bool {
	return abs32(v.X-other.X) <= epsilon &&
		abs32(v.Y-other.Y) <= epsilon &&
		abs32(v.Z-other.Z) <= epsilon
}
