// Package math provides the geometry kernel: vectors, matrices, quaternions,
// keyframe interpolators and bounding volumes.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Vec2From64 builds a Vec2 from double precision components.
func Vec2From64(x, y float64) Vec2 {
	return Vec2{float32(x), float32(y)}
}

// Float64s returns the components in double precision.
func (v Vec2) Float64s() [2]float64 {
	return [2]float64{float64(v.X), float64(v.Y)}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Div returns v / scalar.
func (v Vec2) Div(s float32) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

// SymMul multiplies componentwise.
func (v Vec2) SymMul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

// SymDiv divides componentwise.
func (v Vec2) SymDiv(other Vec2) Vec2 {
	return Vec2{v.X / other.X, v.Y / other.Y}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// SquareLength returns the squared magnitude.
func (v Vec2) SquareLength() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.SquareLength())))
}

// Normalize divides v by its length. A zero vector yields NaN components.
func (v Vec2) Normalize() Vec2 {
	return v.Div(v.Length())
}

// NormalizeSafe is Normalize but returns the zero vector for zero length.
func (v Vec2) NormalizeSafe() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Div(l)
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// Index returns component i (0 = X, 1 = Y).
func (v Vec2) Index(i int) float32 {
	if i == 0 {
		return v.X
	}
	if i == 1 {
		return v.Y
	}
	panic("math: Vec2 index out of range")
}

// SetIndex sets component i.
func (v *Vec2) SetIndex(i int, f float32) {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		panic("math: Vec2 index out of range")
	}
}

// Lerp linearly blends v towards other.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return v.Add(other.Sub(v).Scale(t))
}

// Equal reports whether every component differs by at most epsilon.
func (v Vec2) Equal(other Vec2, epsilon float32) bool {
	return abs32(v.X-other.X) <= epsilon && abs32(v.Y-other.Y) <= epsilon
}
