package math

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned by Mat4.Inverse when the determinant is zero.
var ErrSingularMatrix = errors.New("math: matrix is singular")

// Mat4 is a row-major 4x4 homogeneous transform. Points are column vectors,
// so translation lives in the fourth column (A4, B4, C4).
//
//	[A1 A2 A3 A4]
//	[B1 B2 B3 B4]
//	[C1 C2 C3 C4]
//	[D1 D2 D3 D4]
//
// The zero value is NOT the identity; use Identity().
type Mat4 struct {
	A1, A2, A3, A4 float32
	B1, B2, B3, B4 float32
	C1, C2, C3, C4 float32
	D1, D2, D3, D4 float32
}

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromMat3 embeds a 3x3 block with zero translation.
func Mat4FromMat3(m Mat3) Mat4 {
	return Mat4{
		m.A1, m.A2, m.A3, 0,
		m.B1, m.B2, m.B3, 0,
		m.C1, m.C2, m.C3, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromRows builds a matrix from 16 row-major values.
func Mat4FromRows(v [16]float32) Mat4 {
	return Mat4{
		v[0], v[1], v[2], v[3],
		v[4], v[5], v[6], v[7],
		v[8], v[9], v[10], v[11],
		v[12], v[13], v[14], v[15],
	}
}

// Rows returns the 16 values in row-major order.
func (m Mat4) Rows() [16]float32 {
	return [16]float32{
		m.A1, m.A2, m.A3, m.A4,
		m.B1, m.B2, m.B3, m.B4,
		m.C1, m.C2, m.C3, m.C4,
		m.D1, m.D2, m.D3, m.D4,
	}
}

// Float64s returns the row-major values in double precision.
func (m Mat4) Float64s() [16]float64 {
	var out [16]float64
	for i, v := range m.Rows() {
		out[i] = float64(v)
	}
	return out
}

// GL returns the values in column-major order for OpenGL uniform upload.
func (m Mat4) GL() [16]float32 {
	return m.Transpose().Rows()
}

// Index returns the element at row, col (both 0-based).
func (m Mat4) Index(row, col int) float32 {
	return m.Rows()[row*4+col]
}

// Mul returns m * o. Applied to a point, o acts first and m second, so a
// parent's world matrix multiplies a child's local matrix from the left.
func (m Mat4) Mul(o Mat4) Mat4 {
	return Mat4{
		o.A1*m.A1 + o.B1*m.A2 + o.C1*m.A3 + o.D1*m.A4,
		o.A2*m.A1 + o.B2*m.A2 + o.C2*m.A3 + o.D2*m.A4,
		o.A3*m.A1 + o.B3*m.A2 + o.C3*m.A3 + o.D3*m.A4,
		o.A4*m.A1 + o.B4*m.A2 + o.C4*m.A3 + o.D4*m.A4,
		o.A1*m.B1 + o.B1*m.B2 + o.C1*m.B3 + o.D1*m.B4,
		o.A2*m.B1 + o.B2*m.B2 + o.C2*m.B3 + o.D2*m.B4,
		o.A3*m.B1 + o.B3*m.B2 + o.C3*m.B3 + o.D3*m.B4,
		o.A4*m.B1 + o.B4*m.B2 + o.C4*m.B3 + o.D4*m.B4,
		o.A1*m.C1 + o.B1*m.C2 + o.C1*m.C3 + o.D1*m.C4,
		o.A2*m.C1 + o.B2*m.C2 + o.C2*m.C3 + o.D2*m.C4,
		o.A3*m.C1 + o.B3*m.C2 + o.C3*m.C3 + o.D3*m.C4,
		o.A4*m.C1 + o.B4*m.C2 + o.C4*m.C3 + o.D4*m.C4,
		o.A1*m.D1 + o.B1*m.D2 + o.C1*m.D3 + o.D1*m.D4,
		o.A2*m.D1 + o.B2*m.D2 + o.C2*m.D3 + o.D2*m.D4,
		o.A3*m.D1 + o.B3*m.D2 + o.C3*m.D3 + o.D3*m.D4,
		o.A4*m.D1 + o.B4*m.D2 + o.C4*m.D3 + o.D4*m.D4,
	}
}

// MulVec3 transforms a point: linear part plus translation, w assumed 1.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m.A1*v.X + m.A2*v.Y + m.A3*v.Z + m.A4,
		m.B1*v.X + m.B2*v.Y + m.B3*v.Z + m.B4,
		m.C1*v.X + m.C2*v.Y + m.C3*v.Z + m.C4,
	}
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Mat3FromMat4(m).MulVec3(d)
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	m.B1, m.A2 = m.A2, m.B1
	m.C1, m.A3 = m.A3, m.C1
	m.C2, m.B3 = m.B3, m.C2
	m.D1, m.A4 = m.A4, m.D1
	m.D2, m.B4 = m.B4, m.D2
	m.D3, m.C4 = m.C4, m.D3
	return m
}

// Determinant returns the determinant by full cofactor expansion.
func (m Mat4) Determinant() float32 {
	return m.A1*m.B2*m.C3*m.D4 - m.A1*m.B2*m.C4*m.D3 + m.A1*m.B3*m.C4*m.D2 - m.A1*m.B3*m.C2*m.D4 +
		m.A1*m.B4*m.C2*m.D3 - m.A1*m.B4*m.C3*m.D2 - m.A2*m.B3*m.C4*m.D1 + m.A2*m.B3*m.C1*m.D4 -
		m.A2*m.B4*m.C1*m.D3 + m.A2*m.B4*m.C3*m.D1 - m.A2*m.B1*m.C3*m.D4 + m.A2*m.B1*m.C4*m.D3 +
		m.A3*m.B4*m.C1*m.D2 - m.A3*m.B4*m.C2*m.D1 + m.A3*m.B1*m.C2*m.D4 - m.A3*m.B1*m.C4*m.D2 +
		m.A3*m.B2*m.C4*m.D1 - m.A3*m.B2*m.C1*m.D4 - m.A4*m.B1*m.C2*m.D3 + m.A4*m.B1*m.C3*m.D2 -
		m.A4*m.B2*m.C3*m.D1 + m.A4*m.B2*m.C1*m.D3 - m.A4*m.B3*m.C1*m.D2 + m.A4*m.B3*m.C2*m.D1
}

// NaNMat4 returns a matrix with every element set to NaN.
func NaNMat4() Mat4 {
	n := float32(math.NaN())
	return Mat4{n, n, n, n, n, n, n, n, n, n, n, n, n, n, n, n}
}

// IsNaN reports whether any element is NaN.
func (m Mat4) IsNaN() bool {
	for _, v := range m.Rows() {
		if v != v {
			return true
		}
	}
	return false
}

// Inverse returns the inverse of m. If the determinant is exactly zero it
// returns the all-NaN matrix and ErrSingularMatrix.
func (m Mat4) Inverse() (Mat4, error) {
	det := m.Determinant()
	if det == 0 {
		return NaNMat4(), ErrSingularMatrix
	}

	inv := 1 / det
	a1, a2, a3, a4 := m.A1, m.A2, m.A3, m.A4
	b1, b2, b3, b4 := m.B1, m.B2, m.B3, m.B4
	c1, c2, c3, c4 := m.C1, m.C2, m.C3, m.C4
	d1, d2, d3, d4 := m.D1, m.D2, m.D3, m.D4

	return Mat4{
		inv * (b2*(c3*d4-c4*d3) + b3*(c4*d2-c2*d4) + b4*(c2*d3-c3*d2)),
		-inv * (a2*(c3*d4-c4*d3) + a3*(c4*d2-c2*d4) + a4*(c2*d3-c3*d2)),
		inv * (a2*(b3*d4-b4*d3) + a3*(b4*d2-b2*d4) + a4*(b2*d3-b3*d2)),
		-inv * (a2*(b3*c4-b4*c3) + a3*(b4*c2-b2*c4) + a4*(b2*c3-b3*c2)),

		-inv * (b1*(c3*d4-c4*d3) + b3*(c4*d1-c1*d4) + b4*(c1*d3-c3*d1)),
		inv * (a1*(c3*d4-c4*d3) + a3*(c4*d1-c1*d4) + a4*(c1*d3-c3*d1)),
		-inv * (a1*(b3*d4-b4*d3) + a3*(b4*d1-b1*d4) + a4*(b1*d3-b3*d1)),
		inv * (a1*(b3*c4-b4*c3) + a3*(b4*c1-b1*c4) + a4*(b1*c3-b3*c1)),

		inv * (b1*(c2*d4-c4*d2) + b2*(c4*d1-c1*d4) + b4*(c1*d2-c2*d1)),
		-inv * (a1*(c2*d4-c4*d2) + a2*(c4*d1-c1*d4) + a4*(c1*d2-c2*d1)),
		inv * (a1*(b2*d4-b4*d2) + a2*(b4*d1-b1*d4) + a4*(b1*d2-b2*d1)),
		-inv * (a1*(b2*c4-b4*c2) + a2*(b4*c1-b1*c4) + a4*(b1*c2-b2*c1)),

		-inv * (b1*(c2*d3-c3*d2) + b2*(c3*d1-c1*d3) + b3*(c1*d2-c2*d1)),
		inv * (a1*(c2*d3-c3*d2) + a2*(c3*d1-c1*d3) + a3*(c1*d2-c2*d1)),
		-inv * (a1*(b2*d3-b3*d2) + a2*(b3*d1-b1*d3) + a3*(b1*d2-b2*d1)),
		inv * (a1*(b2*c3-b3*c2) + a2*(b3*c1-b1*c3) + a3*(b1*c2-b2*c1)),
	}, nil
}

// Translation returns the fourth column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m.A4, m.B4, m.C4}
}

// Decompose splits m into scale, rotation and position. The scale is the
// length of each basis column, negated on all three axes when the
// determinant is negative. A zero-length axis is left unnormalized.
func (m Mat4) Decompose() (scale Vec3, rotation Quat, position Vec3) {
	position = m.Translation()

	cols := [3]Vec3{
		{m.A1, m.B1, m.C1},
		{m.A2, m.B2, m.C2},
		{m.A3, m.B3, m.C3},
	}

	scale = Vec3{cols[0].Length(), cols[1].Length(), cols[2].Length()}
	if m.Determinant() < 0 {
		scale = scale.Neg()
	}

	if scale.X != 0 {
		cols[0] = cols[0].Div(scale.X)
	}
	if scale.Y != 0 {
		cols[1] = cols[1].Div(scale.Y)
	}
	if scale.Z != 0 {
		cols[2] = cols[2].Div(scale.Z)
	}

	rot := Mat3{
		cols[0].X, cols[1].X, cols[2].X,
		cols[0].Y, cols[1].Y, cols[2].Y,
		cols[0].Z, cols[1].Z, cols[2].Z,
	}
	rotation = QuatFromMat3(rot)
	return scale, rotation, position
}

// DecomposeNoScaling splits a matrix known to carry no scale into rotation
// and position.
func (m Mat4) DecomposeNoScaling() (rotation Quat, position Vec3) {
	return QuatFromMat3(Mat3FromMat4(m)), m.Translation()
}

// FromEulerAnglesXYZ returns m with its 3x3 block replaced by the rotation
// for angles x, y, z (radians). Translation and the bottom row are kept.
func (m Mat4) FromEulerAnglesXYZ(x, y, z float32) Mat4 {
	cr := float32(math.Cos(float64(x)))
	sr := float32(math.Sin(float64(x)))
	cp := float32(math.Cos(float64(y)))
	sp := float32(math.Sin(float64(y)))
	cy := float32(math.Cos(float64(z)))
	sy := float32(math.Sin(float64(z)))

	m.A1 = cp * cy
	m.A2 = cp * sy
	m.A3 = -sp

	srsp := sr * sp
	crsp := cr * sp

	m.B1 = srsp*cy - cr*sy
	m.B2 = srsp*sy + cr*cy
	m.B3 = sr * cp

	m.C1 = crsp*cy + sr*sy
	m.C2 = crsp*sy - sr*cy
	m.C3 = cr * cp
	return m
}

// IsIdentity reports whether m is within 1e-2 of the identity matrix.
func (m Mat4) IsIdentity() bool {
	const epsilon = 10e-3
	id := Identity().Rows()
	for i, v := range m.Rows() {
		if v > id[i]+epsilon || v < id[i]-epsilon {
			return false
		}
	}
	return true
}

// RotationX returns a rotation matrix around the X axis.
// angle is in radians.
func RotationX(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotationY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotationZ(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotation creates a rotation matrix around an arbitrary axis.
// axis should be normalized, angle is in radians.
func Rotation(angle float32, axis Vec3) Mat4 {
	return Mat4FromMat3(Mat3Rotation(angle, axis))
}

// Translation returns a translation matrix.
func Translation(v Vec3) Mat4 {
	m := Identity()
	m.A4 = v.X
	m.B4 = v.Y
	m.C4 = v.Z
	return m
}

// Scaling returns a scale matrix.
func Scaling(v Vec3) Mat4 {
	m := Identity()
	m.A1 = v.X
	m.B2 = v.Y
	m.C3 = v.Z
	return m
}

// FromToMatrix returns the rotation taking unit vector from onto unit vector to.
func FromToMatrix(from, to Vec3) Mat4 {
	return Mat4FromMat3(Mat3FromTo(from, to))
}

// Compose builds Translation(position) * rotation * Scaling(scale).
func Compose(scale Vec3, rotation Quat, position Vec3) Mat4 {
	m := Mat4FromMat3(rotation.Mat3())
	m.A1, m.B1, m.C1 = m.A1*scale.X, m.B1*scale.X, m.C1*scale.X
	m.A2, m.B2, m.C2 = m.A2*scale.Y, m.B2*scale.Y, m.C2*scale.Y
	m.A3, m.B3, m.C3 = m.A3*scale.Z, m.B3*scale.Z, m.C3*scale.Z
	m.A4, m.B4, m.C4 = position.X, position.Y, position.Z
	return m
}

// Equal reports whether every element differs by at most epsilon.
func (m Mat4) Equal(other Mat4, epsilon float32) bool {
	a, b := m.Rows(), other.Rows()
	for i := range a {
		if abs32(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}
