package math

import "math"

// Mat3 is a row-major 3x3 matrix, normally the rotation block of a Mat4.
//
//	[A1 A2 A3]
//	[B1 B2 B3]
//	[C1 C2 C3]
type Mat3 struct {
	A1, A2, A3 float32
	B1, B2, B3 float32
	C1, C2, C3 float32
}

// Mat3Identity returns an identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromMat4 returns the upper-left 3x3 block of m.
func Mat3FromMat4(m Mat4) Mat3 {
	return Mat3{
		m.A1, m.A2, m.A3,
		m.B1, m.B2, m.B3,
		m.C1, m.C2, m.C3,
	}
}

// Mul returns m * other.
func (m Mat3) Mul(o Mat3) Mat3 {
	return Mat3{
		m.A1*o.A1 + m.A2*o.B1 + m.A3*o.C1,
		m.A1*o.A2 + m.A2*o.B2 + m.A3*o.C2,
		m.A1*o.A3 + m.A2*o.B3 + m.A3*o.C3,
		m.B1*o.A1 + m.B2*o.B1 + m.B3*o.C1,
		m.B1*o.A2 + m.B2*o.B2 + m.B3*o.C2,
		m.B1*o.A3 + m.B2*o.B3 + m.B3*o.C3,
		m.C1*o.A1 + m.C2*o.B1 + m.C3*o.C1,
		m.C1*o.A2 + m.C2*o.B2 + m.C3*o.C2,
		m.C1*o.A3 + m.C2*o.B3 + m.C3*o.C3,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	m.A2, m.B1 = m.B1, m.A2
	m.A3, m.C1 = m.C1, m.A3
	m.B3, m.C2 = m.C2, m.B3
	return m
}

// Determinant returns the determinant.
func (m Mat3) Determinant() float32 {
	return m.A1*m.B2*m.C3 - m.A1*m.B3*m.C2 + m.A2*m.B3*m.C1 -
		m.A2*m.B1*m.C3 + m.A3*m.B1*m.C2 - m.A3*m.B2*m.C1
}

// MulVec3 applies the linear transform to v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m.A1*v.X + m.A2*v.Y + m.A3*v.Z,
		m.B1*v.X + m.B2*v.Y + m.B3*v.Z,
		m.C1*v.X + m.C2*v.Y + m.C3*v.Z,
	}
}

// Mat3RotationZ returns a rotation about the Z axis. angle is in radians.
func Mat3RotationZ(angle float32) Mat3 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Mat3Rotation returns a rotation of angle radians about a normalized axis.
func Mat3Rotation(angle float32, axis Vec3) Mat3 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat3{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// Mat3FromTo returns the rotation taking the unit vector from onto the unit
// vector to (Möller & Hughes, "Efficiently Building a Matrix to Rotate One
// Vector to Another", 1999).
func Mat3FromTo(from, to Vec3) Mat3 {
	v := from.Cross(to)
	e := from.Dot(to)
	f := e
	if f < 0 {
		f = -f
	}

	if f > 1-0.00001 {
		// Nearly parallel: reflect through the axis least aligned with from.
		ax := Vec3{abs32(from.X), abs32(from.Y), abs32(from.Z)}
		var x Vec3
		switch {
		case ax.X < ax.Y && ax.X < ax.Z:
			x = Vec3{1, 0, 0}
		case ax.X < ax.Y:
			x = Vec3{0, 0, 1}
		case ax.Y < ax.Z:
			x = Vec3{0, 1, 0}
		default:
			x = Vec3{0, 0, 1}
		}

		u := x.Sub(from)
		w := x.Sub(to)
		c1 := 2 / u.Dot(u)
		c2 := 2 / w.Dot(w)
		c3 := c1 * c2 * u.Dot(w)

		var r [3][3]float32
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				r[i][j] = -c1*u.Index(i)*u.Index(j) - c2*w.Index(i)*w.Index(j) + c3*w.Index(i)*u.Index(j)
			}
			r[i][i]++
		}
		return Mat3{
			r[0][0], r[0][1], r[0][2],
			r[1][0], r[1][1], r[1][2],
			r[2][0], r[2][1], r[2][2],
		}
	}

	h := 1 / (1 + e)
	hvx := h * v.X
	hvz := h * v.Z
	hvxy := hvx * v.Y
	hvxz := hvx * v.Z
	hvyz := hvz * v.Y

	return Mat3{
		e + hvx*v.X, hvxy - v.Z, hvxz + v.Y,
		hvxy + v.Z, e + h*v.Y*v.Y, hvyz - v.X,
		hvxz - v.Y, hvyz + v.X, e + hvz*v.Z,
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
