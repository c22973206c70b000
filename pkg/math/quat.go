package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
// Only unit quaternions are rotations; intermediate values need not be.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromMat3 converts a rotation matrix. When the trace is too small to
// divide by, the branch keyed on the largest diagonal element is used.
func QuatFromMat3(m Mat3) Quat {
	var q Quat
	t := 1 + m.A1 + m.B2 + m.C3

	switch {
	case t > 0.001:
		s := sqrtf(t) * 2
		q.X = (m.C2 - m.B3) / s
		q.Y = (m.A3 - m.C1) / s
		q.Z = (m.B1 - m.A2) / s
		q.W = 0.25 * s
	case m.A1 > m.B2 && m.A1 > m.C3:
		s := sqrtf(1+m.A1-m.B2-m.C3) * 2
		q.X = 0.25 * s
		q.Y = (m.B1 + m.A2) / s
		q.Z = (m.A3 + m.C1) / s
		q.W = (m.C2 - m.B3) / s
	case m.B2 > m.C3:
		s := sqrtf(1+m.B2-m.A1-m.C3) * 2
		q.X = (m.B1 + m.A2) / s
		q.Y = 0.25 * s
		q.Z = (m.C2 + m.B3) / s
		q.W = (m.A3 - m.C1) / s
	default:
		s := sqrtf(1+m.C3-m.A1-m.B2) * 2
		q.X = (m.A3 + m.C1) / s
		q.Y = (m.C2 + m.B3) / s
		q.Z = 0.25 * s
		q.W = (m.B1 - m.A2) / s
	}
	return q
}

// QuatFromEuler combines pitch, yaw and roll (radians) into one rotation.
func QuatFromEuler(pitch, yaw, roll float32) Quat {
	sp := float32(math.Sin(float64(pitch * 0.5)))
	cp := float32(math.Cos(float64(pitch * 0.5)))
	sy := float32(math.Sin(float64(yaw * 0.5)))
	cy := float32(math.Cos(float64(yaw * 0.5)))
	sr := float32(math.Sin(float64(roll * 0.5)))
	cr := float32(math.Cos(float64(roll * 0.5)))

	cpcy := cp * cy
	spsy := sp * sy

	return Quat{
		X: sr*cpcy - cr*spsy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cpcy + sr*spsy,
	}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// The axis is normalized first; angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	axis = axis.Normalize()
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// QuatFromNormalized rebuilds a unit quaternion stored as its vector part.
// W is recovered as sqrt(1 - x² - y² - z²), clamped to zero.
func QuatFromNormalized(v Vec3) Quat {
	q := Quat{X: v.X, Y: v.Y, Z: v.Z}
	t := 1 - v.X*v.X - v.Y*v.Y - v.Z*v.Z
	if t > 0 {
		q.W = sqrtf(t)
	}
	return q
}

// QuatFrom64 builds a quaternion from double precision components.
func QuatFrom64(w, x, y, z float64) Quat {
	return Quat{X: float32(x), Y: float32(y), Z: float32(z), W: float32(w)}
}

// Float64s returns w, x, y, z in double precision.
func (q Quat) Float64s() [4]float64 {
	return [4]float64{float64(q.W), float64(q.X), float64(q.Y), float64(q.Z)}
}

// Mat3 returns the equivalent rotation matrix. q must be unit length.
func (q Quat) Mat3() Mat3 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return Mat3{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	}
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	return Mat4FromMat3(q.Mat3())
}

// Length returns the magnitude.
func (q Quat) Length() float32 {
	return sqrtf(q.Dot(q))
}

// Normalize returns q scaled to unit length. A zero quaternion is returned
// unchanged.
func (q Quat) Normalize() Quat {
	mag := q.Length()
	if mag == 0 {
		return q
	}
	inv := 1 / mag
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Conjugate negates the vector part.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Neg negates every component. -q is the same rotation as q.
func (q Quat) Neg() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Mul returns the Hamilton product q * t (t is applied first).
func (q Quat) Mul(t Quat) Quat {
	return Quat{
		W: q.W*t.W - q.X*t.X - q.Y*t.Y - q.Z*t.Z,
		X: q.W*t.X + q.X*t.W + q.Y*t.Z - q.Z*t.Y,
		Y: q.W*t.Y + q.Y*t.W + q.Z*t.X - q.X*t.Z,
		Z: q.W*t.Z + q.Z*t.W + q.X*t.Y - q.Y*t.X,
	}
}

// Rotate rotates v by q using q * (0, v) * conj(q). q must be unit length.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := q.Mul(Quat{X: v.X, Y: v.Y, Z: v.Z}).Mul(q.Conjugate())
	return Vec3{p.X, p.Y, p.Z}
}

// Slerp performs spherical linear interpolation from q to end along the
// shorter arc. Nearly identical inputs fall back to a linear blend. The
// result is not renormalized.
func (q Quat) Slerp(end Quat, factor float32) Quat {
	cosom := q.Dot(end)
	if cosom < 0 {
		cosom = -cosom
		end = end.Neg()
	}

	var sclp, sclq float32
	if 1-cosom > 0.0001 {
		omega := math.Acos(float64(cosom))
		sinom := math.Sin(omega)
		sclp = float32(math.Sin(float64(1-factor)*omega) / sinom)
		sclq = float32(math.Sin(float64(factor)*omega) / sinom)
	} else {
		sclp = 1 - factor
		sclq = factor
	}

	return Quat{
		X: sclp*q.X + sclq*end.X,
		Y: sclp*q.Y + sclq*end.Y,
		Z: sclp*q.Z + sclq*end.Z,
		W: sclp*q.W + sclq*end.W,
	}
}

// QuatInterpolate is Slerp written as a free function over (start, end).
func QuatInterpolate(start, end Quat, factor float32) Quat {
	return start.Slerp(end, factor)
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Equal reports whether every component differs by at most epsilon. q and
// -q describe the same rotation but are not Equal.
func (q Quat) Equal(other Quat, epsilon float32) bool {
	return abs32(q.X-other.X) <= epsilon &&
		abs32(q.Y-other.Y) <= epsilon &&
		abs32(q.Z-other.Z) <= epsilon &&
		abs32(q.W-other.W) <= epsilon
}
