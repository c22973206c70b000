package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMat4Near(t *testing.T, want, got Mat4, delta float64) {
	t.Helper()
	w, g := want.Rows(), got.Rows()
	for i := range w {
		assert.InDelta(t, w[i], g[i], delta, "element %d (row %d, col %d)", i, i/4, i%4)
	}
}

func assertVec3Near(t *testing.T, want, got Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "X")
	assert.InDelta(t, want.Y, got.Y, delta, "Y")
	assert.InDelta(t, want.Z, got.Z, delta, "Z")
}

func sampleTRS() Mat4 {
	axis := Vec3{1, 2, 3}.Normalize()
	return Translation(Vec3{1, -2, 3}).
		Mul(Rotation(0.9, axis)).
		Mul(Scaling(Vec3{2, 3, 4}))
}

func TestIdentity(t *testing.T) {
	m := Identity()
	assert.True(t, m.IsIdentity())
	assert.Equal(t, float32(1), m.Determinant())
	assert.Equal(t, float32(1), m.D4)
	assert.Equal(t, float32(0), m.A2)
}

func TestMulIdentity(t *testing.T) {
	m := Translation(Vec3{1, 2, 3})
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestMulOrder(t *testing.T) {
	// The right operand acts on the point first.
	m := Translation(Vec3{10, 20, 30}).Mul(Scaling(Vec3{2, 2, 2}))
	got := m.MulVec3(Vec3{1, 2, 3})
	assert.Equal(t, Vec3{12, 24, 36}, got)

	m = Scaling(Vec3{2, 2, 2}).Mul(Translation(Vec3{10, 20, 30}))
	got = m.MulVec3(Vec3{1, 2, 3})
	assert.Equal(t, Vec3{22, 44, 66}, got)
}

func TestMulMatchesMathgl(t *testing.T) {
	a := sampleTRS()
	b := RotationX(0.3).Mul(Translation(Vec3{-4, 5, 6}))

	want := mgl32.Mat4(a.GL()).Mul4(mgl32.Mat4(b.GL()))
	got := a.Mul(b).GL()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "element %d", i)
	}
}

func TestTranslation(t *testing.T) {
	m := Translation(Vec3{5, 10, 15})
	assert.Equal(t, Vec3{5, 10, 15}, m.Translation())
	assert.Equal(t, Vec3{6, 12, 18}, m.MulVec3(Vec3{1, 2, 3}))
	assert.Equal(t, Vec3{1, 2, 3}, m.TransformDirection(Vec3{1, 2, 3}))
}

func TestScaling(t *testing.T) {
	m := Scaling(Vec3{2, 3, 4})
	assert.Equal(t, Vec3{2, 6, 12}, m.MulVec3(Vec3{1, 2, 3}))
	assert.Equal(t, float32(24), m.Determinant())
}

func TestRotationMatchesMathgl(t *testing.T) {
	for _, angle := range []float32{0, 0.25, 1, math.Pi / 2, 2.5, -1.2} {
		assertMat4Near(t, Mat4FromRows(mgl32.HomogRotate3DX(angle).Transpose()), RotationX(angle), 1e-5)
		assertMat4Near(t, Mat4FromRows(mgl32.HomogRotate3DY(angle).Transpose()), RotationY(angle), 1e-5)
		assertMat4Near(t, Mat4FromRows(mgl32.HomogRotate3DZ(angle).Transpose()), RotationZ(angle), 1e-5)

		axis := Vec3{1, -1, 2}.Normalize()
		want := mgl32.HomogRotate3D(angle, mgl32.Vec3{axis.X, axis.Y, axis.Z})
		assertMat4Near(t, Mat4FromRows(want.Transpose()), Rotation(angle, axis), 1e-5)
	}
}

func TestRotationDeterminant(t *testing.T) {
	for _, angle := range []float32{0, 0.3, 1.7, math.Pi, 4} {
		assert.InDelta(t, 1, RotationX(angle).Determinant(), 1e-5)
		assert.InDelta(t, 1, RotationY(angle).Determinant(), 1e-5)
		assert.InDelta(t, 1, RotationZ(angle).Determinant(), 1e-5)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotationY(float32(math.Pi / 2))
	got := m.MulVec3(Vec3{1, 0, 0})
	assertVec3Near(t, Vec3{0, 0, -1}, got, 1e-3)
}

func TestTranspose(t *testing.T) {
	m := Mat4FromRows([16]float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	})
	tr := m.Transpose()
	assert.Equal(t, [16]float32{
		1, 5, 9, 13,
		2, 6, 10, 14,
		3, 7, 11, 15,
		4, 8, 12, 16,
	}, tr.Rows())
	assert.Equal(t, m, tr.Transpose())
	assert.Equal(t, float32(7), m.Index(1, 2))
	assert.Equal(t, tr.Rows(), m.GL())
}

func TestDeterminantMatchesMathgl(t *testing.T) {
	m := sampleTRS()
	assert.InDelta(t, mgl32.Mat4(m.GL()).Det(), m.Determinant(), 1e-3)
	assert.InDelta(t, 24, m.Determinant(), 1e-3)
}

func TestInverse(t *testing.T) {
	m := sampleTRS()

	inv, err := m.Inverse()
	require.NoError(t, err)
	assertMat4Near(t, Identity(), m.Mul(inv), 1e-4)
	assertMat4Near(t, Identity(), inv.Mul(m), 1e-4)

	back, err := inv.Inverse()
	require.NoError(t, err)
	assertMat4Near(t, m, back, 1e-4)

	want := mgl32.Mat4(m.GL()).Inv()
	got := inv.GL()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "element %d", i)
	}
}

func TestInverseSingular(t *testing.T) {
	m := Scaling(Vec3{1, 0, 1})
	inv, err := m.Inverse()
	require.ErrorIs(t, err, ErrSingularMatrix)
	assert.True(t, inv.IsNaN())
	for _, v := range inv.Rows() {
		assert.True(t, v != v, "every element should be NaN")
	}
	assert.False(t, m.IsNaN())
}

func TestDecompose(t *testing.T) {
	axis := Vec3{1, 2, 3}.Normalize()
	wantRot := QuatFromAxisAngle(axis, 0.9)

	scale, rot, pos := sampleTRS().Decompose()
	assertVec3Near(t, Vec3{2, 3, 4}, scale, 1e-4)
	assertVec3Near(t, Vec3{1, -2, 3}, pos, 1e-6)
	assert.InDelta(t, 1, abs32(rot.Dot(wantRot)), 1e-4)
}

func TestDecomposeReflection(t *testing.T) {
	axis := Vec3{0, 1, 0}
	m := Translation(Vec3{4, 5, 6}).
		Mul(Rotation(0.5, axis)).
		Mul(Scaling(Vec3{-1, -2, -3}))
	require.Less(t, m.Determinant(), float32(0))

	scale, rot, pos := m.Decompose()
	assertVec3Near(t, Vec3{-1, -2, -3}, scale, 1e-4)
	assertVec3Near(t, Vec3{4, 5, 6}, pos, 1e-6)
	assert.InDelta(t, 1, abs32(rot.Dot(QuatFromAxisAngle(axis, 0.5))), 1e-4)
}

func TestDecomposeZeroScale(t *testing.T) {
	m := Scaling(Vec3{2, 0, 2})
	scale, rot, _ := m.Decompose()
	assert.Equal(t, Vec3{2, 0, 2}, scale)
	for _, v := range rot.Float64s() {
		assert.False(t, math.IsNaN(v), "zero-scale axis must not divide by zero")
	}
}

func TestDecomposeNoScaling(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, 1.1)
	m := Translation(Vec3{7, 8, 9}).Mul(q.ToMat4())

	rot, pos := m.DecomposeNoScaling()
	assert.Equal(t, Vec3{7, 8, 9}, pos)
	assert.InDelta(t, 1, abs32(rot.Dot(q)), 1e-5)
}

func TestCompose(t *testing.T) {
	axis := Vec3{1, 2, 3}.Normalize()
	m := Compose(Vec3{2, 3, 4}, QuatFromAxisAngle(axis, 0.9), Vec3{1, -2, 3})
	assertMat4Near(t, sampleTRS(), m, 1e-5)
}

func TestFromEulerAnglesXYZ(t *testing.T) {
	m := Translation(Vec3{1, 2, 3}).FromEulerAnglesXYZ(0, 0, 0)
	assert.Equal(t, Translation(Vec3{1, 2, 3}), m)

	m = Identity().FromEulerAnglesXYZ(0.2, -0.4, 1.3)
	assert.InDelta(t, 1, m.Determinant(), 1e-5)

	// A pure Z angle fills the block with the transposed Z rotation.
	assertMat4Near(t, RotationZ(0.7).Transpose(), Identity().FromEulerAnglesXYZ(0, 0, 0.7), 1e-6)
}

func TestFromToMatrix(t *testing.T) {
	cases := []struct {
		name     string
		from, to Vec3
	}{
		{"orthogonal", Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"oblique", Vec3{1, 1, 0}.Normalize(), Vec3{0, 1, 1}.Normalize()},
		{"parallel", Vec3{0, 0, 1}, Vec3{0, 0, 1}},
		{"antiparallel", Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
		{"antiparallel y", Vec3{0, 1, 0}, Vec3{0, -1, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := FromToMatrix(tc.from, tc.to)
			assertVec3Near(t, tc.to, m.MulVec3(tc.from), 1e-5)
			assert.InDelta(t, 1, m.Determinant(), 1e-5)
			assert.Equal(t, Vec3{}, m.Translation())
		})
	}
}

func TestIsIdentity(t *testing.T) {
	m := Identity()
	m.B3 = 0.005
	m.C3 = 1.009
	assert.True(t, m.IsIdentity())

	m.A4 = 0.02
	assert.False(t, m.IsIdentity())

	assert.False(t, RotationX(0.5).IsIdentity())
	assert.False(t, Mat4{}.IsIdentity())
}

func TestMat4FromMat3(t *testing.T) {
	m3 := Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	m4 := Mat4FromMat3(m3)
	assert.Equal(t, [16]float32{
		1, 2, 3, 0,
		4, 5, 6, 0,
		7, 8, 9, 0,
		0, 0, 0, 1,
	}, m4.Rows())
	assert.Equal(t, m3, Mat3FromMat4(m4))
}
