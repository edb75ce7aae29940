package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const standardTol = float32(1.0e-6)

func assertVec3(t *testing.T, expected, actual Vec3) {
	t.Helper()
	assert.True(t, expected.Compare(actual, standardTol), "expected %v, got %v", expected, actual)
}

func TestVec3Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	assertVec3(t, NewVec3(0, 0, 1), x.Cross(y))
	assertVec3(t, NewVec3(0, 0, -1), y.Cross(x))
}

func TestVec3NormalizeZeroIsNaN(t *testing.T) {
	n := NewVec3Zero().Normalize()
	assert.False(t, IsFinite(n.X))
	assert.InDelta(t, 1.0, NewVec3(3, 4, 0).Normalize().Length(), 1e-6)
}

func TestMat3Inverse(t *testing.T) {
	m := NewMat4Scale(NewVec3(2, 4, 8)).Mul(NewMat4EulerZ(DegToRad(30))).Mat3()
	inv := m.Inverse()

	v := NewVec3(1, 2, 3)
	assertVec3(t, v, v.MulMat3(m).MulMat3(inv))
	assert.InDelta(t, 64.0, m.Determinant(), 1e-4)
}

func TestNormalMatrixKeepsPerpendicular(t *testing.T) {
	m := NewMat4Scale(NewVec3(1, 3, 1))
	tangent := NewVec3(1, 1, 0)
	normal := NewVec3(1, -1, 0)
	assert.InDelta(t, 0, tangent.Dot(normal), 1e-6)

	tt := tangent.MulMat3(m.Mat3())
	nn := normal.MulMat3(m.NormalMatrix())
	assert.InDelta(t, 0, tt.Dot(nn), 1e-6)
}

func TestVec3TransformTranslates(t *testing.T) {
	m := NewMat4Translation(NewVec3(1, 2, 3))
	assertVec3(t, NewVec3(2, 2, 3), NewVec3(1, 0, 0).Transform(m))
	assertVec3(t, NewVec3(1, 0, 0), NewVec3(1, 0, 0).Transform(NewMat4Identity()))
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox()
	assert.True(t, bb.IsEmpty())

	bb = NewBoundingBoxFromPositions([]float32{0, 0, 0, 1, 2, 3, -1, 0, 1}, 3)
	assert.False(t, bb.IsEmpty())
	assertVec3(t, NewVec3(-1, 0, 0), bb.Min)
	assertVec3(t, NewVec3(1, 2, 3), bb.Max)
	assertVec3(t, NewVec3(0, 1, 1.5), bb.Center())

	moved := bb.Transform(NewMat4Translation(NewVec3(10, 0, 0)))
	assertVec3(t, NewVec3(9, 0, 0), moved.Min)
	assertVec3(t, NewVec3(2, 2, 3), moved.Size())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(5, 0, 1))
	assert.Equal(t, float32(-1), Sign(float32(-0.5)))
	assert.Equal(t, float32(1), Sign(float32(0)))
}
