package geometry

import (
	"testing"

	"github.com/spaghettifunk/animageo/engine/math"
	"github.com/spaghettifunk/animageo/engine/renderer/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityTransformChangesNothing(t *testing.T) {
	g := NewCube(1, 2, 3, 1, 1)
	positions := append([]float32(nil), g.Position.Value...)
	normals := append([]float32(nil), g.Normal.Value...)
	tangents := append([]float32(nil), g.Tangent.Value...)

	g.ApplyTransform(math.NewMat4Identity())

	assert.InDeltaSlice(t, positions, g.Position.Value, tolerance)
	assert.InDeltaSlice(t, normals, g.Normal.Value, tolerance)
	assert.InDeltaSlice(t, tangents, g.Tangent.Value, tolerance)
}

func TestTranslationMovesOnlyPositions(t *testing.T) {
	g := NewCube(1, 1, 1, 1, 1)
	normals := append([]float32(nil), g.Normal.Value...)
	before := g.Position.Vec3(0)

	g.ApplyTransform(math.NewMat4Translation(math.NewVec3(1, 2, 3)))

	assertVec3(t, before.Add(math.NewVec3(1, 2, 3)), g.Position.Vec3(0))
	assert.InDeltaSlice(t, normals, g.Normal.Value, tolerance)
	// Handedness is not a direction.
	assert.Equal(t, float32(1), g.Tangent.Vec4(0).W)
}

func TestNonUniformScaleKeepsNormalsPerpendicular(t *testing.T) {
	g := New()
	g.Position.Value = []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}
	g.SetIndices([]uint32{0, 1, 2})
	g.GenerateVertexNormals()

	g.ApplyTransform(math.NewMat4Scale(math.NewVec3(2, 1, 1)))

	assertVec3(t, math.NewVec3(2, 0, 0), g.Position.Vec3(0))
	expected := math.NewVec3(1, 2, 2).Normalize()
	assertVec3(t, expected, g.Normal.Vec3(0).Normalize())

	e1 := g.Position.Vec3(1).Sub(g.Position.Vec3(0))
	e2 := g.Position.Vec3(2).Sub(g.Position.Vec3(0))
	assert.InDelta(t, 0.0, g.Normal.Vec3(0).Dot(e1), tolerance)
	assert.InDelta(t, 0.0, g.Normal.Vec3(0).Dot(e2), tolerance)
}

func TestTransformSkipsInactiveAttributes(t *testing.T) {
	g := New()
	g.Position.Value = []float32{1, 1, 1}
	g.Normal.Value = []float32{0, 0, 1, 0, 0, 1}
	g.Dirty()

	g.ApplyTransform(math.NewMat4Scale(math.NewVec3(2, 2, 2)))
	assertVec3(t, math.NewVec3(2, 2, 2), g.Position.Vec3(0))
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1}, g.Normal.Value)
}

func TestTransformUpdatesCachedBoundingBox(t *testing.T) {
	g := NewCube(2, 2, 2, 1, 1)
	assert.Nil(t, g.boundingBox)

	g.ApplyTransform(math.NewMat4Translation(math.NewVec3(10, 0, 0)))
	assert.Nil(t, g.boundingBox)

	box := g.BoundingBox()
	assertVec3(t, math.NewVec3(9, -1, -1), box.Min)
	assertVec3(t, math.NewVec3(11, 1, 1), box.Max)

	g.ApplyTransform(math.NewMat4Translation(math.NewVec3(-10, 0, 0)))
	assertVec3(t, math.NewVec3(0, 0, 0), g.BoundingBox().Center())
	assertVec3(t, math.NewVec3(2, 2, 2), g.BoundingBox().Size())
}

func TestTransformDirtiesTheCache(t *testing.T) {
	g := NewCube(1, 1, 1, 1, 1)
	ctx := headless.New()
	_, err := g.GetBufferChunks(ctx)
	require.NoError(t, err)
	ctx.ResetStats()

	g.ApplyTransform(math.NewMat4Translation(math.NewVec3(0, 1, 0)))
	_, err = g.GetBufferChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, ctx.Stats().Uploads)
}
