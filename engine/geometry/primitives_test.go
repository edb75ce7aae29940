package geometry

import (
	"testing"

	"github.com/spaghettifunk/animageo/engine/math"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaneLayout(t *testing.T) {
	g := NewPlane(4, 2, 2, 2, 1, 1)

	assert.Equal(t, "plane", g.Name)
	assert.Equal(t, 16, g.VertexCount())
	assert.Equal(t, 8, g.FaceCount())
	assert.Equal(t, []string{AttributePosition, AttributeNormal, AttributeTexcoord0}, g.EnabledAttributes())

	box := g.BoundingBox()
	assertVec3(t, math.NewVec3(-2, -1, 0), box.Min)
	assertVec3(t, math.NewVec3(2, 1, 0), box.Max)

	normals := append([]float32(nil), g.Normal.Value...)
	g.GenerateVertexNormals()
	assert.InDeltaSlice(t, normals, g.Normal.Value, tolerance)
}

func TestPlaneDefaultsZeroDimensions(t *testing.T) {
	config := PlaneConfig(0, 0, 0, 0, 0, 0, "")
	assert.Equal(t, metadata.DefaultGeometryName, config.Name)
	assert.Len(t, config.Vertices, 4)
	assert.Len(t, config.Indices, 6)

	g := FromConfig(config)
	assertVec3(t, math.NewVec3(1, 1, 0), g.BoundingBox().Size())
	assert.Equal(t, math.NewVec2(1, 1), config.Vertices[1].Texcoord)
}

func TestCubeLayout(t *testing.T) {
	g := NewCube(2, 4, 6, 2, 2)

	assert.Equal(t, 24, g.VertexCount())
	assert.Equal(t, 12, g.FaceCount())
	assert.Equal(t, []string{AttributePosition, AttributeNormal, AttributeTexcoord0, AttributeTangent}, g.EnabledAttributes())
	assertVec3(t, math.NewVec3(2, 4, 6), g.BoundingBox().Size())
	assert.Equal(t, math.NewVec2(2, 2), g.Texcoord0.Vec2(1))
}

func TestCubeDefaultsZeroDimensions(t *testing.T) {
	config := CubeConfig(0, 0, 0, 0, 0, "")
	assert.Equal(t, metadata.DefaultGeometryName, config.Name)
	assertVec3(t, math.NewVec3(1, 1, 1), FromConfig(config).BoundingBox().Size())
}

func TestFromConfigCopiesFlaggedChannels(t *testing.T) {
	config := &metadata.GeometryConfig{
		Name: "tri",
		Vertices: []math.Vertex3D{
			{Position: math.NewVec3(0, 0, 0), Colour: math.NewVec4(1, 0, 0, 1), Normal: math.NewVec3(0, 0, 1)},
			{Position: math.NewVec3(1, 0, 0), Colour: math.NewVec4(0, 1, 0, 1), Normal: math.NewVec3(0, 0, 1)},
			{Position: math.NewVec3(0, 1, 0), Colour: math.NewVec4(0, 0, 1, 1), Normal: math.NewVec3(0, 0, 1)},
		},
		Indices:    []uint32{0, 1, 2},
		HasColours: true,
	}

	g := FromConfig(config)
	assert.Equal(t, "tri", g.Name)
	assert.Equal(t, []string{AttributePosition, AttributeColor}, g.EnabledAttributes())
	assert.Equal(t, math.NewVec4(0, 1, 0, 1), g.Color.Vec4(1))
	assert.Empty(t, g.Normal.Value)

	// The geometry owns its indices.
	config.Indices[0] = 2
	assert.Equal(t, []uint32{0, 1, 2}, g.Indices)
}

func TestLoadReplacesContent(t *testing.T) {
	g := NewCube(1, 1, 1, 1, 1)
	g.BoundingBox()
	custom, err := g.CreateAttribute("occlusion", metadata.ComponentFloat32, 1, metadata.SemanticNone)
	require.NoError(t, err)
	custom.Value = make([]float32, 24)
	g.Dirty()
	require.Contains(t, g.EnabledAttributes(), "occlusion")

	g.Load(PlaneConfig(1, 1, 1, 1, 1, 1, "reloaded"))

	assert.Equal(t, "reloaded", g.Name)
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, []string{AttributePosition, AttributeNormal, AttributeTexcoord0}, g.EnabledAttributes())
	assert.Nil(t, g.boundingBox)
}

func TestToVerticesRoundTrip(t *testing.T) {
	config := CubeConfig(1, 1, 1, 1, 1, "cube")
	g := FromConfig(config)

	vertices, faces := g.ToVertices()
	assert.Equal(t, config.Vertices, vertices)
	require.Len(t, faces, 12)
	assert.Equal(t, [3]uint32{0, 1, 2}, faces[0])
	assert.Equal(t, [3]uint32{0, 3, 1}, faces[1])

	back := g.ToConfig()
	assert.Equal(t, config.Indices, back.Indices)
	assert.True(t, back.HasNormals)
	assert.True(t, back.HasTexcoords)
	assert.False(t, back.HasTangents)
}

func TestToVerticesOfTriangleSoup(t *testing.T) {
	g := New()
	g.Position.Value = make([]float32, 6*3)
	g.Dirty()

	vertices, faces := g.ToVertices()
	assert.Len(t, vertices, 6)
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {3, 4, 5}}, faces)
}
