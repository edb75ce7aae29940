package geometry

import (
	"testing"

	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/math"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func assertVec3(t *testing.T, expected, actual math.Vec3) {
	t.Helper()
	assert.Truef(t, expected.Compare(actual, tolerance), "expected %v, got %v", expected, actual)
}

// quad returns the unit square in the XY plane as two triangles sharing the
// diagonal 0-2.
func quad() *StaticGeometry {
	g := New()
	g.Position.Value = []float32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	g.Texcoord0.Value = []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}
	g.SetIndices([]uint32{0, 1, 2, 0, 2, 3})
	return g
}

func TestNewGeometryIsEmpty(t *testing.T) {
	g := New()
	assert.Equal(t, 0, g.VertexCount())
	assert.Equal(t, 0, g.FaceCount())
	assert.Empty(t, g.EnabledAttributes())
	assert.False(t, g.IsUseIndices())
	assert.Equal(t, metadata.UsageStatic, g.Usage)

	names := []string{}
	for _, a := range g.Attributes() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{
		AttributePosition, AttributeNormal, AttributeTexcoord0, AttributeTexcoord1,
		AttributeTangent, AttributeColor, AttributeWeight, AttributeJoint, AttributeBarycentric,
	}, names)
}

func TestEnabledAttributesFollowLength(t *testing.T) {
	g := New()
	g.Position.Value = make([]float32, 9)
	g.Normal.Value = make([]float32, 9)
	g.Texcoord0.Value = make([]float32, 4)

	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, []string{AttributePosition, AttributeNormal}, g.EnabledAttributes())
	assert.True(t, g.Position.Active)
	assert.True(t, g.Normal.Active)
	assert.False(t, g.Texcoord0.Active)
}

func TestEnabledAttributesCachedUntilDirty(t *testing.T) {
	g := New()
	g.Position.Value = make([]float32, 9)
	require.Equal(t, []string{AttributePosition}, g.EnabledAttributes())

	g.Texcoord0.Value = make([]float32, 6)
	assert.Equal(t, []string{AttributePosition}, g.EnabledAttributes())

	g.Dirty()
	assert.Equal(t, []string{AttributePosition, AttributeTexcoord0}, g.EnabledAttributes())
}

func TestActiveFlagsFollowDirty(t *testing.T) {
	g := triangleWithoutNormals()
	require.True(t, g.Position.Active)
	assert.False(t, g.Normal.Active)

	g.GenerateVertexNormals()
	assert.True(t, g.Normal.Active)

	g.Normal.Value = nil
	g.Dirty()
	assert.False(t, g.Normal.Active)
	assert.Equal(t, []string{AttributePosition}, g.EnabledAttributes())
}

func triangleWithoutNormals() *StaticGeometry {
	g := New()
	g.Position.Value = []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	g.SetIndices([]uint32{0, 1, 2})
	return g
}

func TestMainAttributeDrivesVertexCount(t *testing.T) {
	g := New()
	g.Position.Value = make([]float32, 9)
	g.Texcoord0.Value = make([]float32, 4)
	g.MainAttribute = AttributeTexcoord0
	g.Dirty()

	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, []string{AttributeTexcoord0}, g.EnabledAttributes())
}

func TestCustomAttributes(t *testing.T) {
	g := New()
	g.Position.Value = make([]float32, 6)

	custom, err := g.CreateAttribute("ambient_occlusion", metadata.ComponentFloat32, 1, metadata.SemanticNone)
	require.NoError(t, err)
	custom.Value = []float32{0.5, 1}
	g.Dirty()
	assert.Equal(t, []string{AttributePosition, "ambient_occlusion"}, g.EnabledAttributes())
	assert.Same(t, custom, g.Attribute("ambient_occlusion"))

	_, err = g.CreateAttribute("ambient_occlusion", metadata.ComponentFloat32, 1, metadata.SemanticNone)
	assert.ErrorIs(t, err, core.ErrInvalidAttribute)
	_, err = g.CreateAttribute("wide", metadata.ComponentFloat32, 5, metadata.SemanticNone)
	assert.ErrorIs(t, err, core.ErrInvalidAttribute)
	_, err = g.CreateAttribute("", metadata.ComponentFloat32, 1, metadata.SemanticNone)
	assert.ErrorIs(t, err, core.ErrInvalidAttribute)

	assert.False(t, g.RemoveAttribute(AttributePosition))
	assert.False(t, g.RemoveAttribute("missing"))
	assert.True(t, g.RemoveAttribute("ambient_occlusion"))
	assert.Nil(t, g.Attribute("ambient_occlusion"))
	assert.Equal(t, []string{AttributePosition}, g.EnabledAttributes())
}

func TestFaceCountAndIndices(t *testing.T) {
	g := quad()
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 2, g.FaceCount())
	assert.True(t, g.IsUseIndices())

	g.UseIndices = false
	assert.False(t, g.IsUseIndices())
	assert.Equal(t, 2, g.FaceCount())
}

func TestTriangleAccessor(t *testing.T) {
	g := quad()
	assert.Equal(t, 2, g.triangleCount())
	i1, i2, i3 := g.triangle(1)
	assert.Equal(t, []int{0, 2, 3}, []int{i1, i2, i3})

	g.UseIndices = false
	g.Position.Value = make([]float32, 6*3)
	g.Dirty()
	assert.Equal(t, 2, g.triangleCount())
	i1, i2, i3 = g.triangle(1)
	assert.Equal(t, []int{3, 4, 5}, []int{i1, i2, i3})
}

func TestNewWithConfig(t *testing.T) {
	g, err := NewWithConfig(core.GeometryConfig{Usage: "dynamic", MainAttribute: AttributeNormal, UseIndices: false})
	require.NoError(t, err)
	assert.Equal(t, metadata.UsageDynamic, g.Usage)
	assert.Equal(t, AttributeNormal, g.MainAttribute)
	assert.False(t, g.UseIndices)

	_, err = NewWithConfig(core.GeometryConfig{Usage: "streaming"})
	assert.ErrorIs(t, err, core.ErrConfig)
}

func TestAttributeAccessors(t *testing.T) {
	a, err := NewAttribute("tangent", metadata.ComponentFloat32, 4, metadata.SemanticTangent)
	require.NoError(t, err)
	a.Init(2)
	assert.Equal(t, 2, a.Len())

	a.Set(1, 1, 2, 3, 4)
	assert.Equal(t, math.NewVec4(1, 2, 3, 4), a.Vec4(1))
	assert.Equal(t, math.NewVec3(1, 2, 3), a.Vec3(1))
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Get(1, make([]float32, 4)))

	a.SetVec3(0, math.NewVec3(5, 6, 7))
	assert.Equal(t, []float32{5, 6, 7, 0, 1, 2, 3, 4}, a.Value)

	a.copyVertex(0, 1)
	assert.Equal(t, []float32{1, 2, 3, 4, 1, 2, 3, 4}, a.Value)

	backing := &a.Value[0]
	a.Init(2)
	assert.Same(t, backing, &a.Value[0])
	assert.Equal(t, make([]float32, 8), a.Value)
}
