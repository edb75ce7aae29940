package geometry

import (
	"github.com/spaghettifunk/animageo/engine/math"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

/**
 * @brief Builds a static geometry from an interleaved vertex configuration.
 * Only the channels flagged in the configuration are copied; the others are
 * left empty and therefore inactive.
 */
func FromConfig(config *metadata.GeometryConfig) *StaticGeometry {
	g := New()
	g.Load(config)
	return g
}

/**
 * @brief Replaces the vertex data and indices of the geometry with the content
 * of config. Custom attributes that no longer match the new vertex count turn
 * inactive. The cached bounding box is dropped.
 */
func (g *StaticGeometry) Load(config *metadata.GeometryConfig) {
	if len(config.Name) > 0 {
		g.Name = config.Name
	}
	count := len(config.Vertices)

	g.Position.Value = make([]float32, 0, count*3)
	for _, v := range config.Vertices {
		g.Position.Value = append(g.Position.Value, v.Position.X, v.Position.Y, v.Position.Z)
	}

	g.Normal.Value = nil
	if config.HasNormals {
		g.Normal.Value = make([]float32, 0, count*3)
		for _, v := range config.Vertices {
			g.Normal.Value = append(g.Normal.Value, v.Normal.X, v.Normal.Y, v.Normal.Z)
		}
	}

	g.Texcoord0.Value = nil
	if config.HasTexcoords {
		g.Texcoord0.Value = make([]float32, 0, count*2)
		for _, v := range config.Vertices {
			g.Texcoord0.Value = append(g.Texcoord0.Value, v.Texcoord.X, v.Texcoord.Y)
		}
	}

	g.Color.Value = nil
	if config.HasColours {
		g.Color.Value = make([]float32, 0, count*4)
		for _, v := range config.Vertices {
			g.Color.Value = append(g.Color.Value, v.Colour.X, v.Colour.Y, v.Colour.Z, v.Colour.W)
		}
	}

	g.Tangent.Value = nil
	if config.HasTangents {
		g.Tangent.Value = make([]float32, 0, count*4)
		for _, v := range config.Vertices {
			g.Tangent.Value = append(g.Tangent.Value, v.Tangent.X, v.Tangent.Y, v.Tangent.Z, v.Tangent.W)
		}
	}

	// Everything derived from the old vertices is stale.
	g.Texcoord1.Value = nil
	g.Weight.Value = nil
	g.Joint.Value = nil
	g.Barycentric.Value = nil
	g.boundingBox = nil

	g.Indices = nil
	if len(config.Indices) > 0 {
		g.Indices = append(make([]uint32, 0, len(config.Indices)), config.Indices...)
	}
	g.Dirty()
}

/**
 * @brief Converts the geometry to interleaved vertices and one ordered index
 * triple per triangle, the layout mutable geometry works on. Channels that
 * are inactive are left zero. Without indices the triangles are read three
 * vertices at a time.
 */
func (g *StaticGeometry) ToVertices() ([]math.Vertex3D, [][3]uint32) {
	g.EnabledAttributes()
	vertexCount := g.VertexCount()

	vertices := make([]math.Vertex3D, vertexCount)
	for i := range vertices {
		v := &vertices[i]
		v.Position = g.Position.Vec3(i)
		if g.Normal.Active {
			v.Normal = g.Normal.Vec3(i)
		}
		if g.Texcoord0.Active {
			v.Texcoord = g.Texcoord0.Vec2(i)
		}
		if g.Color.Active {
			v.Colour = g.Color.Vec4(i)
		}
		if g.Tangent.Active {
			v.Tangent = g.Tangent.Vec4(i)
		}
	}

	faces := make([][3]uint32, g.triangleCount())
	for t := range faces {
		i1, i2, i3 := g.triangle(t)
		faces[t] = [3]uint32{uint32(i1), uint32(i2), uint32(i3)}
	}
	return vertices, faces
}

// ToConfig is ToVertices packed into a configuration with flat indices.
func (g *StaticGeometry) ToConfig() *metadata.GeometryConfig {
	vertices, faces := g.ToVertices()
	config := &metadata.GeometryConfig{
		Name:         g.Name,
		Vertices:     vertices,
		Indices:      make([]uint32, 0, len(faces)*3),
		HasNormals:   g.Normal.Active,
		HasTexcoords: g.Texcoord0.Active,
		HasColours:   g.Color.Active,
		HasTangents:  g.Tangent.Active,
	}
	for _, f := range faces {
		config.Indices = append(config.Indices, f[0], f[1], f[2])
	}
	return config
}
