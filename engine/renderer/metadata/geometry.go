package metadata

import (
	"github.com/spaghettifunk/animageo/engine/math"
)

/** @brief The name of the default geometry. */
const DefaultGeometryName string = "default"

/**
 * @brief Represents the configuration for a geometry built from interleaved
 * vertices, as produced by primitive generators and mesh loaders.
 */
type GeometryConfig struct {
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices, three per triangle. May be empty. */
	Indices []uint32

	/** @brief Indicates which optional channels of Vertices carry data. */
	HasNormals   bool
	HasTexcoords bool
	HasColours   bool
	HasTangents  bool

	/** @brief The Name of the geometry. */
	Name string
}

/** @brief Returns the number of vertices in the configuration. */
func (c *GeometryConfig) VertexCount() uint32 {
	return uint32(len(c.Vertices))
}

/** @brief Returns the number of indices in the configuration. */
func (c *GeometryConfig) IndexCount() uint32 {
	return uint32(len(c.Indices))
}
