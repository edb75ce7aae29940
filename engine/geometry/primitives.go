package geometry

import (
	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/math"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

/**
 * @brief Generates configuration for plane geometries given the provided parameters.
 * The plane lies in the XY plane, centered at the origin and facing +Z.
 *
 * @param width The overall width of the plane. Must be non-zero.
 * @param height The overall height of the plane. Must be non-zero.
 * @param xSegmentCount The number of segments along the x-axis in the plane. Must be non-zero.
 * @param ySegmentCount The number of segments along the y-axis in the plane. Must be non-zero.
 * @param tileX The number of times the texture should tile across the plane on the x-axis. Must be non-zero.
 * @param tileY The number of times the texture should tile across the plane on the y-axis. Must be non-zero.
 * @param name The name of the generated geometry.
 * @return A geometry configuration which can then be fed into FromConfig().
 */
func PlaneConfig(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32, name string) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	config := &metadata.GeometryConfig{
		Vertices:     make([]math.Vertex3D, xSegmentCount*ySegmentCount*4), // 4 verts per segment
		Indices:      make([]uint32, xSegmentCount*ySegmentCount*6),        // 6 indices per segment
		HasNormals:   true,
		HasTexcoords: true,
	}

	segWidth := width / float32(xSegmentCount)
	segHeight := height / float32(ySegmentCount)
	halfWidth := width * 0.5
	halfHeight := height * 0.5
	normal := math.NewVec3(0.0, 0.0, 1.0)
	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := (float32(x) * segWidth) - halfWidth
			minY := (float32(y) * segHeight) - halfHeight
			maxX := minX + segWidth
			maxY := minY + segHeight
			minUVX := (float32(x) / float32(xSegmentCount)) * tileX
			minUVY := (float32(y) / float32(ySegmentCount)) * tileY
			maxUVX := (float32(x+1) / float32(xSegmentCount)) * tileX
			maxUVY := (float32(y+1) / float32(ySegmentCount)) * tileY

			vOffset := ((y * xSegmentCount) + x) * 4
			v := config.Vertices[vOffset : vOffset+4]

			v[0].Position = math.NewVec3(minX, minY, 0)
			v[0].Texcoord = math.NewVec2(minUVX, minUVY)
			v[1].Position = math.NewVec3(maxX, maxY, 0)
			v[1].Texcoord = math.NewVec2(maxUVX, maxUVY)
			v[2].Position = math.NewVec3(minX, maxY, 0)
			v[2].Texcoord = math.NewVec2(minUVX, maxUVY)
			v[3].Position = math.NewVec3(maxX, minY, 0)
			v[3].Texcoord = math.NewVec2(maxUVX, minUVY)
			for i := range v {
				v[i].Normal = normal
			}

			iOffset := ((y * xSegmentCount) + x) * 6
			config.Indices[iOffset+0] = vOffset + 0
			config.Indices[iOffset+1] = vOffset + 1
			config.Indices[iOffset+2] = vOffset + 2
			config.Indices[iOffset+3] = vOffset + 0
			config.Indices[iOffset+4] = vOffset + 3
			config.Indices[iOffset+5] = vOffset + 1
		}
	}

	if len(name) > 0 {
		config.Name = name
	} else {
		config.Name = metadata.DefaultGeometryName
	}
	return config
}

// NewPlane builds a plane geometry, see PlaneConfig.
func NewPlane(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32) *StaticGeometry {
	return FromConfig(PlaneConfig(width, height, xSegmentCount, ySegmentCount, tileX, tileY, "plane"))
}

type cubeFace struct {
	corners [4]math.Vec3
	normal  math.Vec3
}

/**
 * @brief Generates configuration for an axis aligned box centered at the origin.
 * Every side owns 4 vertices so that each carries the normal of its side.
 */
func CubeConfig(width, height, depth, tileX, tileY float32, name string) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	minX, maxX := -width*0.5, width*0.5
	minY, maxY := -height*0.5, height*0.5
	minZ, maxZ := -depth*0.5, depth*0.5

	faces := [6]cubeFace{
		// Front
		{[4]math.Vec3{{minX, minY, maxZ}, {maxX, maxY, maxZ}, {minX, maxY, maxZ}, {maxX, minY, maxZ}}, math.NewVec3(0, 0, 1)},
		// Back
		{[4]math.Vec3{{maxX, minY, minZ}, {minX, maxY, minZ}, {maxX, maxY, minZ}, {minX, minY, minZ}}, math.NewVec3(0, 0, -1)},
		// Left
		{[4]math.Vec3{{minX, minY, minZ}, {minX, maxY, maxZ}, {minX, maxY, minZ}, {minX, minY, maxZ}}, math.NewVec3(-1, 0, 0)},
		// Right
		{[4]math.Vec3{{maxX, minY, maxZ}, {maxX, maxY, minZ}, {maxX, maxY, maxZ}, {maxX, minY, minZ}}, math.NewVec3(1, 0, 0)},
		// Bottom
		{[4]math.Vec3{{maxX, minY, maxZ}, {minX, minY, minZ}, {maxX, minY, minZ}, {minX, minY, maxZ}}, math.NewVec3(0, -1, 0)},
		// Top
		{[4]math.Vec3{{minX, maxY, maxZ}, {maxX, maxY, minZ}, {minX, maxY, minZ}, {maxX, maxY, maxZ}}, math.NewVec3(0, 1, 0)},
	}
	uvs := [4]math.Vec2{{0, 0}, {tileX, tileY}, {0, tileY}, {tileX, 0}}

	config := &metadata.GeometryConfig{
		Vertices:     make([]math.Vertex3D, 4*6), // 4 verts per side, 6 sides
		Indices:      make([]uint32, 6*6),        // 6 indices per side, 6 sides
		HasNormals:   true,
		HasTexcoords: true,
	}
	for f, face := range faces {
		for c := 0; c < 4; c++ {
			v := &config.Vertices[f*4+c]
			v.Position = face.corners[c]
			v.Normal = face.normal
			v.Texcoord = uvs[c]
		}
		vOffset := uint32(f * 4)
		iOffset := f * 6
		config.Indices[iOffset+0] = vOffset + 0
		config.Indices[iOffset+1] = vOffset + 1
		config.Indices[iOffset+2] = vOffset + 2
		config.Indices[iOffset+3] = vOffset + 0
		config.Indices[iOffset+4] = vOffset + 3
		config.Indices[iOffset+5] = vOffset + 1
	}

	if len(name) > 0 {
		config.Name = name
	} else {
		config.Name = metadata.DefaultGeometryName
	}
	return config
}

// NewCube builds a box geometry with tangents, see CubeConfig.
func NewCube(width, height, depth, tileX, tileY float32) *StaticGeometry {
	g := FromConfig(CubeConfig(width, height, depth, tileX, tileY, "cube"))
	if err := g.GenerateTangents(); err != nil {
		core.LogError("%s", err)
	}
	return g
}
