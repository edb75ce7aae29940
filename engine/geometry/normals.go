package geometry

/**
 * @brief Generates smooth per-vertex normals. Every triangle adds its
 * unnormalized face normal to each of its three corners, so larger faces
 * weigh more; the sums are normalized at the end. Vertices that no triangle
 * references end up with a NaN normal.
 */
func (g *StaticGeometry) GenerateVertexNormals() {
	vertexCount := g.VertexCount()
	if vertexCount == 0 {
		return
	}

	positions := g.Position
	normals := g.Normal
	normals.Init(vertexCount)

	for t := 0; t < g.triangleCount(); t++ {
		i1, i2, i3 := g.triangle(t)
		p1 := positions.Vec3(i1)
		p2 := positions.Vec3(i2)
		p3 := positions.Vec3(i3)

		v21 := p1.Sub(p2)
		v32 := p2.Sub(p3)
		n := v21.Cross(v32)

		for _, i := range [3]int{i1, i2, i3} {
			normals.SetVec3(i, normals.Vec3(i).Add(n))
		}
	}

	for i := 0; i < vertexCount; i++ {
		normals.SetVec3(i, normals.Vec3(i).Normalize())
	}
	g.Dirty()
}

/**
 * @brief Generates flat normals: each corner carries the normal of its own
 * face. Shared vertices are split first so that faces do not overwrite each
 * other's corners.
 */
func (g *StaticGeometry) GenerateFaceNormals() {
	if !g.IsUniqueVertex() {
		g.GenerateUniqueVertex()
	}
	vertexCount := g.VertexCount()
	if vertexCount == 0 {
		return
	}

	positions := g.Position
	normals := g.Normal
	normals.Init(vertexCount)

	for t := 0; t < g.triangleCount(); t++ {
		i1, i2, i3 := g.triangle(t)
		p1 := positions.Vec3(i1)
		p2 := positions.Vec3(i2)
		p3 := positions.Vec3(i3)

		n := p1.Sub(p2).Cross(p2.Sub(p3)).Normalize()

		normals.SetVec3(i1, n)
		normals.SetVec3(i2, n)
		normals.SetVec3(i3, n)
	}
	g.Dirty()
}
