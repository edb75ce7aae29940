package geometry

/**
 * @brief Fills the barycentric attribute with (1,0,0), (0,1,0) and (0,0,1) on
 * the three corners of every triangle. Shared vertices are split first. When
 * the attribute already holds a value for every vertex nothing is written.
 */
func (g *StaticGeometry) GenerateBarycentric() {
	if !g.IsUniqueVertex() {
		g.GenerateUniqueVertex()
	}

	vertexCount := g.VertexCount()
	barycentric := g.Barycentric
	if vertexCount == 0 || len(barycentric.Value) == vertexCount*barycentric.Size {
		return
	}

	barycentric.Value = make([]float32, vertexCount*barycentric.Size)
	for t := 0; t < g.triangleCount(); t++ {
		i1, i2, i3 := g.triangle(t)
		for j, i := range [3]int{i1, i2, i3} {
			barycentric.Value[i*barycentric.Size+j] = 1
		}
	}
	g.Dirty()
}
