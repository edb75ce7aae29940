package geometry

import (
	"github.com/spaghettifunk/animageo/engine/core"
)

// IsUniqueVertex reports whether every triangle corner already references its
// own vertex record. Geometry drawn without indices is always unique.
func (g *StaticGeometry) IsUniqueVertex() bool {
	if !g.IsUseIndices() {
		return true
	}
	return g.VertexCount() == len(g.Indices)
}

/**
 * @brief Splits shared vertices so that every triangle corner owns its own
 * attribute values. The first corner referencing an original vertex keeps it;
 * every further reference gets a copy appended after the original vertices and
 * its index rewritten to point at the copy.
 *
 * When every original vertex is referenced, the vertex count afterwards equals
 * the index count. Unreferenced vertices are kept in place, so they add to the
 * final count.
 */
func (g *StaticGeometry) GenerateUniqueVertex() {
	vertexCount := g.VertexCount()
	if vertexCount == 0 || !g.IsUseIndices() {
		return
	}

	enabled := g.EnabledAttributes()

	// One extra slot per repeated reference.
	referenced := make([]bool, vertexCount)
	capacity := vertexCount
	for _, idx := range g.Indices {
		if int(idx) >= vertexCount {
			continue
		}
		if referenced[idx] {
			capacity++
		}
		referenced[idx] = true
	}
	if capacity == vertexCount {
		return
	}

	for _, name := range enabled {
		a := g.attributes[name]
		grown := make([]float32, capacity*a.Size)
		copy(grown, a.Value)
		a.Value = grown
	}

	useCount := make([]int, vertexCount)
	cursor := vertexCount
	for i, idx := range g.Indices {
		if int(idx) >= vertexCount {
			core.LogWarn("geometry %q: index %d at %d is out of range, vertex count %d", g.Name, idx, i, vertexCount)
			continue
		}
		if useCount[idx] > 0 {
			for _, name := range enabled {
				g.attributes[name].copyVertex(cursor, int(idx))
			}
			g.Indices[i] = uint32(cursor)
			cursor++
		}
		useCount[idx]++
	}

	core.LogDebug("geometry %q: unique vertex pass grew %d vertices to %d", g.Name, vertexCount, cursor)
	g.Dirty()
}
