package geometry

import (
	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/math"
)

/**
 * @brief Generates per-vertex tangents from positions, normals and the first
 * texture coordinate set. The tangent xyz is orthogonalized against the
 * vertex normal and w holds the handedness of the bitangent, -1 or 1.
 *
 * Triangles with a degenerate texture mapping produce infinite or NaN
 * tangents on their vertices.
 *
 * @return core.ErrMissingNormals or core.ErrMissingTexcoords when the
 * respective attribute has no data for every vertex.
 */
func (g *StaticGeometry) GenerateTangents() error {
	if !g.isActive(g.Normal) {
		core.LogWarn("geometry %q: tangents need vertex normals, generate them first", g.Name)
		return core.ErrMissingNormals
	}
	if !g.isActive(g.Texcoord0) {
		core.LogWarn("geometry %q: tangents need texture coordinates", g.Name)
		return core.ErrMissingTexcoords
	}

	vertexCount := g.VertexCount()
	positions := g.Position
	normals := g.Normal
	texcoords := g.Texcoord0

	tan1 := make([]math.Vec3, vertexCount)
	tan2 := make([]math.Vec3, vertexCount)

	for t := 0; t < g.triangleCount(); t++ {
		i1, i2, i3 := g.triangle(t)

		v1 := positions.Vec3(i1)
		v2 := positions.Vec3(i2)
		v3 := positions.Vec3(i3)
		w1 := texcoords.Vec2(i1)
		w2 := texcoords.Vec2(i2)
		w3 := texcoords.Vec2(i3)

		x1 := v2.X - v1.X
		x2 := v3.X - v1.X
		y1 := v2.Y - v1.Y
		y2 := v3.Y - v1.Y
		z1 := v2.Z - v1.Z
		z2 := v3.Z - v1.Z

		d1 := w2.Sub(w1)
		d2 := w3.Sub(w1)
		s1, t1 := d1.X, d1.Y
		s2, t2 := d2.X, d2.Y

		r := 1.0 / (s1*t2 - t1*s2)
		sdir := math.NewVec3(
			(t2*x1-t1*x2)*r,
			(t2*y1-t1*y2)*r,
			(t2*z1-t1*z2)*r,
		)
		tdir := math.NewVec3(
			(s1*x2-s2*x1)*r,
			(s1*y2-s2*y1)*r,
			(s1*z2-s2*z1)*r,
		)

		for _, i := range [3]int{i1, i2, i3} {
			tan1[i] = tan1[i].Add(sdir)
			tan2[i] = tan2[i].Add(tdir)
		}
	}

	tangents := g.Tangent
	tangents.Init(vertexCount)
	for i := 0; i < vertexCount; i++ {
		n := normals.Vec3(i)
		t := tan1[i]

		// Gram-Schmidt
		tangent := t.Sub(n.MulScalar(n.Dot(t))).Normalize()

		w := math.Sign(n.Cross(t).Dot(tan2[i]))
		tangents.Set(i, tangent.X, tangent.Y, tangent.Z, w)
	}
	g.Dirty()
	return nil
}
