package geometry

import (
	"github.com/spaghettifunk/animageo/engine/math"
)

/**
 * @brief Transforms the geometry in place. Positions are transformed as
 * points by m; normals and tangent directions by the inverse transpose of the
 * upper 3x3 part of m, which keeps them perpendicular to the surface under
 * non-uniform scale. Directions are not renormalized. A cached bounding box is
 * recomputed afterwards.
 */
func (g *StaticGeometry) ApplyTransform(m math.Mat4) {
	g.EnabledAttributes()

	if g.Position.Active {
		for i := 0; i < g.Position.Len(); i++ {
			g.Position.SetVec3(i, g.Position.Vec3(i).Transform(m))
		}
	}

	normalMatrix := m.NormalMatrix()
	if g.Normal.Active {
		for i := 0; i < g.Normal.Len(); i++ {
			g.Normal.SetVec3(i, g.Normal.Vec3(i).MulMat3(normalMatrix))
		}
	}
	if g.Tangent.Active {
		for i := 0; i < g.Tangent.Len(); i++ {
			g.Tangent.SetVec3(i, g.Tangent.Vec3(i).MulMat3(normalMatrix))
		}
	}

	if g.boundingBox != nil {
		g.UpdateBoundingBox()
	}
	g.Dirty()
}

// UpdateBoundingBox recomputes the cached bounding box from the positions.
func (g *StaticGeometry) UpdateBoundingBox() *math.BoundingBox {
	g.boundingBox = math.NewBoundingBoxFromPositions(g.Position.Value, g.Position.Size)
	return g.boundingBox
}

// BoundingBox returns the cached bounding box, computing it on first use.
func (g *StaticGeometry) BoundingBox() *math.BoundingBox {
	if g.boundingBox == nil {
		return g.UpdateBoundingBox()
	}
	return g.boundingBox
}
