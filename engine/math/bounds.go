package math

/**
 * @brief An axis aligned bounding box.
 */
type BoundingBox struct {
	Extents3D
}

/**
 * @brief Creates an empty bounding box. An empty box has Min greater than Max
 * on every axis, so the first point expanded into it defines both corners.
 */
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{Extents3D{
		Min: Vec3{K_INFINITY, K_INFINITY, K_INFINITY},
		Max: Vec3{-K_INFINITY, -K_INFINITY, -K_INFINITY},
	}}
}

/**
 * @brief Computes the bounding box of a flat position array holding `stride`
 * components per vertex. Only the first three components are read.
 */
func NewBoundingBoxFromPositions(positions []float32, stride int) *BoundingBox {
	bb := NewBoundingBox()
	if stride < 3 {
		return bb
	}
	for i := 0; i+2 < len(positions); i += stride {
		bb.Expand(Vec3{positions[i], positions[i+1], positions[i+2]})
	}
	return bb
}

// IsEmpty reports whether no point was ever added to the box.
func (bb *BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y || bb.Min.Z > bb.Max.Z
}

func (bb *BoundingBox) Expand(p Vec3) {
	bb.Min.X = min(bb.Min.X, p.X)
	bb.Min.Y = min(bb.Min.Y, p.Y)
	bb.Min.Z = min(bb.Min.Z, p.Z)
	bb.Max.X = max(bb.Max.X, p.X)
	bb.Max.Y = max(bb.Max.Y, p.Y)
	bb.Max.Z = max(bb.Max.Z, p.Z)
}

func (bb *BoundingBox) Center() Vec3 {
	return bb.Min.Add(bb.Max).MulScalar(0.5)
}

func (bb *BoundingBox) Size() Vec3 {
	return bb.Max.Sub(bb.Min)
}

/**
 * @brief Returns the box enclosing the 8 transformed corners of bb.
 */
func (bb *BoundingBox) Transform(m Mat4) *BoundingBox {
	out := NewBoundingBox()
	if bb.IsEmpty() {
		return out
	}
	for i := 0; i < 8; i++ {
		corner := bb.Min
		if i&1 != 0 {
			corner.X = bb.Max.X
		}
		if i&2 != 0 {
			corner.Y = bb.Max.Y
		}
		if i&4 != 0 {
			corner.Z = bb.Max.Z
		}
		out.Expand(corner.Transform(m))
	}
	return out
}
