package geometry

import (
	"fmt"

	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/math"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

/** @brief Names of the well-known attribute slots every static geometry owns. */
const (
	AttributePosition    = "position"
	AttributeNormal      = "normal"
	AttributeTexcoord0   = "texcoord0"
	AttributeTexcoord1   = "texcoord1"
	AttributeTangent     = "tangent"
	AttributeColor       = "color"
	AttributeWeight      = "weight"
	AttributeJoint       = "joint"
	AttributeBarycentric = "barycentric"
)

/**
 * @brief A named per-vertex data channel. Values holds Size components per
 * vertex, flattened in vertex order.
 */
type Attribute struct {
	/** @brief The attribute name, unique within a geometry. */
	Name string
	/** @brief The component type used when uploading. */
	Type metadata.ComponentType
	/** @brief Components per vertex, 1 to 4. */
	Size int
	/** @brief The shader binding semantic, SemanticNone if untagged. */
	Semantic metadata.Semantic
	/** @brief The flat attribute data. */
	Value []float32
	/**
	 * @brief Indicates if the attribute length matches the vertex count of
	 * its geometry. Derived by the geometry once per dirty cycle.
	 */
	Active bool
}

func NewAttribute(name string, typ metadata.ComponentType, size int, semantic metadata.Semantic) (*Attribute, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("%w: attribute name must not be empty", core.ErrInvalidAttribute)
	}
	if size < 1 || size > 4 {
		return nil, fmt.Errorf("%w: attribute %q size %d out of range 1..4", core.ErrInvalidAttribute, name, size)
	}
	return &Attribute{
		Name:     name,
		Type:     typ,
		Size:     size,
		Semantic: semantic,
	}, nil
}

// Len returns the number of vertices the attribute holds data for.
func (a *Attribute) Len() int {
	return len(a.Value) / a.Size
}

// Init sizes the attribute for vertexCount vertices. An array already of the
// right size is zeroed in place and keeps its identity.
func (a *Attribute) Init(vertexCount int) {
	n := vertexCount * a.Size
	if len(a.Value) == n && a.Value != nil {
		clear(a.Value)
		return
	}
	a.Value = make([]float32, n)
}

// Get copies the components of vertex i into out, which must hold Size elements.
func (a *Attribute) Get(i int, out []float32) []float32 {
	copy(out[:a.Size], a.Value[i*a.Size:(i+1)*a.Size])
	return out
}

// Set writes the components of vertex i.
func (a *Attribute) Set(i int, values ...float32) {
	copy(a.Value[i*a.Size:(i+1)*a.Size], values)
}

func (a *Attribute) Vec2(i int) math.Vec2 {
	o := i * a.Size
	return math.Vec2{X: a.Value[o], Y: a.Value[o+1]}
}

func (a *Attribute) Vec3(i int) math.Vec3 {
	o := i * a.Size
	return math.Vec3{X: a.Value[o], Y: a.Value[o+1], Z: a.Value[o+2]}
}

func (a *Attribute) Vec4(i int) math.Vec4 {
	o := i * a.Size
	return math.Vec4{X: a.Value[o], Y: a.Value[o+1], Z: a.Value[o+2], W: a.Value[o+3]}
}

func (a *Attribute) SetVec3(i int, v math.Vec3) {
	o := i * a.Size
	a.Value[o] = v.X
	a.Value[o+1] = v.Y
	a.Value[o+2] = v.Z
}

// copyVertex copies the components of vertex from onto vertex to.
func (a *Attribute) copyVertex(to, from int) {
	copy(a.Value[to*a.Size:(to+1)*a.Size], a.Value[from*a.Size:(from+1)*a.Size])
}
