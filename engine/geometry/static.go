package geometry

import (
	"fmt"

	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/math"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
	"golang.org/x/exp/slices"
)

/**
 * @brief Vertex and index data that is set up once and then rendered many
 * times. GPU buffers are created lazily per rendering context and re-uploaded
 * only after Dirty.
 *
 * The geometry is not safe for concurrent use. Attribute values must not be
 * mutated while an upload or a processing pass is running.
 */
type StaticGeometry struct {
	/** @brief The geometry name. */
	Name string
	/** @brief Flat triangle index sequence, three indices per triangle. May be nil. */
	Indices []uint32
	/** @brief Indicates if Indices is uploaded and drawn. */
	UseIndices bool
	/** @brief Upload pattern hint passed to every buffer upload. */
	Usage metadata.UsageHint
	/** @brief Name of the attribute the vertex count is derived from. */
	MainAttribute string

	// Well-known slots, always present in the attribute map.
	Position    *Attribute
	Normal      *Attribute
	Texcoord0   *Attribute
	Texcoord1   *Attribute
	Tangent     *Attribute
	Color       *Attribute
	Weight      *Attribute
	Joint       *Attribute
	Barycentric *Attribute

	attributes     map[string]*Attribute
	attributeNames []string

	// nil until resolved, reset by Dirty.
	enabledAttributes []string

	cache *bufferCache

	boundingBox *math.BoundingBox
}

func New() *StaticGeometry {
	g := &StaticGeometry{
		Name:          metadata.DefaultGeometryName,
		UseIndices:    true,
		Usage:         metadata.UsageStatic,
		MainAttribute: AttributePosition,
		attributes:    make(map[string]*Attribute),
		cache:         newBufferCache(),
	}
	g.Position = g.mustSlot(AttributePosition, 3, metadata.SemanticPosition)
	g.Normal = g.mustSlot(AttributeNormal, 3, metadata.SemanticNormal)
	g.Texcoord0 = g.mustSlot(AttributeTexcoord0, 2, metadata.SemanticTexcoord0)
	g.Texcoord1 = g.mustSlot(AttributeTexcoord1, 2, metadata.SemanticTexcoord1)
	g.Tangent = g.mustSlot(AttributeTangent, 4, metadata.SemanticTangent)
	g.Color = g.mustSlot(AttributeColor, 4, metadata.SemanticColor)
	g.Weight = g.mustSlot(AttributeWeight, 4, metadata.SemanticWeight)
	g.Joint = g.mustSlot(AttributeJoint, 4, metadata.SemanticJoint)
	g.Barycentric = g.mustSlot(AttributeBarycentric, 3, metadata.SemanticNone)
	// Unresolved until first use or the next Dirty.
	g.enabledAttributes = nil
	return g
}

// NewWithConfig creates a geometry using the defaults of the geometry section
// of the engine configuration.
func NewWithConfig(cfg core.GeometryConfig) (*StaticGeometry, error) {
	g := New()
	if err := g.Configure(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Configure applies the geometry section of the engine configuration.
func (g *StaticGeometry) Configure(cfg core.GeometryConfig) error {
	usage, err := metadata.ParseUsageHint(cfg.Usage)
	if err != nil {
		return fmt.Errorf("%w: %s", core.ErrConfig, err)
	}
	g.Usage = usage
	g.UseIndices = cfg.UseIndices
	if len(cfg.MainAttribute) > 0 {
		g.MainAttribute = cfg.MainAttribute
	}
	g.Dirty()
	return nil
}

func (g *StaticGeometry) mustSlot(name string, size int, semantic metadata.Semantic) *Attribute {
	a, err := g.CreateAttribute(name, metadata.ComponentFloat32, size, semantic)
	if err != nil {
		panic(err)
	}
	return a
}

func isWellKnown(name string) bool {
	switch name {
	case AttributePosition, AttributeNormal, AttributeTexcoord0, AttributeTexcoord1,
		AttributeTangent, AttributeColor, AttributeWeight, AttributeJoint, AttributeBarycentric:
		return true
	}
	return false
}

// CreateAttribute declares a new, empty attribute after all existing ones.
func (g *StaticGeometry) CreateAttribute(name string, typ metadata.ComponentType, size int, semantic metadata.Semantic) (*Attribute, error) {
	if _, exists := g.attributes[name]; exists {
		return nil, fmt.Errorf("%w: attribute %q already exists", core.ErrInvalidAttribute, name)
	}
	a, err := NewAttribute(name, typ, size, semantic)
	if err != nil {
		return nil, err
	}
	g.attributes[name] = a
	g.attributeNames = append(g.attributeNames, name)
	g.Dirty()
	return a, nil
}

// RemoveAttribute drops a custom attribute. Well-known slots cannot be
// removed; clear their Value instead.
func (g *StaticGeometry) RemoveAttribute(name string) bool {
	if isWellKnown(name) {
		return false
	}
	if _, exists := g.attributes[name]; !exists {
		return false
	}
	delete(g.attributes, name)
	if i := slices.Index(g.attributeNames, name); i >= 0 {
		g.attributeNames = slices.Delete(g.attributeNames, i, i+1)
	}
	g.Dirty()
	return true
}

// Attribute returns the attribute called name, or nil.
func (g *StaticGeometry) Attribute(name string) *Attribute {
	return g.attributes[name]
}

// Attributes returns every attribute in declaration order.
func (g *StaticGeometry) Attributes() []*Attribute {
	out := make([]*Attribute, 0, len(g.attributeNames))
	for _, name := range g.attributeNames {
		out = append(out, g.attributes[name])
	}
	return out
}

// SetIndices replaces the index sequence.
func (g *StaticGeometry) SetIndices(indices []uint32) {
	g.Indices = indices
	g.Dirty()
}

// Dirty re-derives the enabled attribute list and the Active flags, and
// invalidates the upload state of every rendering context. Call it after any
// structural edit.
func (g *StaticGeometry) Dirty() {
	g.resolveEnabledAttributes()
	g.cache.dirtyAll()
}

// VertexCount returns the number of vertices of the main attribute, 0 when it
// has no data.
func (g *StaticGeometry) VertexCount() int {
	main := g.attributes[g.MainAttribute]
	if main == nil {
		return 0
	}
	return main.Len()
}

// FaceCount returns the number of indexed triangles, 0 without an index sequence.
func (g *StaticGeometry) FaceCount() int {
	return len(g.Indices) / 3
}

// IsUseIndices reports whether the index sequence is enabled and present.
func (g *StaticGeometry) IsUseIndices() bool {
	return g.UseIndices && g.Indices != nil
}

/**
 * @brief Returns the names of the attributes whose length matches the vertex
 * count, in declaration order. The list and the Active flags are derived by
 * Dirty and stay as they are until the next Dirty.
 */
func (g *StaticGeometry) EnabledAttributes() []string {
	if g.enabledAttributes != nil {
		return g.enabledAttributes
	}
	return g.resolveEnabledAttributes()
}

func (g *StaticGeometry) resolveEnabledAttributes() []string {
	vertexCount := g.VertexCount()
	enabled := make([]string, 0, len(g.attributeNames))
	for _, name := range g.attributeNames {
		a := g.attributes[name]
		a.Active = vertexCount > 0 && len(a.Value) == vertexCount*a.Size
		if a.Active {
			enabled = append(enabled, name)
		}
	}
	g.enabledAttributes = enabled
	return enabled
}

// isActive resolves the enabled list if needed and reports the Active flag of a.
func (g *StaticGeometry) isActive(a *Attribute) bool {
	g.EnabledAttributes()
	return a.Active
}

// triangleCount is the number of triangles the processing passes iterate:
// indexed when indices are in use, otherwise the vertices taken three by three.
func (g *StaticGeometry) triangleCount() int {
	if g.IsUseIndices() {
		return len(g.Indices) / 3
	}
	return g.VertexCount() / 3
}

func (g *StaticGeometry) triangle(t int) (int, int, int) {
	if g.IsUseIndices() {
		return int(g.Indices[t*3]), int(g.Indices[t*3+1]), int(g.Indices[t*3+2])
	}
	return t * 3, t*3 + 1, t*3 + 2
}
