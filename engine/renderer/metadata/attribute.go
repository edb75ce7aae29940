package metadata

/** @brief Standardized names binding an attribute to a shader input. */
type Semantic int

const (
	/** @brief Attribute is not bound by semantic (e.g. barycentric data). */
	SemanticNone Semantic = iota
	SemanticPosition
	SemanticNormal
	SemanticTexcoord0
	SemanticTexcoord1
	SemanticTangent
	SemanticColor
	SemanticWeight
	SemanticJoint
)

func (s Semantic) String() string {
	switch s {
	case SemanticPosition:
		return "POSITION"
	case SemanticNormal:
		return "NORMAL"
	case SemanticTexcoord0:
		return "TEXCOORD_0"
	case SemanticTexcoord1:
		return "TEXCOORD_1"
	case SemanticTangent:
		return "TANGENT"
	case SemanticColor:
		return "COLOR"
	case SemanticWeight:
		return "WEIGHT"
	case SemanticJoint:
		return "JOINT"
	default:
		return ""
	}
}

/** @brief The numeric kind of a single attribute component as uploaded to the GPU. */
type ComponentType int

const (
	ComponentFloat32 ComponentType = iota
	ComponentUint16
	ComponentUint32
)

/**
 * @brief Returns the size in bytes of one component.
 */
func (c ComponentType) Size() uint32 {
	switch c {
	case ComponentUint16:
		return 2
	default:
		return 4
	}
}

func (c ComponentType) String() string {
	switch c {
	case ComponentUint16:
		return "uint16"
	case ComponentUint32:
		return "uint32"
	default:
		return "float32"
	}
}
