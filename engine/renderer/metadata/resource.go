package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Not a resource handled by the engine. */
	ResourceTypeNone ResourceType = iota
	/** @brief Mesh resource type (a single geometry config). */
	ResourceTypeMesh
)

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The type of the resource. */
	Type ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource file in bytes. */
	DataSize uint64
	/** @brief The resource data. For meshes a *GeometryConfig. */
	Data interface{}
}
