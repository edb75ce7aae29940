package renderer

import (
	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

/**
 * @brief Opaque GPU buffer handle, only meaningful to the Context that created it.
 */
type BufferHandle uint32

/** @brief The zero handle. No created buffer carries it. */
const InvalidBuffer BufferHandle = 0

/**
 * @brief The capability of a rendering context that geometry buffer caches
 * call into. Implementations follow the bind-then-upload protocol: BufferData
 * writes into the buffer last bound to the same target.
 */
type Context interface {
	/** @brief Stable identity of the context, used as a cache key. */
	ID() core.ContextID
	/** @brief Allocates a new, empty buffer handle. */
	CreateBuffer() (BufferHandle, error)
	/** @brief Binds handle to target. */
	BindBuffer(target metadata.BufferTarget, handle BufferHandle)
	/** @brief Replaces the whole content of the buffer bound to target. */
	BufferData(target metadata.BufferTarget, data []byte, usage metadata.UsageHint) error
	/** @brief Releases the buffer. The handle must not be used afterwards. */
	DeleteBuffer(handle BufferHandle)
}
