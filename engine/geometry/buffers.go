package geometry

import (
	"encoding/binary"
	"fmt"

	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/renderer"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

/**
 * @brief One uploaded attribute of a buffer chunk.
 */
type AttributeBuffer struct {
	Name     string
	Type     metadata.ComponentType
	Buffer   renderer.BufferHandle
	Size     int
	Semantic metadata.Semantic
}

/**
 * @brief The uploaded index sequence of a buffer chunk.
 */
type IndicesBuffer struct {
	Buffer renderer.BufferHandle
	Count  int
}

/**
 * @brief One unit of GPU resident vertex and index data. A static geometry
 * always uploads into a single chunk.
 */
type BufferChunk struct {
	Attributes []AttributeBuffer
	Indices    *IndicesBuffer
}

type bufferCacheEntry struct {
	chunks     []*BufferChunk
	generation uint64
	fresh      bool
}

/**
 * @brief Per context buffer bookkeeping. The generation counter is the single
 * dirty flag shared by every context: bumping it invalidates the upload state
 * of all of them at once, while each context still owns its own handles and
 * is brought up to date only when it asks for its chunks.
 */
type bufferCache struct {
	generation uint64
	entries    map[core.ContextID]*bufferCacheEntry
}

func newBufferCache() *bufferCache {
	return &bufferCache{entries: make(map[core.ContextID]*bufferCacheEntry)}
}

func (bc *bufferCache) dirtyAll() {
	bc.generation++
}

func (bc *bufferCache) use(id core.ContextID) *bufferCacheEntry {
	entry, ok := bc.entries[id]
	if !ok {
		entry = &bufferCacheEntry{}
		bc.entries[id] = entry
	}
	return entry
}

func (bc *bufferCache) isDirty(entry *bufferCacheEntry) bool {
	return !entry.fresh || entry.generation != bc.generation
}

func (bc *bufferCache) fresh(entry *bufferCacheEntry) {
	entry.generation = bc.generation
	entry.fresh = true
}

/**
 * @brief Returns the buffer chunks of the geometry for ctx, uploading every
 * enabled attribute and the index sequence first when the geometry was
 * dirtied since the last upload to that context. A context seen for the
 * first time always uploads.
 *
 * @param ctx The rendering context to upload into.
 * @return The chunks, and an error wrapping core.ErrUpload when the context
 * failed to create or fill a buffer. The cache stays dirty after a failure.
 */
func (g *StaticGeometry) GetBufferChunks(ctx renderer.Context) ([]*BufferChunk, error) {
	entry := g.cache.use(ctx.ID())
	if !g.cache.isDirty(entry) {
		return entry.chunks, nil
	}
	if len(entry.chunks) == 0 {
		entry.chunks = []*BufferChunk{{}}
	}
	if err := g.updateBuffer(ctx, entry.chunks[0]); err != nil {
		err = fmt.Errorf("%w: geometry %q: %s", core.ErrUpload, g.Name, err)
		core.LogError("%s", err)
		return entry.chunks, err
	}
	g.cache.fresh(entry)
	return entry.chunks, nil
}

func (g *StaticGeometry) updateBuffer(ctx renderer.Context, chunk *BufferChunk) error {
	enabled := g.EnabledAttributes()
	previous := chunk.Attributes
	reused := make([]bool, len(previous))
	next := make([]AttributeBuffer, 0, len(enabled))

	searchIdx := 0
	var err error
	for _, name := range enabled {
		attribute := g.attributes[name]

		var handle renderer.BufferHandle
		var found int
		found, searchIdx = findAttributeBuffer(previous, name, searchIdx)
		if found >= 0 && !reused[found] {
			handle = previous[found].Buffer
			reused[found] = true
		} else {
			if handle, err = ctx.CreateBuffer(); err != nil {
				break
			}
		}
		next = append(next, AttributeBuffer{
			Name:     name,
			Type:     attribute.Type,
			Buffer:   handle,
			Size:     attribute.Size,
			Semantic: attribute.Semantic,
		})

		data := attributeBytes(attribute)
		ctx.BindBuffer(metadata.BufferTargetVertex, handle)
		if err = ctx.BufferData(metadata.BufferTargetVertex, data, g.Usage); err != nil {
			break
		}
		core.LogDebug("geometry %q: uploaded attribute %q (%d bytes)", g.Name, name, len(data))
	}

	if err != nil {
		// Keep every handle tracked so the retry can reuse it and Dispose can free it.
		for i, b := range previous {
			if !reused[i] {
				next = append(next, b)
			}
		}
		chunk.Attributes = next
		return err
	}

	// Buffers of attributes that are no longer enabled.
	for i, b := range previous {
		if !reused[i] {
			ctx.DeleteBuffer(b.Buffer)
		}
	}
	chunk.Attributes = next

	if !g.IsUseIndices() {
		if chunk.Indices != nil {
			ctx.DeleteBuffer(chunk.Indices.Buffer)
			chunk.Indices = nil
		}
		return nil
	}
	if chunk.Indices == nil {
		handle, err := ctx.CreateBuffer()
		if err != nil {
			return err
		}
		chunk.Indices = &IndicesBuffer{Buffer: handle}
	}
	chunk.Indices.Count = len(g.Indices)
	ctx.BindBuffer(metadata.BufferTargetIndex, chunk.Indices.Buffer)
	if err := ctx.BufferData(metadata.BufferTargetIndex, renderer.Uint32Bytes(g.Indices), g.Usage); err != nil {
		return err
	}
	core.LogDebug("geometry %q: uploaded %d indices", g.Name, len(g.Indices))
	return nil
}

/**
 * @brief Looks name up in buffers, searching forward from `from` and then
 * backward from it. When attribute order is unchanged between uploads every
 * lookup hits on its first comparison.
 *
 * @return The index of the match or -1, and the position to start the next search at.
 */
func findAttributeBuffer(buffers []AttributeBuffer, name string, from int) (int, int) {
	for i := from; i < len(buffers); i++ {
		if buffers[i].Name == name {
			return i, i + 1
		}
	}
	for i := min(from, len(buffers)) - 1; i >= 0; i-- {
		if buffers[i].Name == name {
			return i, i
		}
	}
	return -1, from
}

// attributeBytes encodes the attribute values in its component type.
func attributeBytes(a *Attribute) []byte {
	switch a.Type {
	case metadata.ComponentUint16:
		out := make([]byte, len(a.Value)*2)
		for i, v := range a.Value {
			binary.NativeEndian.PutUint16(out[i*2:], uint16(v))
		}
		return out
	case metadata.ComponentUint32:
		out := make([]byte, len(a.Value)*4)
		for i, v := range a.Value {
			binary.NativeEndian.PutUint32(out[i*4:], uint32(v))
		}
		return out
	default:
		return renderer.Float32Bytes(a.Value)
	}
}

/**
 * @brief Releases every buffer the geometry holds in ctx and forgets the
 * context. Other contexts are unaffected.
 */
func (g *StaticGeometry) Dispose(ctx renderer.Context) {
	entry, ok := g.cache.entries[ctx.ID()]
	if !ok {
		return
	}
	for _, chunk := range entry.chunks {
		for _, b := range chunk.Attributes {
			ctx.DeleteBuffer(b.Buffer)
		}
		if chunk.Indices != nil {
			ctx.DeleteBuffer(chunk.Indices.Buffer)
		}
	}
	delete(g.cache.entries, ctx.ID())
	core.LogDebug("geometry %q: disposed buffers of context %s", g.Name, ctx.ID())
}

// HasContext reports whether the geometry holds a cache entry for ctx.
func (g *StaticGeometry) HasContext(id core.ContextID) bool {
	_, ok := g.cache.entries[id]
	return ok
}
