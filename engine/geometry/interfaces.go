package geometry

import (
	"github.com/spaghettifunk/animageo/engine/math"
	"github.com/spaghettifunk/animageo/engine/renderer"
)

// BufferCacher is anything that lazily uploads itself into rendering contexts.
type BufferCacher interface {
	GetBufferChunks(ctx renderer.Context) ([]*BufferChunk, error)
	Dirty()
}

type Transformable interface {
	ApplyTransform(m math.Mat4)
}

// Disposable releases the GPU resources it holds in one context.
type Disposable interface {
	Dispose(ctx renderer.Context)
}

var (
	_ BufferCacher  = &StaticGeometry{}
	_ Transformable = &StaticGeometry{}
	_ Disposable    = &StaticGeometry{}
)
