package headless

import (
	"fmt"

	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/renderer"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

// Stats counts the calls a Context has served.
type Stats struct {
	Creates  int
	Binds    int
	Uploads  int
	Deletes  int
	Bytes    uint64
	Live     int
	Failures int
}

type buffer struct {
	data  []byte
	usage metadata.UsageHint
}

// Context is a renderer.Context keeping buffer contents in host memory. It
// serves CPU-only tooling and tests, and can inject upload failures.
type Context struct {
	id      core.ContextID
	next    renderer.BufferHandle
	buffers map[renderer.BufferHandle]*buffer
	bound   map[metadata.BufferTarget]renderer.BufferHandle
	stats   Stats

	// FailUploads makes the next n BufferData calls fail.
	FailUploads int
}

var _ renderer.Context = &Context{}

func New() *Context {
	return &Context{
		id:      core.NewContextID(),
		buffers: make(map[renderer.BufferHandle]*buffer),
		bound:   make(map[metadata.BufferTarget]renderer.BufferHandle),
	}
}

func (c *Context) ID() core.ContextID {
	return c.id
}

func (c *Context) CreateBuffer() (renderer.BufferHandle, error) {
	c.next++
	c.buffers[c.next] = &buffer{}
	c.stats.Creates++
	c.stats.Live++
	return c.next, nil
}

func (c *Context) BindBuffer(target metadata.BufferTarget, handle renderer.BufferHandle) {
	c.bound[target] = handle
	c.stats.Binds++
}

func (c *Context) BufferData(target metadata.BufferTarget, data []byte, usage metadata.UsageHint) error {
	if c.FailUploads > 0 {
		c.FailUploads--
		c.stats.Failures++
		return fmt.Errorf("headless: injected upload failure on %s target", target)
	}
	handle := c.bound[target]
	b, ok := c.buffers[handle]
	if !ok {
		c.stats.Failures++
		return fmt.Errorf("headless: no live buffer bound to %s target (handle %d)", target, handle)
	}
	b.data = append(b.data[:0], data...)
	b.usage = usage
	c.stats.Uploads++
	c.stats.Bytes += uint64(len(data))
	return nil
}

func (c *Context) DeleteBuffer(handle renderer.BufferHandle) {
	if _, ok := c.buffers[handle]; !ok {
		core.LogWarn("headless: delete of unknown buffer %d ignored", handle)
		return
	}
	delete(c.buffers, handle)
	for target, h := range c.bound {
		if h == handle {
			delete(c.bound, target)
		}
	}
	c.stats.Deletes++
	c.stats.Live--
}

// Stats returns a snapshot of the call counters.
func (c *Context) Stats() Stats {
	return c.stats
}

// ResetStats zeroes the call counters, keeping Live.
func (c *Context) ResetStats() {
	c.stats = Stats{Live: c.stats.Live}
}

// Data returns a copy of the bytes last uploaded into handle.
func (c *Context) Data(handle renderer.BufferHandle) ([]byte, bool) {
	b, ok := c.buffers[handle]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.data...), true
}

// Usage returns the usage hint of the last upload into handle.
func (c *Context) Usage(handle renderer.BufferHandle) metadata.UsageHint {
	if b, ok := c.buffers[handle]; ok {
		return b.usage
	}
	return metadata.UsageStatic
}

// Alive reports whether handle was created and not deleted.
func (c *Context) Alive(handle renderer.BufferHandle) bool {
	_, ok := c.buffers[handle]
	return ok
}
