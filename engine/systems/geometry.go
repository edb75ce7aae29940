package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/geometry"
	"github.com/spaghettifunk/animageo/engine/renderer"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
	"golang.org/x/exp/slices"
)

/**
 * @brief A registered geometry together with its reference bookkeeping.
 */
type GeometryReference struct {
	Geometry       *geometry.StaticGeometry
	ReferenceCount uint64
	/** @brief Indicates if the geometry is disposed when its reference count reaches 0. */
	AutoRelease bool
}

/**
 * @brief Named registry of static geometries shared between the users of a
 * scene. Acquire and Release count references; a geometry registered with
 * auto release gives up its GPU buffers on every context passed to the
 * final Release.
 */
type GeometrySystem struct {
	config          core.RegistryConfig
	defaultGeometry *geometry.StaticGeometry
	// Registered geometries by name.
	registered map[string]*GeometryReference

	mutex sync.Mutex
}

/**
 * @brief Initializes the geometry system.
 *
 * @param config The configuration for this system.
 * @return The system, or an error wrapping core.ErrConfig.
 */
func NewGeometrySystem(config core.RegistryConfig) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("%w: func NewGeometrySystem - config.MaxGeometryCount must be > 0", core.ErrConfig)
		core.LogWarn("%s", err)
		return nil, err
	}
	gs := &GeometrySystem{
		config:     config,
		registered: make(map[string]*GeometryReference),
	}
	gs.createDefaultGeometries()
	return gs, nil
}

func (gs *GeometrySystem) createDefaultGeometries() {
	f := float32(10.0)
	gs.defaultGeometry = geometry.FromConfig(geometry.PlaneConfig(f, f, 1, 1, 1, 1, metadata.DefaultGeometryName))
}

/**
 * @brief Obtains the default geometry, a 10x10 plane. It is never registered
 * and never released.
 */
func (gs *GeometrySystem) GetDefault() *geometry.StaticGeometry {
	return gs.defaultGeometry
}

/**
 * @brief Registers and acquires a new geometry.
 *
 * @param name The unique name to register the geometry under.
 * @param g The geometry.
 * @param autoRelease Indicates if the geometry should be disposed when its reference count reaches 0.
 * @return core.ErrExists if the name is taken, core.ErrRegistryFull if no slot is left.
 */
func (gs *GeometrySystem) Register(name string, g *geometry.StaticGeometry, autoRelease bool) error {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	if _, exists := gs.registered[name]; exists {
		return fmt.Errorf("%w: geometry %q", core.ErrExists, name)
	}
	if uint32(len(gs.registered)) >= gs.config.MaxGeometryCount {
		err := fmt.Errorf("%w: unable to register %q. Adjust configuration to allow more space", core.ErrRegistryFull, name)
		core.LogError("%s", err)
		return err
	}
	gs.registered[name] = &GeometryReference{
		Geometry:       g,
		ReferenceCount: 1,
		AutoRelease:    autoRelease,
	}
	return nil
}

/**
 * @brief Acquires an existing geometry by name.
 */
func (gs *GeometrySystem) Acquire(name string) (*geometry.StaticGeometry, error) {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	ref, ok := gs.registered[name]
	if !ok {
		return nil, fmt.Errorf("%w: geometry %q", core.ErrNotFound, name)
	}
	ref.ReferenceCount++
	return ref.Geometry, nil
}

/**
 * @brief Releases a reference to the named geometry. When the last reference
 * of an auto release geometry goes away, its buffers are disposed on every
 * context in ctxs and the name is freed.
 */
func (gs *GeometrySystem) Release(name string, ctxs ...renderer.Context) error {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	ref, ok := gs.registered[name]
	if !ok {
		core.LogWarn("GeometrySystem.Release cannot release unknown geometry %q. Nothing was done.", name)
		return fmt.Errorf("%w: geometry %q", core.ErrNotFound, name)
	}
	if ref.ReferenceCount > 0 {
		ref.ReferenceCount--
	}
	if ref.ReferenceCount < 1 && ref.AutoRelease {
		for _, ctx := range ctxs {
			ref.Geometry.Dispose(ctx)
		}
		delete(gs.registered, name)
		core.LogDebug("geometry %q released", name)
	}
	return nil
}

// DisposeContext drops the buffers of every geometry in ctx, for a lost or
// destroyed context.
func (gs *GeometrySystem) DisposeContext(ctx renderer.Context) {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	for _, ref := range gs.registered {
		ref.Geometry.Dispose(ctx)
	}
	gs.defaultGeometry.Dispose(ctx)
}

// Reference returns a copy of the bookkeeping of the named geometry.
func (gs *GeometrySystem) Reference(name string) (GeometryReference, bool) {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	ref, ok := gs.registered[name]
	if !ok {
		return GeometryReference{}, false
	}
	return *ref, true
}

// Names returns the registered names in lexical order.
func (gs *GeometrySystem) Names() []string {
	gs.mutex.Lock()
	defer gs.mutex.Unlock()

	names := make([]string, 0, len(gs.registered))
	for name := range gs.registered {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
