package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/animageo/engine/assets/loaders"
	"github.com/spaghettifunk/animageo/engine/containers"
	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/geometry"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	Geometry   *geometry.StaticGeometry
	LastLoaded time.Time
}

/**
 * @brief Loads mesh files into static geometries and keeps them in sync with
 * the files on disk. A watcher goroutine only records which files changed;
 * the geometries themselves are rewritten by ProcessReloads, on whichever
 * goroutine owns them.
 */
type AssetManager struct {
	assets  map[string]*AssetInfo
	loaders map[metadata.ResourceType]Loader
	pending *containers.RingQueue[string]

	mutex sync.Mutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager(config core.AssetsConfig) (*AssetManager, error) {
	if config.ReloadQueue < 1 {
		return nil, fmt.Errorf("%w: reload queue must be > 0", core.ErrConfig)
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]*AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		pending:  containers.NewRingQueue[string](config.ReloadQueue),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}
	am.registerLoader(metadata.ResourceTypeMesh, &loaders.OBJLoader{})

	am.wg.Add(1)
	go am.start()
	return am, nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// WatchRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) WatchRecursive(name string) error {
	if am.closed() {
		return core.ErrClosed
	}
	return am.watchRecursive(name)
}

/**
 * @brief Loads the mesh file at path into a new static geometry and registers
 * it for hot reload.
 */
func (am *AssetManager) Load(path string) (*geometry.StaticGeometry, error) {
	config, err := am.loadConfig(path)
	if err != nil {
		return nil, err
	}
	g := geometry.FromConfig(config)
	if err := am.Register(path, g); err != nil {
		return nil, err
	}
	return g, nil
}

/**
 * @brief Ties g to the mesh file at path: every later change of the file is
 * loaded into g by ProcessReloads. The directory of the file is watched.
 */
func (am *AssetManager) Register(path string, g *geometry.StaticGeometry) error {
	if am.closed() {
		return core.ErrClosed
	}
	key, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	assetType := determineAssetType(key)
	if assetType == metadata.ResourceTypeNone {
		return fmt.Errorf("%w: no loader for %s", core.ErrNotFound, path)
	}
	if err := am.fsnotify.Add(filepath.Dir(key)); err != nil {
		core.LogError("failed to watch %s: %s", filepath.Dir(key), err)
		return err
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[key] = &AssetInfo{
		Path:       key,
		Type:       assetType,
		Geometry:   g,
		LastLoaded: time.Now(),
	}
	return nil
}

// Unregister stops reloading the file at path.
func (am *AssetManager) Unregister(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, key)
}

// Pending returns the number of reloads waiting for ProcessReloads.
func (am *AssetManager) Pending() int {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	return am.pending.Len()
}

/**
 * @brief Reloads every registered file that changed since the last call and
 * replaces the content of its geometry. Files that fail to load leave their
 * geometry untouched.
 *
 * @return The number of geometries reloaded, and the joined load errors.
 */
func (am *AssetManager) ProcessReloads() (int, error) {
	am.mutex.Lock()
	var work []*AssetInfo
	for !am.pending.IsEmpty() {
		path, _ := am.pending.Dequeue()
		if info, ok := am.assets[path]; ok {
			work = append(work, info)
		}
	}
	am.mutex.Unlock()

	var errs []error
	reloaded := 0
	for _, info := range work {
		config, err := am.loadConfig(info.Path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		info.Geometry.Load(config)
		info.LastLoaded = time.Now()
		reloaded++
		core.LogInfo("reloaded %s (%d vertices)", info.Path, info.Geometry.VertexCount())
	}
	return reloaded, errors.Join(errs...)
}

// Close stops the watcher. Registered geometries stay valid.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return core.ErrClosed
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()
	return am.fsnotify.Close()
}

func (am *AssetManager) closed() bool {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	return am.isClosed
}

func (am *AssetManager) loadConfig(path string) (*metadata.GeometryConfig, error) {
	loader, ok := am.loaders[determineAssetType(path)]
	if !ok {
		return nil, fmt.Errorf("%w: no loader for %s", core.ErrNotFound, path)
	}
	resource, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	defer loader.Unload(resource)

	config, ok := resource.Data.(*metadata.GeometryConfig)
	if !ok {
		return nil, fmt.Errorf("%w: %s did not load to a geometry", core.ErrUnknown, path)
	}
	return config, nil
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Create != 0 {
				if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
					am.watchRecursive(e.Name)
					continue
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-am.done:
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if _, ok := am.assets[key]; !ok {
		return
	}
	if am.pending.Contains(func(p string) bool { return p == key }) {
		return
	}
	if err := am.pending.Enqueue(key); err != nil {
		core.LogWarn("reload of %s dropped: %s", key, err)
	}
}
