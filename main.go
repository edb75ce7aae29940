/*
animageo loads a mesh, runs the static geometry processing passes on it,
uploads it into a rendering context and prints what was uploaded. The
default backend records uploads in memory; -backend vulkan allocates real
device buffers.
With -watch it keeps the mesh registered for hot reload and prints a new
report every time the file changes.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spaghettifunk/animageo/engine/assets"
	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/geometry"
	"github.com/spaghettifunk/animageo/engine/renderer"
	"github.com/spaghettifunk/animageo/engine/renderer/headless"
	"github.com/spaghettifunk/animageo/engine/renderer/vulkan"
	"github.com/spaghettifunk/animageo/engine/systems"
)

type options struct {
	config      string
	logLevel    string
	backend     string
	normals     string
	tangents    bool
	unique      bool
	barycentric bool
	watch       bool
}

func main() {
	opts := options{}
	flag.StringVar(&opts.config, "config", "", "path of a TOML configuration file")
	flag.StringVar(&opts.logLevel, "log-level", "", "overrides log_level of the configuration")
	flag.StringVar(&opts.backend, "backend", "headless", "rendering context: headless or vulkan")
	flag.StringVar(&opts.normals, "normals", "none", "normal generation: vertex, face or none")
	flag.BoolVar(&opts.tangents, "tangents", false, "generate tangents")
	flag.BoolVar(&opts.unique, "unique", false, "split shared vertices")
	flag.BoolVar(&opts.barycentric, "barycentric", false, "generate barycentric coordinates")
	flag.BoolVar(&opts.watch, "watch", false, "reload and report again whenever the mesh file changes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: animageo [flags] mesh.obj\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(opts, flag.Arg(0), os.Stdout); err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}
}

func loadConfig(opts options) (*core.Config, error) {
	cfg := core.DefaultConfig()
	if len(opts.config) > 0 {
		var err error
		if cfg, err = core.LoadConfig(opts.config); err != nil {
			return nil, err
		}
	}
	if len(opts.logLevel) > 0 {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, cfg.Apply()
}

func run(opts options, path string, out io.Writer) error {
	switch opts.normals {
	case "vertex", "face", "none":
	default:
		return fmt.Errorf("%w: unknown -normals mode %q", core.ErrConfig, opts.normals)
	}
	switch opts.backend {
	case "", "headless", "vulkan":
	default:
		return fmt.Errorf("%w: unknown -backend %q", core.ErrConfig, opts.backend)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	am, err := assets.NewAssetManager(cfg.Assets)
	if err != nil {
		return err
	}
	defer am.Close()

	gs, err := systems.NewGeometrySystem(cfg.Registry)
	if err != nil {
		return err
	}

	g, err := am.Load(path)
	if err != nil {
		return err
	}
	if err := g.Configure(cfg.Geometry); err != nil {
		return err
	}
	if err := gs.Register(g.Name, g, true); err != nil {
		return err
	}

	ctx, destroy, err := newContext(opts.backend)
	if err != nil {
		return err
	}
	defer destroy()
	defer gs.Release(g.Name, ctx)

	if err := process(g, opts); err != nil {
		return err
	}
	if err := report(g, ctx, out); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-sigCh:
			return nil
		case <-ticker.C:
			n, err := am.ProcessReloads()
			if err != nil {
				core.LogWarn("%s", err)
			}
			if n == 0 {
				continue
			}
			if err := process(g, opts); err != nil {
				core.LogWarn("%s", err)
			}
			if err := report(g, ctx, out); err != nil {
				core.LogWarn("%s", err)
			}
		}
	}
}

// newContext creates the rendering context for backend and the function that
// tears it down once every geometry released its buffers.
func newContext(backend string) (renderer.Context, func(), error) {
	if backend != "vulkan" {
		return headless.New(), func() {}, nil
	}
	if err := vulkan.InitLoader(); err != nil {
		return nil, nil, err
	}
	device, err := vulkan.NewDevice("animageo")
	if err != nil {
		return nil, nil, err
	}
	bc := vulkan.NewBufferContext(device)
	return bc, func() {
		bc.Destroy()
		device.Destroy()
	}, nil
}

func process(g *geometry.StaticGeometry, opts options) error {
	if opts.unique {
		g.GenerateUniqueVertex()
	}
	switch opts.normals {
	case "vertex":
		g.GenerateVertexNormals()
	case "face":
		g.GenerateFaceNormals()
	}
	if opts.tangents {
		if err := g.GenerateTangents(); err != nil {
			if errors.Is(err, core.ErrMissingNormals) {
				return fmt.Errorf("%w (use -normals)", err)
			}
			return err
		}
	}
	if opts.barycentric {
		g.GenerateBarycentric()
	}
	return nil
}

func report(g *geometry.StaticGeometry, ctx renderer.Context, out io.Writer) error {
	chunks, err := g.GetBufferChunks(ctx)
	if err != nil {
		return err
	}
	box := g.UpdateBoundingBox()

	fmt.Fprintf(out, "geometry:   %s\n", g.Name)
	fmt.Fprintf(out, "vertices:   %d\n", g.VertexCount())
	fmt.Fprintf(out, "faces:      %d\n", g.FaceCount())
	fmt.Fprintf(out, "attributes: %s\n", strings.Join(g.EnabledAttributes(), ", "))
	fmt.Fprintf(out, "bounds:     min %v max %v\n", box.Min, box.Max)

	size, buffers := uint64(0), 0
	for _, chunk := range chunks {
		for _, a := range chunk.Attributes {
			fmt.Fprintf(out, "  buffer %-3d %-12s %d x %s[%d]\n", a.Buffer, a.Name, g.VertexCount(), a.Type, a.Size)
			size += uint64(g.VertexCount()) * uint64(a.Size) * uint64(a.Type.Size())
			buffers++
		}
		if chunk.Indices != nil {
			fmt.Fprintf(out, "  buffer %-3d %-12s %d\n", chunk.Indices.Buffer, "indices", chunk.Indices.Count)
			size += uint64(chunk.Indices.Count) * 4
			buffers++
		}
	}
	fmt.Fprintf(out, "buffers:    %d bytes in %d buffers\n", size, buffers)
	return nil
}
