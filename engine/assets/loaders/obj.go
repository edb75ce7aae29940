package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spaghettifunk/animageo/engine/core"
	"github.com/spaghettifunk/animageo/engine/math"
	"github.com/spaghettifunk/animageo/engine/renderer/metadata"
)

// OBJLoader reads Wavefront OBJ meshes into a *metadata.GeometryConfig.
type OBJLoader struct{}

// objCorner identifies one face corner. Missing references are -1.
type objCorner struct {
	position, texcoord, normal int
}

type objParser struct {
	name string
	line int

	positions []math.Vec3
	texcoords []math.Vec2
	normals   []math.Vec3

	config  *metadata.GeometryConfig
	corners map[objCorner]uint32
}

func (ol *OBJLoader) Load(path string) (*metadata.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		core.LogError("failed to open mesh file %s: %s", path, err)
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	config, err := ol.Parse(f, name)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	var size uint64
	if s, err := f.Stat(); err == nil {
		size = uint64(s.Size())
	}

	return &metadata.Resource{
		Type:     metadata.ResourceTypeMesh,
		Name:     config.Name,
		FullPath: path,
		DataSize: size,
		Data:     config,
	}, nil
}

func (ol *OBJLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return fmt.Errorf("%w: resource is nil", core.ErrUnknown)
	}
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

/**
 * @brief Parses an OBJ stream. Polygons are fan triangulated, negative
 * indices count back from the last element read so far, and every distinct
 * position/texcoord/normal triple becomes one vertex. Texture coordinates and
 * normals are flagged only when the faces reference them.
 *
 * @param r The OBJ text.
 * @param name The geometry name used when the file has no "o" record.
 * @return The geometry configuration, or an error wrapping core.ErrParse.
 */
func (ol *OBJLoader) Parse(r io.Reader, name string) (*metadata.GeometryConfig, error) {
	p := &objParser{
		name:    name,
		config:  &metadata.GeometryConfig{Name: name},
		corners: make(map[objCorner]uint32),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := p.record(fields[0], fields[1:]); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", core.ErrParse, p.name, err)
	}
	if len(p.config.Indices) == 0 {
		return nil, fmt.Errorf("%w: %s: no faces", core.ErrParse, p.name)
	}
	if len(p.config.Name) == 0 {
		p.config.Name = metadata.DefaultGeometryName
	}

	core.LogDebug("obj %s: %d vertices, %d triangles", p.config.Name, len(p.config.Vertices), len(p.config.Indices)/3)
	return p.config, nil
}

func (p *objParser) record(keyword string, args []string) error {
	switch keyword {
	case "v":
		v, err := p.floats(args, 3, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, math.NewVec3(v[0], v[1], v[2]))
	case "vt":
		v, err := p.floats(args, 1, 2)
		if err != nil {
			return err
		}
		p.texcoords = append(p.texcoords, math.NewVec2(v[0], v[1]))
	case "vn":
		v, err := p.floats(args, 3, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, math.NewVec3(v[0], v[1], v[2]))
	case "f":
		return p.face(args)
	case "o":
		if len(args) > 0 && len(p.config.Vertices) == 0 {
			p.config.Name = strings.Join(args, " ")
		}
	case "g", "s", "usemtl", "mtllib", "l", "p":
		// Grouping, smoothing and materials have no meaning for a single geometry.
	default:
		core.LogDebug("obj %s:%d: unsupported record %q ignored", p.name, p.line, keyword)
	}
	return nil
}

// floats parses at least required and keeps up to keep values, padding with zero.
func (p *objParser) floats(args []string, required, keep int) ([]float32, error) {
	if len(args) < required {
		return nil, p.errorf("expected %d values, got %d", required, len(args))
	}
	out := make([]float32, keep)
	for i := 0; i < keep && i < len(args); i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, p.errorf("invalid number %q", args[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (p *objParser) face(args []string) error {
	if len(args) < 3 {
		return p.errorf("face needs at least 3 vertices, got %d", len(args))
	}
	polygon := make([]uint32, len(args))
	for i, arg := range args {
		corner, err := p.corner(arg)
		if err != nil {
			return err
		}
		polygon[i] = p.vertex(corner)
	}
	for i := 1; i+1 < len(polygon); i++ {
		p.config.Indices = append(p.config.Indices, polygon[0], polygon[i], polygon[i+1])
	}
	return nil
}

// corner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (p *objParser) corner(arg string) (objCorner, error) {
	parts := strings.Split(arg, "/")
	if len(parts) > 3 {
		return objCorner{}, p.errorf("invalid face vertex %q", arg)
	}
	c := objCorner{position: -1, texcoord: -1, normal: -1}

	var err error
	if c.position, err = p.index(parts[0], len(p.positions), arg); err != nil {
		return c, err
	}
	if len(parts) > 1 && len(parts[1]) > 0 {
		if c.texcoord, err = p.index(parts[1], len(p.texcoords), arg); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && len(parts[2]) > 0 {
		if c.normal, err = p.index(parts[2], len(p.normals), arg); err != nil {
			return c, err
		}
	}
	return c, nil
}

// index resolves a 1-based or negative relative OBJ index to a 0-based one.
func (p *objParser) index(s string, count int, arg string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, p.errorf("invalid index in face vertex %q", arg)
	}
	if i < 0 {
		i = count + i
	} else {
		i--
	}
	if i < 0 || i >= count {
		return -1, p.errorf("index out of range in face vertex %q", arg)
	}
	return i, nil
}

func (p *objParser) vertex(c objCorner) uint32 {
	if idx, ok := p.corners[c]; ok {
		return idx
	}
	v := math.Vertex3D{Position: p.positions[c.position]}
	if c.texcoord >= 0 {
		v.Texcoord = p.texcoords[c.texcoord]
		p.config.HasTexcoords = true
	}
	if c.normal >= 0 {
		v.Normal = p.normals[c.normal]
		p.config.HasNormals = true
	}
	idx := uint32(len(p.config.Vertices))
	p.config.Vertices = append(p.config.Vertices, v)
	p.corners[c] = idx
	return idx
}

func (p *objParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s:%d: %s", core.ErrParse, p.name, p.line, fmt.Sprintf(format, args...))
}
