// Package models loads mesh geometry from model files and builds simple
// procedural meshes.
package models

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/mansion/pkg/math3d"
	"github.com/taigrr/mansion/pkg/scene"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported model format")

var defaultDiffuse = color.RGBA{255, 255, 255, 255}

// Load reads a mesh, picking the loader from the file extension.
func Load(path string) (*scene.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("%w: %s (use .obj, .glb or .gltf)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadOBJ loads a Wavefront OBJ file. Polygons are triangulated as fans.
// The diffuse color is the Kd of the first material in the referenced
// material library, or white when there is none.
func LoadOBJ(path string) (*scene.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	obj, err := parseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	diffuse := defaultDiffuse
	for _, lib := range obj.mtllibs {
		kd, ok, err := loadMTLDiffuse(filepath.Join(filepath.Dir(path), lib))
		if err != nil {
			return nil, err
		}
		if ok {
			diffuse = kd
			break
		}
	}

	mesh, err := scene.NewMesh(filepath.Base(path), obj.vertices, obj.faces, diffuse)
	if err != nil {
		return nil, fmt.Errorf("build mesh: %w", err)
	}
	return mesh, nil
}

type objData struct {
	vertices []math3d.Vec3
	faces    []scene.Face
	mtllibs  []string
}

func parseOBJ(r io.Reader) (*objData, error) {
	obj := &objData{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			obj.vertices = append(obj.vertices, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := parseVertexRef(ref, len(obj.vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				idx = append(idx, i)
			}
			for i := 1; i+1 < len(idx); i++ {
				obj.faces = append(obj.faces, scene.Face{idx[0], idx[i], idx[i+1]})
			}
		case "mtllib":
			obj.mtllibs = append(obj.mtllibs, fields[1:]...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseVertexRef resolves the position part of "v", "v/vt", "v//vn" or
// "v/vt/vn". OBJ indices are 1-based; negative ones count back from the
// last vertex read so far.
func parseVertexRef(ref string, count int) (int, error) {
	pos, _, _ := strings.Cut(ref, "/")
	n, err := strconv.Atoi(pos)
	if err != nil {
		return 0, fmt.Errorf("bad vertex reference %q: %w", ref, err)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return count + n, nil
	default:
		return 0, fmt.Errorf("bad vertex reference %q: index 0", ref)
	}
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("bad number %q: %w", fields[i], err)
		}
		c[i] = v
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// loadMTLDiffuse returns the Kd of the first material in a .mtl file.
func loadMTLDiffuse(path string) (color.RGBA, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return color.RGBA{}, false, nil
		}
		return color.RGBA{}, false, fmt.Errorf("open mtl: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != "Kd" {
			continue
		}
		kd, err := parseVec3(fields[1:])
		if err != nil {
			return color.RGBA{}, false, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		return unitColor(kd.X, kd.Y, kd.Z), true, nil
	}
	return color.RGBA{}, false, sc.Err()
}

// unitColor converts 0–1 channels to an opaque color.
func unitColor(r, g, b float64) color.RGBA {
	return color.RGBA{
		R: uint8(math3d.Clamp(r, 0, 1)*255 + 0.5),
		G: uint8(math3d.Clamp(g, 0, 1)*255 + 0.5),
		B: uint8(math3d.Clamp(b, 0, 1)*255 + 0.5),
		A: 255,
	}
}
