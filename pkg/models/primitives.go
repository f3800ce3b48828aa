package models

import (
	"fmt"
	"image/color"

	"github.com/taigrr/mansion/pkg/math3d"
	"github.com/taigrr/mansion/pkg/scene"
)

// All primitives wind counter-clockwise when seen from outside, the same
// convention OBJ and glTF files use.

// Triangle returns the unit test triangle (-1,-1,0), (1,-1,0), (0,1,0),
// facing +Z.
func Triangle(diffuse color.RGBA) *scene.Mesh {
	return mustMesh("triangle",
		[]math3d.Vec3{math3d.V3(-1, -1, 0), math3d.V3(1, -1, 0), math3d.V3(0, 1, 0)},
		[]scene.Face{{0, 1, 2}},
		diffuse,
	)
}

// Box returns an axis-aligned box of the given size centered on the origin.
func Box(size math3d.Vec3, diffuse color.RGBA) *scene.Mesh {
	h := size.Scale(0.5)
	vertices := []math3d.Vec3{
		math3d.V3(-h.X, -h.Y, -h.Z), math3d.V3(h.X, -h.Y, -h.Z),
		math3d.V3(h.X, h.Y, -h.Z), math3d.V3(-h.X, h.Y, -h.Z),
		math3d.V3(-h.X, -h.Y, h.Z), math3d.V3(h.X, -h.Y, h.Z),
		math3d.V3(h.X, h.Y, h.Z), math3d.V3(-h.X, h.Y, h.Z),
	}
	faces := []scene.Face{
		{4, 5, 6}, {4, 6, 7}, // +Z
		{1, 0, 3}, {1, 3, 2}, // -Z
		{5, 1, 2}, {5, 2, 6}, // +X
		{0, 4, 7}, {0, 7, 3}, // -X
		{7, 6, 2}, {7, 2, 3}, // +Y
		{0, 1, 5}, {0, 5, 4}, // -Y
	}
	return mustMesh("box", vertices, faces, diffuse)
}

// Cube returns a box with equal sides.
func Cube(size float64, diffuse color.RGBA) *scene.Mesh {
	return Box(math3d.V3(size, size, size), diffuse)
}

// Plane returns a horizontal quad in the XZ plane facing +Y.
func Plane(width, depth float64, diffuse color.RGBA) *scene.Mesh {
	w, d := width/2, depth/2
	return mustMesh("plane",
		[]math3d.Vec3{math3d.V3(-w, 0, d), math3d.V3(w, 0, d), math3d.V3(w, 0, -d), math3d.V3(-w, 0, -d)},
		[]scene.Face{{0, 1, 2}, {0, 2, 3}},
		diffuse,
	)
}

// Grid returns a Plane split into cells x cells quads. Small faces let the
// all-or-nothing face cull keep most of a large floor on screen.
func Grid(width, depth float64, cells int, diffuse color.RGBA) *scene.Mesh {
	cells = max(cells, 1)
	n := cells + 1
	vertices := make([]math3d.Vec3, 0, n*n)
	for row := range n {
		z := depth/2 - depth*float64(row)/float64(cells)
		for col := range n {
			x := -width/2 + width*float64(col)/float64(cells)
			vertices = append(vertices, math3d.V3(x, 0, z))
		}
	}

	faces := make([]scene.Face, 0, cells*cells*2)
	for row := range cells {
		for col := range cells {
			i := row*n + col
			// Same winding as Plane: rows run toward -Z.
			faces = append(faces, scene.Face{i, i + 1, i + n + 1}, scene.Face{i, i + n + 1, i + n})
		}
	}
	return mustMesh("grid", vertices, faces, diffuse)
}

// Part places a mesh's geometry inside a merged model.
type Part struct {
	Mesh      *scene.Mesh
	Transform math3d.Mat4
}

// Merge bakes each part's transform into its vertices and joins them into
// one mesh with a single diffuse color.
func Merge(name string, diffuse color.RGBA, parts ...Part) (*scene.Mesh, error) {
	var (
		vertices []math3d.Vec3
		faces    []scene.Face
	)
	for _, p := range parts {
		base := len(vertices)
		for _, v := range p.Mesh.Vertices() {
			vertices = append(vertices, p.Transform.MulVec3(v))
		}
		for _, f := range p.Mesh.Faces() {
			faces = append(faces, scene.Face{f[0] + base, f[1] + base, f[2] + base})
		}
	}
	return scene.NewMesh(name, vertices, faces, diffuse)
}

func mustMesh(name string, vertices []math3d.Vec3, faces []scene.Face, diffuse color.RGBA) *scene.Mesh {
	m, err := scene.NewMesh(name, vertices, faces, diffuse)
	if err != nil {
		panic(fmt.Sprintf("models: primitive %s: %v", name, err))
	}
	return m
}
