package scene

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/taigrr/mansion/pkg/math3d"
)

// ErrFaceIndex is returned when a face references a vertex that does not exist.
var ErrFaceIndex = errors.New("face index out of range")

// Face is a triangle given as three indices into a mesh's vertex buffer.
type Face [3]int

// Mesh is an Object with triangle geometry and a single flat diffuse color.
//
// Geometry is only changed through SetVertices, SetFaces and SetGeometry,
// which recompute the homogeneous vertices and face normals immediately, so
// the derived data always matches the latest assignment.
type Mesh struct {
	Object

	Name         string
	Diffuse      color.RGBA // Base color for every face
	RenderBehind bool       // Always sorted furthest away (ground, backdrops)

	vertices    []math3d.Vec3
	vertices4   []math3d.Vec4
	faces       []Face
	faceNormals []math3d.Vec4
	degenerate  []bool
}

// NewMesh creates a mesh from model-space vertices and faces.
func NewMesh(name string, vertices []math3d.Vec3, faces []Face, diffuse color.RGBA) (*Mesh, error) {
	m := &Mesh{
		Object:  NewObject(),
		Name:    name,
		Diffuse: diffuse,
	}
	if err := m.SetGeometry(vertices, faces); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}
	return m, nil
}

// Vertices returns the model-space vertex buffer. Callers must not modify it.
func (m *Mesh) Vertices() []math3d.Vec3 {
	return m.vertices
}

// Vertices4 returns the vertex buffer lifted to homogeneous points (w=1).
func (m *Mesh) Vertices4() []math3d.Vec4 {
	return m.vertices4
}

// Faces returns the face list. Callers must not modify it.
func (m *Mesh) Faces() []Face {
	return m.faces
}

// FaceNormals returns one unit normal per face as a direction (w=0).
// Degenerate faces have a zero normal.
func (m *Mesh) FaceNormals() []math3d.Vec4 {
	return m.faceNormals
}

// DegenerateFace reports whether face i has no usable normal (its edges are
// parallel or it has zero area).
func (m *Mesh) DegenerateFace(i int) bool {
	return m.degenerate[i]
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.faces)
}

// Empty reports whether the mesh has nothing to draw.
func (m *Mesh) Empty() bool {
	return len(m.vertices) == 0 || len(m.faces) == 0
}

// SetVertices replaces the vertex buffer. Existing faces must still be in
// range; otherwise the mesh is left unchanged and ErrFaceIndex is returned.
func (m *Mesh) SetVertices(vertices []math3d.Vec3) error {
	return m.SetGeometry(vertices, m.faces)
}

// SetFaces replaces the face list and recomputes the face normals.
func (m *Mesh) SetFaces(faces []Face) error {
	return m.SetGeometry(m.vertices, faces)
}

// SetGeometry replaces vertices and faces together.
func (m *Mesh) SetGeometry(vertices []math3d.Vec3, faces []Face) error {
	if err := validateFaces(faces, len(vertices)); err != nil {
		return err
	}

	m.vertices = append([]math3d.Vec3(nil), vertices...)
	m.vertices4 = make([]math3d.Vec4, len(vertices))
	for i, v := range vertices {
		m.vertices4[i] = math3d.Point(v)
	}

	m.faces = append([]Face(nil), faces...)
	m.computeNormals()
	return nil
}

// Validate checks that every face indexes an existing vertex and that the
// derived data is in step with the geometry.
func (m *Mesh) Validate() error {
	if len(m.faceNormals) != len(m.faces) || len(m.vertices4) != len(m.vertices) {
		return fmt.Errorf("mesh %q: derived geometry out of date", m.Name)
	}
	if err := validateFaces(m.faces, len(m.vertices)); err != nil {
		return fmt.Errorf("mesh %q: %w", m.Name, err)
	}
	return nil
}

func validateFaces(faces []Face, n int) error {
	for i, f := range faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face %d uses vertex %d of %d", ErrFaceIndex, i, idx, n)
			}
		}
	}
	return nil
}

// computeNormals derives normalize(cross(v0-v1, v2-v1)) for every face.
// The sign follows the source winding.
func (m *Mesh) computeNormals() {
	m.faceNormals = make([]math3d.Vec4, len(m.faces))
	m.degenerate = make([]bool, len(m.faces))

	for i, f := range m.faces {
		v0, v1, v2 := m.vertices[f[0]], m.vertices[f[1]], m.vertices[f[2]]
		n, ok := v0.Sub(v1).Cross(v2.Sub(v1)).NormalizeOK()
		m.faceNormals[i] = math3d.Direction(n)
		m.degenerate[i] = !ok
	}
}

// Bounds returns the model-space axis-aligned bounding box.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.vertices) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}

	min, max = m.vertices[0], m.vertices[0]
	for _, v := range m.vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}

// Center returns the center of the model-space bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	min, max := m.Bounds()
	return min.Add(max).Scale(0.5)
}

// Size returns the dimensions of the model-space bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	min, max := m.Bounds()
	return max.Sub(min)
}

// Clone creates an independent copy that shares no slices with m.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Object:       m.Object,
		Name:         m.Name,
		Diffuse:      m.Diffuse,
		RenderBehind: m.RenderBehind,
		vertices:     append([]math3d.Vec3(nil), m.vertices...),
		vertices4:    append([]math3d.Vec4(nil), m.vertices4...),
		faces:        append([]Face(nil), m.faces...),
		faceNormals:  append([]math3d.Vec4(nil), m.faceNormals...),
		degenerate:   append([]bool(nil), m.degenerate...),
	}
	return clone
}
