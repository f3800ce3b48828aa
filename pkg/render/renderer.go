package render

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/mansion/pkg/math3d"
	"github.com/taigrr/mansion/pkg/scene"
)

// ndcEpsilon widens the [-1,1] cube so vertices exactly on a face of it
// survive rounding.
const ndcEpsilon = 1e-9

// DefaultMinAmbient is the lighting floor for faces turned away from the light.
const DefaultMinAmbient = 0.1

var (
	// ErrInvalidRenderer is returned by New for unusable settings.
	ErrInvalidRenderer = errors.New("invalid renderer settings")
	// ErrNilMesh is returned by AddMesh for a nil mesh.
	ErrNilMesh = errors.New("nil mesh")
)

// CullMode selects the per-face visibility test.
type CullMode int

const (
	// CullNDC keeps a face only if all three vertices land inside the NDC cube.
	CullNDC CullMode = iota
	// CullBackface keeps a face only if its normal faces the camera.
	CullBackface
	// CullBoth applies both tests.
	CullBoth
	// CullNone keeps every face with valid vertices.
	CullNone
)

var cullModeNames = []string{"ndc", "backface", "both", "none"}

func (m CullMode) String() string {
	if m < 0 || int(m) >= len(cullModeNames) {
		return fmt.Sprintf("CullMode(%d)", int(m))
	}
	return cullModeNames[m]
}

// ParseCullMode converts a name such as "ndc" or "backface" into a CullMode.
func ParseCullMode(s string) (CullMode, error) {
	if i := slices.Index(cullModeNames, strings.ToLower(s)); i >= 0 {
		return CullMode(i), nil
	}
	return CullNDC, fmt.Errorf("unknown cull mode %q", s)
}

// DepthMode selects the painter's sort key.
type DepthMode int

const (
	// DepthNDC sorts by the average post-divide z of the face.
	DepthNDC DepthMode = iota
	// DepthDistance sorts by the distance from the face centroid to the camera.
	DepthDistance
)

var depthModeNames = []string{"ndc", "distance"}

func (m DepthMode) String() string {
	if m < 0 || int(m) >= len(depthModeNames) {
		return fmt.Sprintf("DepthMode(%d)", int(m))
	}
	return depthModeNames[m]
}

// ParseDepthMode converts "ndc" or "distance" into a DepthMode.
func ParseDepthMode(s string) (DepthMode, error) {
	if i := slices.Index(depthModeNames, strings.ToLower(s)); i >= 0 {
		return DepthMode(i), nil
	}
	return DepthNDC, fmt.Errorf("unknown depth mode %q", s)
}

// DrawCall is one shaded face ready to be filled, in screen pixels.
type DrawCall struct {
	Points  [3]math3d.Vec2
	Color   Color
	Depth   float64 // Sort key; larger is farther
	Lambert float64 // Light factor in [MinAmbient, 1]
	Behind  bool    // From a RenderBehind mesh
	Mesh    int     // Index into the mesh list passed to Frame
	Face    int     // Index into the mesh's faces
}

// Stats counts what happened during the last frame.
type Stats struct {
	MeshesTested  int // Meshes considered
	MeshesCulled  int // Rejected by the frustum bounds test
	MeshesSkipped int // Invalid or degenerate meshes
	FacesDrawn    int
	FacesCulled   int // Rejected by the cull mode
	FacesSkipped  int // Degenerate normal or vertex on/behind the eye plane
}

// Renderer turns meshes into back-to-front ordered, flat-shaded polygons.
// It is not safe for concurrent use; mutate meshes and the camera between
// frames.
type Renderer struct {
	width, height int
	projection    Projection
	proj          math3d.Mat4
	light         math3d.Vec3
	meshes        []*scene.Mesh

	Camera     *scene.Object // Current viewpoint
	Background Color
	CullMode   CullMode
	DepthMode  DepthMode
	MinAmbient float64
	Outline    *Color // Edge color, drawn when the surface is a LineDrawer
	Stats      Stats

	log *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProjection sets the field of view and clip planes.
func WithProjection(p Projection) Option {
	return func(r *Renderer) { r.projection = p }
}

// WithLight sets the direction the light travels in world space.
func WithLight(dir math3d.Vec3) Option {
	return func(r *Renderer) { r.light = dir }
}

// WithBackground sets the clear color.
func WithBackground(c Color) Option {
	return func(r *Renderer) { r.Background = c }
}

// WithCullMode sets the visibility test.
func WithCullMode(m CullMode) Option {
	return func(r *Renderer) { r.CullMode = m }
}

// WithDepthMode sets the sort key.
func WithDepthMode(m DepthMode) Option {
	return func(r *Renderer) { r.DepthMode = m }
}

// WithLogger sets the logger used for skipped meshes and frame warnings.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a renderer for a width x height surface. The projection
// matrix and light direction are fixed for the renderer's lifetime.
func New(width, height int, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		width:      width,
		height:     height,
		projection: DefaultProjection(),
		light:      math3d.V3(0, -1, 0),
		Background: ColorGray,
		MinAmbient: DefaultMinAmbient,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidRenderer, width, height)
	}
	if err := r.projection.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRenderer, err)
	}
	light, ok := r.light.NormalizeOK()
	if !ok {
		return nil, fmt.Errorf("%w: light direction %v has no length", ErrInvalidRenderer, r.light)
	}
	r.light = light
	r.proj = r.projection.Matrix(float64(width) / float64(height))
	return r, nil
}

// Size returns the screen size the renderer projects to.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Projection returns the projection settings.
func (r *Renderer) Projection() Projection {
	return r.projection
}

// ProjectionMatrix returns the perspective matrix.
func (r *Renderer) ProjectionMatrix() math3d.Mat4 {
	return r.proj
}

// Light returns the unit light direction.
func (r *Renderer) Light() math3d.Vec3 {
	return r.light
}

// AddMesh validates meshes and appends them to the draw list. Nothing is
// added if any of them is invalid.
func (r *Renderer) AddMesh(meshes ...*scene.Mesh) error {
	for _, m := range meshes {
		if m == nil {
			return fmt.Errorf("add mesh: %w", ErrNilMesh)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("add mesh: %w", err)
		}
	}
	r.meshes = append(r.meshes, meshes...)
	return nil
}

// RemoveMesh removes m from the draw list and reports whether it was there.
func (r *Renderer) RemoveMesh(m *scene.Mesh) bool {
	i := slices.Index(r.meshes, m)
	if i < 0 {
		return false
	}
	r.meshes = slices.Delete(r.meshes, i, i+1)
	return true
}

// Meshes returns the draw list. Callers must not modify it.
func (r *Renderer) Meshes() []*scene.Mesh {
	return r.meshes
}

// ClearMeshes empties the draw list.
func (r *Renderer) ClearMeshes() {
	r.meshes = nil
}

// Render draws the renderer's own meshes from its camera.
func (r *Renderer) Render(s Surface) {
	r.RenderScene(s, r.meshes, r.Camera)
}

// RenderScene clears s to the background and paints the visible faces of
// meshes back to front.
func (r *Renderer) RenderScene(s Surface, meshes []*scene.Mesh, camera *scene.Object) {
	calls := r.Frame(meshes, camera)

	s.Clear(r.Background)
	lines, _ := s.(LineDrawer)
	for i := range calls {
		dc := &calls[i]
		s.FillPolygon(dc.Points[:], dc.Color)
		if r.Outline != nil && lines != nil {
			for e := range 3 {
				lines.DrawLine(dc.Points[e], dc.Points[(e+1)%3], *r.Outline)
			}
		}
	}
}

// Frame runs the pipeline without drawing: it returns the visible faces of
// meshes as seen from camera, sorted back to front. Frame does not modify
// the meshes or the camera, so identical state yields identical output.
func (r *Renderer) Frame(meshes []*scene.Mesh, camera *scene.Object) []DrawCall {
	r.Stats = Stats{}

	if camera == nil {
		r.log.Warn("frame has no camera")
		return nil
	}
	view, ok := camera.ModelMatrix().InverseOK()
	if !ok {
		r.log.Warn("camera matrix is singular", zap.Any("scale", camera.Scale))
		return nil
	}
	viewProj := r.proj.Mul(view)
	frustum := NewFrustumFromMatrix(viewProj)

	var calls []DrawCall
	for mi, m := range meshes {
		if m == nil || m.Empty() {
			continue
		}
		r.Stats.MeshesTested++

		if m.Degenerate() {
			r.Stats.MeshesSkipped++
			r.log.Debug("mesh skipped", zap.String("mesh", m.Name), zap.String("reason", "degenerate scale"))
			continue
		}
		if err := m.Validate(); err != nil {
			r.Stats.MeshesSkipped++
			r.log.Warn("mesh skipped", zap.String("mesh", m.Name), zap.Error(err))
			continue
		}
		if !frustum.IntersectAABB(WorldBounds(m)) {
			r.Stats.MeshesCulled++
			continue
		}

		calls = r.appendMesh(calls, mi, m, view, viewProj, camera.Position)
	}

	slices.SortStableFunc(calls, func(a, b DrawCall) int {
		if a.Behind != b.Behind {
			if a.Behind {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Depth, a.Depth)
	})
	r.Stats.FacesDrawn = len(calls)
	return calls
}

// appendMesh transforms, culls and shades the faces of one mesh.
func (r *Renderer) appendMesh(calls []DrawCall, mi int, m *scene.Mesh, view, viewProj math3d.Mat4, eye math3d.Vec3) []DrawCall {
	model := m.ModelMatrix()
	mvp := viewProj.Mul(model)
	modelView := view.Mul(model)
	rotation := m.RotationMatrix()
	viewRotation := view.Mul(rotation)

	verts := m.Vertices4()
	ndc := make([]math3d.Vec3, len(verts))
	valid := make([]bool, len(verts))
	for i, v := range verts {
		ndc[i], valid[i] = mvp.MulVec4(v).PerspectiveDivide()
	}

	normals := m.FaceNormals()
	for fi, f := range m.Faces() {
		if m.DegenerateFace(fi) || !valid[f[0]] || !valid[f[1]] || !valid[f[2]] {
			r.Stats.FacesSkipped++
			continue
		}
		a, b, c := ndc[f[0]], ndc[f[1]], ndc[f[2]]
		n := normals[fi]

		if r.CullMode == CullNDC || r.CullMode == CullBoth {
			if !insideNDC(a) || !insideNDC(b) || !insideNDC(c) {
				r.Stats.FacesCulled++
				continue
			}
		}
		if r.CullMode == CullBackface || r.CullMode == CullBoth {
			centroid := modelView.MulVec3(faceCentroid(m, f))
			if viewRotation.MulVec4(n).Vec3().Dot(centroid) <= 0 {
				r.Stats.FacesCulled++
				continue
			}
		}

		worldNormal, ok := rotation.MulVec4(n).Vec3().NormalizeOK()
		if !ok {
			r.Stats.FacesSkipped++
			continue
		}
		lambert := Lambert(worldNormal, r.light, r.MinAmbient)

		var depth float64
		switch r.DepthMode {
		case DepthDistance:
			depth = model.MulVec3(faceCentroid(m, f)).Distance(eye)
		default:
			depth = (a.Z + b.Z + c.Z) / 3
		}

		calls = append(calls, DrawCall{
			Points: [3]math3d.Vec2{
				ToScreen(a, r.width, r.height),
				ToScreen(b, r.width, r.height),
				ToScreen(c, r.width, r.height),
			},
			Color:   Shade(m.Diffuse, lambert),
			Depth:   depth,
			Lambert: lambert,
			Behind:  m.RenderBehind,
			Mesh:    mi,
			Face:    fi,
		})
	}
	return calls
}

func faceCentroid(m *scene.Mesh, f scene.Face) math3d.Vec3 {
	v := m.Vertices()
	return v[f[0]].Add(v[f[1]]).Add(v[f[2]]).Scale(1.0 / 3)
}
