package render

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/taigrr/mansion/pkg/math3d"
	"github.com/taigrr/mansion/pkg/models"
	"github.com/taigrr/mansion/pkg/scene"
)

// recorder is a Surface that remembers every call.
type recorder struct {
	w, h    int
	cleared []Color
	fills   [][]math3d.Vec2
	colors  []Color
	lines   int
}

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) Clear(c Color)    { r.cleared = append(r.cleared, c) }
func (r *recorder) FillPolygon(pts []math3d.Vec2, c Color) {
	r.fills = append(r.fills, slices.Clone(pts))
	r.colors = append(r.colors, c)
}
func (r *recorder) DrawLine(a, b math3d.Vec2, c Color) { r.lines++ }

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(80, 60, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

// cameraAt returns a camera at pos looking down -Z.
func cameraAt(pos math3d.Vec3) *scene.Object {
	cam := scene.NewObject()
	cam.Position = pos
	return &cam
}

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		opts   []Option
		wantOK bool
	}{
		{"defaults", 80, 60, nil, true},
		{"zero width", 0, 60, nil, false},
		{"negative height", 80, -1, nil, false},
		{"zero light", 80, 60, []Option{WithLight(math3d.Zero3())}, false},
		{"fov too wide", 80, 60, []Option{WithProjection(Projection{FOV: 180, Near: 1, Far: 2})}, false},
		{"near behind eye", 80, 60, []Option{WithProjection(Projection{FOV: 60, Near: 0, Far: 2})}, false},
		{"near past far", 80, 60, []Option{WithProjection(Projection{FOV: 60, Near: 5, Far: 2})}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.w, tc.h, tc.opts...)
			if tc.wantOK && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.wantOK && !errors.Is(err, ErrInvalidRenderer) {
				t.Fatalf("got %v, want ErrInvalidRenderer", err)
			}
		})
	}
}

func TestNewNormalizesLight(t *testing.T) {
	r := newTestRenderer(t, WithLight(math3d.V3(0, -3, 4)))
	if !r.Light().ApproxEqual(math3d.V3(0, -0.6, 0.8), 1e-12) {
		t.Errorf("light = %v, want (0,-0.6,0.8)", r.Light())
	}
}

func TestParseModes(t *testing.T) {
	for _, m := range []CullMode{CullNDC, CullBackface, CullBoth, CullNone} {
		got, err := ParseCullMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseCullMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	for _, m := range []DepthMode{DepthNDC, DepthDistance} {
		got, err := ParseDepthMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseDepthMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseCullMode("frustum"); err == nil {
		t.Error("expected error for unknown cull mode")
	}
	if _, err := ParseDepthMode("zbuffer"); err == nil {
		t.Error("expected error for unknown depth mode")
	}
}

func TestSingleTriangle(t *testing.T) {
	tri := models.Triangle(RGB(200, 200, 200))
	camera := cameraAt(math3d.V3(0, 0, 5))

	t.Run("light along -Y grazes the face", func(t *testing.T) {
		// The face normal is (0,0,-1), perpendicular to the light, so the
		// factor sits exactly on the ambient floor.
		r := newTestRenderer(t, WithLight(math3d.V3(0, -1, 0)))
		calls := r.Frame([]*scene.Mesh{tri}, camera)
		if len(calls) != 1 {
			t.Fatalf("got %d draw calls, want 1", len(calls))
		}
		if calls[0].Lambert != DefaultMinAmbient {
			t.Errorf("lambert = %v, want %v", calls[0].Lambert, DefaultMinAmbient)
		}
		if calls[0].Color != RGB(20, 20, 20) {
			t.Errorf("color = %v, want 20,20,20", calls[0].Color)
		}
	})

	t.Run("tilted light", func(t *testing.T) {
		r := newTestRenderer(t, WithLight(math3d.V3(0, -1, -1)))
		calls := r.Frame([]*scene.Mesh{tri}, camera)
		if len(calls) != 1 {
			t.Fatalf("got %d draw calls, want 1", len(calls))
		}
		l := calls[0].Lambert
		if l <= DefaultMinAmbient || l >= 1 {
			t.Errorf("lambert = %v, want strictly inside (%v, 1)", l, DefaultMinAmbient)
		}
		if want := math.Sqrt(0.5); math.Abs(l-want) > 1e-9 {
			t.Errorf("lambert = %v, want %v", l, want)
		}

		var cx float64
		for _, p := range calls[0].Points {
			cx += p.X / 3
		}
		if math.Abs(cx-40) > 1 {
			t.Errorf("triangle centroid x = %v, want about 40", cx)
		}
	})

	t.Run("drawn to a framebuffer", func(t *testing.T) {
		r := newTestRenderer(t, WithLight(math3d.V3(0, -1, -1)))
		r.Camera = camera
		if err := r.AddMesh(tri); err != nil {
			t.Fatal(err)
		}
		fb := NewFramebuffer(80, 60)
		r.Render(fb)

		shaded := Shade(RGB(200, 200, 200), math.Sqrt(0.5))
		if got := fb.GetPixel(40, 30); got != shaded {
			t.Errorf("center pixel = %v, want %v", got, shaded)
		}
		if got := fb.GetPixel(0, 0); got != r.Background {
			t.Errorf("corner pixel = %v, want background %v", got, r.Background)
		}
		if r.Stats.FacesDrawn != 1 {
			t.Errorf("FacesDrawn = %d, want 1", r.Stats.FacesDrawn)
		}
	})
}

func TestLambertClamp(t *testing.T) {
	light := math3d.V3(0.3, -1, -0.3).Normalize()
	normals := []math3d.Vec3{
		math3d.V3(0, 1, 0), math3d.V3(0, -1, 0), math3d.V3(1, 0, 0),
		math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), light, light.Negate(),
		math3d.V3(1, 1, 1).Normalize(),
	}

	for _, minAmbient := range []float64{0, DefaultMinAmbient, 0.5} {
		for _, n := range normals {
			got := Lambert(n, light, minAmbient)
			if got < minAmbient || got > 1 {
				t.Errorf("Lambert(%v, %v) = %v, want in [%v, 1]", n, minAmbient, got, minAmbient)
			}
		}
	}
	if got := Lambert(light, light, 0.1); math.Abs(got-1) > 1e-12 {
		t.Errorf("aligned normal = %v, want 1", got)
	}
	if got := Lambert(light.Negate(), light, 0.1); got != 0.1 {
		t.Errorf("opposed normal = %v, want 0.1", got)
	}
}

func TestLambertUsesRotationOnly(t *testing.T) {
	r := newTestRenderer(t, WithLight(math3d.V3(0, 0, -1)), WithCullMode(CullNone))
	tri := models.Triangle(ColorWhite)
	tri.Position = math3d.V3(3, -2, -10)
	tri.Scale = math3d.V3(5, 0.5, 2)
	tri.Rotation = math3d.V3(0, 180, 0)

	calls := r.Frame([]*scene.Mesh{tri}, cameraAt(math3d.Zero3()))
	if len(calls) != 1 {
		t.Fatalf("got %d draw calls, want 1", len(calls))
	}
	// The rotated normal is (0,0,1), pointing against the light.
	if calls[0].Lambert != DefaultMinAmbient {
		t.Errorf("lambert = %v, want %v", calls[0].Lambert, DefaultMinAmbient)
	}
}

func TestRenderBehindOverride(t *testing.T) {
	r := newTestRenderer(t)
	camera := cameraAt(math3d.Zero3())

	front := models.Triangle(ColorWhite)
	front.Position = math3d.V3(0, 0, -5)
	ground := models.Triangle(ColorGrass)
	ground.Position = math3d.V3(0, 0, -5)
	ground.RenderBehind = true

	calls := r.Frame([]*scene.Mesh{front, ground}, camera)
	if len(calls) != 2 {
		t.Fatalf("got %d draw calls, want 2", len(calls))
	}
	if calls[0].Mesh != 1 || !calls[0].Behind {
		t.Errorf("first draw call from mesh %d, want the render-behind mesh", calls[0].Mesh)
	}

	// Still drawn first when it is actually nearer.
	ground.Position = math3d.V3(0, 0, -2)
	front.Position = math3d.V3(0, 0, -8)
	calls = r.Frame([]*scene.Mesh{front, ground}, camera)
	if len(calls) != 2 || calls[0].Mesh != 1 {
		t.Fatalf("render-behind mesh not drawn first: %+v", calls)
	}
	if calls[0].Depth >= calls[1].Depth {
		t.Errorf("expected the render-behind face to be nearer (%v vs %v)", calls[0].Depth, calls[1].Depth)
	}
}

func TestProjectionMonotonicity(t *testing.T) {
	for _, mode := range []DepthMode{DepthNDC, DepthDistance} {
		t.Run(mode.String(), func(t *testing.T) {
			r := newTestRenderer(t, WithDepthMode(mode))
			camera := cameraAt(math3d.V3(1, 2, 3))

			var meshes []*scene.Mesh
			for _, d := range []float64{2, 4, 8, 16} {
				m := models.Triangle(ColorWhite)
				m.Scale = math3d.V3(0.2, 0.2, 0.2)
				m.Position = camera.Position.Add(camera.Forward().Scale(d))
				meshes = append(meshes, m)
			}

			calls := r.Frame(meshes, camera)
			if len(calls) != len(meshes) {
				t.Fatalf("got %d draw calls, want %d", len(calls), len(meshes))
			}
			// Farthest first.
			for i, dc := range calls {
				if want := len(meshes) - 1 - i; dc.Mesh != want {
					t.Errorf("call %d from mesh %d, want %d", i, dc.Mesh, want)
				}
				if i > 0 && dc.Depth >= calls[i-1].Depth {
					t.Errorf("depth not strictly decreasing: %v after %v", dc.Depth, calls[i-1].Depth)
				}
			}
		})
	}
}

func TestNDCBoundsBoundaryInclusive(t *testing.T) {
	r := newTestRenderer(t)
	camera := cameraAt(math3d.V3(2, 1, -3))
	camera.Rotation = math3d.V3(10, 35, 0)

	// Map the corners of the NDC cube back into the world.
	view := camera.ModelMatrix().Inverse()
	inv, ok := r.ProjectionMatrix().Mul(view).InverseOK()
	if !ok {
		t.Fatal("view-projection not invertible")
	}
	// Same corner order as models.Box, so its faces can be reused.
	box := models.Cube(2, ColorWhite)
	var corners []math3d.Vec3
	for _, c := range box.Vertices() {
		p, ok := inv.MulVec4(math3d.Point(c)).PerspectiveDivide()
		if !ok {
			t.Fatalf("corner %v did not unproject", c)
		}
		corners = append(corners, p)
	}

	m, err := scene.NewMesh("frustum", corners, box.Faces(), ColorWhite)
	if err != nil {
		t.Fatal(err)
	}

	calls := r.Frame([]*scene.Mesh{m}, camera)
	if len(calls) != m.TriangleCount() {
		t.Fatalf("kept %d of %d boundary faces (stats %+v)", len(calls), m.TriangleCount(), r.Stats)
	}
	for _, dc := range calls {
		for _, p := range dc.Points {
			if p.X < -1e-6 || p.X > 80+1e-6 || p.Y < -1e-6 || p.Y > 60+1e-6 {
				t.Errorf("point %v outside the screen", p)
			}
		}
	}

	// Pushed slightly outward, the far corners fall outside the cube.
	m.Scale = math3d.V3(1.01, 1.01, 1.01)
	m.Position = camera.Position.Scale(-0.01)
	if calls := r.Frame([]*scene.Mesh{m}, camera); len(calls) == m.TriangleCount() {
		t.Error("scaled frustum mesh should lose faces to the NDC test")
	}
}

func TestPartialFaceCulledWhole(t *testing.T) {
	r := newTestRenderer(t)
	tri := models.Triangle(ColorWhite)
	tri.Position = math3d.V3(0, 0, -5)
	tri.Scale = math3d.V3(20, 1, 1) // pokes past both sides of the view

	if calls := r.Frame([]*scene.Mesh{tri}, cameraAt(math3d.Zero3())); len(calls) != 0 {
		t.Fatalf("got %d draw calls, want 0", len(calls))
	}
	if r.Stats.FacesCulled != 1 {
		t.Errorf("FacesCulled = %d, want 1", r.Stats.FacesCulled)
	}

	r.CullMode = CullNone
	if calls := r.Frame([]*scene.Mesh{tri}, cameraAt(math3d.Zero3())); len(calls) != 1 {
		t.Fatalf("CullNone: got %d draw calls, want 1", len(calls))
	}
}

func TestBackfaceCull(t *testing.T) {
	cube := models.Cube(1, ColorWhite)
	cube.Position = math3d.V3(0, 0, -5)
	camera := cameraAt(math3d.Zero3())

	tests := []struct {
		mode CullMode
		want int
	}{
		{CullNDC, 12},
		{CullBackface, 2},
		{CullBoth, 2},
		{CullNone, 12},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			r := newTestRenderer(t, WithCullMode(tc.mode))
			calls := r.Frame([]*scene.Mesh{cube}, camera)
			if len(calls) != tc.want {
				t.Fatalf("got %d faces, want %d", len(calls), tc.want)
			}
			if tc.mode == CullBackface {
				for _, dc := range calls {
					if dc.Face > 1 {
						t.Errorf("kept face %d, want only the +Z faces", dc.Face)
					}
				}
			}
		})
	}
}

func TestBackfaceKeepsFrontTriangle(t *testing.T) {
	r := newTestRenderer(t, WithCullMode(CullBackface))
	if calls := r.Frame([]*scene.Mesh{models.Triangle(ColorWhite)}, cameraAt(math3d.V3(0, 0, 5))); len(calls) != 1 {
		t.Fatalf("front triangle culled")
	}
	if calls := r.Frame([]*scene.Mesh{models.Triangle(ColorWhite)}, cameraAt(math3d.V3(0, 0, -5))); len(calls) != 0 {
		// Camera at -5 still looks down -Z, so the triangle is behind it.
		t.Fatalf("triangle behind the camera drawn")
	}

	behind := scene.NewObject()
	behind.Position = math3d.V3(0, 0, -5)
	behind.Rotation = math3d.V3(0, 180, 0)
	if calls := r.Frame([]*scene.Mesh{models.Triangle(ColorWhite)}, &behind); len(calls) != 0 {
		t.Fatalf("back of the triangle drawn")
	}
}

func TestVertexBehindEyeSkipsFace(t *testing.T) {
	r := newTestRenderer(t, WithCullMode(CullNone))
	m, err := scene.NewMesh("spanning",
		[]math3d.Vec3{math3d.V3(-1, 0, -5), math3d.V3(1, 0, -5), math3d.V3(0, 0, 5)},
		[]scene.Face{{0, 1, 2}}, ColorWhite)
	if err != nil {
		t.Fatal(err)
	}
	m.Position = math3d.V3(0, -1, 0)

	calls := r.Frame([]*scene.Mesh{m}, cameraAt(math3d.Zero3()))
	if len(calls) != 0 {
		t.Fatalf("got %d draw calls, want 0", len(calls))
	}
	if r.Stats.FacesSkipped != 1 {
		t.Errorf("FacesSkipped = %d, want 1", r.Stats.FacesSkipped)
	}
}

func TestDegenerateInputs(t *testing.T) {
	camera := cameraAt(math3d.V3(0, 0, 5))

	t.Run("zero scale mesh", func(t *testing.T) {
		r := newTestRenderer(t)
		flat := models.Triangle(ColorWhite)
		flat.Scale = math3d.V3(1, 0, 1)
		ok := models.Triangle(ColorWhite)

		calls := r.Frame([]*scene.Mesh{flat, ok}, camera)
		if len(calls) != 1 || calls[0].Mesh != 1 {
			t.Fatalf("got %+v, want only mesh 1", calls)
		}
		if r.Stats.MeshesSkipped != 1 {
			t.Errorf("MeshesSkipped = %d, want 1", r.Stats.MeshesSkipped)
		}
	})

	t.Run("uniformly tiny mesh is drawn", func(t *testing.T) {
		r := newTestRenderer(t)
		tiny := models.Triangle(ColorWhite)
		tiny.Scale = math3d.V3(1e-10, 1e-10, 1e-10)

		calls := r.Frame([]*scene.Mesh{tiny}, camera)
		if len(calls) != 1 {
			t.Fatalf("got %d calls, want 1", len(calls))
		}
		if r.Stats.MeshesSkipped != 0 {
			t.Errorf("MeshesSkipped = %d, want 0", r.Stats.MeshesSkipped)
		}
	})

	t.Run("collinear face", func(t *testing.T) {
		r := newTestRenderer(t)
		m, err := scene.NewMesh("sliver",
			[]math3d.Vec3{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
			[]scene.Face{{0, 1, 2}, {0, 2, 3}}, ColorWhite)
		if err != nil {
			t.Fatal(err)
		}
		calls := r.Frame([]*scene.Mesh{m}, camera)
		if len(calls) != 1 || calls[0].Face != 1 {
			t.Fatalf("got %+v, want only face 1", calls)
		}
		for _, p := range calls[0].Points {
			if !p.IsFinite() {
				t.Errorf("non-finite point %v", p)
			}
		}
		if r.Stats.FacesSkipped != 1 {
			t.Errorf("FacesSkipped = %d, want 1", r.Stats.FacesSkipped)
		}
	})

	t.Run("empty mesh", func(t *testing.T) {
		r := newTestRenderer(t)
		empty, err := scene.NewMesh("empty", nil, nil, ColorWhite)
		if err != nil {
			t.Fatal(err)
		}
		calls := r.Frame([]*scene.Mesh{empty, nil}, camera)
		if len(calls) != 0 || r.Stats != (Stats{}) {
			t.Fatalf("empty mesh produced %d calls, stats %+v", len(calls), r.Stats)
		}
	})

	t.Run("singular camera", func(t *testing.T) {
		r := newTestRenderer(t)
		cam := cameraAt(math3d.V3(0, 0, 5))
		cam.Scale = math3d.Zero3()
		if err := r.AddMesh(models.Triangle(ColorWhite)); err != nil {
			t.Fatal(err)
		}
		r.Camera = cam

		rec := &recorder{w: 80, h: 60}
		r.Render(rec)
		if len(rec.fills) != 0 || len(rec.cleared) != 1 {
			t.Fatalf("got %d fills and %d clears, want background only", len(rec.fills), len(rec.cleared))
		}
	})

	t.Run("no camera", func(t *testing.T) {
		r := newTestRenderer(t)
		if calls := r.Frame([]*scene.Mesh{models.Triangle(ColorWhite)}, nil); calls != nil {
			t.Fatalf("got %d calls without a camera", len(calls))
		}
	})
}

func TestMeshOutsideFrustumCulled(t *testing.T) {
	r := newTestRenderer(t)
	m := models.Cube(1, ColorWhite)
	m.Position = math3d.V3(0, 0, 10) // behind the camera

	if calls := r.Frame([]*scene.Mesh{m}, cameraAt(math3d.Zero3())); len(calls) != 0 {
		t.Fatalf("got %d draw calls, want 0", len(calls))
	}
	if r.Stats.MeshesCulled != 1 || r.Stats.FacesCulled != 0 {
		t.Errorf("stats = %+v, want one mesh culled before face tests", r.Stats)
	}
}

func TestIdempotence(t *testing.T) {
	r := newTestRenderer(t, WithLight(math3d.V3(0.3, -1, -0.3)))
	r.Camera = cameraAt(math3d.V3(0, 1, 6))
	r.Camera.Rotation = math3d.V3(-5, 10, 0)

	ground := models.Plane(20, 20, ColorGrass)
	ground.RenderBehind = true
	cube := models.Cube(1, RGB(200, 50, 50))
	cube.Rotation = math3d.V3(20, 30, 0)
	box := models.Box(math3d.V3(1, 2, 0.5), RGB(50, 50, 200))
	box.Position = math3d.V3(1.5, 0, -1)
	if err := r.AddMesh(ground, cube, box); err != nil {
		t.Fatal(err)
	}

	first := r.Frame(r.Meshes(), r.Camera)
	second := r.Frame(r.Meshes(), r.Camera)
	if len(first) == 0 {
		t.Fatal("nothing visible")
	}
	if !slices.Equal(first, second) {
		t.Fatal("two frames over unchanged state differ")
	}

	a, b := &recorder{w: 80, h: 60}, &recorder{w: 80, h: 60}
	r.Render(a)
	r.Render(b)
	if !slices.Equal(a.colors, b.colors) || len(a.fills) != len(b.fills) {
		t.Fatal("draw sequences differ")
	}
	for i := range a.fills {
		if !slices.Equal(a.fills[i], b.fills[i]) {
			t.Fatalf("fill %d differs", i)
		}
	}

	fa, fb := NewFramebuffer(80, 60), NewFramebuffer(80, 60)
	r.Render(fa)
	r.Render(fb)
	if !slices.Equal(fa.Pixels, fb.Pixels) {
		t.Fatal("framebuffers differ")
	}
}

func TestCameraSwap(t *testing.T) {
	r := newTestRenderer(t)
	tri := models.Triangle(ColorWhite)
	if err := r.AddMesh(tri); err != nil {
		t.Fatal(err)
	}

	r.Camera = cameraAt(math3d.V3(0, 0, 5))
	near := r.Frame(r.Meshes(), r.Camera)
	r.Camera = cameraAt(math3d.V3(0, 0, 10))
	far := r.Frame(r.Meshes(), r.Camera)
	if len(near) != 1 || len(far) != 1 {
		t.Fatalf("got %d and %d calls", len(near), len(far))
	}

	width := func(dc DrawCall) float64 { return dc.Points[1].X - dc.Points[0].X }
	if width(far[0]) >= width(near[0]) {
		t.Errorf("farther camera should see a smaller triangle (%v vs %v)", width(far[0]), width(near[0]))
	}
}

func TestMeshList(t *testing.T) {
	r := newTestRenderer(t)
	a, b := models.Triangle(ColorWhite), models.Cube(1, ColorWhite)

	if err := r.AddMesh(a, nil); !errors.Is(err, ErrNilMesh) {
		t.Fatalf("AddMesh(nil) = %v, want ErrNilMesh", err)
	}
	if len(r.Meshes()) != 0 {
		t.Fatal("failed AddMesh must not add anything")
	}

	if err := r.AddMesh(a, b); err != nil {
		t.Fatal(err)
	}
	if !r.RemoveMesh(a) || r.RemoveMesh(a) {
		t.Error("RemoveMesh should succeed once")
	}
	if len(r.Meshes()) != 1 || r.Meshes()[0] != b {
		t.Errorf("meshes = %v, want [b]", r.Meshes())
	}
	r.ClearMeshes()
	if len(r.Meshes()) != 0 {
		t.Error("ClearMeshes left meshes behind")
	}
}

func TestOutline(t *testing.T) {
	r := newTestRenderer(t)
	r.Camera = cameraAt(math3d.V3(0, 0, 5))
	if err := r.AddMesh(models.Triangle(ColorWhite)); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{w: 80, h: 60}
	r.Render(rec)
	if rec.lines != 0 {
		t.Fatalf("drew %d lines without an outline color", rec.lines)
	}

	black := ColorBlack
	r.Outline = &black
	r.Render(rec)
	if rec.lines != 3 {
		t.Errorf("drew %d lines, want 3", rec.lines)
	}
}

func BenchmarkFrame(b *testing.B) {
	r, err := New(160, 96, WithLight(math3d.V3(0.3, -1, -0.3)))
	if err != nil {
		b.Fatal(err)
	}
	camera := cameraAt(math3d.V3(0, 2, 10))
	var meshes []*scene.Mesh
	for i := range 20 {
		m := models.Cube(1, ColorWhite)
		m.Position = math3d.V3(float64(i%5)*2-4, 0, -float64(i/5)*2)
		meshes = append(meshes, m)
	}

	for b.Loop() {
		_ = r.Frame(meshes, camera)
	}
}

func BenchmarkRenderFramebuffer(b *testing.B) {
	r, err := New(160, 96)
	if err != nil {
		b.Fatal(err)
	}
	r.Camera = cameraAt(math3d.V3(0, 0, 4))
	cube := models.Cube(2, ColorWhite)
	cube.Rotation = math3d.V3(30, 45, 0)
	if err := r.AddMesh(cube); err != nil {
		b.Fatal(err)
	}
	fb := NewFramebuffer(160, 96)

	for b.Loop() {
		r.Render(fb)
	}
}
