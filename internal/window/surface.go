package window

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/taigrr/mansion/pkg/math3d"
	"github.com/taigrr/mansion/pkg/render"
)

// Surface draws renderer output onto an ebiten image.
type Surface struct {
	target *ebiten.Image
	white  *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewSurface wraps target. The target may be swapped each frame with
// SetTarget.
func NewSurface(target *ebiten.Image) *Surface {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Surface{
		target: target,
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// SetTarget changes the image drawn on.
func (s *Surface) SetTarget(target *ebiten.Image) {
	s.target = target
}

// Size returns the target's size in pixels.
func (s *Surface) Size() (width, height int) {
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole target with c.
func (s *Surface) Clear(c render.Color) {
	s.target.Fill(c)
}

// FillPolygon fills a convex polygon as a triangle fan.
func (s *Surface) FillPolygon(points []math3d.Vec2, c render.Color) {
	s.vertices, s.indices = fanVertices(s.vertices[:0], s.indices[:0], points, c)
	if len(s.indices) == 0 {
		return
	}
	// Flat fills must not blend at shared edges.
	op := &ebiten.DrawTrianglesOptions{AntiAlias: false}
	s.target.DrawTriangles(s.vertices, s.indices, s.white, op)
}

// DrawLine strokes a one pixel line from a to b.
func (s *Surface) DrawLine(a, b math3d.Vec2, c render.Color) {
	vector.StrokeLine(s.target, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, c, false)
}

// fanVertices appends the vertices and indices of a triangle fan over
// points. Fewer than three points yield nothing.
func fanVertices(vertices []ebiten.Vertex, indices []uint16, points []math3d.Vec2, c render.Color) ([]ebiten.Vertex, []uint16) {
	if len(points) < 3 {
		return vertices, indices
	}

	cr := float32(c.R) / 255
	cg := float32(c.G) / 255
	cb := float32(c.B) / 255
	ca := float32(c.A) / 255

	for _, p := range points {
		vertices = append(vertices, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 2; i < len(points); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}
	return vertices, indices
}
