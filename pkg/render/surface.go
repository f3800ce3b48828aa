package render

import "github.com/taigrr/mansion/pkg/math3d"

// Surface is a 2D pixel target the renderer draws filled polygons on.
// Points are in pixels with the origin at the top-left corner.
type Surface interface {
	Size() (width, height int)
	Clear(c Color)
	FillPolygon(points []math3d.Vec2, c Color)
}

// LineDrawer is implemented by surfaces that can also draw outlines.
type LineDrawer interface {
	DrawLine(a, b math3d.Vec2, c Color)
}
