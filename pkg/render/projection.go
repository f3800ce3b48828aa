package render

import (
	"fmt"

	"github.com/taigrr/mansion/pkg/math3d"
)

// Projection describes the perspective frustum of the renderer.
type Projection struct {
	FOV  float64 // Vertical field of view in degrees
	Near float64 // Near clipping plane
	Far  float64 // Far clipping plane
}

// DefaultProjection returns a 60° field of view with near 0.01 and far 100.
func DefaultProjection() Projection {
	return Projection{FOV: 60, Near: 0.01, Far: 100}
}

// Matrix returns the perspective matrix for the given aspect ratio
// (width / height).
func (p Projection) Matrix(aspect float64) math3d.Mat4 {
	return math3d.Perspective(math3d.Radians(p.FOV), aspect, p.Near, p.Far)
}

// ToScreen maps NDC x,y in [-1,1] to pixel coordinates. NDC y points up
// while screen y grows downward.
func ToScreen(ndc math3d.Vec3, width, height int) math3d.Vec2 {
	return math3d.V2(
		(ndc.X+1)*float64(width)/2,
		(1-ndc.Y)*float64(height)/2,
	)
}

// insideNDC reports whether p lies in the [-1,1] cube, boundary included.
func insideNDC(p math3d.Vec3) bool {
	const lim = 1 + ndcEpsilon
	return p.X >= -lim && p.X <= lim &&
		p.Y >= -lim && p.Y <= lim &&
		p.Z >= -lim && p.Z <= lim
}

// Validate reports settings that cannot form a perspective frustum.
func (p Projection) Validate() error {
	switch {
	case p.FOV <= 0 || p.FOV >= 180:
		return fmt.Errorf("field of view %v must be in (0, 180)", p.FOV)
	case p.Near <= 0:
		return fmt.Errorf("near plane %v must be positive", p.Near)
	case p.Near >= p.Far:
		return fmt.Errorf("near plane %v must be closer than far plane %v", p.Near, p.Far)
	}
	return nil
}
