// Package render turns scene meshes into flat-shaded polygons on a 2D
// surface: transform, cull, sort back to front, shade, draw.
package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/taigrr/mansion/pkg/math3d"
	"golang.org/x/image/draw"
)

// Framebuffer is a 2D array of pixels in memory. It implements Surface and
// LineDrawer.
type Framebuffer struct {
	Width  int     // Width in pixels
	Height int     // Height in pixels
	Pixels []Color // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.Width, fb.Height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// FillPolygon fills a convex polygon. The polygon is split into a triangle
// fan and each triangle is filled by sampling pixel centers, so shared
// edges between neighbours leave no gaps. There is no anti-aliasing.
func (fb *Framebuffer) FillPolygon(points []math3d.Vec2, c Color) {
	for i := 1; i+1 < len(points); i++ {
		fb.fillTriangle(points[0], points[i], points[i+1], c)
	}
}

// edgeCoeffs returns A, B, C for the edge function E(x,y) = A*x + B*y + C,
// which is zero on the line through p0 and p1.
func edgeCoeffs(p0, p1 math3d.Vec2) (a, b, c float64) {
	a = p0.Y - p1.Y
	b = p1.X - p0.X
	c = p0.X*p1.Y - p0.Y*p1.X
	return a, b, c
}

func (fb *Framebuffer) fillTriangle(p0, p1, p2 math3d.Vec2, c Color) {
	area := p1.Sub(p0).Cross(p2.Sub(p0))
	if math.Abs(area) < math3d.Epsilon || math.IsNaN(area) {
		return
	}
	// Orient counter-clockwise in screen space so inside is positive.
	if area < 0 {
		p1, p2 = p2, p1
	}

	minX := max(int(math.Floor(min(p0.X, p1.X, p2.X))), 0)
	maxX := min(int(math.Ceil(max(p0.X, p1.X, p2.X))), fb.Width-1)
	minY := max(int(math.Floor(min(p0.Y, p1.Y, p2.Y))), 0)
	maxY := min(int(math.Ceil(max(p0.Y, p1.Y, p2.Y))), fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	a0, b0, c0 := edgeCoeffs(p1, p2)
	a1, b1, c1 := edgeCoeffs(p2, p0)
	a2, b2, c2 := edgeCoeffs(p0, p1)

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		row := y * fb.Width
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			if a0*px+b0*py+c0 >= 0 && a1*px+b1*py+c1 >= 0 && a2*px+b2*py+c2 >= 0 {
				fb.Pixels[row+x] = c
			}
		}
	}
}

// DrawLine draws a line between two points using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(a, b math3d.Vec2, c Color) {
	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Floor(b.X)), int(math.Floor(b.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// Scaled returns the framebuffer enlarged by an integer factor with
// nearest-neighbour sampling, keeping hard polygon edges.
func (fb *Framebuffer) Scaled(factor int) *image.RGBA {
	src := fb.ToImage()
	if factor <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*factor, fb.Height*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Save writes the framebuffer, scaled by factor, as PNG or WebP depending
// on the file extension.
func (fb *Framebuffer) Save(path string, factor int) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".webp" {
		return fmt.Errorf("unsupported snapshot format %q (use .png or .webp)", ext)
	}
	img := fb.Scaled(factor)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	if ext == ".png" {
		err = png.Encode(f, img)
	} else {
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
