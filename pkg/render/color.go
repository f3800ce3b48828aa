package render

import (
	"image/color"

	"github.com/taigrr/mansion/pkg/math3d"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorGray  = color.RGBA{80, 80, 80, 255}
	ColorGrass = color.RGBA{34, 139, 34, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// Shade scales the RGB channels of c by intensity, clamping each channel
// to [0, 255]. Alpha is kept.
func Shade(c Color, intensity float64) Color {
	return Color{
		R: scaleChannel(c.R, intensity),
		G: scaleChannel(c.G, intensity),
		B: scaleChannel(c.B, intensity),
		A: c.A,
	}
}

func scaleChannel(v uint8, intensity float64) uint8 {
	return uint8(math3d.Clamp(float64(v)*intensity, 0, 255))
}

// Lambert returns the flat diffuse factor for a unit normal lit by a unit
// light direction, floored at minAmbient so unlit faces keep some color.
func Lambert(normal, lightDir math3d.Vec3, minAmbient float64) float64 {
	return math3d.Clamp(normal.Dot(lightDir), minAmbient, 1)
}
