// Package scene holds the objects a renderer draws: a transformable Object
// and the Mesh that embeds it.
package scene

import (
	"math"

	"github.com/taigrr/mansion/pkg/math3d"
)

// MinScaleRatio is the smallest ratio between an object's smallest and
// largest scale magnitudes. A flatter object has a model matrix that cannot
// be inverted. Uniformly tiny objects are fine.
const MinScaleRatio = 1e-9

// Object is anything with a place in the world: meshes, the camera, the
// player. Fields are mutated in place by game logic between frames, and
// every matrix is derived from them on demand.
type Object struct {
	Position math3d.Vec3 // World units
	Rotation math3d.Vec3 // Euler angles in degrees, applied Z, then Y, then X
	Scale    math3d.Vec3 // Per-axis scale factors
}

// NewObject creates an object at the origin with unit scale.
func NewObject() Object {
	return Object{Scale: math3d.One3()}
}

// TranslationMatrix returns T(Position).
func (o *Object) TranslationMatrix() math3d.Mat4 {
	return math3d.Translate(o.Position)
}

// RotationMatrix returns Rz·Ry·Rx for the current rotation.
func (o *Object) RotationMatrix() math3d.Mat4 {
	return math3d.RotateZDeg(o.Rotation.Z).
		Mul(math3d.RotateYDeg(o.Rotation.Y)).
		Mul(math3d.RotateXDeg(o.Rotation.X))
}

// ScaleMatrix returns S(Scale).
func (o *Object) ScaleMatrix() math3d.Mat4 {
	return math3d.Scale(o.Scale)
}

// ModelMatrix returns T·R·S, taking model space to world space.
func (o *Object) ModelMatrix() math3d.Mat4 {
	return o.TranslationMatrix().Mul(o.RotationMatrix()).Mul(o.ScaleMatrix())
}

// Forward returns the object's local -Z axis in world space. Only the
// rotation applies; position and scale do not change a direction.
func (o *Object) Forward() math3d.Vec3 {
	return o.RotationMatrix().MulVec4(math3d.Direction(math3d.Forward())).Vec3()
}

// Degenerate reports whether any scale component is too close to zero,
// relative to the others, for the model matrix to be invertible.
func (o *Object) Degenerate() bool {
	largest := o.Scale.MaxAbs()
	if largest == 0 || math.IsNaN(largest) || math.IsInf(largest, 0) {
		return true
	}
	return o.Scale.MinAbs() < MinScaleRatio*largest
}
