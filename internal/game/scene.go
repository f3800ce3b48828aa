package game

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/taigrr/mansion/internal/config"
	"github.com/taigrr/mansion/pkg/math3d"
	"github.com/taigrr/mansion/pkg/models"
	"github.com/taigrr/mansion/pkg/render"
	"github.com/taigrr/mansion/pkg/scene"
)

// GhostSpin is the ghost's turn rate in degrees per second.
const GhostSpin = 20

var (
	ghostColor = render.RGB(230, 230, 255)
	sheepColor = render.RGB(240, 240, 230)
)

// Scene is the demo world: a spinning ghost, a sheep and its lamb on a
// lawn.
type Scene struct {
	Ghost  *scene.Mesh
	Sheep  *scene.Mesh
	Lamb   *scene.Mesh // A smaller copy of Sheep
	Ground *scene.Mesh
	Player *Player

	Elapsed float64 // Seconds since the scene was built
}

// NewScene builds the world, loading replacement models when configured.
func NewScene(cfg config.GameConfig, fps int, log *zap.Logger) (*Scene, error) {
	ghost, err := loadOr(cfg.Ghost, newGhost, log)
	if err != nil {
		return nil, err
	}
	sheep, err := loadOr(cfg.Sheep, newSheep, log)
	if err != nil {
		return nil, err
	}

	ghost.Name = "ghost"
	ghost.Position = math3d.V3(0, 1.2, -6)
	sheep.Name = "sheep"
	sheep.Position = math3d.V3(2.5, 0.6, -3)
	sheep.Rotation = math3d.V3(0, 30, 0)

	lamb := sheep.Clone()
	lamb.Name = "lamb"
	lamb.Scale = math3d.V3(0.6, 0.6, 0.6)
	lamb.Position = math3d.V3(3.4, 0.36, -2.2)
	lamb.Rotation = math3d.V3(0, -20, 0)

	ground := models.Grid(40, 40, 20, render.ColorGrass)
	ground.Name = "ground"
	ground.RenderBehind = true

	return &Scene{
		Ghost:  ghost,
		Sheep:  sheep,
		Lamb:   lamb,
		Ground: ground,
		Player: NewPlayer(math3d.V3(0, 1.5, 4), cfg.MoveSpeed, cfg.TurnSpeed, fps),
	}, nil
}

// loadOr loads path if set and fits it to the built-in model's size,
// otherwise it returns the built-in model.
func loadOr(path string, builtin func() *scene.Mesh, log *zap.Logger) (*scene.Mesh, error) {
	fallback := builtin()
	if path == "" {
		return fallback, nil
	}

	m, err := models.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load scene model: %w", err)
	}
	if err := fitTo(m, fallback); err != nil {
		return nil, fmt.Errorf("fit %s: %w", path, err)
	}
	log.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
	return m, nil
}

// fitTo recenters m on the origin and scales it to ref's largest extent.
func fitTo(m, ref *scene.Mesh) error {
	size, refSize := m.Size(), ref.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim < math3d.Epsilon {
		return fmt.Errorf("model has no extent")
	}
	scale := math.Max(refSize.X, math.Max(refSize.Y, refSize.Z)) / maxDim
	center := m.Center()

	fitted := make([]math3d.Vec3, m.VertexCount())
	for i, v := range m.Vertices() {
		fitted[i] = v.Sub(center).Scale(scale)
	}
	return m.SetVertices(fitted)
}

// Meshes returns the draw list, ground first.
func (s *Scene) Meshes() []*scene.Mesh {
	return []*scene.Mesh{s.Ground, s.Ghost, s.Sheep, s.Lamb}
}

// Update advances the world by dt seconds.
func (s *Scene) Update(dt float64, in Input) {
	s.Elapsed += dt
	s.Ghost.Rotation.Y = math.Mod(s.Ghost.Rotation.Y+GhostSpin*dt, 360)
	// The ghost bobs gently.
	s.Ghost.Position.Y = 1.2 + 0.15*math.Sin(s.Elapsed*2)
	s.Player.Update(dt, in)
}

func newGhost() *scene.Mesh {
	body := models.Box(math3d.V3(1, 1.4, 0.8), ghostColor)
	head := models.Cube(0.8, ghostColor)
	tail := models.Box(math3d.V3(0.6, 0.4, 0.5), ghostColor)
	m, err := models.Merge("ghost", ghostColor,
		models.Part{Mesh: body, Transform: math3d.Identity()},
		models.Part{Mesh: head, Transform: math3d.Translate(math3d.V3(0, 1.0, 0))},
		models.Part{Mesh: tail, Transform: math3d.Translate(math3d.V3(0, -0.85, 0.2)).Mul(math3d.RotateXDeg(25))},
	)
	if err != nil {
		panic(err)
	}
	return m
}

func newSheep() *scene.Mesh {
	parts := []models.Part{
		{Mesh: models.Box(math3d.V3(0.6, 0.5, 1), sheepColor), Transform: math3d.Identity()},
		{Mesh: models.Cube(0.35, sheepColor), Transform: math3d.Translate(math3d.V3(0, 0.2, -0.6))},
	}
	for _, x := range []float64{-0.2, 0.2} {
		for _, z := range []float64{-0.35, 0.35} {
			parts = append(parts, models.Part{
				Mesh:      models.Box(math3d.V3(0.12, 0.4, 0.12), sheepColor),
				Transform: math3d.Translate(math3d.V3(x, -0.4, z)),
			})
		}
	}
	m, err := models.Merge("sheep", sheepColor, parts...)
	if err != nil {
		panic(err)
	}
	return m
}
