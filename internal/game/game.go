// Package game is the small world the renderer was built for: a ghost, a
// sheep and a lawn, seen through the eyes of a player who doubles as the
// camera.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/mansion/internal/config"
	"github.com/taigrr/mansion/pkg/render"
)

// Game ties the scene to a renderer.
type Game struct {
	Scene    *Scene
	Renderer *render.Renderer

	cfg *config.Config
	log *zap.Logger
}

// New builds the scene and a renderer of width x height pixels.
func New(cfg *config.Config, width, height int, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s, err := NewScene(cfg.Game, cfg.Display.FPS, log)
	if err != nil {
		return nil, err
	}
	g := &Game{Scene: s, cfg: cfg, log: log}
	if err := g.Resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Resize replaces the renderer with one for a width x height surface. The
// projection depends on the aspect ratio, so it cannot be patched in place.
func (g *Game) Resize(width, height int) error {
	opts, err := g.cfg.Render.Options()
	if err != nil {
		return fmt.Errorf("render options: %w", err)
	}
	opts = append(opts, render.WithLogger(g.log.Named("render")))

	r, err := render.New(width, height, opts...)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	r.MinAmbient = g.cfg.Render.MinAmbient
	if g.cfg.Render.Outline {
		outline := render.ColorBlack
		r.Outline = &outline
	}
	if err := r.AddMesh(g.Scene.Meshes()...); err != nil {
		return err
	}
	r.Camera = &g.Scene.Player.Object

	g.Renderer = r
	g.log.Debug("renderer ready",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("cull", r.CullMode),
		zap.Stringer("depth", r.DepthMode),
	)
	return nil
}

// Update advances the world by dt seconds.
func (g *Game) Update(dt float64, in Input) {
	g.Scene.Update(dt, in)
}

// Draw renders the current frame onto s.
func (g *Game) Draw(s render.Surface) {
	g.Renderer.Render(s)
}
