// Package window runs the game in a desktop window using ebiten.
package window

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/taigrr/mansion/internal/config"
	"github.com/taigrr/mansion/internal/game"
)

// KeyBindings maps keyboard keys to player actions.
var KeyBindings = map[ebiten.Key]game.Action{
	ebiten.KeyW:          game.MoveForward,
	ebiten.KeyS:          game.MoveBack,
	ebiten.KeyA:          game.StrafeLeft,
	ebiten.KeyD:          game.StrafeRight,
	ebiten.KeyArrowLeft:  game.TurnLeft,
	ebiten.KeyArrowRight: game.TurnRight,
	ebiten.KeyArrowUp:    game.LookUp,
	ebiten.KeyArrowDown:  game.LookDown,
}

// Host adapts a game.Game to ebiten.Game. The renderer draws at the
// configured resolution and ebiten scales it up to the window.
type Host struct {
	game    *game.Game
	cfg     *config.Config
	log     *zap.Logger
	keys    game.Keys
	surface *Surface

	// pressed reports whether a key is held.
	pressed func(ebiten.Key) bool
}

// NewHost creates a host for g.
func NewHost(g *game.Game, cfg *config.Config, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{
		game:    g,
		cfg:     cfg,
		log:     log,
		pressed: ebiten.IsKeyPressed,
	}
}

// Update advances the game one tick. Escape ends the run.
func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.log.Info("escape pressed, closing window")
		return ebiten.Termination
	}
	dt := 1 / float64(ebiten.TPS())
	h.game.Update(dt, h.input(time.Now()))
	return nil
}

// input polls the bound keys.
func (h *Host) input(now time.Time) game.Input {
	for key, action := range KeyBindings {
		if h.pressed(key) {
			h.keys.Press(action, now)
		} else {
			h.keys.Release(action)
		}
	}
	return h.keys.Input(now)
}

// Draw renders the current frame onto screen.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.surface == nil {
		h.surface = NewSurface(screen)
	} else {
		h.surface.SetTarget(screen)
	}
	h.game.Draw(h.surface)

	if h.cfg.Game.ShowFPS {
		st := h.game.Renderer.Stats
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%.0f FPS %d faces", ebiten.ActualFPS(), st.FacesDrawn))
	}
}

// Layout returns the fixed render resolution.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.cfg.Display.Width, h.cfg.Display.Height
}

// Run opens the window and blocks until it is closed.
func Run(g *game.Game, cfg *config.Config, log *zap.Logger) error {
	d := cfg.Display
	ebiten.SetWindowSize(d.Width*d.Scale, d.Height*d.Scale)
	ebiten.SetWindowTitle("mansion")
	ebiten.SetTPS(d.FPS)

	if err := ebiten.RunGame(NewHost(g, cfg, log)); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
