// mansion - Walk around a tiny flat-shaded world
// Renders a ghost, a sheep and a lawn with a painter's-algorithm software
// rasterizer, in the terminal, in a window, or to an image file.
//
// Controls:
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Left/Right  - Turn
//	Up/Down     - Look up/down
//	Esc         - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/mansion/internal/config"
	"github.com/taigrr/mansion/internal/game"
	"github.com/taigrr/mansion/internal/logger"
	"github.com/taigrr/mansion/internal/window"
	"github.com/taigrr/mansion/pkg/render"
)

func main() {
	cfg, _, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// The terminal viewer owns the screen, so it only logs to a file.
	terminal := !cfg.Display.Window && cfg.Snapshot == "" && !cfg.SaveConfig
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, !terminal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch {
	case cfg.SaveConfig:
		err = saveConfig(cfg)
	case cfg.Snapshot != "":
		err = snapshot(cfg)
	case cfg.Display.Window:
		err = runWindow(cfg)
	default:
		err = runTerminal(cfg)
	}
	if err != nil {
		logger.Log.Error("exiting", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// saveConfig writes the merged settings so later runs start from them.
func saveConfig(cfg *config.Config) error {
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	logger.Sugar.Infof("config written to %s", config.Path())
	return nil
}

// snapshot renders the opening frame to cfg.Snapshot.
func snapshot(cfg *config.Config) error {
	w, h := cfg.Display.Width, cfg.Display.Height
	g, err := game.New(cfg, w, h, logger.Named("game"))
	if err != nil {
		return err
	}

	fb := render.NewFramebuffer(w, h)
	g.Draw(fb)
	if err := fb.Save(cfg.Snapshot, cfg.Display.Scale); err != nil {
		return err
	}

	st := g.Renderer.Stats
	logger.Log.Info("snapshot written",
		zap.String("path", cfg.Snapshot),
		zap.Int("faces", st.FacesDrawn),
		zap.Int("culled", st.FacesCulled),
		zap.Int("skipped", st.FacesSkipped),
	)
	return nil
}

func runWindow(cfg *config.Config) error {
	logger.Sugar.Infof("opening %dx%d window", cfg.Display.Width*cfg.Display.Scale, cfg.Display.Height*cfg.Display.Scale)
	g, err := game.New(cfg, cfg.Display.Width, cfg.Display.Height, logger.Named("game"))
	if err != nil {
		return err
	}
	return window.Run(g, cfg, logger.Named("window"))
}

func runTerminal(cfg *config.Config) error {
	log := logger.Named("terminal")

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	g, err := game.New(cfg, fbWidth, fbHeight, logger.Named("game"))
	if err != nil {
		term.Shutdown(context.Background())
		return err
	}
	hud := NewHUD()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var keys game.Keys
	resized := make(chan uv.WindowSizeEvent, 1)

	// Event handler. Resizes are handed to the frame loop, which owns the
	// framebuffer and renderer.
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-resized:
				default:
				}
				resized <- ev

			case uv.KeyPressEvent:
				if ev.MatchString("escape", "ctrl+c") {
					cancel()
					return
				}
				for name, action := range game.Bindings {
					if ev.MatchString(name) {
						keys.Press(action, time.Now())
					}
				}

			case uv.KeyReleaseEvent:
				for name, action := range game.Bindings {
					if ev.MatchString(name) {
						keys.Release(action)
					}
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.Display.FPS)
	lastFrame := time.Now()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		case ev := <-resized:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			fbWidth, fbHeight = termRenderer.FramebufferSize()
			fb = render.NewFramebuffer(fbWidth, fbHeight)
			if err := g.Resize(fbWidth, fbHeight); err != nil {
				cleanup()
				return err
			}
			log.Debug("resized", zap.Int("cols", width), zap.Int("rows", height))
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		g.Update(dt, keys.Input(now))
		g.Draw(fb)

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		if cfg.Game.ShowFPS {
			hud.Render(g.Renderer.Stats)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
