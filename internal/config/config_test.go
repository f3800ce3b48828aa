package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/taigrr/mansion/pkg/render"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if cfg.Render.FOV != 60 || cfg.Render.Near != 0.01 || cfg.Render.Far != 100 {
		t.Errorf("projection = %+v", cfg.Render.Projection())
	}
	if cfg.Render.BackgroundColor() != render.RGB(80, 80, 80) {
		t.Errorf("background = %v", cfg.Render.BackgroundColor())
	}
	if cfg.Render.Cull != "ndc" || cfg.Render.Depth != "ndc" {
		t.Errorf("modes = %s/%s, want ndc/ndc", cfg.Render.Cull, cfg.Render.Depth)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.LogFile != "" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
display:
  width: 320
  height: 200
  window: true

render:
  fov: 75
  cull: backface
  depth: distance
  light: [0, -1, 0]
  background: [10, 20, 30]

game:
  ghost: models/ghost.obj

logging:
  level: debug
  log_file: mansion.log
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Display.Width != 320 || cfg.Display.Height != 200 || !cfg.Display.Window {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.Display.FPS != 30 {
		t.Errorf("unset fps should keep default, got %d", cfg.Display.FPS)
	}
	if cfg.Render.FOV != 75 || cfg.Render.Cull != "backface" || cfg.Render.Depth != "distance" {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.Near != 0.01 {
		t.Errorf("unset near should keep default, got %v", cfg.Render.Near)
	}
	if cfg.Render.BackgroundColor() != render.RGB(10, 20, 30) {
		t.Errorf("background = %v", cfg.Render.BackgroundColor())
	}
	if cfg.Game.Ghost != "models/ghost.obj" {
		t.Errorf("ghost = %q", cfg.Game.Ghost)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "mansion.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadPriority(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "mansion.yaml")
	if err := os.WriteFile(path, []byte("display:\n  width: 320\n  height: 200\nrender:\n  cull: both\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, rest, err := Load([]string{"-config", path, "-width", "640", "-depth", "distance", "-debug", "-snapshot", "out.png", "extra"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Width != 640 {
		t.Errorf("flag should override file width, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 200 {
		t.Errorf("file should override default height, got %d", cfg.Display.Height)
	}
	if cfg.Render.Cull != "both" || cfg.Render.Depth != "distance" {
		t.Errorf("modes = %s/%s", cfg.Render.Cull, cfg.Render.Depth)
	}
	if cfg.Logging.Level != "debug" || cfg.Snapshot != "out.png" {
		t.Errorf("debug/snapshot not applied: %+v %q", cfg.Logging, cfg.Snapshot)
	}
	if len(rest) != 1 || rest[0] != "extra" {
		t.Errorf("rest = %v", rest)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, _, err := Load([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("expected error for missing config file")
	}
	if _, _, err := Load([]string{"-cull", "sideways"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}
	if _, _, err := Load([]string{"-nope"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"zero fps", func(c *Config) { c.Display.FPS = 0 }},
		{"zero scale", func(c *Config) { c.Display.Scale = 0 }},
		{"fov 0", func(c *Config) { c.Render.FOV = 0 }},
		{"fov 180", func(c *Config) { c.Render.FOV = 180 }},
		{"near past far", func(c *Config) { c.Render.Near = 200 }},
		{"negative near", func(c *Config) { c.Render.Near = -1 }},
		{"unknown cull", func(c *Config) { c.Render.Cull = "frustum" }},
		{"unknown depth", func(c *Config) { c.Render.Depth = "zbuffer" }},
		{"ambient above one", func(c *Config) { c.Render.MinAmbient = 1.5 }},
		{"zero light", func(c *Config) { c.Render.Light = [3]float64{} }},
		{"negative speed", func(c *Config) { c.Game.MoveSpeed = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("got %v, want ErrInvalid", err)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Render.Cull = "backface"
	cfg.Render.Depth = "distance"

	opts, err := cfg.Render.Options()
	if err != nil {
		t.Fatal(err)
	}
	r, err := render.New(cfg.Display.Width, cfg.Display.Height, opts...)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	if r.CullMode != render.CullBackface || r.DepthMode != render.DepthDistance {
		t.Errorf("modes = %v/%v", r.CullMode, r.DepthMode)
	}
	if r.Background != render.RGB(80, 80, 80) {
		t.Errorf("background = %v", r.Background)
	}
	if r.Projection() != cfg.Render.Projection() {
		t.Errorf("projection = %+v", r.Projection())
	}
}

func TestSaveConfigFlag(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir does not follow XDG_CONFIG_HOME here")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, _, err := Load([]string{"-save-config", "-fps", "24", "-cull", "none"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.SaveConfig {
		t.Fatal("-save-config not applied")
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("saved file: %v", err)
	}
	if strings.Contains(string(data), "save") {
		t.Errorf("command-line only fields leaked into the file:\n%s", data)
	}

	// The saved file is picked up on the next run without flags.
	reloaded, _, err := Load(nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Display.FPS != 24 || reloaded.Render.Cull != "none" || reloaded.SaveConfig {
		t.Errorf("reloaded display=%+v cull=%q save=%v", reloaded.Display, reloaded.Render.Cull, reloaded.SaveConfig)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.FOV = 90
	cfg.Game.Sheep = "sheep.glb"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Render.FOV != 90 || loaded.Game.Sheep != "sheep.glb" {
		t.Errorf("reloaded = %+v / %+v", loaded.Render, loaded.Game)
	}
}
