// Package config loads mansion settings: built-in defaults, then a YAML
// file, then command-line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/mansion/pkg/math3d"
	"github.com/taigrr/mansion/pkg/render"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Render  RenderConfig  `yaml:"render"`
	Game    GameConfig    `yaml:"game"`
	Logging LoggingConfig `yaml:"logging"`

	// Snapshot, when set, renders one frame to this .png or .webp path and
	// exits. Only settable from the command line.
	Snapshot string `yaml:"-"`
	// SaveConfig writes the merged settings to Path() and exits.
	SaveConfig bool `yaml:"-"`
}

// DisplayConfig holds output surface settings. Width and Height size the
// window and snapshot framebuffers; the terminal viewer fills the terminal.
type DisplayConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	FPS    int  `yaml:"fps"`
	Window bool `yaml:"window"`
	Scale  int  `yaml:"scale"` // Window and snapshot pixel scale
}

// RenderConfig holds pipeline settings.
type RenderConfig struct {
	FOV        float64    `yaml:"fov"` // Degrees
	Near       float64    `yaml:"near"`
	Far        float64    `yaml:"far"`
	Cull       string     `yaml:"cull"`  // ndc, backface, both, none
	Depth      string     `yaml:"depth"` // ndc, distance
	MinAmbient float64    `yaml:"min_ambient"`
	Light      [3]float64 `yaml:"light"`
	Background [3]uint8   `yaml:"background"`
	Outline    bool       `yaml:"outline"`
}

// GameConfig holds scene and controller settings.
type GameConfig struct {
	Ghost     string  `yaml:"ghost"` // Optional .obj/.glb replacing the built-in ghost
	Sheep     string  `yaml:"sheep"` // Optional .obj/.glb replacing the built-in sheep
	MoveSpeed float64 `yaml:"move_speed"`
	TurnSpeed float64 `yaml:"turn_speed"` // Degrees per second
	ShowFPS   bool    `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock scene settings.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  160,
			Height: 96,
			FPS:    30,
			Scale:  6,
		},
		Render: RenderConfig{
			FOV:        60,
			Near:       0.01,
			Far:        100,
			Cull:       render.CullNDC.String(),
			Depth:      render.DepthNDC.String(),
			MinAmbient: render.DefaultMinAmbient,
			Light:      [3]float64{0.3, -1, -0.3},
			Background: [3]uint8{80, 80, 80},
		},
		Game: GameConfig{
			MoveSpeed: 3,
			TurnSpeed: 90,
			ShowFPS:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		bad("display size %dx%d must be positive", c.Display.Width, c.Display.Height)
	}
	if c.Display.FPS <= 0 {
		bad("fps %d must be positive", c.Display.FPS)
	}
	if c.Display.Scale <= 0 {
		bad("scale %d must be positive", c.Display.Scale)
	}
	if err := c.Render.Projection().Validate(); err != nil {
		bad("%v", err)
	}
	if _, err := render.ParseCullMode(c.Render.Cull); err != nil {
		bad("%v", err)
	}
	if _, err := render.ParseDepthMode(c.Render.Depth); err != nil {
		bad("%v", err)
	}
	if c.Render.MinAmbient < 0 || c.Render.MinAmbient > 1 {
		bad("min_ambient %v must be in [0, 1]", c.Render.MinAmbient)
	}
	if _, ok := c.Render.LightDir().NormalizeOK(); !ok {
		bad("light direction %v has no length", c.Render.Light)
	}
	if c.Game.MoveSpeed < 0 || c.Game.TurnSpeed < 0 {
		bad("speeds must not be negative")
	}
	return errors.Join(errs...)
}

// Projection returns the projection settings.
func (r RenderConfig) Projection() render.Projection {
	return render.Projection{FOV: r.FOV, Near: r.Near, Far: r.Far}
}

// LightDir returns the configured light direction.
func (r RenderConfig) LightDir() math3d.Vec3 {
	return math3d.V3(r.Light[0], r.Light[1], r.Light[2])
}

// BackgroundColor returns the clear color.
func (r RenderConfig) BackgroundColor() render.Color {
	return render.RGB(r.Background[0], r.Background[1], r.Background[2])
}

// Options converts the settings into renderer options.
func (r RenderConfig) Options() ([]render.Option, error) {
	cull, err := render.ParseCullMode(r.Cull)
	if err != nil {
		return nil, err
	}
	depth, err := render.ParseDepthMode(r.Depth)
	if err != nil {
		return nil, err
	}
	return []render.Option{
		render.WithProjection(r.Projection()),
		render.WithLight(r.LightDir()),
		render.WithBackground(r.BackgroundColor()),
		render.WithCullMode(cull),
		render.WithDepthMode(depth),
	}, nil
}
