package config

import (
	"flag"
	"fmt"
	"os"
)

type flagValues struct {
	config   string
	debug    bool
	width    int
	height   int
	fps      int
	cull     string
	depth    string
	window   bool
	snapshot string
	logFile  string
	save     bool
}

func newFlagSet() (*flag.FlagSet, *flagValues) {
	f := &flagValues{}
	fs := flag.NewFlagSet("mansion", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.width, "width", 0, "Render width in pixels")
	fs.IntVar(&f.height, "height", 0, "Render height in pixels")
	fs.IntVar(&f.fps, "fps", 0, "Target FPS")
	fs.StringVar(&f.cull, "cull", "", "Face culling: ndc, backface, both, none")
	fs.StringVar(&f.depth, "depth", "", "Sort key: ndc, distance")
	fs.BoolVar(&f.window, "window", false, "Open a window instead of drawing in the terminal")
	fs.StringVar(&f.snapshot, "snapshot", "", "Render one frame to a .png or .webp file and exit")
	fs.StringVar(&f.logFile, "log", "", "Log file path")
	fs.BoolVar(&f.save, "save-config", false, "Write the resulting settings to the user config file and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "mansion - flat-shaded software rasterizer\n\n")
		fmt.Fprintf(fs.Output(), "Usage: mansion [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nControls:\n")
		fmt.Fprintf(fs.Output(), "  W/A/S/D     - Move\n")
		fmt.Fprintf(fs.Output(), "  Arrows      - Look around\n")
		fmt.Fprintf(fs.Output(), "  Esc         - Quit\n")
	}
	fs.SetOutput(os.Stderr)
	return fs, f
}

// apply copies the flags that were given on the command line.
func (f *flagValues) apply(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "width":
			cfg.Display.Width = f.width
		case "height":
			cfg.Display.Height = f.height
		case "fps":
			cfg.Display.FPS = f.fps
		case "cull":
			cfg.Render.Cull = f.cull
		case "depth":
			cfg.Render.Depth = f.depth
		case "window":
			cfg.Display.Window = f.window
		case "snapshot":
			cfg.Snapshot = f.snapshot
		case "log":
			cfg.Logging.LogFile = f.logFile
		case "save-config":
			cfg.SaveConfig = f.save
		}
	})
}
