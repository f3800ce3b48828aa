package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration with priority defaults < file < flags.
// args are the command-line arguments without the program name; the
// remaining positional arguments are returned.
func Load(args []string) (*Config, []string, error) {
	fs, f := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := Default()

	path := f.config
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	f.apply(fs, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./mansion.yaml",
		Path(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Path returns the user config file, the one Save writes.
func Path() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "mansion")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "mansion")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "mansion")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "mansion")
	}
}

// loadFromFile merges a YAML file into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
