package gui

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the optional on-disk window configuration. Every field is
// optional; zero values leave the built-in defaults untouched.
type Config struct {
	// Background is the clear color as three components in [0, 1].
	Background []float32 `toml:"background"`

	// TargetFPS caps the idle redraw rate. Negative means purely
	// event-driven.
	TargetFPS int `toml:"target_fps"`

	// Vsync toggles swap synchronization. Nil keeps the default.
	Vsync *bool `toml:"vsync"`

	// Font is a path to a TTF file replacing the built-in face.
	Font string `toml:"font"`

	// Icon lists PNG paths for the window icon, largest last.
	Icon []string `toml:"icon"`
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("gui: read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("gui: parse config %s: %w", path, err)
	}
	if n := len(cfg.Background); n != 0 && n != 3 {
		return cfg, fmt.Errorf("gui: config %s: background needs 3 components, got %d", path, n)
	}
	return cfg, nil
}
