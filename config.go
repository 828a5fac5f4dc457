package launchpad

import (
	"errors"
	"fmt"
	"os"

	"github.com/phanxgames/launchpad/automation"
	"gopkg.in/yaml.v3"
)

// Config is the file-level configuration of a launcher panel.
type Config struct {
	Window     WindowConfig      `yaml:"window"`
	DataDir    string            `yaml:"dataDir"`
	Panel      PanelConfig       `yaml:"panel"`
	Drag       DragConfig        `yaml:"drag"`
	Automation automation.Config `yaml:"automation"`
	Debug      bool              `yaml:"debug"`
}

// WindowConfig sizes the application window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PanelConfig lays out the pinned-entry panel.
type PanelConfig struct {
	// Layout is the initial mode, "scroll" or "wrap". A value saved in the
	// settings store takes precedence.
	Layout     string  `yaml:"layout"`
	Group      string  `yaml:"group"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Width      float64 `yaml:"width"`
	CardWidth  float64 `yaml:"cardWidth"`
	CardHeight float64 `yaml:"cardHeight"`
	Gap        float64 `yaml:"gap"`
	Padding    float64 `yaml:"padding"`
}

// DragConfig tunes the reorder gesture.
type DragConfig struct {
	Threshold           float64 `yaml:"threshold"`
	RotationLimit       float64 `yaml:"rotationLimit"`
	RotationSensitivity float64 `yaml:"rotationSensitivity"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Title: "launchpad", Width: 800, Height: 600},
		Panel: PanelConfig{
			Layout:     LayoutScroll.String(),
			X:          20,
			Y:          60,
			Width:      520,
			CardWidth:  160,
			CardHeight: 72,
			Gap:        8,
			Padding:    8,
		},
		Drag: DragConfig{
			Threshold:           defaultDragThreshold,
			RotationLimit:       defaultRotationLimit,
			RotationSensitivity: defaultRotationSensitivity,
		},
		Automation: automation.DefaultConfig(),
	}
}

// LoadConfig reads a YAML config from path on top of DefaultConfig. A
// missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a panel.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseLayoutMode(c.Panel.Layout); err != nil {
		return fmt.Errorf("panel.layout: %w", err)
	}
	p := c.Panel
	if p.CardWidth <= 0 || p.CardHeight <= 0 {
		return fmt.Errorf("panel card size %gx%g must be positive", p.CardWidth, p.CardHeight)
	}
	if p.Width < p.CardWidth+2*p.Padding {
		return fmt.Errorf("panel.width %g cannot fit one card", p.Width)
	}
	if p.Gap < 0 || p.Padding < 0 {
		return fmt.Errorf("panel gap and padding must not be negative")
	}
	if c.Drag.Threshold < 0 || c.Drag.RotationLimit < 0 || c.Drag.RotationSensitivity < 0 {
		return fmt.Errorf("drag settings must not be negative")
	}
	return c.Automation.Validate()
}

// ReorderConfig returns the drag tuning as a ReorderConfig. Geometry,
// layout and persistence hooks are left for the caller to fill in.
func (d DragConfig) ReorderConfig() ReorderConfig {
	return ReorderConfig{
		Threshold:           d.Threshold,
		RotationLimit:       d.RotationLimit,
		RotationSensitivity: d.RotationSensitivity,
	}
}
