package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/aurora/internal/app"
	"github.com/1broseidon/aurora/internal/platform"
)

// LoggingConfig selects the CLI log handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig holds frame-loop and GL settings.
type AppConfig struct {
	Name          string `yaml:"name"`
	VSync         bool   `yaml:"vsync"`
	Multisampling bool   `yaml:"multisampling"`
	MSAASamples   int    `yaml:"msaa_samples"`
	Deferred      bool   `yaml:"deferred"`
}

// WindowConfig describes the main window.
type WindowConfig struct {
	Title       string  `yaml:"title"`
	X           int     `yaml:"x"`
	Y           int     `yaml:"y"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Kind        string  `yaml:"kind"`
	Decorated   bool    `yaml:"decorated"`
	Resizable   bool    `yaml:"resizable"`
	Transparent bool    `yaml:"transparent"`
	AlwaysOnTop bool    `yaml:"always_on_top"`
	Opacity     float64 `yaml:"opacity"`
}

// Config holds the application configuration.
type Config struct {
	Backend string        `yaml:"backend"`
	Display string        `yaml:"display,omitempty"`
	Logging LoggingConfig `yaml:"logging"`
	App     AppConfig     `yaml:"app"`
	Window  WindowConfig  `yaml:"window"`
}

func DefaultConfig() *Config {
	win := platform.DefaultWindowConfig()
	defaults := app.DefaultConfig()
	return &Config{
		Backend: "auto",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		App: AppConfig{
			Name:          defaults.Name,
			VSync:         defaults.VSync,
			Multisampling: defaults.Multisampling,
			MSAASamples:   defaults.MSAASamples,
		},
		Window: WindowConfig{
			Title:     win.Title,
			X:         int(win.X),
			Y:         int(win.Y),
			Width:     int(win.Width),
			Height:    int(win.Height),
			Kind:      win.Kind.String(),
			Decorated: win.Decorated,
			Resizable: win.Resizable,
			Opacity:   float64(win.Opacity),
		},
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Backend != "auto" && !contains(platform.Backends(), c.Backend) {
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be auto or one of: %s", strings.Join(platform.Backends(), ", "))}
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Err: err}
	}
	switch c.Logging.Format {
	case "auto", "text", "json":
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("format must be one of: auto, text, json")}
	}
	if strings.TrimSpace(c.App.Name) == "" {
		return &ValidationError{Path: "app.name", Err: fmt.Errorf("name is required")}
	}
	switch c.App.MSAASamples {
	case 0, 1, 2, 4, 8, 16:
	default:
		return &ValidationError{Path: "app.msaa_samples", Err: fmt.Errorf("msaa_samples must be one of: 0, 1, 2, 4, 8, 16")}
	}
	if c.Window.X < platform.CenteredPosition {
		return &ValidationError{Path: "window.x", Err: fmt.Errorf("x must be >= %d", platform.CenteredPosition)}
	}
	if c.Window.Y < platform.CenteredPosition {
		return &ValidationError{Path: "window.y", Err: fmt.Errorf("y must be >= %d", platform.CenteredPosition)}
	}
	if c.Window.Width <= 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Window.Height <= 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be > 0")}
	}
	if _, err := platform.ParseWindowKind(c.Window.Kind); err != nil {
		return &ValidationError{Path: "window.kind", Err: err}
	}
	if c.Window.Opacity < 0 || c.Window.Opacity > 1 {
		return &ValidationError{Path: "window.opacity", Err: fmt.Errorf("opacity must be between 0 and 1")}
	}
	return nil
}

// ParseLevel converts a logging.level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("level must be one of: debug, info, warning, error")
}

// PlatformWindowConfig converts the window section for platform.Adapter.
func (c *Config) PlatformWindowConfig() platform.WindowConfig {
	kind, _ := platform.ParseWindowKind(c.Window.Kind)
	return platform.WindowConfig{
		Title:       c.Window.Title,
		X:           int32(c.Window.X),
		Y:           int32(c.Window.Y),
		Width:       uint32(c.Window.Width),
		Height:      uint32(c.Window.Height),
		Kind:        kind,
		Decorated:   c.Window.Decorated,
		Resizable:   c.Window.Resizable,
		Transparent: c.Window.Transparent,
		AlwaysOnTop: c.Window.AlwaysOnTop,
		Opacity:     float32(c.Window.Opacity),
	}
}

// AppConfig converts the app section for app.New.
func (c *Config) AppConfig(logger *slog.Logger) app.Config {
	return app.Config{
		Name:          c.App.Name,
		VSync:         c.App.VSync,
		Multisampling: c.App.Multisampling,
		MSAASamples:   c.App.MSAASamples,
		Logger:        logger,
	}
}

// Samples is the MSAA sample count to request, zero when multisampling is
// off.
func (c *Config) Samples() int {
	if !c.App.Multisampling {
		return 0
	}
	return c.App.MSAASamples
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path, or to the standard location when
// path is empty.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
