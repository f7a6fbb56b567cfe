package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	setPtr(&cfg.Backend, raw.Backend)
	setPtr(&cfg.Display, raw.Display)
	if raw.Logging != nil {
		setPtr(&cfg.Logging.Level, raw.Logging.Level)
		setPtr(&cfg.Logging.Format, raw.Logging.Format)
	}
	if raw.App != nil {
		setPtr(&cfg.App.Name, raw.App.Name)
		setPtr(&cfg.App.VSync, raw.App.VSync)
		setPtr(&cfg.App.Multisampling, raw.App.Multisampling)
		setPtr(&cfg.App.MSAASamples, raw.App.MSAASamples)
		setPtr(&cfg.App.Deferred, raw.App.Deferred)
	}
	if raw.Window != nil {
		w := raw.Window
		setPtr(&cfg.Window.Title, w.Title)
		setPtr(&cfg.Window.X, w.X)
		setPtr(&cfg.Window.Y, w.Y)
		setPtr(&cfg.Window.Width, w.Width)
		setPtr(&cfg.Window.Height, w.Height)
		setPtr(&cfg.Window.Kind, w.Kind)
		setPtr(&cfg.Window.Decorated, w.Decorated)
		setPtr(&cfg.Window.Resizable, w.Resizable)
		setPtr(&cfg.Window.Transparent, w.Transparent)
		setPtr(&cfg.Window.AlwaysOnTop, w.AlwaysOnTop)
		setPtr(&cfg.Window.Opacity, w.Opacity)
	}
	return cfg, nil
}

func setPtr[T any](dst *T, p *T) {
	if p != nil {
		*dst = *p
	}
}
