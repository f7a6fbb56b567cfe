package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// Raw* types mirror the YAML schema with pointer fields so that merging can
// tell an absent key from a zero value.

type RawLogging struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
}

type RawApp struct {
	Name          *string `yaml:"name"`
	VSync         *bool   `yaml:"vsync"`
	Multisampling *bool   `yaml:"multisampling"`
	MSAASamples   *int    `yaml:"msaa_samples"`
	Deferred      *bool   `yaml:"deferred"`
}

type RawWindow struct {
	Title       *string  `yaml:"title"`
	X           *int     `yaml:"x"`
	Y           *int     `yaml:"y"`
	Width       *int     `yaml:"width"`
	Height      *int     `yaml:"height"`
	Kind        *string  `yaml:"kind"`
	Decorated   *bool    `yaml:"decorated"`
	Resizable   *bool    `yaml:"resizable"`
	Transparent *bool    `yaml:"transparent"`
	AlwaysOnTop *bool    `yaml:"always_on_top"`
	Opacity     *float64 `yaml:"opacity"`
}

type RawConfig struct {
	Include IncludeList `yaml:"include"`
	Backend *string     `yaml:"backend"`
	Display *string     `yaml:"display"`
	Logging *RawLogging `yaml:"logging"`
	App     *RawApp     `yaml:"app"`
	Window  *RawWindow  `yaml:"window"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil

	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.Logging != nil {
		merged := RawLogging{}
		if out.Logging != nil {
			merged = *out.Logging
		}
		mergePtr(&merged.Level, overlay.Logging.Level)
		mergePtr(&merged.Format, overlay.Logging.Format)
		out.Logging = &merged
	}
	if overlay.App != nil {
		merged := RawApp{}
		if out.App != nil {
			merged = *out.App
		}
		mergePtr(&merged.Name, overlay.App.Name)
		mergePtr(&merged.VSync, overlay.App.VSync)
		mergePtr(&merged.Multisampling, overlay.App.Multisampling)
		mergePtr(&merged.MSAASamples, overlay.App.MSAASamples)
		mergePtr(&merged.Deferred, overlay.App.Deferred)
		out.App = &merged
	}
	if overlay.Window != nil {
		merged := RawWindow{}
		if out.Window != nil {
			merged = *out.Window
		}
		mergePtr(&merged.Title, overlay.Window.Title)
		mergePtr(&merged.X, overlay.Window.X)
		mergePtr(&merged.Y, overlay.Window.Y)
		mergePtr(&merged.Width, overlay.Window.Width)
		mergePtr(&merged.Height, overlay.Window.Height)
		mergePtr(&merged.Kind, overlay.Window.Kind)
		mergePtr(&merged.Decorated, overlay.Window.Decorated)
		mergePtr(&merged.Resizable, overlay.Window.Resizable)
		mergePtr(&merged.Transparent, overlay.Window.Transparent)
		mergePtr(&merged.AlwaysOnTop, overlay.Window.AlwaysOnTop)
		mergePtr(&merged.Opacity, overlay.Window.Opacity)
		out.Window = &merged
	}
	return out
}

func mergePtr[T any](dst **T, overlay *T) {
	if overlay != nil {
		*dst = overlay
	}
}
