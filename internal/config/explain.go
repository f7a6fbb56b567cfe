package config

import (
	"fmt"
	"sort"
)

var explainPaths = map[string]func(*Config) any{
	"backend":              func(c *Config) any { return c.Backend },
	"display":              func(c *Config) any { return c.Display },
	"logging.level":        func(c *Config) any { return c.Logging.Level },
	"logging.format":       func(c *Config) any { return c.Logging.Format },
	"app.name":             func(c *Config) any { return c.App.Name },
	"app.vsync":            func(c *Config) any { return c.App.VSync },
	"app.multisampling":    func(c *Config) any { return c.App.Multisampling },
	"app.msaa_samples":     func(c *Config) any { return c.App.MSAASamples },
	"app.deferred":         func(c *Config) any { return c.App.Deferred },
	"window.title":         func(c *Config) any { return c.Window.Title },
	"window.x":             func(c *Config) any { return c.Window.X },
	"window.y":             func(c *Config) any { return c.Window.Y },
	"window.width":         func(c *Config) any { return c.Window.Width },
	"window.height":        func(c *Config) any { return c.Window.Height },
	"window.kind":          func(c *Config) any { return c.Window.Kind },
	"window.decorated":     func(c *Config) any { return c.Window.Decorated },
	"window.resizable":     func(c *Config) any { return c.Window.Resizable },
	"window.transparent":   func(c *Config) any { return c.Window.Transparent },
	"window.always_on_top": func(c *Config) any { return c.Window.AlwaysOnTop },
	"window.opacity":       func(c *Config) any { return c.Window.Opacity },
}

// ExplainPaths lists the paths Explain accepts, sorted.
func ExplainPaths() []string {
	paths := make([]string, 0, len(explainPaths))
	for p := range explainPaths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Explain returns the effective value at the given YAML path and the file
// position that set it, or a defaults source when no file did.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	get, ok := explainPaths[path]
	if !ok {
		return nil, Source{}, fmt.Errorf("unknown path: %s", path)
	}
	value := get(res.Config)

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}
