package platform

import (
	"fmt"
	"log/slog"
	"sort"
)

// Options configures adapter construction.
type Options struct {
	// Display overrides the window-system connection string (DISPLAY on X11).
	Display string
	// Samples is the requested MSAA sample count; zero disables multisampling.
	Samples int
	Logger  *slog.Logger
}

// Constructor builds an uninitialized adapter.
type Constructor func(opts Options) Adapter

var constructors = map[string]Constructor{}

// Register makes a backend available under name. Backend files call it from
// init, guarded by build tags.
func Register(name string, c Constructor) {
	if _, dup := constructors[name]; dup {
		panic("platform: backend registered twice: " + name)
	}
	constructors[name] = c
}

// Backends returns the names of the compiled-in backends.
func Backends() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultBackend returns the preferred backend for this build.
func DefaultBackend() string {
	if _, ok := constructors["x11"]; ok {
		return "x11"
	}
	return "glfw"
}

// New constructs the named backend. "" and "auto" select DefaultBackend.
// The adapter still has to be initialized.
func New(name string, opts Options) (Adapter, error) {
	if name == "" || name == "auto" {
		name = DefaultBackend()
	}
	c, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownBackend, name, Backends())
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	return c(opts), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
