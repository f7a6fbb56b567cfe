package platform

import (
	"errors"
	"fmt"
)

// WindowID is a platform-neutral window identifier, unique per adapter.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Display describes a physical display.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

var (
	// ErrNotInitialized is returned by window and context operations issued
	// before Initialize succeeded.
	ErrNotInitialized = errors.New("platform adapter not initialized")
	// ErrUnknownWindow is returned when a window is not (or no longer) owned
	// by the adapter.
	ErrUnknownWindow = errors.New("unknown or destroyed window")
	// ErrContextMismatch is returned when a GL context is used with a window
	// it was not created for.
	ErrContextMismatch = errors.New("gl context does not belong to window")
	// ErrUnknownBackend is returned by New for an unregistered backend name.
	ErrUnknownBackend = errors.New("unknown platform backend")
)

// GLContext is an opaque, adapter-owned OpenGL context handle. It is released
// explicitly with Adapter.DestroyGLContext.
type GLContext struct {
	window *Window
	native any
}

// NewGLContext wraps a native context created for window.
func NewGLContext(window *Window, native any) *GLContext {
	return &GLContext{window: window, native: native}
}

// Window returns the window the context was created for.
func (c *GLContext) Window() *Window { return c.window }

// Native returns the backend-specific context value.
func (c *GLContext) Native() any { return c.native }

// Adapter abstracts window-system operations for one windowing backend.
//
// All methods must be called from the goroutine that called Initialize, which
// must be locked to its OS thread.
type Adapter interface {
	// Name returns the backend name, e.g. "x11".
	Name() string

	// Initialize connects to the window system and selects a GL-capable
	// visual. A non-nil error is fatal: no window may be created afterwards.
	Initialize() error
	Shutdown()

	// CreateWindow creates an unmapped window. Window.Show maps it.
	CreateWindow(cfg WindowConfig) (*Window, error)
	// DestroyWindow unregisters the window and releases its OS resources
	// before returning. Queued events that reference it become stale.
	DestroyWindow(w *Window) error

	// PumpEvents drains the native events pending at call time into the
	// adapter queue. It never waits for new events.
	PumpEvents()
	HasEvents() bool
	// NextEvent pops the oldest queued event, or NoEvent when empty.
	NextEvent() Event

	DisplayCount() int
	DisplayBounds(index int) (Rect, error)

	CreateGLContext(w *Window) (*GLContext, error)
	DestroyGLContext(ctx *GLContext)
	MakeCurrent(w *Window, ctx *GLContext) error
	SwapBuffers(w *Window)
	SetSwapInterval(interval int)
}

// WindowDriver is implemented by adapters to back Window operations.
type WindowDriver interface {
	ShowWindow(w *Window) error
	HideWindow(w *Window) error
	CloseWindow(w *Window) error
	SetWindowTitle(w *Window, title string) error
	SetWindowPosition(w *Window, x, y int) error
	SetWindowSize(w *Window, width, height uint32) error
	SetWindowOpacity(w *Window, opacity float32) error
}

// CheckContext verifies that ctx was created for w.
func CheckContext(w *Window, ctx *GLContext) error {
	if ctx == nil || w == nil {
		return fmt.Errorf("make current: %w", ErrContextMismatch)
	}
	if ctx.window != w {
		return fmt.Errorf("context for window %d used with window %d: %w", ctx.window.ID(), w.ID(), ErrContextMismatch)
	}
	return nil
}

// DisplayLister is implemented by adapters that can name their displays.
type DisplayLister interface {
	Displays() ([]Display, error)
}

// ListDisplays returns the adapter's displays, naming them by index when the
// adapter cannot.
func ListDisplays(a Adapter) ([]Display, error) {
	if l, ok := a.(DisplayLister); ok {
		return l.Displays()
	}
	n := a.DisplayCount()
	displays := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		bounds, err := a.DisplayBounds(i)
		if err != nil {
			return nil, err
		}
		displays = append(displays, Display{ID: i, Name: fmt.Sprintf("display%d", i), Bounds: bounds})
	}
	return displays, nil
}
