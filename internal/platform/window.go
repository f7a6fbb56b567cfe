package platform

import "fmt"

// CenteredPosition as WindowConfig.X or Y lets the window system place the
// window.
const CenteredPosition = -1

// WindowKind maps to window-manager type hints.
type WindowKind int

const (
	WindowNormal WindowKind = iota
	WindowDock
	WindowPanel
	WindowPopup
	WindowDesktop
	WindowSplash
)

var windowKindNames = [...]string{
	WindowNormal:  "normal",
	WindowDock:    "dock",
	WindowPanel:   "panel",
	WindowPopup:   "popup",
	WindowDesktop: "desktop",
	WindowSplash:  "splash",
}

func (k WindowKind) String() string {
	if k >= 0 && int(k) < len(windowKindNames) {
		return windowKindNames[k]
	}
	return fmt.Sprintf("WindowKind(%d)", int(k))
}

// ParseWindowKind converts a configuration string to a WindowKind.
func ParseWindowKind(s string) (WindowKind, error) {
	if s == "" {
		return WindowNormal, nil
	}
	for k, name := range windowKindNames {
		if name == s {
			return WindowKind(k), nil
		}
	}
	return WindowNormal, fmt.Errorf("unknown window kind %q", s)
}

// WindowConfig describes a window to create.
type WindowConfig struct {
	Title       string
	X           int32
	Y           int32
	Width       uint32
	Height      uint32
	Kind        WindowKind
	Decorated   bool
	Resizable   bool
	Transparent bool
	AlwaysOnTop bool
	Opacity     float32
}

// DefaultWindowConfig returns an 800x600 decorated, resizable window placed
// by the window system.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:     "Aurora Window",
		X:         CenteredPosition,
		Y:         CenteredPosition,
		Width:     800,
		Height:    600,
		Kind:      WindowNormal,
		Decorated: true,
		Resizable: true,
		Opacity:   1,
	}
}

// Centered reports whether the window system should choose the position.
func (c WindowConfig) Centered() bool {
	return c.X < 0 || c.Y < 0
}

func clampOpacity(o float32) float32 {
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// Window is an adapter-owned native window. Callbacks are optional; the last
// assignment wins and they run synchronously during Dispatch.
type Window struct {
	id     WindowID
	config WindowConfig
	native uint64
	driver WindowDriver
	alive  bool

	x, y          int32
	width, height uint32
	focused       bool

	OnClose  func()
	OnResize func(width, height uint32)
	OnMove   func(x, y int32)
	OnFocus  func()
	OnBlur   func()
}

// newWindow creates a live window handle; driver may be nil for handles
// that only receive events.
func newWindow(id WindowID, cfg WindowConfig, native uint64, driver WindowDriver) *Window {
	cfg.Opacity = clampOpacity(cfg.Opacity)
	return &Window{
		id:     id,
		config: cfg,
		native: native,
		driver: driver,
		alive:  true,
		x:      max(cfg.X, 0),
		y:      max(cfg.Y, 0),
		width:  cfg.Width,
		height: cfg.Height,
	}
}

func (w *Window) ID() WindowID {
	if w == nil {
		return 0
	}
	return w.id
}

func (w *Window) Config() WindowConfig { return w.config }

// NativeHandle returns the backend window identifier (an X11 window id for
// the x11 backend).
func (w *Window) NativeHandle() uint64 { return w.native }

// Alive reports whether the window has not been destroyed.
func (w *Window) Alive() bool { return w != nil && w.alive }

// Size returns the last size reported by the window system.
func (w *Window) Size() (uint32, uint32) { return w.width, w.height }

// Position returns the last position reported by the window system. Before
// the first report a centered window returns (0, 0).
func (w *Window) Position() (int32, int32) { return w.x, w.y }

// Focused reports whether the window currently has input focus.
func (w *Window) Focused() bool { return w.focused }

func (w *Window) Show() error {
	if err := w.usable(); err != nil {
		return err
	}
	return w.driver.ShowWindow(w)
}

func (w *Window) Hide() error {
	if err := w.usable(); err != nil {
		return err
	}
	return w.driver.HideWindow(w)
}

// Close asks the window system to close the window. The window stays alive
// until the adapter destroys it.
func (w *Window) Close() error {
	if err := w.usable(); err != nil {
		return err
	}
	return w.driver.CloseWindow(w)
}

func (w *Window) SetTitle(title string) error {
	if err := w.usable(); err != nil {
		return err
	}
	if err := w.driver.SetWindowTitle(w, title); err != nil {
		return err
	}
	w.config.Title = title
	return nil
}

func (w *Window) SetPosition(x, y int32) error {
	if err := w.usable(); err != nil {
		return err
	}
	return w.driver.SetWindowPosition(w, int(x), int(y))
}

func (w *Window) SetSize(width, height uint32) error {
	if err := w.usable(); err != nil {
		return err
	}
	return w.driver.SetWindowSize(w, width, height)
}

func (w *Window) SetOpacity(opacity float32) error {
	if err := w.usable(); err != nil {
		return err
	}
	opacity = clampOpacity(opacity)
	if err := w.driver.SetWindowOpacity(w, opacity); err != nil {
		return err
	}
	w.config.Opacity = opacity
	return nil
}

func (w *Window) usable() error {
	if !w.Alive() || w.driver == nil {
		return fmt.Errorf("window %d: %w", w.ID(), ErrUnknownWindow)
	}
	return nil
}

// SetBounds records geometry reported by the window system. Adapters call it
// while translating configure notifications.
func (w *Window) SetBounds(x, y int32, width, height uint32) {
	w.x, w.y = x, y
	w.width, w.height = width, height
}

// SetFocused records focus changes reported by the window system.
func (w *Window) SetFocused(focused bool) { w.focused = focused }
