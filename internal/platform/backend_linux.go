//go:build linux

package platform

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/aurora/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

func init() {
	Register("x11", func(opts Options) Adapter { return NewX11Adapter(opts) })
}

// X11Adapter implements Adapter on an X11 connection with EGL contexts.
type X11Adapter struct {
	opts   Options
	logger *slog.Logger

	conn    *x11.Connection
	egl     *x11.EGL
	windows *WindowTable
	queue   EventQueue
	tr      *x11Translator

	// surfaces holds the EGL surface of each window with a live context.
	surfaces map[*Window]*x11.Surface
}

var (
	_ Adapter      = (*X11Adapter)(nil)
	_ WindowDriver = (*X11Adapter)(nil)
)

// NewX11Adapter creates an uninitialized X11 adapter.
func NewX11Adapter(opts Options) *X11Adapter {
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	return &X11Adapter{
		opts:     opts,
		logger:   opts.Logger.With("backend", "x11"),
		windows:  NewWindowTable(),
		surfaces: make(map[*Window]*x11.Surface),
	}
}

func (a *X11Adapter) Name() string { return "x11" }

// Initialize connects to the X server and selects an EGL config whose visual
// new windows are created with.
func (a *X11Adapter) Initialize() error {
	if a.conn != nil {
		return nil
	}
	conn, err := x11.NewConnection(a.opts.Display)
	if err != nil {
		return fmt.Errorf("failed to connect to X11: %w", err)
	}
	egl, err := x11.OpenEGL(a.opts.Display, a.opts.Samples, conn.IsARGBVisual)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to initialize EGL: %w", err)
	}
	if a.opts.Samples > 0 && egl.Samples() == 0 {
		a.logger.Warn("multisampling unavailable, using a single-sampled config", "requested", a.opts.Samples)
	}

	a.conn = conn
	a.egl = egl
	a.tr = &x11Translator{
		windows:      a.windows,
		keys:         conn.Keys(),
		wmProtocols:  conn.WMProtocols,
		deleteWindow: conn.WMDeleteWindow,
	}
	a.logger.Info("x11 adapter initialized",
		"visual", fmt.Sprintf("0x%x", uint32(egl.Visual())),
		"argb_visual", fmt.Sprintf("0x%x", uint32(egl.ARGBVisual())),
		"samples", egl.Samples())
	return nil
}

// Shutdown destroys remaining windows and closes the connection.
func (a *X11Adapter) Shutdown() {
	if a.conn == nil {
		return
	}
	for _, w := range a.windows.All() {
		if err := a.DestroyWindow(w); err != nil {
			a.logger.Warn("destroy window during shutdown", "window", w.ID(), "error", err)
		}
	}
	a.queue.Clear()
	a.egl.Terminate()
	a.conn.Close()
	a.conn, a.egl, a.tr = nil, nil, nil
}

func (a *X11Adapter) CreateWindow(cfg WindowConfig) (*Window, error) {
	if a.conn == nil {
		return nil, ErrNotInitialized
	}

	params, transparent := x11WindowParams(cfg, a.egl.Visual(), a.egl.ARGBVisual())
	if cfg.Transparent && !transparent {
		a.logger.Warn("no 32-bit visual available, window will be opaque", "title", cfg.Title)
	}

	id, err := a.conn.CreateWindow(params)
	if err != nil {
		return nil, fmt.Errorf("create window %q: %w", cfg.Title, err)
	}
	w := a.windows.Add(cfg, uint64(id), a)
	a.logger.Debug("window created", "window", w.ID(), "xid", uint32(id), "kind", cfg.Kind.String())
	return w, nil
}

// DestroyWindow unregisters w before destroying the X window so that events
// still in flight for it are not attributed.
func (a *X11Adapter) DestroyWindow(w *Window) error {
	if a.conn == nil {
		return ErrNotInitialized
	}
	if !a.windows.Remove(w) {
		a.logger.Error("destroy of unknown window", "window", w.ID())
		return fmt.Errorf("destroy window %d: %w", w.ID(), ErrUnknownWindow)
	}
	if s := a.surfaces[w]; s != nil {
		a.egl.DestroySurface(s)
		delete(a.surfaces, w)
	}
	a.conn.DestroyWindow(xproto.Window(w.NativeHandle()))
	a.conn.Flush()
	return nil
}

func (a *X11Adapter) PumpEvents() {
	if a.conn == nil {
		return
	}
	events, errs := a.conn.PollEvents()
	for _, xerr := range errs {
		a.logger.Warn("x11 error", "error", xerr.Error())
	}
	a.tr.translate(events, &a.queue)
}

func (a *X11Adapter) HasEvents() bool { return a.queue.Len() > 0 }

func (a *X11Adapter) NextEvent() Event { return a.queue.Pop() }

func (a *X11Adapter) DisplayCount() int {
	monitors, err := a.monitors()
	if err != nil {
		a.logger.Warn("query monitors", "error", err)
		return 0
	}
	return len(monitors)
}

func (a *X11Adapter) DisplayBounds(index int) (Rect, error) {
	monitors, err := a.monitors()
	if err != nil {
		return Rect{}, err
	}
	if index < 0 || index >= len(monitors) {
		return Rect{}, fmt.Errorf("display %d out of range [0,%d)", index, len(monitors))
	}
	return displayFromMonitor(monitors[index]).Bounds, nil
}

// Displays lists every monitor with its output name.
func (a *X11Adapter) Displays() ([]Display, error) {
	monitors, err := a.monitors()
	if err != nil {
		return nil, err
	}
	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}
	return displays, nil
}

func (a *X11Adapter) monitors() ([]x11.Monitor, error) {
	if a.conn == nil {
		return nil, ErrNotInitialized
	}
	return a.conn.GetMonitors()
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:   m.ID,
		Name: m.Name,
		Bounds: Rect{
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		},
	}
}

func (a *X11Adapter) CreateGLContext(w *Window) (*GLContext, error) {
	if a.conn == nil {
		return nil, ErrNotInitialized
	}
	if !a.windows.Owns(w) {
		return nil, fmt.Errorf("create gl context for window %d: %w", w.ID(), ErrUnknownWindow)
	}
	surface, err := a.egl.CreateSurface(xproto.Window(w.NativeHandle()), w.Config().Transparent)
	if err != nil {
		return nil, fmt.Errorf("create gl context for window %d: %w", w.ID(), err)
	}
	a.surfaces[w] = surface
	return NewGLContext(w, surface), nil
}

func (a *X11Adapter) DestroyGLContext(ctx *GLContext) {
	if a.egl == nil || ctx == nil {
		return
	}
	if s, ok := ctx.Native().(*x11.Surface); ok {
		a.egl.DestroySurface(s)
		if a.surfaces[ctx.Window()] == s {
			delete(a.surfaces, ctx.Window())
		}
	}
}

func (a *X11Adapter) MakeCurrent(w *Window, ctx *GLContext) error {
	if a.egl == nil {
		return ErrNotInitialized
	}
	if err := CheckContext(w, ctx); err != nil {
		return err
	}
	s, ok := ctx.Native().(*x11.Surface)
	if !ok {
		return fmt.Errorf("make current: %w", ErrContextMismatch)
	}
	return a.egl.MakeCurrent(s)
}

func (a *X11Adapter) SwapBuffers(w *Window) {
	if a.egl == nil || !w.Alive() {
		return
	}
	if s := a.surfaces[w]; s != nil {
		a.egl.SwapBuffers(s)
	}
}

func (a *X11Adapter) SetSwapInterval(interval int) {
	if a.egl != nil {
		a.egl.SwapInterval(interval)
	}
}

func (a *X11Adapter) ShowWindow(w *Window) error {
	a.conn.MapWindow(xproto.Window(w.NativeHandle()))
	a.conn.Flush()
	return nil
}

func (a *X11Adapter) HideWindow(w *Window) error {
	a.conn.UnmapWindow(xproto.Window(w.NativeHandle()))
	a.conn.Flush()
	return nil
}

func (a *X11Adapter) CloseWindow(w *Window) error {
	return a.conn.RequestClose(xproto.Window(w.NativeHandle()))
}

func (a *X11Adapter) SetWindowTitle(w *Window, title string) error {
	return a.conn.SetTitle(xproto.Window(w.NativeHandle()), title)
}

func (a *X11Adapter) SetWindowPosition(w *Window, x, y int) error {
	a.conn.MoveWindow(xproto.Window(w.NativeHandle()), x, y)
	return nil
}

func (a *X11Adapter) SetWindowSize(w *Window, width, height uint32) error {
	a.conn.ResizeWindow(xproto.Window(w.NativeHandle()), int(width), int(height))
	return nil
}

func (a *X11Adapter) SetWindowOpacity(w *Window, opacity float32) error {
	return a.conn.SetOpacity(xproto.Window(w.NativeHandle()), float64(opacity))
}
