package platform

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	Register("glfw", func(opts Options) Adapter { return NewGLFWAdapter(opts) })
}

// GLFWAdapter implements Adapter on GLFW. Each window carries its own
// OpenGL 4.1 core context, created with the window.
type GLFWAdapter struct {
	opts   Options
	logger *slog.Logger

	initialized bool
	nextNative  uint64
	windows     *WindowTable
	handles     map[*Window]*glfw.Window
	queue       EventQueue
}

var (
	_ Adapter      = (*GLFWAdapter)(nil)
	_ WindowDriver = (*GLFWAdapter)(nil)
)

func NewGLFWAdapter(opts Options) *GLFWAdapter {
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	return &GLFWAdapter{
		opts:    opts,
		logger:  opts.Logger.With("backend", "glfw"),
		windows: NewWindowTable(),
		handles: make(map[*Window]*glfw.Window),
	}
}

func (a *GLFWAdapter) Name() string { return "glfw" }

func (a *GLFWAdapter) Initialize() error {
	if a.initialized {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	a.initialized = true
	a.logger.Info("glfw adapter initialized", "version", glfw.GetVersionString())
	return nil
}

func (a *GLFWAdapter) Shutdown() {
	if !a.initialized {
		return
	}
	for _, w := range a.windows.All() {
		if err := a.DestroyWindow(w); err != nil {
			a.logger.Warn("destroy window during shutdown", "window", w.ID(), "error", err)
		}
	}
	a.queue.Clear()
	glfw.Terminate()
	a.initialized = false
}

func (a *GLFWAdapter) CreateWindow(cfg WindowConfig) (*Window, error) {
	if !a.initialized {
		return nil, ErrNotInitialized
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.StencilBits, 8)
	glfw.WindowHint(glfw.Samples, a.opts.Samples)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Decorated, glfwBool(cfg.Decorated))
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.Resizable))
	glfw.WindowHint(glfw.Floating, glfwBool(cfg.AlwaysOnTop))
	glfw.WindowHint(glfw.TransparentFramebuffer, glfwBool(cfg.Transparent))

	gw, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window %q: %w", cfg.Title, err)
	}
	if !cfg.Centered() {
		gw.SetPos(int(cfg.X), int(cfg.Y))
	}
	if cfg.Opacity < 1 {
		gw.SetOpacity(clampOpacity(cfg.Opacity))
	}
	if err := applyNativeKind(gw, cfg.Kind, a.opts.Display); err != nil {
		a.logger.Warn("window kind hint not applied", "kind", cfg.Kind.String(), "error", err)
	}

	a.nextNative++
	w := a.windows.Add(cfg, a.nextNative, a)
	x, y := gw.GetPos()
	w.SetBounds(int32(x), int32(y), cfg.Width, cfg.Height)
	a.handles[w] = gw
	a.installCallbacks(w, gw)
	a.logger.Debug("window created", "window", w.ID(), "kind", cfg.Kind.String())
	return w, nil
}

func (a *GLFWAdapter) DestroyWindow(w *Window) error {
	if !a.initialized {
		return ErrNotInitialized
	}
	gw := a.handles[w]
	if !a.windows.Remove(w) || gw == nil {
		a.logger.Error("destroy of unknown window", "window", w.ID())
		return fmt.Errorf("destroy window %d: %w", w.ID(), ErrUnknownWindow)
	}
	delete(a.handles, w)
	gw.Destroy()
	return nil
}

func (a *GLFWAdapter) installCallbacks(w *Window, gw *glfw.Window) {
	gw.SetCloseCallback(func(*glfw.Window) {
		// The application decides whether to destroy the window.
		gw.SetShouldClose(false)
		a.queue.Push(WindowCloseEvent{Target: At(w)})
	})
	gw.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		x, y := w.Position()
		w.SetBounds(x, y, uint32(width), uint32(height))
		a.queue.Push(WindowResizeEvent{Target: At(w), Width: uint32(width), Height: uint32(height)})
	})
	gw.SetPosCallback(func(_ *glfw.Window, x, y int) {
		width, height := w.Size()
		w.SetBounds(int32(x), int32(y), width, height)
		a.queue.Push(WindowMoveEvent{Target: At(w), X: int32(x), Y: int32(y)})
	})
	gw.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.SetFocused(focused)
		if focused {
			a.queue.Push(WindowFocusEvent{Target: At(w)})
		} else {
			a.queue.Push(WindowBlurEvent{Target: At(w)})
		}
	})
	gw.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		a.queue.Push(MouseMoveEvent{Target: At(w), X: float32(x), Y: float32(y)})
	})
	gw.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			a.queue.Push(MouseEnterEvent{Target: At(w)})
		} else {
			a.queue.Push(MouseLeaveEvent{Target: At(w)})
		}
	})
	gw.SetMouseButtonCallback(func(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := gw.GetCursorPos()
		b := glfwButton(button)
		switch action {
		case glfw.Press:
			a.queue.Push(MouseDownEvent{Target: At(w), Button: b, X: float32(x), Y: float32(y)})
		case glfw.Release:
			a.queue.Push(MouseUpEvent{Target: At(w), Button: b, X: float32(x), Y: float32(y)})
		}
	})
	gw.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		a.queue.Push(MouseScrollEvent{Target: At(w), DX: float32(dx), DY: float32(dy)})
	})
	gw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := glfwKey(key)
		m := glfwModifiers(mods)
		switch action {
		case glfw.Press, glfw.Repeat:
			a.queue.Push(KeyDownEvent{Target: At(w), Key: k, Mods: m, Repeat: action == glfw.Repeat, Native: uint32(scancode)})
		case glfw.Release:
			a.queue.Push(KeyUpEvent{Target: At(w), Key: k, Mods: m, Native: uint32(scancode)})
		}
	})
	gw.SetCharCallback(func(_ *glfw.Window, char rune) {
		a.queue.Push(NewTextInput(w, string(char)))
	})
}

func (a *GLFWAdapter) PumpEvents() {
	if a.initialized {
		glfw.PollEvents()
	}
}

func (a *GLFWAdapter) HasEvents() bool { return a.queue.Len() > 0 }

func (a *GLFWAdapter) NextEvent() Event { return a.queue.Pop() }

func (a *GLFWAdapter) DisplayCount() int {
	if !a.initialized {
		return 0
	}
	return len(glfw.GetMonitors())
}

func (a *GLFWAdapter) DisplayBounds(index int) (Rect, error) {
	displays, err := a.Displays()
	if err != nil {
		return Rect{}, err
	}
	if index < 0 || index >= len(displays) {
		return Rect{}, fmt.Errorf("display %d out of range [0,%d)", index, len(displays))
	}
	return displays[index].Bounds, nil
}

func (a *GLFWAdapter) Displays() ([]Display, error) {
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	monitors := glfw.GetMonitors()
	displays := make([]Display, 0, len(monitors))
	for i, m := range monitors {
		x, y := m.GetPos()
		mode := m.GetVideoMode()
		d := Display{ID: i, Name: m.GetName(), Bounds: Rect{X: x, Y: y}}
		if mode != nil {
			d.Bounds.Width, d.Bounds.Height = mode.Width, mode.Height
		}
		displays = append(displays, d)
	}
	return displays, nil
}

func (a *GLFWAdapter) CreateGLContext(w *Window) (*GLContext, error) {
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	gw := a.handles[w]
	if gw == nil || !a.windows.Owns(w) {
		return nil, fmt.Errorf("create gl context for window %d: %w", w.ID(), ErrUnknownWindow)
	}
	return NewGLContext(w, gw), nil
}

// DestroyGLContext releases nothing; the context lives as long as its window.
func (a *GLFWAdapter) DestroyGLContext(ctx *GLContext) {
	if ctx != nil && ctx.Window().Alive() && glfw.GetCurrentContext() == ctx.Native() {
		glfw.DetachCurrentContext()
	}
}

func (a *GLFWAdapter) MakeCurrent(w *Window, ctx *GLContext) error {
	if !a.initialized {
		return ErrNotInitialized
	}
	if err := CheckContext(w, ctx); err != nil {
		return err
	}
	gw, ok := ctx.Native().(*glfw.Window)
	if !ok || a.handles[w] != gw {
		return fmt.Errorf("make current: %w", ErrContextMismatch)
	}
	gw.MakeContextCurrent()
	return nil
}

func (a *GLFWAdapter) SwapBuffers(w *Window) {
	if gw := a.handles[w]; gw != nil {
		gw.SwapBuffers()
	}
}

func (a *GLFWAdapter) SetSwapInterval(interval int) {
	if a.initialized {
		glfw.SwapInterval(interval)
	}
}

func (a *GLFWAdapter) ShowWindow(w *Window) error {
	a.handles[w].Show()
	return nil
}

func (a *GLFWAdapter) HideWindow(w *Window) error {
	a.handles[w].Hide()
	return nil
}

func (a *GLFWAdapter) CloseWindow(w *Window) error {
	a.queue.Push(WindowCloseEvent{Target: At(w)})
	return nil
}

func (a *GLFWAdapter) SetWindowTitle(w *Window, title string) error {
	a.handles[w].SetTitle(title)
	return nil
}

func (a *GLFWAdapter) SetWindowPosition(w *Window, x, y int) error {
	a.handles[w].SetPos(x, y)
	return nil
}

func (a *GLFWAdapter) SetWindowSize(w *Window, width, height uint32) error {
	a.handles[w].SetSize(int(width), int(height))
	return nil
}

func (a *GLFWAdapter) SetWindowOpacity(w *Window, opacity float32) error {
	a.handles[w].SetOpacity(opacity)
	return nil
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func glfwButton(b glfw.MouseButton) MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return MouseButtonLeft
	case glfw.MouseButtonMiddle:
		return MouseButtonMiddle
	case glfw.MouseButtonRight:
		return MouseButtonRight
	case glfw.MouseButton4:
		return MouseButtonX1
	case glfw.MouseButton5:
		return MouseButtonX2
	}
	return MouseButtonNone
}

func glfwModifiers(m glfw.ModifierKey) Modifiers {
	var mods Modifiers
	if m&glfw.ModShift != 0 {
		mods |= ModShift
	}
	if m&glfw.ModControl != 0 {
		mods |= ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		mods |= ModAlt
	}
	if m&glfw.ModSuper != 0 {
		mods |= ModSuper
	}
	return mods
}

var glfwKeys = map[glfw.Key]KeyCode{
	glfw.KeyF1: KeyF1, glfw.KeyF2: KeyF2, glfw.KeyF3: KeyF3, glfw.KeyF4: KeyF4,
	glfw.KeyF5: KeyF5, glfw.KeyF6: KeyF6, glfw.KeyF7: KeyF7, glfw.KeyF8: KeyF8,
	glfw.KeyF9: KeyF9, glfw.KeyF10: KeyF10, glfw.KeyF11: KeyF11, glfw.KeyF12: KeyF12,

	glfw.KeyEscape:    KeyEscape,
	glfw.KeyTab:       KeyTab,
	glfw.KeySpace:     KeySpace,
	glfw.KeyEnter:     KeyEnter,
	glfw.KeyKPEnter:   KeyEnter,
	glfw.KeyBackspace: KeyBackspace,
	glfw.KeyDelete:    KeyDelete,

	glfw.KeyUp:    KeyUp,
	glfw.KeyDown:  KeyDown,
	glfw.KeyLeft:  KeyLeft,
	glfw.KeyRight: KeyRight,

	glfw.KeyHome:        KeyHome,
	glfw.KeyEnd:         KeyEnd,
	glfw.KeyPageUp:      KeyPageUp,
	glfw.KeyPageDown:    KeyPageDown,
	glfw.KeyInsert:      KeyInsert,
	glfw.KeyPrintScreen: KeyPrintScreen,
	glfw.KeyPause:       KeyPause,

	glfw.KeyLeftShift:    KeyLeftShift,
	glfw.KeyRightShift:   KeyRightShift,
	glfw.KeyLeftControl:  KeyLeftCtrl,
	glfw.KeyRightControl: KeyRightCtrl,
	glfw.KeyLeftAlt:      KeyLeftAlt,
	glfw.KeyRightAlt:     KeyRightAlt,
	glfw.KeyLeftSuper:    KeyLeftSuper,
	glfw.KeyRightSuper:   KeyRightSuper,
}

// glfwKey maps a GLFW key to a KeyCode. GLFW letters and digits already use
// their ASCII codes.
func glfwKey(k glfw.Key) KeyCode {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ, k >= glfw.Key0 && k <= glfw.Key9:
		return KeyCode(k)
	}
	return glfwKeys[k]
}
