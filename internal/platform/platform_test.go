package platform

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"
)

// recordingDriver backs Window operations in tests.
type recordingDriver struct {
	calls []string
	err   error
}

func (d *recordingDriver) record(call string) error {
	d.calls = append(d.calls, call)
	return d.err
}

func (d *recordingDriver) ShowWindow(*Window) error             { return d.record("show") }
func (d *recordingDriver) HideWindow(*Window) error             { return d.record("hide") }
func (d *recordingDriver) CloseWindow(*Window) error            { return d.record("close") }
func (d *recordingDriver) SetWindowTitle(*Window, string) error { return d.record("title") }
func (d *recordingDriver) SetWindowPosition(*Window, int, int) error {
	return d.record("position")
}
func (d *recordingDriver) SetWindowSize(*Window, uint32, uint32) error { return d.record("size") }
func (d *recordingDriver) SetWindowOpacity(*Window, float32) error     { return d.record("opacity") }

func TestEventQueue_FIFO(t *testing.T) {
	var q EventQueue
	w := newWindow(1, DefaultWindowConfig(), 1, nil)

	q.Push(MouseMoveEvent{Target: At(w), X: 1})
	q.Push(KeyDownEvent{Target: At(w), Key: KeyA})
	q.Push(QuitEvent{})

	want := []EventType{EventMouseMove, EventKeyDown, EventQuit}
	for i, typ := range want {
		ev := q.Pop()
		if ev.Type() != typ {
			t.Fatalf("event %d: expected %v, got %v", i, typ, ev.Type())
		}
	}
	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d", q.Len())
	}
}

func TestEventQueue_EmptyReturnsNoEvent(t *testing.T) {
	var q EventQueue
	ev := q.Pop()
	if _, ok := ev.(NoEvent); !ok {
		t.Fatalf("expected NoEvent, got %T", ev)
	}
	if ev.Type() != EventNone {
		t.Fatalf("expected EventNone, got %v", ev.Type())
	}
	if ev.Window() != nil {
		t.Fatalf("expected no window on NoEvent")
	}
}

func TestEventQueue_OrderSurvivesCompaction(t *testing.T) {
	var q EventQueue
	next := int32(0)
	for round := 0; round < 5; round++ {
		for i := 0; i < 100; i++ {
			q.Push(WindowMoveEvent{X: int32(round*100 + i)})
		}
		for i := 0; i < 70; i++ {
			ev := q.Pop().(WindowMoveEvent)
			if ev.X != next {
				t.Fatalf("expected X=%d, got %d", next, ev.X)
			}
			next++
		}
	}
	for q.Len() > 0 {
		ev := q.Pop().(WindowMoveEvent)
		if ev.X != next {
			t.Fatalf("expected X=%d, got %d", next, ev.X)
		}
		next++
	}
	if next != 500 {
		t.Fatalf("expected 500 events, got %d", next)
	}
}

func TestEventQueue_Clear(t *testing.T) {
	var q EventQueue
	q.Push(QuitEvent{})
	q.Push(QuitEvent{})
	q.Clear()
	if q.Len() != 0 {
		t.Fatalf("expected cleared queue, got %d", q.Len())
	}
	if q.Pop().Type() != EventNone {
		t.Fatalf("expected NoEvent after clear")
	}
}

func TestDispatch_InvokesCallbacks(t *testing.T) {
	table := NewWindowTable()
	w := table.Add(DefaultWindowConfig(), 10, nil)

	var got []string
	w.OnClose = func() { got = append(got, "close") }
	w.OnResize = func(width, height uint32) {
		if width != 640 || height != 480 {
			t.Fatalf("expected 640x480, got %dx%d", width, height)
		}
		got = append(got, "resize")
	}
	w.OnMove = func(x, y int32) { got = append(got, "move") }
	w.OnFocus = func() { got = append(got, "focus") }
	w.OnBlur = func() { got = append(got, "blur") }

	events := []Event{
		WindowResizeEvent{Target: At(w), Width: 640, Height: 480},
		WindowMoveEvent{Target: At(w), X: 5, Y: 6},
		WindowFocusEvent{Target: At(w)},
		WindowBlurEvent{Target: At(w)},
		WindowCloseEvent{Target: At(w)},
		MouseMoveEvent{Target: At(w)},
	}
	for _, ev := range events {
		if !Dispatch(ev) {
			t.Fatalf("expected %v to be delivered", ev.Type())
		}
	}
	want := "resize,move,focus,blur,close"
	if strings.Join(got, ",") != want {
		t.Fatalf("expected %s, got %s", want, strings.Join(got, ","))
	}
}

func TestDispatch_LastCallbackAssignmentWins(t *testing.T) {
	w := NewWindowTable().Add(DefaultWindowConfig(), 1, nil)
	calls := 0
	w.OnClose = func() { calls += 10 }
	w.OnClose = func() { calls++ }
	Dispatch(WindowCloseEvent{Target: At(w)})
	if calls != 1 {
		t.Fatalf("expected only the last callback to run, got %d", calls)
	}
}

func TestDispatch_DropsEventsForDestroyedWindow(t *testing.T) {
	table := NewWindowTable()
	w := table.Add(DefaultWindowConfig(), 7, nil)
	called := false
	w.OnResize = func(uint32, uint32) { called = true }

	var q EventQueue
	q.Push(WindowResizeEvent{Target: At(w), Width: 1, Height: 1})
	table.Remove(w)

	if Dispatch(q.Pop()) {
		t.Fatalf("expected event for destroyed window to be dropped")
	}
	if called {
		t.Fatalf("expected no callback for destroyed window")
	}
	if !Dispatch(QuitEvent{}) {
		t.Fatalf("expected global event to be delivered")
	}
}

func TestKeyCode_StringAndValid(t *testing.T) {
	tests := []struct {
		key   KeyCode
		name  string
		valid bool
	}{
		{KeyUnknown, "Unknown", false},
		{KeyA, "A", true},
		{KeyZ, "Z", true},
		{Key0, "0", true},
		{Key9, "9", true},
		{KeyF1, "F1", true},
		{KeyF12, "F12", true},
		{KeyEscape, "Escape", true},
		{KeyPageDown, "PageDown", true},
		{KeyRightSuper, "RightSuper", true},
		{keyLast, "KeyCode(" + strconv.Itoa(int(keyLast)) + ")", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.name {
				t.Fatalf("expected %q, got %q", tt.name, got)
			}
			if got := tt.key.Valid(); got != tt.valid {
				t.Fatalf("expected valid=%v, got %v", tt.valid, got)
			}
		})
	}
}

func TestModifiers_String(t *testing.T) {
	if got := ModNone.String(); got != "None" {
		t.Fatalf("expected None, got %q", got)
	}
	m := ModCtrl | ModShift
	if got := m.String(); got != "Shift+Ctrl" {
		t.Fatalf("expected Shift+Ctrl, got %q", got)
	}
	if !m.Has(ModCtrl) || m.Has(ModAlt) {
		t.Fatalf("unexpected Has result for %v", m)
	}
}

func TestNewTextInput_Truncates(t *testing.T) {
	short := NewTextInput(nil, "hello")
	if short.Text != "hello" {
		t.Fatalf("expected hello, got %q", short.Text)
	}

	long := NewTextInput(nil, strings.Repeat("a", 40))
	if len(long.Text) != MaxTextInput {
		t.Fatalf("expected %d bytes, got %d", MaxTextInput, len(long.Text))
	}

	// 15 two-byte runes fill 30 bytes; the 16th would straddle the limit.
	multi := NewTextInput(nil, strings.Repeat("é", 16))
	if len(multi.Text) != 30 {
		t.Fatalf("expected truncation to 30 bytes, got %d", len(multi.Text))
	}
	if !utf8.ValidString(multi.Text) {
		t.Fatalf("expected valid UTF-8 after truncation")
	}
}

func TestWindowConfig_Defaults(t *testing.T) {
	cfg := DefaultWindowConfig()
	if cfg.Title != "Aurora Window" || cfg.Width != 800 || cfg.Height != 600 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Centered() || cfg.Kind != WindowNormal || !cfg.Decorated || !cfg.Resizable || cfg.Opacity != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseWindowKind(t *testing.T) {
	k, err := ParseWindowKind("dock")
	if err != nil || k != WindowDock {
		t.Fatalf("expected dock, got %v (%v)", k, err)
	}
	if k, err := ParseWindowKind(""); err != nil || k != WindowNormal {
		t.Fatalf("expected empty to mean normal, got %v (%v)", k, err)
	}
	if _, err := ParseWindowKind("floating"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestWindowTable_CenteredWindowStartsAtOrigin(t *testing.T) {
	table := NewWindowTable()
	cfg := DefaultWindowConfig()
	cfg.Width, cfg.Height = 1024, 768

	w := table.Add(cfg, 100, nil)
	if x, y := w.Position(); x != 0 || y != 0 {
		t.Fatalf("expected position (0,0), got (%d,%d)", x, y)
	}

	cfg.X, cfg.Y = 40, 60
	placed := table.Add(cfg, 101, nil)
	if x, y := placed.Position(); x != 40 || y != 60 {
		t.Fatalf("expected position (40,60), got (%d,%d)", x, y)
	}
}

func TestWindowTable_AddLookupRemove(t *testing.T) {
	table := NewWindowTable()
	cfg := DefaultWindowConfig()
	cfg.Width, cfg.Height = 1024, 768

	a := table.Add(cfg, 100, nil)
	b := table.Add(DefaultWindowConfig(), 200, nil)
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct ids")
	}
	if w, h := a.Size(); w != 1024 || h != 768 {
		t.Fatalf("expected 1024x768, got %dx%d", w, h)
	}
	if table.Lookup(100) != a || table.Lookup(200) != b {
		t.Fatalf("lookup returned wrong window")
	}

	if !table.Remove(a) {
		t.Fatalf("expected remove to succeed")
	}
	if a.Alive() {
		t.Fatalf("expected removed window to be dead")
	}
	if table.Lookup(100) != nil {
		t.Fatalf("expected destroyed window not to be found")
	}
	if table.Remove(a) {
		t.Fatalf("expected second remove to fail")
	}
	if all := table.All(); len(all) != 1 || all[0] != b {
		t.Fatalf("expected only b to remain, got %d windows", len(all))
	}
}

func TestWindow_OperationsDelegateToDriver(t *testing.T) {
	d := &recordingDriver{}
	w := NewWindowTable().Add(DefaultWindowConfig(), 1, d)

	if err := w.Show(); err != nil {
		t.Fatalf("show: %v", err)
	}
	if err := w.SetTitle("renamed"); err != nil {
		t.Fatalf("title: %v", err)
	}
	if err := w.SetOpacity(2); err != nil {
		t.Fatalf("opacity: %v", err)
	}
	if w.Config().Title != "renamed" {
		t.Fatalf("expected title renamed, got %q", w.Config().Title)
	}
	if w.Config().Opacity != 1 {
		t.Fatalf("expected opacity clamped to 1, got %v", w.Config().Opacity)
	}
	if strings.Join(d.calls, ",") != "show,title,opacity" {
		t.Fatalf("unexpected driver calls %v", d.calls)
	}
}

func TestWindow_OperationsFailAfterDestroy(t *testing.T) {
	d := &recordingDriver{}
	table := NewWindowTable()
	w := table.Add(DefaultWindowConfig(), 1, d)
	table.Remove(w)

	if err := w.Show(); !errors.Is(err, ErrUnknownWindow) {
		t.Fatalf("expected ErrUnknownWindow, got %v", err)
	}
	if len(d.calls) != 0 {
		t.Fatalf("expected no driver calls, got %v", d.calls)
	}
}

func TestCheckContext(t *testing.T) {
	table := NewWindowTable()
	a := table.Add(DefaultWindowConfig(), 1, nil)
	b := table.Add(DefaultWindowConfig(), 2, nil)
	ctx := NewGLContext(a, nil)

	if err := CheckContext(a, ctx); err != nil {
		t.Fatalf("expected matching context, got %v", err)
	}
	if err := CheckContext(b, ctx); !errors.Is(err, ErrContextMismatch) {
		t.Fatalf("expected ErrContextMismatch, got %v", err)
	}
	if err := CheckContext(a, nil); !errors.Is(err, ErrContextMismatch) {
		t.Fatalf("expected ErrContextMismatch for nil context, got %v", err)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New("wayland", Options{})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
