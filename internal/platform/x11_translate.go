package platform

import (
	"unicode/utf8"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/aurora/internal/x11"
)

// keysymResolver maps an X key code and modifier state to a keysym name.
type keysymResolver interface {
	KeysymName(keycode xproto.Keycode, state uint16) string
}

// x11Translator converts raw X events into portable events. It holds no
// connection so it can run against synthetic events.
type x11Translator struct {
	windows      *WindowTable
	keys         keysymResolver
	wmProtocols  xproto.Atom
	deleteWindow xproto.Atom

	// held is a key release from the end of the previous batch.
	held *xproto.KeyReleaseEvent
}

// translate converts one batch of pending X events in order. X reports
// auto-repeat as a release immediately followed by a press of the same key
// with the same timestamp. A release ending the batch is held until the next
// call so that a pair split across two pumps is still recognised.
func (t *x11Translator) translate(batch []xgb.Event, q *EventQueue) {
	carried := t.held != nil
	if carried {
		batch = append([]xgb.Event{*t.held}, batch...)
		t.held = nil
	}
	for i := 0; i < len(batch); i++ {
		rel, ok := batch[i].(xproto.KeyReleaseEvent)
		if ok && i+1 == len(batch) && !(carried && i == 0) {
			t.held = &rel
			return
		}
		if ok && i+1 < len(batch) {
			if press, ok := batch[i+1].(xproto.KeyPressEvent); ok &&
				press.Detail == rel.Detail && press.Time == rel.Time && press.Event == rel.Event {
				t.keyPress(press, true, q)
				i++
				continue
			}
		}
		t.one(batch[i], q)
	}
}

func (t *x11Translator) one(ev xgb.Event, q *EventQueue) {
	switch e := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		w := t.windows.Lookup(uint64(e.Window))
		if w == nil {
			return
		}
		x, y := int32(e.X), int32(e.Y)
		width, height := uint32(e.Width), uint32(e.Height)
		oldW, oldH := w.Size()
		oldX, oldY := w.Position()
		w.SetBounds(x, y, width, height)
		if width != oldW || height != oldH {
			q.Push(WindowResizeEvent{Target: At(w), Width: width, Height: height})
		}
		if x != oldX || y != oldY {
			q.Push(WindowMoveEvent{Target: At(w), X: x, Y: y})
		}

	case xproto.MotionNotifyEvent:
		if w := t.windows.Lookup(uint64(e.Event)); w != nil {
			q.Push(MouseMoveEvent{Target: At(w), X: float32(e.EventX), Y: float32(e.EventY)})
		}

	case xproto.ButtonPressEvent:
		w := t.windows.Lookup(uint64(e.Event))
		if w == nil {
			return
		}
		if dx, dy, ok := scrollDelta(e.Detail); ok {
			q.Push(MouseScrollEvent{Target: At(w), DX: dx, DY: dy})
			return
		}
		q.Push(MouseDownEvent{Target: At(w), Button: x11Button(e.Detail), X: float32(e.EventX), Y: float32(e.EventY)})

	case xproto.ButtonReleaseEvent:
		w := t.windows.Lookup(uint64(e.Event))
		if w == nil {
			return
		}
		if _, _, ok := scrollDelta(e.Detail); ok {
			return
		}
		q.Push(MouseUpEvent{Target: At(w), Button: x11Button(e.Detail), X: float32(e.EventX), Y: float32(e.EventY)})

	case xproto.KeyPressEvent:
		t.keyPress(e, false, q)

	case xproto.KeyReleaseEvent:
		w := t.windows.Lookup(uint64(e.Event))
		if w == nil {
			return
		}
		q.Push(KeyUpEvent{
			Target: At(w),
			Key:    keyFromKeysym(t.keys.KeysymName(e.Detail, 0)),
			Mods:   x11Modifiers(e.State),
			Native: uint32(e.Detail),
		})

	case xproto.EnterNotifyEvent:
		if w := t.windows.Lookup(uint64(e.Event)); w != nil {
			q.Push(MouseEnterEvent{Target: At(w)})
		}

	case xproto.LeaveNotifyEvent:
		if w := t.windows.Lookup(uint64(e.Event)); w != nil {
			q.Push(MouseLeaveEvent{Target: At(w)})
		}

	case xproto.FocusInEvent:
		if w := t.windows.Lookup(uint64(e.Event)); w != nil && e.Detail != xproto.NotifyDetailPointer {
			w.SetFocused(true)
			q.Push(WindowFocusEvent{Target: At(w)})
		}

	case xproto.FocusOutEvent:
		if w := t.windows.Lookup(uint64(e.Event)); w != nil && e.Detail != xproto.NotifyDetailPointer {
			w.SetFocused(false)
			q.Push(WindowBlurEvent{Target: At(w)})
		}

	case xproto.ClientMessageEvent:
		w := t.windows.Lookup(uint64(e.Window))
		if w == nil {
			return
		}
		if x11.IsDeleteWindow(e, t.wmProtocols, t.deleteWindow) {
			q.Push(WindowCloseEvent{Target: At(w)})
		}
	}
}

func (t *x11Translator) keyPress(e xproto.KeyPressEvent, repeat bool, q *EventQueue) {
	w := t.windows.Lookup(uint64(e.Event))
	if w == nil {
		return
	}
	q.Push(KeyDownEvent{
		Target: At(w),
		Key:    keyFromKeysym(t.keys.KeysymName(e.Detail, 0)),
		Mods:   x11Modifiers(e.State),
		Repeat: repeat,
		Native: uint32(e.Detail),
	})

	// Text is produced for printable symbols only, never while Ctrl, Alt or
	// Super is held.
	if x11Modifiers(e.State)&(ModCtrl|ModAlt|ModSuper) != 0 {
		return
	}
	if text := keysymText(t.keys.KeysymName(e.Detail, e.State)); text != "" {
		q.Push(NewTextInput(w, text))
	}
}

// scrollDelta maps the X wheel buttons 4-7 to scroll offsets.
func scrollDelta(b xproto.Button) (dx, dy float32, ok bool) {
	switch b {
	case 4:
		return 0, 1, true
	case 5:
		return 0, -1, true
	case 6:
		return -1, 0, true
	case 7:
		return 1, 0, true
	}
	return 0, 0, false
}

func x11Button(b xproto.Button) MouseButton {
	switch b {
	case xproto.ButtonIndex1:
		return MouseButtonLeft
	case xproto.ButtonIndex2:
		return MouseButtonMiddle
	case xproto.ButtonIndex3:
		return MouseButtonRight
	case 8:
		return MouseButtonX1
	case 9:
		return MouseButtonX2
	}
	return MouseButtonNone
}

func x11Modifiers(state uint16) Modifiers {
	var mods Modifiers
	if state&xproto.ModMaskShift != 0 {
		mods |= ModShift
	}
	if state&xproto.ModMaskControl != 0 {
		mods |= ModCtrl
	}
	if state&xproto.ModMask1 != 0 {
		mods |= ModAlt
	}
	if state&xproto.ModMask4 != 0 {
		mods |= ModSuper
	}
	return mods
}

var x11Keysyms = map[string]KeyCode{
	"F1": KeyF1, "F2": KeyF2, "F3": KeyF3, "F4": KeyF4,
	"F5": KeyF5, "F6": KeyF6, "F7": KeyF7, "F8": KeyF8,
	"F9": KeyF9, "F10": KeyF10, "F11": KeyF11, "F12": KeyF12,

	"Escape":       KeyEscape,
	"Tab":          KeyTab,
	"ISO_Left_Tab": KeyTab,
	"space":        KeySpace,
	"Return":       KeyEnter,
	"KP_Enter":     KeyEnter,
	"BackSpace":    KeyBackspace,
	"Delete":       KeyDelete,

	"Up":    KeyUp,
	"Down":  KeyDown,
	"Left":  KeyLeft,
	"Right": KeyRight,

	"Home":      KeyHome,
	"End":       KeyEnd,
	"Prior":     KeyPageUp,
	"Page_Up":   KeyPageUp,
	"Next":      KeyPageDown,
	"Page_Down": KeyPageDown,
	"Insert":    KeyInsert,
	"Print":     KeyPrintScreen,
	"Pause":     KeyPause,

	"Shift_L":   KeyLeftShift,
	"Shift_R":   KeyRightShift,
	"Control_L": KeyLeftCtrl,
	"Control_R": KeyRightCtrl,
	"Alt_L":     KeyLeftAlt,
	"Alt_R":     KeyRightAlt,
	"Super_L":   KeyLeftSuper,
	"Super_R":   KeyRightSuper,
}

// keyFromKeysym maps a keysym name to a KeyCode. Unmapped symbols yield
// KeyUnknown.
func keyFromKeysym(name string) KeyCode {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return KeyA + KeyCode(c-'a')
		case c >= 'A' && c <= 'Z':
			return KeyA + KeyCode(c-'A')
		case c >= '0' && c <= '9':
			return Key0 + KeyCode(c-'0')
		}
	}
	return x11Keysyms[name]
}

var x11KeysymText = map[string]string{
	"space": " ", "exclam": "!", "quotedbl": "\"", "numbersign": "#",
	"dollar": "$", "percent": "%", "ampersand": "&", "apostrophe": "'",
	"parenleft": "(", "parenright": ")", "asterisk": "*", "plus": "+",
	"comma": ",", "minus": "-", "period": ".", "slash": "/",
	"colon": ":", "semicolon": ";", "less": "<", "equal": "=",
	"greater": ">", "question": "?", "at": "@", "bracketleft": "[",
	"backslash": "\\", "bracketright": "]", "asciicircum": "^", "underscore": "_",
	"grave": "`", "braceleft": "{", "bar": "|", "braceright": "}",
	"asciitilde": "~",
}

// keysymText returns the text a keysym types, or "" for non-printing keys.
func keysymText(name string) string {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if r >= 0x20 && r != 0x7f {
			return name
		}
		return ""
	}
	return x11KeysymText[name]
}
