package platform

import "unicode/utf8"

// EventType enumerates the portable event kinds.
type EventType int

const (
	EventNone EventType = iota
	EventQuit

	EventWindowClose
	EventWindowResize
	EventWindowMove
	EventWindowFocus
	EventWindowBlur

	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseScroll
	EventMouseEnter
	EventMouseLeave

	EventKeyDown
	EventKeyUp
	EventTextInput

	EventTouchBegin
	EventTouchMove
	EventTouchEnd
)

var eventTypeNames = [...]string{
	EventNone:         "None",
	EventQuit:         "Quit",
	EventWindowClose:  "WindowClose",
	EventWindowResize: "WindowResize",
	EventWindowMove:   "WindowMove",
	EventWindowFocus:  "WindowFocus",
	EventWindowBlur:   "WindowBlur",
	EventMouseMove:    "MouseMove",
	EventMouseDown:    "MouseDown",
	EventMouseUp:      "MouseUp",
	EventMouseScroll:  "MouseScroll",
	EventMouseEnter:   "MouseEnter",
	EventMouseLeave:   "MouseLeave",
	EventKeyDown:      "KeyDown",
	EventKeyUp:        "KeyUp",
	EventTextInput:    "TextInput",
	EventTouchBegin:   "TouchBegin",
	EventTouchMove:    "TouchMove",
	EventTouchEnd:     "TouchEnd",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "Unknown"
}

// MaxTextInput is the largest TextInput payload in bytes.
const MaxTextInput = 31

// Event is an occurrence delivered by an Adapter. The concrete type carries
// the payload; switch on it to read fields.
type Event interface {
	Type() EventType
	// Window returns the window the event targets, or nil for global events.
	Window() *Window
	isEvent()
}

// Target addresses an event to a window. Every event type embeds it.
type Target struct{ W *Window }

// At returns a Target for w.
func At(w *Window) Target { return Target{W: w} }

func (t Target) Window() *Window { return t.W }
func (Target) isEvent()          {}

// NoEvent is returned by NextEvent when the queue is empty.
type NoEvent struct{ Target }

func (NoEvent) Type() EventType { return EventNone }

type QuitEvent struct{ Target }

func (QuitEvent) Type() EventType { return EventQuit }

type WindowCloseEvent struct{ Target }

func (WindowCloseEvent) Type() EventType { return EventWindowClose }

type WindowResizeEvent struct {
	Target
	Width  uint32
	Height uint32
}

func (WindowResizeEvent) Type() EventType { return EventWindowResize }

type WindowMoveEvent struct {
	Target
	X int32
	Y int32
}

func (WindowMoveEvent) Type() EventType { return EventWindowMove }

type WindowFocusEvent struct{ Target }

func (WindowFocusEvent) Type() EventType { return EventWindowFocus }

type WindowBlurEvent struct{ Target }

func (WindowBlurEvent) Type() EventType { return EventWindowBlur }

type MouseMoveEvent struct {
	Target
	X float32
	Y float32
}

func (MouseMoveEvent) Type() EventType { return EventMouseMove }

type MouseDownEvent struct {
	Target
	Button MouseButton
	X      float32
	Y      float32
}

func (MouseDownEvent) Type() EventType { return EventMouseDown }

type MouseUpEvent struct {
	Target
	Button MouseButton
	X      float32
	Y      float32
}

func (MouseUpEvent) Type() EventType { return EventMouseUp }

type MouseScrollEvent struct {
	Target
	DX float32
	DY float32
}

func (MouseScrollEvent) Type() EventType { return EventMouseScroll }

type MouseEnterEvent struct{ Target }

func (MouseEnterEvent) Type() EventType { return EventMouseEnter }

type MouseLeaveEvent struct{ Target }

func (MouseLeaveEvent) Type() EventType { return EventMouseLeave }

// KeyDownEvent reports a key press. Native holds the backend key code so
// that unrecognized keys (Key == KeyUnknown) can still be inspected.
type KeyDownEvent struct {
	Target
	Key    KeyCode
	Mods   Modifiers
	Repeat bool
	Native uint32
}

func (KeyDownEvent) Type() EventType { return EventKeyDown }

type KeyUpEvent struct {
	Target
	Key    KeyCode
	Mods   Modifiers
	Native uint32
}

func (KeyUpEvent) Type() EventType { return EventKeyUp }

type TextInputEvent struct {
	Target
	Text string
}

func (TextInputEvent) Type() EventType { return EventTextInput }

type TouchBeginEvent struct {
	Target
	ID int64
	X  float32
	Y  float32
}

func (TouchBeginEvent) Type() EventType { return EventTouchBegin }

type TouchMoveEvent struct {
	Target
	ID int64
	X  float32
	Y  float32
}

func (TouchMoveEvent) Type() EventType { return EventTouchMove }

type TouchEndEvent struct {
	Target
	ID int64
	X  float32
	Y  float32
}

func (TouchEndEvent) Type() EventType { return EventTouchEnd }

// NewTextInput builds a TextInputEvent, truncating text to MaxTextInput
// bytes without splitting a UTF-8 sequence.
func NewTextInput(w *Window, text string) TextInputEvent {
	if len(text) > MaxTextInput {
		cut := MaxTextInput
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return TextInputEvent{Target: At(w), Text: text}
}
