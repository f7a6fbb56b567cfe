package platform

import (
	"fmt"
	"strings"
)

// KeyCode is a portable key identifier. Letters and digits use their ASCII
// upper-case code; everything else starts at 256.
type KeyCode int

const (
	KeyUnknown KeyCode = 0

	KeyA KeyCode = 'A' + iota - 1
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

const (
	Key0 KeyCode = '0' + iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

const (
	KeyF1 KeyCode = 256 + iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyEscape
	KeyTab
	KeySpace
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyPrintScreen
	KeyPause

	KeyLeftShift
	KeyRightShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper

	keyLast
)

var specialKeyNames = [...]string{
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Escape", "Tab", "Space", "Enter", "Backspace", "Delete",
	"Up", "Down", "Left", "Right",
	"Home", "End", "PageUp", "PageDown",
	"Insert", "PrintScreen", "Pause",
	"LeftShift", "RightShift", "LeftCtrl", "RightCtrl",
	"LeftAlt", "RightAlt", "LeftSuper", "RightSuper",
}

// Valid reports whether k is a defined key other than KeyUnknown.
func (k KeyCode) Valid() bool {
	switch {
	case k >= KeyA && k <= KeyZ:
		return true
	case k >= Key0 && k <= Key9:
		return true
	case k >= KeyF1 && k < keyLast:
		return true
	}
	return false
}

func (k KeyCode) String() string {
	switch {
	case k == KeyUnknown:
		return "Unknown"
	case k >= KeyA && k <= KeyZ, k >= Key0 && k <= Key9:
		return string(rune(k))
	case k >= KeyF1 && k < keyLast:
		return specialKeyNames[k-KeyF1]
	}
	return fmt.Sprintf("KeyCode(%d)", int(k))
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonX1
	MouseButtonX2
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonMiddle:
		return "Middle"
	case MouseButtonRight:
		return "Right"
	case MouseButtonX1:
		return "X1"
	case MouseButtonX2:
		return "X2"
	}
	return "None"
}

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper

	ModNone Modifiers = 0
)

// Has reports whether all bits of m are set.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

func (mods Modifiers) String() string {
	if mods == ModNone {
		return "None"
	}
	var parts []string
	if mods.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if mods.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if mods.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if mods.Has(ModSuper) {
		parts = append(parts, "Super")
	}
	return strings.Join(parts, "+")
}
