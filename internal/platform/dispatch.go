package platform

// Dispatch delivers ev to the callbacks of its window. It reports false when
// the event was dropped because its window has been destroyed. Events
// without a window, or of a kind that has no window callback, are accepted
// and left to the caller.
func Dispatch(ev Event) bool {
	w := ev.Window()
	if w == nil {
		return true
	}
	if !w.Alive() {
		return false
	}

	switch e := ev.(type) {
	case WindowCloseEvent:
		if w.OnClose != nil {
			w.OnClose()
		}
	case WindowResizeEvent:
		if w.OnResize != nil {
			w.OnResize(e.Width, e.Height)
		}
	case WindowMoveEvent:
		if w.OnMove != nil {
			w.OnMove(e.X, e.Y)
		}
	case WindowFocusEvent:
		if w.OnFocus != nil {
			w.OnFocus()
		}
	case WindowBlurEvent:
		if w.OnBlur != nil {
			w.OnBlur()
		}
	}
	return true
}
