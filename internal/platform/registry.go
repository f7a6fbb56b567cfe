package platform

import "sort"

// WindowTable is an adapter's table of live windows keyed by native handle.
// The adapter is the single owner; events hold non-owning pointers and are
// checked with Window.Alive before use.
type WindowTable struct {
	nextID  WindowID
	windows map[uint64]*Window
}

func NewWindowTable() *WindowTable {
	return &WindowTable{windows: make(map[uint64]*Window)}
}

// Add registers a new live window for native.
func (t *WindowTable) Add(cfg WindowConfig, native uint64, driver WindowDriver) *Window {
	t.nextID++
	w := newWindow(t.nextID, cfg, native, driver)
	t.windows[native] = w
	return w
}

// Lookup attributes a native event to its window. Destroyed windows are
// never returned.
func (t *WindowTable) Lookup(native uint64) *Window {
	return t.windows[native]
}

// Owns reports whether w is the live window registered under its handle.
func (t *WindowTable) Owns(w *Window) bool {
	if !w.Alive() {
		return false
	}
	return t.windows[w.native] == w
}

// Remove unregisters w and marks it destroyed. It reports false when w was
// not owned by the table.
func (t *WindowTable) Remove(w *Window) bool {
	if !t.Owns(w) {
		return false
	}
	delete(t.windows, w.native)
	w.alive = false
	return true
}

func (t *WindowTable) Len() int { return len(t.windows) }

// All returns live windows ordered by id.
func (t *WindowTable) All() []*Window {
	out := make([]*Window, 0, len(t.windows))
	for _, w := range t.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
