//go:build linux && cgo

package x11

import (
	"os"
	"testing"
)

// openTestDisplay connects to $DISPLAY by name, skipping without a server.
func openTestDisplay(t *testing.T) (*Connection, string) {
	t.Helper()
	name := os.Getenv("DISPLAY")
	if name == "" {
		t.Skip("DISPLAY not set")
	}
	conn, err := NewConnection(name)
	if err != nil {
		t.Skipf("no X server: %v", err)
	}
	t.Cleanup(conn.Close)
	return conn, name
}

func TestOpenEGL_SurfaceOnNamedDisplay(t *testing.T) {
	conn, name := openTestDisplay(t)

	egl, err := OpenEGL(name, 0, conn.IsARGBVisual)
	if err != nil {
		t.Skipf("EGL unavailable: %v", err)
	}
	defer egl.Terminate()

	if egl.Visual() == 0 {
		t.Fatalf("expected a native visual")
	}
	if v := egl.ARGBVisual(); v != 0 && !conn.IsARGBVisual(v) {
		t.Fatalf("expected argb visual 0x%x to have depth 32", v)
	}

	for _, transparent := range []bool{false, true} {
		visual := egl.Visual()
		if transparent && egl.ARGBVisual() != 0 {
			visual = egl.ARGBVisual()
		}
		win, err := conn.CreateWindow(WindowParams{Title: "egl", Width: 64, Height: 64, Opacity: 1, Type: "NORMAL", Visual: visual})
		if err != nil {
			t.Fatalf("CreateWindow: %v", err)
		}
		surface, err := egl.CreateSurface(win, transparent)
		if err != nil {
			t.Fatalf("CreateSurface(transparent=%v): %v", transparent, err)
		}
		egl.DestroySurface(surface)
		conn.DestroyWindow(win)
	}
}
