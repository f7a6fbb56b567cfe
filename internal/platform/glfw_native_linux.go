//go:build linux

package platform

import (
	"github.com/1broseidon/aurora/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// applyNativeKind sets the EWMH window type of a GLFW window, which GLFW
// itself does not expose. The window must not be mapped yet.
func applyNativeKind(gw *glfw.Window, kind WindowKind, display string) error {
	if kind == WindowNormal {
		return nil
	}
	conn, err := x11.NewConnection(display)
	if err != nil {
		return err
	}
	defer conn.Close()

	id := xproto.Window(gw.GetX11Window())
	if err := conn.SetWindowType(id, ewmhWindowType(kind)); err != nil {
		return err
	}
	conn.Flush()
	return nil
}
