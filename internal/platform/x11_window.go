package platform

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/aurora/internal/x11"
)

// x11WindowParams maps cfg onto X window parameters. Transparent windows get
// the argb visual when one exists; the second result reports whether the
// window will have an alpha channel.
func x11WindowParams(cfg WindowConfig, opaque, argb xproto.Visualid) (x11.WindowParams, bool) {
	p := x11.WindowParams{
		Title:        cfg.Title,
		X:            int(cfg.X),
		Y:            int(cfg.Y),
		Width:        int(cfg.Width),
		Height:       int(cfg.Height),
		UserPosition: !cfg.Centered(),
		Resizable:    cfg.Resizable,
		Decorated:    cfg.Decorated,
		AlwaysOnTop:  cfg.AlwaysOnTop,
		Type:         ewmhWindowType(cfg.Kind),
		Opacity:      float64(clampOpacity(cfg.Opacity)),
		Visual:       opaque,
	}
	if cfg.Centered() {
		p.X, p.Y = 0, 0
	}
	transparent := cfg.Transparent && argb != 0
	if transparent {
		p.Visual = argb
	}
	return p, transparent
}

// ewmhWindowType returns the _NET_WM_WINDOW_TYPE suffix for kind.
func ewmhWindowType(kind WindowKind) string {
	switch kind {
	case WindowDock:
		return "DOCK"
	case WindowPanel:
		return "TOOLBAR"
	case WindowPopup:
		return "POPUP_MENU"
	case WindowDesktop:
		return "DESKTOP"
	case WindowSplash:
		return "SPLASH"
	}
	return "NORMAL"
}
