package platform

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

const (
	testOpaqueVisual xproto.Visualid = 0x21
	testARGBVisual   xproto.Visualid = 0x5a
)

func TestX11WindowParams_Defaults(t *testing.T) {
	cfg := DefaultWindowConfig()
	p, transparent := x11WindowParams(cfg, testOpaqueVisual, testARGBVisual)
	if transparent {
		t.Fatalf("expected opaque window")
	}
	if p.Visual != testOpaqueVisual {
		t.Fatalf("expected visual 0x%x, got 0x%x", testOpaqueVisual, p.Visual)
	}
	if p.UserPosition || p.X != 0 || p.Y != 0 {
		t.Fatalf("expected window-manager placement, got %+v", p)
	}
	if p.Width != 800 || p.Height != 600 || p.Type != "NORMAL" || p.Opacity != 1 {
		t.Fatalf("unexpected params %+v", p)
	}
	if !p.Decorated || !p.Resizable || p.AlwaysOnTop {
		t.Fatalf("unexpected flags %+v", p)
	}
}

func TestX11WindowParams_TransparentUsesARGBVisual(t *testing.T) {
	cfg := DefaultWindowConfig()
	cfg.Transparent = true

	p, transparent := x11WindowParams(cfg, testOpaqueVisual, testARGBVisual)
	if !transparent {
		t.Fatalf("expected transparent window")
	}
	if p.Visual != testARGBVisual {
		t.Fatalf("expected argb visual 0x%x, got 0x%x", testARGBVisual, p.Visual)
	}
}

func TestX11WindowParams_TransparentWithoutARGBFallsBack(t *testing.T) {
	cfg := DefaultWindowConfig()
	cfg.Transparent = true

	p, transparent := x11WindowParams(cfg, testOpaqueVisual, 0)
	if transparent {
		t.Fatalf("expected opaque fallback")
	}
	if p.Visual != testOpaqueVisual {
		t.Fatalf("expected visual 0x%x, got 0x%x", testOpaqueVisual, p.Visual)
	}
}

func TestX11WindowParams_PlacementAndHints(t *testing.T) {
	cfg := DefaultWindowConfig()
	cfg.X, cfg.Y = 10, 20
	cfg.Kind = WindowDock
	cfg.AlwaysOnTop = true
	cfg.Decorated = false
	cfg.Opacity = 1.5

	p, _ := x11WindowParams(cfg, testOpaqueVisual, testARGBVisual)
	if !p.UserPosition || p.X != 10 || p.Y != 20 {
		t.Fatalf("expected user position (10,20), got %+v", p)
	}
	if p.Type != "DOCK" || !p.AlwaysOnTop || p.Decorated {
		t.Fatalf("unexpected hints %+v", p)
	}
	if p.Opacity != 1 {
		t.Fatalf("expected opacity clamped to 1, got %v", p.Opacity)
	}
}
