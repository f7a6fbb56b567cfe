package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EventMask is the set of events every created window listens for.
const EventMask = xproto.EventMaskExposure |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange

// WindowParams describes a top-level window.
type WindowParams struct {
	Title string
	// X and Y are ignored when UserPosition is false.
	X, Y          int
	Width, Height int
	UserPosition  bool
	Resizable     bool
	Decorated     bool
	AlwaysOnTop   bool
	// Type is an EWMH window type suffix such as "NORMAL" or "DOCK".
	Type    string
	Opacity float64
	// Visual selects a non-default visual, e.g. the one matching an EGL
	// config. Zero uses the root visual.
	Visual xproto.Visualid
}

// CreateWindow creates an unmapped top-level window with its hints applied.
func (c *Connection) CreateWindow(p WindowParams) (xproto.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("generate window id: %w", err)
	}

	depth := c.XUtil.Screen().RootDepth
	visual := c.XUtil.Screen().RootVisual
	mask := uint32(xproto.CwBackPixel | xproto.CwEventMask)
	values := []uint32{0, uint32(EventMask)}

	if p.Visual != 0 && p.Visual != visual {
		d, ok := c.visualDepth(p.Visual)
		if !ok {
			return 0, fmt.Errorf("visual 0x%x not offered by screen", p.Visual)
		}
		cmap, err := xproto.NewColormapId(c.XUtil.Conn())
		if err != nil {
			return 0, fmt.Errorf("generate colormap id: %w", err)
		}
		if err := xproto.CreateColormapChecked(c.XUtil.Conn(), xproto.ColormapAllocNone, cmap, c.Root, p.Visual).Check(); err != nil {
			return 0, fmt.Errorf("create colormap: %w", err)
		}
		depth, visual = d, p.Visual
		mask = xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask | xproto.CwColormap
		values = []uint32{0, 0, uint32(EventMask), uint32(cmap)}
	}

	err = xproto.CreateWindowChecked(c.XUtil.Conn(), depth, win.Id, c.Root,
		int16(p.X), int16(p.Y), uint16(p.Width), uint16(p.Height), 0,
		xproto.WindowClassInputOutput, visual, mask, values).Check()
	if err != nil {
		return 0, fmt.Errorf("create window: %w", err)
	}

	if err := c.applyHints(win.Id, p); err != nil {
		win.Destroy()
		return 0, err
	}
	return win.Id, nil
}

func (c *Connection) applyHints(id xproto.Window, p WindowParams) error {
	if err := icccm.WmProtocolsSet(c.XUtil, id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("set WM_PROTOCOLS: %w", err)
	}
	if err := c.SetTitle(id, p.Title); err != nil {
		return err
	}

	hints := &icccm.NormalHints{}
	if p.UserPosition {
		hints.Flags |= icccm.SizeHintUSPosition
		hints.X, hints.Y = p.X, p.Y
	}
	if !p.Resizable {
		hints.Flags |= icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
		hints.MinWidth, hints.MaxWidth = uint(p.Width), uint(p.Width)
		hints.MinHeight, hints.MaxHeight = uint(p.Height), uint(p.Height)
	}
	if hints.Flags != 0 {
		if err := icccm.WmNormalHintsSet(c.XUtil, id, hints); err != nil {
			return fmt.Errorf("set WM_NORMAL_HINTS: %w", err)
		}
	}

	if !p.Decorated {
		mh := &motif.Hints{Flags: motif.HintDecorations, Decoration: motif.DecorationNone}
		if err := motif.WmHintsSet(c.XUtil, id, mh); err != nil {
			return fmt.Errorf("set _MOTIF_WM_HINTS: %w", err)
		}
	}

	if err := c.SetWindowType(id, p.Type); err != nil {
		return err
	}
	if p.AlwaysOnTop {
		if err := ewmh.WmStateSet(c.XUtil, id, []string{"_NET_WM_STATE_ABOVE"}); err != nil {
			return fmt.Errorf("set _NET_WM_STATE: %w", err)
		}
	}
	if p.Opacity < 1 {
		if err := c.SetOpacity(id, p.Opacity); err != nil {
			return err
		}
	}
	return nil
}

// SetWindowType sets _NET_WM_WINDOW_TYPE from a suffix such as "DOCK".
func (c *Connection) SetWindowType(id xproto.Window, kind string) error {
	if kind == "" {
		kind = "NORMAL"
	}
	if err := ewmh.WmWindowTypeSet(c.XUtil, id, []string{"_NET_WM_WINDOW_TYPE_" + kind}); err != nil {
		return fmt.Errorf("set _NET_WM_WINDOW_TYPE: %w", err)
	}
	return nil
}

// SetTitle sets both the EWMH UTF-8 and the ICCCM window names.
func (c *Connection) SetTitle(id xproto.Window, title string) error {
	if err := ewmh.WmNameSet(c.XUtil, id, title); err != nil {
		return fmt.Errorf("set _NET_WM_NAME: %w", err)
	}
	if err := icccm.WmNameSet(c.XUtil, id, title); err != nil {
		return fmt.Errorf("set WM_NAME: %w", err)
	}
	return nil
}

// SetOpacity sets _NET_WM_WINDOW_OPACITY; compositors apply it.
func (c *Connection) SetOpacity(id xproto.Window, opacity float64) error {
	if err := ewmh.WmWindowOpacitySet(c.XUtil, id, opacity); err != nil {
		return fmt.Errorf("set _NET_WM_WINDOW_OPACITY: %w", err)
	}
	return nil
}

func (c *Connection) MapWindow(id xproto.Window) {
	xwindow.New(c.XUtil, id).Map()
}

func (c *Connection) UnmapWindow(id xproto.Window) {
	xwindow.New(c.XUtil, id).Unmap()
}

func (c *Connection) DestroyWindow(id xproto.Window) {
	xwindow.New(c.XUtil, id).Destroy()
}

// MoveWindow moves a window, going through the window manager when one
// supports _NET_MOVERESIZE_WINDOW.
func (c *Connection) MoveWindow(id xproto.Window, x, y int) {
	if err := ewmh.MoveWindow(c.XUtil, id, x, y); err != nil {
		xwindow.New(c.XUtil, id).Move(x, y)
	}
}

func (c *Connection) ResizeWindow(id xproto.Window, width, height int) {
	if err := ewmh.ResizeWindow(c.XUtil, id, width, height); err != nil {
		xwindow.New(c.XUtil, id).Resize(width, height)
	}
}

// RequestClose asks the window manager to close the window. The request comes
// back as a WM_DELETE_WINDOW client message.
func (c *Connection) RequestClose(id xproto.Window) error {
	if err := ewmh.CloseWindow(c.XUtil, id); err != nil {
		return c.sendDeleteWindow(id)
	}
	return nil
}

func (c *Connection) sendDeleteWindow(id xproto.Window) error {
	data := xproto.ClientMessageDataUnionData32New([]uint32{uint32(c.WMDeleteWindow), uint32(xproto.TimeCurrentTime), 0, 0, 0})
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: id,
		Type:   c.WMProtocols,
		Data:   data,
	}
	return xproto.SendEventChecked(c.XUtil.Conn(), false, id, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// IsDeleteWindow reports whether ev carries the WM_DELETE_WINDOW protocol.
func IsDeleteWindow(ev xproto.ClientMessageEvent, protocols, deleteWindow xproto.Atom) bool {
	if ev.Type != protocols || ev.Format != 32 || len(ev.Data.Data32) == 0 {
		return false
	}
	return xproto.Atom(ev.Data.Data32[0]) == deleteWindow
}

// IsARGBVisual reports whether the screen offers visual at depth 32.
func (c *Connection) IsARGBVisual(visual xproto.Visualid) bool {
	d, ok := c.visualDepth(visual)
	return ok && d == 32
}

func (c *Connection) visualDepth(visual xproto.Visualid) (byte, bool) {
	for _, d := range c.XUtil.Screen().AllowedDepths {
		for _, v := range d.Visuals {
			if v.VisualId == visual {
				return d.Depth, true
			}
		}
	}
	return 0, false
}
