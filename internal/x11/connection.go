package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Connection manages the X11 connection and the atoms used by windows.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom
}

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// Keysym tables for key translation.
	keybind.Initialize(xu)

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	if c.WMProtocols, err = xprop.Atm(xu, "WM_PROTOCOLS"); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("intern WM_PROTOCOLS: %w", err)
	}
	if c.WMDeleteWindow, err = xprop.Atm(xu, "WM_DELETE_WINDOW"); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("intern WM_DELETE_WINDOW: %w", err)
	}
	return c, nil
}

// PollEvents returns every event already received from the server without
// waiting for more. X errors are returned alongside.
func (c *Connection) PollEvents() ([]xgb.Event, []xgb.Error) {
	var events []xgb.Event
	var errs []xgb.Error
	conn := c.XUtil.Conn()
	for {
		ev, xerr := conn.PollForEvent()
		if ev == nil && xerr == nil {
			return events, errs
		}
		if xerr != nil {
			errs = append(errs, xerr)
		}
		if ev != nil {
			events = append(events, ev)
		}
	}
}

// Flush sends buffered requests to the server.
func (c *Connection) Flush() {
	c.XUtil.Conn().Sync()
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
