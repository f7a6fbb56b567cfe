package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// KeyLookup resolves key codes to keysym names through the server keyboard
// mapping loaded by NewConnection.
type KeyLookup struct {
	xu     *xgbutil.XUtil
	ignore uint16
}

func (c *Connection) Keys() KeyLookup {
	// Num and Scroll Lock must not change which symbol a key resolves to.
	ignore := modMaskForKeysym(c.XUtil, "Num_Lock") | modMaskForKeysym(c.XUtil, "Scroll_Lock")
	return KeyLookup{xu: c.XUtil, ignore: ignore}
}

// KeysymName returns the keysym name of keycode with modifiers applied, e.g.
// "a", "A", "Return" or "Shift_L". Pass state 0 for the unshifted symbol.
func (k KeyLookup) KeysymName(keycode xproto.Keycode, state uint16) string {
	return keybind.LookupString(k.xu, state&^k.ignore, keycode)
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
