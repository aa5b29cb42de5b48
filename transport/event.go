package transport

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/patrislav/tilewm/core"
)

// NextEvent blocks for the next raw X event, same as the teacher's
// x11.X.WaitForEvent() call in its Run() loop. The driver type-switches on
// the result directly, so this package never needs its own Event union. The
// returned error is either a connection-level failure or a decoded X
// protocol error (e.g. xproto.BadWindowError); both satisfy the standard
// error interface and the driver logs-and-continues on either.
func (t *Transport) NextEvent() (xgb.Event, error) {
	return t.X.Conn().WaitForEvent()
}

// ExistingWindows queries the root window's children, giving the driver a
// "known" set to filter a restore file against (spec §4.6/§4.8: stale IDs
// from a crash must not survive a restore).
func (t *Transport) ExistingWindows() (map[core.Window]bool, error) {
	tree, err := xproto.QueryTree(t.X.Conn(), t.X.RootWin()).Reply()
	if err != nil {
		return nil, err
	}
	known := make(map[core.Window]bool, len(tree.Children))
	for _, w := range tree.Children {
		known[core.Window(w)] = true
	}
	return known, nil
}

// IsOverrideRedirect reports whether w opted out of window management
// entirely (used on MapRequest, matching the teacher's check before
// calling manageWindow).
func (t *Transport) IsOverrideRedirect(w xproto.Window) bool {
	attr, err := xproto.GetWindowAttributes(t.X.Conn(), w).Reply()
	if err != nil {
		return false
	}
	return attr.OverrideRedirect
}
