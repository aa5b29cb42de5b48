package transport

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/patrislav/tilewm/core"
)

// TransientFor implements core.Transport via WM_TRANSIENT_FOR.
func (t *Transport) TransientFor(w core.Window) (core.Window, bool) {
	parent, err := icccm.WmTransientForGet(t.X, xproto.Window(w))
	if err != nil || parent == 0 {
		return 0, false
	}
	return core.Window(parent), true
}

// IsFloatingWindow implements core.Transport: a window floats if it has a
// transient-for parent, or if _NET_WM_WINDOW_TYPE names it a dialog,
// utility, toolbar, splash, or menu rather than a normal top-level window.
func (t *Transport) IsFloatingWindow(w core.Window) bool {
	win := xproto.Window(w)
	if parent, err := icccm.WmTransientForGet(t.X, win); err == nil && parent != 0 {
		return true
	}
	types, err := ewmh.WmWindowTypeGet(t.X, win)
	if err != nil {
		return false
	}
	for _, typ := range types {
		switch typ {
		case "_NET_WM_WINDOW_TYPE_DIALOG",
			"_NET_WM_WINDOW_TYPE_UTILITY",
			"_NET_WM_WINDOW_TYPE_TOOLBAR",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_MENU":
			return true
		}
	}
	return false
}

// IsUrgent reports WM_HINTS's urgency bit for w, used by the driver on a
// PropertyNotify for WM_HINTS (spec §4.7).
func (t *Transport) IsUrgent(w core.Window) bool {
	hints, err := icccm.WmHintsGet(t.X, xproto.Window(w))
	if err != nil {
		return false
	}
	return hints.Flags&icccm.HintUrgency != 0
}

// WindowTitle implements the core.WindowTitler capability CmdLogHook needs,
// preferring _NET_WM_NAME (UTF-8) and falling back to WM_NAME.
func (t *Transport) WindowTitle(w core.Window) string {
	win := xproto.Window(w)
	if name, err := ewmh.WmNameGet(t.X, win); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(t.X, win)
	return name
}

// WindowClass returns WM_CLASS's second field (the class, as opposed to the
// instance name), used by the driver to look up a manage-hook for a newly
// mapped window.
func (t *Transport) WindowClass(w core.Window) (string, bool) {
	class, err := icccm.WmClassGet(t.X, xproto.Window(w))
	if err != nil || class.Class == "" {
		return "", false
	}
	return class.Class, true
}
