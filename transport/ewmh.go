package transport

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/patrislav/tilewm/core"
)

// PublishDesktops writes _NET_NUMBER_OF_DESKTOPS, _NET_CURRENT_DESKTOP, and
// _NET_DESKTOP_NAMES from the workspace set, and _NET_DESKTOP_VIEWPORT from
// each workspace's screen origin.
func (t *Transport) PublishDesktops(st *core.WmState) {
	ewmh.NumberOfDesktopsSet(t.X, uint(len(st.Workspaces)))
	ewmh.CurrentDesktopSet(t.X, uint(st.Current))

	names := make([]string, len(st.Workspaces))
	viewports := make([]ewmh.DesktopViewport, len(st.Workspaces))
	screens := t.ScreenInfos()
	for i, ws := range st.Workspaces {
		names[i] = ws.Tag
		var vp ewmh.DesktopViewport
		if ws.Screen < len(screens) {
			vp.X, vp.Y = screens[ws.Screen].X, screens[ws.Screen].Y
		}
		viewports[i] = vp
	}
	ewmh.DesktopNamesSet(t.X, names)
	ewmh.DesktopViewportSet(t.X, viewports)
}

// PublishClientList writes _NET_CLIENT_LIST from every window across every
// workspace, workspace order then stack order (matching the source).
func (t *Transport) PublishClientList(st *core.WmState) {
	var clients []xproto.Window
	for _, ws := range st.Workspaces {
		for _, w := range ws.All() {
			clients = append(clients, xproto.Window(w))
		}
	}
	ewmh.ClientListSet(t.X, clients)
}

// PublishActiveWindow writes _NET_ACTIVE_WINDOW from the current
// workspace's focused window, or the root window if nothing is focused.
func (t *Transport) PublishActiveWindow(st *core.WmState) {
	w, ok := st.CurrentWorkspace().FocusedWindow()
	if !ok {
		ewmh.ActiveWindowSet(t.X, t.X.RootWin())
		return
	}
	ewmh.ActiveWindowSet(t.X, xproto.Window(w))
}

// PublishAll refreshes every EWMH property the driver keeps current after
// a state-mutating command (spec §4.7).
func (t *Transport) PublishAll(st *core.WmState) {
	t.PublishDesktops(st)
	t.PublishClientList(st)
	t.PublishActiveWindow(st)
}

// WmStateMode is the closed set of _NET_WM_STATE change-property modes a
// client or driver can request.
type WmStateMode int

const (
	WmStateRemove WmStateMode = iota
	WmStateAdd
	WmStateToggle
)

// SetWmState adds/removes/toggles the given _NET_WM_STATE atoms on w and
// reports whether _NET_WM_STATE_FULLSCREEN ended up in the active set.
func (t *Transport) SetWmState(w core.Window, states []string, mode WmStateMode) bool {
	win := xproto.Window(w)
	active, _ := ewmh.WmStateGet(t.X, win)

	switch mode {
	case WmStateRemove:
		active = subtract(active, states)
		ewmh.WmStateSet(t.X, win, active)
	case WmStateAdd:
		active = union(active, states)
		ewmh.WmStateSet(t.X, win, active)
	case WmStateToggle:
		active = toggle(active, states)
		ewmh.WmStateSet(t.X, win, active)
	}

	for _, s := range active {
		if s == "_NET_WM_STATE_FULLSCREEN" {
			return true
		}
	}
	return false
}

// WmStateHasFullscreen reports whether w's _NET_WM_STATE currently includes
// _NET_WM_STATE_FULLSCREEN, read fresh from the property. Used when a
// client sets the property on itself directly (observed via PropertyNotify)
// rather than requesting the change through a ClientMessage.
func (t *Transport) WmStateHasFullscreen(w core.Window) bool {
	active, err := ewmh.WmStateGet(t.X, xproto.Window(w))
	if err != nil {
		return false
	}
	return contains(active, "_NET_WM_STATE_FULLSCREEN")
}

func subtract(active, remove []string) []string {
	out := active[:0:0]
	for _, a := range active {
		if !contains(remove, a) {
			out = append(out, a)
		}
	}
	return out
}

func union(active, add []string) []string {
	out := append([]string{}, active...)
	for _, a := range add {
		if !contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}

func toggle(active, states []string) []string {
	out := append([]string{}, active...)
	for _, s := range states {
		if contains(out, s) {
			out = subtract(out, []string{s})
		} else {
			out = append(out, s)
		}
	}
	return out
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
