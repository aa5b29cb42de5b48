// Package transport implements the core.Transport contract over a real X11
// connection, plus the EWMH, keybinding, and raw-event surface the driver
// needs beyond the core's narrow contract.
package transport

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/patrislav/tilewm/core"
)

// Transport owns the X11 connection and everything that hangs off it: the
// xgbutil handle (atom cache, request queue), the EWMH supporting-check
// window, and a cache of per-window fullscreen bookkeeping the raw
// X protocol doesn't give us a cheap way to query.
type Transport struct {
	X *xgbutil.XUtil

	checkWin xproto.Window

	// fullscreen mirrors _NET_WM_STATE's fullscreen bit per window, since
	// core.Transport.IsFullscreen is asked on every redraw and re-querying
	// the property each time would be wasteful on a hot path.
	fullscreen map[xproto.Window]bool
}

// Connect opens the X11 display (honoring $DISPLAY, same as the C library)
// and wraps it in an xgbutil handle.
func Connect() (*Transport, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("open X display: %w", err)
	}
	return &Transport{X: xu, fullscreen: make(map[xproto.Window]bool)}, nil
}

// Close releases the X11 connection.
func (t *Transport) Close() {
	t.X.Conn().Close()
}

// BecomeWM registers for the substructure-redirect events that mark this
// connection as the window manager. Fails with an X AccessError if another
// WM already holds them.
func (t *Transport) BecomeWM() error {
	root := t.X.RootWin()
	mask := uint32(xproto.EventMaskKeyPress |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskFocusChange |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify)
	return xproto.ChangeWindowAttributesChecked(
		t.X.Conn(), root, xproto.CwEventMask, []uint32{mask},
	).Check()
}

// AdvertiseEWMH creates the supporting-check window and publishes
// _NET_SUPPORTED plus the check-window properties, once at startup.
func (t *Transport) AdvertiseEWMH(wmName string) error {
	check, err := xwindowCreateHidden(t.X)
	if err != nil {
		return fmt.Errorf("create EWMH check window: %w", err)
	}
	t.checkWin = check

	if err := ewmh.SupportingWmCheckSet(t.X, t.X.RootWin(), check); err != nil {
		return fmt.Errorf("set root supporting-check: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(t.X, check, check); err != nil {
		return fmt.Errorf("set check-window supporting-check: %w", err)
	}
	if err := ewmh.WmNameSet(t.X, check, wmName); err != nil {
		return fmt.Errorf("set check-window name: %w", err)
	}
	return ewmh.SupportedSet(t.X, []string{
		"_NET_SUPPORTING_WM_CHECK",
		"_NET_WM_NAME",
		"_NET_CURRENT_DESKTOP",
		"_NET_NUMBER_OF_DESKTOPS",
		"_NET_DESKTOP_NAMES",
		"_NET_DESKTOP_VIEWPORT",
		"_NET_CLIENT_LIST",
		"_NET_ACTIVE_WINDOW",
		"_NET_WM_STATE",
		"_NET_WM_STATE_FULLSCREEN",
	})
}

// GetRootWindow implements core.Transport.
func (t *Transport) GetRootWindow() core.Window { return core.Window(t.X.RootWin()) }

// FocusWindow implements core.Transport: sets X input focus and publishes
// _NET_ACTIVE_WINDOW.
func (t *Transport) FocusWindow(w core.Window) {
	if w == core.NoWindow {
		xproto.SetInputFocus(t.X.Conn(), xproto.InputFocusPointerRoot, t.X.RootWin(), xproto.TimeCurrentTime)
		return
	}
	xproto.SetInputFocus(t.X.Conn(), xproto.InputFocusPointerRoot, xproto.Window(w), xproto.TimeCurrentTime)
	ewmh.ActiveWindowSet(t.X, xproto.Window(w))
}

// KillWindow implements core.Transport: politely asks a client to close via
// WM_DELETE_WINDOW if it advertises that protocol, otherwise force-kills
// its X connection.
func (t *Transport) KillWindow(w core.Window) {
	win := xproto.Window(w)
	protocols, err := icccm.WmProtocolsGet(t.X, win)
	if err == nil {
		for _, p := range protocols {
			if p == "WM_DELETE_WINDOW" {
				sendDeleteWindow(t.X, win)
				return
			}
		}
	}
	xproto.KillClient(t.X.Conn(), uint32(win))
}

func sendDeleteWindow(xu *xgbutil.XUtil, win xproto.Window) {
	deleteAtom, err := xu.Atm("WM_DELETE_WINDOW", false)
	if err != nil {
		return
	}
	protoAtom, err := xu.Atm("WM_PROTOCOLS", false)
	if err != nil {
		return
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protoAtom,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(deleteAtom), uint32(xproto.TimeCurrentTime), 0, 0, 0,
		}),
	}
	xproto.SendEvent(xu.Conn(), false, win, xproto.EventMaskNoEvent, string(ev.Bytes()))
}

// RequestWindowEvents implements core.Transport: subscribes to the events
// the driver needs to track a managed client (used both on initial map and
// when re-adopting windows from a restore file).
func (t *Transport) RequestWindowEvents(w core.Window) {
	xproto.ChangeWindowAttributes(t.X.Conn(), xproto.Window(w), xproto.CwEventMask, []uint32{
		uint32(xproto.EventMaskEnterWindow | xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify),
	})
}

// IsFullscreen implements core.Transport from the cached _NET_WM_STATE bit.
func (t *Transport) IsFullscreen(w core.Window) bool { return t.fullscreen[xproto.Window(w)] }

// SetFullscreen updates the cached bit; called by the driver when it
// observes a _NET_WM_STATE PropertyNotify or a client message toggling it.
func (t *Transport) SetFullscreen(w core.Window, fullscreen bool) {
	if fullscreen {
		t.fullscreen[xproto.Window(w)] = true
	} else {
		delete(t.fullscreen, xproto.Window(w))
	}
}

// ClearWindow drops any per-window bookkeeping this transport holds for w.
// Called on DestroyNotify, matching spec's "treat destroy as an implicit
// fullscreen-clear" decision (§9 open question).
func (t *Transport) ClearWindow(w core.Window) {
	delete(t.fullscreen, xproto.Window(w))
}

func xwindowCreateHidden(xu *xgbutil.XUtil) (xproto.Window, error) {
	win, err := xproto.NewWindowId(xu.Conn())
	if err != nil {
		return 0, err
	}
	err = xproto.CreateWindowChecked(
		xu.Conn(), xu.Screen().RootDepth, win, xu.RootWin(),
		0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, xu.Screen().RootVisual,
		0, nil,
	).Check()
	if err != nil {
		return 0, err
	}
	return win, nil
}
