package transport

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/patrislav/tilewm/core"
)

// MapWindow implements core.Transport.
func (t *Transport) MapWindow(w core.Window) { xproto.MapWindow(t.X.Conn(), xproto.Window(w)) }

// UnmapWindow implements core.Transport.
func (t *Transport) UnmapWindow(w core.Window) { xproto.UnmapWindow(t.X.Conn(), xproto.Window(w)) }

// HideWindow and ShowWindow are the same primitive as Unmap/Map at the
// protocol level; kept distinct at the core.Transport level because
// Workspace.Hide/Show carry different ordering guarantees than a plain
// per-window map/unmap (the focused window is handled last).
func (t *Transport) HideWindow(w core.Window) { t.UnmapWindow(w) }
func (t *Transport) ShowWindow(w core.Window) { t.MapWindow(w) }

// SetupWindow implements core.Transport: positions/sizes w and sets its
// border, in one ConfigureWindow + border-pixel/width pair so a client
// never observes an inconsistent intermediate frame.
func (t *Transport) SetupWindow(rect core.Rect, borderWidth int, borderColor uint32, w core.Window) {
	win := xproto.Window(w)
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight | xproto.ConfigWindowBorderWidth)
	values := []uint32{
		uint32(rect.X), uint32(rect.Y),
		uint32(rect.Width), uint32(rect.Height),
		uint32(borderWidth),
	}
	xproto.ConfigureWindow(t.X.Conn(), win, mask, values)
	t.SetWindowBorderColor(w, borderColor)
}

// SetWindowBorderColor implements core.Transport via CWBorderPixel.
func (t *Transport) SetWindowBorderColor(w core.Window, color uint32) {
	xproto.ChangeWindowAttributes(t.X.Conn(), xproto.Window(w), xproto.CwBorderPixel, []uint32{color})
}

// RestackWindows implements core.Transport: reorders the given windows
// top-to-bottom by chaining each one below the previous via
// ConfigureWindow's sibling/stack-mode fields.
func (t *Transport) RestackWindows(order []core.Window) {
	for i := 1; i < len(order); i++ {
		mask := uint16(xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode)
		values := []uint32{uint32(order[i-1]), xproto.StackModeBelow}
		xproto.ConfigureWindow(t.X.Conn(), xproto.Window(order[i]), mask, values)
	}
}

// ForwardConfigureRequest passes a client's ConfigureRequest through
// unchanged, honoring exactly the fields the client asked to change
// (spec §4.7: "forward geometry/border changes to transport unchanged").
// Tiled clients get overridden again on the next redraw regardless.
func (t *Transport) ForwardConfigureRequest(e xproto.ConfigureRequestEvent) {
	var mask uint16
	var values []uint32
	add := func(bit uint16, v uint32) {
		mask |= bit
		values = append(values, v)
	}
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		add(xproto.ConfigWindowX, uint32(e.X))
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		add(xproto.ConfigWindowY, uint32(e.Y))
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		add(xproto.ConfigWindowWidth, uint32(e.Width))
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		add(xproto.ConfigWindowHeight, uint32(e.Height))
	}
	if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		add(xproto.ConfigWindowBorderWidth, uint32(e.BorderWidth))
	}
	if e.ValueMask&xproto.ConfigWindowSibling != 0 {
		add(xproto.ConfigWindowSibling, uint32(e.Sibling))
	}
	if e.ValueMask&xproto.ConfigWindowStackMode != 0 {
		add(xproto.ConfigWindowStackMode, uint32(e.StackMode))
	}
	xproto.ConfigureWindow(t.X.Conn(), e.Window, mask, values)
}

// MovePointer implements core.Transport: an absolute warp relative to the
// root window.
func (t *Transport) MovePointer(x, y int) {
	xproto.WarpPointer(t.X.Conn(), 0, t.X.RootWin(), 0, 0, 0, 0, int16(x), int16(y))
}
