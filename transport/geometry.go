package transport

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xrect"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/patrislav/tilewm/core"
)

// ScreenInfos implements core.Transport. It prefers Xinerama's physical
// head list (multi-monitor) and falls back to the single root geometry
// when Xinerama isn't active, matching how most tiling WMs in the xgbutil
// ecosystem handle output discovery.
func (t *Transport) ScreenInfos() []core.Rect {
	heads, err := xinerama.PhysicalHeads(t.X)
	if err != nil || len(heads) == 0 {
		root := t.X.Screen()
		return []core.Rect{{
			X: 0, Y: 0,
			Width:  int(root.WidthInPixels),
			Height: int(root.HeightInPixels),
		}}
	}

	rects := make([]core.Rect, len(heads))
	for i, h := range heads {
		rects[i] = core.Rect{X: h.X(), Y: h.Y(), Width: h.Width(), Height: h.Height()}
	}
	return rects
}

// GetGeometry implements core.Transport: the client window's geometry
// relative to the root, used to position floating/unmanaged windows.
func (t *Transport) GetGeometry(w core.Window) core.Rect {
	geom, err := xwindow.New(t.X, xproto.Window(w)).Geometry()
	if err != nil {
		return core.Rect{}
	}
	return core.Rect{X: geom.X(), Y: geom.Y(), Width: geom.Width(), Height: geom.Height()}
}

// GetStrut implements core.Transport by summing the struts of every
// mapped dock window that overlaps area, via _NET_WM_STRUT_PARTIAL. A dock
// on another screen (no geometric overlap with area) contributes nothing,
// so a panel on monitor 0 doesn't shrink monitor 1's workarea; overlap is
// computed with xgbutil/xrect.IntersectArea, the pack's rect-intersection
// helper for exactly this "which output does this window belong to" case.
func (t *Transport) GetStrut(area core.Rect) (left, right, top, bottom int) {
	clients, err := ewmh.ClientListGet(t.X)
	if err != nil {
		return 0, 0, 0, 0
	}
	areaRect := xrect.New(area.X, area.Y, area.Width, area.Height)
	for _, w := range clients {
		s, err := ewmh.WmStrutPartialGet(t.X, w)
		if err != nil {
			continue
		}
		geom, err := xwindow.New(t.X, w).Geometry()
		if err != nil {
			continue
		}
		if xrect.IntersectArea(areaRect, geom) <= 0 {
			continue
		}
		left += int(s.Left)
		right += int(s.Right)
		top += int(s.Top)
		bottom += int(s.Bottom)
	}
	return left, right, top, bottom
}
