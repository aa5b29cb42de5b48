package core

// Transport is the contract the core consumes from the X layer (spec §6).
// A concrete implementation lives in package transport; tests use a fake.
type Transport interface {
	// Queries
	ScreenInfos() []Rect
	GetGeometry(w Window) Rect
	IsFloatingWindow(w Window) bool
	TransientFor(w Window) (Window, bool)
	GetStrut(area Rect) (left, right, top, bottom int)
	GetRootWindow() Window
	IsFullscreen(w Window) bool

	// Mutations
	MapWindow(w Window)
	UnmapWindow(w Window)
	HideWindow(w Window)
	ShowWindow(w Window)
	SetupWindow(rect Rect, borderWidth int, borderColor uint32, w Window)
	SetWindowBorderColor(w Window, color uint32)
	FocusWindow(w Window)
	KillWindow(w Window)
	RestackWindows(order []Window)
	MovePointer(x, y int)
	RequestWindowEvents(w Window)
}
