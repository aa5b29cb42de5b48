package core

// fakeTransport is the in-memory Transport used by the end-to-end scenario
// tests (spec.md §8). It records enough of what was asked of it for
// assertions without modeling an actual X connection.
type fakeTransport struct {
	screens []Rect
	geoms   map[Window]Rect

	floating     map[Window]bool
	transientFor map[Window]Window
	fullscreen   map[Window]bool

	focused   Window
	killed    []Window
	restacked [][]Window
	mapped    map[Window]bool
	shown     map[Window]bool
}

func newFakeTransport(screens ...Rect) *fakeTransport {
	return &fakeTransport{
		screens:      screens,
		geoms:        make(map[Window]Rect),
		floating:     make(map[Window]bool),
		transientFor: make(map[Window]Window),
		fullscreen:   make(map[Window]bool),
		mapped:       make(map[Window]bool),
		shown:        make(map[Window]bool),
	}
}

func (f *fakeTransport) ScreenInfos() []Rect { return f.screens }

func (f *fakeTransport) GetGeometry(w Window) Rect {
	if r, ok := f.geoms[w]; ok {
		return r
	}
	return Rect{Width: 100, Height: 100}
}

func (f *fakeTransport) IsFloatingWindow(w Window) bool { return f.floating[w] }

func (f *fakeTransport) TransientFor(w Window) (Window, bool) {
	parent, ok := f.transientFor[w]
	return parent, ok
}

func (f *fakeTransport) GetStrut(area Rect) (int, int, int, int) { return 0, 0, 0, 0 }

func (f *fakeTransport) GetRootWindow() Window { return 0 }

func (f *fakeTransport) IsFullscreen(w Window) bool { return f.fullscreen[w] }

func (f *fakeTransport) MapWindow(w Window)   { f.mapped[w] = true }
func (f *fakeTransport) UnmapWindow(w Window) { f.mapped[w] = false }
func (f *fakeTransport) HideWindow(w Window)  { f.shown[w] = false }
func (f *fakeTransport) ShowWindow(w Window)  { f.shown[w] = true }

func (f *fakeTransport) SetupWindow(rect Rect, borderWidth int, borderColor uint32, w Window) {
	f.geoms[w] = rect
}

func (f *fakeTransport) SetWindowBorderColor(w Window, color uint32) {}

func (f *fakeTransport) FocusWindow(w Window) { f.focused = w }

func (f *fakeTransport) KillWindow(w Window) { f.killed = append(f.killed, w) }

func (f *fakeTransport) RestackWindows(order []Window) {
	f.restacked = append(f.restacked, append([]Window{}, order...))
}

func (f *fakeTransport) MovePointer(x, y int) {}

func (f *fakeTransport) RequestWindowEvents(w Window) {}
