package core

// WorkspaceConfig is the static description of a workspace supplied at
// startup: its tag, initial screen, and root layout.
type WorkspaceConfig struct {
	Tag    string
	Screen int
	Layout Layout
}

// Workspace is a named tag bound to a screen index, holding a managed
// (tiled) stack and an unmanaged (floating) stack.
type Workspace struct {
	Tag     string
	Screen  int
	Visible bool
	Focus   bool

	managed   *Container
	unmanaged *Stack
}

// NewWorkspace builds a workspace from its static config. The managed
// stack's root container always carries a layout; the unmanaged stack never
// does (floating windows keep their own geometry).
func NewWorkspace(cfg WorkspaceConfig) *Workspace {
	return &Workspace{
		Tag:       cfg.Tag,
		Screen:    cfg.Screen,
		managed:   NewContainer(cfg.Layout),
		unmanaged: NewStack(),
	}
}

// All returns every window the workspace owns, unmanaged first, matching
// the original source's stacking order (floating windows sit visually atop
// tiled ones).
func (w *Workspace) All() []Window {
	return append(append([]Window{}, w.unmanaged.AllWindows()...), w.managed.Stack.AllWindows()...)
}

func (w *Workspace) allUrgent() []Window {
	var out []Window
	for win := range w.unmanaged.urgent {
		out = append(out, win)
	}
	for win := range w.managed.Stack.urgent {
		out = append(out, win)
	}
	return out
}

// IsManaged reports whether w is in the tiled stack.
func (ws *Workspace) IsManaged(w Window) bool { return ws.managed.Stack.Contains(w) }

// IsUnmanaged reports whether w is in the floating stack.
func (ws *Workspace) IsUnmanaged(w Window) bool { return ws.unmanaged.Contains(w) }

// Contains reports whether w belongs to either stack.
func (ws *Workspace) Contains(w Window) bool { return ws.IsManaged(w) || ws.IsUnmanaged(w) }

// IsUrgent reports whether either stack carries an urgent window.
func (ws *Workspace) IsUrgent() bool { return ws.managed.Stack.IsUrgent() || ws.unmanaged.IsUrgent() }

// FocusedWindow prefers the unmanaged (floating) focus, then the managed
// one, matching "floating sits on top" semantics.
func (ws *Workspace) FocusedWindow() (Window, bool) {
	if w, ok := ws.unmanaged.FocusedWindow(); ok {
		return w, true
	}
	return ws.managed.Stack.FocusedWindow()
}

// AddWindow classifies w via the transport and pushes it into the matching
// stack, restacking so unmanaged windows sit above managed ones once both
// are non-empty.
func (ws *Workspace) AddWindow(t Transport, w Window) {
	if t.IsFloatingWindow(w) {
		ws.unmanaged.AddWindow(w)
	} else {
		ws.managed.Stack.AddWindow(w)
	}
	if ws.managed.Stack.Len() > 0 && ws.unmanaged.Len() > 0 {
		t.RestackWindows(ws.All())
	}
}

// AddFloatingWindow forces w into the unmanaged stack regardless of the
// transport's own floating classification, for a manage-hook that pins a
// client class to Float.
func (ws *Workspace) AddFloatingWindow(t Transport, w Window) {
	ws.unmanaged.AddWindow(w)
	if ws.managed.Stack.Len() > 0 {
		t.RestackWindows(ws.All())
	}
}

// NestLayout wraps the focused managed subtree into a new container
// carrying layout, subject to Stack.AddContainer's rules.
func (ws *Workspace) NestLayout(layout Layout) {
	ws.managed.Stack.AddContainer(layout)
}

// SetUrgency records or clears urgency for w in whichever stack contains
// it.
func (ws *Workspace) SetUrgency(urgent bool, w Window) {
	if !urgent {
		if !ws.managed.Stack.RemoveUrgent(w) {
			ws.unmanaged.RemoveUrgent(w)
		}
		return
	}
	if ws.IsManaged(w) {
		ws.managed.Stack.AddUrgent(w)
	} else {
		ws.unmanaged.AddUrgent(w)
	}
}

// removeFromStacks drops w from whichever stack holds it, without touching
// the transport. Used both by RemoveWindow (which also unmaps) and by
// cross-workspace moves (which must not unmap a window that's only
// changing workspace).
func (ws *Workspace) removeFromStacks(w Window) bool {
	switch {
	case ws.managed.Stack.Contains(w):
		ws.managed.Stack.Remove(w)
	case ws.unmanaged.Contains(w):
		ws.unmanaged.Remove(w)
	default:
		return false
	}
	return true
}

// RemoveWindow removes w from whichever stack holds it and unmaps it.
// Returns whether it was present.
func (ws *Workspace) RemoveWindow(t Transport, w Window) bool {
	if !ws.removeFromStacks(w) {
		return false
	}
	t.UnmapWindow(w)
	return true
}

// FocusWindow focuses w, clearing its urgency if the workspace is visible.
// No-op if w is already focused or is the zero window.
func (ws *Workspace) FocusWindow(t Transport, w Window) bool {
	if w == NoWindow {
		return false
	}
	if cur, ok := ws.FocusedWindow(); ok && cur == w {
		return false
	}
	if ws.Visible {
		if !ws.managed.Stack.RemoveUrgent(w) {
			ws.unmanaged.RemoveUrgent(w)
		}
	}
	if ws.unmanaged.Contains(w) {
		ws.unmanaged.FocusWindow(w)
	} else {
		ws.managed.Stack.FocusWindow(w)
	}
	t.FocusWindow(w)
	return true
}

// Unfocus marks the workspace unfocused and paints its focused window's
// border with the normal color.
func (ws *Workspace) Unfocus(t Transport, borderColor uint32) {
	ws.Focus = false
	if w, ok := ws.FocusedWindow(); ok {
		t.SetWindowBorderColor(w, borderColor)
	}
}

// Activate marks the workspace focused and asks the transport to focus its
// focused window (falling back to the first window, then the root).
func (ws *Workspace) Activate(t Transport) {
	ws.Focus = true
	if w, ok := ws.FocusedWindow(); ok {
		t.FocusWindow(w)
		return
	}
	if all := ws.All(); len(all) > 0 {
		t.FocusWindow(all[0])
		return
	}
	t.FocusWindow(t.GetRootWindow())
}

// MoveFocus delegates to the managed stack; returns the new focused window
// or false if it didn't change.
func (ws *Workspace) MoveFocus(op MoveOp) (Window, bool) {
	prev, hadPrev := ws.FocusedWindow()
	w, ok := ws.managed.Stack.MoveFocus(op)
	if !ok || (hadPrev && w == prev) {
		return 0, false
	}
	return w, true
}

// MoveWindow delegates to the managed stack.
func (ws *Workspace) MoveWindow(op MoveOp) { ws.managed.Stack.MoveWindow(op) }

// MoveParentFocus delegates to the managed stack's parent-depth focus
// rotation; returns the new focused window or false if it didn't change.
func (ws *Workspace) MoveParentFocus(op MoveOp) (Window, bool) {
	prev, hadPrev := ws.FocusedWindow()
	w, ok := ws.managed.Stack.MoveParentFocus(op)
	if !ok || (hadPrev && w == prev) {
		return 0, false
	}
	return w, true
}

// MoveParentWindow delegates to the managed stack's parent-depth window
// move.
func (ws *Workspace) MoveParentWindow(op MoveOp) (Window, bool) {
	return ws.managed.Stack.MoveParentWindow(op)
}

// CenterPointer moves the pointer to the center of the focused window, or
// the workspace's screen if nothing is focused.
func (ws *Workspace) CenterPointer(t Transport) {
	var r Rect
	if w, ok := ws.FocusedWindow(); ok {
		r = t.GetGeometry(w)
	} else {
		screens := t.ScreenInfos()
		if ws.Screen < len(screens) {
			r = screens[ws.Screen]
		}
	}
	t.MovePointer(r.X+r.Width/2-1, r.Y+r.Height/2)
}

// Hide hides every window, hiding the focused one last so WM-side focus
// transitions are clean on the way down.
func (ws *Workspace) Hide(t Transport) {
	ws.Visible = false
	focused, hasFocus := ws.FocusedWindow()
	for _, w := range ws.managed.Stack.AllWindows() {
		if hasFocus && w == focused {
			continue
		}
		t.HideWindow(w)
	}
	for _, w := range ws.unmanaged.AllWindows() {
		if hasFocus && w == focused {
			continue
		}
		t.HideWindow(w)
	}
	if hasFocus {
		t.HideWindow(focused)
	}
}

// Show makes every window in the workspace visible.
func (ws *Workspace) Show(t Transport) {
	ws.Visible = true
	for _, w := range ws.managed.Stack.AllWindows() {
		t.ShowWindow(w)
	}
	for _, w := range ws.unmanaged.AllWindows() {
		t.ShowWindow(w)
	}
}

// RedrawConfig is the subset of configuration Redraw needs.
type RedrawConfig struct {
	BorderWidth       int
	BorderColor       uint32
	BorderFocusColor  uint32
	BorderUrgentColor uint32
}

// Redraw applies the managed container's layout to the workspace's screen,
// positions unmanaged windows centered on it, and paints urgent/focus
// border colors last so they win over the base color.
func (ws *Workspace) Redraw(t Transport, cfg RedrawConfig, screens []Rect) {
	if ws.Screen >= len(screens) {
		return
	}
	screen := screens[ws.Screen]

	for _, rw := range ws.managed.ApplyLayout(screen) {
		if t.IsFullscreen(rw.Window) {
			t.SetupWindow(screen, 0, cfg.BorderColor, rw.Window)
		} else {
			t.SetupWindow(rw.Rect, cfg.BorderWidth, cfg.BorderColor, rw.Window)
		}
	}

	for _, w := range ws.unmanaged.AllWindows() {
		rect := t.GetGeometry(w)
		rect.Width = minInt(screen.Width, rect.Width+2*cfg.BorderWidth)
		rect.Height = minInt(screen.Height, rect.Height+2*cfg.BorderWidth)
		rect.X = screen.X + (screen.Width-rect.Width)/2
		rect.Y = screen.Y + (screen.Height-rect.Height)/2
		t.SetupWindow(rect, cfg.BorderWidth, cfg.BorderColor, w)
	}

	for _, w := range ws.allUrgent() {
		t.SetWindowBorderColor(w, cfg.BorderUrgentColor)
	}

	if ws.Focus {
		if w, ok := ws.FocusedWindow(); ok {
			t.SetWindowBorderColor(w, cfg.BorderFocusColor)
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
