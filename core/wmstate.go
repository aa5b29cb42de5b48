package core

import (
	"strconv"
	"strings"
)

// WmState owns the full set of workspaces and the per-screen mapping of
// which workspace is currently visible on which screen. Exactly one
// workspace per screen is visible at a time; the current workspace is the
// one holding input focus.
type WmState struct {
	Workspaces []*Workspace
	Current    int // index into Workspaces

	// GreedyView mirrors config's greedy-view flag: on switch-to of a
	// workspace that's already visible elsewhere, swap screens instead of
	// just moving the pointer there.
	GreedyView bool

	screenCount  int
	redrawConfig RedrawConfig
}

// NewWmState builds a WmState from workspace configs, assigning one
// workspace per available screen as initially visible (extra workspaces
// start hidden, bound to screen 0 if their configured screen is out of
// range) and focusing the first. Screens with no workspace claiming them
// are backfilled from an arbitrary workspace on screen 0.
func NewWmState(cfgs []WorkspaceConfig, numScreens int) *WmState {
	st := &WmState{screenCount: numScreens}
	claimed := make(map[int]bool)
	for _, cfg := range cfgs {
		ws := NewWorkspace(cfg)
		if ws.Screen >= numScreens {
			ws.Screen = 0
		}
		st.Workspaces = append(st.Workspaces, ws)
	}
	for _, ws := range st.Workspaces {
		if !claimed[ws.Screen] {
			ws.Visible = true
			claimed[ws.Screen] = true
		}
	}
	for screen := 0; screen < numScreens; screen++ {
		if claimed[screen] {
			continue
		}
		for _, ws := range st.Workspaces {
			if ws.Screen == 0 && !ws.Visible {
				ws.Screen = screen
				ws.Visible = true
				claimed[screen] = true
				break
			}
		}
	}
	if len(st.Workspaces) > 0 {
		st.Workspaces[0].Focus = true
	}
	return st
}

// CurrentWorkspace returns the focused workspace.
func (st *WmState) CurrentWorkspace() *Workspace { return st.Workspaces[st.Current] }

// VisibleOnScreen returns the index of the workspace currently visible on
// screen, or false if none is.
func (st *WmState) VisibleOnScreen(screen int) (int, bool) {
	for i, ws := range st.Workspaces {
		if ws.Screen == screen && ws.Visible {
			return i, true
		}
	}
	return 0, false
}

// FindWindow reports the workspace index holding w, if any. O(n) scan over
// workspaces, as the source does.
func (st *WmState) FindWindow(w Window) (int, bool) {
	for i, ws := range st.Workspaces {
		if ws.Contains(w) {
			return i, true
		}
	}
	return 0, false
}

// AddWindow is a no-op if w is already tracked anywhere. Otherwise, if w
// has a transient-for parent the WM knows about, it's routed to the
// parent's workspace and focused there; else it goes to preferredIdx (or
// the current workspace, if preferredIdx is negative).
func (st *WmState) AddWindow(t Transport, preferredIdx int, w Window) {
	if _, tracked := st.FindWindow(w); tracked {
		return
	}
	if parent, ok := t.TransientFor(w); ok {
		if idx, ok := st.FindWindow(parent); ok {
			st.Workspaces[idx].AddWindow(t, w)
			st.Workspaces[idx].FocusWindow(t, w)
			return
		}
	}
	idx := st.Current
	if preferredIdx >= 0 && preferredIdx < len(st.Workspaces) {
		idx = preferredIdx
	}
	st.Workspaces[idx].AddWindow(t, w)
}

// AddFloatingWindow is AddWindow's counterpart for a manage-hook that pins
// a client to floating regardless of the transport's own classification.
func (st *WmState) AddFloatingWindow(t Transport, preferredIdx int, w Window) {
	if _, tracked := st.FindWindow(w); tracked {
		return
	}
	if parent, ok := t.TransientFor(w); ok {
		if idx, ok := st.FindWindow(parent); ok {
			st.Workspaces[idx].AddFloatingWindow(t, w)
			st.Workspaces[idx].FocusWindow(t, w)
			return
		}
	}
	idx := st.Current
	if preferredIdx >= 0 && preferredIdx < len(st.Workspaces) {
		idx = preferredIdx
	}
	st.Workspaces[idx].AddFloatingWindow(t, w)
}

// RemoveWindow removes w from whichever workspace holds it.
func (st *WmState) RemoveWindow(t Transport, w Window) bool {
	if i, ok := st.FindWindow(w); ok {
		return st.Workspaces[i].RemoveWindow(t, w)
	}
	return false
}

// SwitchTo makes workspace target current. A no-op if target is already
// current. If target is visible on another screen: under GreedyView the two
// workspaces trade screens (both stay visible); otherwise the pointer is
// optionally recentered on target's screen and nothing else moves. If
// target is hidden, it inherits the current workspace's screen, is shown,
// and the current workspace is hidden. Returns false for an out-of-range
// index.
func (st *WmState) SwitchTo(t Transport, target int, centerPointer bool) bool {
	if target < 0 || target >= len(st.Workspaces) {
		return false
	}
	if target == st.Current {
		return true
	}
	cur := st.Workspaces[st.Current]
	dst := st.Workspaces[target]

	switch {
	case dst.Visible && st.GreedyView:
		cur.Screen, dst.Screen = dst.Screen, cur.Screen
		cur.Show(t)
	case dst.Visible:
		if centerPointer {
			dst.CenterPointer(t)
		}
	default:
		dst.Screen = cur.Screen
		dst.Show(t)
		cur.Hide(t)
	}

	cur.Unfocus(t, st.redrawConfig.BorderColor)
	st.Current = target
	dst.Activate(t)
	return true
}

// SwitchToScreen switches to whichever workspace (other than the current
// one) is visible on screen. No-op if none is.
func (st *WmState) SwitchToScreen(t Transport, screen int) bool {
	idx, ok := st.VisibleOnScreen(screen)
	if !ok || idx == st.Current {
		return false
	}
	return st.SwitchTo(t, idx, false)
}

// MoveFocusedWindowTo removes the current workspace's focused window and
// adds it to workspaces[target], unfocusing the destination so the move
// doesn't steal focus. Returns false if there's no focused window or
// target is out of range.
func (st *WmState) MoveFocusedWindowTo(t Transport, target int) bool {
	if target < 0 || target >= len(st.Workspaces) || target == st.Current {
		return false
	}
	cur := st.Workspaces[st.Current]
	w, ok := cur.FocusedWindow()
	if !ok {
		return false
	}
	cur.removeFromStacks(w)
	dst := st.Workspaces[target]
	dst.AddWindow(t, w)
	if !dst.Visible {
		t.HideWindow(w)
	}
	return true
}

// Rescreen reconciles the workspace-to-screen assignment against a new
// screen count. Screens that disappeared lose their workspace to screen 0,
// hidden; new screens each gain a currently-hidden workspace. A no-op if
// the screen count is unchanged.
func (st *WmState) Rescreen(t Transport, numScreens int) {
	if numScreens == st.screenCount {
		return
	}
	if numScreens < st.screenCount {
		for _, ws := range st.Workspaces {
			if ws.Screen >= numScreens {
				ws.Screen = 0
				ws.Hide(t)
			}
		}
	} else {
		for screen := st.screenCount; screen < numScreens; screen++ {
			for _, ws := range st.Workspaces {
				if !ws.Visible {
					ws.Screen = screen
					ws.Show(t)
					break
				}
			}
		}
	}
	st.screenCount = numScreens
	st.RedrawAll(t)
}

// RedrawAll redraws every visible workspace against the transport's current
// screen geometry.
func (st *WmState) RedrawAll(t Transport) {
	screens := t.ScreenInfos()
	for _, ws := range st.Workspaces {
		if ws.Visible {
			ws.Redraw(t, st.redrawConfig, screens)
		}
	}
}

// SetRedrawConfig stores the border configuration used by RedrawAll.
func (st *WmState) SetRedrawConfig(cfg RedrawConfig) { st.redrawConfig = cfg }

// Serialize encodes the workspace set for persistence across a restart:
// one line per workspace, "tag|screen|visible|focus|managed-serialized|unmanaged-serialized",
// preceded by a header line "count|current".
func (st *WmState) Serialize() string {
	lines := make([]string, 0, len(st.Workspaces)+1)
	lines = append(lines, strconv.Itoa(len(st.Workspaces))+"|"+strconv.Itoa(st.Current))
	for _, ws := range st.Workspaces {
		lines = append(lines, strings.Join([]string{
			ws.Tag,
			strconv.Itoa(ws.Screen),
			boolStr(ws.Visible),
			boolStr(ws.Focus),
			ws.managed.Stack.Serialize(),
			ws.unmanaged.Serialize(),
		}, "|"))
	}
	return strings.Join(lines, "\n")
}

// RestoreInto parses Serialize's format and applies the saved visibility,
// focus, screen assignment, and per-stack membership onto an
// already-constructed WmState whose workspace tags and layouts come from
// the current config. Unknown windows (closed since the snapshot) are
// dropped; unknown tags are skipped; a malformed header is ignored.
func (st *WmState) RestoreInto(data string, known map[Window]bool) {
	lines := strings.Split(data, "\n")
	if len(lines) == 0 {
		return
	}
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 6 {
			continue
		}
		idx := -1
		for i, ws := range st.Workspaces {
			if ws.Tag == fields[0] {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		ws := st.Workspaces[idx]
		if screen, err := strconv.Atoi(fields[1]); err == nil {
			ws.Screen = screen
		}
		ws.Visible = fields[2] == "1"
		ws.Focus = fields[3] == "1"
		ws.managed.Stack = DeserializeStack(fields[4], known)
		ws.unmanaged = DeserializeStack(fields[5], known)
		if ws.Focus {
			st.Current = idx
		}
	}
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
