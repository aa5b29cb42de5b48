package core

import "testing"

func twoWorkspaceState(numScreens int) (*WmState, *fakeTransport) {
	screens := make([]Rect, numScreens)
	for i := range screens {
		screens[i] = Rect{X: i * 1000, Width: 1000, Height: 800}
	}
	ft := newFakeTransport(screens...)
	cfgs := []WorkspaceConfig{
		{Tag: "1", Screen: 0, Layout: NewTall(1, 0.5, 0.05)},
		{Tag: "2", Screen: 1, Layout: NewTall(1, 0.5, 0.05)},
	}
	return NewWmState(cfgs, numScreens), ft
}

func TestGreedyViewSwapsScreens(t *testing.T) {
	st, ft := twoWorkspaceState(2)
	st.GreedyView = true
	// workspace 1 (index 0) on screen 0 is current; workspace 2 (index 1) on screen 1 is visible.

	st.SwitchTo(ft, 1, false)

	if st.Workspaces[1].Screen != 0 {
		t.Fatalf("workspace 2's screen = %d, want 0", st.Workspaces[1].Screen)
	}
	if st.Workspaces[0].Screen != 1 {
		t.Fatalf("workspace 1's screen = %d, want 1", st.Workspaces[0].Screen)
	}
	if !st.Workspaces[0].Visible || !st.Workspaces[1].Visible {
		t.Fatalf("both workspaces should remain visible after a greedy-view swap")
	}
	if st.Current != 1 {
		t.Fatalf("Current = %d, want 1", st.Current)
	}
}

func TestCrossWorkspaceMove(t *testing.T) {
	st, ft := twoWorkspaceState(2)
	st.Workspaces[0].AddWindow(ft, 10) // A
	st.Workspaces[0].AddWindow(ft, 20) // B, focused after add
	st.Workspaces[0].FocusWindow(ft, 10)

	ok := st.MoveFocusedWindowTo(ft, 1)
	if !ok {
		t.Fatalf("MoveFocusedWindowTo returned false")
	}

	w1, w2 := st.Workspaces[0], st.Workspaces[1]
	if focused, _ := w1.FocusedWindow(); focused != 20 {
		t.Fatalf("workspace 1 focused = %v, want 20 (B)", focused)
	}
	if !w2.Contains(10) {
		t.Fatalf("workspace 2 should contain window 10 (A)")
	}
	if w2.Visible && w2.Focus {
		t.Fatalf("destination workspace should not have stolen focus")
	}
}

func TestTransientRouting(t *testing.T) {
	st, ft := twoWorkspaceState(2)
	// cur is workspace 0 (index 0); add P there, then switch focus to workspace 1.
	st.AddWindow(ft, -1, 100) // P, lands in workspace 0 (current)
	st.Current = 1

	ft.transientFor[200] = 100 // C is transient for P

	st.AddWindow(ft, -1, 200)
	if !st.Workspaces[0].Contains(200) {
		t.Fatalf("transient window should route to its parent's workspace")
	}
	if focused, _ := st.Workspaces[0].FocusedWindow(); focused != 200 {
		t.Fatalf("transient window should be focused in its parent's workspace, got %v", focused)
	}
}

func TestRescreenDown(t *testing.T) {
	st, ft := twoWorkspaceState(2)
	st.Current = 1 // workspace 2 is current, on screen 1

	st.Rescreen(ft, 1)

	if st.Workspaces[1].Screen != 0 {
		t.Fatalf("workspace 2's screen = %d, want 0 after its screen disappeared", st.Workspaces[1].Screen)
	}
	if st.Workspaces[1].Visible {
		t.Fatalf("workspace 2 should be hidden after rescreen-down")
	}
	if st.Current != 1 {
		t.Fatalf("Current should be unchanged by Rescreen itself, got %d", st.Current)
	}
}

func TestRescreenIdempotent(t *testing.T) {
	st, ft := twoWorkspaceState(2)
	snapshot := func() []int {
		out := make([]int, len(st.Workspaces))
		for i, ws := range st.Workspaces {
			out[i] = ws.Screen
		}
		return out
	}

	st.Rescreen(ft, 2) // no screen-count change: no-op
	before := snapshot()
	st.Rescreen(ft, 2)
	after := snapshot()

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Rescreen with unchanged screen count mutated assignment: %v -> %v", before, after)
		}
	}
}

func TestOneVisibleWorkspacePerScreenInvariant(t *testing.T) {
	st, _ := twoWorkspaceState(2)
	seen := make(map[int]bool)
	for _, ws := range st.Workspaces {
		if !ws.Visible {
			continue
		}
		if seen[ws.Screen] {
			t.Fatalf("more than one visible workspace on screen %d", ws.Screen)
		}
		seen[ws.Screen] = true
	}
}

func TestSerializeDeserializeWmStateRoundTrip(t *testing.T) {
	st, ft := twoWorkspaceState(2)
	st.Workspaces[0].AddWindow(ft, 10)
	st.Workspaces[0].AddWindow(ft, 20)
	st.Workspaces[1].AddWindow(ft, 30)

	data := st.Serialize()

	restored, _ := twoWorkspaceState(2)
	known := map[Window]bool{10: true, 20: true, 30: true}
	restored.RestoreInto(data, known)

	for i := range st.Workspaces {
		got := restored.Workspaces[i].All()
		want := st.Workspaces[i].All()
		if len(got) != len(want) {
			t.Fatalf("workspace %d windows = %v, want %v", i, got, want)
		}
	}
	if restored.Current != st.Current {
		t.Fatalf("restored Current = %d, want %d", restored.Current, st.Current)
	}
}

func TestKillClientCommand(t *testing.T) {
	st, ft := twoWorkspaceState(1)
	st.Workspaces[0].AddWindow(ft, 7)

	KillClientCmd().Call(ft, st)

	if len(ft.killed) != 1 || ft.killed[0] != 7 {
		t.Fatalf("killed = %v, want [7]", ft.killed)
	}
}

func TestSwitchWorkspaceCommandConvertsToZeroBased(t *testing.T) {
	st, ft := twoWorkspaceState(2)

	SwitchWorkspaceCmd(2).Call(ft, st) // 1-based "2" -> index 1

	if st.Current != 1 {
		t.Fatalf("Current = %d, want 1", st.Current)
	}
}
