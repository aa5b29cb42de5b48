package core

import "testing"

func TestWorkspaceAddWindowRoutesFloatingToUnmanaged(t *testing.T) {
	ft := newFakeTransport(Rect{Width: 1200, Height: 800})
	ft.floating[5] = true

	ws := NewWorkspace(WorkspaceConfig{Tag: "1", Layout: NewTall(1, 0.5, 0.05)})
	ws.AddWindow(ft, 1)
	ws.AddWindow(ft, 5)

	if !ws.IsManaged(1) {
		t.Fatalf("window 1 should be managed")
	}
	if !ws.IsUnmanaged(5) {
		t.Fatalf("window 5 should be unmanaged (floating)")
	}
}

func TestWorkspaceHideShowRoundTrip(t *testing.T) {
	ft := newFakeTransport(Rect{Width: 1200, Height: 800})
	ws := NewWorkspace(WorkspaceConfig{Tag: "1", Layout: NewTall(1, 0.5, 0.05)})
	ws.AddWindow(ft, 1)
	ws.AddWindow(ft, 2)

	ws.Show(ft)
	if !ft.shown[1] || !ft.shown[2] {
		t.Fatalf("Show did not show every window")
	}

	ws.Hide(ft)
	if ft.shown[1] || ft.shown[2] {
		t.Fatalf("Hide did not hide every window")
	}
	if ws.Visible {
		t.Fatalf("Hide did not clear Visible")
	}
}

func TestWorkspaceFocusWindowClearsUrgencyWhenVisible(t *testing.T) {
	ft := newFakeTransport(Rect{Width: 1200, Height: 800})
	ws := NewWorkspace(WorkspaceConfig{Tag: "1", Layout: NewTall(1, 0.5, 0.05)})
	ws.AddWindow(ft, 1)
	ws.AddWindow(ft, 2)
	ws.Visible = true
	ws.SetUrgency(true, 1)

	ws.FocusWindow(ft, 1)

	if ws.IsUrgent() {
		t.Fatalf("focusing an urgent window on a visible workspace should clear urgency")
	}
	if ft.focused != 1 {
		t.Fatalf("transport.FocusWindow not called with 1")
	}
}
