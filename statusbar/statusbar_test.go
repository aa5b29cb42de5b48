package statusbar

import (
	"strings"
	"testing"

	"github.com/patrislav/tilewm/core"
)

func TestXmobarFormatterColorsCurrentVisibleUrgent(t *testing.T) {
	bar := Xmobar()
	line := bar.format(Snapshot{
		Tags:    []string{"1", "2", "3"},
		Current: 0,
		Visible: []int{1},
		Urgent:  []int{2},
		Layout:  "tall",
		Title:   "xterm",
	})

	if !strings.Contains(line, "#00ff00") {
		t.Fatalf("expected current workspace to be green: %q", line)
	}
	if !strings.Contains(line, "#009900") {
		t.Fatalf("expected visible workspace to be dark green: %q", line)
	}
	if !strings.Contains(line, "#ff0000") {
		t.Fatalf("expected urgent workspace to be red: %q", line)
	}
	if !strings.HasSuffix(line, "tall | xterm\n") {
		t.Fatalf("expected layout and title suffix, got %q", line)
	}
}

func TestUpdateIsNoopBeforeStart(t *testing.T) {
	bar := Xmobar()
	st := core.NewWmState([]core.WorkspaceConfig{{Tag: "1", Screen: 0, Layout: core.NewTall(1, 0.5, 0.05)}}, 1)
	if err := bar.Update(st, nil); err != nil {
		t.Fatalf("Update before Start should be a no-op, got error: %v", err)
	}
}

func TestStartTwiceFails(t *testing.T) {
	bar := New("cat", nil, func(Snapshot) string { return "" })
	if err := bar.Start(); err != nil {
		t.Skipf("cat not available in this environment: %v", err)
	}
	defer bar.Stop()

	if err := bar.Start(); err == nil {
		t.Fatal("expected second Start to fail while already running")
	}
}

func TestUpdateWritesFormattedLine(t *testing.T) {
	var got string
	bar := New("cat", nil, func(s Snapshot) string {
		got = s.Title
		return "line\n"
	})
	if err := bar.Start(); err != nil {
		t.Skipf("cat not available in this environment: %v", err)
	}
	defer bar.Stop()

	st := core.NewWmState([]core.WorkspaceConfig{{Tag: "1", Screen: 0, Layout: core.NewTall(1, 0.5, 0.05)}}, 1)
	if err := bar.Update(st, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty title with nil titler, got %q", got)
	}
}
