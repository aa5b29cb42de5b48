package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBuildsNineWorkspacesAndFullKeymap(t *testing.T) {
	cfg := Default()

	if len(cfg.Workspaces) != defaultWorkspaceCount {
		t.Fatalf("expected %d workspaces, got %d", defaultWorkspaceCount, len(cfg.Workspaces))
	}
	for i, ws := range cfg.Workspaces {
		if ws.Tag == "" {
			t.Fatalf("workspace %d has empty tag", i)
		}
		if ws.Layout == nil {
			t.Fatalf("workspace %d has no layout", i)
		}
	}

	// 15 static bindings + 2*9 workspace bindings + 2*3 screen bindings.
	want := 15 + 2*defaultWorkspaceCount + 2*3
	if len(cfg.Keybindings) != want {
		t.Fatalf("expected %d keybindings, got %d", want, len(cfg.Keybindings))
	}
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.BorderWidth != Default().BorderWidth {
		t.Fatalf("expected default border width, got %d", cfg.BorderWidth)
	}
}

func TestLoadFileOverridesAppearanceNotKeymap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilewm.yaml")
	yamlDoc := "border_width: 4\ngreedy_view: true\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.BorderWidth != 4 {
		t.Fatalf("expected overridden border width 4, got %d", cfg.BorderWidth)
	}
	if !cfg.GreedyView {
		t.Fatal("expected greedy_view to be overridden to true")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected overridden log level, got %q", cfg.LogLevel)
	}
	if len(cfg.Keybindings) != len(Default().Keybindings) {
		t.Fatal("keymap must not change via YAML override")
	}
}

func TestRedrawConfigProjectsBorderFields(t *testing.T) {
	cfg := Default()
	rc := cfg.RedrawConfig()
	if rc.BorderWidth != cfg.BorderWidth || rc.BorderColor != cfg.BorderColor ||
		rc.BorderFocusColor != cfg.BorderFocusColor || rc.BorderUrgentColor != cfg.BorderUrgentColor {
		t.Fatal("RedrawConfig did not carry over all border fields")
	}
}
