// Package config holds the static, user-editable configuration the driver
// builds its workspace set and keymap from: workspaces, mod key, border
// appearance, the keybinding table, manage-hooks, and the optional
// status-bar/log-hook pair. Mirrors original_source/src/config.rs's Config.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/patrislav/tilewm/core"
)

// Keybinding pairs a chord spec (parsed by transport.ParseChord, e.g.
// "Mod4-Shift-j") with the Cmd it triggers.
type Keybinding struct {
	Chord string   `yaml:"chord"`
	Cmd   core.Cmd `yaml:"-"`
}

// Config is the full set of knobs the driver reads at startup. It is built
// either by Default() or by layering a YAML file over Default()'s result
// via LoadFile; either way it ends up as one inert struct, never executable
// user scripting.
type Config struct {
	Workspaces []core.WorkspaceConfig `yaml:"-"`

	ModKey uint16 `yaml:"mod_key"`

	BorderWidth       int    `yaml:"border_width"`
	BorderColor       uint32 `yaml:"border_color"`
	BorderFocusColor  uint32 `yaml:"border_focus_color"`
	BorderUrgentColor uint32 `yaml:"border_urgent_color"`

	GreedyView bool `yaml:"greedy_view"`

	Keybindings []Keybinding     `yaml:"keybindings"`
	ManageHooks []core.ManageHook `yaml:"-"`
	LogHook     *core.CmdLogHook `yaml:"-"`

	// RestoreFilePath is where Reload serializes WmState and where startup
	// looks for a restore file (spec.md §4.8).
	RestoreFilePath string `yaml:"restore_file_path"`

	LogLevel string `yaml:"log_level"`

	// LogFilePath, when non-empty, is appended to in addition to stderr
	// (spec.md §7: "a rotating log file or stderr"); rotation itself is left
	// to external tooling (logrotate and friends), as is conventional for a
	// daemon that just appends to a configured path.
	LogFilePath string `yaml:"log_file_path"`

	// StatusBarExecutable is empty when no status bar should be started.
	StatusBarExecutable string   `yaml:"statusbar_executable"`
	StatusBarArgs        []string `yaml:"statusbar_args"`
}

// yamlConfig is the subset of Config actually exposed to the optional YAML
// override file: workspaces/keybindings/manage-hooks carry Go-only types
// (core.Layout interfaces, core.Cmd) that can't round-trip through a plain
// data format without a scripting layer, which spec.md explicitly excludes.
// A YAML file can retune appearance, the mod key, greedy-view, the restore
// path, log level, and the status bar — not rebind keys to arbitrary
// commands or redefine workspace layouts.
type yamlConfig struct {
	ModKey               *uint16  `yaml:"mod_key"`
	BorderWidth          *int     `yaml:"border_width"`
	BorderColor          *uint32  `yaml:"border_color"`
	BorderFocusColor     *uint32  `yaml:"border_focus_color"`
	BorderUrgentColor    *uint32  `yaml:"border_urgent_color"`
	GreedyView           *bool    `yaml:"greedy_view"`
	RestoreFilePath      *string  `yaml:"restore_file_path"`
	LogLevel             *string  `yaml:"log_level"`
	LogFilePath          *string  `yaml:"log_file_path"`
	StatusBarExecutable  *string  `yaml:"statusbar_executable"`
	StatusBarArgs        []string `yaml:"statusbar_args"`
}

const defaultWorkspaceCount = 9

// Mod4 is the conventional "super"/"windows" modifier mask, xr3wm's
// default mod_key.
const Mod4 = 1 << 6

const modShift = 1 << 0

// Default builds the xr3wm-equivalent default configuration: nine tagged
// workspaces all starting on screen 0 with a 1-master Tall layout, the
// default border/keymap from config.rs's Default impl.
func Default() *Config {
	cfg := &Config{
		Workspaces:        defaultWorkspaces(),
		ModKey:            Mod4,
		BorderWidth:       2,
		BorderColor:       0x2e2e2e,
		BorderFocusColor:  0x2a82e6,
		BorderUrgentColor: 0xff0000,
		GreedyView:        false,
		RestoreFilePath:   defaultRestoreFilePath(),
		LogLevel:          "info",
	}

	cfg.Keybindings = append(cfg.Keybindings,
		Keybinding{Chord: modStr(0) + "Return", Cmd: core.ExecCmd([]string{"xterm"})},
		Keybinding{Chord: modStr(0) + "d", Cmd: core.ExecCmd([]string{"dmenu_run"})},
		Keybinding{Chord: modStr(modShift) + "q", Cmd: core.KillClientCmd()},
		Keybinding{Chord: modStr(0) + "j", Cmd: core.FocusDownCmd()},
		Keybinding{Chord: modStr(0) + "k", Cmd: core.FocusUpCmd()},
		Keybinding{Chord: modStr(0) + "m", Cmd: core.FocusMasterCmd()},
		Keybinding{Chord: modStr(modShift) + "j", Cmd: core.SwapDownCmd()},
		Keybinding{Chord: modStr(modShift) + "k", Cmd: core.SwapUpCmd()},
		Keybinding{Chord: modStr(modShift) + "Return", Cmd: core.SwapMasterCmd()},
		Keybinding{Chord: modStr(0) + "comma", Cmd: core.SendLayoutMsgCmd(core.IncreaseMaster)},
		Keybinding{Chord: modStr(0) + "period", Cmd: core.SendLayoutMsgCmd(core.DecreaseMaster)},
		Keybinding{Chord: modStr(0) + "l", Cmd: core.SendLayoutMsgCmd(core.Increase)},
		Keybinding{Chord: modStr(0) + "h", Cmd: core.SendLayoutMsgCmd(core.Decrease)},
		Keybinding{Chord: modStr(modShift) + "c", Cmd: core.ExitCmd()},
		Keybinding{Chord: modStr(modShift) + "x", Cmd: core.ReloadCmd()},
	)

	for i := 1; i <= defaultWorkspaceCount; i++ {
		tag := fmt.Sprintf("%d", i)
		cfg.Keybindings = append(cfg.Keybindings,
			Keybinding{Chord: modStr(0) + tag, Cmd: core.SwitchWorkspaceCmd(i)},
			Keybinding{Chord: modStr(modShift) + tag, Cmd: core.MoveToWorkspaceCmd(i)},
		)
	}

	for i, key := range []string{"w", "e", "r"} {
		screen1 := i + 1
		cfg.Keybindings = append(cfg.Keybindings,
			Keybinding{Chord: modStr(0) + key, Cmd: core.SwitchScreenCmd(screen1)},
			Keybinding{Chord: modStr(modShift) + key, Cmd: core.MoveToScreenCmd(screen1)},
		)
	}

	return cfg
}

func modStr(extra uint16) string {
	s := "Mod4-"
	if extra&modShift != 0 {
		s += "Shift-"
	}
	return s
}

func defaultWorkspaces() []core.WorkspaceConfig {
	out := make([]core.WorkspaceConfig, defaultWorkspaceCount)
	for i := range out {
		out[i] = core.WorkspaceConfig{
			Tag:    fmt.Sprintf("%d", i+1),
			Screen: 0,
			Layout: core.NewTall(1, 0.5, 0.05),
		}
	}
	return out
}

func defaultRestoreFilePath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tilewm", "state")
}

// LoadFile layers the YAML file at path over Default()'s result. A missing
// file is not an error; it simply returns the defaults. Keys, workspaces,
// and manage-hooks are not YAML-overridable (see yamlConfig's doc comment).
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var overrides yamlConfig
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	if overrides.ModKey != nil {
		cfg.ModKey = *overrides.ModKey
	}
	if overrides.BorderWidth != nil {
		cfg.BorderWidth = *overrides.BorderWidth
	}
	if overrides.BorderColor != nil {
		cfg.BorderColor = *overrides.BorderColor
	}
	if overrides.BorderFocusColor != nil {
		cfg.BorderFocusColor = *overrides.BorderFocusColor
	}
	if overrides.BorderUrgentColor != nil {
		cfg.BorderUrgentColor = *overrides.BorderUrgentColor
	}
	if overrides.GreedyView != nil {
		cfg.GreedyView = *overrides.GreedyView
	}
	if overrides.RestoreFilePath != nil {
		cfg.RestoreFilePath = *overrides.RestoreFilePath
	}
	if overrides.LogLevel != nil {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFilePath != nil {
		cfg.LogFilePath = *overrides.LogFilePath
	}
	if overrides.StatusBarExecutable != nil {
		cfg.StatusBarExecutable = *overrides.StatusBarExecutable
	}
	if overrides.StatusBarArgs != nil {
		cfg.StatusBarArgs = overrides.StatusBarArgs
	}

	return cfg, nil
}

// ManageHookFor looks up the manage-hook action configured for a client's
// WM_CLASS, if any.
func (c *Config) ManageHookFor(class string) (core.ManageAction, bool) {
	for _, h := range c.ManageHooks {
		if h.ClassName == class {
			return h.Action, true
		}
	}
	return core.ManageAction{}, false
}

// RedrawConfig projects the border appearance into the core package's
// narrower RedrawConfig type.
func (c *Config) RedrawConfig() core.RedrawConfig {
	return core.RedrawConfig{
		BorderWidth:       c.BorderWidth,
		BorderColor:       c.BorderColor,
		BorderFocusColor:  c.BorderFocusColor,
		BorderUrgentColor: c.BorderUrgentColor,
	}
}
