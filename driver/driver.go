// Package driver wires the core engine to a live X11 connection: it pulls
// events off the Transport, maps them and key chords to core.Cmd values,
// invokes the core mutators, and triggers a redraw plus EWMH/status-bar
// refresh after every state-mutating operation (spec §4.7). Grounded on
// the teacher's wm.Run() event switch in funkycode-marwind/wm/wm.go,
// generalized to the full event table and widened to the recursive
// stack/container/workspace engine in package core.
package driver

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog/log"

	"github.com/patrislav/tilewm/config"
	"github.com/patrislav/tilewm/core"
	"github.com/patrislav/tilewm/statusbar"
	"github.com/patrislav/tilewm/transport"
)

// Driver owns the live Transport, the static configuration, and the
// current WmState. It is the only thing in the repo allowed to block (on
// Transport.NextEvent) and the only thing that mutates WmState.
type Driver struct {
	t   *transport.Transport
	cfg *config.Config
	st  *core.WmState
	bar *statusbar.Bar

	keys []boundChord

	atoms struct {
		wmHints        xproto.Atom
		netWmState     xproto.Atom
		currentDesktop xproto.Atom
		activeWindow   xproto.Atom
		fullscreen     xproto.Atom
	}
}

type boundChord struct {
	chord transport.KeyChord
	cmd   core.Cmd
}

// New builds a Driver over an already-connected, already-WM Transport and
// an already-constructed WmState (fresh or restored; see core.LoadState).
// It resolves the atoms the event switch needs, grabs every configured
// keybinding (skipping and logging any that fail to parse or grab), and
// starts the optional status bar.
func New(t *transport.Transport, cfg *config.Config, st *core.WmState) *Driver {
	d := &Driver{t: t, cfg: cfg, st: st}

	st.GreedyView = cfg.GreedyView
	st.SetRedrawConfig(cfg.RedrawConfig())

	// Re-subscribe every window WmState already knows about (a restore,
	// spec §4.6) to the events the driver tracks a managed client by.
	for _, ws := range st.Workspaces {
		for _, w := range ws.All() {
			t.RequestWindowEvents(w)
		}
	}

	d.atoms.wmHints = d.resolveAtom("WM_HINTS")
	d.atoms.netWmState = d.resolveAtom("_NET_WM_STATE")
	d.atoms.currentDesktop = d.resolveAtom("_NET_CURRENT_DESKTOP")
	d.atoms.activeWindow = d.resolveAtom("_NET_ACTIVE_WINDOW")
	d.atoms.fullscreen = d.resolveAtom("_NET_WM_STATE_FULLSCREEN")

	t.InitKeybind()
	for _, kb := range cfg.Keybindings {
		chord, err := t.ParseChord(kb.Chord)
		if err != nil {
			log.Warn().Err(err).Str("chord", kb.Chord).Msg("skipping unparseable keybinding")
			continue
		}
		if err := t.GrabKey(chord); err != nil {
			log.Warn().Err(err).Str("chord", kb.Chord).Msg("failed to grab key")
			continue
		}
		d.keys = append(d.keys, boundChord{chord: chord, cmd: kb.Cmd})
	}

	if cfg.StatusBarExecutable != "" {
		bar := statusbar.New(cfg.StatusBarExecutable, cfg.StatusBarArgs, statusbar.XmobarFormatter())
		if err := bar.Start(); err != nil {
			log.Error().Err(err).Msg("failed to start status bar")
		} else {
			d.bar = bar
		}
	}

	return d
}

func (d *Driver) resolveAtom(name string) xproto.Atom {
	a, err := d.t.X.Atm(name, false)
	if err != nil {
		log.Warn().Err(err).Str("atom", name).Msg("resolving atom")
		return 0
	}
	return a
}

// Run blocks pumping X events until a CmdExit command or a fatal
// connection error. A single bad client or a decoded protocol error is
// logged and the loop continues (spec §7).
func (d *Driver) Run() error {
	d.redrawAndPublish()
	for {
		xev, err := d.t.NextEvent()
		if err != nil {
			log.Error().Err(err).Msg("x event error")
			continue
		}
		if xev == nil {
			return fmt.Errorf("driver: X connection closed")
		}
		d.handleEvent(xev)
	}
}

func (d *Driver) handleEvent(xev xgb.Event) {
	switch e := xev.(type) {
	case xproto.MapRequestEvent:
		d.handleMapRequest(e.Window)

	case xproto.DestroyNotifyEvent:
		d.handleRemove(core.Window(e.Window), true)

	case xproto.UnmapNotifyEvent:
		d.handleRemove(core.Window(e.Window), false)

	case xproto.ConfigureRequestEvent:
		d.t.ForwardConfigureRequest(e)

	case xproto.EnterNotifyEvent:
		d.handleEnterNotify(e)

	case xproto.PropertyNotifyEvent:
		d.handlePropertyNotify(e)

	case xproto.ClientMessageEvent:
		d.handleClientMessage(e)

	case xproto.KeyPressEvent:
		d.handleKeyPress(e)

	case xproto.ConfigureNotifyEvent:
		if e.Window == xproto.Window(d.t.GetRootWindow()) {
			d.st.Rescreen(d.t, len(d.t.ScreenInfos()))
			d.publish()
		}
	}
}

func (d *Driver) handleMapRequest(win xproto.Window) {
	if d.t.IsOverrideRedirect(win) {
		return
	}
	w := core.Window(win)

	class, _ := d.t.WindowClass(w)
	action, hasHook := d.cfg.ManageHookFor(class)

	if hasHook && action.IsIgnore() {
		d.t.MapWindow(w)
		return
	}

	switch {
	case hasHook && action.IsMove():
		idx := action.MoveWorkspace()
		if idx < 0 || idx >= len(d.st.Workspaces) {
			d.st.AddWindow(d.t, -1, w)
		} else {
			d.st.Workspaces[idx].AddWindow(d.t, w)
			d.st.Workspaces[idx].FocusWindow(d.t, w)
		}
	case hasHook && action.IsFloat():
		d.st.AddFloatingWindow(d.t, -1, w)
	default:
		d.st.AddWindow(d.t, -1, w)
	}

	if hasHook && action.IsFullscreen() {
		d.t.SetFullscreen(w, true)
	}

	d.t.RequestWindowEvents(w)
	d.t.MapWindow(w)
	d.redrawAndPublish()
}

func (d *Driver) handleRemove(w core.Window, destroyed bool) {
	if !d.st.RemoveWindow(d.t, w) {
		return
	}
	if destroyed {
		// Implicit fullscreen-clear on destroy (spec §9 open question: the
		// source never clears this bookkeeping itself).
		d.t.ClearWindow(w)
	}
	d.redrawAndPublish()
}

func (d *Driver) handleEnterNotify(e xproto.EnterNotifyEvent) {
	w := core.Window(e.Event)
	idx, ok := d.st.FindWindow(w)
	if !ok {
		return
	}
	if idx != d.st.Current && d.st.Workspaces[idx].Visible {
		d.st.Workspaces[d.st.Current].Unfocus(d.t, d.cfg.BorderColor)
		d.st.Current = idx
		d.st.Workspaces[idx].Focus = true
	}
	if !d.st.Workspaces[idx].FocusWindow(d.t, w) {
		return
	}
	d.redrawAndPublish()
}

func (d *Driver) handlePropertyNotify(e xproto.PropertyNotifyEvent) {
	w := core.Window(e.Window)
	switch e.Atom {
	case d.atoms.wmHints:
		idx, ok := d.st.FindWindow(w)
		if !ok {
			return
		}
		d.st.Workspaces[idx].SetUrgency(d.t.IsUrgent(w), w)
		d.redrawAndPublish()

	case d.atoms.netWmState:
		if _, ok := d.st.FindWindow(w); !ok {
			return
		}
		d.t.SetFullscreen(w, d.t.WmStateHasFullscreen(w))
		d.redrawAndPublish()
	}
}

func (d *Driver) handleClientMessage(e xproto.ClientMessageEvent) {
	data := e.Data.Data32
	switch e.Type {
	case d.atoms.currentDesktop:
		if len(data) == 0 {
			return
		}
		if !d.st.SwitchTo(d.t, int(data[0]), true) {
			return
		}
		d.redrawAndPublish()

	case d.atoms.activeWindow:
		w := core.Window(e.Window)
		idx, ok := d.st.FindWindow(w)
		if !ok {
			return
		}
		d.st.SwitchTo(d.t, idx, false)
		d.st.Workspaces[idx].FocusWindow(d.t, w)
		d.redrawAndPublish()

	case d.atoms.netWmState:
		if len(data) < 3 {
			return
		}
		d.applyWmStateRequest(core.Window(e.Window), data)
	}
}

func (d *Driver) applyWmStateRequest(w core.Window, data []uint32) {
	mode := transport.WmStateMode(data[0])
	if mode != transport.WmStateRemove && mode != transport.WmStateAdd && mode != transport.WmStateToggle {
		return
	}
	fs := uint32(d.atoms.fullscreen)
	if data[1] != fs && data[2] != fs {
		return
	}
	fullscreen := d.t.SetWmState(w, []string{"_NET_WM_STATE_FULLSCREEN"}, mode)
	d.t.SetFullscreen(w, fullscreen)
	d.redrawAndPublish()
}

func (d *Driver) handleKeyPress(e xproto.KeyPressEvent) {
	for _, bc := range d.keys {
		if transport.MatchChord(bc.chord, e.State, e.Detail) {
			d.dispatch(bc.cmd)
			return
		}
	}
}

func (d *Driver) dispatch(cmd core.Cmd) {
	result := cmd.Call(d.t, d.st)

	if result.Exit {
		d.shutdown()
		os.Exit(0)
	}

	if result.Reload {
		if err := d.reload(); err != nil {
			log.Error().Err(err).Msg("reload failed, continuing")
		} else {
			return // syscall.Exec replaced the process; unreachable on success
		}
	}

	if result.Exec != nil {
		if err := spawnDetached(result.Exec); err != nil {
			log.Error().Err(err).Strs("argv", result.Exec).Msg("exec failed")
		}
	}

	d.redrawAndPublish()
}

// reload performs the ordered teardown spec §5/§9 describes: flush EWMH
// (already current from the last redrawAndPublish), stop the status bar,
// serialize WmState, then self-exec so the replacement process's startup
// restores it.
func (d *Driver) reload() error {
	if d.bar != nil {
		_ = d.bar.Stop()
	}
	if err := core.SaveState(d.cfg.RestoreFilePath, d.st); err != nil {
		return fmt.Errorf("driver: save state: %w", err)
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("driver: find executable: %w", err)
	}
	d.t.Close()
	return syscall.Exec(exe, os.Args, os.Environ())
}

func (d *Driver) shutdown() {
	if d.bar != nil {
		_ = d.bar.Stop()
	}
	d.t.Close()
}

// spawnDetached execs argv with discarded stdio and never retains the
// child handle; a background goroutine reaps it so it never zombies
// (spec §9: "never leak zombies").
func spawnDetached(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("exec: empty argv")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (d *Driver) redrawAndPublish() {
	d.st.RedrawAll(d.t)
	d.publish()
}

func (d *Driver) publish() {
	d.t.PublishAll(d.st)
	if d.bar != nil {
		if err := d.bar.Update(d.st, d.t); err != nil {
			log.Error().Err(err).Msg("status bar update failed")
			d.bar = nil
		}
	}
}
