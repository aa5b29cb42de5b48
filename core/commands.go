package core

// CmdKind enumerates the closed set of actions a keybinding or manage-hook
// can trigger (spec §4.7/§6). User-facing workspace/screen indices are
// 1-based; constructors convert them to the 0-based indices WmState uses.
type CmdKind int

const (
	CmdExec CmdKind = iota
	CmdSwitchWorkspace
	CmdSwitchScreen
	CmdMoveToWorkspace
	CmdMoveToScreen
	CmdKillClient
	CmdFocusUp
	CmdFocusDown
	CmdFocusMaster
	CmdSwapUp
	CmdSwapDown
	CmdSwapMaster
	CmdFocusParentUp
	CmdFocusParentDown
	CmdFocusParentMaster
	CmdSwapParentUp
	CmdSwapParentDown
	CmdSwapParentMaster
	CmdSendLayoutMsg
	CmdNestLayout
	CmdReload
	CmdExit
)

// Cmd is a single dispatchable action. Only the fields relevant to its kind
// are populated.
type Cmd struct {
	Kind  CmdKind
	Argv  []string
	Index int // 0-based, already converted from the 1-based user-facing value
	Msg   LayoutMsg
	Layout Layout
}

func ExecCmd(argv []string) Cmd              { return Cmd{Kind: CmdExec, Argv: argv} }
func SwitchWorkspaceCmd(i int) Cmd           { return Cmd{Kind: CmdSwitchWorkspace, Index: i - 1} }
func SwitchScreenCmd(i int) Cmd              { return Cmd{Kind: CmdSwitchScreen, Index: i - 1} }
func MoveToWorkspaceCmd(i int) Cmd           { return Cmd{Kind: CmdMoveToWorkspace, Index: i - 1} }
func MoveToScreenCmd(i int) Cmd              { return Cmd{Kind: CmdMoveToScreen, Index: i - 1} }
func KillClientCmd() Cmd                     { return Cmd{Kind: CmdKillClient} }
func FocusUpCmd() Cmd                        { return Cmd{Kind: CmdFocusUp} }
func FocusDownCmd() Cmd                      { return Cmd{Kind: CmdFocusDown} }
func FocusMasterCmd() Cmd                    { return Cmd{Kind: CmdFocusMaster} }
func SwapUpCmd() Cmd                         { return Cmd{Kind: CmdSwapUp} }
func SwapDownCmd() Cmd                       { return Cmd{Kind: CmdSwapDown} }
func SwapMasterCmd() Cmd                     { return Cmd{Kind: CmdSwapMaster} }
func FocusParentUpCmd() Cmd                  { return Cmd{Kind: CmdFocusParentUp} }
func FocusParentDownCmd() Cmd                { return Cmd{Kind: CmdFocusParentDown} }
func FocusParentMasterCmd() Cmd              { return Cmd{Kind: CmdFocusParentMaster} }
func SwapParentUpCmd() Cmd                   { return Cmd{Kind: CmdSwapParentUp} }
func SwapParentDownCmd() Cmd                 { return Cmd{Kind: CmdSwapParentDown} }
func SwapParentMasterCmd() Cmd               { return Cmd{Kind: CmdSwapParentMaster} }
func SendLayoutMsgCmd(msg LayoutMsg) Cmd     { return Cmd{Kind: CmdSendLayoutMsg, Msg: msg} }
func NestLayoutCmd(layout Layout) Cmd        { return Cmd{Kind: CmdNestLayout, Layout: layout} }
func ReloadCmd() Cmd                         { return Cmd{Kind: CmdReload} }
func ExitCmd() Cmd                           { return Cmd{Kind: CmdExit} }

// CmdResult reports side effects a Cmd wants the driver to carry out beyond
// mutating WmState: core never spawns processes, serializes to disk, or
// calls exec itself, so these stay out-of-band signals.
type CmdResult struct {
	Exec   []string // non-nil: driver should spawn this argv, detached
	Reload bool     // driver should serialize WmState and self-exec
	Exit   bool      // driver should tear down and quit
}

// Call dispatches cmd against the current workspace of st, via t. It
// returns whatever out-of-band action the driver must additionally
// perform. Call never panics on an out-of-range index; such commands are
// silently dropped, matching a failed transport call being logged and the
// loop continuing.
func (c Cmd) Call(t Transport, st *WmState) CmdResult {
	switch c.Kind {
	case CmdExec:
		return CmdResult{Exec: c.Argv}

	case CmdSwitchWorkspace:
		st.SwitchTo(t, c.Index, true)

	case CmdSwitchScreen:
		st.SwitchToScreen(t, c.Index)

	case CmdMoveToWorkspace:
		st.MoveFocusedWindowTo(t, c.Index)

	case CmdMoveToScreen:
		if idx, ok := st.VisibleOnScreen(c.Index); ok {
			st.MoveFocusedWindowTo(t, idx)
		}

	case CmdKillClient:
		if w, ok := st.CurrentWorkspace().FocusedWindow(); ok {
			t.KillWindow(w)
		}

	case CmdFocusUp:
		focusOnCurrent(t, st, MoveUp)
	case CmdFocusDown:
		focusOnCurrent(t, st, MoveDown)
	case CmdFocusMaster:
		focusOnCurrent(t, st, MoveSwap)

	case CmdSwapUp:
		st.CurrentWorkspace().MoveWindow(MoveUp)
	case CmdSwapDown:
		st.CurrentWorkspace().MoveWindow(MoveDown)
	case CmdSwapMaster:
		st.CurrentWorkspace().MoveWindow(MoveSwap)

	case CmdFocusParentUp:
		focusParentOnCurrent(t, st, MoveUp)
	case CmdFocusParentDown:
		focusParentOnCurrent(t, st, MoveDown)
	case CmdFocusParentMaster:
		focusParentOnCurrent(t, st, MoveSwap)

	case CmdSwapParentUp:
		st.CurrentWorkspace().MoveParentWindow(MoveUp)
	case CmdSwapParentDown:
		st.CurrentWorkspace().MoveParentWindow(MoveDown)
	case CmdSwapParentMaster:
		st.CurrentWorkspace().MoveParentWindow(MoveSwap)

	case CmdSendLayoutMsg:
		st.CurrentWorkspace().managed.SendLayoutMsg(c.Msg)

	case CmdNestLayout:
		st.CurrentWorkspace().NestLayout(c.Layout)

	case CmdReload:
		return CmdResult{Reload: true}

	case CmdExit:
		return CmdResult{Exit: true}
	}
	return CmdResult{}
}

func focusOnCurrent(t Transport, st *WmState, op MoveOp) {
	if w, ok := st.CurrentWorkspace().MoveFocus(op); ok {
		t.FocusWindow(w)
	}
}

func focusParentOnCurrent(t Transport, st *WmState, op MoveOp) {
	if w, ok := st.CurrentWorkspace().MoveParentFocus(op); ok {
		t.FocusWindow(w)
	}
}

// ManageAction is the closed set of dispositions a manage-hook can apply to
// a newly mapped window, keyed by the client's WM_CLASS in configuration.
type ManageAction struct {
	kind       manageActionKind
	workspace1 int // 1-based, as supplied by configuration
}

type manageActionKind int

const (
	ManageMove manageActionKind = iota
	ManageFloat
	ManageFullscreen
	ManageIgnore
)

func ManageMoveTo(workspace1 int) ManageAction { return ManageAction{kind: ManageMove, workspace1: workspace1} }

var (
	ManageFloatAction      = ManageAction{kind: ManageFloat}
	ManageFullscreenAction = ManageAction{kind: ManageFullscreen}
	ManageIgnoreAction     = ManageAction{kind: ManageIgnore}
)

// IsMove, IsFloat, IsFullscreen, IsIgnore let driver-level code branch on
// an action's kind without reaching into the unexported field.
func (a ManageAction) IsMove() bool       { return a.kind == ManageMove }
func (a ManageAction) IsFloat() bool      { return a.kind == ManageFloat }
func (a ManageAction) IsFullscreen() bool { return a.kind == ManageFullscreen }
func (a ManageAction) IsIgnore() bool     { return a.kind == ManageIgnore }

// MoveWorkspace returns the 0-based target workspace index for a Move
// action. Only meaningful when IsMove is true.
func (a ManageAction) MoveWorkspace() int { return a.workspace1 - 1 }

// ManageHook pairs a client class name with the action new windows of that
// class should receive.
type ManageHook struct {
	ClassName string
	Action    ManageAction
}

// Apply routes w per the hook's action. Float/Fullscreen/Ignore are
// transport-driven concerns the driver layer owns (floating classification
// already happens through Transport.IsFloatingWindow, fullscreen through
// EWMH state, and Ignore by never calling AddWindow); only Move has
// anything left to do at the WmState level.
func (a ManageAction) Apply(t Transport, st *WmState, w Window) {
	if a.kind != ManageMove {
		return
	}
	idx := a.workspace1 - 1
	if idx < 0 || idx >= len(st.Workspaces) {
		return
	}
	st.Workspaces[idx].AddWindow(t, w)
	st.Workspaces[idx].FocusWindow(t, w)
}

// LogInfoKind is the closed set of facts a log-hook can report.
type LogInfoKind int

const (
	LogWorkspaces LogInfoKind = iota
	LogTitle
	LogLayout
)

// LogInfo carries one fact gathered by a CmdLogHook.
type LogInfo struct {
	Kind LogInfoKind

	// LogWorkspaces
	Tags    []string
	Current int
	Visible []int
	Urgent  []int

	// LogTitle
	Title string

	// LogLayout
	Layout string
}

// CmdLogHook is the closed set of facts a status-bar formatter can request.
type CmdLogHook int

const (
	CmdLogWorkspaces CmdLogHook = iota
	CmdLogTitle
	CmdLogLayout
)

// WindowTitler is the narrow transport capability CmdLogTitle needs.
type WindowTitler interface {
	WindowTitle(w Window) string
}

// Gather evaluates the hook against the current state, using titler for
// CmdLogTitle (a concern transport.go carries separately from the core
// Transport interface, since most core operations never need it).
func (h CmdLogHook) Gather(st *WmState, titler WindowTitler) LogInfo {
	switch h {
	case CmdLogWorkspaces:
		tags := make([]string, len(st.Workspaces))
		var visible, urgent []int
		for i, ws := range st.Workspaces {
			tags[i] = ws.Tag
			if ws.Visible {
				visible = append(visible, i)
			}
			if ws.IsUrgent() {
				urgent = append(urgent, i)
			}
		}
		return LogInfo{Kind: LogWorkspaces, Tags: tags, Current: st.Current, Visible: visible, Urgent: urgent}

	case CmdLogTitle:
		title := ""
		if w, ok := st.CurrentWorkspace().FocusedWindow(); ok && titler != nil {
			title = titler.WindowTitle(w)
		}
		return LogInfo{Kind: LogTitle, Title: title}

	default: // CmdLogLayout
		return LogInfo{Kind: LogLayout, Layout: st.CurrentWorkspace().managed.Layout.Name()}
	}
}
