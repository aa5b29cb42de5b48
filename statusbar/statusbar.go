// Package statusbar pipes a textual status line to an external bar process
// (xmobar, lemonbar, dzen2, ...) over its stdin, the same shape as the
// source's Statusbar: a spawned child with a piped Stdin and a formatter
// function turning a core.LogInfo snapshot into one line of text.
package statusbar

import (
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/patrislav/tilewm/core"
)

// Formatter renders a full status snapshot (all three CmdLogHook facts
// gathered together) into the line written to the bar's stdin.
type Formatter func(Snapshot) string

// Snapshot bundles one LogInfo of each kind, since a bar line usually shows
// workspaces, layout, and title together rather than one fact at a time.
type Snapshot struct {
	Tags    []string
	Current int
	Visible []int
	Urgent  []int
	Layout  string
	Title   string
}

// Bar owns the bar subprocess and the formatter used to render updates.
type Bar struct {
	mu sync.Mutex

	executable string
	args       []string
	format     Formatter

	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// New builds a Bar that will exec executable with args, formatting updates
// with format.
func New(executable string, args []string, format Formatter) *Bar {
	return &Bar{executable: executable, args: args, format: format}
}

// XmobarFormatter builds the xmobar-compatible formatter Xmobar uses,
// exposed separately so a differently-named bar binary speaking the same
// markup (e.g. a custom xmobar wrapper) can reuse it. Matches the source's
// Statusbar::xmobar default: colored workspace tags (green for current,
// dark green for visible-elsewhere, red for urgent, white otherwise), the
// layout name, and the focused title, separated by " | ".
func XmobarFormatter() Formatter {
	return func(s Snapshot) string {
		visible := make(map[int]bool, len(s.Visible))
		for _, i := range s.Visible {
			visible[i] = true
		}
		urgent := make(map[int]bool, len(s.Urgent))
		for _, i := range s.Urgent {
			urgent[i] = true
		}

		line := ""
		for i, tag := range s.Tags {
			fg, bg := "#ffffff", "#000000"
			switch {
			case i == s.Current:
				fg = "#00ff00"
			case urgent[i]:
				fg = "#ff0000"
			case visible[i]:
				fg = "#009900"
			}
			if i > 0 {
				line += " "
			}
			line += fmt.Sprintf("<fc=%s,%s>[%s]</fc>", fg, bg, tag)
		}

		return fmt.Sprintf("%s | %s | %s\n", line, s.Layout, s.Title)
	}
}

// Xmobar builds a Bar preconfigured with XmobarFormatter.
func Xmobar(args ...string) *Bar {
	return New("xmobar", args, XmobarFormatter())
}

// Start spawns the bar subprocess with a piped stdin. Calling Start twice
// without a Stop in between is an error, matching the source's
// already-running bail!.
func (b *Bar) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cmd != nil {
		return fmt.Errorf("statusbar: %q is already running", b.executable)
	}

	log.Debug().Str("executable", b.executable).Msg("starting statusbar")
	cmd := exec.Command(b.executable, b.args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("statusbar: create stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("statusbar: exec %q: %w", b.executable, err)
	}

	b.cmd = cmd
	b.stdin = stdin
	return nil
}

// Update gathers all three CmdLogHook facts and writes one formatted line
// to the bar's stdin. A no-op if Start was never called or has failed.
func (b *Bar) Update(st *core.WmState, titler core.WindowTitler) error {
	b.mu.Lock()
	stdin := b.stdin
	b.mu.Unlock()
	if stdin == nil {
		return nil
	}

	ws := core.CmdLogWorkspaces.Gather(st, titler)
	layout := core.CmdLogLayout.Gather(st, titler)
	title := core.CmdLogTitle.Gather(st, titler)

	out := b.format(Snapshot{
		Tags:    ws.Tags,
		Current: ws.Current,
		Visible: ws.Visible,
		Urgent:  ws.Urgent,
		Layout:  layout.Layout,
		Title:   title.Title,
	})

	if _, err := io.WriteString(stdin, out); err != nil {
		return fmt.Errorf("statusbar: write to stdin: %w", err)
	}
	return nil
}

// Stop closes the bar's stdin and waits for it to exit. Safe to call when
// the bar was never started.
func (b *Bar) Stop() error {
	b.mu.Lock()
	cmd, stdin := b.cmd, b.stdin
	b.cmd, b.stdin = nil, nil
	b.mu.Unlock()

	if cmd == nil {
		return nil
	}
	if stdin != nil {
		_ = stdin.Close()
	}
	return cmd.Wait()
}
