// Command tilewm is the process entrypoint: it parses flags, loads
// configuration, opens the X11 connection, restores or builds the
// workspace set, and hands off to the event driver.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"rsc.io/getopt"

	"github.com/patrislav/tilewm/config"
	"github.com/patrislav/tilewm/core"
	"github.com/patrislav/tilewm/driver"
	"github.com/patrislav/tilewm/transport"
)

const wmName = "tilewm"

var configPath = flag.String("config", defaultConfigPath(), "Path to a YAML configuration overlay")
var logLevel = flag.String("log-level", "", "Override the configured log level (trace|debug|info|warn|error)")
var showVersion = flag.Bool("version", false, "Print the version and exit")

// version is set at build time via -ldflags; "dev" otherwise.
var version = "dev"

func init() {
	getopt.CommandLine.Init(wmName, flag.ContinueOnError)
	getopt.Alias("c", "config")
	getopt.Alias("l", "log-level")
	getopt.Alias("v", "version")
}

func defaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, wmName, "config.yaml")
}

func main() {
	if err := parseFlags(&getopt.CommandLine, os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			getopt.CommandLine.SetOutput(os.Stderr)
			getopt.CommandLine.PrintDefaults()
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *showVersion {
		fmt.Println(wmName, version)
		return
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false})

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		announceFatal(fmt.Sprintf("tilewm: loading configuration: %v", err))
		log.Fatal().Err(err).Msg("loading configuration")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	applyLogLevel(cfg.LogLevel)
	applyLogFile(cfg.LogFilePath)

	if err := run(cfg); err != nil {
		announceFatal(fmt.Sprintf("tilewm: %v", err))
		log.Fatal().Err(err).Msg("tilewm exiting")
	}
}

func applyLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// applyLogFile adds path as a second sink alongside stderr (spec.md §7: "a
// rotating log file or stderr"). Rotation itself is left to external
// tooling (logrotate and friends) acting on the path; this just appends.
// A no-op when path is empty or can't be opened (the latter is logged and
// the console sink is kept).
func applyLogFile(path string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("creating log file directory")
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("opening log file")
		return
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}
	log.Logger = log.Output(zerolog.MultiLevelWriter(console, io.Writer(f)))
}

// announceFatal pops an xmessage dialog for a fatal startup error, per
// spec.md §7's "an optional xmessage popup announces fatal startup
// errors". Best-effort: if xmessage isn't installed or $DISPLAY can't be
// reached, the error already went to the log.
func announceFatal(msg string) {
	cmd := exec.Command("xmessage", "-center", msg)
	_ = cmd.Start()
}

func run(cfg *config.Config) error {
	t, err := transport.Connect()
	if err != nil {
		return fmt.Errorf("connect to X display: %w", err)
	}
	defer t.Close()

	if err := t.BecomeWM(); err != nil {
		return fmt.Errorf("become window manager: %w", err)
	}
	if err := t.AdvertiseEWMH(wmName); err != nil {
		return fmt.Errorf("advertise EWMH: %w", err)
	}

	numScreens := len(t.ScreenInfos())
	known, err := t.ExistingWindows()
	if err != nil {
		log.Warn().Err(err).Msg("listing existing windows; restore will not filter stale IDs")
		known = nil
	}

	st, restored, err := core.LoadState(cfg.RestoreFilePath, cfg.Workspaces, numScreens, known)
	if err != nil {
		log.Warn().Err(err).Msg("restore file unreadable, starting fresh")
		st = core.NewWmState(cfg.Workspaces, numScreens)
	}
	if restored {
		log.Info().Msg("restored workspace state across reload")
	}

	d := driver.New(t, cfg, st)
	return d.Run()
}
