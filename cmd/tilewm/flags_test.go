package main

import (
	"flag"
	"testing"

	"rsc.io/getopt"
)

// These tests drive parseFlags against the package's own getopt.CommandLine,
// already wired up by init() with the real "config"/"log-level"/"version"
// flags and their "c"/"l"/"v" short aliases -- there is no documented way to
// build a second, independent getopt.FlagSet in the corpus, so exercising
// the actual command-line flags is the grounded approach.

func TestParseFlagsLongWithEquals(t *testing.T) {
	if err := parseFlags(&getopt.CommandLine, []string{"--log-level=debug"}); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if *logLevel != "debug" {
		t.Fatalf("expected log-level=debug, got %q", *logLevel)
	}
}

func TestParseFlagsLongWithSeparateValue(t *testing.T) {
	if err := parseFlags(&getopt.CommandLine, []string{"--log-level", "warn"}); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if *logLevel != "warn" {
		t.Fatalf("expected log-level=warn, got %q", *logLevel)
	}
}

func TestParseFlagsShortAliasWithValue(t *testing.T) {
	if err := parseFlags(&getopt.CommandLine, []string{"-l", "error"}); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if *logLevel != "error" {
		t.Fatalf("expected log-level=error via -l, got %q", *logLevel)
	}
}

func TestParseFlagsShortBoolean(t *testing.T) {
	*showVersion = false
	if err := parseFlags(&getopt.CommandLine, []string{"-v"}); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !*showVersion {
		t.Fatal("expected -v to set showVersion true")
	}
}

func TestParseFlagsUnknownFlagErrors(t *testing.T) {
	if err := parseFlags(&getopt.CommandLine, []string{"--bogus"}); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}

func TestParseFlagsHelpShortCircuits(t *testing.T) {
	if err := parseFlags(&getopt.CommandLine, []string{"--help"}); err != flag.ErrHelp {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}
