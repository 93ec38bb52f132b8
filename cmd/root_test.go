package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	buildcmd "github.com/gramtools/gramtools/cmd/build"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   string
		debug   bool
		want    slog.Level
		wantErr bool
	}{
		{name: "default info", level: "info", want: slog.LevelInfo},
		{name: "upper case", level: "WARN", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
		{name: "debug flag wins", level: "error", debug: true, want: slog.LevelDebug},
		{name: "invalid", level: "chatty", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseLogLevel(tc.level, tc.debug)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseLogLevel(%q) expected error", tc.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLogLevel(%q) error = %v", tc.level, err)
			}
			if got != tc.want {
				t.Fatalf("parseLogLevel(%q, %v) = %v, want %v", tc.level, tc.debug, got, tc.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	buildFailure := fmt.Errorf("wrapped: %w", &buildcmd.ExitError{Code: 1, ReportPath: "out/build_report.json"})
	if got := exitCode(buildFailure); got != 1 {
		t.Fatalf("exitCode(build failure) = %d, want 1", got)
	}
	if got := exitCode(errors.New("bad flag")); got != 1 {
		t.Fatalf("exitCode(other) = %d, want 1", got)
	}
}

func TestRootCommand_RegistersBuild(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"build", "--help"})

	var stdout bytes.Buffer
	root.SetOut(&stdout)

	if err := root.Execute(); err != nil {
		t.Fatalf("root.Execute() error = %v", err)
	}
	for _, flag := range []string{"--gram-directory", "--prg", "--vcf", "--reference", "--kmer-size", "--max-threads", "--debug", "--config"} {
		if !strings.Contains(stdout.String(), flag) {
			t.Fatalf("expected build help to mention %s, got:\n%s", flag, stdout.String())
		}
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"--log-level", "chatty", "build", "--gram-directory", t.TempDir(), "--prg", "graph.prg"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "log-level") {
		t.Fatalf("expected log level error, got %v", err)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"build", "init", "tools"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected %q among subcommands %v", want, names)
		}
	}
}
