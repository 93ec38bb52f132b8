package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	buildcmd "github.com/gramtools/gramtools/cmd/build"
	initcmd "github.com/gramtools/gramtools/cmd/init"
	"github.com/gramtools/gramtools/cmd/tools"
	"github.com/gramtools/gramtools/internal/ctxlog"
	"github.com/gramtools/gramtools/internal/mcplogdlog"
	"github.com/gramtools/gramtools/internal/report"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// NewRootCommand assembles the gramtools command tree.
func NewRootCommand() *cobra.Command {
	var debug bool
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "gramtools",
		Short: "Build and index genome graphs",
		Long: `Gramtools drives the construction and indexing of genome graphs.

Use 'gramtools --help' to see all available commands, or 'gramtools <command> --help'
for detailed information about a specific command.`,
		Version:       version,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(logLevel, debug)
			if err != nil {
				return err
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			logger := slog.New(mcplogdlog.Wrap(handler))
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	// Initialize annotations for version template
	rootCmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug logging; also passed to the indexing binary")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("config", "", "HCL tool configuration file (default $GRAMTOOLS_CONFIG)")

	// Register subcommands
	rootCmd.AddCommand(buildcmd.NewCommand(report.NewVersionInfo(version, commit, buildDate)))
	rootCmd.AddCommand(initcmd.NewCommand(""))
	rootCmd.AddCommand(tools.NewCommand("", nil))

	return rootCmd
}

// Execute runs the root command and exits with the status the failing
// command asked for. This is called by main.main().
func Execute() {
	rootCmd := NewRootCommand()
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	var exitErr *buildcmd.ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	return 1
}

func parseLogLevel(name string, debug bool) (slog.Level, error) {
	if debug {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: %w", name, err)
	}
	return level, nil
}
