package tools

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gramtools/gramtools/internal/toolconfig"
)

type toolCheck struct {
	name   string
	path   string
	status string
	ok     bool
}

// NewCommand returns a new tools command instance. exeDir seeds the default
// tool locations; empty means the directory of the running binary.
func NewCommand(exeDir string, environ func() []string) *cobra.Command {
	if environ == nil {
		environ = os.Environ
	}
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Show where the external build tools are expected and whether they exist",
		Long: `Show where the external build tools are expected and whether they exist.

Locations come from the built-in defaults, the --config file and the
GRAMTOOLS_* environment variables, in that order.

Examples:
  gramtools tools
  gramtools tools --config gramtools.hcl`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTools(cmd, exeDir, environ)
		},
	}

	return cmd
}

func runTools(cmd *cobra.Command, exeDir string, environ func() []string) error {
	if exeDir == "" {
		exeDir = toolconfig.ExecutableDir()
	}
	configPath, _ := cmd.Flags().GetString("config")
	tools, err := toolconfig.Load(toolconfig.Defaults(exeDir), configPath, toolconfig.EnvironmentFrom(environ()))
	if err != nil {
		return err
	}

	checks := []toolCheck{
		checkExecutable("interpreter", tools.Interpreter),
		checkFile("script", tools.ConstructionScript),
		checkExecutable("binary", tools.IndexingBinary),
	}
	for _, lib := range tools.LibraryPaths {
		checks = append(checks, checkFile("library_path", lib))
	}

	missing := 0
	for _, c := range checks {
		if !c.ok {
			missing++
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s (%s)\n", c.name, c.path, c.status); err != nil {
			return err
		}
	}

	if missing > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d of %d tool locations missing", missing, len(checks))
	}
	return nil
}

// checkExecutable looks bare names up on PATH and stats anything else.
func checkExecutable(name, path string) toolCheck {
	if !strings.ContainsRune(path, os.PathSeparator) {
		resolved, err := exec.LookPath(path)
		if err != nil {
			return toolCheck{name: name, path: path, status: "not on PATH"}
		}
		return toolCheck{name: name, path: path, status: "found at " + resolved, ok: true}
	}
	return checkFile(name, path)
}

func checkFile(name, path string) toolCheck {
	if _, err := os.Stat(path); err != nil {
		return toolCheck{name: name, path: path, status: "missing"}
	}
	return toolCheck{name: name, path: path, status: "ok", ok: true}
}
