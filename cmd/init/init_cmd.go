package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gramtools/gramtools/internal/toolconfig"
)

const defaultConfigFile = "gramtools.hcl"

type options struct {
	output string
	force  bool
	quiet  bool
}

// NewCommand returns the init command. exeDir seeds the default tool
// locations; empty means the directory of the running binary.
func NewCommand(exeDir string) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter tool configuration file",
		Long: `Write a starter tool configuration file.

The file lists where gramtools looks for the construction script, the gram
indexing binary and its shared libraries. Edit it and point --config or
$GRAMTOOLS_CONFIG at it.

With --force: Overwrites an existing file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, o, exeDir)
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", defaultConfigFile, "Path of the configuration file to write")
	cmd.Flags().BoolVar(&o.force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "Suppress output")

	return cmd
}

func runInit(cmd *cobra.Command, o *options, exeDir string) error {
	absPath, err := filepath.Abs(o.output)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	_, err = os.Stat(absPath)
	fileExists := !os.IsNotExist(err)
	if fileExists && !o.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", absPath)
	}

	if exeDir == "" {
		exeDir = toolconfig.ExecutableDir()
	}
	content := toolconfig.Defaults(exeDir).HCL()

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", absPath, err)
	}
	if err := os.WriteFile(absPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", absPath, err)
	}

	if !o.quiet {
		if fileExists {
			fmt.Fprintf(cmd.OutOrStdout(), "Overwrote %s with default tool locations\n", absPath)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s with default tool locations\n", absPath)
		}
	}
	return nil
}
