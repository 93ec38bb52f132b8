package build

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pipeline "github.com/gramtools/gramtools/internal/build"
	"github.com/gramtools/gramtools/internal/ctxlog"
	"github.com/gramtools/gramtools/internal/paths"
	"github.com/gramtools/gramtools/internal/process"
	"github.com/gramtools/gramtools/internal/report"
	"github.com/gramtools/gramtools/internal/toolconfig"
)

// ExitError carries the process exit status of a build whose steps failed.
type ExitError struct {
	Code       int
	ReportPath string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("build failed, see report at %s", e.ReportPath)
}

type options struct {
	gramDirectory  string
	vcf            string
	reference      string
	prg            string
	kmerSize       int
	kmerRegionSize int
	maxReadLength  int
	allKmers       bool
	maxThreads     int
}

// Option customizes the collaborators of the build command.
type Option func(*commandConfig)

type commandConfig struct {
	runner  process.Runner
	exeDir  string
	environ func() []string
	writer  *report.Writer
}

// WithRunner replaces the subprocess runner.
func WithRunner(r process.Runner) Option {
	return func(c *commandConfig) { c.runner = r }
}

// WithExecutableDir sets the directory default tool locations derive from.
func WithExecutableDir(dir string) Option {
	return func(c *commandConfig) { c.exeDir = dir }
}

// WithEnviron replaces the environment source.
func WithEnviron(environ func() []string) Option {
	return func(c *commandConfig) { c.environ = environ }
}

// WithReportWriter replaces the report writer.
func WithReportWriter(w *report.Writer) Option {
	return func(c *commandConfig) { c.writer = w }
}

// NewCommand returns the build command. version is stamped into every report.
func NewCommand(version report.VersionInfo, opts ...Option) *cobra.Command {
	cfg := &commandConfig{
		runner:  process.NewExecRunner(),
		environ: os.Environ,
		writer:  report.NewWriter(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	o := &options{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a gram directory from a VCF and reference, or from a PRG.",
		Long: `Build a gram directory from a VCF and reference, or from a PRG.

Without --prg the construction script turns --vcf and --reference into a PRG.
With --prg the given file is copied into the gram directory instead. The gram
indexing binary then builds the k-mer index. A JSON report of every step is
written to build_report.json inside the gram directory.

Examples:
  gramtools build --gram-directory out --vcf sample.vcf --reference ref.fa
  gramtools build --gram-directory out --prg graph.prg --kmer-size 11
  gramtools build --gram-directory out --prg graph.prg --max-threads 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, o, cfg, version)
		},
	}

	cmd.Flags().StringVar(&o.gramDirectory, "gram-directory", "", "Project directory for all build inputs and outputs")
	cmd.Flags().StringVar(&o.vcf, "vcf", "", "Variant file the PRG is constructed from")
	cmd.Flags().StringVar(&o.reference, "reference", "", "Reference FASTA the PRG is constructed from")
	cmd.Flags().StringVar(&o.prg, "prg", "", "Pre-built PRG file; skips construction")
	cmd.Flags().IntVar(&o.kmerSize, "kmer-size", pipeline.DefaultKmerSize, "K-mer size for the index")
	cmd.Flags().IntVar(&o.kmerRegionSize, "kmer-region-size", pipeline.DefaultKmerRegionSize, "Reserved")
	cmd.Flags().IntVar(&o.maxReadLength, "max-read-length", pipeline.DefaultMaxReadLength, "Maximum read length")
	cmd.Flags().BoolVar(&o.allKmers, "all-kmers", false, "Reserved")
	cmd.Flags().IntVar(&o.maxThreads, "max-threads", pipeline.DefaultMaxThreads, "Threads available to the indexing binary")
	_ = cmd.MarkFlagRequired("gram-directory")

	return cmd
}

func runBuild(cmd *cobra.Command, o *options, cfg *commandConfig, version report.VersionInfo) error {
	logger := ctxlog.FromContext(cmd.Context())

	mode, err := pipeline.ModeFromFlags(o.prg, o.vcf, o.reference)
	if err != nil {
		return err
	}
	if o.prg != "" && (o.vcf != "" || o.reference != "") {
		logger.Warn("--prg given, ignoring --vcf and --reference")
	}

	debug, _ := cmd.Flags().GetBool("debug")
	args := pipeline.Args{
		GramDirectory:  paths.RawPath(o.gramDirectory),
		Mode:           mode,
		KmerSize:       o.kmerSize,
		KmerRegionSize: o.kmerRegionSize,
		MaxReadLength:  o.maxReadLength,
		AllKmers:       o.allKmers,
		MaxThreads:     o.maxThreads,
		Debug:          debug,
	}
	if err := args.Validate(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	exeDir := cfg.exeDir
	if exeDir == "" {
		exeDir = toolconfig.ExecutableDir()
	}
	configPath, _ := cmd.Flags().GetString("config")
	tools, err := toolconfig.Load(toolconfig.Defaults(exeDir), configPath, toolconfig.EnvironmentFrom(cfg.environ()))
	if err != nil {
		return err
	}
	logger.Debug("Resolved tools",
		"interpreter", tools.Interpreter,
		"script", tools.ConstructionScript,
		"binary", tools.IndexingBinary,
		"library_paths", tools.LibraryPaths,
	)

	resolver, err := paths.NewResolver("")
	if err != nil {
		return err
	}

	orchestrator := &pipeline.Orchestrator{
		Runner:   cfg.runner,
		Tools:    tools,
		Resolver: resolver,
		Writer:   cfg.writer,
		Version:  version,
		Logger:   logger,
		Environ:  cfg.environ,
	}
	outcome, err := orchestrator.Run(cmd.Context(), args)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), outcome)
	if !outcome.Success {
		return &ExitError{Code: 1, ReportPath: outcome.Paths.BuildReport.String()}
	}
	return nil
}
