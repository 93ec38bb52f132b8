// Package build drives the two external programs that turn a VCF and a
// reference (or a ready-made PRG) into an indexed gram directory, and
// records what happened in a JSON report.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gramtools/gramtools/internal/errs"
	"github.com/gramtools/gramtools/internal/paths"
	"github.com/gramtools/gramtools/internal/process"
	"github.com/gramtools/gramtools/internal/report"
	"github.com/gramtools/gramtools/internal/toolconfig"
)

const libraryPathEnv = "LD_LIBRARY_PATH"

// Orchestrator sequences the build steps.
type Orchestrator struct {
	Runner   process.Runner
	Tools    toolconfig.Tools
	Resolver paths.Resolver
	Writer   *report.Writer
	Version  report.VersionInfo
	Logger   *slog.Logger
	Now      func() time.Time
	Environ  func() []string
}

// Outcome summarizes a finished run.
type Outcome struct {
	Success bool
	Steps   []StepResult
	Paths   paths.BuildPaths
	Report  report.Document
}

// Run executes the build described by args. Step failures are captured in
// the outcome and the report; only path, configuration and report IO errors
// are returned.
func (o *Orchestrator) Run(ctx context.Context, args Args) (Outcome, error) {
	logger := o.logger()
	start := o.now()
	logger.Info("Start process: build", "mode", args.Mode)

	if err := args.Validate(); err != nil {
		return Outcome{}, err
	}

	layout, err := paths.GenerateBuildPaths(o.Resolver, args.GramDirectory)
	if err != nil {
		return Outcome{}, err
	}
	if err := paths.CheckProjectFileStructure(layout); err != nil {
		return Outcome{}, err
	}
	logger.Debug("Resolved gram directory", "project", layout.Project)

	p := newPipeline()
	if err := p.add(StepPRG, o.graphStep(args, layout)); err != nil {
		return Outcome{}, err
	}
	if err := p.add(StepIndex, o.indexStep(args, layout), StepPRG); err != nil {
		return Outcome{}, err
	}

	steps, err := p.run(ctx)
	if err != nil {
		return Outcome{}, err
	}
	for _, s := range steps {
		logStep(logger, s)
	}
	success := allSucceeded(steps)

	logger.Debug("Computing sha256 hash of project paths")
	hashes, err := o.hashPaths(ctx, layout)
	if err != nil {
		return Outcome{}, err
	}

	body := report.Document{{Key: successKey, Value: success}}
	for _, s := range steps {
		body = body.With(s.Name, s.Report())
	}
	body = body.Merge(report.Document{
		{Key: "kmer_size", Value: args.KmerSize},
		{Key: "max_read_length", Value: args.MaxReadLength},
	})

	logger.Debug("Saving command report", "path", layout.BuildReport)
	doc, err := o.writer().Write(layout.BuildReport.String(), report.Input{
		Start:      start,
		Body:       body,
		Paths:      pathsDocument(layout),
		PathHashes: hashes,
		Version:    o.Version,
	})
	if err != nil {
		return Outcome{}, err
	}

	logger.Info("End process: build", "success", success)
	return Outcome{Success: success, Steps: steps, Paths: layout, Report: doc}, nil
}

// graphStep returns the step placing a PRG in the gram directory, chosen by
// the build mode.
func (o *Orchestrator) graphStep(args Args, layout paths.BuildPaths) stepFunc {
	switch m := args.Mode.(type) {
	case PrebuiltGraph:
		return func(context.Context) StepResult { return o.copyPrebuilt(m, layout) }
	case ConstructFromVariants:
		return func(ctx context.Context) StepResult { return o.constructPRG(ctx, m, layout) }
	default:
		return func(context.Context) StepResult {
			return StepResult{Err: fmt.Errorf("unsupported build mode %T", args.Mode)}
		}
	}
}

func (o *Orchestrator) copyPrebuilt(m PrebuiltGraph, layout paths.BuildPaths) StepResult {
	logger := o.logger()

	src, err := o.Resolver.Resolve(m.Path)
	if err != nil {
		return StepResult{Err: errs.MissingInput("prg", string(m.Path))}
	}
	if err := paths.RequireFile("prg", src); err != nil {
		logger.Error("PRG argument provided and file not found", "path", src)
		return StepResult{Err: err}
	}

	logger.Debug("PRG file provided, skipping construction")
	logger.Debug("Copying PRG file into gram directory", "from", src, "to", layout.PRG)
	if err := paths.CopyFile(src, layout.PRG); err != nil {
		return StepResult{Err: err}
	}
	return StepResult{Success: true}
}

func (o *Orchestrator) constructPRG(ctx context.Context, m ConstructFromVariants, layout paths.BuildPaths) StepResult {
	inputs := []struct {
		kind string
		raw  paths.RawPath
		dst  paths.AbsolutePath
	}{
		{kind: "vcf", raw: m.VCF, dst: layout.VCF},
		{kind: "reference", raw: m.Reference, dst: layout.Reference},
	}
	for _, in := range inputs {
		src, err := o.Resolver.Resolve(in.raw)
		if err != nil {
			return StepResult{Err: errs.MissingInput(in.kind, string(in.raw))}
		}
		if err := paths.RequireFile(in.kind, src); err != nil {
			o.logger().Error("Input file not found", "kind", in.kind, "path", src)
			return StepResult{Err: err}
		}
		if err := paths.LinkInput(src, in.dst); err != nil {
			return StepResult{Err: err}
		}
	}

	cmd := process.Command{
		Name: o.Tools.Interpreter,
		Args: []string{
			o.Tools.ConstructionScript,
			"--outfile", layout.PRG.String(),
			"--vcf", layout.VCF.String(),
			"--ref", layout.Reference.String(),
		},
	}
	result := o.execute(ctx, cmd)
	if result.Success {
		moved, err := paths.CleanupConstructionSidecars(layout)
		if err != nil {
			o.logger().Warn("Failed to tidy construction output", "error", err)
		}
		for _, p := range moved {
			o.logger().Debug("Moved construction output", "path", p)
		}
	}
	return result
}

func (o *Orchestrator) indexStep(args Args, layout paths.BuildPaths) stepFunc {
	return func(ctx context.Context) StepResult {
		cmdArgs := []string{
			"build",
			"--gram", layout.Project.String(),
			"--kmer-size", strconv.Itoa(args.KmerSize),
			"--max-read-size", strconv.Itoa(args.MaxReadLength),
			"--max-threads", strconv.Itoa(args.MaxThreads),
		}
		if args.Debug {
			cmdArgs = append(cmdArgs, "--debug")
		}

		return o.execute(ctx, process.Command{
			Name: o.Tools.IndexingBinary,
			Args: cmdArgs,
			Env:  process.WithPathList(o.environ(), libraryPathEnv, o.Tools.LibraryPaths),
		})
	}
}

// execute runs cmd and turns its result into a step result.
func (o *Orchestrator) execute(ctx context.Context, cmd process.Command) StepResult {
	logger := o.logger()
	commandLine := cmd.String()
	logger.Debug("Executing command", "command", commandLine)

	res, err := o.Runner.Run(ctx, cmd)
	logger.Debug("Finished executing command", "command", commandLine, "seconds", res.Duration.Seconds())

	detail := report.Document{
		{Key: "command", Value: commandLine},
		{Key: "stdout", Value: process.Lines(res.Stdout)},
		{Key: "stderr", Value: process.Lines(res.Stderr)},
	}
	switch {
	case err != nil:
		return StepResult{Detail: detail, Err: errs.Subprocess(commandLine, err)}
	case !res.Success:
		return StepResult{Detail: detail, Err: errs.Subprocess(commandLine, nil)}
	}
	return StepResult{Success: true, Detail: detail}
}

// hashPaths hashes every build path except the report, which is about to be
// rewritten and would otherwise make reruns disagree.
func (o *Orchestrator) hashPaths(ctx context.Context, layout paths.BuildPaths) (report.Document, error) {
	var hashable []paths.NamedPath
	for _, np := range layout.Named() {
		if np.Name != paths.NameBuildReport {
			hashable = append(hashable, np)
		}
	}
	hashes, err := report.HashPaths(ctx, hashable)
	if err != nil {
		return nil, err
	}
	return hashes.With(paths.NameBuildReport, nil), nil
}

func pathsDocument(layout paths.BuildPaths) report.Document {
	doc := make(report.Document, 0, 5)
	for _, np := range layout.Named() {
		doc = append(doc, report.Field{Key: np.Name, Value: np.Path.String()})
	}
	return doc
}

func logStep(logger *slog.Logger, s StepResult) {
	switch {
	case s.Skipped:
		logger.Error("Step skipped after earlier failure", "step", s.Name)
	case !s.Success:
		logger.Error("Step failed", "step", s.Name, "error", s.Err)
	default:
		logger.Info("Step succeeded", "step", s.Name)
	}
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o *Orchestrator) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o *Orchestrator) environ() []string {
	if o.Environ == nil {
		return os.Environ()
	}
	return o.Environ()
}

func (o *Orchestrator) writer() *report.Writer {
	if o.Writer == nil {
		return report.NewWriter()
	}
	return o.Writer
}
