package build

import (
	"github.com/gramtools/gramtools/internal/report"
)

// Report keys of the pipeline steps.
const (
	StepPRG   = "prg_build_report"
	StepIndex = "gramtools_cpp_build"
)

const successKey = "return_value_is_0"

// StepResult is the outcome of one pipeline step.
type StepResult struct {
	Name    string
	Success bool
	// Skipped is set when an earlier failure prevented the step from running.
	Skipped bool
	// Detail carries step-specific fields such as the command line and its
	// captured output.
	Detail report.Document
	Err    error
}

func skippedStep(name string) StepResult {
	return StepResult{Name: name, Skipped: true}
}

// Report renders the step's sub-report. The command line, when present,
// precedes the success flag.
func (r StepResult) Report() report.Document {
	doc := report.Document{}
	if cmd, ok := r.Detail.Get("command"); ok {
		doc = doc.With("command", cmd)
	}
	doc = doc.With(successKey, r.Success)
	for _, f := range r.Detail {
		if f.Key == "command" {
			continue
		}
		doc = doc.With(f.Key, f.Value)
	}
	if r.Err != nil {
		doc = doc.With("error", r.Err.Error())
	}
	return doc
}
