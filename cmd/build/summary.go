package build

import (
	"fmt"
	"io"

	"github.com/gookit/color"

	pipeline "github.com/gramtools/gramtools/internal/build"
)

func printSummary(w io.Writer, outcome pipeline.Outcome) {
	for _, s := range outcome.Steps {
		fmt.Fprintf(w, "%-22s %s\n", s.Name, stepStatus(s))
	}
	fmt.Fprintf(w, "Report: %s\n", outcome.Paths.BuildReport)
}

func stepStatus(s pipeline.StepResult) string {
	switch {
	case s.Skipped:
		return color.Yellow.Sprint("skipped")
	case !s.Success:
		return color.Red.Sprint("failed")
	default:
		return color.Green.Sprint("ok")
	}
}
