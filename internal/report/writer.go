package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gramtools/gramtools/internal/errs"
)

// Input is everything the final report is assembled from.
type Input struct {
	Start time.Time
	// Body holds the overall success flag, the step sub-reports and the
	// k-mer parameters, in that order.
	Body       Document
	Paths      Document
	PathHashes Document
	Version    VersionInfo
}

// Writer assembles and persists run reports.
type Writer struct {
	Now   func() time.Time
	Getwd func() (string, error)
	NewID func() string
}

// NewWriter returns a Writer backed by the wall clock and the process
// working directory.
func NewWriter() *Writer {
	return &Writer{
		Now:   time.Now,
		Getwd: os.Getwd,
		NewID: uuid.NewString,
	}
}

// Assemble stamps timing, working directory and version metadata around in.
func (w *Writer) Assemble(in Input) (Document, error) {
	end := w.Now()
	cwd, err := w.Getwd()
	if err != nil {
		return nil, errs.IO(err, "determine working directory")
	}

	startSec := in.Start.Unix()
	endSec := end.Unix()

	doc := Document{
		{Key: "start_time", Value: startSec},
		{Key: "end_time", Value: endSec},
		{Key: "total_runtime", Value: endSec - startSec},
		{Key: "run_id", Value: w.NewID()},
	}
	doc = doc.Merge(in.Body)
	doc = doc.Merge(Document{
		{Key: "current_working_directory", Value: cwd},
		{Key: "paths", Value: in.Paths},
		{Key: "path_hashes", Value: in.PathHashes},
		{Key: "version_report", Value: in.Version.Document()},
	})
	return doc, nil
}

// Render encodes doc with four-space indentation and a trailing newline.
func Render(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Write assembles the report and writes it to path. The directory holding
// path must already exist.
func (w *Writer) Write(path string, in Input) (Document, error) {
	doc, err := w.Assemble(in)
	if err != nil {
		return nil, err
	}

	data, err := Render(doc)
	if err != nil {
		return nil, errs.IO(err, "encode report")
	}

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil, errs.IO(err, "write report %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, errs.IO(err, "write report %s", path)
	}
	return doc, nil
}
