// Package paths derives the fixed gram directory layout and manages the
// files the build pipeline places inside it.
package paths

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gramtools/gramtools/internal/errs"
)

const (
	prgFileName           = "prg"
	vcfFileName           = "vcf"
	referenceFileName     = "original_reference.fasta"
	buildReportFileName   = "build_report.json"
	perlGeneratedVCFName  = "perl_generated_vcf"
	perlGeneratedFastaName = "perl_generated_fa"
)

// Logical names of the build paths, in report order.
const (
	NameProject     = "project"
	NamePRG         = "prg"
	NameVCF         = "vcf"
	NameReference   = "reference"
	NameBuildReport = "build_report"
)

// BuildPaths is the layout of one gram directory.
type BuildPaths struct {
	Project     AbsolutePath
	PRG         AbsolutePath
	VCF         AbsolutePath
	Reference   AbsolutePath
	BuildReport AbsolutePath

	// Destinations for the sidecar files written next to the PRG by the
	// construction tool.
	PerlGeneratedVCF   AbsolutePath
	PerlGeneratedFasta AbsolutePath
}

// NamedPath pairs a logical path name with its location.
type NamedPath struct {
	Name string
	Path AbsolutePath
}

// GenerateBuildPaths computes the layout for gramDirectory. It does not touch
// the filesystem.
func GenerateBuildPaths(resolver Resolver, gramDirectory RawPath) (BuildPaths, error) {
	project, err := resolver.Resolve(gramDirectory)
	if err != nil {
		return BuildPaths{}, errs.Path("gram directory: %v", err)
	}

	return BuildPaths{
		Project:            project,
		PRG:                project.Join(prgFileName),
		VCF:                project.Join(vcfFileName),
		Reference:          project.Join(referenceFileName),
		BuildReport:        project.Join(buildReportFileName),
		PerlGeneratedVCF:   project.Join(perlGeneratedVCFName),
		PerlGeneratedFasta: project.Join(perlGeneratedFastaName),
	}, nil
}

// Named returns the fixed command path mapping.
func (p BuildPaths) Named() []NamedPath {
	return []NamedPath{
		{Name: NameProject, Path: p.Project},
		{Name: NamePRG, Path: p.PRG},
		{Name: NameVCF, Path: p.VCF},
		{Name: NameReference, Path: p.Reference},
		{Name: NameBuildReport, Path: p.BuildReport},
	}
}

// CheckProjectFileStructure creates the project directory when missing and
// fails with errs.ErrPath when it cannot be used.
func CheckProjectFileStructure(p BuildPaths) error {
	info, err := os.Stat(p.Project.String())
	switch {
	case err == nil && !info.IsDir():
		return errs.Path("gram directory %s exists and is not a directory", p.Project)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return errs.Path("failed to inspect gram directory %s: %v", p.Project, err)
	}

	if err := os.MkdirAll(p.Project.String(), 0o755); err != nil {
		return errs.Path("failed to create gram directory %s: %v", p.Project, err)
	}
	return nil
}

// RequireFile returns errs.ErrMissingInput unless path is an existing
// regular file.
func RequireFile(kind string, path AbsolutePath) error {
	info, err := os.Stat(path.String())
	if err != nil || !info.Mode().IsRegular() {
		return errs.MissingInput(kind, path.String())
	}
	return nil
}

// CopyFile copies src to dst byte for byte, replacing dst. Copying a file
// onto itself is a no-op.
func CopyFile(src, dst AbsolutePath) error {
	if SamePath(src, dst) {
		return nil
	}

	in, err := os.Open(src.String())
	if err != nil {
		return errs.IO(err, "open %s", src)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst.String()), "."+filepath.Base(dst.String())+".*")
	if err != nil {
		return errs.IO(err, "create %s", dst)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return errs.IO(err, "copy %s to %s", src, dst)
	}
	if err := tmp.Close(); err != nil {
		return errs.IO(err, "close %s", dst)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errs.IO(err, "chmod %s", dst)
	}
	if err := os.Rename(tmpName, dst.String()); err != nil {
		return errs.IO(err, "rename %s", dst)
	}
	return nil
}

// LinkInput places src at dst inside the project directory as a symlink,
// falling back to a copy where symlinks are unavailable. An existing dst is
// replaced.
func LinkInput(src, dst AbsolutePath) error {
	if SamePath(src, dst) {
		return nil
	}
	if err := os.Remove(dst.String()); err != nil && !os.IsNotExist(err) {
		return errs.IO(err, "remove stale %s", dst)
	}
	if err := os.Symlink(src.String(), dst.String()); err == nil {
		return nil
	}
	return CopyFile(src, dst)
}

// CleanupConstructionSidecars moves the VCF and FASTA files the construction
// tool leaves next to the PRG to their fixed names. Absent sidecars are
// ignored. It returns the destinations that were written.
func CleanupConstructionSidecars(p BuildPaths) ([]AbsolutePath, error) {
	moves := []struct {
		from AbsolutePath
		to   AbsolutePath
	}{
		{from: AbsolutePath(p.PRG.String() + ".vcf"), to: p.PerlGeneratedVCF},
		{from: AbsolutePath(p.PRG.String() + ".fa"), to: p.PerlGeneratedFasta},
	}

	var moved []AbsolutePath
	for _, m := range moves {
		if _, err := os.Stat(m.from.String()); os.IsNotExist(err) {
			continue
		}
		if err := os.Rename(m.from.String(), m.to.String()); err != nil {
			return moved, errs.IO(err, "move %s", m.from)
		}
		moved = append(moved, m.to)
	}
	return moved, nil
}
