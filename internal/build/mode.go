package build

import (
	"errors"
	"fmt"

	"github.com/gramtools/gramtools/internal/paths"
)

// ErrNoGraphSource is returned when neither a PRG nor a VCF/reference pair
// was supplied.
var ErrNoGraphSource = errors.New("either --prg or both --vcf and --reference are required")

// Mode selects how the PRG reaches the gram directory. It is one of
// PrebuiltGraph or ConstructFromVariants.
type Mode interface {
	isMode()
	String() string
}

// PrebuiltGraph copies an existing PRG into the gram directory.
type PrebuiltGraph struct {
	Path paths.RawPath
}

// ConstructFromVariants runs the construction tool over a VCF and reference.
type ConstructFromVariants struct {
	VCF       paths.RawPath
	Reference paths.RawPath
}

func (PrebuiltGraph) isMode()         {}
func (ConstructFromVariants) isMode() {}

func (m PrebuiltGraph) String() string {
	return fmt.Sprintf("prebuilt prg %s", m.Path)
}

func (m ConstructFromVariants) String() string {
	return fmt.Sprintf("construct prg from vcf %s and reference %s", m.VCF, m.Reference)
}

// ModeFromFlags decides the build mode once from the raw flag values. A PRG
// wins over a VCF/reference pair.
func ModeFromFlags(prg, vcf, reference string) (Mode, error) {
	if prg != "" {
		return PrebuiltGraph{Path: paths.RawPath(prg)}, nil
	}
	switch {
	case vcf == "" && reference == "":
		return nil, ErrNoGraphSource
	case vcf == "":
		return nil, fmt.Errorf("--vcf is required with --reference: %w", ErrNoGraphSource)
	case reference == "":
		return nil, fmt.Errorf("--reference is required with --vcf: %w", ErrNoGraphSource)
	}
	return ConstructFromVariants{VCF: paths.RawPath(vcf), Reference: paths.RawPath(reference)}, nil
}
