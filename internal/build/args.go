package build

import (
	"fmt"

	"github.com/gramtools/gramtools/internal/paths"
)

// Default values of the build parameters.
const (
	DefaultKmerSize       = 5
	DefaultKmerRegionSize = 150
	DefaultMaxReadLength  = 150
	DefaultMaxThreads     = 1
)

// Args are the user-supplied parameters of one build.
type Args struct {
	GramDirectory paths.RawPath
	Mode          Mode

	KmerSize      int
	MaxReadLength int
	MaxThreads    int
	Debug         bool

	// KmerRegionSize and AllKmers are accepted but not acted on.
	KmerRegionSize int
	AllKmers       bool
}

// Validate checks the parameters that can be checked without touching disk.
func (a Args) Validate() error {
	if a.Mode == nil {
		return ErrNoGraphSource
	}
	if a.KmerSize <= 0 {
		return fmt.Errorf("kmer size must be positive, got %d", a.KmerSize)
	}
	if a.MaxReadLength <= 0 {
		return fmt.Errorf("max read length must be positive, got %d", a.MaxReadLength)
	}
	if a.MaxThreads <= 0 {
		return fmt.Errorf("max threads must be positive, got %d", a.MaxThreads)
	}
	return nil
}
