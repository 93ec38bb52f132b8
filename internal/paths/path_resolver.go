package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RawPath is a user-provided file path from CLI flags.
type RawPath string

// AbsolutePath is a normalized absolute filesystem path.
type AbsolutePath string

func (p AbsolutePath) String() string {
	return string(p)
}

// Join appends path elements to p.
func (p AbsolutePath) Join(elem ...string) AbsolutePath {
	return AbsolutePath(filepath.Join(append([]string{string(p)}, elem...)...))
}

// Resolver resolves raw user paths relative to a configured base directory.
type Resolver struct {
	baseDir AbsolutePath
}

// NewResolver returns a Resolver rooted at baseDir, or at the current
// working directory when baseDir is empty.
func NewResolver(baseDir string) (Resolver, error) {
	if baseDir == "" {
		baseDir = "."
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return Resolver{}, fmt.Errorf("failed to resolve base path: %w", err)
	}

	return Resolver{baseDir: AbsolutePath(filepath.Clean(absBaseDir))}, nil
}

// BaseDir returns the directory relative paths are resolved against.
func (r Resolver) BaseDir() AbsolutePath {
	return r.baseDir
}

func (r Resolver) Resolve(path RawPath) (AbsolutePath, error) {
	pathStr := strings.TrimSpace(string(path))
	if pathStr == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if filepath.IsAbs(pathStr) {
		return AbsolutePath(filepath.Clean(pathStr)), nil
	}
	return AbsolutePath(filepath.Clean(filepath.Join(r.baseDir.String(), pathStr))), nil
}

// SamePath reports whether a and b name the same location once symlinks
// are followed.
func SamePath(a, b AbsolutePath) bool {
	return resolveSymlinks(filepath.Clean(a.String())) == resolveSymlinks(filepath.Clean(b.String()))
}

func resolveSymlinks(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
