package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramtools/gramtools/internal/paths"
)

func TestHashPaths_FilesDirectoriesAndMissing(t *testing.T) {
	dir := t.TempDir()
	prg := filepath.Join(dir, "prg")
	require.NoError(t, os.WriteFile(prg, []byte("test"), 0o644))

	named := []paths.NamedPath{
		{Name: "project", Path: paths.AbsolutePath(dir)},
		{Name: "prg", Path: paths.AbsolutePath(prg)},
		{Name: "vcf", Path: paths.AbsolutePath(filepath.Join(dir, "vcf"))},
	}

	doc, err := HashPaths(context.Background(), named)

	require.NoError(t, err)
	assert.Equal(t, Document{
		{Key: "project", Value: nil},
		{Key: "prg", Value: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"},
		{Key: "vcf", Value: nil},
	}, doc)
}

func TestHashPaths_StableAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	var named []paths.NamedPath
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("content-"+name), 0o644))
		named = append(named, paths.NamedPath{Name: name, Path: paths.AbsolutePath(p)})
	}

	first, err := HashPaths(context.Background(), named)
	require.NoError(t, err)
	second, err := HashPaths(context.Background(), named)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, first.Keys())
}

func TestHashPaths_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := HashPaths(ctx, []paths.NamedPath{{Name: "prg", Path: paths.AbsolutePath(t.TempDir())}})
	require.Error(t, err)
}
