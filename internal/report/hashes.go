package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/gramtools/gramtools/internal/errs"
	"github.com/gramtools/gramtools/internal/paths"
)

const maxConcurrentHashes = 4

// HashPaths returns the SHA-256 of every named path that is a regular file,
// in the order given. Directories and missing paths map to null.
func HashPaths(ctx context.Context, named []paths.NamedPath) (Document, error) {
	digests := make([]any, len(named))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentHashes)
	for i, np := range named {
		i, np := i, np
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			digest, err := hashFile(np.Path)
			if err != nil {
				return err
			}
			if digest != "" {
				digests[i] = digest
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := make(Document, 0, len(named))
	for i, np := range named {
		doc = append(doc, Field{Key: np.Name, Value: digests[i]})
	}
	return doc, nil
}

// hashFile returns "" for paths that are not regular files.
func hashFile(path paths.AbsolutePath) (string, error) {
	info, err := os.Stat(path.String())
	if err != nil || !info.Mode().IsRegular() {
		return "", nil
	}

	f, err := os.Open(path.String())
	if err != nil {
		return "", errs.IO(err, "open %s for hashing", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errs.IO(err, "hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
