package importer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yamdb/yamdb/domain/catalog"
)

// Sources maps each kind to the CSV file it is loaded from.
type Sources struct {
	paths map[catalog.Kind]string
}

// NewSources creates Sources from an explicit kind to path table.
func NewSources(paths map[catalog.Kind]string) Sources {
	copied := make(map[catalog.Kind]string, len(paths))
	for k, p := range paths {
		copied[k] = p
	}
	return Sources{paths: copied}
}

// Path returns the file bound to kind.
func (s Sources) Path(kind catalog.Kind) (string, bool) {
	p, ok := s.paths[kind]
	return p, ok
}

// Kinds returns the bound kinds in load order.
func (s Sources) Kinds() []catalog.Kind {
	var kinds []catalog.Kind
	for _, k := range catalog.AllKinds() {
		if _, ok := s.paths[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Len returns the number of bound kinds.
func (s Sources) Len() int { return len(s.paths) }

// Discover walks root recursively and returns every file with a .csv
// extension, compared case-insensitively. Subdirectories that cannot be
// read are skipped with a warning; an unreadable root is an error.
func Discover(ctx context.Context, root string, logger *slog.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				logger.WarnContext(ctx, "skipping unreadable directory",
					slog.String("path", path),
					slog.Any("error", err),
				)
				return fs.SkipDir
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover sources in %s: %w", root, err)
	}
	sort.Strings(files)

	logger.InfoContext(ctx, "files found", slog.Int("count", len(files)), slog.String("dir", root))
	return files, nil
}

// Bind matches each file's base name, the text before the first dot,
// against the known kinds. Unrecognized files are ignored. Two files
// binding to the same kind fail with ErrDuplicateSource.
func Bind(paths []string, logger *slog.Logger) (Sources, error) {
	bound := make(map[catalog.Kind]string)
	for _, path := range paths {
		name, _, _ := strings.Cut(filepath.Base(path), ".")
		kind, ok := catalog.ParseKind(name)
		if !ok {
			logger.Debug("ignoring unrecognized file", slog.String("path", path))
			continue
		}
		if existing, dup := bound[kind]; dup {
			return Sources{}, fmt.Errorf("%w: %s is provided by both %s and %s", ErrDuplicateSource, kind, existing, path)
		}
		bound[kind] = path
	}
	return Sources{paths: bound}, nil
}
