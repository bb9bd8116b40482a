package viewgen

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-viewgen/pkg/chunk"
)

// LoadChunks decodes the chunk file at path.
func LoadChunks(path string) (chunk.List, error) {
	return chunk.LoadFile(path)
}

// LoadResources decodes every chunk file under dir matching patterns. See
// LoadResourcesFS for ordering.
func LoadResources(dir string, patterns ...string) ([]chunk.List, error) {
	return LoadResourcesFS(os.DirFS(dir), patterns...)
}

// LoadResourcesFS decodes every file in fsys matching the doublestar
// patterns. Patterns are applied in order and each pattern's matches in
// lexical order; a file matched twice is loaded once. The order is the
// resource order the compiler sees.
func LoadResourcesFS(fsys fs.FS, patterns ...string) ([]chunk.List, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("viewgen: invalid resource pattern %q", pattern)
		}
	}

	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("viewgen: walk resources: %w", err)
	}

	var lists []chunk.List
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		for _, name := range files {
			if seen[name] {
				continue
			}
			matched, err := doublestar.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("viewgen: match %q: %w", pattern, err)
			}
			if !matched {
				continue
			}
			seen[name] = true
			list, err := chunk.LoadFS(fsys, name)
			if err != nil {
				return nil, fmt.Errorf("viewgen: resource %s: %w", name, err)
			}
			lists = append(lists, list)
		}
	}
	return lists, nil
}
