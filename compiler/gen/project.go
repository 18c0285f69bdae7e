package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Project is one generated backend laid out as a file map. Keys are
// slash-separated paths relative to the project root; keys are unique by
// construction, one artifact per emitter kind per class plus the fixed
// scaffolding paths.
type Project map[string][]byte

// Paths returns the file paths in lexical order.
func (p Project) Paths() []string {
	paths := make([]string, 0, len(p))
	for path := range p {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Size returns the total content size in bytes.
func (p Project) Size() int64 {
	var n int64
	for _, data := range p {
		n += int64(len(data))
	}
	return n
}

// WriteTo materializes the project under dir, creating directories as
// needed. Existing files are overwritten.
func (p Project) WriteTo(dir string) error {
	for _, path := range p.Paths() {
		target := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(target, p[path], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
