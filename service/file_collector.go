package service

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/atena-tools/atena/internal/constants"
)

// FileCollector enumerates analyzable files under a directory.
//
// Hidden directories, the built-in denylist (dependency caches, build
// output), and user-supplied gitignore-style patterns are skipped while
// walking, bounding cost on large trees.
type FileCollector struct {
	denylist map[string]bool
	matcher  *ignore.GitIgnore
}

// NewFileCollector creates a collector with the built-in denylist and
// the given additional exclude patterns (gitignore syntax)
func NewFileCollector(excludePatterns []string) *FileCollector {
	denylist := make(map[string]bool, len(constants.DenylistedDirs))
	for _, dir := range constants.DenylistedDirs {
		denylist[dir] = true
	}

	var matcher *ignore.GitIgnore
	if len(excludePatterns) > 0 {
		matcher = ignore.CompileIgnoreLines(excludePatterns...)
	}

	return &FileCollector{
		denylist: denylist,
		matcher:  matcher,
	}
}

// Collect walks root and returns the paths whose extension satisfies
// supported, in lexicographic order. Unreadable subtrees are skipped,
// not fatal; only a failure to read root itself aborts the walk.
func (c *FileCollector) Collect(root string, supported func(ext string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// A single unreadable subtree never loses the rest of the walk
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || c.denylist[name] {
				return filepath.SkipDir
			}
			if c.matcher != nil && c.matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if c.matcher != nil && c.matcher.MatchesPath(rel) {
			return nil
		}
		if supported(filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
