package generator

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docshadow/docshadow/internal/ignore"
)

// sourceExtension is the only file extension documented. The extractor is
// Python-only; filtering on extension first keeps the matcher off the hot
// path for everything else.
const sourceExtension = ".py"

// DiscoverFiles walks rootDir and returns the repo-relative, forward-slash
// paths of source files that survive the exclusion rules, sorted
// lexicographically. Symlinks are never followed. Excluded directories are
// pruned whole unless a later negation could re-include a path beneath
// them, in which case entries are evaluated individually.
func DiscoverFiles(rootDir string, rules *ignore.RuleSet) ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			// Hidden directories (.git, the output root, caches) are
			// never documented.
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if rules.Match(relPath, true) && rules.Prunable(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if filepath.Ext(d.Name()) != sourceExtension {
			return nil
		}
		if rules.Match(relPath, false) {
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
