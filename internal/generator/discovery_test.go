package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docshadow/docshadow/internal/ignore"
)

// Test Plan for DiscoverFiles:
// - Only .py files are candidates
// - Paths are repo-relative, forward-slash, sorted
// - Hidden directories are never entered
// - Excluded directories are pruned
// - A later negation re-includes a file inside an excluded directory
// - Symlinked files are skipped

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func compileRules(t *testing.T, patterns ...string) *ignore.RuleSet {
	t.Helper()
	rules, err := ignore.Compile(patterns)
	require.NoError(t, err)
	return rules
}

func TestDiscoverFiles_SortedRelativePaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"zeta.py":     "",
		"a/beta.py":   "",
		"a/alpha.py":  "",
		"readme.md":   "",
		"b/notes.txt": "",
	})

	files, err := DiscoverFiles(root, compileRules(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"a/alpha.py", "a/beta.py", "zeta.py"}, files)
}

func TestDiscoverFiles_SkipsHiddenDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":              "",
		".git/hooks/x.py":     "",
		".venv/lib/site.py":   "",
		".docshadow/old.json": "",
	})

	files, err := DiscoverFiles(root, compileRules(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, files)
}

func TestDiscoverFiles_ExclusionAndNegation(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":        "",
		"tests/drop.py": "",
		"tests/keep.py": "",
		"build/gen.py":  "",
	})

	rules := compileRules(t, "build/", "tests/", "!tests/keep.py")
	files, err := DiscoverFiles(root, rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py", "tests/keep.py"}, files)
}

func TestDiscoverFiles_SkipsSymlinks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"real.py": ""})
	require.NoError(t, os.Symlink(
		filepath.Join(root, "real.py"),
		filepath.Join(root, "link.py"),
	))

	files, err := DiscoverFiles(root, compileRules(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"real.py"}, files)
}

func TestDiscoverFiles_FreshEachRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": ""})

	rules := compileRules(t)
	first, err := DiscoverFiles(root, rules)
	require.NoError(t, err)
	require.Equal(t, []string{"a.py"}, first)

	writeTree(t, root, map[string]string{"b.py": ""})
	second, err := DiscoverFiles(root, rules)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "b.py"}, second)
}
