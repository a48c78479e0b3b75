package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docshadow/docshadow/internal/generator"
)

// Test Plan:
// - buildGenerator compiles the exclusion rules from the ignore file as it
//   is on disk at call time, so the watch loop's rebuild-per-trigger picks
//   up .docignore edits without a restart

func TestBuildGenerator_ReloadsIgnorePatterns(t *testing.T) {
	// Mutates the package-level quiet flag, so no t.Parallel().
	prevQuiet := quietFlag
	quietFlag = true
	defer func() { quietFlag = prevQuiet }()

	rootDir := t.TempDir()
	write := func(rel, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(rootDir, rel), []byte(content), 0644))
	}
	write("a.py", "A = 1\n")
	write("b.py", "B = 2\n")

	meta := generator.CommitMeta{
		Hash:      "0123456789abcdef0123456789abcdef01234567",
		ShortHash: "0123456",
		Date:      "2026-08-30T10:00:00Z",
		Message:   "initial",
		Author:    "Ada Lovelace <ada@example.com>",
	}

	gen, cfg, err := buildGenerator(rootDir)
	require.NoError(t, err)
	_, err = gen.Run(context.Background(), meta)
	require.NoError(t, err)

	out := filepath.Join(rootDir, cfg.OutputDir)
	assert.FileExists(t, filepath.Join(out, "a.py.json"))
	assert.FileExists(t, filepath.Join(out, "b.py.json"))

	// The ignore file changes between triggers; a rebuilt pipeline must
	// apply the new rules.
	write(cfg.IgnoreFile, "b.py\n")

	gen, _, err = buildGenerator(rootDir)
	require.NoError(t, err)
	stats, err := gen.Run(context.Background(), meta)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesProcessed)
	assert.Equal(t, 1, stats.ArtifactsPruned)
	assert.FileExists(t, filepath.Join(out, "a.py.json"))
	assert.NoFileExists(t, filepath.Join(out, "b.py.json"))
}
