package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - parseCommitOutput decodes the NUL-separated format, keeps multi-line
//   messages intact, and normalizes committer dates to UTC
// - Hook install creates the hooks directory, is idempotent, and refuses
//   to overwrite a hook it did not write

func TestParseCommitOutput(t *testing.T) {
	t.Parallel()

	output := "0123456789abcdef0123456789abcdef01234567\x000123456\x00" +
		"2026-08-30T12:00:00+02:00\x00Ada Lovelace <ada@example.com>\x00" +
		"add user model\n\nwith a longer body\n"

	info, err := parseCommitOutput(output)
	require.NoError(t, err)

	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", info.Hash)
	assert.Equal(t, "0123456", info.ShortHash)
	assert.Equal(t, "2026-08-30T10:00:00Z", info.Date)
	assert.Equal(t, "Ada Lovelace <ada@example.com>", info.Author)
	assert.Equal(t, "add user model\n\nwith a longer body", info.Message)
}

func TestParseCommitOutput_Malformed(t *testing.T) {
	t.Parallel()

	_, err := parseCommitOutput("just one field\n")
	assert.Error(t, err)
}

func TestInstallPostCommitHook(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	assert.False(t, PostCommitHookInstalled(root))

	require.NoError(t, InstallPostCommitHook(root))

	path := filepath.Join(root, ".git", "hooks", "post-commit")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), hookMarker)
	assert.Contains(t, string(data), "docshadow generate")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	assert.True(t, PostCommitHookInstalled(root))

	// Reinstalling over our own hook is fine.
	require.NoError(t, InstallPostCommitHook(root))
}

func TestInstallPostCommitHook_RefusesForeignHook(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, ".git", "hooks")
	require.NoError(t, os.MkdirAll(dir, 0755))
	foreign := "#!/bin/sh\necho somebody else\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post-commit"), []byte(foreign), 0755))

	err := InstallPostCommitHook(root)
	require.Error(t, err)

	data, readErr := os.ReadFile(filepath.Join(dir, "post-commit"))
	require.NoError(t, readErr)
	assert.Equal(t, foreign, string(data), "the foreign hook must be left untouched")

	assert.False(t, PostCommitHookInstalled(root))
}
