// Package git retrieves commit metadata and manages the post-commit hook.
// It shells out to the git CLI; the extraction core never imports this
// package and receives commit metadata as a plain value.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CommitInfo is the metadata for one commit.
type CommitInfo struct {
	Hash      string
	ShortHash string
	Date      string // ISO-8601 UTC committer date
	Message   string
	Author    string // "name <email>"
}

// Operations defines the git operations the CLI needs.
// This allows mocking git commands in tests.
type Operations interface {
	// IsRepo reports whether projectPath is inside a git worktree.
	IsRepo(projectPath string) bool

	// GetCommitInfo resolves rev ("" means HEAD) to commit metadata.
	GetCommitInfo(projectPath, rev string) (*CommitInfo, error)

	// GetCurrentBranch returns the current branch name, or
	// "detached-{short-hash}" for a detached HEAD.
	GetCurrentBranch(projectPath string) string
}

// gitOps is the real implementation using exec.Command.
type gitOps struct{}

// NewOperations returns the default git operations implementation.
func NewOperations() Operations {
	return &gitOps{}
}

func (g *gitOps) IsRepo(projectPath string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = projectPath
	output, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(output)) == "true"
}

func (g *gitOps) GetCommitInfo(projectPath, rev string) (*CommitInfo, error) {
	if rev == "" {
		rev = "HEAD"
	}

	// NUL-separated fields so a multi-line commit message survives intact.
	cmd := exec.Command("git", "show", "-s", "--format=%H%x00%h%x00%cI%x00%an <%ae>%x00%B", rev)
	cmd.Dir = projectPath
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("commit %s not found: %w", rev, err)
	}

	return parseCommitOutput(string(output))
}

// parseCommitOutput decodes the NUL-separated git show format above.
func parseCommitOutput(output string) (*CommitInfo, error) {
	fields := strings.Split(strings.TrimRight(output, "\n"), "\x00")
	if len(fields) != 5 {
		return nil, fmt.Errorf("unexpected git show output: %q", output)
	}

	date := fields[2]
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		date = t.UTC().Format(time.RFC3339)
	}

	return &CommitInfo{
		Hash:      fields[0],
		ShortHash: fields[1],
		Date:      date,
		Author:    fields[3],
		Message:   strings.TrimSpace(fields[4]),
	}, nil
}

func (g *gitOps) GetCurrentBranch(projectPath string) string {
	cmd := exec.Command("git", "branch", "--show-current")
	cmd.Dir = projectPath
	output, err := cmd.Output()
	if err != nil || len(strings.TrimSpace(string(output))) == 0 {
		// Might be detached HEAD
		cmd = exec.Command("git", "rev-parse", "--short", "HEAD")
		cmd.Dir = projectPath
		output, err = cmd.Output()
		if err != nil {
			return "unknown"
		}
		return "detached-" + strings.TrimSpace(string(output))
	}
	return strings.TrimSpace(string(output))
}

// hookDir returns the hooks directory for projectPath, honoring worktrees
// via git rev-parse when possible.
func hookDir(projectPath string) string {
	cmd := exec.Command("git", "rev-parse", "--git-path", "hooks")
	cmd.Dir = projectPath
	output, err := cmd.Output()
	if err != nil {
		return filepath.Join(projectPath, ".git", "hooks")
	}
	dir := strings.TrimSpace(string(output))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectPath, dir)
	}
	return dir
}

// hookMarker identifies hooks installed by docshadow.
const hookMarker = "# installed by docshadow"

const hookScript = `#!/bin/sh
` + hookMarker + `
docshadow generate --quiet
`

// InstallPostCommitHook writes the post-commit hook. An existing hook not
// installed by docshadow is left alone and reported as an error, never
// overwritten.
func InstallPostCommitHook(projectPath string) error {
	dir := hookDir(projectPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	path := filepath.Join(dir, "post-commit")
	if data, err := os.ReadFile(path); err == nil {
		if !strings.Contains(string(data), hookMarker) {
			return fmt.Errorf("a foreign post-commit hook already exists at %s", path)
		}
	}

	if err := os.WriteFile(path, []byte(hookScript), 0755); err != nil {
		return fmt.Errorf("failed to write post-commit hook: %w", err)
	}
	return nil
}

// PostCommitHookInstalled reports whether the docshadow post-commit hook
// is in place.
func PostCommitHookInstalled(projectPath string) bool {
	data, err := os.ReadFile(filepath.Join(hookDir(projectPath), "post-commit"))
	return err == nil && strings.Contains(string(data), hookMarker)
}
