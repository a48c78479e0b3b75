package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docshadow/docshadow/internal/config"
	"github.com/docshadow/docshadow/internal/generator"
	"github.com/docshadow/docshadow/internal/git"
	"github.com/docshadow/docshadow/internal/ignore"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show docshadow status and missing documentation",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	if !config.Exists(rootDir) {
		fmt.Println("docshadow is not initialized; run 'docshadow init' first.")
		return nil
	}

	cfg, err := config.LoadFromDir(rootDir)
	if err != nil {
		return err
	}

	fmt.Println("Configuration:")
	fmt.Printf("  Project:     %s\n", cfg.Project)
	fmt.Printf("  Output dir:  %s\n", cfg.OutputDir)
	fmt.Printf("  Ignore file: %s\n", cfg.IgnoreFile)

	gitOps := git.NewOperations()
	if !gitOps.IsRepo(rootDir) {
		fmt.Println("\nNot in a git repository.")
		return nil
	}

	fmt.Println("\nRepository:")
	fmt.Printf("  Branch: %s\n", gitOps.GetCurrentBranch(rootDir))
	if info, err := gitOps.GetCommitInfo(rootDir, ""); err == nil {
		fmt.Printf("  HEAD:   %s %s\n", info.ShortHash, firstLine(info.Message))
	}

	patterns, err := cfg.LoadIgnorePatterns(rootDir)
	if err != nil {
		return err
	}
	rules, err := ignore.Compile(patterns)
	if err != nil {
		return err
	}
	files, err := generator.DiscoverFiles(rootDir, rules)
	if err != nil {
		return err
	}
	fmt.Printf("\nFiles to document: %d\n", len(files))
	for i, f := range files {
		if i == 10 {
			fmt.Printf("  ... and %d more\n", len(files)-10)
			break
		}
		fmt.Printf("  %s\n", f)
	}

	fmt.Println("\nDocumentation:")
	indexPath := filepath.Join(rootDir, cfg.OutputDir, generator.CommitIndexName)
	data, err := os.ReadFile(indexPath)
	if err != nil {
		fmt.Println("  No documentation generated yet; run 'docshadow generate'.")
	} else {
		var record generator.CommitRecord
		if err := json.Unmarshal(data, &record); err != nil {
			fmt.Printf("  Could not read %s: %v\n", generator.CommitIndexName, err)
		} else {
			fmt.Printf("  Last documented commit: %s (%s)\n", record.ShortCommit, record.Date)
			fmt.Printf("  Documented files:       %d\n", len(record.Files))
		}
	}

	fmt.Println("\nPost-commit hook:")
	if git.PostCommitHookInstalled(rootDir) {
		fmt.Println("  Installed")
	} else {
		fmt.Println("  Not installed; run 'docshadow init'.")
	}

	return nil
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
