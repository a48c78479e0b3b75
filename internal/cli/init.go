package cli

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/docshadow/docshadow/internal/config"
	"github.com/docshadow/docshadow/internal/git"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docshadow in the current git repository",
	Long: `Init writes a default docshadow.config.json, seeds .docignore from
.gitignore (or a built-in default), and installs a post-commit hook that
regenerates documentation after every commit.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	gitOps := git.NewOperations()
	if !gitOps.IsRepo(rootDir) {
		return errors.New("not in a git repository; run 'git init' first")
	}

	cfg, err := config.WriteDefault(rootDir)
	if err != nil {
		return err
	}
	log.Printf("Wrote %s", config.FileName)

	seeded, err := config.SeedIgnoreFile(rootDir, cfg.IgnoreFile)
	if err != nil {
		return err
	}
	if seeded != "" {
		log.Printf("Seeded %s", cfg.IgnoreFile)
	}

	if cfg.Hooks.PostCommit {
		if err := git.InstallPostCommitHook(rootDir); err != nil {
			return err
		}
		log.Println("Installed post-commit hook")
	}

	log.Println("docshadow initialized. Run 'docshadow generate' or just commit.")
	return nil
}
