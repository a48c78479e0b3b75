package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docshadow/docshadow/internal/config"
	"github.com/docshadow/docshadow/internal/generator"
	"github.com/docshadow/docshadow/internal/git"
)

var (
	commitFlag string
	quietFlag  bool
	watchFlag  bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate documentation for the current or a specific commit",
	Long: `Generate walks the project, parses every included Python file, and
writes the mirrored JSON artifact tree plus the aggregate indices. Every run
is a full, from-scratch regeneration; re-running on an unchanged tree
produces byte-identical output.

Examples:
  # Document the current HEAD
  docshadow generate

  # Document a specific commit's metadata (the working tree is still what
  # gets parsed)
  docshadow generate --commit 3f2a91c

  # Regenerate automatically while editing
  docshadow generate --watch
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&commitFlag, "commit", "c", "", "commit hash to record in the indices (default HEAD)")
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "watch for file changes and regenerate")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling generation...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	gitOps := git.NewOperations()
	if !gitOps.IsRepo(rootDir) {
		return errors.New("not in a git repository; run 'git init' first")
	}

	gen, cfg, err := buildGenerator(rootDir)
	if err != nil {
		return err
	}

	run := func(ctx context.Context, gen *generator.Generator) error {
		info, err := gitOps.GetCommitInfo(rootDir, commitFlag)
		if err != nil {
			return err
		}
		if !quietFlag {
			log.Printf("Generating documentation for commit %s...", info.ShortHash)
		}

		stats, err := gen.Run(ctx, generator.CommitMeta{
			Hash:      info.Hash,
			ShortHash: info.ShortHash,
			Date:      info.Date,
			Message:   info.Message,
			Author:    info.Author,
		})
		if err != nil {
			return err
		}

		if !quietFlag {
			log.Printf("Documented %d files (%d ok, %d with errors, %d orphans pruned) in %v",
				stats.FilesProcessed, stats.FilesSucceeded, stats.FilesErrored,
				stats.ArtifactsPruned, stats.Duration.Round(time.Millisecond))
		}
		return nil
	}

	if err := run(ctx, gen); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}

	// The watcher treats .docignore edits as relevant, so each trigger
	// rebuilds the pipeline to pick up the current exclusion rules.
	watcher, err := generator.NewWatcher(rootDir, cfg.OutputDir, func(ctx context.Context) {
		gen, _, err := buildGenerator(rootDir)
		if err != nil {
			log.Printf("Regeneration failed: %v", err)
			return
		}
		if err := run(ctx, gen); err != nil {
			log.Printf("Regeneration failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	watcher.Start(ctx)
	if !quietFlag {
		log.Println("Watching for changes. Press Ctrl+C to stop.")
	}
	<-ctx.Done()
	return nil
}

// buildGenerator loads configuration and exclusion patterns and constructs
// the pipeline. Configuration problems surface here, before any extraction.
func buildGenerator(rootDir string) (*generator.Generator, *config.Config, error) {
	cfg, err := config.LoadFromDir(rootDir)
	if err != nil {
		return nil, nil, err
	}

	patterns, err := cfg.LoadIgnorePatterns(rootDir)
	if err != nil {
		return nil, nil, err
	}

	var progress generator.ProgressReporter
	if quietFlag {
		progress = &generator.NoOpProgressReporter{}
	} else {
		progress = NewCLIProgressReporter(verbose)
	}

	gen, err := generator.New(generator.Config{
		RootDir:         rootDir,
		OutputDir:       cfg.OutputDir,
		Project:         cfg.Project,
		ExcludePatterns: patterns,
		Workers:         cfg.Workers,
		Progress:        progress,
	})
	if err != nil {
		return nil, nil, err
	}
	return gen, cfg, nil
}
