// Package generator implements the documentation extraction pipeline: walk
// the source tree, parse each included file into a Module, mirror the
// results into a JSON artifact tree, and write the per-commit and
// whole-project aggregate indices.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docshadow/docshadow/internal/config"
	"github.com/docshadow/docshadow/internal/extractor"
	"github.com/docshadow/docshadow/internal/ignore"
)

// Config carries the resolved settings for one Generator. Everything is
// threaded explicitly; the pipeline keeps no process-wide state, which is
// what lets extraction run in parallel.
type Config struct {
	// RootDir is the project root the walk starts from.
	RootDir string

	// OutputDir is the artifact tree root. Relative paths are resolved
	// against RootDir.
	OutputDir string

	// Project is the name recorded in the project index.
	Project string

	// ExcludePatterns are ordered ignore-file pattern lines.
	ExcludePatterns []string

	// Workers bounds the extraction pool. Defaults to GOMAXPROCS.
	Workers int

	// Progress receives run callbacks. Defaults to a no-op reporter.
	Progress ProgressReporter
}

// CommitMeta is the commit metadata supplied by the caller. The core never
// talks to version control itself.
type CommitMeta struct {
	Hash      string
	ShortHash string
	Date      string // ISO-8601 UTC
	Message   string
	Author    string // "name <email>"
}

// Generator runs full documentation regenerations. One instance can be
// reused across runs; each Run is from scratch.
type Generator struct {
	rootDir   string
	outputDir string
	project   string
	rules     *ignore.RuleSet
	workers   int
	python    *extractor.Python
	progress  ProgressReporter
}

// New validates cfg and compiles the exclusion rules. A malformed pattern
// surfaces here as a ConfigError, before any file is touched.
func New(cfg Config) (*Generator, error) {
	if cfg.RootDir == "" {
		return nil, config.NewError("root directory is required", nil)
	}
	if cfg.OutputDir == "" {
		return nil, config.NewError("output directory is required", nil)
	}

	rules, err := ignore.Compile(cfg.ExcludePatterns)
	if err != nil {
		return nil, config.NewError("invalid exclusion pattern", err)
	}

	outputDir := cfg.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(cfg.RootDir, outputDir)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	progress := cfg.Progress
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	project := cfg.Project
	if project == "" {
		project = filepath.Base(cfg.RootDir)
	}

	return &Generator{
		rootDir:   cfg.RootDir,
		outputDir: outputDir,
		project:   project,
		rules:     rules,
		workers:   workers,
		python:    extractor.NewPython(),
		progress:  progress,
	}, nil
}

// Run executes one full regeneration for the given commit. Per-file parse
// and read failures are recorded in their artifacts and do not fail the
// run; errors on the output root itself do.
//
// Two runs racing the same output root for different commits are not
// guaranteed consistent; the atomic writes keep every individual file
// well-formed, but the artifact set may interleave. Serializing hook
// invocations is the caller's concern.
func (g *Generator) Run(ctx context.Context, meta CommitMeta) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}
	g.progress.OnPhase(PhaseStart)

	writer, err := NewArtifactWriter(g.outputDir)
	if err != nil {
		return nil, g.fail(err)
	}

	g.progress.OnPhase(PhaseFiltering)
	files, err := DiscoverFiles(g.rootDir, g.rules)
	if err != nil {
		return nil, g.fail(fmt.Errorf("failed to walk source tree: %w", err))
	}
	g.progress.OnDiscoveryComplete(len(files))

	g.progress.OnPhase(PhaseExtracting)
	modules, err := g.extractAll(ctx, files)
	if err != nil {
		return nil, g.fail(err)
	}

	g.progress.OnPhase(PhaseWritingArtifacts)
	if err := g.writeAll(ctx, writer, modules); err != nil {
		return nil, g.fail(err)
	}

	g.progress.OnPhase(PhasePruningOrphans)
	included := make(map[string]bool, len(files))
	for _, f := range files {
		included[f] = true
	}
	pruned, err := writer.PruneOrphans(included)
	if err != nil {
		return nil, g.fail(err)
	}
	stats.ArtifactsPruned = len(pruned)

	g.progress.OnPhase(PhaseWritingIndices)
	artifacts := make([]string, len(files))
	for i, f := range files {
		artifacts[i] = ArtifactPath(f)
	}
	record := &CommitRecord{
		Commit:      meta.Hash,
		ShortCommit: meta.ShortHash,
		Date:        meta.Date,
		Message:     meta.Message,
		Author:      meta.Author,
		Files:       artifacts,
	}
	if err := writer.WriteCommitIndex(record); err != nil {
		return nil, g.fail(err)
	}

	index := &ProjectIndex{
		Project: g.project,
		// The commit timestamp, not wall clock: repeated runs on an
		// unchanged tree must be byte-identical.
		GeneratedAt: meta.Date,
		Commit:      meta.Hash,
		Structure:   BuildStructure(files),
	}
	if err := writer.WriteProjectIndex(index); err != nil {
		return nil, g.fail(err)
	}

	stats.FilesProcessed = len(files)
	for _, m := range modules {
		if m.Error != nil {
			stats.FilesErrored++
		} else {
			stats.FilesSucceeded++
		}
	}
	stats.Duration = time.Since(start)

	g.progress.OnPhase(PhaseDone)
	g.progress.OnComplete(stats)
	return stats, nil
}

func (g *Generator) fail(err error) error {
	g.progress.OnPhase(PhaseFailed)
	return err
}

// extractAll parses every file on a bounded worker pool. Each worker owns
// its result slot, so collection needs no locking and the slice preserves
// the deterministic discovery order regardless of completion order.
func (g *Generator) extractAll(ctx context.Context, files []string) ([]*extractor.Module, error) {
	modules := make([]*extractor.Module, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, relPath := range files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			source, err := os.ReadFile(filepath.Join(g.rootDir, filepath.FromSlash(relPath)))
			if err != nil {
				modules[i] = extractor.FailedModule(relPath, extractor.KindIOError, err.Error())
				return nil
			}
			modules[i] = g.python.Extract(relPath, source)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return modules, nil
}

// writeAll writes every artifact; writes are independent per path and run
// on the same pool bound. Any write failure is fatal before indices are
// touched, so a broken output root cannot produce misleading aggregates.
func (g *Generator) writeAll(ctx context.Context, writer *ArtifactWriter, modules []*extractor.Module) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for _, m := range modules {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			if _, err := writer.WriteModule(m); err != nil {
				return err
			}
			g.progress.OnFileProcessed(m.Path, m.Error != nil)
			return nil
		})
	}

	return eg.Wait()
}
