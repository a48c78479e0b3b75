package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docshadow/docshadow/internal/extractor"
)

// artifactSuffix is appended to a source-relative path to form its artifact
// path: module/foo.py -> module/foo.py.json.
const artifactSuffix = ".json"

// Index file names at the output root. They are never treated as artifacts
// during orphan pruning.
const (
	CommitIndexName  = "index.json"
	ProjectIndexName = "docshadow.json"
)

// ArtifactPath maps a source-relative path to its artifact-relative path.
func ArtifactPath(sourcePath string) string {
	return sourcePath + artifactSuffix
}

// ArtifactWriter writes the mirrored artifact tree. Writes are atomic:
// content is staged to a temp file in the destination directory and then
// renamed into place, so a crash or a racing reader never observes a
// half-written artifact.
type ArtifactWriter struct {
	outputRoot string
}

// NewArtifactWriter creates the output root if needed. Failure here is
// fatal for the run: nothing can be written.
func NewArtifactWriter(outputRoot string) (*ArtifactWriter, error) {
	if err := os.MkdirAll(outputRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output root: %w", err)
	}
	return &ArtifactWriter{outputRoot: outputRoot}, nil
}

// WriteModule serializes a Module to its mirrored artifact path and returns
// the artifact-relative path.
func (w *ArtifactWriter) WriteModule(m *extractor.Module) (string, error) {
	relPath := ArtifactPath(m.Path)
	if err := w.writeJSON(relPath, m); err != nil {
		return "", err
	}
	return relPath, nil
}

// WriteIndex serializes one of the aggregate indices at the output root.
func (w *ArtifactWriter) WriteIndex(name string, v any) error {
	return w.writeJSON(name, v)
}

// writeJSON marshals v pretty-printed and moves it into place atomically.
// Marshaling before writing means a failed encode leaves nothing behind.
func (w *ArtifactWriter) writeJSON(relPath string, v any) error {
	data, err := marshalStable(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", relPath, err)
	}

	finalPath := filepath.Join(w.outputRoot, filepath.FromSlash(relPath))
	dir := filepath.Dir(finalPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", relPath, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", relPath, err)
	}
	return nil
}

// marshalStable renders v as pretty-printed UTF-8 JSON without HTML
// escaping, trailing newline included. Struct field order is fixed by the
// schema types and map keys marshal sorted, so identical input is
// byte-identical output.
func marshalStable(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PruneOrphans removes artifacts whose source file is no longer part of the
// current run (deleted or newly excluded), then clears out directories left
// empty. Returns the artifact-relative paths removed.
func (w *ArtifactWriter) PruneOrphans(included map[string]bool) ([]string, error) {
	var pruned []string
	var dirs []string

	err := filepath.WalkDir(w.outputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(w.outputRoot, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if relPath == CommitIndexName || relPath == ProjectIndexName {
			return nil
		}
		if !strings.HasSuffix(relPath, artifactSuffix) {
			return nil
		}

		source := strings.TrimSuffix(relPath, artifactSuffix)
		if included[source] {
			return nil
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to prune orphan %s: %w", relPath, err)
		}
		pruned = append(pruned, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deepest first so emptied parents collapse too. Remove fails on
	// non-empty directories, which is exactly what we want.
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	for _, dir := range dirs {
		_ = os.Remove(dir)
	}

	return pruned, nil
}
