package generator

import (
	"strings"
	"time"
)

// Phase identifies where a run is in its lifecycle. Each run moves through
// the phases in order and ends in PhaseDone or PhaseFailed.
type Phase string

const (
	PhaseStart            Phase = "START"
	PhaseFiltering        Phase = "FILTERING"
	PhaseExtracting       Phase = "EXTRACTING"
	PhaseWritingArtifacts Phase = "WRITING_ARTIFACTS"
	PhasePruningOrphans   Phase = "PRUNING_ORPHANS"
	PhaseWritingIndices   Phase = "WRITING_INDICES"
	PhaseDone             Phase = "DONE"
	PhaseFailed           Phase = "FAILED"
)

// CommitRecord ties one generated artifact set to one commit. It is the
// schema of index.json; field order is part of the output contract.
type CommitRecord struct {
	Commit      string   `json:"commit"`
	ShortCommit string   `json:"short_commit"`
	Date        string   `json:"date"`
	Message     string   `json:"message"`
	Author      string   `json:"author"`
	Files       []string `json:"files"`
}

// ProjectIndex is the schema of docshadow.json: a whole-project mapping
// from source tree layout to artifact paths, fully rebuilt every run.
type ProjectIndex struct {
	Project     string    `json:"project"`
	GeneratedAt string    `json:"generated_at"`
	Commit      string    `json:"commit"`
	Structure   Structure `json:"structure"`
}

// Structure is a nested mapping keyed by path segment. Interior values are
// further Structure maps; leaves are artifact-relative paths. Map keys are
// marshaled sorted, which keeps the index byte-stable across runs.
type Structure map[string]any

// BuildStructure organizes source-relative paths into a nested Structure
// whose leaves point at the corresponding artifact paths.
func BuildStructure(sourcePaths []string) Structure {
	root := Structure{}

	for _, src := range sourcePaths {
		parts := splitPath(src)
		current := root
		for _, dir := range parts[:len(parts)-1] {
			next, ok := current[dir].(Structure)
			if !ok {
				next = Structure{}
				current[dir] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = ArtifactPath(src)
	}

	return root
}

func splitPath(p string) []string {
	return strings.Split(p, "/")
}

// Stats summarizes one run.
type Stats struct {
	FilesProcessed  int
	FilesSucceeded  int
	FilesErrored    int
	ArtifactsPruned int
	Duration        time.Duration
}
