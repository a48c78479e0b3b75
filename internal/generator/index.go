package generator

// WriteCommitIndex fully overwrites index.json with the per-commit record.
func (w *ArtifactWriter) WriteCommitIndex(rec *CommitRecord) error {
	if rec.Files == nil {
		rec.Files = []string{}
	}
	return w.WriteIndex(CommitIndexName, rec)
}

// WriteProjectIndex fully overwrites docshadow.json. The structure is this
// run's output in its entirety, never merged with a previous index, so
// stale branches cannot survive deletions or renames.
func (w *ArtifactWriter) WriteProjectIndex(idx *ProjectIndex) error {
	if idx.Structure == nil {
		idx.Structure = Structure{}
	}
	return w.WriteIndex(ProjectIndexName, idx)
}
