package generator

// ProgressReporter provides callbacks for reporting run progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnPhase is called on every phase transition.
	OnPhase(phase Phase)

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(fileCount int)

	// OnFileProcessed is called after each file is extracted and written.
	OnFileProcessed(path string, failed bool)

	// OnComplete is called when a run reaches DONE.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing. Used when
// progress reporting is disabled (e.g., --quiet flag or hook invocation).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnPhase(phase Phase)                      {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(fileCount int)        {}
func (n *NoOpProgressReporter) OnFileProcessed(path string, failed bool) {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)                  {}
