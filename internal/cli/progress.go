package cli

import (
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/docshadow/docshadow/internal/generator"
)

// CLIProgressReporter implements progress reporting with a progress bar.
type CLIProgressReporter struct {
	verbose   bool
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(verbose bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		verbose:   verbose,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnPhase(phase generator.Phase) {
	if !c.verbose {
		return
	}
	log.Printf("Phase: %s", phase)
}

func (c *CLIProgressReporter) OnDiscoveryComplete(fileCount int) {
	c.fileBar = progressbar.NewOptions(fileCount,
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(path string, failed bool) {
	if failed {
		log.Printf("Warning: could not fully parse %s; error recorded in its artifact", path)
	}
	if c.fileBar != nil {
		_ = c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *generator.Stats) {
	if c.fileBar != nil {
		_ = c.fileBar.Finish()
	}
}
