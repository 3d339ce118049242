package anyctc

import (
	"log"
	"strings"
)

// DefaultReportStep is the number of sequences between
// progress reports when Progress.Step is 0.
const DefaultReportStep = 100

// Progress tracks running statistics and periodically
// logs the statistics of the most recent sequences.
type Progress struct {
	// Step is the number of sequences between reports.
	// If it is 0, DefaultReportStep is used.
	// If it is negative, no periodic reports are logged.
	Step int

	// Logger is used for reports.
	// If nil, log.Default() is used.
	Logger *log.Logger

	// Total holds the statistics since the Progress was
	// created.
	Total Stats

	// Window holds the statistics since the last report.
	Window Stats
}

// Observe adds statistics and logs a report if Step
// sequences have been seen since the last one.
// The window is cleared after each report.
func (p *Progress) Observe(delta *Stats) {
	p.Total.Merge(delta)
	p.Window.Merge(delta)
	step := p.Step
	if step == 0 {
		step = DefaultReportStep
	}
	if step > 0 && p.Window.Sequences >= step {
		p.logger().Printf("after %d sequences: %s", p.Total.Sequences,
			strings.ReplaceAll(strings.TrimSpace(p.Window.Report()), "\n", "; "))
		p.Window.Reset()
	}
}

// Report generates a summary of the total statistics.
func (p *Progress) Report() string {
	return p.Total.Report()
}

func (p *Progress) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}
