package reindex

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports reindexing progress to a writer. The total is
// unknown up front, the store is paged through, so it reports counts and
// throughput rather than percentages.
type ProgressTracker struct {
	writer         io.Writer
	reportInterval int
	processed      int
	lastReported   int
	startTime      time.Time
	mu             sync.Mutex
}

// NewProgressTracker creates a tracker reporting every reportInterval
// items, typically to os.Stderr.
func NewProgressTracker(writer io.Writer, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		reportInterval: reportInterval,
		startTime:      time.Now(),
	}
}

// Increment adds processed items and reports when an interval is crossed.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processed += delta
	if p.processed-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.processed
	}
}

// Processed returns the number of items counted so far.
func (p *ProgressTracker) Processed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed
}

// Finish prints the final tally.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.startTime)
	fmt.Fprintf(p.writer, "\rReindexed %d items in %v (%.1f items/s)\n",
		p.processed, elapsed.Round(time.Second), rate(p.processed, elapsed))
}

// report prints interim progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	fmt.Fprintf(p.writer, "\rProgress: %d items (%.1f items/s)",
		p.processed, rate(p.processed, elapsed))
}

func rate(processed int, elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(processed) / seconds
}
