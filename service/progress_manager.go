package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/schollz/progressbar/v3"
)

// ProgressManagerImpl draws a progress bar for multi-file scans when
// attached to a terminal, and stays silent otherwise
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	description string
	bar         *progressbar.ProgressBar
	interactive bool
	total       int
}

// NewProgressManager creates a progress manager writing to stderr
func NewProgressManager(description string) domain.ProgressManager {
	pm := &ProgressManagerImpl{description: description}
	pm.SetWriter(os.Stderr)
	return pm
}

// Initialize records the number of files the bar will count to
func (pm *ProgressManagerImpl) Initialize(maxValue int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.total = maxValue
}

// Start draws the empty bar
func (pm *ProgressManagerImpl) Start() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.interactive && pm.bar == nil {
		pm.bar = pm.newBar(pm.total)
	}
}

// Complete finishes the bar
func (pm *ProgressManagerImpl) Complete(success bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.bar == nil {
		return
	}
	if !success {
		pm.bar.Describe(pm.description + " (failed)")
	}
	_ = pm.bar.Finish()
}

// Update moves the bar to processed out of total
func (pm *ProgressManagerImpl) Update(processed, total int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.bar == nil && pm.interactive {
		pm.bar = pm.newBar(total)
	}
	if pm.bar != nil {
		_ = pm.bar.Set(processed)
	}
}

// SetWriter changes the destination; only a terminal file is interactive
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.writer = writer
	pm.interactive = IsTerminal(writer)
}

// IsInteractive returns true if progress bars should be shown
func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	return pm.interactive
}

// Close finishes any bar still open
func (pm *ProgressManagerImpl) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.bar != nil && !pm.bar.IsFinished() {
		_ = pm.bar.Finish()
	}
}

func (pm *ProgressManagerImpl) newBar(max int) *progressbar.ProgressBar {
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(pm.description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
}

// noopProgressManager is used when no progress output is wanted
type noopProgressManager struct{}

// NewNoopProgressManager returns a ProgressManager that draws nothing
func NewNoopProgressManager() domain.ProgressManager { return noopProgressManager{} }

func (noopProgressManager) Initialize(int) {}
func (noopProgressManager) Start() {}
func (noopProgressManager) Complete(bool) {}
func (noopProgressManager) Update(int, int) {}
func (noopProgressManager) SetWriter(io.Writer) {}
func (noopProgressManager) IsInteractive() bool { return false }
func (noopProgressManager) Close() {}
