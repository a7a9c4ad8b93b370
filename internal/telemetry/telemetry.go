// Package telemetry collects per-second session samples and writes them out
// as CSV at session end. See design doc Section 11.
package telemetry

import (
	"fmt"
	"os"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/talgya/warren/internal/session"
)

// Recorder buffers samples in memory; nothing touches disk until Flush.
type Recorder struct {
	mu      sync.Mutex
	path    string
	samples []*session.Sample
}

// NewRecorder creates a recorder targeting the given CSV path.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Record appends one sample. Safe to call from the session hook.
func (r *Recorder) Record(s session.Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sample := s
	r.samples = append(r.samples, &sample)
}

// Len returns the number of buffered samples.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

// Flush writes all buffered samples to the CSV file. A session with no
// samples writes nothing.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.samples) == 0 {
		return nil
	}
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("telemetry: create %s: %w", r.path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&r.samples, f); err != nil {
		return fmt.Errorf("telemetry: write %s: %w", r.path, err)
	}
	return nil
}
