// Package notify fans store events out to several observers.
package notify

import (
	"log/slog"

	"github.com/videoshare/videoshare/internal/catalog"
)

var (
	_ catalog.Recorder = (*MultiRecorder)(nil)
	_ catalog.Recorder = LogRecorder{}
)

// MultiRecorder forwards every store operation to all registered recorders.
type MultiRecorder struct {
	recorders []catalog.Recorder
}

// NewMultiRecorder skips nil recorders so callers can pass optional ones.
func NewMultiRecorder(recorders ...catalog.Recorder) *MultiRecorder {
	m := &MultiRecorder{}
	for _, r := range recorders {
		if r != nil {
			m.recorders = append(m.recorders, r)
		}
	}
	return m
}

func (m *MultiRecorder) RecordOperation(op string, applied bool) {
	for _, r := range m.recorders {
		r.RecordOperation(op, applied)
	}
}

// LogRecorder writes each operation to the default logger at debug level.
type LogRecorder struct{}

func (LogRecorder) RecordOperation(op string, applied bool) {
	slog.Debug("store operation", "operation", op, "applied", applied)
}
