package workers

import (
	"chat-fanout/contract"
	"context"
	"log/slog"
	"time"
)

// BacklogMonitor periodically samples a buffer and warns once it fills above a threshold.
// Sampling reads len and cap only, so a missed tick loses nothing but a log line.
type BacklogMonitor struct {
	log              *slog.Logger
	name             string
	backlog          contract.Backlog
	interval         time.Duration
	thresholdPercent int
}

func NewBacklogMonitor(log *slog.Logger, name string, backlog contract.Backlog,
	interval time.Duration, thresholdPercent int) *BacklogMonitor {
	return &BacklogMonitor{
		log:              log,
		name:             name,
		backlog:          backlog,
		interval:         interval,
		thresholdPercent: thresholdPercent,
	}
}

func (w *BacklogMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

// Sample logs the current fill of the buffer and reports whether it crossed the threshold
func (w *BacklogMonitor) Sample() bool {
	length, capacity := w.backlog.Len(), w.backlog.Cap()
	if capacity == 0 {
		return false
	}
	percent := length * 100 / capacity
	if percent >= w.thresholdPercent {
		w.log.Warn("Buffer filling up", "name", w.name, "length", length, "capacity", capacity, "percent", percent)
		return true
	}
	w.log.Debug("Buffer sampled", "name", w.name, "length", length, "capacity", capacity)
	return false
}
