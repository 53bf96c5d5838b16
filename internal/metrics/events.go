// Package metrics keeps in-memory session counters for the conversion
// endpoints. Nothing is persisted; the counters reset with the process.
package metrics

import (
	"sync"
	"time"
)

// EventType represents the type of activity event
type EventType string

const (
	EventConvert EventType = "convert"
	EventRender  EventType = "render"
	EventExtract EventType = "extract"
	EventArchive EventType = "archive"
)

// Snapshot is a read-only copy of the counters.
type Snapshot struct {
	StartedAt      time.Time           `json:"startedAt"`
	BatchesRun     int64               `json:"batchesRun"`
	ItemsConverted int64               `json:"itemsConverted"`
	ItemsSkipped   int64               `json:"itemsSkipped"`
	BytesIn        int64               `json:"bytesIn"`
	BytesOut       int64               `json:"bytesOut"`
	Events         map[EventType]int64 `json:"events"`
}

// Recorder accumulates counters. Safe for concurrent handlers.
type Recorder struct {
	mu        sync.Mutex
	startedAt time.Time
	batches   int64
	converted int64
	skipped   int64
	bytesIn   int64
	bytesOut  int64
	events    map[EventType]int64
}

func New() *Recorder {
	return &Recorder{
		startedAt: time.Now().UTC(),
		events:    make(map[EventType]int64),
	}
}

// RecordBatch tallies one pipeline run: attempted inputs, surviving outputs
// and the byte totals before/after encoding.
func (r *Recorder) RecordBatch(event EventType, attempted, produced int, bytesIn, bytesOut int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches++
	r.converted += int64(produced)
	r.skipped += int64(attempted - produced)
	r.bytesIn += bytesIn
	r.bytesOut += bytesOut
	r.events[event]++
}

// RecordEvent tallies a non-batch event such as an archive download.
func (r *Recorder) RecordEvent(event EventType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event]++
}

// Stats returns a copy of the current counters.
func (r *Recorder) Stats() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make(map[EventType]int64, len(r.events))
	for k, v := range r.events {
		events[k] = v
	}
	return Snapshot{
		StartedAt:      r.startedAt,
		BatchesRun:     r.batches,
		ItemsConverted: r.converted,
		ItemsSkipped:   r.skipped,
		BytesIn:        r.bytesIn,
		BytesOut:       r.bytesOut,
		Events:         events,
	}
}
