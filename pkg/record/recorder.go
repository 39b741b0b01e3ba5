package record

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Entry is one dispatched event in a session trace.
type Entry struct {
	SessionID string    `json:"session_id"`
	EventType string    `json:"event_type"`
	TargetID  string    `json:"target_id"`
	MatchedID string    `json:"matched_id,omitempty"`
	Handled   bool      `json:"handled"`
	At        time.Time `json:"at"`
}

// Sink receives batches of trace entries. Sinks are write-only exporters;
// there is no read path.
type Sink interface {
	Write(ctx context.Context, entries []Entry) error
	Close(ctx context.Context) error
}

// Recorder buffers trace entries and flushes them to a sink once the
// buffer reaches FlushAt entries, and again on Close. Record never blocks
// on the sink unless a flush is due.
type Recorder struct {
	mu      sync.Mutex
	sink    Sink
	buf     []Entry
	flushAt int
	dropped int64
}

// DefaultFlushAt is the buffered entry count that triggers a flush.
const DefaultFlushAt = 256

// NewRecorder creates a recorder flushing to sink. flushAt <= 0 selects
// DefaultFlushAt.
func NewRecorder(sink Sink, flushAt int) *Recorder {
	if flushAt <= 0 {
		flushAt = DefaultFlushAt
	}
	return &Recorder{sink: sink, flushAt: flushAt}
}

// Record buffers an entry, flushing when the buffer is full. A failed
// flush drops the batch and counts it; recording must never stall the
// dispatch path.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	r.mu.Lock()
	r.buf = append(r.buf, e)
	if len(r.buf) < r.flushAt {
		r.mu.Unlock()
		return
	}
	batch := r.take()
	r.mu.Unlock()

	if err := r.sink.Write(ctx, batch); err != nil {
		r.mu.Lock()
		r.dropped += int64(len(batch))
		r.mu.Unlock()
	}
}

// Flush writes all buffered entries to the sink.
func (r *Recorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	batch := r.take()
	r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	if err := r.sink.Write(ctx, batch); err != nil {
		r.mu.Lock()
		r.dropped += int64(len(batch))
		r.mu.Unlock()
		return fmt.Errorf("record: flush: %w", err)
	}
	return nil
}

// Dropped returns the number of entries lost to failed flushes.
func (r *Recorder) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes remaining entries and closes the sink.
func (r *Recorder) Close(ctx context.Context) error {
	flushErr := r.Flush(ctx)
	if err := r.sink.Close(ctx); err != nil {
		return err
	}
	return flushErr
}

// take hands back the current buffer and resets it. Callers hold r.mu.
func (r *Recorder) take() []Entry {
	batch := r.buf
	r.buf = nil
	return batch
}
