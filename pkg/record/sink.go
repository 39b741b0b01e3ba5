package record

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// MemorySink keeps entries in memory. Used by tests and as a default when
// no export target is configured.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
	closed  bool
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write implements Sink.
func (s *MemorySink) Write(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("record: sink is closed")
	}
	s.entries = append(s.entries, entries...)
	return nil
}

// Close implements Sink.
func (s *MemorySink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Entries returns a copy of everything written so far.
func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// FileSink appends entries to a file as JSON lines, one entry per line.
type FileSink struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// NewFileSink opens (or creates) the file for appending.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("record: open %s: %w", path, err)
	}
	return &FileSink{f: f, enc: json.NewEncoder(f)}, nil
}

// Write implements Sink.
func (s *FileSink) Write(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if err := s.enc.Encode(e); err != nil {
			return fmt.Errorf("record: encode entry: %w", err)
		}
	}
	return nil
}

// Close implements Sink.
func (s *FileSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
