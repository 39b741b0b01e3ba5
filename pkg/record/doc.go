// Package record exports session dispatch traces. A Recorder buffers one
// Entry per dispatched event and flushes batches to a Sink: in-memory,
// JSON-lines file, or S3. Recording is fire-and-forget — a failing sink
// drops batches rather than stalling the dispatch path.
package record
