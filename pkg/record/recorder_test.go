package record

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func entry(session, id string) Entry {
	return Entry{
		SessionID: session,
		EventType: "click",
		TargetID:  id,
		MatchedID: id,
		Handled:   true,
		At:        time.Now(),
	}
}

func TestRecorderFlushesAtThreshold(t *testing.T) {
	sink := NewMemorySink()
	rec := NewRecorder(sink, 3)
	ctx := context.Background()

	rec.Record(ctx, entry("s1", "row-1"))
	rec.Record(ctx, entry("s1", "row-2"))
	if got := len(sink.Entries()); got != 0 {
		t.Fatalf("entries before threshold = %d, want 0", got)
	}

	rec.Record(ctx, entry("s1", "row-3"))
	if got := len(sink.Entries()); got != 3 {
		t.Errorf("entries after threshold = %d, want 3", got)
	}
}

func TestRecorderCloseFlushesRemainder(t *testing.T) {
	sink := NewMemorySink()
	rec := NewRecorder(sink, 100)
	ctx := context.Background()

	rec.Record(ctx, entry("s1", "row-1"))
	if err := rec.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := sink.Entries()
	if len(got) != 1 || got[0].TargetID != "row-1" {
		t.Errorf("entries = %v, want the one recorded entry", got)
	}
}

type failingSink struct{}

func (failingSink) Write(context.Context, []Entry) error { return errors.New("sink down") }
func (failingSink) Close(context.Context) error          { return nil }

func TestRecorderDropsOnSinkFailure(t *testing.T) {
	rec := NewRecorder(failingSink{}, 2)
	ctx := context.Background()

	rec.Record(ctx, entry("s1", "row-1"))
	rec.Record(ctx, entry("s1", "row-2"))

	if got := rec.Dropped(); got != 2 {
		t.Errorf("dropped = %d, want 2", got)
	}
	if err := rec.Flush(ctx); err != nil {
		t.Errorf("flush of empty buffer must succeed, got %v", err)
	}
}

func TestFileSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	ctx := context.Background()

	if err := sink.Write(ctx, []Entry{entry("s1", "row-1"), entry("s1", "row-2")}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var lines []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("bad line %q: %v", scanner.Text(), err)
		}
		lines = append(lines, e)
	}
	if len(lines) != 2 || lines[1].TargetID != "row-2" {
		t.Errorf("lines = %v, want two entries ending row-2", lines)
	}
}

type fakeS3 struct {
	inputs []*s3.PutObjectInput
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, in)
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkUploadsBatch(t *testing.T) {
	client := &fakeS3{}
	sink := NewS3Sink(client, "traces", "sessions/")
	ctx := context.Background()

	if err := sink.Write(ctx, []Entry{entry("s1", "row-1")}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Write(ctx, nil); err != nil {
		t.Fatalf("empty batch must be a no-op, got %v", err)
	}

	if len(client.inputs) != 1 {
		t.Fatalf("uploads = %d, want 1", len(client.inputs))
	}
	in := client.inputs[0]
	if *in.Bucket != "traces" {
		t.Errorf("bucket = %q, want traces", *in.Bucket)
	}
	if got := *in.Key; len(got) < len("sessions/") || got[:9] != "sessions/" {
		t.Errorf("key = %q, want sessions/ prefix", got)
	}
}
