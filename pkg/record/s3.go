package record

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3API is the subset of the S3 client used by S3Sink, extracted so tests
// can substitute a fake.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads each batch as one JSON-lines object.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	sink := record.NewS3Sink(s3.NewFromConfig(cfg), "my-bucket", "traces/")
type S3Sink struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Sink creates a sink writing to the given bucket under prefix.
func NewS3Sink(client S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// Write implements Sink. Batches become objects named
// <prefix><timestamp>-<uuid>.jsonl.
func (s *S3Sink) Write(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("record: encode entry: %w", err)
		}
	}

	key := fmt.Sprintf("%s%s-%s.jsonl",
		s.prefix,
		time.Now().UTC().Format("20060102T150405Z"),
		uuid.NewString())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
		Metadata: map[string]string{
			"entry-count": fmt.Sprintf("%d", len(entries)),
		},
	})
	if err != nil {
		return fmt.Errorf("record: s3 upload failed: %w", err)
	}
	return nil
}

// Close implements Sink. The S3 client is owned by the caller.
func (s *S3Sink) Close(context.Context) error { return nil }
