package snapshot

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
)

// MinioSink writes dumps to MinIO or any S3-compatible object store.
// PutObject uploads are atomic from the reader's point of view, so no
// temp-and-rename dance is needed.
type MinioSink struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioSink creates a MinioSink.
// prefix is prepended to all object keys (e.g. "snapshots/").
func NewMinioSink(client *minio.Client, bucket, prefix string) *MinioSink {
	return &MinioSink{client: client, bucket: bucket, prefix: prefix}
}

func (s *MinioSink) key(name string) string {
	return path.Join(s.prefix, name)
}

// Put uploads the dump as a single object.
func (s *MinioSink) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

// Get downloads a previously uploaded dump.
func (s *MinioSink) Get(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}
