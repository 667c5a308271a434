package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// objectPrefix is where processed exports land inside the archive bucket.
const objectPrefix = "uploaded"

// GCSArchiver copies processed export files into a GCS bucket so they do
// not sit next to fresh exports waiting for the next run.
type GCSArchiver struct {
	client *storage.Client
	bucket string
}

// NewGCSArchiver creates an archiver for the given bucket. keyFile may be
// empty, in which case Application Default Credentials are used.
func NewGCSArchiver(ctx context.Context, bucket, keyFile string) (*GCSArchiver, error) {
	var opts []option.ClientOption
	if keyFile != "" {
		opts = append(opts, option.WithCredentialsFile(keyFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewGCSArchiver: storage client: %w", err)
	}

	return &GCSArchiver{client: client, bucket: bucket}, nil
}

// Close closes the storage client connection.
func (a *GCSArchiver) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// ArchiveFile uploads the file to gs://<bucket>/uploaded/<uuid>-<name> and
// returns the object URI. The uuid keeps same-named exports from different
// months from overwriting each other.
func (a *GCSArchiver) ArchiveFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("ArchiveFile: opening %s: %w", path, err)
	}
	defer f.Close()

	object := fmt.Sprintf("%s/%s-%s", objectPrefix, uuid.NewString(), filepath.Base(path))

	w := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("ArchiveFile: copying %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("ArchiveFile: finalizing upload of %s: %w", path, err)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, object), nil
}
