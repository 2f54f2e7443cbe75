package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
)

// GCSStorageService implements object storage on a Google Cloud Storage
// bucket reached through the Firebase app. Objects are written publicly
// readable; the returned URLs are the canonical storage.googleapis.com form.
type GCSStorageService struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewGCSStorageService resolves the configured bucket from the Firebase app.
func NewGCSStorageService(ctx context.Context, app *firebase.App, bucketName string) (*GCSStorageService, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bucket %q: %w", bucketName, err)
	}
	return &GCSStorageService{bucket: bucket, bucketName: bucketName}, nil
}

func (g *GCSStorageService) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	w := g.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucketName, url.PathEscape(key)), nil
}

func (g *GCSStorageService) Delete(ctx context.Context, key string) error {
	err := g.bucket.Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (g *GCSStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	attrs, err := g.bucket.Object(key).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, attrs.Size, nil
}

func (g *GCSStorageService) ReadFile(key string) (io.ReadCloser, error) {
	return g.bucket.Object(key).NewReader(context.Background())
}

func (g *GCSStorageService) KeyFromURL(u string) string {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", g.bucketName)
	if !strings.HasPrefix(u, prefix) {
		return ""
	}
	key, err := url.PathUnescape(strings.TrimPrefix(u, prefix))
	if err != nil {
		return ""
	}
	return key
}

func (g *GCSStorageService) DeleteUnreferenced(ctx context.Context, olderThan time.Time, referenced map[string]bool) (int, error) {
	deleted := 0
	it := g.bucket.Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return deleted, err
		}
		if referenced[attrs.Name] || attrs.Created.After(olderThan) {
			continue
		}
		if err := g.bucket.Object(attrs.Name).Delete(ctx); err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
