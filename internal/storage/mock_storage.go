package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MockStorageService implements object storage on the local filesystem for
// development and testing, with public URLs served by the HTTP media
// handler.
type MockStorageService struct {
	baseURL   string // server URL, e.g. "http://localhost:8080"
	mediaDir  string
	uploadDir string
}

// NewMockStorageService creates a mock store rooted at uploadDir.
func NewMockStorageService(baseURL, uploadDir string) (*MockStorageService, error) {
	mediaDir := filepath.Join(uploadDir, "media")
	if err := os.MkdirAll(mediaDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &MockStorageService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		mediaDir:  mediaDir,
		uploadDir: uploadDir,
	}, nil
}

func (m *MockStorageService) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	fullPath := filepath.Join(m.mediaDir, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return m.publicURL(key), nil
}

func (m *MockStorageService) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(m.mediaDir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (m *MockStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(m.mediaDir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(m.mediaDir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (m *MockStorageService) KeyFromURL(u string) string {
	prefix := m.baseURL + "/api/v1/media/"
	if !strings.HasPrefix(u, prefix) {
		return ""
	}
	key, err := url.PathUnescape(strings.TrimPrefix(u, prefix))
	if err != nil {
		return ""
	}
	return key
}

func (m *MockStorageService) DeleteUnreferenced(ctx context.Context, olderThan time.Time, referenced map[string]bool) (int, error) {
	deleted := 0
	err := filepath.WalkDir(m.mediaDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		key, relErr := filepath.Rel(m.mediaDir, path)
		if relErr != nil {
			return relErr
		}
		key = filepath.ToSlash(key)
		if referenced[key] {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		if info.ModTime().After(olderThan) {
			return nil
		}
		if rmErr := os.Remove(path); rmErr != nil {
			return rmErr
		}
		deleted++
		return nil
	})
	return deleted, err
}

func (m *MockStorageService) publicURL(key string) string {
	return fmt.Sprintf("%s/api/v1/media/%s", m.baseURL, url.PathEscape(key))
}
