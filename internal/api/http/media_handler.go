package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"agrorent-backend/internal/storage"
)

// MediaHandler serves uploaded images when the mock storage backend is
// active. GCS objects are fetched from the bucket URL directly.
type MediaHandler struct {
	mockStorage *storage.MockStorageService
}

func NewMediaHandler(mockStorage *storage.MockStorageService) *MediaHandler {
	return &MediaHandler{mockStorage: mockStorage}
}

func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "Missing key", http.StatusBadRequest)
		return
	}
	exists, size, err := h.mockStorage.FileExists(r.Context(), key)
	if err != nil || !exists {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	file, err := h.mockStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	if _, err := io.Copy(w, file); err != nil {
		return
	}
}
