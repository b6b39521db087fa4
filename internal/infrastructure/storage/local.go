package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlaceholderPath is returned whenever an image cannot be persisted.
// Image storage is non-critical: a diagnosis proceeds with the
// placeholder reference instead of failing.
const PlaceholderPath = "/placeholder-image.jpg"

// PublicPrefix is the URL prefix under which stored images are served.
const PublicPrefix = "/uploads"

// LocalStorage persists uploaded crop images on the local filesystem
type LocalStorage struct {
	basePath string
	logger   *slog.Logger
}

// Config for local storage
type LocalStorageConfig struct {
	BasePath string // Base directory for stored data (e.g., "./data")
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(cfg *LocalStorageConfig, logger *slog.Logger) (*LocalStorage, error) {
	uploadsDir := filepath.Join(cfg.BasePath, "uploads")
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		logger:   logger,
	}, nil
}

// UploadsDir returns the directory images are written to, for static
// file serving.
func (s *LocalStorage) UploadsDir() string {
	return filepath.Join(s.basePath, "uploads")
}

// SaveDataURI decodes a base64 image payload, optionally carrying a
// data URI prefix, writes it under a fresh unique name and returns the
// public path. Every failure is absorbed: the caller always gets a
// usable reference, falling back to the placeholder.
func (s *LocalStorage) SaveDataURI(ctx context.Context, dataURI string) string {
	data, ext, err := DecodeDataURI(dataURI)
	if err != nil {
		s.logger.Warn("failed to decode image payload, using placeholder",
			slog.Any("error", err))
		return PlaceholderPath
	}

	name := uuid.New().String() + ext
	destPath := filepath.Join(s.UploadsDir(), name)

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		s.logger.Warn("failed to write image, using placeholder",
			slog.String("path", destPath),
			slog.Any("error", err))
		return PlaceholderPath
	}

	s.logger.Info("image stored",
		slog.String("filename", name),
		slog.Int("size", len(data)))

	return PublicPrefix + "/" + name
}

// DecodeDataURI strips a data:<mime>;base64, prefix when present and
// decodes the remaining base64 payload. The returned extension is
// derived from the declared MIME type and defaults to .jpg.
func DecodeDataURI(dataURI string) ([]byte, string, error) {
	payload := strings.TrimSpace(dataURI)
	if payload == "" {
		return nil, "", fmt.Errorf("empty image payload")
	}

	ext := ".jpg"
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		meta := payload[len("data:"):idx]
		payload = payload[idx+1:]

		mime, _, _ := strings.Cut(meta, ";")
		switch mime {
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		case "image/gif":
			ext = ".gif"
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}

	return data, ext, nil
}

// CleanupOldFiles removes stored images older than the specified
// duration. Driven by the periodic cleanup task.
func (s *LocalStorage) CleanupOldFiles(ctx context.Context, olderThan time.Duration) error {
	cutoffTime := time.Now().Add(-olderThan)
	uploadsDir := s.UploadsDir()

	entries, err := os.ReadDir(uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read uploads directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(uploadsDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("failed to get file info",
				slog.String("path", path),
				slog.Any("error", err))
			continue
		}

		if info.ModTime().Before(cutoffTime) {
			if err := os.Remove(path); err != nil {
				s.logger.Warn("failed to remove file",
					slog.String("path", path),
					slog.Any("error", err))
				continue
			}
			removed++
		}
	}

	s.logger.Info("cleanup completed",
		slog.Duration("older_than", olderThan),
		slog.Int("removed", removed))

	return nil
}
