// Package storage хранит загруженные картинки на локальном диске.
//
// Файлы лежат в <dir>/<uuid>.<ext>, наружу отдаётся относительный путь
// (например uploads/images/<uuid>.png) — он же сохраняется в БД и по нему
// файл раздаётся статикой.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-places/internal/shared/logger"
)

// ImageStore — локальное хранилище картинок.
type ImageStore struct {
	dir string
	log *logger.HTTPLogger
}

// NewImageStore создаёт каталог dir (если его нет).
func NewImageStore(dir string, log *logger.HTTPLogger) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: filepath.Clean(dir), log: log}, nil
}

// Dir — каталог, из которого раздаётся статика.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save пишет src в новый файл <uuid>.<ext> и возвращает путь к нему.
// При ошибке записи недописанный файл удаляется.
func (s *ImageStore) Save(src io.Reader, ext string) (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("generate file name: %w", err)
	}
	path := filepath.Join(s.dir, id.String()+"."+strings.TrimPrefix(ext, "."))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close file: %w", err)
	}

	return filepath.ToSlash(path), nil
}

// Remove удаляет файл. Пути вне каталога хранилища не трогаем.
func (s *ImageStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.Dir(clean) != s.dir {
		return fmt.Errorf("path %q is outside of %q", path, s.dir)
	}
	return os.Remove(clean)
}

// RemoveAsync удаляет файл в фоне. Ошибка только пишется в лог.
func (s *ImageStore) RemoveAsync(path string) {
	go s.removeAndLog(path)
}

func (s *ImageStore) removeAndLog(path string) {
	if err := s.Remove(path); err != nil {
		s.log.Warn("image remove failed", zap.String("path", path), zap.Error(err))
	}
}
