package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/IvanChernomyrdin/go-places/internal/server/storage"
	"github.com/IvanChernomyrdin/go-places/internal/shared/logger"
)

func newStore(t *testing.T) (*storage.ImageStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	s, err := storage.NewImageStore(filepath.Join(t.TempDir(), "uploads", "images"), &logger.HTTPLogger{Logger: zap.New(core)})
	require.NoError(t, err)
	return s, logs
}

func TestImageStore_SaveAndRemove(t *testing.T) {
	s, _ := newStore(t)

	path, err := s.Save(strings.NewReader("png-bytes"), "png")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, ".png"))
	require.Equal(t, filepath.ToSlash(s.Dir()), filepath.ToSlash(filepath.Dir(path)))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(b))

	require.NoError(t, s.Remove(path))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestImageStore_UniqueNames(t *testing.T) {
	s, _ := newStore(t)

	p1, err := s.Save(strings.NewReader("a"), ".jpg")
	require.NoError(t, err)
	p2, err := s.Save(strings.NewReader("b"), "jpg")
	require.NoError(t, err)
	require.NotEqual(t, p1, p2)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestImageStore_SaveCleansUpOnError(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Save(failingReader{}, "png")
	require.Error(t, err)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestImageStore_RemoveOutsideDir(t *testing.T) {
	s, _ := newStore(t)

	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0600))

	require.Error(t, s.Remove(outside))
	require.Error(t, s.Remove(filepath.Join(s.Dir(), "..", "keep.txt")))
	_, err := os.Stat(outside)
	require.NoError(t, err)
}

func TestImageStore_RemoveAsync(t *testing.T) {
	s, logs := newStore(t)

	path, err := s.Save(strings.NewReader("x"), "png")
	require.NoError(t, err)

	s.RemoveAsync(path)
	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	}, time.Second, 10*time.Millisecond)

	// второй раз файла уже нет — только warn в логе
	s.RemoveAsync(path)
	require.Eventually(t, func() bool {
		return logs.FilterMessage("image remove failed").Len() == 1
	}, time.Second, 10*time.Millisecond)
}
