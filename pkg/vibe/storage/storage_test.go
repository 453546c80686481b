package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{key: "colorPalettes"},
		{key: "settings.yaml"},
		{key: "", wantErr: true},
		{key: ".hidden", wantErr: true},
		{key: "../escape", wantErr: true},
		{key: "a/b", wantErr: true},
		{key: `a\b`, wantErr: true},
		{key: "nul\x00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

// stores runs the shared contract against every implementation.
func stores(t *testing.T) map[string]Store {
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("colorPalettes")
			require.NoError(t, err)
			assert.False(t, ok, "missing key should not exist")

			require.NoError(t, s.Set("colorPalettes", `[{"id":"a"}]`))
			v, ok, err := s.Get("colorPalettes")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"a"}]`, v)

			require.NoError(t, s.Set("colorPalettes", "ünïcødé ✓"))
			v, _, err = s.Get("colorPalettes")
			require.NoError(t, err)
			assert.Equal(t, "ünïcødé ✓", v)

			require.NoError(t, s.Remove("colorPalettes"))
			_, ok, err = s.Get("colorPalettes")
			require.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, s.Remove("colorPalettes"), "removing a missing key is a no-op")
		})
	}
}

func TestStoreRejectsInvalidKeys(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Set("../x", "v"), ErrInvalidKey)
			_, _, err := s.Get("")
			assert.ErrorIs(t, err, ErrInvalidKey)
			assert.ErrorIs(t, s.Remove(".x"), ErrInvalidKey)
		})
	}
}

func TestStoreWatch(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var hits, other atomic.Int32
			cancel := s.Watch("colorPalettes", func() { hits.Add(1) })
			s.Watch("somethingElse", func() { other.Add(1) })

			require.NoError(t, s.Set("colorPalettes", "1"))
			require.NoError(t, s.Remove("colorPalettes"))
			assert.Equal(t, int32(2), hits.Load())
			assert.Equal(t, int32(0), other.Load())

			cancel()
			cancel()
			require.NoError(t, s.Set("colorPalettes", "2"))
			assert.Equal(t, int32(2), hits.Load(), "cancelled watcher must not fire")
		})
	}
}

func TestMemoryStoreFailWrites(t *testing.T) {
	s := NewMemoryStore()
	s.FailWrites = errors.New("quota exceeded")
	assert.EqualError(t, s.Set("k", "v"), "quota exceeded")
	assert.EqualError(t, s.Remove("k"), "quota exceeded")
}

func TestFileStoreWritesIntoDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	require.NoError(t, s.Set("colorPalettes", "[]"))
	data, err := os.ReadFile(filepath.Join(dir, "colorPalettes"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStoreUnknownEncoding(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), FileOptions{Encoding: "no-such-encoding"})
	require.NoError(t, err)
	assert.Error(t, s.Set("k", "v"))
}

func TestNewFileStoreEmptyDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestFileStoreListenExternalChange(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Listen(ctx))

	var hits atomic.Int32
	s.Watch("colorPalettes", func() { hits.Add(1) })

	// Another process writing the same directory
	require.NoError(t, os.WriteFile(filepath.Join(dir, "colorPalettes"), []byte(`[]`), 0644))

	require.Eventually(t, func() bool { return hits.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestFileStoreListenSkipsOwnWrites(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Listen(ctx))

	var hits atomic.Int32
	s.Watch("colorPalettes", func() { hits.Add(1) })

	require.NoError(t, s.Set("colorPalettes", `["#000000"]`))
	assert.Never(t, func() bool { return hits.Load() > 1 }, 300*time.Millisecond, 20*time.Millisecond)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFileStoreIgnoresUnwatchedFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	var hits atomic.Int32
	s.Watch("colorPalettes", func() { hits.Add(1) })

	logPath := filepath.Join(dir, "vibe.log")
	require.NoError(t, os.WriteFile(logPath, []byte("level=DEBUG msg=\"external storage change\"\n"), 0644))
	s.handleEvent(fsnotify.Event{Name: logPath, Op: fsnotify.Write})

	s.mu.Lock()
	_, read := s.known["vibe.log"]
	s.mu.Unlock()
	assert.False(t, read, "unwatched files are not read")
	assert.Zero(t, hits.Load())

	keyPath := filepath.Join(dir, "colorPalettes")
	require.NoError(t, os.WriteFile(keyPath, []byte(`[]`), 0644))
	s.handleEvent(fsnotify.Event{Name: keyPath, Op: fsnotify.Write})
	assert.Equal(t, int32(1), hits.Load())
}

func TestFileStoreListenWithLogInDir(t *testing.T) {
	dir := t.TempDir()
	logFile, err := os.OpenFile(filepath.Join(dir, "vibe.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer logFile.Close()

	options := DefaultFileOptions()
	options.Logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := NewFileStore(dir, options)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Listen(ctx))
	s.Watch("colorPalettes", func() {})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "colorPalettes"), []byte(`[]`), 0644))
	time.Sleep(300 * time.Millisecond)

	info, err := logFile.Stat()
	require.NoError(t, err)
	size := info.Size()
	assert.Never(t, func() bool {
		info, err := logFile.Stat()
		return err == nil && info.Size() != size
	}, 300*time.Millisecond, 20*time.Millisecond, "log writes do not feed back into the watcher")
}

func TestOptimalBufferSize(t *testing.T) {
	assert.Equal(t, 100, optimalBufferSize(100))
	got := optimalBufferSize(10 * 1024 * 1024)
	assert.GreaterOrEqual(t, got, 4*1024)
	assert.LessOrEqual(t, got, 1024*1024)
}
