package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileOptions customizes a FileStore.
type FileOptions struct {
	Encoding    string
	Permissions fs.FileMode // mode for the data directory
	Logger      *slog.Logger
}

// DefaultFileOptions returns the default options
func DefaultFileOptions() FileOptions {
	return FileOptions{
		Encoding:    DefaultEncoding,
		Permissions: 0755,
		Logger:      slog.New(slog.DiscardHandler),
	}
}

type snapshot struct {
	exists bool
	value  string
}

// FileStore keeps one file per key inside a directory. Changes made by other
// processes sharing the directory reach watchers once Listen is running.
type FileStore struct {
	dir     string
	options FileOptions
	obs     observers

	mu    sync.Mutex
	known map[string]snapshot // last state this process wrote or announced
}

// NewFileStore opens (creating if needed) the store rooted at dir.
func NewFileStore(dir string, opts ...FileOptions) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory cannot be empty")
	}
	options := DefaultFileOptions()
	if len(opts) > 0 {
		options = opts[0]
		if options.Encoding == "" {
			options.Encoding = DefaultEncoding
		}
		if options.Permissions == 0 {
			options.Permissions = 0755
		}
		if options.Logger == nil {
			options.Logger = slog.New(slog.DiscardHandler)
		}
	}

	if err := os.MkdirAll(dir, options.Permissions); err != nil {
		return nil, &fs.PathError{Op: "file-mkdir", Path: dir, Err: err}
	}

	return &FileStore{
		dir:     dir,
		options: options,
		known:   make(map[string]snapshot),
	}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStore) Get(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}

	value, err := readText(s.path(key), s.options.Encoding)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *FileStore) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	err := writeText(s.path(key), value, s.options.Encoding)
	if err == nil {
		s.known[key] = snapshot{exists: true, value: value}
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.obs.notify(key)
	return nil
}

func (s *FileStore) Remove(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	err := removeFile(s.path(key))
	if err == nil {
		s.known[key] = snapshot{}
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.obs.notify(key)
	return nil
}

func (s *FileStore) Watch(key string, fn func()) func() {
	return s.obs.add(key, fn)
}

// Listen watches the directory for changes made outside this process until
// ctx is done. Events that leave a key in the state this process last wrote
// are dropped, so local writes are not announced twice.
func (s *FileStore) Listen(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.handleEvent(event)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.options.Logger.Warn("storage watcher error", slog.String("error", err.Error()))
			}
		}
	}()
	return nil
}

func (s *FileStore) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	key := filepath.Base(event.Name)
	// other files in the directory, such as a log file, are never read
	if ValidateKey(key) != nil || !s.obs.watched(key) {
		return
	}

	value, exists, err := s.Get(key)
	if err != nil {
		s.options.Logger.Debug("storage reload failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	current := snapshot{exists: exists, value: value}

	s.mu.Lock()
	if s.known[key] == current {
		s.mu.Unlock()
		return
	}
	s.known[key] = current
	s.mu.Unlock()

	s.options.Logger.Debug("external storage change", slog.String("key", key))
	s.obs.notify(key)
}
