// Package history keeps the most recent palettes in persistent storage.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ImGajeed76/vibepalette/pkg/vibe/palette"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/storage"
)

const (
	// StorageKey is the storage entry holding the serialized history.
	StorageKey = "colorPalettes"
	// MaxEntries caps the history; adding beyond it evicts the oldest entry.
	MaxEntries = 10
)

// Collection is the palette history as seen by the UI and commands.
type Collection interface {
	Add(p palette.Palette) error
	List() []palette.Palette
	Remove(id string) error
	Clear() error
	Subscribe(fn func()) (unsubscribe func())
}

// Store is a Collection persisted as one JSON array under StorageKey.
// Every mutation rewrites the whole array; concurrent writers from several
// processes race and the last one wins.
type Store struct {
	backend storage.Store
	logger  *slog.Logger
}

// New creates a Store over backend. A nil logger discards log output.
func New(backend storage.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{backend: backend, logger: logger}
}

// Add puts p at the front, dropping entries past MaxEntries.
func (s *Store) Add(p palette.Palette) error {
	current := s.List()

	updated := make([]palette.Palette, 0, MaxEntries)
	updated = append(updated, p)
	updated = append(updated, current...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}

	if err := s.save(updated); err != nil {
		return fmt.Errorf("add palette %s: %w", p.ID, err)
	}
	s.logger.Debug("palette saved",
		slog.String("id", p.ID), slog.Int("entries", len(updated)))
	return nil
}

// List returns palettes most-recent-first. Missing or unreadable history is
// reported as empty, and entries without well-formed colors are left out.
func (s *Store) List() []palette.Palette {
	raw, ok, err := s.backend.Get(StorageKey)
	if err != nil {
		s.logger.Warn("history unreadable, treating as empty", slog.String("error", err.Error()))
		return []palette.Palette{}
	}
	if !ok || raw == "" {
		return []palette.Palette{}
	}

	var palettes []palette.Palette
	if err := json.Unmarshal([]byte(raw), &palettes); err != nil {
		s.logger.Warn("history corrupt, treating as empty", slog.String("error", err.Error()))
		return []palette.Palette{}
	}

	valid := make([]palette.Palette, 0, len(palettes))
	for _, p := range palettes {
		if len(p.Colors) == 0 {
			s.logger.Warn("history entry has no colors, skipping", slog.String("id", p.ID))
			continue
		}
		if err := palette.ValidateColors(p.Colors, len(p.Colors)); err != nil {
			s.logger.Warn("history entry invalid, skipping",
				slog.String("id", p.ID), slog.String("error", err.Error()))
			continue
		}
		valid = append(valid, p)
	}
	return valid
}

// Get returns the palette with the given id.
func (s *Store) Get(id string) (palette.Palette, bool) {
	for _, p := range s.List() {
		if p.ID == id {
			return p, true
		}
	}
	return palette.Palette{}, false
}

// Remove drops the palette with id. Unknown ids leave the history untouched.
func (s *Store) Remove(id string) error {
	current := s.List()

	kept := make([]palette.Palette, 0, len(current))
	for _, p := range current {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(current) {
		return nil
	}

	if err := s.save(kept); err != nil {
		return fmt.Errorf("remove palette %s: %w", id, err)
	}
	s.logger.Debug("palette removed", slog.String("id", id))
	return nil
}

// Clear empties the history.
func (s *Store) Clear() error {
	if err := s.backend.Remove(StorageKey); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.logger.Debug("history cleared")
	return nil
}

// Subscribe calls fn after every change to the history, including changes
// made by other processes when the backend reports them.
func (s *Store) Subscribe(fn func()) func() {
	return s.backend.Watch(StorageKey, fn)
}

func (s *Store) save(palettes []palette.Palette) error {
	data, err := json.Marshal(palettes)
	if err != nil {
		return err
	}
	return s.backend.Set(StorageKey, string(data))
}
