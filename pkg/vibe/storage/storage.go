// Package storage provides the small persistent key/value store palettes are
// kept in. Every key holds one text blob that is read and written whole.
package storage

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidKey is returned for keys that cannot name a stored entry.
var ErrInvalidKey = errors.New("invalid storage key")

// Store is a string key/value store whose writers notify watchers.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	// Set replaces the value for key.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Watch calls fn after every change to key. The returned func stops it.
	Watch(key string, fn func()) (cancel func())
}

// ValidateKey rejects keys that are empty, hidden or contain path elements.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return ErrInvalidKey
	case strings.HasPrefix(key, "."):
		return ErrInvalidKey
	case strings.ContainsAny(key, `/\`+"\x00"):
		return ErrInvalidKey
	}
	return nil
}

type observers struct {
	mu   sync.Mutex
	next int
	fns  map[string]map[int]func()
}

func (o *observers) add(key string, fn func()) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fns == nil {
		o.fns = make(map[string]map[int]func())
	}
	if o.fns[key] == nil {
		o.fns[key] = make(map[int]func())
	}
	id := o.next
	o.next++
	o.fns[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.fns[key], id)
		})
	}
}

// watched reports whether key has at least one watcher.
func (o *observers) watched(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fns[key]) > 0
}

// notify runs the watchers of key outside the lock, in registration order.
func (o *observers) notify(key string) {
	o.mu.Lock()
	ids := make([]int, 0, len(o.fns[key]))
	for id := range o.fns[key] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, o.fns[key][id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
