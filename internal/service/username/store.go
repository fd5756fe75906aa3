// Package username keeps the user's display name in local storage.
package username

import (
	"strings"
	"sync"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/storage"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/log"
)

// StorageKey holds the raw, trimmed name. It is not JSON encoded.
const StorageKey = "calmcounsel-user-name"

// Store owns the display name. A nil storage keeps the name in memory only.
type Store struct {
	mu      sync.Mutex
	storage storage.LocalStorage
	state   storage.LoadState
	name    string
}

func New(ls storage.LocalStorage) *Store {
	return &Store{storage: ls}
}

// UserName returns the current name, possibly empty.
func (s *Store) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Loaded reports whether EnsureLoaded has run against storage.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == storage.Loaded
}

// EnsureLoaded reads the stored name once. A blank stored value means no name is set.
func (s *Store) EnsureLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil || s.state == storage.Loaded {
		return
	}
	s.state = storage.Loaded

	stored, ok, err := s.storage.GetItem(StorageKey)
	if err != nil {
		log.Warnw("[username] ignoring stored name, storage read failed", "error", err)
		return
	}
	if trimmed := strings.TrimSpace(stored); ok && trimmed != "" {
		s.name = trimmed
	}
}

// SaveUserName trims name and stores it. An empty result clears the name.
func (s *Store) SaveUserName(name string) error {
	trimmed := strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = trimmed
	if s.storage == nil {
		return nil
	}
	return s.storage.SetItem(StorageKey, trimmed)
}
