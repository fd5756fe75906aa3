// Package chatlog keeps the client's conversation log and mirrors it to local storage.
package chatlog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/storage"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/log"
)

// StorageKey is the local storage key holding the JSON log array.
const StorageKey = "calmcounsel-log-messages"

// Store owns the ordered log. A nil storage means nothing is read or written.
type Store struct {
	mu       sync.Mutex
	storage  storage.LocalStorage
	state    storage.LoadState
	messages []chat.LogMessage
	now      func() time.Time
}

// New returns an unloaded Store backed by ls.
func New(ls storage.LocalStorage) *Store {
	return &Store{storage: ls, now: time.Now}
}

// State reports whether EnsureLoaded has already run.
func (s *Store) State() storage.LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// EnsureLoaded reads the persisted log the first time it is called. Unreadable or
// malformed data leaves the log empty; it is logged but never returned.
func (s *Store) EnsureLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil || s.state == storage.Loaded {
		return
	}
	s.state = storage.Loaded

	raw, ok, err := s.storage.GetItem(StorageKey)
	if err != nil {
		log.Warnw("[chatlog] discarding log, storage read failed", "error", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	entries, err := chat.ParseStoredLog([]byte(raw))
	if err != nil {
		log.Warnw("[chatlog] discarding unreadable log cache", "error", err, "bytes", len(raw))
		return
	}

	seen := make(map[string]struct{}, len(entries))
	messages := make([]chat.LogMessage, 0, len(entries))
	for _, entry := range entries {
		id := entry.ID
		if _, dup := seen[id]; id == "" || dup {
			id = entry.CreatedAt + "-" + randomSuffix()
		}
		seen[id] = struct{}{}
		messages = append(messages, chat.LogMessage{ChatMessage: entry.ChatMessage, ID: id})
	}
	s.messages = messages
}

// Messages returns a copy of the log in chronological order.
func (s *Store) Messages() []chat.LogMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.LogMessage(nil), s.messages...)
}

// Turns projects the log onto the role/content history sent to the chat endpoint.
func (s *Store) Turns() []chat.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]chat.Turn, 0, len(s.messages))
	for _, m := range s.messages {
		turns = append(turns, m.Turn())
	}
	return turns
}

// AddLogMessage appends message under a fresh id and persists the whole log.
// The in-memory log is updated even when persisting fails.
func (s *Store) AddLogMessage(message chat.ChatMessage) (chat.LogMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := chat.LogMessage{ChatMessage: message, ID: s.newID()}
	next := make([]chat.LogMessage, len(s.messages), len(s.messages)+1)
	copy(next, s.messages)
	s.messages = append(next, entry)

	return entry, s.save()
}

// RemoveLogMessages drops every entry whose id is in ids. Unknown ids are ignored.
func (s *Store) RemoveLogMessages(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]chat.LogMessage, 0, len(s.messages))
	for _, m := range s.messages {
		if _, drop := idSet[m.ID]; !drop {
			kept = append(kept, m)
		}
	}
	s.messages = kept

	return s.save()
}

func (s *Store) save() error {
	if s.storage == nil {
		return nil
	}

	data, err := json.Marshal(s.messages)
	if err != nil {
		return fmt.Errorf("failed to encode log: %w", err)
	}
	if err := s.storage.SetItem(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist log: %w", err)
	}
	return nil
}

func (s *Store) newID() string {
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + randomSuffix()
}

func randomSuffix() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:])
}
