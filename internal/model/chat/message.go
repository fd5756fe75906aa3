package chat

import "encoding/json"

// Role identifies who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r may appear in a conversation log.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is the role/content pair forwarded to the completion API.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatMessage is a timestamped turn as shown in the conversation view.
type ChatMessage struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// LogMessage is a ChatMessage stored in the local log.
type LogMessage struct {
	ChatMessage
	ID string `json:"id"`
}

// Turn drops the timestamp.
func (m ChatMessage) Turn() Turn {
	return Turn{Role: m.Role, Content: m.Content}
}

// looseMessage decodes any JSON object without enforcing field types, so that
// entries written by older or tampered clients can be inspected one field at a time.
type looseMessage struct {
	Role      any `json:"role"`
	Content   any `json:"content"`
	CreatedAt any `json:"createdAt"`
	ID        any `json:"id"`
}

func decodeLoose(raw json.RawMessage) (looseMessage, bool) {
	var item looseMessage
	if err := json.Unmarshal(raw, &item); err != nil {
		return looseMessage{}, false
	}
	return item, true
}

func (m looseMessage) role() (Role, bool) {
	s, ok := m.Role.(string)
	if !ok || !Role(s).Valid() {
		return "", false
	}
	return Role(s), true
}

// ParseTurns keeps the elements of raw that have a valid role and string content.
// A raw value that is not a JSON array yields nil.
func ParseTurns(raw json.RawMessage) []Turn {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	turns := make([]Turn, 0, len(items))
	for _, rawItem := range items {
		item, ok := decodeLoose(rawItem)
		if !ok {
			continue
		}
		role, ok := item.role()
		if !ok {
			continue
		}
		content, ok := item.Content.(string)
		if !ok {
			continue
		}
		turns = append(turns, Turn{Role: role, Content: content})
	}
	return turns
}

// StoredEntry is a log element recovered from persisted JSON. ID is empty when the
// stored element had no usable id.
type StoredEntry struct {
	ChatMessage
	ID string
}

// ParseStoredLog decodes a persisted log array, dropping elements that are not
// objects or that lack a valid role, string content or string createdAt.
// The error is non-nil only when raw is not a JSON array at all.
func ParseStoredLog(raw []byte) ([]StoredEntry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	entries := make([]StoredEntry, 0, len(items))
	for _, rawItem := range items {
		item, ok := decodeLoose(rawItem)
		if !ok {
			continue
		}
		role, ok := item.role()
		if !ok {
			continue
		}
		content, ok := item.Content.(string)
		if !ok {
			continue
		}
		createdAt, ok := item.CreatedAt.(string)
		if !ok {
			continue
		}
		id, _ := item.ID.(string)
		entries = append(entries, StoredEntry{
			ChatMessage: ChatMessage{Role: role, Content: content, CreatedAt: createdAt},
			ID:          id,
		})
	}
	return entries, nil
}
