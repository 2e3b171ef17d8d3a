package memory

import (
	"sync"

	"github.com/sm-social/chatcore/internal/domain"
)

// MessageStore keeps one append-only log per storage key. Reads never
// create an entry; the absent → present transition happens on first append.
type MessageStore struct {
	mu   sync.RWMutex
	logs map[domain.ConversationID][]*domain.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		logs: make(map[domain.ConversationID][]*domain.Message),
	}
}

// Append adds msg to the log under key, creating the log if absent. The
// get-or-create and the append happen under one lock acquisition.
func (s *MessageStore) Append(key domain.ConversationID, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs[key] = append(s.logs[key], msg)
	return nil
}

// Messages returns a copy of the log under key; missing keys yield an empty
// log and leave the map untouched.
func (s *MessageStore) Messages(key domain.ConversationID) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[key]
	out := make([]*domain.Message, len(log))
	copy(out, log)
	return out, nil
}

// Drop removes the log under key. Administrative: only the assistant
// service uses it when destroying a session, it is not part of the
// MessageStore port.
func (s *MessageStore) Drop(key domain.ConversationID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.logs, key)
}
