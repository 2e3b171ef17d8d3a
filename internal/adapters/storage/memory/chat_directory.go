package memory

import (
	"sync"

	"github.com/sm-social/chatcore/internal/domain"
)

// ChatDirectory is the unified direct/group chat collection. Insertion
// order is membership order for listings.
type ChatDirectory struct {
	mu    sync.RWMutex
	chats map[domain.ConversationID]*domain.ChatRecord
	order []domain.ConversationID
}

func NewChatDirectory() *ChatDirectory {
	return &ChatDirectory{
		chats: make(map[domain.ConversationID]*domain.ChatRecord),
	}
}

func (d *ChatDirectory) GetChat(id domain.ConversationID) (*domain.ChatRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.chats[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}

	cp := *rec
	return &cp, nil
}

func (d *ChatDirectory) ListChats() ([]*domain.ChatRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*domain.ChatRecord, 0, len(d.order))
	for _, id := range d.order {
		cp := *d.chats[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (d *ChatDirectory) AddChat(rec *domain.ChatRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.chats[rec.ID]; exists {
		return domain.ErrChatExists
	}

	cp := *rec
	d.chats[rec.ID] = &cp
	d.order = append(d.order, rec.ID)
	return nil
}
