package memory

import (
	"sync"

	"github.com/sm-social/chatcore/internal/domain"
)

// GroupDirectory holds the standalone group collection (group chats with no
// record in the unified chat collection).
type GroupDirectory struct {
	mu     sync.RWMutex
	groups map[domain.GroupID]*domain.Group
	order  []domain.GroupID
}

func NewGroupDirectory() *GroupDirectory {
	return &GroupDirectory{
		groups: make(map[domain.GroupID]*domain.Group),
	}
}

func (d *GroupDirectory) GetGroup(id domain.GroupID) (*domain.Group, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	g, ok := d.groups[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}

	cp := *g
	return &cp, nil
}

func (d *GroupDirectory) ListGroups() ([]*domain.Group, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*domain.Group, 0, len(d.order))
	for _, id := range d.order {
		cp := *d.groups[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (d *GroupDirectory) AddGroup(g *domain.Group) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.groups[g.ID]; exists {
		return
	}

	cp := *g
	d.groups[g.ID] = &cp
	d.order = append(d.order, g.ID)
}
