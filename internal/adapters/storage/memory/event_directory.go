package memory

import (
	"sync"

	"github.com/sm-social/chatcore/internal/domain"
)

type EventDirectory struct {
	mu     sync.RWMutex
	events map[domain.EventID]*domain.Event
	order  []domain.EventID
}

func NewEventDirectory() *EventDirectory {
	return &EventDirectory{
		events: make(map[domain.EventID]*domain.Event),
	}
}

func (d *EventDirectory) GetEvent(id domain.EventID) (*domain.Event, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ev, ok := d.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}

	return copyEvent(ev), nil
}

func (d *EventDirectory) ListEvents() ([]*domain.Event, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*domain.Event, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, copyEvent(d.events[id]))
	}
	return out, nil
}

func (d *EventDirectory) CreateEvent(ev *domain.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.events[ev.ID]; exists {
		return domain.ErrEventExists
	}

	d.events[ev.ID] = copyEvent(ev)
	d.order = append(d.order, ev.ID)
	return nil
}

func (d *EventDirectory) UpdateEvent(ev *domain.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.events[ev.ID]; !exists {
		return domain.ErrEventNotFound
	}

	d.events[ev.ID] = copyEvent(ev)
	return nil
}

// copyEvent deep-copies the attendee slice so callers cannot mutate stored
// state behind the lock.
func copyEvent(ev *domain.Event) *domain.Event {
	cp := *ev
	cp.Attendees = make([]domain.Participant, len(ev.Attendees))
	copy(cp.Attendees, ev.Attendees)
	return &cp
}
