package memory

import (
	"sync"

	"github.com/sm-social/chatcore/internal/domain"
)

// ProfileSource is a fixed in-memory identity source. The current user is
// set once at construction, matching the read-only auth collaborator
// boundary.
type ProfileSource struct {
	mu      sync.RWMutex
	current domain.Participant
	users   map[domain.UserID]domain.Participant
	order   []domain.UserID
}

func NewProfileSource(current domain.Participant) *ProfileSource {
	s := &ProfileSource{
		current: current,
		users:   make(map[domain.UserID]domain.Participant),
	}
	s.users[current.ID] = current
	s.order = append(s.order, current.ID)
	return s
}

func (s *ProfileSource) CurrentUser() domain.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

func (s *ProfileSource) GetUser(id domain.UserID) (domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return domain.Participant{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *ProfileSource) ListUsers() ([]domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Participant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id])
	}
	return out, nil
}

func (s *ProfileSource) AddUser(u domain.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; exists {
		return
	}
	s.users[u.ID] = u
	s.order = append(s.order, u.ID)
}
