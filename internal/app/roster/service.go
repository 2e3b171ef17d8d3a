// Package roster lists chat records, standalone groups, and known users,
// and starts new direct or group chats in the chat directory.
package roster

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sm-social/chatcore/internal/domain"
	"github.com/sm-social/chatcore/internal/observability"
)

type Service struct {
	chats    domain.ChatDirectory
	groups   domain.GroupDirectory
	profiles domain.ProfileSource
}

func NewService(chats domain.ChatDirectory, groups domain.GroupDirectory, profiles domain.ProfileSource) *Service {
	return &Service{
		chats:    chats,
		groups:   groups,
		profiles: profiles,
	}
}

func (s *Service) ListChats(ctx context.Context) ([]*domain.ChatRecord, error) {
	return s.chats.ListChats()
}

func (s *Service) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	return s.groups.ListGroups()
}

// ListUsers returns the users a new chat can be started with; the current
// user is excluded.
func (s *Service) ListUsers(ctx context.Context) ([]domain.Participant, error) {
	all, err := s.profiles.ListUsers()
	if err != nil {
		return nil, err
	}
	me := s.profiles.CurrentUser()
	out := make([]domain.Participant, 0, len(all))
	for _, u := range all {
		if u.ID == me.ID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

type StartChatInput struct {
	Kind      domain.Kind // KindDirect or KindGroup
	UserIDs   []domain.UserID
	GroupName string
}

// StartChat creates a chat record. Direct chats take exactly one other user
// and reuse an existing direct chat with that user instead of creating a
// duplicate. Group chats need a name and at least two other users.
func (s *Service) StartChat(ctx context.Context, in StartChatInput) (*domain.ChatRecord, error) {
	me := s.profiles.CurrentUser()

	switch in.Kind {
	case domain.KindDirect:
		if len(in.UserIDs) != 1 {
			return nil, errors.New("direct chats take exactly one other user")
		}
	case domain.KindGroup:
		if len(in.UserIDs) < 2 {
			return nil, errors.New("group chats require at least 2 other users")
		}
		if strings.TrimSpace(in.GroupName) == "" {
			return nil, errors.New("group chats require a name")
		}
	default:
		return nil, errors.Errorf("cannot start a chat of kind %q", in.Kind)
	}

	participants := []domain.Participant{me}
	for _, id := range in.UserIDs {
		u, err := s.profiles.GetUser(id)
		if err != nil {
			return nil, err
		}
		participants = append(participants, u)
	}

	if in.Kind == domain.KindDirect {
		if existing, err := s.findDirectWith(in.UserIDs[0]); err == nil {
			return existing, nil
		}
	}

	rec := &domain.ChatRecord{
		Kind:         in.Kind,
		Participants: participants,
	}
	if in.Kind == domain.KindDirect {
		rec.ID = domain.ConversationID("dm-" + uuid.NewString())
		rec.Name = participants[1].Name
		rec.Avatar = participants[1].Avatar
		rec.Online = participants[1].Online
	} else {
		rec.ID = domain.ConversationID("group-" + uuid.NewString())
		rec.Name = strings.TrimSpace(in.GroupName)
	}

	if err := s.chats.AddChat(rec); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("chat started",
		"chat_id", rec.ID, "kind", rec.Kind, "participants", len(rec.Participants))
	return rec, nil
}

// findDirectWith returns the existing direct chat involving the given user.
func (s *Service) findDirectWith(userID domain.UserID) (*domain.ChatRecord, error) {
	all, err := s.chats.ListChats()
	if err != nil {
		return nil, err
	}
	for _, rec := range all {
		if rec.Kind != domain.KindDirect {
			continue
		}
		for _, p := range rec.Participants {
			if p.ID == userID {
				return rec, nil
			}
		}
	}
	return nil, domain.ErrConversationNotFound
}
