// Package resolver maps opaque conversation identifiers to typed
// conversation metadata. Resolution is a pure function of the identifier
// and the current backing collections; the same id always resolves to the
// same kind.
package resolver

import (
	"strings"

	"github.com/sm-social/chatcore/internal/domain"
	"github.com/sm-social/chatcore/internal/observability"
)

const (
	// EventChatPrefix marks conversation ids that alias an event's chat.
	EventChatPrefix = "event-"

	eventChatSuffix = " Chat"
)

// EventConversationID returns the prefixed conversation id aliasing the
// given event's chat.
func EventConversationID(id domain.EventID) domain.ConversationID {
	return domain.ConversationID(EventChatPrefix + string(id))
}

type Resolver struct {
	chats  domain.ChatDirectory
	groups domain.GroupDirectory
	events domain.EventDirectory
}

func New(chats domain.ChatDirectory, groups domain.GroupDirectory, events domain.EventDirectory) *Resolver {
	return &Resolver{
		chats:  chats,
		groups: groups,
		events: events,
	}
}

// Resolve classifies id with fixed precedence: the chat directory first,
// then the event-prefixed form, then the standalone group directory. A miss
// on all three is terminal; no log is created for an unresolved id.
func (r *Resolver) Resolve(id domain.ConversationID) (*domain.Conversation, error) {
	if id == "" {
		observability.Resolutions.WithLabelValues("not_found").Inc()
		return nil, domain.ErrConversationNotFound
	}

	if rec, err := r.chats.GetChat(id); err == nil {
		observability.Resolutions.WithLabelValues(string(rec.Kind)).Inc()
		return &domain.Conversation{
			ID:           rec.ID,
			Kind:         rec.Kind,
			Name:         rec.Name,
			Participants: rec.Participants,
			Unread:       rec.Unread,
		}, nil
	}

	if raw, ok := strings.CutPrefix(string(id), EventChatPrefix); ok && raw != "" {
		if ev, err := r.events.GetEvent(domain.EventID(raw)); err == nil {
			observability.Resolutions.WithLabelValues(string(domain.KindEventLinked)).Inc()
			return &domain.Conversation{
				ID:           id,
				Kind:         domain.KindEventLinked,
				Name:         ev.Title + eventChatSuffix,
				Participants: ev.Attendees,
				EventID:      ev.ID,
			}, nil
		}
	}

	if g, err := r.groups.GetGroup(domain.GroupID(id)); err == nil {
		observability.Resolutions.WithLabelValues(string(domain.KindGroup)).Inc()
		return &domain.Conversation{
			ID:           id,
			Kind:         domain.KindGroup,
			Name:         g.Name,
			Participants: g.Members,
		}, nil
	}

	observability.Resolutions.WithLabelValues("not_found").Inc()
	return nil, domain.ErrConversationNotFound
}
