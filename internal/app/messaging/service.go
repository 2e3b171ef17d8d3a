// Package messaging owns read and write access to conversation logs. The
// storage key is derived from the resolved kind exactly once: event-linked
// conversations are keyed by the raw event id so the prefixed chat id and
// the bare event id observe the same log.
package messaging

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sm-social/chatcore/internal/domain"
	"github.com/sm-social/chatcore/internal/observability"
)

type Service struct {
	store    domain.MessageStore
	profiles domain.ProfileSource
	now      func() time.Time
}

func NewService(store domain.MessageStore, profiles domain.ProfileSource) *Service {
	return &Service{
		store:    store,
		profiles: profiles,
		now:      time.Now,
	}
}

type HydrateInput struct {
	ConversationID domain.ConversationID
	Kind           domain.Kind
	EventID        domain.EventID
}

// Hydrate returns the log for the conversation, empty if nothing has been
// appended yet. Reading never creates a log.
func (s *Service) Hydrate(ctx context.Context, in HydrateInput) ([]*domain.Message, error) {
	return s.store.Messages(logKey(in.ConversationID, in.Kind, in.EventID))
}

type AppendInput struct {
	ConversationID domain.ConversationID
	Kind           domain.Kind
	EventID        domain.EventID
	Text           string

	// Author overrides the local user as message author when non-nil.
	Author *domain.Participant
}

type AppendOutput struct {
	Message *domain.Message
	Log     []*domain.Message
}

// Append validates, constructs and appends a message, returning the
// appended message and the full updated log for immediate re-render.
func (s *Service) Append(ctx context.Context, in AppendInput) (*AppendOutput, error) {
	log := observability.LoggerFromContext(ctx).With(
		"conversation_id", in.ConversationID,
		"kind", in.Kind,
	)

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	author := s.profiles.CurrentUser()
	own := true
	if in.Author != nil {
		author = *in.Author
		own = author.ID == s.profiles.CurrentUser().ID
	}

	msg := &domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Author:    author,
		Text:      text,
		CreatedAt: s.now(),
		Own:       own,
	}

	key := logKey(in.ConversationID, in.Kind, in.EventID)
	if err := s.store.Append(key, msg); err != nil {
		log.Error("failed to append message", "error", err)
		return nil, err
	}

	observability.MessagesAppended.WithLabelValues(string(in.Kind)).Inc()

	updated, err := s.store.Messages(key)
	if err != nil {
		return nil, err
	}

	log.Info("message appended", "message_id", msg.ID, "log_len", len(updated))

	return &AppendOutput{Message: msg, Log: updated}, nil
}

// logKey derives the storage key from the resolved classification. Kind is
// trusted as produced by the resolver; the identifier is never re-parsed.
func logKey(id domain.ConversationID, kind domain.Kind, eventID domain.EventID) domain.ConversationID {
	if kind == domain.KindEventLinked && eventID != "" {
		return domain.ConversationID(eventID)
	}
	return id
}
