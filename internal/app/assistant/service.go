// Package assistant manages ephemeral AI chat sessions: creation,
// selection, turns against the completion collaborator, and deletion. The
// active-session pointer is owned exclusively by this service.
package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sm-social/chatcore/internal/app/messaging"
	"github.com/sm-social/chatcore/internal/domain"
	"github.com/sm-social/chatcore/internal/observability"
)

const (
	defaultTitle = "New Chat"
	titleLimit   = 30

	systemPrompt = "You are a helpful and friendly AI assistant for the South Manchester Social app. " +
		"Your goal is to help users find events. Be concise and conversational."

	// errorReply stands in for the assistant's turn when the completion
	// collaborator fails; the user's own message is never rolled back.
	errorReply = "Sorry, I'm having a little trouble connecting right now. Please try again later."
)

// assistantAuthor is the fixed remote participant for assistant turns.
var assistantAuthor = domain.Participant{
	ID:     "assistant",
	Name:   "AI Assistant",
	Avatar: "🤖",
}

// LogDropper is the administrative hook for destroying a session's log
// along with the session. Not part of the MessageStore port.
type LogDropper interface {
	Drop(key domain.ConversationID)
}

type Service struct {
	sessions   domain.SessionStore
	messages   *messaging.Service
	completion domain.CompletionClient
	dropper    LogDropper
	now        func() time.Time

	mu     sync.Mutex
	active domain.SessionID // empty = NoActiveSession
}

func NewService(
	sessions domain.SessionStore,
	messages *messaging.Service,
	completion domain.CompletionClient,
	dropper LogDropper,
) *Service {
	return &Service{
		sessions:   sessions,
		messages:   messages,
		completion: completion,
		dropper:    dropper,
		now:        time.Now,
	}
}

// CreateSession starts a fresh session and makes it active regardless of
// prior state.
func (s *Service) CreateSession(ctx context.Context) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		ID:           domain.SessionID(uuid.NewString()),
		Title:        defaultTitle,
		CreatedAt:    now,
		LastActivity: now,
	}

	if err := s.sessions.CreateSession(session); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to create session", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.active = session.ID
	s.mu.Unlock()

	observability.LoggerFromContext(ctx).Info("session created", "session_id", session.ID)
	return session, nil
}

// SelectSession activates an existing session and hydrates its log. An
// unknown id leaves the prior state untouched.
func (s *Service) SelectSession(ctx context.Context, id domain.SessionID) (*domain.Session, []*domain.Message, error) {
	session, err := s.sessions.GetSession(id)
	if err != nil {
		return nil, nil, err
	}

	log, err := s.messages.Hydrate(ctx, messaging.HydrateInput{
		ConversationID: domain.ConversationID(id),
		Kind:           domain.KindAssistant,
	})
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	s.active = id
	s.mu.Unlock()

	return session, log, nil
}

// ActiveSession returns the currently active session, if any.
func (s *Service) ActiveSession() (*domain.Session, bool) {
	s.mu.Lock()
	id := s.active
	s.mu.Unlock()

	if id == "" {
		return nil, false
	}
	session, err := s.sessions.GetSession(id)
	if err != nil {
		return nil, false
	}
	return session, true
}

func (s *Service) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.ListSessions()
}

type SendTurnOutput struct {
	Session          *domain.Session
	UserMessage      *domain.Message
	AssistantMessage *domain.Message
	Log              []*domain.Message
}

// SendTurn appends a user turn to the active session. Callers that already
// know the session id should use SendTurnTo instead; the active pointer is
// per-process state, not per-request state.
func (s *Service) SendTurn(ctx context.Context, text string) (*SendTurnOutput, error) {
	s.mu.Lock()
	sessionID := s.active
	s.mu.Unlock()

	if sessionID == "" {
		return nil, domain.ErrNoActiveSession
	}
	return s.SendTurnTo(ctx, sessionID, text)
}

// SendTurnTo appends a user turn to the named session, then asks the
// completion collaborator for the assistant's reply. A failed completion
// yields the fixed error placeholder in the assistant's place; the user
// message always survives. The active pointer is never consulted or
// changed, so concurrent turns to different sessions cannot cross, and a
// reply that lands after the user has moved on is still recorded against
// the correct log.
func (s *Service) SendTurnTo(ctx context.Context, sessionID domain.SessionID, text string) (*SendTurnOutput, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, domain.ErrEmptyMessage
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)

	history, err := s.messages.Hydrate(ctx, messaging.HydrateInput{
		ConversationID: domain.ConversationID(sessionID),
		Kind:           domain.KindAssistant,
	})
	if err != nil {
		return nil, err
	}
	firstTurn := len(history) == 0

	userOut, err := s.messages.Append(ctx, messaging.AppendInput{
		ConversationID: domain.ConversationID(sessionID),
		Kind:           domain.KindAssistant,
		Text:           trimmed,
	})
	if err != nil {
		return nil, err
	}

	if firstTurn {
		session.Title = deriveTitle(trimmed)
	}
	session.LastMessage = trimmed
	session.LastActivity = s.now()
	if err := s.sessions.UpdateSession(session); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, err
	}

	turns := buildTurns(append(history, userOut.Message))

	start := s.now()
	reply, err := s.completion.Complete(ctx, turns)
	observability.CompletionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.CompletionRequests.WithLabelValues("error").Inc()
		log.Warn("completion failed, substituting error reply", "error", err)
		reply = errorReply
	} else {
		observability.CompletionRequests.WithLabelValues("ok").Inc()
	}

	return s.recordReply(ctx, sessionID, userOut.Message, reply)
}

// recordReply appends the assistant turn against the captured session id.
// If the session was deleted while the completion was in flight, the reply
// is discarded rather than resurrecting a dropped log.
func (s *Service) recordReply(
	ctx context.Context,
	sessionID domain.SessionID,
	userMsg *domain.Message,
	reply string,
) (*SendTurnOutput, error) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		observability.LoggerFromContext(ctx).Info("session gone before reply, dropping",
			"session_id", sessionID)
		return nil, err
	}

	author := assistantAuthor
	out, err := s.messages.Append(ctx, messaging.AppendInput{
		ConversationID: domain.ConversationID(sessionID),
		Kind:           domain.KindAssistant,
		Text:           reply,
		Author:         &author,
	})
	if err != nil {
		return nil, err
	}

	session.LastMessage = out.Message.Text
	session.LastActivity = s.now()
	if err := s.sessions.UpdateSession(session); err != nil {
		return nil, err
	}

	return &SendTurnOutput{
		Session:          session,
		UserMessage:      userMsg,
		AssistantMessage: out.Message,
		Log:              out.Log,
	}, nil
}

// DeleteSession removes the session and its log. Clearing the active
// pointer happens under the same critical section as the removal so the
// pointer can never reference a deleted session.
func (s *Service) DeleteSession(ctx context.Context, id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.DeleteSession(id); err != nil {
		return err
	}
	if s.dropper != nil {
		s.dropper.Drop(domain.ConversationID(id))
	}
	if s.active == id {
		s.active = ""
	}

	observability.LoggerFromContext(ctx).Info("session deleted", "session_id", id)
	return nil
}

// deriveTitle trims the first user message to a bounded length for the
// session list.
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleLimit {
		return text
	}
	return string(runes[:titleLimit]) + "..."
}

// buildTurns reframes the log as alternating user/assistant turns behind
// the fixed system instruction.
func buildTurns(log []*domain.Message) []domain.Turn {
	turns := make([]domain.Turn, 0, len(log)+1)
	turns = append(turns, domain.Turn{Role: domain.RoleSystem, Content: systemPrompt})
	for _, m := range log {
		role := domain.RoleAssistant
		if m.Own {
			role = domain.RoleUser
		}
		turns = append(turns, domain.Turn{Role: role, Content: m.Text})
	}
	return turns
}
