package assistant_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm-social/chatcore/internal/adapters/completion"
	"github.com/sm-social/chatcore/internal/adapters/storage/memory"
	"github.com/sm-social/chatcore/internal/app/assistant"
	"github.com/sm-social/chatcore/internal/app/messaging"
	"github.com/sm-social/chatcore/internal/domain"
)

type completionFunc func(ctx context.Context, turns []domain.Turn) (string, error)

func (f completionFunc) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	return f(ctx, turns)
}

type fixture struct {
	svc      *assistant.Service
	sessions *memory.SessionStore
	messages *memory.MessageStore
	msgSvc   *messaging.Service
}

func newFixture(t *testing.T, client domain.CompletionClient) *fixture {
	t.Helper()

	sessions := memory.NewSessionStore()
	messages := memory.NewMessageStore()
	profiles := memory.NewProfileSource(domain.Participant{ID: "u-1", Name: "You"})
	msgSvc := messaging.NewService(messages, profiles)

	return &fixture{
		svc:      assistant.NewService(sessions, msgSvc, client, messages),
		sessions: sessions,
		messages: messages,
		msgSvc:   msgSvc,
	}
}

func TestCreateSessionBecomesActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	session, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New Chat", session.Title)

	active, ok := f.svc.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, session.ID, active.ID)
}

func TestCreateSessionSwitchesActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	first, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	second, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	active, ok := f.svc.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, second.ID, active.ID)
}

func TestSendTurnSuccess(t *testing.T) {
	ctx := context.Background()
	mock := completion.NewMock()
	mock.Reply = "Try the quiz at The Font."
	f := newFixture(t, mock)

	_, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	out, err := f.svc.SendTurn(ctx, "hello")
	require.NoError(t, err)

	require.Len(t, out.Log, 2)
	assert.Equal(t, "hello", out.UserMessage.Text)
	assert.True(t, out.UserMessage.Own)
	assert.Equal(t, "Try the quiz at The Font.", out.AssistantMessage.Text)
	assert.False(t, out.AssistantMessage.Own)
	assert.Equal(t, "hello", out.Session.Title)
}

func TestSendTurnCompletionFailure(t *testing.T) {
	ctx := context.Background()
	mock := completion.NewMock()
	mock.Err = errors.New("upstream down")
	f := newFixture(t, mock)

	_, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	out, err := f.svc.SendTurn(ctx, "hello")
	require.NoError(t, err, "completion failure must not surface as an error")

	// Log ends with exactly the user turn and the error placeholder.
	require.Len(t, out.Log, 2)
	assert.Equal(t, "hello", out.Log[0].Text)
	assert.Contains(t, out.Log[1].Text, "trouble connecting")
	assert.False(t, out.Log[1].Own)
	assert.Equal(t, "hello", out.Session.Title)
}

func TestSendTurnTitleTruncation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	_, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	long := strings.Repeat("x", 48)
	out, err := f.svc.SendTurn(ctx, long)
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("x", 30)+"...", out.Session.Title)
}

func TestSendTurnTitleOnlyFromFirstMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	_, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = f.svc.SendTurn(ctx, "first")
	require.NoError(t, err)
	out, err := f.svc.SendTurn(ctx, "second")
	require.NoError(t, err)

	assert.Equal(t, "first", out.Session.Title)
}

func TestSendTurnBlankText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	_, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = f.svc.SendTurn(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestSendTurnWithoutActiveSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	_, err := f.svc.SendTurn(ctx, "hello")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSendTurnBuildsAlternatingTurns(t *testing.T) {
	ctx := context.Background()

	var got []domain.Turn
	client := completionFunc(func(ctx context.Context, turns []domain.Turn) (string, error) {
		got = append([]domain.Turn(nil), turns...)
		return "ok", nil
	})
	f := newFixture(t, client)

	_, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = f.svc.SendTurn(ctx, "first")
	require.NoError(t, err)
	_, err = f.svc.SendTurn(ctx, "second")
	require.NoError(t, err)

	// system + first/reply + second
	require.Len(t, got, 4)
	assert.Equal(t, domain.RoleSystem, got[0].Role)
	assert.Equal(t, domain.RoleUser, got[1].Role)
	assert.Equal(t, "first", got[1].Content)
	assert.Equal(t, domain.RoleAssistant, got[2].Role)
	assert.Equal(t, domain.RoleUser, got[3].Role)
	assert.Equal(t, "second", got[3].Content)
}

func TestSendTurnToTargetsNamedSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	first, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	second, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	// second is active; the turn is addressed to first.
	out, err := f.svc.SendTurnTo(ctx, first.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, first.ID, out.Session.ID)

	log, err := f.messages.Messages(domain.ConversationID(first.ID))
	require.NoError(t, err)
	assert.Len(t, log, 2)

	otherLog, err := f.messages.Messages(domain.ConversationID(second.ID))
	require.NoError(t, err)
	assert.Empty(t, otherLog)

	active, ok := f.svc.ActiveSession()
	require.True(t, ok, "an addressed turn must not move the active pointer")
	assert.Equal(t, second.ID, active.ID)
}

func TestSendTurnToUnknownSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	_, err := f.svc.SendTurnTo(ctx, "missing", "hello")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// A select landing while another session's turn is in flight must not
// redirect that turn.
func TestSendTurnToUnaffectedByConcurrentSelect(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, nil)
	var other domain.SessionID
	client := completionFunc(func(ctx context.Context, turns []domain.Turn) (string, error) {
		_, _, err := f.svc.SelectSession(ctx, other)
		require.NoError(t, err)
		return "reply", nil
	})
	f.svc = assistant.NewService(f.sessions, f.msgSvc, client, f.messages)

	target, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	session, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	other = session.ID

	out, err := f.svc.SendTurnTo(ctx, target.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, target.ID, out.Session.ID)

	log, err := f.messages.Messages(domain.ConversationID(target.ID))
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, "hello", log[0].Text)
	assert.Equal(t, "reply", log[1].Text)

	otherLog, err := f.messages.Messages(domain.ConversationID(other))
	require.NoError(t, err)
	assert.Empty(t, otherLog)
}

func TestSelectSessionHydratesLog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	created, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = f.svc.SendTurn(ctx, "hello")
	require.NoError(t, err)

	// Switch away, then select the original session again.
	_, err = f.svc.CreateSession(ctx)
	require.NoError(t, err)

	session, log, err := f.svc.SelectSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, session.ID)
	assert.Len(t, log, 2)

	active, ok := f.svc.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, created.ID, active.ID)
}

func TestSelectUnknownSessionKeepsState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	created, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	_, _, err = f.svc.SelectSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	active, ok := f.svc.ActiveSession()
	require.True(t, ok, "failed select must not clear the active pointer")
	assert.Equal(t, created.ID, active.ID)
}

func TestDeleteActiveSessionClearsPointer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	session, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSession(ctx, session.ID))

	_, ok := f.svc.ActiveSession()
	assert.False(t, ok)

	_, err = f.svc.SendTurn(ctx, "hello")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestDeleteOtherSessionKeepsPointer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	first, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	second, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSession(ctx, first.ID))

	active, ok := f.svc.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, second.ID, active.ID)
}

func TestDeleteUnknownSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	err := f.svc.DeleteSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestDeleteSessionDropsLog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	session, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = f.svc.SendTurn(ctx, "hello")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSession(ctx, session.ID))

	log, err := f.messages.Messages(domain.ConversationID(session.ID))
	require.NoError(t, err)
	assert.Empty(t, log)
}

// A reply that arrives after the user has switched sessions must land in
// the log of the session the turn was sent from.
func TestLateReplyTargetsOriginalSession(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, nil)
	var original domain.SessionID
	client := completionFunc(func(ctx context.Context, turns []domain.Turn) (string, error) {
		// Simulate the user switching to a fresh session while the
		// completion is in flight.
		_, err := f.svc.CreateSession(ctx)
		require.NoError(t, err)
		return "late reply", nil
	})
	f.svc = assistant.NewService(f.sessions, f.msgSvc, client, f.messages)

	session, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	original = session.ID

	out, err := f.svc.SendTurn(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, original, out.Session.ID)

	log, err := f.messages.Messages(domain.ConversationID(original))
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, "late reply", log[1].Text)
}

// A reply whose session was deleted mid-flight is discarded instead of
// resurrecting the dropped log.
func TestLateReplyAfterDeletionIsDiscarded(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, nil)
	var target domain.SessionID
	client := completionFunc(func(ctx context.Context, turns []domain.Turn) (string, error) {
		require.NoError(t, f.svc.DeleteSession(ctx, target))
		return "too late", nil
	})
	f.svc = assistant.NewService(f.sessions, f.msgSvc, client, f.messages)

	session, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	target = session.ID

	_, err = f.svc.SendTurn(ctx, "hello")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	log, err := f.messages.Messages(domain.ConversationID(target))
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestListSessionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, completion.NewMock())

	first, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	second, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)

	// Activity on the older session moves it to the front.
	_, _, err = f.svc.SelectSession(ctx, first.ID)
	require.NoError(t, err)
	_, err = f.svc.SendTurn(ctx, "bump")
	require.NoError(t, err)

	sessions, err := f.svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, first.ID, sessions[0].ID)
	assert.Equal(t, second.ID, sessions[1].ID)
}
