package domain

import "errors"

var (
	// ErrEmptyMessage rejects a message whose text is blank after trimming.
	ErrEmptyMessage = errors.New("message text is empty")

	// ErrConversationNotFound means an identifier resolved to no known
	// conversation. Terminal; no log is created for it.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrSessionNotFound means the assistant session id is unknown.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoActiveSession rejects a turn sent with no session selected.
	ErrNoActiveSession = errors.New("no active session")

	ErrEmptyTitle    = errors.New("event title is empty")
	ErrEventNotFound = errors.New("event not found")
	ErrEventFull     = errors.New("event is at capacity")
	ErrEventExists   = errors.New("event already exists")
	ErrChatExists    = errors.New("chat already exists")
	ErrUserNotFound  = errors.New("user not found")
)
