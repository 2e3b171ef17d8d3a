package domain

import "context"

// Turn is one role-tagged entry of the history sent to the completion
// collaborator.
type Turn struct {
	Role    Role
	Content string
}

// CompletionClient defines how the core talks to the external AI completion
// service. One request, one reply; no retry policy at this level.
type CompletionClient interface {
	Complete(ctx context.Context, turns []Turn) (string, error)
}

// ChatDirectory is the unified direct/group chat collection consulted by
// resolution rule 1.
type ChatDirectory interface {
	GetChat(id ConversationID) (*ChatRecord, error)
	ListChats() ([]*ChatRecord, error)
	AddChat(rec *ChatRecord) error
}

// GroupDirectory is the standalone group collection consulted by resolution
// rule 3.
type GroupDirectory interface {
	GetGroup(id GroupID) (*Group, error)
	ListGroups() ([]*Group, error)
}

// EventDirectory supplies event records. The resolver reads them; only the
// events service mutates attendance.
type EventDirectory interface {
	GetEvent(id EventID) (*Event, error)
	ListEvents() ([]*Event, error)
	CreateEvent(ev *Event) error
	UpdateEvent(ev *Event) error
}

// MessageStore owns one append-only log per storage key. Reading a missing
// key yields an empty log without creating an entry; a log becomes
// persistent on first append.
type MessageStore interface {
	Append(key ConversationID, msg *Message) error
	Messages(key ConversationID) ([]*Message, error)
}

// SessionStore holds assistant sessions, listed most-recent-first.
type SessionStore interface {
	CreateSession(s *Session) error
	UpdateSession(s *Session) error
	GetSession(id SessionID) (*Session, error)
	ListSessions() ([]*Session, error)
	DeleteSession(id SessionID) error
}

// ProfileSource is the read-only identity collaborator. The current user is
// an external fact, never derived internally.
type ProfileSource interface {
	CurrentUser() Participant
	GetUser(id UserID) (Participant, error)
	ListUsers() ([]Participant, error)
}
