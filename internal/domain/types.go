package domain

import "time"

type ConversationID string
type EventID string
type GroupID string
type MessageID string
type SessionID string
type UserID string

type Timestamp = time.Time

// Kind classifies a conversation. It is derived once by the resolver from
// the identifier and the backing collections, never set independently.
type Kind string

const (
	KindDirect      Kind = "direct"
	KindGroup       Kind = "group"
	KindEventLinked Kind = "event"
	KindAssistant   Kind = "assistant"
)

// Role tags a turn sent to the completion collaborator.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
