package domain

// Participant is a user as seen inside a conversation. Immutable once
// constructed; refreshed wholesale from the profile source.
type Participant struct {
	ID     UserID
	Name   string
	Avatar string
	Online bool
}

// Message is one entry in a conversation log. Once appended it is never
// mutated or removed.
type Message struct {
	ID        MessageID
	Author    Participant
	Text      string
	CreatedAt Timestamp

	// Own marks messages authored by the local user.
	Own bool
}

// Conversation is the resolved identity of a message thread. Kind and the
// optional EventID are produced by the resolver exactly once; downstream
// code consumes them as typed values and never re-parses the identifier.
type Conversation struct {
	ID           ConversationID
	Kind         Kind
	Name         string
	Participants []Participant

	// EventID is set only for KindEventLinked and names the event whose
	// attendees back this conversation.
	EventID EventID

	Unread int
}

// ChatRecord is an entry in the chat directory (the unified direct/group
// collection the resolver consults first).
type ChatRecord struct {
	ID           ConversationID
	Kind         Kind // KindDirect or KindGroup
	Name         string
	Avatar       string
	Participants []Participant
	Unread       int
	Online       bool
}

// Group is an entry in the standalone group directory, covering group chats
// that have no record in the unified chat collection.
type Group struct {
	ID      GroupID
	Name    string
	Avatar  string
	Members []Participant
}
