package domain

// Session is an ephemeral assistant conversation. Its message log lives in
// the message store keyed by the session id; the session itself only carries
// identity and display metadata.
type Session struct {
	ID        SessionID
	Title     string
	CreatedAt Timestamp

	// LastActivity is bumped on every turn and drives list ordering.
	LastActivity Timestamp

	// LastMessage mirrors the text of the most recent turn for list display.
	LastMessage string
}
