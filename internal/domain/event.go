package domain

// Event is a social event record. The resolver reads events to back
// event-linked conversations; the events service mutates attendance.
type Event struct {
	ID          EventID
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Image       string
	Category    string
	Host        Participant
	Attendees   []Participant

	// MaxAttendees of 0 means unlimited.
	MaxAttendees int

	CreatedAt Timestamp
}

// IsFull reports whether the event has reached its attendee cap.
func (e *Event) IsFull() bool {
	return e.MaxAttendees > 0 && len(e.Attendees) >= e.MaxAttendees
}

// HasAttendee reports whether the given user is on the attendee list.
func (e *Event) HasAttendee(id UserID) bool {
	for _, p := range e.Attendees {
		if p.ID == id {
			return true
		}
	}
	return false
}
