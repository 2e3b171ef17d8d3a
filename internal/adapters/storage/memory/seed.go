package memory

import (
	"time"

	"github.com/sm-social/chatcore/internal/domain"
)

// Stores bundles the in-memory collections the demo seed populates.
type Stores struct {
	Profiles *ProfileSource
	Chats    *ChatDirectory
	Groups   *GroupDirectory
	Events   *EventDirectory
	Messages *MessageStore
	Sessions *SessionStore
}

// NewStores builds empty collections with the given local user.
func NewStores(current domain.Participant) *Stores {
	return &Stores{
		Profiles: NewProfileSource(current),
		Chats:    NewChatDirectory(),
		Groups:   NewGroupDirectory(),
		Events:   NewEventDirectory(),
		Messages: NewMessageStore(),
		Sessions: NewSessionStore(),
	}
}

// SeedDemo loads a small demo dataset so the API is explorable without a
// backend: a handful of users, events around South Manchester, one direct
// chat, one group, and a starter message per log.
func (s *Stores) SeedDemo() {
	now := time.Now()

	sam := domain.Participant{ID: "u-2", Name: "Sam Ridley", Avatar: "https://i.pravatar.cc/150?u=sam", Online: true}
	priya := domain.Participant{ID: "u-3", Name: "Priya Shah", Avatar: "https://i.pravatar.cc/150?u=priya"}
	jon := domain.Participant{ID: "u-4", Name: "Jon Barker", Avatar: "https://i.pravatar.cc/150?u=jon"}
	me := s.Profiles.CurrentUser()

	for _, u := range []domain.Participant{sam, priya, jon} {
		s.Profiles.AddUser(u)
	}

	quiz := &domain.Event{
		ID:        "ev-quiz",
		Title:     "Quiz Night",
		Location:  "The Font, Chorlton",
		Date:      now.AddDate(0, 0, 2).Format("2006-01-02"),
		Time:      "19:30",
		Category:  "Social",
		Host:      sam,
		Attendees: []domain.Participant{sam, priya},
		CreatedAt: now,
	}
	fiveASide := &domain.Event{
		ID:           "ev-football",
		Title:        "Five-a-side Football",
		Location:     "Hough End Leisure Centre",
		Date:         now.AddDate(0, 0, 5).Format("2006-01-02"),
		Time:         "18:00",
		Category:     "Sport",
		Host:         jon,
		Attendees:    []domain.Participant{jon},
		MaxAttendees: 10,
		CreatedAt:    now,
	}
	_ = s.Events.CreateEvent(quiz)
	_ = s.Events.CreateEvent(fiveASide)

	_ = s.Chats.AddChat(&domain.ChatRecord{
		ID:           "dm-sam",
		Kind:         domain.KindDirect,
		Name:         sam.Name,
		Avatar:       sam.Avatar,
		Participants: []domain.Participant{me, sam},
		Online:       true,
	})
	_ = s.Chats.AddChat(&domain.ChatRecord{
		ID:           "group-brunch",
		Kind:         domain.KindGroup,
		Name:         "Sunday Brunch Club",
		Participants: []domain.Participant{me, sam, priya, jon},
	})

	s.Groups.AddGroup(&domain.Group{
		ID:      "group-runners",
		Name:    "Didsbury Runners",
		Members: []domain.Participant{me, priya, jon},
	})

	_ = s.Messages.Append("dm-sam", &domain.Message{
		ID:        "msg-seed-1",
		Author:    sam,
		Text:      "Still on for Thursday?",
		CreatedAt: now.Add(-2 * time.Hour),
	})
	_ = s.Messages.Append("ev-quiz", &domain.Message{
		ID:        "msg-seed-2",
		Author:    priya,
		Text:      "Team name suggestions welcome",
		CreatedAt: now.Add(-time.Hour),
	})
}
