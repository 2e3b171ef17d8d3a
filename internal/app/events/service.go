// Package events lists and mutates event records: creation by the local
// user and attend/unattend toggling against the attendee list.
package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sm-social/chatcore/internal/domain"
	"github.com/sm-social/chatcore/internal/observability"
)

type Service struct {
	events   domain.EventDirectory
	profiles domain.ProfileSource
	now      func() time.Time
}

func NewService(events domain.EventDirectory, profiles domain.ProfileSource) *Service {
	return &Service{
		events:   events,
		profiles: profiles,
		now:      time.Now,
	}
}

func (s *Service) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.events.ListEvents()
}

func (s *Service) GetEvent(ctx context.Context, id domain.EventID) (*domain.Event, error) {
	return s.events.GetEvent(id)
}

type CreateEventInput struct {
	Title        string
	Description  string
	Date         string
	Time         string
	Location     string
	Image        string
	Category     string
	MaxAttendees int
}

// CreateEvent stores a new event hosted by the current user, who attends by
// default.
func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (*domain.Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}

	host := s.profiles.CurrentUser()
	ev := &domain.Event{
		ID:           domain.EventID(uuid.NewString()),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Date:         in.Date,
		Time:         in.Time,
		Location:     in.Location,
		Image:        in.Image,
		Category:     in.Category,
		Host:         host,
		Attendees:    []domain.Participant{host},
		MaxAttendees: in.MaxAttendees,
		CreatedAt:    s.now(),
	}

	if err := s.events.CreateEvent(ev); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to create event", "error", err)
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("event created", "event_id", ev.ID, "title", ev.Title)
	return ev, nil
}

// SetAttendance adds or removes the current user on the attendee list.
// Attending a full event fails; both directions are idempotent.
func (s *Service) SetAttendance(ctx context.Context, id domain.EventID, attending bool) (*domain.Event, error) {
	ev, err := s.events.GetEvent(id)
	if err != nil {
		return nil, err
	}

	me := s.profiles.CurrentUser()

	switch {
	case attending && ev.HasAttendee(me.ID):
		return ev, nil
	case attending:
		if ev.IsFull() {
			return nil, domain.ErrEventFull
		}
		ev.Attendees = append(ev.Attendees, me)
	default:
		kept := ev.Attendees[:0]
		for _, p := range ev.Attendees {
			if p.ID != me.ID {
				kept = append(kept, p)
			}
		}
		ev.Attendees = kept
	}

	if err := s.events.UpdateEvent(ev); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("attendance updated",
		"event_id", id, "attending", attending, "attendees", len(ev.Attendees))
	return ev, nil
}
