package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sm-social/chatcore/internal/app/resolver"
	"github.com/sm-social/chatcore/internal/domain"
	"github.com/sm-social/chatcore/internal/observability"
)

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type errorResponse struct {
	Error string `json:"error"`
}

type participantResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Online bool   `json:"online,omitempty"`
}

type messageResponse struct {
	ID        string              `json:"id"`
	Author    participantResponse `json:"author"`
	Text      string              `json:"text"`
	Own       bool                `json:"own"`
	CreatedAt time.Time           `json:"created_at"`
}

type conversationResponse struct {
	ID           string                `json:"id"`
	Kind         string                `json:"kind"`
	Name         string                `json:"name"`
	Participants []participantResponse `json:"participants"`
	EventID      string                `json:"event_id,omitempty"`
	Unread       int                   `json:"unread,omitempty"`
}

type getConversationResponse struct {
	Conversation conversationResponse `json:"conversation"`
	Messages     []messageResponse    `json:"messages"`
}

type appendMessageRequest struct {
	Text string `json:"text"`
}

type appendMessageResponse struct {
	Message messageResponse   `json:"message"`
	Log     []messageResponse `json:"log"`
}

type chatResponse struct {
	ID           string                `json:"id"`
	Kind         string                `json:"kind"`
	Name         string                `json:"name"`
	Avatar       string                `json:"avatar,omitempty"`
	Participants []participantResponse `json:"participants"`
	Unread       int                   `json:"unread,omitempty"`
	Online       bool                  `json:"online,omitempty"`
}

type groupResponse struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Avatar  string                `json:"avatar,omitempty"`
	Members []participantResponse `json:"members"`
}

type startChatRequest struct {
	Kind      string   `json:"kind"`
	UserIDs   []string `json:"user_ids"`
	GroupName string   `json:"group_name,omitempty"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description,omitempty"`
	Date         string                `json:"date,omitempty"`
	Time         string                `json:"time,omitempty"`
	Location     string                `json:"location,omitempty"`
	Image        string                `json:"image,omitempty"`
	Category     string                `json:"category,omitempty"`
	Host         participantResponse   `json:"host"`
	Attendees    []participantResponse `json:"attendees"`
	MaxAttendees int                   `json:"max_attendees,omitempty"`

	// ChatID is the conversation id of the event's chat.
	ChatID string `json:"chat_id"`
}

type createEventRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Date         string `json:"date,omitempty"`
	Time         string `json:"time,omitempty"`
	Location     string `json:"location,omitempty"`
	Image        string `json:"image,omitempty"`
	Category     string `json:"category,omitempty"`
	MaxAttendees int    `json:"max_attendees,omitempty"`
}

type setAttendanceRequest struct {
	Attending bool `json:"attending"`
}

type sessionResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LastMessage  string    `json:"last_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

type getSessionResponse struct {
	Session  sessionResponse   `json:"session"`
	Messages []messageResponse `json:"messages"`
}

type sendTurnRequest struct {
	Text string `json:"text"`
}

type sendTurnResponse struct {
	Session          sessionResponse   `json:"session"`
	UserMessage      messageResponse   `json:"user_message"`
	AssistantMessage messageResponse   `json:"assistant_message"`
	Log              []messageResponse `json:"log"`
}

// ─────────────────────────────────────────────
// Mapping helpers
// ─────────────────────────────────────────────

func toParticipantResponse(p domain.Participant) participantResponse {
	return participantResponse{
		ID:     string(p.ID),
		Name:   p.Name,
		Avatar: p.Avatar,
		Online: p.Online,
	}
}

func toParticipantsResponse(ps []domain.Participant) []participantResponse {
	out := make([]participantResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toParticipantResponse(p))
	}
	return out
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        string(m.ID),
		Author:    toParticipantResponse(m.Author),
		Text:      m.Text,
		Own:       m.Own,
		CreatedAt: m.CreatedAt,
	}
}

func toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toConversationResponse(c *domain.Conversation) conversationResponse {
	return conversationResponse{
		ID:           string(c.ID),
		Kind:         string(c.Kind),
		Name:         c.Name,
		Participants: toParticipantsResponse(c.Participants),
		EventID:      string(c.EventID),
		Unread:       c.Unread,
	}
}

func toChatResponse(rec *domain.ChatRecord) chatResponse {
	return chatResponse{
		ID:           string(rec.ID),
		Kind:         string(rec.Kind),
		Name:         rec.Name,
		Avatar:       rec.Avatar,
		Participants: toParticipantsResponse(rec.Participants),
		Unread:       rec.Unread,
		Online:       rec.Online,
	}
}

func toChatsResponse(recs []*domain.ChatRecord) []chatResponse {
	out := make([]chatResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toChatResponse(rec))
	}
	return out
}

func toGroupResponse(g *domain.Group) groupResponse {
	return groupResponse{
		ID:      string(g.ID),
		Name:    g.Name,
		Avatar:  g.Avatar,
		Members: toParticipantsResponse(g.Members),
	}
}

func toGroupsResponse(gs []*domain.Group) []groupResponse {
	out := make([]groupResponse, 0, len(gs))
	for _, g := range gs {
		out = append(out, toGroupResponse(g))
	}
	return out
}

func toEventResponse(ev *domain.Event) eventResponse {
	return eventResponse{
		ID:           string(ev.ID),
		Title:        ev.Title,
		Description:  ev.Description,
		Date:         ev.Date,
		Time:         ev.Time,
		Location:     ev.Location,
		Image:        ev.Image,
		Category:     ev.Category,
		Host:         toParticipantResponse(ev.Host),
		Attendees:    toParticipantsResponse(ev.Attendees),
		MaxAttendees: ev.MaxAttendees,
		ChatID:       string(resolver.EventConversationID(ev.ID)),
	}
}

func toEventsResponse(evts []*domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(evts))
	for _, ev := range evts {
		out = append(out, toEventResponse(ev))
	}
	return out
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:           string(s.ID),
		Title:        s.Title,
		LastMessage:  s.LastMessage,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
	}
}

func toSessionsResponse(ss []*domain.Session) []sessionResponse {
	out := make([]sessionResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, toSessionResponse(s))
	}
	return out
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: msg})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
