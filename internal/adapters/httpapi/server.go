// Package httpapi exposes the conversation core over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sm-social/chatcore/internal/app/assistant"
	"github.com/sm-social/chatcore/internal/app/events"
	"github.com/sm-social/chatcore/internal/app/messaging"
	"github.com/sm-social/chatcore/internal/app/resolver"
	"github.com/sm-social/chatcore/internal/app/roster"
	"github.com/sm-social/chatcore/internal/domain"
)

type Server struct {
	resolver  *resolver.Resolver
	messaging *messaging.Service
	assistant *assistant.Service
	events    *events.Service
	roster    *roster.Service
}

func NewServer(
	res *resolver.Resolver,
	msgs *messaging.Service,
	asst *assistant.Service,
	evts *events.Service,
	rost *roster.Service,
) http.Handler {
	s := &Server{
		resolver:  res,
		messaging: msgs,
		assistant: asst,
		events:    evts,
		roster:    rost,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/chats", s.handleListChats).Methods(http.MethodGet)
	r.HandleFunc("/chats", s.handleStartChat).Methods(http.MethodPost)
	r.HandleFunc("/groups", s.handleListGroups).Methods(http.MethodGet)
	r.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)

	r.HandleFunc("/conversations/{id}", s.handleGetConversation).Methods(http.MethodGet)
	r.HandleFunc("/conversations/{id}/messages", s.handleAppendMessage).Methods(http.MethodPost)

	r.HandleFunc("/events", s.handleListEvents).Methods(http.MethodGet)
	r.HandleFunc("/events", s.handleCreateEvent).Methods(http.MethodPost)
	r.HandleFunc("/events/{id}", s.handleGetEvent).Methods(http.MethodGet)
	r.HandleFunc("/events/{id}/attendance", s.handleSetAttendance).Methods(http.MethodPut)

	r.HandleFunc("/assistant/sessions", s.handleListSessions).Methods(http.MethodGet)
	r.HandleFunc("/assistant/sessions", s.handleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/assistant/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	r.HandleFunc("/assistant/sessions/{id}/messages", s.handleSendTurn).Methods(http.MethodPost)
	r.HandleFunc("/assistant/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)

	return chainMiddlewares(r, withCORS, withLogging, withRequestID)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Conversations
// ─────────────────────────────────────────────

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := domain.ConversationID(mux.Vars(r)["id"])

	conv, err := s.resolver.Resolve(id)
	if err != nil {
		notFound(w, "conversation not found")
		return
	}

	log, err := s.messaging.Hydrate(r.Context(), messaging.HydrateInput{
		ConversationID: conv.ID,
		Kind:           conv.Kind,
		EventID:        conv.EventID,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, getConversationResponse{
		Conversation: toConversationResponse(conv),
		Messages:     toMessagesResponse(log),
	})
}

func (s *Server) handleAppendMessage(w http.ResponseWriter, r *http.Request) {
	id := domain.ConversationID(mux.Vars(r)["id"])

	var req appendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	conv, err := s.resolver.Resolve(id)
	if err != nil {
		notFound(w, "conversation not found")
		return
	}

	out, err := s.messaging.Append(r.Context(), messaging.AppendInput{
		ConversationID: conv.ID,
		Kind:           conv.Kind,
		EventID:        conv.EventID,
		Text:           req.Text,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			badRequest(w, "text is required")
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, appendMessageResponse{
		Message: toMessageResponse(out.Message),
		Log:     toMessagesResponse(out.Log),
	})
}

// ─────────────────────────────────────────────
// Chats
// ─────────────────────────────────────────────

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := s.roster.ListChats(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChatsResponse(chats))
}

func (s *Server) handleStartChat(w http.ResponseWriter, r *http.Request) {
	var req startChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	kind := domain.Kind(req.Kind)
	if kind != domain.KindDirect && kind != domain.KindGroup {
		badRequest(w, "kind must be direct or group")
		return
	}

	ids := make([]domain.UserID, 0, len(req.UserIDs))
	for _, id := range req.UserIDs {
		ids = append(ids, domain.UserID(id))
	}

	rec, err := s.roster.StartChat(r.Context(), roster.StartChatInput{
		Kind:      kind,
		UserIDs:   ids,
		GroupName: req.GroupName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(w, "user not found")
			return
		}
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toChatResponse(rec))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.roster.ListGroups(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupsResponse(groups))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.roster.ListUsers(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toParticipantsResponse(users))
}

// ─────────────────────────────────────────────
// Events
// ─────────────────────────────────────────────

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	evts, err := s.events.ListEvents(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventsResponse(evts))
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.events.GetEvent(r.Context(), domain.EventID(mux.Vars(r)["id"]))
	if err != nil {
		notFound(w, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(ev))
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	ev, err := s.events.CreateEvent(r.Context(), events.CreateEventInput{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		Location:     req.Location,
		Image:        req.Image,
		Category:     req.Category,
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTitle) {
			badRequest(w, "title is required")
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(ev))
}

func (s *Server) handleSetAttendance(w http.ResponseWriter, r *http.Request) {
	var req setAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	ev, err := s.events.SetAttendance(r.Context(), domain.EventID(mux.Vars(r)["id"]), req.Attending)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			notFound(w, "event not found")
		case errors.Is(err, domain.ErrEventFull):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "event is at capacity"})
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(ev))
}

// ─────────────────────────────────────────────
// Assistant sessions
// ─────────────────────────────────────────────

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.assistant.ListSessions(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionsResponse(sessions))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.assistant.CreateSession(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, log, err := s.assistant.SelectSession(r.Context(), domain.SessionID(mux.Vars(r)["id"]))
	if err != nil {
		notFound(w, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, getSessionResponse{
		Session:  toSessionResponse(session),
		Messages: toMessagesResponse(log),
	})
}

func (s *Server) handleSendTurn(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(mux.Vars(r)["id"])

	var req sendTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	// The turn targets the session named in the URL; the active pointer is
	// process state and never routes stateless HTTP callers.
	out, err := s.assistant.SendTurnTo(r.Context(), id, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			notFound(w, "session not found")
		case errors.Is(err, domain.ErrEmptyMessage):
			badRequest(w, "text is required")
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, sendTurnResponse{
		Session:          toSessionResponse(out.Session),
		UserMessage:      toMessageResponse(out.UserMessage),
		AssistantMessage: toMessageResponse(out.AssistantMessage),
		Log:              toMessagesResponse(out.Log),
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.assistant.DeleteSession(r.Context(), domain.SessionID(mux.Vars(r)["id"])); err != nil {
		notFound(w, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
