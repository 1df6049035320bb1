package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/grassroots-fc/matchday/internal/domain/ledger"
	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/usecase"
)

type openSessionRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type recordEventRequest struct {
	Type        string `json:"type" validate:"required,oneof=goal yellow_card red_card substitution"`
	TeamID      string `json:"team_id" validate:"required"`
	Minute      *int   `json:"minute" validate:"omitempty,min=0"`
	Half        string `json:"half" validate:"omitempty,oneof=first second"`
	PlayerID    string `json:"player_id" validate:"omitempty"`
	PlayerOutID string `json:"player_out_id" validate:"omitempty"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenSession")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req openSessionRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.sessions.Open(ctx, matchID, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "open session failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(session.State()))
}

func (h *Handler) GetSessionState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSessionState")
	defer span.End()

	session, ok := h.openedSession(w, r)
	if !ok {
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(session.State()))
}

func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseSession")
	defer span.End()

	matchID := r.PathValue("matchID")
	h.sessions.Close(matchID)

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "closed"})
}

func (h *Handler) ToggleSessionClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSessionClock")
	defer span.End()

	session, ok := h.openedSession(w, r)
	if !ok {
		return
	}

	session.ToggleClock()
	h.sessions.Notify(session)

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(session.State()))
}

func (h *Handler) ResetSessionClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetSessionClock")
	defer span.End()

	session, ok := h.openedSession(w, r)
	if !ok {
		return
	}

	session.ResetClock()
	h.sessions.Notify(session)

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(session.State()))
}

func (h *Handler) AdvanceSessionPhase(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceSessionPhase")
	defer span.End()

	session, ok := h.openedSession(w, r)
	if !ok {
		return
	}

	session.AdvancePhase()
	h.sessions.Notify(session)

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(session.State()))
}

func (h *Handler) RecordSessionEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordSessionEvent")
	defer span.End()

	session, ok := h.openedSession(w, r)
	if !ok {
		return
	}

	var req recordEventRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	minute := -1
	if req.Minute != nil {
		minute = *req.Minute
	}

	event, err := session.RecordEvent(ledger.RecordInput{
		Type:        match.EventType(req.Type),
		TeamID:      req.TeamID,
		Minute:      minute,
		Half:        match.Half(req.Half),
		PlayerID:    req.PlayerID,
		PlayerOutID: req.PlayerOutID,
		Description: req.Description,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record event failed", "match_id", session.MatchID(), "type", req.Type, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.sessions.Notify(session)

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(event))
}

func (h *Handler) UndoSessionEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoSessionEvent")
	defer span.End()

	session, ok := h.openedSession(w, r)
	if !ok {
		return
	}

	eventID := r.PathValue("eventID")
	if err := session.UndoEvent(eventID); err != nil {
		h.logger.WarnContext(ctx, "undo event failed", "match_id", session.MatchID(), "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.sessions.Notify(session)

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(session.State()))
}

func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveSession")
	defer span.End()

	session, ok := h.openedSession(w, r)
	if !ok {
		return
	}

	if err := session.Save(ctx); err != nil {
		h.logger.WarnContext(ctx, "save session failed", "match_id", session.MatchID(), "error", err)
		writeError(ctx, w, err)
		return
	}
	h.sessions.Notify(session)

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(session.State()))
}

func (h *Handler) openedSession(w http.ResponseWriter, r *http.Request) (*usecase.Session, bool) {
	ctx := r.Context()
	matchID := r.PathValue("matchID")

	session, ok := h.sessions.Get(matchID)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no open session for match=%s", usecase.ErrNotFound, matchID))
		return nil, false
	}

	return session, true
}
