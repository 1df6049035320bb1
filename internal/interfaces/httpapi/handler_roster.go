package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/grassroots-fc/matchday/internal/domain/roster"
	"github.com/grassroots-fc/matchday/internal/usecase"
)

type submitRosterRequest struct {
	TeamID      string   `json:"team_id" validate:"required"`
	Starters    []string `json:"starters" validate:"required,dive,required"`
	Substitutes []string `json:"substitutes" validate:"omitempty,dive,required"`
}

func (h *Handler) GetRosterSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterSelection")
	defer span.End()

	matchID := r.PathValue("matchID")
	selection, err := h.rosterService.LoadSelection(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "load roster selection failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(selection))
}

// SubmitRoster accepts the full starter and substitute lists in one call.
// The selection is rebuilt server side so the exactly-eleven rule and the
// one-group-per-player rule hold regardless of what the client sends.
func (h *Handler) SubmitRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitRoster")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req submitRosterRequest
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

	selection := roster.NewSelection(matchID)
	for _, id := range req.Starters {
		if err := selection.Assign(id, roster.TagStarter); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: starter %s: %v", usecase.ErrInvalidInput, id, err))
			return
		}
	}
	for _, id := range req.Substitutes {
		if selection.TagFor(id) == roster.TagStarter {
			writeError(ctx, w, fmt.Errorf("%w: player %s listed as both starter and substitute", usecase.ErrInvalidInput, id))
			return
		}
		if err := selection.Assign(id, roster.TagSubstitute); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: substitute %s: %v", usecase.ErrInvalidInput, id, err))
			return
		}
	}

	snap, err := h.rosterService.Submit(ctx, selection, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "submit roster failed", "match_id", matchID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snap))
}
