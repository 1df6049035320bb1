package httpapi

import "net/http"

func (h *Handler) ListSquadPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSquadPlayers")
	defer span.End()

	teamID := r.PathValue("teamID")
	players, err := h.squadService.ListActivePlayers(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list squad players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
