package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDirectoryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/matches", handler.ListMatchesByTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListSquadPlayers)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}/roster", handler.GetRosterSelection)
	mux.HandleFunc("PUT /v1/matches/{matchID}/roster", handler.SubmitRoster)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler, hub *LiveHub) {
	mux.HandleFunc("POST /v1/matches/{matchID}/session", handler.OpenSession)
	mux.HandleFunc("GET /v1/matches/{matchID}/session", handler.GetSessionState)
	mux.HandleFunc("DELETE /v1/matches/{matchID}/session", handler.CloseSession)
	mux.HandleFunc("POST /v1/matches/{matchID}/session/clock/toggle", handler.ToggleSessionClock)
	mux.HandleFunc("POST /v1/matches/{matchID}/session/clock/reset", handler.ResetSessionClock)
	mux.HandleFunc("POST /v1/matches/{matchID}/session/clock/advance", handler.AdvanceSessionPhase)
	mux.HandleFunc("POST /v1/matches/{matchID}/session/events", handler.RecordSessionEvent)
	mux.HandleFunc("DELETE /v1/matches/{matchID}/session/events/{eventID}", handler.UndoSessionEvent)
	mux.HandleFunc("POST /v1/matches/{matchID}/session/save", handler.SaveSession)
	mux.HandleFunc("GET /v1/matches/{matchID}/live", hub.Subscribe)
}
