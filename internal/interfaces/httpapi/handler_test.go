package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/grassroots-fc/matchday/internal/infrastructure/repository/memory"
	idgen "github.com/grassroots-fc/matchday/internal/platform/id"
	"github.com/grassroots-fc/matchday/internal/platform/logging"
	"github.com/grassroots-fc/matchday/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	eventRepo := memory.NewEventRepository()
	store := memory.NewSnapshotStore()

	directory := usecase.NewDirectoryService(teamRepo, matchRepo, logger)
	squad := usecase.NewSquadService(playerRepo, nil, logger)
	rosterSvc := usecase.NewRosterService(playerRepo, store, logger)
	recorder := usecase.NewRecorderService(matchRepo, eventRepo, store, idgen.NewRandomGenerator(), usecase.RecorderConfig{}, logger)
	sessions := usecase.NewSessionRegistry(recorder)
	t.Cleanup(sessions.Shutdown)

	hub := NewLiveHub(logger)
	t.Cleanup(hub.Shutdown)
	sessions.SetListener(hub.BroadcastState)

	handler := NewHandler(directory, squad, rosterSvc, sessions, logger)
	return NewRouter(handler, hub, logger, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func rosterPayload(starters int) string {
	ids := make([]string, 0, starters)
	for i := 1; i <= starters; i++ {
		ids = append(ids, fmt.Sprintf("%q", fmt.Sprintf("rov-%02d", i)))
	}
	return fmt.Sprintf(`{"team_id":"%s","starters":[%s],"substitutes":["rov-12","rov-13"]}`,
		memory.TeamIDRovers, strings.Join(ids, ","))
}

func TestAPI_SubmitRosterAndRecordFlow(t *testing.T) {
	router := newTestRouter(t)
	matchPath := "/v1/matches/" + memory.MatchIDRoversHarriers

	// Session before roster commit is rejected.
	rec := doJSON(t, router, http.MethodPost, matchPath+"/session",
		fmt.Sprintf(`{"team_id":"%s"}`, memory.TeamIDRovers))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 before roster commit, got %d: %s", rec.Code, rec.Body.String())
	}

	// Ten starters is not a valid roster.
	rec = doJSON(t, router, http.MethodPut, matchPath+"/roster", rosterPayload(10))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for ten starters, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPut, matchPath+"/roster", rosterPayload(11))
	if rec.Code != http.StatusOK {
		t.Fatalf("submit roster failed: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, matchPath+"/session",
		fmt.Sprintf(`{"team_id":"%s"}`, memory.TeamIDRovers))
	if rec.Code != http.StatusOK {
		t.Fatalf("open session failed: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, matchPath+"/session/events",
		fmt.Sprintf(`{"type":"goal","team_id":"%s","minute":12,"player_id":"rov-09"}`, memory.TeamIDRovers))
	if rec.Code != http.StatusCreated {
		t.Fatalf("record goal failed: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, matchPath+"/session/save", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("save failed: %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data sessionStateDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal save response: %v", err)
	}
	if envelope.Data.Score.Home != 1 {
		t.Fatalf("expected home score 1 after save, got %+v", envelope.Data.Score)
	}
	if len(envelope.Data.Events) != 1 || envelope.Data.Events[0].Pending {
		t.Fatalf("expected one persisted event after save, got %+v", envelope.Data.Events)
	}
}

func TestAPI_SessionStateRequiresOpenSession(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/matches/"+memory.MatchIDRoversHarriers+"/session", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unopened session, got %d", rec.Code)
	}
}

func TestAPI_ListSquadPlayers(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/teams/"+memory.TeamIDRovers+"/players", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list squad failed: %d", rec.Code)
	}

	var envelope struct {
		Data []playerDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal squad response: %v", err)
	}
	if len(envelope.Data) != 14 {
		t.Fatalf("expected 14 players, got %d", len(envelope.Data))
	}
	if envelope.Data[0].ShirtNumber == nil || *envelope.Data[0].ShirtNumber != 1 {
		t.Fatalf("expected shirt 1 first, got %+v", envelope.Data[0])
	}
}
