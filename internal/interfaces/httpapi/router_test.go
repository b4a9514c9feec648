package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nations-league/internal/domain/user"
	"github.com/riskibarqy/nations-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
	"github.com/riskibarqy/nations-league/internal/platform/random"
	"github.com/riskibarqy/nations-league/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	teams, err := memory.SeedTeams(random.New(11))
	if err != nil {
		t.Fatalf("SeedTeams() error = %v", err)
	}

	teamRepo := memory.NewTeamRepository(teams)
	matchRepo := memory.NewMatchRepository(nil)
	stateRepo := memory.NewTournamentRepository()
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	logger := logging.NewNop()
	rng := random.New(12)

	handler := NewHandler(
		usecase.NewTeamService(teamRepo, rng, logger),
		usecase.NewTournamentService(teamRepo, matchRepo, stateRepo, rng, logger),
		usecase.NewMatchService(teamRepo, matchRepo, userRepo, rng, nil, nil, logger),
		usecase.NewScorerService(matchRepo, logger),
		logger,
	)

	verifier := &stubVerifier{principal: user.Principal{UserID: memory.SeedAdminID, Role: "admin"}}
	return NewRouter(handler, verifier, logger, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("%s %s: unmarshal envelope: %v", method, path, err)
	}
	return rec, envelope
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", envelope)
	}
}

func TestRouter_AdminRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/v1/teams",
		"/v1/tournament/start",
		"/v1/tournament/reset",
		"/v1/matches/QF1/simulate",
		"/v1/matches/QF1/play",
	} {
		rec, _ := doRequest(t, router, http.MethodPost, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("POST %s without token: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestRouter_TournamentFlow(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/tournament/start", "tok", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("start tournament: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ := envelope["data"].(map[string]any)
	if data["started"] != true {
		t.Fatalf("expected started=true, got %v", envelope)
	}
	matches, _ := data["matches"].([]any)
	if len(matches) != 7 {
		t.Fatalf("expected 7 bracket matches, got %d", len(matches))
	}

	rec, envelope = doRequest(t, router, http.MethodPost, "/v1/matches/qf1/simulate", "tok", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("simulate QF1: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ = envelope["data"].(map[string]any)
	if data["status"] != "completed" {
		t.Fatalf("expected completed match, got %v", data["status"])
	}
	winner, _ := data["winner"].(map[string]any)
	if winner["country"] == "" {
		t.Fatalf("expected a winner, got %v", data)
	}

	// Second resolution of the same match must be refused.
	rec, _ = doRequest(t, router, http.MethodPost, "/v1/matches/QF1/simulate", "tok", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("double simulate: expected 409, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/matches/QF9/simulate", "tok", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad match id: expected 400, got %d", rec.Code)
	}

	rec, envelope = doRequest(t, router, http.MethodGet, "/v1/matches/QF1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get QF1: expected 200, got %d", rec.Code)
	}
	data, _ = envelope["data"].(map[string]any)
	if data["simulationType"] != "simulated" {
		t.Fatalf("expected simulated match, got %v", data["simulationType"])
	}

	rec, envelope = doRequest(t, router, http.MethodGet, "/v1/scorers", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("scorers: expected 200, got %d", rec.Code)
	}

	rec, envelope = doRequest(t, router, http.MethodGet, "/v1/tournament/status", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", rec.Code)
	}
	data, _ = envelope["data"].(map[string]any)
	if data["phase"] != "ready" {
		t.Fatalf("expected phase=ready, got %v", data["phase"])
	}
}

func TestRouter_CreateTeamAndCount(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/teams/count", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("count: expected 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["count"] != float64(8) {
		t.Fatalf("expected 8 seeded teams, got %v", data["count"])
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/teams", "tok", `{"country":"Kenya","manager":"Someone Else"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate country: expected 409, got %d", rec.Code)
	}

	rec, envelope = doRequest(t, router, http.MethodPost, "/v1/teams", "tok", `{"country":"Algeria","manager":"Djamel Belmadi"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create team: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ = envelope["data"].(map[string]any)
	players, _ := data["players"].([]any)
	if len(players) != 23 {
		t.Fatalf("expected a generated 23-player squad, got %d", len(players))
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/teams", "tok", `{"country":"Algeria"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing manager: expected 400, got %d", rec.Code)
	}
}
