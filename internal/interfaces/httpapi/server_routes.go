package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/count", handler.CountTeams)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/tournament/status", handler.TournamentStatus)
	mux.HandleFunc("GET /v1/scorers", handler.ListTopScorers)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("POST /v1/matches/{matchID}/simulate", RequireAuth(verifier, http.HandlerFunc(handler.SimulateMatch)))
	mux.Handle("POST /v1/matches/{matchID}/play", RequireAuth(verifier, http.HandlerFunc(handler.PlayMatch)))
	mux.Handle("POST /v1/tournament/start", RequireAuth(verifier, http.HandlerFunc(handler.StartTournament)))
	mux.Handle("POST /v1/tournament/reset", RequireAuth(verifier, http.HandlerFunc(handler.ResetTournament)))
}
