package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedAccountRoutes(mux, handler, verifier)
	registerAuthorizedLeagueRoutes(mux, handler, verifier)
	registerAuthorizedEventRoutes(mux, handler, verifier)
	registerAuthorizedSocialRoutes(mux, handler, verifier)
}

func registerAuthorizedAccountRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/session/sign-out", RequireAuth(verifier, http.HandlerFunc(handler.SignOut)))
	mux.Handle("GET /v1/me/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/me/profile", RequireAuth(verifier, http.HandlerFunc(handler.UpsertMyProfile)))
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("GET /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLeagues)))
	mux.Handle("POST /v1/leagues/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeagueByInvite)))
	mux.Handle("GET /v1/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLeague)))
	mux.Handle("POST /v1/leagues/{leagueID}/join-requests", RequireAuth(verifier, http.HandlerFunc(handler.RequestToJoinLeague)))
	mux.Handle("POST /v1/leagues/{leagueID}/members/{playerID}/accept", RequireAuth(verifier, http.HandlerFunc(handler.AcceptMember)))
	mux.Handle("GET /v1/leagues/{leagueID}/members", RequireAuth(verifier, http.HandlerFunc(handler.ListLeagueMembers)))
	mux.Handle("GET /v1/leagues/{leagueID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
}

func registerAuthorizedEventRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues/{leagueID}/events", RequireAuth(verifier, http.HandlerFunc(handler.CreateEvent)))
	mux.Handle("GET /v1/leagues/{leagueID}/events", RequireAuth(verifier, http.HandlerFunc(handler.ListLeagueEvents)))
	mux.Handle("GET /v1/events/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.GetEvent)))
	mux.Handle("PUT /v1/events/{eventID}/rsvp", RequireAuth(verifier, http.HandlerFunc(handler.RSVP)))
	mux.Handle("GET /v1/events/{eventID}/rsvp/countdown", RequireAuth(verifier, http.HandlerFunc(handler.GetRSVPCountdown)))
	mux.Handle("PUT /v1/events/{eventID}/captains", RequireAuth(verifier, http.HandlerFunc(handler.SelectCaptains)))
	mux.Handle("GET /v1/events/{eventID}/draft", RequireAuth(verifier, http.HandlerFunc(handler.GetDraft)))
	mux.Handle("POST /v1/events/{eventID}/draft/picks", RequireAuth(verifier, http.HandlerFunc(handler.DraftPick)))
	mux.Handle("GET /v1/events/{eventID}/result", RequireAuth(verifier, http.HandlerFunc(handler.GetResult)))
	mux.Handle("PUT /v1/events/{eventID}/result", RequireAuth(verifier, http.HandlerFunc(handler.EnterResult)))
}

func registerAuthorizedSocialRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues/{leagueID}/ratings", RequireAuth(verifier, http.HandlerFunc(handler.RatePlayer)))
	mux.Handle("GET /v1/leagues/{leagueID}/players/{playerID}/rating", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayerRating)))
	mux.Handle("POST /v1/leagues/{leagueID}/messages", RequireAuth(verifier, http.HandlerFunc(handler.PostMessage)))
	mux.Handle("GET /v1/leagues/{leagueID}/messages", RequireAuth(verifier, http.HandlerFunc(handler.ListMessages)))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalToken string) {
	mux.Handle("POST /v1/internal/realtime/roster", RequireInternalToken(internalToken, http.HandlerFunc(handler.ReceiveRealtimeRoster)))
	mux.Handle("POST /v1/internal/jobs/rsvp-reminders", RequireInternalToken(internalToken, http.HandlerFunc(handler.RunRSVPReminders)))
}
