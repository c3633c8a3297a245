package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/recliiga/internal/domain/user"
	"github.com/riskibarqy/recliiga/internal/infrastructure/account/identity"
	"github.com/riskibarqy/recliiga/internal/infrastructure/email"
	"github.com/riskibarqy/recliiga/internal/infrastructure/realtime"
	"github.com/riskibarqy/recliiga/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/recliiga/internal/platform/cache"
	"github.com/riskibarqy/recliiga/internal/platform/id"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
	"github.com/riskibarqy/recliiga/internal/usecase"
	"github.com/stretchr/testify/require"
)

const testInternalToken = "internal-secret"

type fakeVerifier struct {
	principals map[string]user.Principal
	calls      int
	revoked    []string
}

func (f *fakeVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	f.calls++
	p, ok := f.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

func (f *fakeVerifier) RevokeAccessToken(_ context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	delete(f.principals, token)
	return nil
}

type testAPI struct {
	server   http.Handler
	verifier *fakeVerifier
	drafts   *usecase.DraftService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := logging.NewNop()
	idGen := id.NewUUIDGenerator()
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	leagues := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	events := memory.NewEventRepository(nil)
	results := memory.NewResultRepository(nil)
	publisher := realtime.NewNopPublisher(logger)

	verifier := &fakeVerifier{principals: map[string]user.Principal{
		"tok-ana": {UserID: "usr-ana", Email: "ana@example.com"},
		"tok-ben": {UserID: "usr-ben", Email: "ben@example.com"},
		"tok-cai": {UserID: "usr-cai", Email: "cai@example.com"},
		"tok-dee": {UserID: "usr-dee", Email: "dee@example.com"},
		"tok-eve": {UserID: "usr-eve", Email: "eve@example.com"},
	}}
	sessions := usecase.NewSessionService(identity.NewSessionStore(16), verifier, time.Minute)

	boards := usecase.NewLeaderboardService(leagues, players, events, results, cache.NewStore(time.Minute))
	drafts := usecase.NewDraftService(events, leagues, players, publisher, "instance-test", logger)
	handler := NewHandler(Services{
		Sessions:    sessions,
		Players:     usecase.NewPlayerService(players, idGen),
		Leagues:     usecase.NewLeagueService(leagues, players, idGen),
		Events:      usecase.NewEventService(events, leagues, players, idGen),
		Drafts:      drafts,
		Results:     usecase.NewResultService(events, results, leagues, players, idGen, publisher, boards, drafts, logger),
		Leaderboard: boards,
		Ratings:     usecase.NewRatingService(leagues, players, memory.NewRatingRepository()),
		Chat:        usecase.NewChatService(leagues, players, memory.NewChatRepository(), publisher, idGen, logger),
		Reminders:   usecase.NewReminderService(events, leagues, players, email.NewLogSender(logger), usecase.ReminderConfig{}, logger),
	}, logger)

	return &testAPI{
		server:   NewRouter(handler, sessions, logger, RouterConfig{InternalToken: testInternalToken}),
		verifier: verifier,
		drafts:   drafts,
	}
}

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       any            `json:"data"`
	Error      map[string]any `json:"error"`
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = sonic.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.server.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func dataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	require.True(t, ok, "expected object data, got %T", env.Data)
	return m
}

func dataList(t *testing.T, env envelope) []any {
	t.Helper()
	l, ok := env.Data.([]any)
	require.True(t, ok, "expected list data, got %T", env.Data)
	return l
}

func errorReason(env envelope) string {
	items, _ := env.Error["errors"].([]any)
	if len(items) == 0 {
		return ""
	}
	item, _ := items[0].(map[string]any)
	reason, _ := item["reason"].(string)
	return reason
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	status, env := api.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", dataMap(t, env)["status"])
}

func TestRouter_RequiresBearerToken(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	status, env := api.do(t, http.MethodGet, "/v1/leagues", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "UNAUTHENTICATED", env.Error["status"])

	status, _ = api.do(t, http.MethodGet, "/v1/leagues", "tok-unknown", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_SessionReusedUntilSignOut(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	for i := 0; i < 3; i++ {
		status, _ := api.do(t, http.MethodGet, "/v1/me/profile", "tok-ana", nil)
		require.Equal(t, http.StatusOK, status)
	}
	require.Equal(t, 1, api.verifier.calls, "verified sessions should be served from the store")

	status, env := api.do(t, http.MethodPost, "/v1/session/sign-out", "tok-ana", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, dataMap(t, env)["session_existed"])
	require.Equal(t, []string{"tok-ana"}, api.verifier.revoked)

	status, _ = api.do(t, http.MethodGet, "/v1/me/profile", "tok-ana", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_ProfileUpsertCreatesPlayer(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	status, _ := api.do(t, http.MethodGet, "/v1/me/profile", "tok-eve", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, env := api.do(t, http.MethodPut, "/v1/me/profile", "tok-eve", map[string]any{
		"name":      "Eve Adams",
		"positions": []string{"fwd", "MID"},
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	profile := dataMap(t, env)
	require.Equal(t, "Eve Adams", profile["name"])
	require.Equal(t, "eve@example.com", profile["email"])
	require.Equal(t, []any{"FWD", "MID"}, profile["positions"])

	status, env = api.do(t, http.MethodPut, "/v1/me/profile", "tok-eve", map[string]any{"name": "Eve", "nickname": "E"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalidInput", errorReason(env))
}

func TestRouter_LeagueJoinFlow(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	_, _ = api.do(t, http.MethodPut, "/v1/me/profile", "tok-eve", map[string]any{"name": "Eve Adams"})

	status, _ := api.do(t, http.MethodGet, "/v1/leagues/"+memory.LeagueIDSundayFive, "tok-eve", nil)
	require.Equal(t, http.StatusForbidden, status)

	status, env := api.do(t, http.MethodPost, "/v1/leagues/"+memory.LeagueIDSundayFive+"/join-requests", "tok-eve", nil)
	require.Equal(t, http.StatusAccepted, status, env.Error)
	membership := dataMap(t, env)
	require.Equal(t, "pending", membership["status"])
	eveID, _ := membership["player_id"].(string)
	require.NotEmpty(t, eveID)

	status, _ = api.do(t, http.MethodPost, "/v1/leagues/"+memory.LeagueIDSundayFive+"/members/"+eveID+"/accept", "tok-ben", nil)
	require.Equal(t, http.StatusForbidden, status, "only the owner accepts members")

	status, env = api.do(t, http.MethodPost, "/v1/leagues/"+memory.LeagueIDSundayFive+"/members/"+eveID+"/accept", "tok-ana", nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	require.Equal(t, "accepted", dataMap(t, env)["status"])

	status, env = api.do(t, http.MethodGet, "/v1/leagues/"+memory.LeagueIDSundayFive+"/members", "tok-eve", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, dataList(t, env), 5)
}

func TestRouter_CreateLeagueAndJoinByInvite(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	status, env := api.do(t, http.MethodPost, "/v1/leagues", "tok-ben", map[string]any{"name": "Tuesday Futsal"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	created := dataMap(t, env)
	code, _ := created["invite_code"].(string)
	require.Len(t, code, 8)

	status, env = api.do(t, http.MethodPost, "/v1/leagues/join", "tok-cai", map[string]any{"invite_code": code})
	require.Equal(t, http.StatusOK, status, env.Error)
	require.Equal(t, "accepted", dataMap(t, env)["status"])

	status, env = api.do(t, http.MethodGet, "/v1/leagues", "tok-cai", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, dataList(t, env), 2)
}

func createTestEvent(t *testing.T, api *testAPI, mode string) string {
	t.Helper()

	status, env := api.do(t, http.MethodPost, "/v1/leagues/"+memory.LeagueIDSundayFive+"/events", "tok-ana", map[string]any{
		"title":                 "Evening Match",
		"location":              "Riverside Park",
		"starts_at":             time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"rsvp_deadline_minutes": 60,
		"roster_spots":          4,
		"draft_mode":            mode,
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	eventID, _ := dataMap(t, env)["id"].(string)
	require.NotEmpty(t, eventID)

	for _, token := range []string{"tok-ana", "tok-ben", "tok-cai", "tok-dee"} {
		status, env = api.do(t, http.MethodPut, "/v1/events/"+eventID+"/rsvp", token, map[string]any{"attending": true})
		require.Equal(t, http.StatusOK, status, env.Error)
	}
	return eventID
}

func TestRouter_EventCreationIsOwnerOnly(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	status, env := api.do(t, http.MethodPost, "/v1/leagues/"+memory.LeagueIDSundayFive+"/events", "tok-ben", map[string]any{
		"title":        "Rogue Match",
		"starts_at":    time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"roster_spots": 4,
	})
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "forbidden", errorReason(env))
}

func TestRouter_RSVPFullEvent(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	eventID := createTestEvent(t, api, "alternating")

	_, _ = api.do(t, http.MethodPut, "/v1/me/profile", "tok-eve", map[string]any{"name": "Eve Adams"})
	_, env := api.do(t, http.MethodPost, "/v1/leagues/join", "tok-eve", map[string]any{"invite_code": "SUNDAY55"})
	require.Equal(t, "accepted", dataMap(t, env)["status"])

	status, env := api.do(t, http.MethodPut, "/v1/events/"+eventID+"/rsvp", "tok-eve", map[string]any{"attending": true})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "eventFull", errorReason(env))

	status, env = api.do(t, http.MethodGet, "/v1/events/"+eventID+"/rsvp/countdown", "tok-eve", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, dataMap(t, env)["open"])
}

func TestRouter_DraftResultAndLeaderboard(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	eventID := createTestEvent(t, api, "alternating")

	status, env := api.do(t, http.MethodPut, "/v1/events/"+eventID+"/captains", "tok-ana", map[string]any{
		"team1_captain_id": "pl-ana",
		"team2_captain_id": "pl-ben",
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	require.Equal(t, "captains_selected", dataMap(t, env)["status"])

	status, env = api.do(t, http.MethodPost, "/v1/events/"+eventID+"/draft/picks", "tok-ben", map[string]any{"player_id": "pl-cai"})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "notYourTurn", errorReason(env))

	status, env = api.do(t, http.MethodPost, "/v1/events/"+eventID+"/draft/picks", "tok-cai", map[string]any{"player_id": "pl-dee"})
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "notCaptain", errorReason(env))

	status, env = api.do(t, http.MethodPost, "/v1/events/"+eventID+"/draft/picks", "tok-ana", map[string]any{"player_id": "pl-cai"})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, env = api.do(t, http.MethodPost, "/v1/events/"+eventID+"/draft/picks", "tok-ben", map[string]any{"player_id": "pl-cai"})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "playerUnavailable", errorReason(env))

	status, env = api.do(t, http.MethodPost, "/v1/events/"+eventID+"/draft/picks", "tok-ben", map[string]any{"player_id": "pl-dee"})
	require.Equal(t, http.StatusOK, status, env.Error)
	state := dataMap(t, env)
	require.Equal(t, true, state["complete"])
	require.Equal(t, "drafted", state["status"])

	status, env = api.do(t, http.MethodGet, "/v1/events/"+eventID+"/draft", "tok-dee", nil)
	require.Equal(t, http.StatusOK, status)
	team1, _ := dataMap(t, env)["team1"].(map[string]any)
	require.Equal(t, []any{"pl-cai"}, team1["player_ids"])

	status, _ = api.do(t, http.MethodPut, "/v1/events/"+eventID+"/result", "tok-cai", map[string]any{
		"team1_score": 3, "team2_score": 1,
	})
	require.Equal(t, http.StatusForbidden, status, "players who are not owner or captain cannot enter results")

	status, env = api.do(t, http.MethodPut, "/v1/events/"+eventID+"/result", "tok-ben", map[string]any{
		"team1_score":          3,
		"team2_score":          1,
		"attending_player_ids": []string{"pl-ana", "pl-ben", "pl-cai", "pl-dee"},
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	require.Equal(t, "team1_won", dataMap(t, env)["outcome"])

	status, env = api.do(t, http.MethodGet, "/v1/events/"+eventID+"/result", "tok-dee", nil)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 3, dataMap(t, env)["team1_score"])

	status, env = api.do(t, http.MethodGet, "/v1/leagues/"+memory.LeagueIDSundayFive+"/leaderboard", "tok-dee", nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	rows := dataList(t, env)
	require.Len(t, rows, 4)

	top, _ := rows[0].(map[string]any)
	require.Equal(t, "pl-ana", top["player_id"])
	require.EqualValues(t, 1, top["rank"])
	require.EqualValues(t, 3, top["points"])
	require.EqualValues(t, 1, top["games_won_as_captain"])

	byID := make(map[string]map[string]any, len(rows))
	for _, raw := range rows {
		row, _ := raw.(map[string]any)
		id, _ := row["player_id"].(string)
		byID[id] = row
	}
	require.EqualValues(t, 3, byID["pl-cai"]["points"])
	require.EqualValues(t, 0, byID["pl-cai"]["games_won_as_captain"])
	require.EqualValues(t, 1, byID["pl-dee"]["games_lost"])
	require.EqualValues(t, 0, byID["pl-ben"]["points"])
}

func TestRouter_RatingsAndChat(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	base := "/v1/leagues/" + memory.LeagueIDSundayFive

	status, env := api.do(t, http.MethodPost, base+"/ratings", "tok-ben", map[string]any{"player_id": "pl-ana", "score": 4})
	require.Equal(t, http.StatusOK, status, env.Error)
	status, _ = api.do(t, http.MethodPost, base+"/ratings", "tok-cai", map[string]any{"player_id": "pl-ana", "score": 5})
	require.Equal(t, http.StatusOK, status)
	status, _ = api.do(t, http.MethodPost, base+"/ratings", "tok-ana", map[string]any{"player_id": "pl-ana", "score": 5})
	require.Equal(t, http.StatusBadRequest, status, "self rating is rejected")
	status, _ = api.do(t, http.MethodPost, base+"/ratings", "tok-ben", map[string]any{"player_id": "pl-ana", "score": 6})
	require.Equal(t, http.StatusBadRequest, status)

	status, env = api.do(t, http.MethodGet, base+"/players/pl-ana/rating", "tok-dee", nil)
	require.Equal(t, http.StatusOK, status)
	summary := dataMap(t, env)
	require.EqualValues(t, 2, summary["count"])
	require.InDelta(t, 4.5, summary["average"], 0.0001)

	for _, body := range []string{"first", "second", "third"} {
		status, env = api.do(t, http.MethodPost, base+"/messages", "tok-cai", map[string]any{"body": body})
		require.Equal(t, http.StatusCreated, status, env.Error)
	}

	status, env = api.do(t, http.MethodGet, base+"/messages?limit=2", "tok-ana", nil)
	require.Equal(t, http.StatusOK, status)
	msgs := dataList(t, env)
	require.Len(t, msgs, 2)
	newest, _ := msgs[0].(map[string]any)
	require.Equal(t, "third", newest["body"])

	status, _ = api.do(t, http.MethodGet, base+"/messages?limit=abc", "tok-ana", nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_InternalRoutesRequireToken(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/rsvp-reminders", nil)
	rec := httptest.NewRecorder()
	api.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/rsvp-reminders", nil)
	req.Header.Set(realtime.ForwardTokenHeader, testInternalToken)
	rec = httptest.NewRecorder()
	api.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_RealtimeRosterWebhook(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	eventID := createTestEvent(t, api, "snake")

	_, env := api.do(t, http.MethodPut, "/v1/events/"+eventID+"/captains", "tok-ana", map[string]any{
		"team1_captain_id": "pl-ana",
		"team2_captain_id": "pl-ben",
	})
	team1, _ := dataMap(t, env)["team1"].(map[string]any)
	team1ID, _ := team1["id"].(string)

	status, _ := api.do(t, http.MethodGet, "/v1/events/"+eventID+"/draft", "tok-ana", nil)
	require.Equal(t, http.StatusOK, status)

	post := func(origin string) (int, envelope) {
		body, err := sonic.Marshal(map[string]any{
			"channel": usecase.DraftChannel(eventID),
			"event":   usecase.EventDraftPick,
			"payload": map[string]any{
				"event_id":   eventID,
				"team_id":    team1ID,
				"captain_id": "pl-ana",
				"player_ids": []string{"pl-dee"},
				"origin":     origin,
				"sent_at":    time.Now().UTC().Format(time.RFC3339Nano),
			},
		})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/realtime/roster", bytes.NewReader(body))
		req.Header.Set(realtime.ForwardTokenHeader, testInternalToken)
		rec := httptest.NewRecorder()
		api.server.ServeHTTP(rec, req)
		var out envelope
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
		return rec.Code, out
	}

	status, env = post("instance-test")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, dataMap(t, env)["applied"], "own echo must be dropped")

	status, env = post("instance-other")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, dataMap(t, env)["applied"])

	status, env = api.do(t, http.MethodGet, "/v1/events/"+eventID+"/draft", "tok-ana", nil)
	require.Equal(t, http.StatusOK, status)
	team1, _ = dataMap(t, env)["team1"].(map[string]any)
	require.Equal(t, []any{"pl-dee"}, team1["player_ids"])
}
