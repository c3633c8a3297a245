package httpapi

import (
	"net/http"

	"github.com/riskibarqy/recliiga/internal/usecase"
)

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createLeagueRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lg, err := h.leagues.CreateLeague(ctx, usecase.CreateLeagueInput{
		ActorUserID: principal.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(ctx, w, "create league failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(lg))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagues, err := h.leagues.ListMyLeagues(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "list leagues failed", err, "user_id", principal.UserID)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, lg := range leagues {
		items = append(items, leagueToDTO(lg))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")

	lg, err := h.leagues.GetLeague(ctx, principal.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "get league failed", err, "user_id", principal.UserID, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(lg))
}

func (h *Handler) RequestToJoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestToJoinLeague")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")

	membership, err := h.leagues.RequestToJoin(ctx, principal.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "request to join failed", err, "user_id", principal.UserID, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, membershipToDTO(membership))
}

func (h *Handler) JoinLeagueByInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeagueByInvite")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinLeagueRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	membership, err := h.leagues.JoinByInviteCode(ctx, principal.UserID, req.InviteCode)
	if err != nil {
		h.fail(ctx, w, "join league by invite failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, membershipToDTO(membership))
}

func (h *Handler) AcceptMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptMember")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")
	playerID := pathID(r, "playerID")

	membership, err := h.leagues.AcceptMember(ctx, principal.UserID, leagueID, playerID)
	if err != nil {
		h.fail(ctx, w, "accept member failed", err, "user_id", principal.UserID, "league_id", leagueID, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, membershipToDTO(membership))
}

func (h *Handler) ListLeagueMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMembers")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")

	members, err := h.leagues.ListMembers(ctx, principal.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "list members failed", err, "user_id", principal.UserID, "league_id", leagueID)
		return
	}

	items := make([]memberDTO, 0, len(members))
	for _, m := range members {
		items = append(items, memberToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")

	rows, err := h.leaderboard.GetLeaderboard(ctx, principal.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "get leaderboard failed", err, "user_id", principal.UserID, "league_id", leagueID)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leaderboardRowToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
