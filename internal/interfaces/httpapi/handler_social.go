package httpapi

import (
	"net/http"

	"github.com/riskibarqy/recliiga/internal/usecase"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

func (h *Handler) RatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RatePlayer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")

	var req ratePlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.ratings.RatePlayer(ctx, usecase.RatePlayerInput{
		ActorUserID: principal.UserID,
		LeagueID:    leagueID,
		PlayerID:    req.PlayerID,
		Score:       req.Score,
	})
	if err != nil {
		h.fail(ctx, w, "rate player failed", err, "user_id", principal.UserID, "league_id", leagueID, "player_id", req.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ratingSummaryToDTO(summary))
}

func (h *Handler) GetPlayerRating(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerRating")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")
	playerID := pathID(r, "playerID")

	summary, err := h.ratings.GetPlayerRating(ctx, principal.UserID, leagueID, playerID)
	if err != nil {
		h.fail(ctx, w, "get player rating failed", err, "user_id", principal.UserID, "league_id", leagueID, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ratingSummaryToDTO(summary))
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostMessage")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")

	var req postMessageRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	msg, err := h.chat.PostMessage(ctx, usecase.PostMessageInput{
		ActorUserID: principal.UserID,
		LeagueID:    leagueID,
		Body:        req.Body,
	})
	if err != nil {
		h.fail(ctx, w, "post message failed", err, "user_id", principal.UserID, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, messageToDTO(msg))
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMessages")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")

	limit, err := queryLimit(r, defaultMessageLimit, maxMessageLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	messages, err := h.chat.ListMessages(ctx, principal.UserID, leagueID, limit)
	if err != nil {
		h.fail(ctx, w, "list messages failed", err, "user_id", principal.UserID, "league_id", leagueID)
		return
	}

	items := make([]messageDTO, 0, len(messages))
	for _, m := range messages {
		items = append(items, messageToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
