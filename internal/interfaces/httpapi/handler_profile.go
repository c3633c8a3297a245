package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/recliiga/internal/usecase"
)

// SignOut destroys the caller's session and revokes the token upstream.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignOut")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	token, ok := accessTokenFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: access token is missing from request context", usecase.ErrUnauthorized))
		return
	}

	existed, err := h.sessions.SignOut(ctx, token)
	if err != nil {
		h.fail(ctx, w, "sign out failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"signed_out": true, "session_existed": existed})
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.players.GetByUser(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "get profile failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) UpsertMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertMyProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req upsertProfileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.players.UpsertProfile(ctx, usecase.UpsertProfileInput{
		ActorUserID: principal.UserID,
		ActorEmail:  principal.Email,
		Name:        req.Name,
		AvatarURL:   req.AvatarURL,
		Positions:   req.Positions,
	})
	if err != nil {
		h.fail(ctx, w, "upsert profile failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}
