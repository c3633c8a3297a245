package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

// ReceiveRealtimeRoster is the pub/sub webhook for draft channels. The
// broker delivers every pick to every instance, including the one that
// published it; the draft service drops those echoes.
func (h *Handler) ReceiveRealtimeRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReceiveRealtimeRoster")
	defer span.End()

	var req realtimeWebhookRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.Event != usecase.EventDraftPick {
		writeSuccess(ctx, w, http.StatusOK, map[string]any{"applied": false, "ignored": req.Event})
		return
	}
	if req.Payload.EventID == "" || req.Channel != usecase.DraftChannel(req.Payload.EventID) {
		writeError(ctx, w, fmt.Errorf("%w: channel %q does not match roster event", usecase.ErrInvalidInput, req.Channel))
		return
	}

	applied := h.drafts.ReceiveRemoteRoster(ctx, draft.RosterUpdate{
		EventID:   req.Payload.EventID,
		TeamID:    req.Payload.TeamID,
		CaptainID: req.Payload.CaptainID,
		PlayerIDs: req.Payload.PlayerIDs,
		Origin:    req.Payload.Origin,
		SentAt:    req.Payload.SentAt,
	})

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"applied": applied})
}

func (h *Handler) RunRSVPReminders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRSVPReminders")
	defer span.End()

	if h.reminders == nil {
		writeError(ctx, w, fmt.Errorf("%w: reminder service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.reminders.SendRSVPReminders(ctx, time.Now())
	if err != nil {
		h.fail(ctx, w, "run rsvp reminders failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
