package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/recliiga/internal/usecase"
)

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEvent")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")

	var req createEventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	e, err := h.events.CreateEvent(ctx, usecase.CreateEventInput{
		ActorUserID:  principal.UserID,
		LeagueID:     leagueID,
		Title:        req.Title,
		Location:     req.Location,
		StartsAt:     req.StartsAt,
		RSVPDeadline: time.Duration(req.RSVPDeadlineMinutes) * time.Minute,
		RosterSpots:  req.RosterSpots,
		DraftMode:    req.DraftMode,
		Team1Name:    req.Team1Name,
		Team1Color:   req.Team1Color,
		Team2Name:    req.Team2Name,
		Team2Color:   req.Team2Color,
	})
	if err != nil {
		h.fail(ctx, w, "create event failed", err, "user_id", principal.UserID, "league_id", leagueID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(e, time.Now()))
}

func (h *Handler) ListLeagueEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueEvents")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID := pathID(r, "leagueID")

	events, err := h.events.ListEventsByLeague(ctx, principal.UserID, leagueID)
	if err != nil {
		h.fail(ctx, w, "list events failed", err, "user_id", principal.UserID, "league_id", leagueID)
		return
	}

	now := time.Now()
	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e, now))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	eventID := pathID(r, "eventID")

	e, err := h.events.GetEvent(ctx, principal.UserID, eventID)
	if err != nil {
		h.fail(ctx, w, "get event failed", err, "user_id", principal.UserID, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(e, time.Now()))
}

func (h *Handler) RSVP(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RSVP")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	eventID := pathID(r, "eventID")

	var req rsvpRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	e, err := h.events.RSVP(ctx, usecase.RSVPInput{
		ActorUserID: principal.UserID,
		EventID:     eventID,
		Attending:   *req.Attending,
	})
	if err != nil {
		h.fail(ctx, w, "rsvp failed", err, "user_id", principal.UserID, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(e, time.Now()))
}

func (h *Handler) SelectCaptains(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectCaptains")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	eventID := pathID(r, "eventID")

	var req selectCaptainsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	e, err := h.events.SelectCaptains(ctx, usecase.SelectCaptainsInput{
		ActorUserID:    principal.UserID,
		EventID:        eventID,
		Team1CaptainID: req.Team1CaptainID,
		Team2CaptainID: req.Team2CaptainID,
	})
	if err != nil {
		h.fail(ctx, w, "select captains failed", err, "user_id", principal.UserID, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(e, time.Now()))
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	eventID := pathID(r, "eventID")

	state, err := h.drafts.State(ctx, principal.UserID, eventID)
	if err != nil {
		h.fail(ctx, w, "get draft failed", err, "user_id", principal.UserID, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(state))
}

func (h *Handler) DraftPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DraftPick")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	eventID := pathID(r, "eventID")

	var req draftPickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.drafts.Pick(ctx, usecase.PickInput{
		ActorUserID: principal.UserID,
		EventID:     eventID,
		PlayerID:    req.PlayerID,
	})
	if err != nil {
		h.fail(ctx, w, "draft pick failed", err, "user_id", principal.UserID, "event_id", eventID, "player_id", req.PlayerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(state))
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetResult")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	eventID := pathID(r, "eventID")

	res, err := h.results.GetResult(ctx, principal.UserID, eventID)
	if err != nil {
		h.fail(ctx, w, "get result failed", err, "user_id", principal.UserID, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(res))
}

func (h *Handler) EnterResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnterResult")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	eventID := pathID(r, "eventID")

	var req enterResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.results.EnterResult(ctx, usecase.EnterResultInput{
		ActorUserID:        principal.UserID,
		EventID:            eventID,
		Team1Score:         *req.Team1Score,
		Team2Score:         *req.Team2Score,
		AttendingPlayerIDs: req.AttendingPlayerIDs,
	})
	if err != nil {
		h.fail(ctx, w, "enter result failed", err, "user_id", principal.UserID, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultToDTO(res))
}

func (h *Handler) GetRSVPCountdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRSVPCountdown")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	eventID := pathID(r, "eventID")

	countdown, err := h.events.RSVPCountdown(ctx, principal.UserID, eventID)
	if err != nil {
		h.fail(ctx, w, "get rsvp countdown failed", err, "user_id", principal.UserID, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rsvpCountdownDTO{
		EventID:     countdown.EventID,
		DeadlineAt:  countdown.DeadlineAt,
		SecondsLeft: int64(countdown.Remaining / time.Second),
		Open:        countdown.Open,
	})
}
