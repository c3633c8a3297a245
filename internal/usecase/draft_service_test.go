package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	usecasemock "github.com/riskibarqy/recliiga/internal/mocks/usecase"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

func TestDraftService_Pick_AlternatesAndBroadcasts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWorld(captainsSelectedEvent(draft.ModeAlternating))
	publisher := usecasemock.NewRealtimePublisher(t)
	publisher.
		On("Publish", mock.Anything, mock.MatchedBy(func(msg usecase.RealtimeMessage) bool {
			update, ok := msg.Payload.(draft.RosterUpdate)
			return ok &&
				msg.Channel == usecase.DraftChannel(eventIDDraft) &&
				msg.Event == usecase.EventDraftPick &&
				update.Origin == "inst-a"
		})).
		Return(nil).
		Twice()

	service := usecase.NewDraftService(w.events, w.leagues, w.players, publisher, "inst-a", w.logger)

	first, err := service.Pick(ctx, usecase.PickInput{ActorUserID: "usr-ana", EventID: eventIDDraft, PlayerID: "pl-cai"})
	require.NoError(t, err)
	require.Equal(t, event.StatusDrafting, first.Status)
	require.Equal(t, []string{"pl-cai"}, first.Team1.PlayerIDs)
	require.Equal(t, team2ID, first.NextTeamID)
	require.Equal(t, []string{"pl-dee"}, first.Pool)

	second, err := service.Pick(ctx, usecase.PickInput{ActorUserID: "usr-ben", EventID: eventIDDraft, PlayerID: "pl-dee"})
	require.NoError(t, err)
	require.Equal(t, event.StatusDrafted, second.Status)
	require.True(t, second.Complete)
	require.Empty(t, second.NextTeamID)

	stored, _, err := w.events.GetByID(ctx, eventIDDraft)
	require.NoError(t, err)
	require.Equal(t, event.StatusDrafted, stored.Status)
	require.Equal(t, []string{"pl-dee"}, stored.Team2.PlayerIDs)
}

func TestDraftService_Pick_Rejected(t *testing.T) {
	t.Parallel()

	open := captainsSelectedEvent(draft.ModeAlternating)
	open.Status = event.StatusOpen

	tests := []struct {
		name       string
		event      event.Event
		actor      string
		pick       string
		wantErr    error
		wantDomain error
	}{
		{name: "out of turn", event: captainsSelectedEvent(draft.ModeAlternating), actor: "usr-ben", pick: "pl-cai", wantErr: usecase.ErrConflict, wantDomain: draft.ErrNotYourTurn},
		{name: "not a captain", event: captainsSelectedEvent(draft.ModeAlternating), actor: "usr-cai", pick: "pl-dee", wantErr: usecase.ErrForbidden, wantDomain: draft.ErrNotCaptain},
		{name: "player without rsvp", event: captainsSelectedEvent(draft.ModeAlternating), actor: "usr-ana", pick: "pl-eve", wantErr: usecase.ErrConflict, wantDomain: draft.ErrPlayerUnavailable},
		{name: "opposing captain", event: captainsSelectedEvent(draft.ModeAlternating), actor: "usr-ana", pick: "pl-ben", wantErr: usecase.ErrConflict, wantDomain: draft.ErrPlayerUnavailable},
		{name: "draft complete", event: draftedEvent(), actor: "usr-ana", pick: "pl-dee", wantErr: usecase.ErrConflict},
		{name: "captains not selected", event: open, actor: "usr-ana", pick: "pl-cai", wantErr: usecase.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := newWorld(tt.event)
			service := usecase.NewDraftService(w.events, w.leagues, w.players, nil, "inst-a", w.logger)

			_, err := service.Pick(context.Background(), usecase.PickInput{ActorUserID: tt.actor, EventID: eventIDDraft, PlayerID: tt.pick})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantDomain != nil && !errors.Is(err, tt.wantDomain) {
				t.Fatalf("expected %v in chain, got %v", tt.wantDomain, err)
			}
		})
	}
}

func TestDraftService_Pick_ConcurrentPicksSerialized(t *testing.T) {
	t.Parallel()

	w := newWorld(captainsSelectedEvent(draft.ModeAlternating))
	service := usecase.NewDraftService(w.events, w.leagues, w.players, nil, "inst-a", w.logger)

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	for i, pick := range []string{"pl-cai", "pl-dee"} {
		wg.Add(1)
		go func(i int, pick string) {
			defer wg.Done()
			_, errs[i] = service.Pick(context.Background(), usecase.PickInput{ActorUserID: "usr-ana", EventID: eventIDDraft, PlayerID: pick})
		}(i, pick)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case !errors.Is(err, draft.ErrNotYourTurn):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one pick to land, got %d", succeeded)
	}

	stored, _, err := w.events.GetByID(context.Background(), eventIDDraft)
	require.NoError(t, err)
	require.Len(t, stored.Team1.PlayerIDs, 1)
}

func TestDraftService_ReceiveRemoteRoster_IgnoresOwnEcho(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWorld(captainsSelectedEvent(draft.ModeAlternating))
	service := usecase.NewDraftService(w.events, w.leagues, w.players, nil, "inst-a", w.logger)

	_, err := service.State(ctx, "usr-cai", eventIDDraft)
	require.NoError(t, err)

	echo := draft.RosterUpdate{EventID: eventIDDraft, TeamID: team2ID, CaptainID: "pl-ben", PlayerIDs: []string{"pl-dee"}, Origin: "inst-a"}
	require.False(t, service.ReceiveRemoteRoster(ctx, echo))

	remote := echo
	remote.Origin = "inst-b"
	require.True(t, service.ReceiveRemoteRoster(ctx, remote))

	state, err := service.State(ctx, "usr-cai", eventIDDraft)
	require.NoError(t, err)
	require.Equal(t, []string{"pl-dee"}, state.Team2.PlayerIDs)
	require.Equal(t, team1ID, state.NextTeamID)

	require.False(t, service.ReceiveRemoteRoster(ctx, draft.RosterUpdate{EventID: "evt-unknown", TeamID: team2ID, Origin: "inst-b"}))
}

func TestDraftService_State_SeesPickFromAnotherInstance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWorld(captainsSelectedEvent(draft.ModeAlternating))
	service := usecase.NewDraftService(w.events, w.leagues, w.players, nil, "inst-a", w.logger)

	_, err := service.Pick(ctx, usecase.PickInput{ActorUserID: "usr-ana", EventID: eventIDDraft, PlayerID: "pl-cai"})
	require.NoError(t, err)

	// Ben's pick lands through another instance and its broadcast never arrives here.
	require.NoError(t, w.events.AddPick(ctx, eventIDDraft, team2ID, "pl-dee"))

	state, err := service.State(ctx, "usr-ana", eventIDDraft)
	require.NoError(t, err)
	require.Equal(t, []string{"pl-cai"}, state.Team1.PlayerIDs)
	require.Equal(t, []string{"pl-dee"}, state.Team2.PlayerIDs)
	require.True(t, state.Complete)
	require.Empty(t, state.NextTeamID)
	require.Empty(t, state.Pool)
}

func TestDraftService_ForgetBoard_FallsBackToRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWorld(captainsSelectedEvent(draft.ModeAlternating))
	service := usecase.NewDraftService(w.events, w.leagues, w.players, nil, "inst-a", w.logger)

	_, err := service.State(ctx, "usr-ana", eventIDDraft)
	require.NoError(t, err)
	require.True(t, service.ReceiveRemoteRoster(ctx, draft.RosterUpdate{
		EventID:   eventIDDraft,
		TeamID:    team1ID,
		CaptainID: "pl-ana",
		PlayerIDs: []string{"pl-cai"},
		Origin:    "inst-b",
	}))

	service.ForgetBoard(eventIDDraft)

	state, err := service.State(ctx, "usr-ana", eventIDDraft)
	require.NoError(t, err)
	require.Empty(t, state.Team1.PlayerIDs)
}

func TestDraftService_State_NonMemberForbidden(t *testing.T) {
	t.Parallel()

	w := newWorld(captainsSelectedEvent(draft.ModeSnake))
	service := usecase.NewDraftService(w.events, w.leagues, w.players, nil, "inst-a", w.logger)

	_, err := service.State(context.Background(), "usr-eve", eventIDDraft)
	require.ErrorIs(t, err, usecase.ErrForbidden)
}
