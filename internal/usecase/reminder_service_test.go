package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/team"
	"github.com/riskibarqy/recliiga/internal/infrastructure/repository/memory"
	usecasemock "github.com/riskibarqy/recliiga/internal/mocks/usecase"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

var reminderNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

// closingEvent's RSVPs close six hours after reminderNow. Only Ana has
// answered.
func closingEvent() event.Event {
	return event.Event{
		ID:           "evt-closing",
		LeagueID:     memory.LeagueIDSundayFive,
		Title:        "Midweek Kickabout",
		Location:     "Riverside Park Pitch 2",
		StartsAt:     reminderNow.Add(30 * time.Hour),
		RSVPDeadline: 24 * time.Hour,
		RosterSpots:  10,
		DraftMode:    draft.ModeAlternating,
		Status:       event.StatusOpen,
		PlayerIDs:    []string{"pl-ana"},
		Team1:        team.Team{ID: "tm-closing-1", EventID: "evt-closing", Name: "Team 1"},
		Team2:        team.Team{ID: "tm-closing-2", EventID: "evt-closing", Name: "Team 2"},
	}
}

func toAny(addrs ...string) func(usecase.Email) bool {
	return func(e usecase.Email) bool {
		for _, a := range addrs {
			if e.To == a {
				return true
			}
		}
		return false
	}
}

func TestReminderService_SendRSVPReminders_OncePerMember(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWorld(closingEvent())
	sender := usecasemock.NewEmailSender(t)
	sender.
		On("Send", mock.Anything, mock.MatchedBy(func(e usecase.Email) bool {
			return toAny("ben@example.com", "cai@example.com", "dee@example.com")(e) &&
				strings.Contains(e.Subject, "Midweek Kickabout") &&
				strings.Contains(e.Text, "6h0m0s")
		})).
		Return(nil).
		Times(3)

	service := usecase.NewReminderService(w.events, w.leagues, w.players, sender, usecase.ReminderConfig{Lead: 24 * time.Hour, MaxWorkers: 2}, w.logger)

	got, err := service.SendRSVPReminders(ctx, reminderNow)
	require.NoError(t, err)
	require.Equal(t, usecase.ReminderResult{EventCount: 1, SentCount: 3, WorkerCount: 2}, got)

	again, err := service.SendRSVPReminders(ctx, reminderNow.Add(time.Hour))
	require.NoError(t, err)
	require.Zero(t, again.SentCount)
}

func TestReminderService_SendRSVPReminders_RetriesFailedSend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := newWorld(closingEvent())
	sender := usecasemock.NewEmailSender(t)
	sender.
		On("Send", mock.Anything, mock.MatchedBy(toAny("ben@example.com"))).
		Return(errors.New("ses throttled")).
		Once()
	sender.
		On("Send", mock.Anything, mock.MatchedBy(toAny("cai@example.com", "dee@example.com"))).
		Return(nil).
		Times(2)
	sender.
		On("Send", mock.Anything, mock.MatchedBy(toAny("ben@example.com"))).
		Return(nil).
		Once()

	service := usecase.NewReminderService(w.events, w.leagues, w.players, sender, usecase.ReminderConfig{Lead: 24 * time.Hour}, w.logger)

	first, err := service.SendRSVPReminders(ctx, reminderNow)
	require.NoError(t, err)
	require.Equal(t, 2, first.SentCount)
	require.Equal(t, 1, first.FailedCount)

	second, err := service.SendRSVPReminders(ctx, reminderNow)
	require.NoError(t, err)
	require.Equal(t, 1, second.SentCount)
	require.Zero(t, second.FailedCount)
}

func TestReminderService_SendRSVPReminders_SkipsEventsOutsideLead(t *testing.T) {
	t.Parallel()

	w := newWorld(closingEvent())
	sender := usecasemock.NewEmailSender(t)
	service := usecase.NewReminderService(w.events, w.leagues, w.players, sender, usecase.ReminderConfig{Lead: time.Hour}, w.logger)

	got, err := service.SendRSVPReminders(context.Background(), reminderNow)
	require.NoError(t, err)
	require.Zero(t, got.EventCount)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestReminderService_SendRSVPReminders_RequiresSender(t *testing.T) {
	t.Parallel()

	w := newWorld(closingEvent())
	service := usecase.NewReminderService(w.events, w.leagues, w.players, nil, usecase.ReminderConfig{}, w.logger)

	_, err := service.SendRSVPReminders(context.Background(), reminderNow)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}
