package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/leaderboard"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/result"
	idgen "github.com/riskibarqy/recliiga/internal/platform/id"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
)

type EnterResultInput struct {
	ActorUserID        string
	EventID            string
	Team1Score         int
	Team2Score         int
	AttendingPlayerIDs []string
}

// ResultEntered is broadcast to the league once a result is saved.
type ResultEntered struct {
	LeagueID   string              `json:"league_id"`
	EventID    string              `json:"event_id"`
	Team1Score int                 `json:"team1_score"`
	Team2Score int                 `json:"team2_score"`
	Outcome    leaderboard.Outcome `json:"outcome"`
}

type leaderboardInvalidator interface {
	InvalidateLeague(ctx context.Context, leagueID string)
}

type draftBoardForgetter interface {
	ForgetBoard(eventID string)
}

type ResultService struct {
	eventRepo   event.Repository
	resultRepo  result.Repository
	leagueRepo  league.Repository
	playerRepo  player.Repository
	idGen       idgen.Generator
	publisher   RealtimePublisher
	leaderboard leaderboardInvalidator
	drafts      draftBoardForgetter
	logger      *logging.Logger
	now         func() time.Time
}

func NewResultService(
	eventRepo event.Repository,
	resultRepo result.Repository,
	leagueRepo league.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	publisher RealtimePublisher,
	boards leaderboardInvalidator,
	drafts draftBoardForgetter,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ResultService{
		eventRepo:   eventRepo,
		resultRepo:  resultRepo,
		leagueRepo:  leagueRepo,
		playerRepo:  playerRepo,
		idGen:       idGen,
		publisher:   publisher,
		leaderboard: boards,
		drafts:      drafts,
		logger:      logger,
		now:         time.Now,
	}
}

// GetResult returns the result of an event to league members.
func (s *ResultService) GetResult(ctx context.Context, actorUserID, eventID string) (result.Result, error) {
	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return result.Result{}, err
	}
	e, err := loadEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return result.Result{}, err
	}
	if _, _, err := requireMember(ctx, s.leagueRepo, e.LeagueID, actor.ID); err != nil {
		return result.Result{}, err
	}

	r, exists, err := s.resultRepo.GetByEvent(ctx, e.ID)
	if err != nil {
		return result.Result{}, fmt.Errorf("get result: %w", err)
	}
	if !exists {
		return result.Result{}, fmt.Errorf("%w: no result for event=%s", ErrNotFound, e.ID)
	}
	return r, nil
}

// EnterResult creates the event's result or edits the existing one. Only
// the league owner or one of the event captains may enter it.
func (s *ResultService) EnterResult(ctx context.Context, input EnterResultInput) (result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.EnterResult")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, input.ActorUserID)
	if err != nil {
		return result.Result{}, err
	}
	e, err := loadEvent(ctx, s.eventRepo, input.EventID)
	if err != nil {
		return result.Result{}, err
	}
	lg, _, err := requireMember(ctx, s.leagueRepo, e.LeagueID, actor.ID)
	if err != nil {
		return result.Result{}, err
	}
	if lg.OwnerUserID != actor.UserID && !e.IsCaptain(actor.ID) {
		return result.Result{}, fmt.Errorf("%w: only the owner or a captain can enter results", ErrForbidden)
	}
	if !e.Status.CanTransition(event.StatusCompleted) {
		return result.Result{}, fmt.Errorf("%w: %w: %s -> %s", ErrConflict, event.ErrInvalidTransition, e.Status, event.StatusCompleted)
	}

	attending, err := s.attendingMembers(ctx, lg.ID, input.AttendingPlayerIDs)
	if err != nil {
		return result.Result{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return result.Result{}, fmt.Errorf("generate result id: %w", err)
	}
	now := s.now().UTC()
	r := result.Result{
		ID:                 id,
		EventID:            e.ID,
		Team1Score:         input.Team1Score,
		Team2Score:         input.Team2Score,
		AttendingPlayerIDs: attending,
		EnteredBy:          actor.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := r.Validate(); err != nil {
		return result.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, err := s.resultRepo.Upsert(ctx, r)
	if err != nil {
		return result.Result{}, fmt.Errorf("upsert result: %w", err)
	}
	if err := s.eventRepo.UpdateStatus(ctx, e.ID, event.StatusCompleted, true); err != nil {
		return result.Result{}, fmt.Errorf("mark event completed: %w", err)
	}

	if s.leaderboard != nil {
		s.leaderboard.InvalidateLeague(ctx, lg.ID)
	}
	if s.drafts != nil {
		s.drafts.ForgetBoard(e.ID)
	}
	s.broadcast(ctx, lg.ID, stored)

	return stored, nil
}

// attendingMembers dedupes ids and checks each is an accepted member.
func (s *ResultService) attendingMembers(ctx context.Context, leagueID string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		m, exists, err := s.leagueRepo.GetMembership(ctx, leagueID, id)
		if err != nil {
			return nil, fmt.Errorf("get attendee membership: %w", err)
		}
		if !exists || !m.Accepted() {
			return nil, fmt.Errorf("%w: attendee %s is not a league member", ErrInvalidInput, id)
		}
		out = append(out, id)
	}
	return out, nil
}

func (s *ResultService) broadcast(ctx context.Context, leagueID string, r result.Result) {
	if s.publisher == nil {
		return
	}
	msg := RealtimeMessage{
		Channel: ResultsChannel(leagueID),
		Event:   EventResultEntered,
		Payload: ResultEntered{
			LeagueID:   leagueID,
			EventID:    r.EventID,
			Team1Score: r.Team1Score,
			Team2Score: r.Team2Score,
			Outcome:    leaderboard.OutcomeOf(r.Team1Score, r.Team2Score),
		},
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "publish result entered failed",
			"league_id", leagueID,
			"event_id", r.EventID,
			"error", err,
		)
	}
}
