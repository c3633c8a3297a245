package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/rating"
)

type RatePlayerInput struct {
	ActorUserID string
	LeagueID    string
	PlayerID    string
	Score       int
}

type RatingService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	ratingRepo rating.Repository
	now        func() time.Time
}

func NewRatingService(leagueRepo league.Repository, playerRepo player.Repository, ratingRepo rating.Repository) *RatingService {
	return &RatingService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		ratingRepo: ratingRepo,
		now:        time.Now,
	}
}

// RatePlayer stores the caller's score for a fellow member and returns the
// updated league average.
func (s *RatingService) RatePlayer(ctx context.Context, input RatePlayerInput) (rating.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.RatePlayer")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, input.ActorUserID)
	if err != nil {
		return rating.Summary{}, err
	}
	lg, _, err := requireMember(ctx, s.leagueRepo, input.LeagueID, actor.ID)
	if err != nil {
		return rating.Summary{}, err
	}

	targetID := strings.TrimSpace(input.PlayerID)
	target, exists, err := s.leagueRepo.GetMembership(ctx, lg.ID, targetID)
	if err != nil {
		return rating.Summary{}, fmt.Errorf("get rated player membership: %w", err)
	}
	if !exists || !target.Accepted() {
		return rating.Summary{}, fmt.Errorf("%w: player=%s is not a league member", ErrNotFound, targetID)
	}

	now := s.now().UTC()
	r := rating.Rating{
		LeagueID:  lg.ID,
		RaterID:   actor.ID,
		PlayerID:  targetID,
		Score:     input.Score,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Validate(); err != nil {
		return rating.Summary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ratingRepo.Upsert(ctx, r); err != nil {
		return rating.Summary{}, fmt.Errorf("upsert rating: %w", err)
	}

	return s.summary(ctx, lg.ID, targetID)
}

func (s *RatingService) GetPlayerRating(ctx context.Context, actorUserID, leagueID, playerID string) (rating.Summary, error) {
	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return rating.Summary{}, err
	}
	lg, _, err := requireMember(ctx, s.leagueRepo, leagueID, actor.ID)
	if err != nil {
		return rating.Summary{}, err
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return rating.Summary{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	return s.summary(ctx, lg.ID, playerID)
}

func (s *RatingService) summary(ctx context.Context, leagueID, playerID string) (rating.Summary, error) {
	items, err := s.ratingRepo.ListForPlayer(ctx, leagueID, playerID)
	if err != nil {
		return rating.Summary{}, fmt.Errorf("list player ratings: %w", err)
	}
	return rating.Summarize(leagueID, playerID, items), nil
}
