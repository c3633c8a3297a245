package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/leaderboard"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/result"
	"github.com/riskibarqy/recliiga/internal/platform/cache"
)

const leaderboardCachePrefix = "leaderboard:"

type LeaderboardService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	eventRepo  event.Repository
	resultRepo result.Repository
	cache      *cache.Store
}

func NewLeaderboardService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	eventRepo event.Repository,
	resultRepo result.Repository,
	store *cache.Store,
) *LeaderboardService {
	return &LeaderboardService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
		resultRepo: resultRepo,
		cache:      store,
	}
}

// GetLeaderboard returns the ranked rows of a league. Concurrent requests
// for the same league share one computation.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, actorUserID, leagueID string) ([]leaderboard.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetLeaderboard")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	lg, _, err := requireMember(ctx, s.leagueRepo, leagueID, actor.ID)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		return s.compute(ctx, lg.ID)
	}
	rows, err := cache.Load(ctx, s.cache, leaderboardCachePrefix+lg.ID, func(ctx context.Context) ([]leaderboard.Row, error) {
		return s.compute(ctx, lg.ID)
	})
	if err != nil {
		return nil, err
	}

	out := make([]leaderboard.Row, len(rows))
	copy(out, rows)
	return out, nil
}

// InvalidateLeague drops the cached leaderboard of leagueID.
func (s *LeaderboardService) InvalidateLeague(ctx context.Context, leagueID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, leaderboardCachePrefix+leagueID)
}

func (s *LeaderboardService) compute(ctx context.Context, leagueID string) ([]leaderboard.Row, error) {
	var (
		players []player.Player
		events  []event.Event
		results []result.Result
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		members, err := s.leagueRepo.ListMembers(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("list league members: %w", err)
		}
		ids := make([]string, 0, len(members))
		for _, m := range members {
			if m.Accepted() {
				ids = append(ids, m.PlayerID)
			}
		}
		players, err = s.playerRepo.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("get league players: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		events, err = s.eventRepo.ListByLeague(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("list league events: %w", err)
		}
		ids := make([]string, 0, len(events))
		for _, e := range events {
			if e.ResultsEntered {
				ids = append(ids, e.ID)
			}
		}
		results, err = s.resultRepo.ListByEvents(ctx, ids)
		if err != nil {
			return fmt.Errorf("list league results: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	rows := leaderboard.Compute(players, events, results)
	leaderboard.SortByPoints(rows)
	return rows, nil
}
