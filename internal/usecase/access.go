package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
)

// resolveActor loads the player profile of the signed-in user.
func resolveActor(ctx context.Context, players player.Repository, userID string) (player.Player, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return player.Player{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	p, exists, err := players.GetByUserID(ctx, userID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by user: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: create a player profile first", ErrForbidden)
	}

	return p, nil
}

func loadLeague(ctx context.Context, leagues league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	lg, exists, err := leagues.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return lg, nil
}

// requireMember returns the league when playerID is an accepted member.
func requireMember(ctx context.Context, leagues league.Repository, leagueID, playerID string) (league.League, league.Membership, error) {
	lg, err := loadLeague(ctx, leagues, leagueID)
	if err != nil {
		return league.League{}, league.Membership{}, err
	}

	m, exists, err := leagues.GetMembership(ctx, lg.ID, playerID)
	if err != nil {
		return league.League{}, league.Membership{}, fmt.Errorf("get league membership: %w", err)
	}
	if !exists || !m.Accepted() {
		return league.League{}, league.Membership{}, fmt.Errorf("%w: you are not a member of this league", ErrForbidden)
	}

	return lg, m, nil
}

func requireOwner(lg league.League, userID string) error {
	if lg.OwnerUserID != userID {
		return fmt.Errorf("%w: only the league owner can do this", ErrForbidden)
	}
	return nil
}
