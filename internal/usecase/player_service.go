package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/player"
	idgen "github.com/riskibarqy/recliiga/internal/platform/id"
)

type UpsertProfileInput struct {
	ActorUserID string
	ActorEmail  string
	Name        string
	AvatarURL   string
	Positions   []string
}

type PlayerService struct {
	playerRepo player.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, idGen idgen.Generator) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

// UpsertProfile creates the caller's player profile on first use and edits
// it afterwards.
func (s *PlayerService) UpsertProfile(ctx context.Context, input UpsertProfileInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpsertProfile")
	defer span.End()

	input.ActorUserID = strings.TrimSpace(input.ActorUserID)
	if input.ActorUserID == "" {
		return player.Player{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	current, exists, err := s.playerRepo.GetByUserID(ctx, input.ActorUserID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by user: %w", err)
	}

	now := s.now().UTC()
	if !exists {
		id, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		current = player.Player{ID: id, UserID: input.ActorUserID, CreatedAt: now}
	}

	current.Name = strings.TrimSpace(input.Name)
	current.AvatarURL = strings.TrimSpace(input.AvatarURL)
	if email := strings.TrimSpace(input.ActorEmail); email != "" {
		current.Email = email
	}
	current.Positions = make([]player.Position, 0, len(input.Positions))
	for _, raw := range input.Positions {
		current.Positions = append(current.Positions, player.Position(strings.ToUpper(strings.TrimSpace(raw))))
	}
	current.UpdatedAt = now

	if err := current.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Upsert(ctx, current); err != nil {
		return player.Player{}, fmt.Errorf("upsert player: %w", err)
	}

	return current, nil
}

func (s *PlayerService) GetProfile(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return p, nil
}

func (s *PlayerService) GetByUser(ctx context.Context, userID string) (player.Player, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return player.Player{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	p, exists, err := s.playerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by user: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: no player profile for user", ErrNotFound)
	}

	return p, nil
}
