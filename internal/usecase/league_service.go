package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	idgen "github.com/riskibarqy/recliiga/internal/platform/id"
)

type CreateLeagueInput struct {
	ActorUserID string
	Name        string
	Description string
}

// Member is a membership joined with the player's profile.
type Member struct {
	Membership league.Membership
	Player     player.Player
}

type LeagueService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	inviteCode func() (string, error)
	now        func() time.Time
}

func NewLeagueService(leagueRepo league.Repository, playerRepo player.Repository, idGen idgen.Generator) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		inviteCode: idgen.NewInviteCode,
		now:        time.Now,
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, input.ActorUserID)
	if err != nil {
		return league.League{}, err
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	code, err := s.inviteCode()
	if err != nil {
		return league.League{}, fmt.Errorf("generate invite code: %w", err)
	}

	now := s.now().UTC()
	lg := league.League{
		ID:          leagueID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		OwnerUserID: actor.UserID,
		InviteCode:  code,
		CreatedAt:   now,
	}
	if err := lg.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	owner := league.Membership{
		LeagueID:    lg.ID,
		PlayerID:    actor.ID,
		Status:      league.MembershipAccepted,
		Role:        league.RoleOwner,
		RequestedAt: now,
		JoinedAt:    now,
	}
	if err := s.leagueRepo.Create(ctx, lg, owner); err != nil {
		if errors.Is(err, ErrConflict) {
			return league.League{}, fmt.Errorf("%w: duplicate league invite code", ErrConflict)
		}
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	return lg, nil
}

func (s *LeagueService) ListMyLeagues(ctx context.Context, actorUserID string) ([]league.League, error) {
	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return nil, err
	}

	items, err := s.leagueRepo.ListByPlayer(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by player: %w", err)
	}

	return items, nil
}

// GetLeague is visible to any signed-in user so they can request to join.
// The invite code is only returned to accepted members.
func (s *LeagueService) GetLeague(ctx context.Context, actorUserID, leagueID string) (league.League, error) {
	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return league.League{}, err
	}

	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return league.League{}, err
	}

	m, exists, err := s.leagueRepo.GetMembership(ctx, lg.ID, actor.ID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league membership: %w", err)
	}
	if !exists || !m.Accepted() {
		lg.InviteCode = ""
	}

	return lg, nil
}

func (s *LeagueService) RequestToJoin(ctx context.Context, actorUserID, leagueID string) (league.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.RequestToJoin")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return league.Membership{}, err
	}
	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return league.Membership{}, err
	}

	_, exists, err := s.leagueRepo.GetMembership(ctx, lg.ID, actor.ID)
	if err != nil {
		return league.Membership{}, fmt.Errorf("get league membership: %w", err)
	}
	if exists {
		return league.Membership{}, fmt.Errorf("%w: membership already exists", ErrConflict)
	}

	m := league.Membership{
		LeagueID:    lg.ID,
		PlayerID:    actor.ID,
		Status:      league.MembershipPending,
		Role:        league.RoleMember,
		RequestedAt: s.now().UTC(),
	}
	if err := s.leagueRepo.UpsertMembership(ctx, m); err != nil {
		return league.Membership{}, fmt.Errorf("create join request: %w", err)
	}

	return m, nil
}

// JoinByInviteCode accepts the caller straight away. A pending request is
// promoted; an existing accepted membership is returned unchanged.
func (s *LeagueService) JoinByInviteCode(ctx context.Context, actorUserID, inviteCode string) (league.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinByInviteCode")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return league.Membership{}, err
	}

	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if inviteCode == "" {
		return league.Membership{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}
	lg, exists, err := s.leagueRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return league.Membership{}, fmt.Errorf("get league by invite code: %w", err)
	}
	if !exists {
		return league.Membership{}, fmt.Errorf("%w: invite code not found", ErrNotFound)
	}

	now := s.now().UTC()
	m, exists, err := s.leagueRepo.GetMembership(ctx, lg.ID, actor.ID)
	if err != nil {
		return league.Membership{}, fmt.Errorf("get league membership: %w", err)
	}
	if exists && m.Accepted() {
		return m, nil
	}
	if !exists {
		m = league.Membership{LeagueID: lg.ID, PlayerID: actor.ID, Role: league.RoleMember, RequestedAt: now}
	}
	m.Status = league.MembershipAccepted
	m.JoinedAt = now

	if err := s.leagueRepo.UpsertMembership(ctx, m); err != nil {
		return league.Membership{}, fmt.Errorf("join league: %w", err)
	}

	return m, nil
}

func (s *LeagueService) AcceptMember(ctx context.Context, actorUserID, leagueID, playerID string) (league.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.AcceptMember")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return league.Membership{}, err
	}
	if err := requireOwner(lg, strings.TrimSpace(actorUserID)); err != nil {
		return league.Membership{}, err
	}

	playerID = strings.TrimSpace(playerID)
	m, exists, err := s.leagueRepo.GetMembership(ctx, lg.ID, playerID)
	if err != nil {
		return league.Membership{}, fmt.Errorf("get league membership: %w", err)
	}
	if !exists {
		return league.Membership{}, fmt.Errorf("%w: join request not found", ErrNotFound)
	}
	if m.Accepted() {
		return m, nil
	}

	m.Status = league.MembershipAccepted
	m.JoinedAt = s.now().UTC()
	if err := s.leagueRepo.UpsertMembership(ctx, m); err != nil {
		return league.Membership{}, fmt.Errorf("accept member: %w", err)
	}

	return m, nil
}

// ListMembers returns accepted members to members, and pending requests as
// well to the owner.
func (s *LeagueService) ListMembers(ctx context.Context, actorUserID, leagueID string) ([]Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMembers")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	lg, _, err := requireMember(ctx, s.leagueRepo, leagueID, actor.ID)
	if err != nil {
		return nil, err
	}
	isOwner := lg.OwnerUserID == actor.UserID

	memberships, err := s.leagueRepo.ListMembers(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get member players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	out := make([]Member, 0, len(memberships))
	for _, m := range memberships {
		if !m.Accepted() && !isOwner {
			continue
		}
		out = append(out, Member{Membership: m, Player: byID[m.PlayerID]})
	}

	return out, nil
}
