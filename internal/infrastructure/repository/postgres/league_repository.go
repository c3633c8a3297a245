package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	qb "github.com/riskibarqy/recliiga/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League, owner league.Membership) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create league: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertLeague, err := qb.InsertModel("leagues", leagueInsertModel{
		PublicID:    l.ID,
		Name:        l.Name,
		Description: nullableString(l.Description),
		OwnerUserID: l.OwnerUserID,
		InviteCode:  l.InviteCode,
		CreatedAt:   l.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("build create league query: %w", err)
	}
	query, args, err := insertLeague.ToSQL()
	if err != nil {
		return fmt.Errorf("build create league query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return conflictOr("create league", err)
	}

	insertOwner, err := qb.InsertModel("league_members", membershipToInsert(owner))
	if err != nil {
		return fmt.Errorf("build create league owner query: %w", err)
	}
	query, args, err = insertOwner.ToSQL()
	if err != nil {
		return fmt.Errorf("build create league owner query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return conflictOr("create league owner", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create league tx: %w", err)
	}
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, "get league by id", qb.Eq("public_id", leagueID))
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, code string) (league.League, bool, error) {
	return r.getOne(ctx, "get league by invite code", qb.Eq("invite_code", code))
}

func (r *LeagueRepository) ListByPlayer(ctx context.Context, playerID string) ([]league.League, error) {
	query, args, err := qb.Select("l.*").
		From("leagues l JOIN league_members lm ON lm.league_public_id = l.public_id").
		Where(
			qb.Eq("lm.player_public_id", playerID),
			qb.Eq("lm.status", string(league.MembershipAccepted)),
			qb.IsNull("lm.deleted_at"),
			qb.IsNull("l.deleted_at"),
		).
		OrderBy("l.created_at DESC", "l.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues by player query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues by player: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) UpsertMembership(ctx context.Context, m league.Membership) error {
	insert, err := qb.InsertModel("league_members", membershipToInsert(m))
	if err != nil {
		return fmt.Errorf("build upsert membership query: %w", err)
	}
	query, args, err := insert.
		OnConflictUpdate([]string{"league_public_id", "player_public_id"}, "status", "role", "joined_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert membership query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return conflictOr("upsert membership", err)
	}

	return nil
}

func (r *LeagueRepository) GetMembership(ctx context.Context, leagueID, playerID string) (league.Membership, bool, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("player_public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row leagueMemberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Membership{}, false, nil
		}
		return league.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}
	return membershipFromRow(row), true, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Membership, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("requested_at", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members query: %w", err)
	}

	var rows []leagueMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]league.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) getOne(ctx context.Context, op string, cond qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(cond, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return leagueFromRow(row), true, nil
}
