package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/league"
)

type leagueTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	OwnerUserID string         `db:"owner_user_id"`
	InviteCode  string         `db:"invite_code"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type leagueInsertModel struct {
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	OwnerUserID string    `db:"owner_user_id"`
	InviteCode  string    `db:"invite_code"`
	CreatedAt   time.Time `db:"created_at"`
}

type leagueMemberTableModel struct {
	ID          int64        `db:"id"`
	LeagueID    string       `db:"league_public_id"`
	PlayerID    string       `db:"player_public_id"`
	Status      string       `db:"status"`
	Role        string       `db:"role"`
	RequestedAt time.Time    `db:"requested_at"`
	JoinedAt    sql.NullTime `db:"joined_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
	DeletedAt   *time.Time   `db:"deleted_at"`
}

type leagueMemberInsertModel struct {
	LeagueID    string     `db:"league_public_id"`
	PlayerID    string     `db:"player_public_id"`
	Status      string     `db:"status"`
	Role        string     `db:"role"`
	RequestedAt time.Time  `db:"requested_at"`
	JoinedAt    *time.Time `db:"joined_at"`
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.PublicID,
		Name:        row.Name,
		Description: nullStringValue(row.Description),
		OwnerUserID: row.OwnerUserID,
		InviteCode:  row.InviteCode,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

func membershipFromRow(row leagueMemberTableModel) league.Membership {
	return league.Membership{
		LeagueID:    row.LeagueID,
		PlayerID:    row.PlayerID,
		Status:      league.MembershipStatus(row.Status),
		Role:        league.Role(row.Role),
		RequestedAt: row.RequestedAt.UTC(),
		JoinedAt:    nullTimeValue(row.JoinedAt),
	}
}

func membershipToInsert(m league.Membership) leagueMemberInsertModel {
	return leagueMemberInsertModel{
		LeagueID:    m.LeagueID,
		PlayerID:    m.PlayerID,
		Status:      string(m.Status),
		Role:        string(m.Role),
		RequestedAt: m.RequestedAt,
		JoinedAt:    nullableTime(m.JoinedAt),
	}
}
