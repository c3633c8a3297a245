package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/recliiga/internal/domain/player"
)

type playerTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	UserID    string         `db:"user_id"`
	Name      string         `db:"name"`
	Email     sql.NullString `db:"email"`
	AvatarURL sql.NullString `db:"avatar_url"`
	Positions pq.StringArray `db:"positions"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID  string         `db:"public_id"`
	UserID    string         `db:"user_id"`
	Name      string         `db:"name"`
	Email     *string        `db:"email"`
	AvatarURL *string        `db:"avatar_url"`
	Positions pq.StringArray `db:"positions"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	positions := make([]player.Position, 0, len(row.Positions))
	for _, pos := range row.Positions {
		positions = append(positions, player.Position(pos))
	}
	return player.Player{
		ID:        row.PublicID,
		UserID:    row.UserID,
		Name:      row.Name,
		Email:     nullStringValue(row.Email),
		AvatarURL: nullStringValue(row.AvatarURL),
		Positions: positions,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func playerToInsert(p player.Player) playerInsertModel {
	positions := make(pq.StringArray, 0, len(p.Positions))
	for _, pos := range p.Positions {
		positions = append(positions, string(pos))
	}
	return playerInsertModel{
		PublicID:  p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Email:     nullableString(p.Email),
		AvatarURL: nullableString(p.AvatarURL),
		Positions: positions,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
