package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/recliiga/internal/domain/result"
)

type resultTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	EventID            string         `db:"event_public_id"`
	Team1Score         int            `db:"team1_score"`
	Team2Score         int            `db:"team2_score"`
	AttendingPlayerIDs pq.StringArray `db:"attending_player_ids"`
	EnteredBy          string         `db:"entered_by"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

type resultInsertModel struct {
	PublicID           string         `db:"public_id"`
	EventID            string         `db:"event_public_id"`
	Team1Score         int            `db:"team1_score"`
	Team2Score         int            `db:"team2_score"`
	AttendingPlayerIDs pq.StringArray `db:"attending_player_ids"`
	EnteredBy          string         `db:"entered_by"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func resultFromRow(row resultTableModel) result.Result {
	return result.Result{
		ID:                 row.PublicID,
		EventID:            row.EventID,
		Team1Score:         row.Team1Score,
		Team2Score:         row.Team2Score,
		AttendingPlayerIDs: append([]string{}, row.AttendingPlayerIDs...),
		EnteredBy:          row.EnteredBy,
		CreatedAt:          row.CreatedAt.UTC(),
		UpdatedAt:          row.UpdatedAt.UTC(),
	}
}
