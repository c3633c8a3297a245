package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/recliiga/internal/domain/rating"
	qb "github.com/riskibarqy/recliiga/internal/platform/querybuilder"
)

type ratingTableModel struct {
	ID        int64     `db:"id"`
	LeagueID  string    `db:"league_public_id"`
	RaterID   string    `db:"rater_player_id"`
	PlayerID  string    `db:"rated_player_id"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type ratingInsertModel struct {
	LeagueID  string    `db:"league_public_id"`
	RaterID   string    `db:"rater_player_id"`
	PlayerID  string    `db:"rated_player_id"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type RatingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Upsert(ctx context.Context, item rating.Rating) error {
	insert, err := qb.InsertModel("player_ratings", ratingInsertModel{
		LeagueID:  item.LeagueID,
		RaterID:   item.RaterID,
		PlayerID:  item.PlayerID,
		Score:     item.Score,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("build upsert rating query: %w", err)
	}
	query, args, err := insert.
		OnConflictUpdate([]string{"league_public_id", "rater_player_id", "rated_player_id"}, "score", "updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert rating query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

func (r *RatingRepository) ListForPlayer(ctx context.Context, leagueID, playerID string) ([]rating.Rating, error) {
	query, args, err := qb.Select("*").From("player_ratings").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("rated_player_id", playerID),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ratings query: %w", err)
	}

	var rows []ratingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	out := make([]rating.Rating, 0, len(rows))
	for _, row := range rows {
		out = append(out, rating.Rating{
			LeagueID:  row.LeagueID,
			RaterID:   row.RaterID,
			PlayerID:  row.PlayerID,
			Score:     row.Score,
			CreatedAt: row.CreatedAt.UTC(),
			UpdatedAt: row.UpdatedAt.UTC(),
		})
	}
	return out, nil
}
