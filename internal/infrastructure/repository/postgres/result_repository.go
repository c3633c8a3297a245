package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/recliiga/internal/domain/result"
	qb "github.com/riskibarqy/recliiga/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Upsert keeps one result per event. On conflict the original public id and
// created_at survive and are returned.
func (r *ResultRepository) Upsert(ctx context.Context, item result.Result) (result.Result, error) {
	insert, err := qb.InsertModel("results", resultInsertModel{
		PublicID:           item.ID,
		EventID:            item.EventID,
		Team1Score:         item.Team1Score,
		Team2Score:         item.Team2Score,
		AttendingPlayerIDs: append(pq.StringArray{}, item.AttendingPlayerIDs...),
		EnteredBy:          item.EnteredBy,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	})
	if err != nil {
		return result.Result{}, fmt.Errorf("build upsert result query: %w", err)
	}
	query, args, err := insert.
		OnConflictUpdate([]string{"event_public_id"}, "team1_score", "team2_score", "attending_player_ids", "entered_by", "updated_at").
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return result.Result{}, fmt.Errorf("build upsert result query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return result.Result{}, conflictOr("upsert result", err)
	}
	return resultFromRow(row), nil
}

func (r *ResultRepository) GetByEvent(ctx context.Context, eventID string) (result.Result, bool, error) {
	query, args, err := qb.Select("*").From("results").
		Where(qb.Eq("event_public_id", eventID)).
		ToSQL()
	if err != nil {
		return result.Result{}, false, fmt.Errorf("build get result by event query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.Result{}, false, nil
		}
		return result.Result{}, false, fmt.Errorf("get result by event: %w", err)
	}
	return resultFromRow(row), true, nil
}

func (r *ResultRepository) ListByEvents(ctx context.Context, eventIDs []string) ([]result.Result, error) {
	if len(eventIDs) == 0 {
		return []result.Result{}, nil
	}

	query, args, err := qb.Select("*").From("results").
		Where(qb.In("event_public_id", stringSliceToAny(eventIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results by events query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results by events: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}
	return out, nil
}
