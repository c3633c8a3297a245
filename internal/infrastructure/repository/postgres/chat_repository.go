package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/recliiga/internal/domain/chat"
	qb "github.com/riskibarqy/recliiga/internal/platform/querybuilder"
)

type chatMessageTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	LeagueID   string    `db:"league_public_id"`
	SenderID   string    `db:"sender_player_id"`
	SenderName string    `db:"sender_name"`
	Body       string    `db:"body"`
	SentAt     time.Time `db:"sent_at"`
}

type chatMessageInsertModel struct {
	PublicID   string    `db:"public_id"`
	LeagueID   string    `db:"league_public_id"`
	SenderID   string    `db:"sender_player_id"`
	SenderName string    `db:"sender_name"`
	Body       string    `db:"body"`
	SentAt     time.Time `db:"sent_at"`
}

type ChatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Append(ctx context.Context, m chat.Message) error {
	insert, err := qb.InsertModel("chat_messages", chatMessageInsertModel{
		PublicID:   m.ID,
		LeagueID:   m.LeagueID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Body:       m.Body,
		SentAt:     m.SentAt,
	})
	if err != nil {
		return fmt.Errorf("build append chat message query: %w", err)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build append chat message query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return conflictOr("append chat message", err)
	}
	return nil
}

func (r *ChatRepository) ListByLeague(ctx context.Context, leagueID string, limit int) ([]chat.Message, error) {
	sel := qb.Select("*").From("chat_messages").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("sent_at DESC", "id DESC")
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args, err := sel.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list chat messages query: %w", err)
	}

	var rows []chatMessageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}

	out := make([]chat.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, chat.Message{
			ID:         row.PublicID,
			LeagueID:   row.LeagueID,
			SenderID:   row.SenderID,
			SenderName: row.SenderName,
			Body:       row.Body,
			SentAt:     row.SentAt.UTC(),
		})
	}
	return out, nil
}
