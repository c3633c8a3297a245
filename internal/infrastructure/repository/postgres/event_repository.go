package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/team"
	qb "github.com/riskibarqy/recliiga/internal/platform/querybuilder"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e event.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create event: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertEvent, err := qb.InsertModel("events", eventToInsert(e))
	if err != nil {
		return fmt.Errorf("build create event query: %w", err)
	}
	query, args, err := insertEvent.ToSQL()
	if err != nil {
		return fmt.Errorf("build create event query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return conflictOr("create event", err)
	}

	if err := upsertTeams(ctx, tx, e.Team1, e.Team2); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create event tx: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(
			qb.Eq("public_id", eventID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event by id query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event by id: %w", err)
	}

	items, err := hydrateEvents(ctx, r.db, []eventTableModel{row})
	if err != nil {
		return event.Event{}, false, err
	}
	return items[0], true, nil
}

func (r *EventRepository) ListByLeague(ctx context.Context, leagueID string) ([]event.Event, error) {
	return r.list(ctx, "list events by league",
		qb.Eq("league_public_id", leagueID),
		qb.IsNull("deleted_at"),
	)
}

func (r *EventRepository) ListDeadlineBetween(ctx context.Context, from, to time.Time) ([]event.Event, error) {
	return r.list(ctx, "list events by rsvp deadline",
		qb.Eq("status", string(event.StatusOpen)),
		qb.Expr("starts_at - rsvp_deadline_seconds * INTERVAL '1 second' >= ?", from),
		qb.Expr("starts_at - rsvp_deadline_seconds * INTERVAL '1 second' < ?", to),
		qb.IsNull("deleted_at"),
	)
}

// SetRSVP locks the event row so the roster_spots bound holds across
// concurrent RSVPs from any instance.
func (r *EventRepository) SetRSVP(ctx context.Context, eventID, playerID string, attending bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx set rsvp: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("roster_spots").From("events").
		Where(
			qb.Eq("public_id", eventID),
			qb.IsNull("deleted_at"),
		).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock event query: %w", err)
	}
	var rosterSpots int
	if err := tx.GetContext(ctx, &rosterSpots, query, args...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: event=%s", usecase.ErrNotFound, eventID)
		}
		return fmt.Errorf("lock event: %w", err)
	}

	if attending {
		query, args, err = qb.Select("COUNT(1)").From("event_rsvps").
			Where(qb.Eq("event_public_id", eventID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build count rsvps query: %w", err)
		}
		var taken int
		if err := tx.GetContext(ctx, &taken, query, args...); err != nil {
			return fmt.Errorf("count rsvps: %w", err)
		}

		query, args, err = qb.InsertInto("event_rsvps").
			Columns("event_public_id", "player_public_id").
			Values(eventID, playerID).
			OnConflictDoNothing("event_public_id", "player_public_id").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build set rsvp query: %w", err)
		}
		if taken >= rosterSpots {
			// An existing RSVP is a no-op even on a full roster.
			query, args, err = qb.Select("COUNT(1)").From("event_rsvps").
				Where(
					qb.Eq("event_public_id", eventID),
					qb.Eq("player_public_id", playerID),
				).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build check rsvp query: %w", err)
			}
			var existing int
			if err := tx.GetContext(ctx, &existing, query, args...); err != nil {
				return fmt.Errorf("check rsvp: %w", err)
			}
			if existing == 0 {
				return fmt.Errorf("%w: event=%s spots=%d", event.ErrEventFull, eventID, rosterSpots)
			}
			return nil
		}
	} else {
		query, args, err = qb.DeleteFrom("event_rsvps").
			Where(
				qb.Eq("event_public_id", eventID),
				qb.Eq("player_public_id", playerID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build set rsvp query: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set rsvp: %w", err)
	}

	if err := touchEvent(ctx, tx, eventID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set rsvp tx: %w", err)
	}
	return nil
}

// SaveTeams replaces both team rows and their drafted players.
func (r *EventRepository) SaveTeams(ctx context.Context, eventID string, team1, team2 team.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save teams: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := upsertTeams(ctx, tx, team1, team2); err != nil {
		return err
	}

	query, args, err := qb.DeleteFrom("draft_picks").
		Where(qb.Eq("event_public_id", eventID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear draft picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear draft picks: %w", err)
	}

	picks := qb.InsertInto("draft_picks").Columns("event_public_id", "team_public_id", "player_public_id")
	count := 0
	for _, t := range []team.Team{team1, team2} {
		for _, playerID := range t.PlayerIDs {
			picks.Values(eventID, t.ID, playerID)
			count++
		}
	}
	if count > 0 {
		query, args, err = picks.ToSQL()
		if err != nil {
			return fmt.Errorf("build save draft picks query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return conflictOr("save draft picks", err)
		}
	}

	if err := touchEvent(ctx, tx, eventID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save teams tx: %w", err)
	}
	return nil
}

// AddPick relies on the (event_public_id, player_public_id) unique key so
// concurrent picks from different instances cannot draft a player twice.
func (r *EventRepository) AddPick(ctx context.Context, eventID, teamID, playerID string) error {
	query, args, err := qb.Select("COUNT(1)").From("event_teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.Eq("event_public_id", eventID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build check pick team query: %w", err)
	}
	var teams int
	if err := r.db.GetContext(ctx, &teams, query, args...); err != nil {
		return fmt.Errorf("check pick team: %w", err)
	}
	if teams == 0 {
		return fmt.Errorf("%w: team=%s not in event=%s", usecase.ErrNotFound, teamID, eventID)
	}

	query, args, err = qb.InsertInto("draft_picks").
		Columns("event_public_id", "team_public_id", "player_public_id").
		Values(eventID, teamID, playerID).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add pick query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return conflictOr("add pick", err)
	}

	return r.touch(ctx, eventID)
}

func (r *EventRepository) UpdateStatus(ctx context.Context, eventID string, status event.Status, resultsEntered bool) error {
	query, args, err := qb.Update("events").
		Set("status", string(status)).
		Set("results_entered", resultsEntered).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", eventID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update event status query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update event status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: event=%s", usecase.ErrNotFound, eventID)
	}
	return nil
}

func (r *EventRepository) list(ctx context.Context, op string, conds ...qb.Condition) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		Where(conds...).
		OrderBy("starts_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return hydrateEvents(ctx, r.db, rows)
}

func (r *EventRepository) touch(ctx context.Context, eventID string) error {
	return touchEvent(ctx, r.db, eventID)
}

func touchEvent(ctx context.Context, exec sqlx.ExecerContext, eventID string) error {
	query, args, err := qb.Update("events").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", eventID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build touch event query: %w", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("touch event: %w", err)
	}
	return nil
}

func upsertTeams(ctx context.Context, tx *sqlx.Tx, team1, team2 team.Team) error {
	insert := qb.InsertInto("event_teams")
	for i, t := range []team.Team{team1, team2} {
		cols, vals, err := qb.ModelColumns(teamToInsert(t, i+1))
		if err != nil {
			return fmt.Errorf("build upsert event teams query: %w", err)
		}
		insert.Columns(cols...).Values(vals...)
	}
	query, args, err := insert.
		OnConflictUpdate([]string{"event_public_id", "slot"}, "public_id", "name", "color", "captain_player_id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert event teams query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return conflictOr("upsert event teams", err)
	}
	return nil
}

// hydrateEvents loads teams, picks and RSVPs for rows in three batched
// queries.
func hydrateEvents(ctx context.Context, q sqlx.QueryerContext, rows []eventTableModel) ([]event.Event, error) {
	out := make([]event.Event, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	index := make(map[string]int, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		index[row.PublicID] = len(out)
		ids = append(ids, row.PublicID)
		out = append(out, eventFromRow(row))
	}

	teamsQuery, teamsArgs, err := qb.Select("*").From("event_teams").
		Where(qb.In("event_public_id", stringSliceToAny(ids))).
		OrderBy("event_public_id", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select event teams query: %w", err)
	}
	var teamRows []eventTeamTableModel
	if err := sqlx.SelectContext(ctx, q, &teamRows, teamsQuery, teamsArgs...); err != nil {
		return nil, fmt.Errorf("select event teams: %w", err)
	}
	for _, row := range teamRows {
		e := &out[index[row.EventID]]
		switch row.Slot {
		case teamSlotOne:
			e.Team1 = teamFromRow(row)
		case teamSlotTwo:
			e.Team2 = teamFromRow(row)
		}
	}

	picksQuery, picksArgs, err := qb.Select("*").From("draft_picks").
		Where(qb.In("event_public_id", stringSliceToAny(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select draft picks query: %w", err)
	}
	var pickRows []draftPickTableModel
	if err := sqlx.SelectContext(ctx, q, &pickRows, picksQuery, picksArgs...); err != nil {
		return nil, fmt.Errorf("select draft picks: %w", err)
	}
	for _, row := range pickRows {
		e := &out[index[row.EventID]]
		switch row.TeamID {
		case e.Team1.ID:
			e.Team1.PlayerIDs = append(e.Team1.PlayerIDs, row.PlayerID)
		case e.Team2.ID:
			e.Team2.PlayerIDs = append(e.Team2.PlayerIDs, row.PlayerID)
		}
	}

	rsvpQuery, rsvpArgs, err := qb.Select("*").From("event_rsvps").
		Where(qb.In("event_public_id", stringSliceToAny(ids))).
		OrderBy("created_at", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select event rsvps query: %w", err)
	}
	var rsvpRows []eventRSVPTableModel
	if err := sqlx.SelectContext(ctx, q, &rsvpRows, rsvpQuery, rsvpArgs...); err != nil {
		return nil, fmt.Errorf("select event rsvps: %w", err)
	}
	for _, row := range rsvpRows {
		e := &out[index[row.EventID]]
		e.PlayerIDs = append(e.PlayerIDs, row.PlayerID)
	}

	return out, nil
}
