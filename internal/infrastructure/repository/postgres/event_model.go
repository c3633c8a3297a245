package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/team"
)

const (
	teamSlotOne = 1
	teamSlotTwo = 2
)

type eventTableModel struct {
	ID                  int64          `db:"id"`
	PublicID            string         `db:"public_id"`
	LeagueID            string         `db:"league_public_id"`
	Title               string         `db:"title"`
	Location            sql.NullString `db:"location"`
	StartsAt            time.Time      `db:"starts_at"`
	RSVPDeadlineSeconds int64          `db:"rsvp_deadline_seconds"`
	RosterSpots         int            `db:"roster_spots"`
	DraftMode           string         `db:"draft_mode"`
	Status              string         `db:"status"`
	ResultsEntered      bool           `db:"results_entered"`
	CreatedBy           string         `db:"created_by"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
	DeletedAt           *time.Time     `db:"deleted_at"`
}

type eventInsertModel struct {
	PublicID            string    `db:"public_id"`
	LeagueID            string    `db:"league_public_id"`
	Title               string    `db:"title"`
	Location            *string   `db:"location"`
	StartsAt            time.Time `db:"starts_at"`
	RSVPDeadlineSeconds int64     `db:"rsvp_deadline_seconds"`
	RosterSpots         int       `db:"roster_spots"`
	DraftMode           string    `db:"draft_mode"`
	Status              string    `db:"status"`
	ResultsEntered      bool      `db:"results_entered"`
	CreatedBy           string    `db:"created_by"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

type eventTeamTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	EventID   string         `db:"event_public_id"`
	Slot      int            `db:"slot"`
	Name      string         `db:"name"`
	Color     sql.NullString `db:"color"`
	CaptainID sql.NullString `db:"captain_player_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type eventTeamInsertModel struct {
	PublicID  string  `db:"public_id"`
	EventID   string  `db:"event_public_id"`
	Slot      int     `db:"slot"`
	Name      string  `db:"name"`
	Color     *string `db:"color"`
	CaptainID *string `db:"captain_player_id"`
}

type eventRSVPTableModel struct {
	EventID   string    `db:"event_public_id"`
	PlayerID  string    `db:"player_public_id"`
	CreatedAt time.Time `db:"created_at"`
}

type draftPickTableModel struct {
	ID        int64     `db:"id"`
	EventID   string    `db:"event_public_id"`
	TeamID    string    `db:"team_public_id"`
	PlayerID  string    `db:"player_public_id"`
	CreatedAt time.Time `db:"created_at"`
}

func eventToInsert(e event.Event) eventInsertModel {
	return eventInsertModel{
		PublicID:            e.ID,
		LeagueID:            e.LeagueID,
		Title:               e.Title,
		Location:            nullableString(e.Location),
		StartsAt:            e.StartsAt,
		RSVPDeadlineSeconds: int64(e.RSVPDeadline / time.Second),
		RosterSpots:         e.RosterSpots,
		DraftMode:           string(e.DraftMode),
		Status:              string(e.Status),
		ResultsEntered:      e.ResultsEntered,
		CreatedBy:           e.CreatedBy,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func teamToInsert(t team.Team, slot int) eventTeamInsertModel {
	return eventTeamInsertModel{
		PublicID:  t.ID,
		EventID:   t.EventID,
		Slot:      slot,
		Name:      t.Name,
		Color:     nullableString(t.Color),
		CaptainID: nullableString(t.CaptainID),
	}
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:             row.PublicID,
		LeagueID:       row.LeagueID,
		Title:          row.Title,
		Location:       nullStringValue(row.Location),
		StartsAt:       row.StartsAt.UTC(),
		RSVPDeadline:   time.Duration(row.RSVPDeadlineSeconds) * time.Second,
		RosterSpots:    row.RosterSpots,
		DraftMode:      draft.Mode(row.DraftMode),
		Status:         event.Status(row.Status),
		ResultsEntered: row.ResultsEntered,
		PlayerIDs:      []string{},
		CreatedBy:      row.CreatedBy,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}

func teamFromRow(row eventTeamTableModel) team.Team {
	return team.Team{
		ID:        row.PublicID,
		EventID:   row.EventID,
		Name:      row.Name,
		Color:     nullStringValue(row.Color),
		CaptainID: nullStringValue(row.CaptainID),
		PlayerIDs: []string{},
	}
}
