package httpapi

import (
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/chat"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/leaderboard"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/rating"
	"github.com/riskibarqy/recliiga/internal/domain/result"
	"github.com/riskibarqy/recliiga/internal/domain/team"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

type upsertProfileRequest struct {
	Name      string   `json:"name" validate:"required,max=100"`
	AvatarURL string   `json:"avatar_url" validate:"omitempty,url,max=500"`
	Positions []string `json:"positions" validate:"omitempty,max=4,dive,required"`
}

type createLeagueRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type joinLeagueRequest struct {
	InviteCode string `json:"invite_code" validate:"required,max=32"`
}

type createEventRequest struct {
	Title               string    `json:"title" validate:"required,max=120"`
	Location            string    `json:"location" validate:"omitempty,max=200"`
	StartsAt            time.Time `json:"starts_at" validate:"required"`
	RSVPDeadlineMinutes int       `json:"rsvp_deadline_minutes" validate:"gte=0"`
	RosterSpots         int       `json:"roster_spots" validate:"required,gte=2,lte=100"`
	DraftMode           string    `json:"draft_mode" validate:"omitempty,oneof=alternating snake"`
	Team1Name           string    `json:"team1_name" validate:"omitempty,max=60"`
	Team1Color          string    `json:"team1_color" validate:"omitempty,max=32"`
	Team2Name           string    `json:"team2_name" validate:"omitempty,max=60"`
	Team2Color          string    `json:"team2_color" validate:"omitempty,max=32"`
}

type rsvpRequest struct {
	Attending *bool `json:"attending" validate:"required"`
}

type selectCaptainsRequest struct {
	Team1CaptainID string `json:"team1_captain_id" validate:"required"`
	Team2CaptainID string `json:"team2_captain_id" validate:"required,nefield=Team1CaptainID"`
}

type draftPickRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type enterResultRequest struct {
	Team1Score         *int     `json:"team1_score" validate:"required,gte=0"`
	Team2Score         *int     `json:"team2_score" validate:"required,gte=0"`
	AttendingPlayerIDs []string `json:"attending_player_ids" validate:"omitempty,dive,required"`
}

type ratePlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Score    int    `json:"score" validate:"required,gte=1,lte=5"`
}

type postMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

// realtimeWebhookRequest is the envelope the pub/sub broker delivers to
// every instance subscribed to a draft channel.
type realtimeWebhookRequest struct {
	Channel string              `json:"channel" validate:"required"`
	Event   string              `json:"event" validate:"required"`
	Payload rosterUpdatePayload `json:"payload"`
}

type rosterUpdatePayload struct {
	EventID   string    `json:"event_id"`
	TeamID    string    `json:"team_id"`
	CaptainID string    `json:"captain_id"`
	PlayerIDs []string  `json:"player_ids"`
	Origin    string    `json:"origin"`
	SentAt    time.Time `json:"sent_at"`
}

type playerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Positions []string  `json:"positions"`
	UpdatedAt time.Time `json:"updated_at"`
}

func playerToDTO(p player.Player) playerDTO {
	positions := make([]string, 0, len(p.Positions))
	for _, pos := range p.Positions {
		positions = append(positions, string(pos))
	}
	return playerDTO{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
		Positions: positions,
		UpdatedAt: p.UpdatedAt,
	}
}

type leagueDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	InviteCode  string    `json:"invite_code"`
	CreatedAt   time.Time `json:"created_at"`
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		InviteCode:  l.InviteCode,
		CreatedAt:   l.CreatedAt,
	}
}

type membershipDTO struct {
	LeagueID    string     `json:"league_id"`
	PlayerID    string     `json:"player_id"`
	Status      string     `json:"status"`
	Role        string     `json:"role"`
	RequestedAt time.Time  `json:"requested_at"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"`
}

func membershipToDTO(m league.Membership) membershipDTO {
	out := membershipDTO{
		LeagueID:    m.LeagueID,
		PlayerID:    m.PlayerID,
		Status:      string(m.Status),
		Role:        string(m.Role),
		RequestedAt: m.RequestedAt,
	}
	if !m.JoinedAt.IsZero() {
		joined := m.JoinedAt
		out.JoinedAt = &joined
	}
	return out
}

type memberDTO struct {
	membershipDTO
	Name      string   `json:"name"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Positions []string `json:"positions"`
}

func memberToDTO(m usecase.Member) memberDTO {
	p := playerToDTO(m.Player)
	return memberDTO{
		membershipDTO: membershipToDTO(m.Membership),
		Name:          p.Name,
		AvatarURL:     p.AvatarURL,
		Positions:     p.Positions,
	}
}

type teamDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Color     string   `json:"color,omitempty"`
	CaptainID string   `json:"captain_id,omitempty"`
	PlayerIDs []string `json:"player_ids"`
}

func teamToDTO(t team.Team) teamDTO {
	ids := t.PlayerIDs
	if ids == nil {
		ids = []string{}
	}
	return teamDTO{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CaptainID: t.CaptainID,
		PlayerIDs: ids,
	}
}

type eventDTO struct {
	ID                  string    `json:"id"`
	LeagueID            string    `json:"league_id"`
	Title               string    `json:"title"`
	Location            string    `json:"location,omitempty"`
	StartsAt            time.Time `json:"starts_at"`
	RSVPDeadlineAt      time.Time `json:"rsvp_deadline_at"`
	RSVPDeadlineMinutes int       `json:"rsvp_deadline_minutes"`
	RSVPSecondsLeft     int64     `json:"rsvp_seconds_left"`
	RosterSpots         int       `json:"roster_spots"`
	DraftMode           string    `json:"draft_mode"`
	Status              string    `json:"status"`
	ResultsEntered      bool      `json:"results_entered"`
	PlayerIDs           []string  `json:"player_ids"`
	Team1               teamDTO   `json:"team1"`
	Team2               teamDTO   `json:"team2"`
}

func eventToDTO(e event.Event, now time.Time) eventDTO {
	ids := e.PlayerIDs
	if ids == nil {
		ids = []string{}
	}
	return eventDTO{
		ID:                  e.ID,
		LeagueID:            e.LeagueID,
		Title:               e.Title,
		Location:            e.Location,
		StartsAt:            e.StartsAt,
		RSVPDeadlineAt:      e.DeadlineAt(),
		RSVPDeadlineMinutes: int(e.RSVPDeadline / time.Minute),
		RSVPSecondsLeft:     int64(e.Countdown(now) / time.Second),
		RosterSpots:         e.RosterSpots,
		DraftMode:           string(e.DraftMode),
		Status:              string(e.Status),
		ResultsEntered:      e.ResultsEntered,
		PlayerIDs:           ids,
		Team1:               teamToDTO(e.Team1),
		Team2:               teamToDTO(e.Team2),
	}
}

type draftStateDTO struct {
	EventID    string   `json:"event_id"`
	Status     string   `json:"status"`
	Mode       string   `json:"mode"`
	Team1      teamDTO  `json:"team1"`
	Team2      teamDTO  `json:"team2"`
	NextTeamID string   `json:"next_team_id,omitempty"`
	PerTeam    int      `json:"per_team"`
	Complete   bool     `json:"complete"`
	Pool       []string `json:"pool"`
}

func draftStateToDTO(s usecase.DraftState) draftStateDTO {
	pool := s.Pool
	if pool == nil {
		pool = []string{}
	}
	return draftStateDTO{
		EventID:    s.EventID,
		Status:     string(s.Status),
		Mode:       string(s.Mode),
		Team1:      teamToDTO(s.Team1),
		Team2:      teamToDTO(s.Team2),
		NextTeamID: s.NextTeamID,
		PerTeam:    s.PerTeam,
		Complete:   s.Complete,
		Pool:       pool,
	}
}

type resultDTO struct {
	ID                 string    `json:"id"`
	EventID            string    `json:"event_id"`
	Team1Score         int       `json:"team1_score"`
	Team2Score         int       `json:"team2_score"`
	Outcome            string    `json:"outcome"`
	AttendingPlayerIDs []string  `json:"attending_player_ids"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func resultToDTO(r result.Result) resultDTO {
	ids := r.AttendingPlayerIDs
	if ids == nil {
		ids = []string{}
	}
	return resultDTO{
		ID:                 r.ID,
		EventID:            r.EventID,
		Team1Score:         r.Team1Score,
		Team2Score:         r.Team2Score,
		Outcome:            string(leaderboard.OutcomeOf(r.Team1Score, r.Team2Score)),
		AttendingPlayerIDs: ids,
		UpdatedAt:          r.UpdatedAt,
	}
}

type recordDTO struct {
	Won  float64 `json:"won"`
	Lost float64 `json:"lost"`
	Tied float64 `json:"tied"`
}

type leaderboardRowDTO struct {
	Rank              int       `json:"rank"`
	PlayerID          string    `json:"player_id"`
	PlayerName        string    `json:"player_name"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	Points            int       `json:"points"`
	GamesPlayed       int       `json:"games_played"`
	GamesWon          int       `json:"games_won"`
	GamesLost         int       `json:"games_lost"`
	GamesTied         int       `json:"games_tied"`
	GamesWonAsCaptain int       `json:"games_won_as_captain"`
	Attendance        int       `json:"attendance"`
	NonAttendance     int       `json:"non_attendance"`
	UnassignedResults int       `json:"unassigned_results,omitempty"`
	Record            recordDTO `json:"record"`
}

func leaderboardRowToDTO(row leaderboard.Row) leaderboardRowDTO {
	rec := leaderboard.Fractions(row)
	return leaderboardRowDTO{
		Rank:              row.Rank,
		PlayerID:          row.PlayerID,
		PlayerName:        row.PlayerName,
		AvatarURL:         row.AvatarURL,
		Points:            row.Points,
		GamesPlayed:       row.GamesPlayed,
		GamesWon:          row.GamesWon,
		GamesLost:         row.GamesLost,
		GamesTied:         row.GamesTied,
		GamesWonAsCaptain: row.GamesWonAsCaptain,
		Attendance:        row.Attendance,
		NonAttendance:     row.NonAttendance,
		UnassignedResults: row.UnassignedResults,
		Record:            recordDTO{Won: rec.Won, Lost: rec.Lost, Tied: rec.Tied},
	}
}

type ratingSummaryDTO struct {
	LeagueID string  `json:"league_id"`
	PlayerID string  `json:"player_id"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
}

func ratingSummaryToDTO(s rating.Summary) ratingSummaryDTO {
	return ratingSummaryDTO{
		LeagueID: s.LeagueID,
		PlayerID: s.PlayerID,
		Average:  s.Average,
		Count:    s.Count,
	}
}

type messageDTO struct {
	ID         string    `json:"id"`
	LeagueID   string    `json:"league_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

func messageToDTO(m chat.Message) messageDTO {
	return messageDTO{
		ID:         m.ID,
		LeagueID:   m.LeagueID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Body:       m.Body,
		SentAt:     m.SentAt,
	}
}

type rsvpCountdownDTO struct {
	EventID     string    `json:"event_id"`
	DeadlineAt  time.Time `json:"deadline_at"`
	SecondsLeft int64     `json:"seconds_left"`
	Open        bool      `json:"open"`
}
