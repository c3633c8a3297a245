package rating

import (
	"fmt"
	"time"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is one player's score of a teammate within a league. A rater has at
// most one rating per ratee per league; rating again replaces it.
type Rating struct {
	LeagueID  string
	RaterID   string
	PlayerID  string
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Rating) Validate() error {
	if r.LeagueID == "" || r.RaterID == "" || r.PlayerID == "" {
		return fmt.Errorf("rating league, rater and player are required")
	}
	if r.RaterID == r.PlayerID {
		return fmt.Errorf("players cannot rate themselves")
	}
	if r.Score < MinScore || r.Score > MaxScore {
		return fmt.Errorf("rating score must be between %d and %d", MinScore, MaxScore)
	}

	return nil
}

// Summary is a player's average rating in one league.
type Summary struct {
	LeagueID string
	PlayerID string
	Average  float64
	Count    int
}

func Summarize(leagueID, playerID string, ratings []Rating) Summary {
	out := Summary{LeagueID: leagueID, PlayerID: playerID}
	total := 0
	for _, r := range ratings {
		if r.LeagueID != leagueID || r.PlayerID != playerID {
			continue
		}
		total += r.Score
		out.Count++
	}
	if out.Count > 0 {
		out.Average = float64(total) / float64(out.Count)
	}
	return out
}
