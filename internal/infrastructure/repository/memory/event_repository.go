package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/team"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

type EventRepository struct {
	mu    sync.RWMutex
	items map[string]event.Event
	now   func() time.Time
}

func NewEventRepository(events []event.Event) *EventRepository {
	r := &EventRepository{
		items: make(map[string]event.Event, len(events)),
		now:   time.Now,
	}
	for _, e := range events {
		r.items[e.ID] = cloneEvent(e)
	}
	return r
}

func (r *EventRepository) Create(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[e.ID]; exists {
		return fmt.Errorf("%w: event=%s already exists", usecase.ErrConflict, e.ID)
	}
	r.items[e.ID] = cloneEvent(e)
	return nil
}

func (r *EventRepository) GetByID(_ context.Context, eventID string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[eventID]
	if !ok {
		return event.Event{}, false, nil
	}
	return cloneEvent(e), true, nil
}

func (r *EventRepository) ListByLeague(_ context.Context, leagueID string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0)
	for _, e := range r.items {
		if e.LeagueID == leagueID {
			out = append(out, cloneEvent(e))
		}
	}
	sortEvents(out)
	return out, nil
}

func (r *EventRepository) ListDeadlineBetween(_ context.Context, from, to time.Time) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0)
	for _, e := range r.items {
		deadline := e.DeadlineAt()
		if e.Status == event.StatusOpen && !deadline.Before(from) && deadline.Before(to) {
			out = append(out, cloneEvent(e))
		}
	}
	sortEvents(out)
	return out, nil
}

func (r *EventRepository) SetRSVP(_ context.Context, eventID, playerID string, attending bool) error {
	return r.update(eventID, func(e *event.Event) error {
		has := slices.Contains(e.PlayerIDs, playerID)
		switch {
		case attending && !has:
			if e.Full() {
				return fmt.Errorf("%w: event=%s spots=%d", event.ErrEventFull, eventID, e.RosterSpots)
			}
			e.PlayerIDs = append(e.PlayerIDs, playerID)
		case !attending && has:
			e.PlayerIDs = slices.DeleteFunc(e.PlayerIDs, func(id string) bool { return id == playerID })
		}
		return nil
	})
}

func (r *EventRepository) SaveTeams(_ context.Context, eventID string, team1, team2 team.Team) error {
	return r.update(eventID, func(e *event.Event) error {
		e.Team1 = cloneTeam(team1)
		e.Team2 = cloneTeam(team2)
		return nil
	})
}

func (r *EventRepository) AddPick(_ context.Context, eventID, teamID, playerID string) error {
	return r.update(eventID, func(e *event.Event) error {
		if e.Team1.Includes(playerID) || e.Team2.Includes(playerID) {
			return fmt.Errorf("%w: player=%s already drafted", usecase.ErrConflict, playerID)
		}
		switch teamID {
		case e.Team1.ID:
			e.Team1 = e.Team1.WithPlayer(playerID)
		case e.Team2.ID:
			e.Team2 = e.Team2.WithPlayer(playerID)
		default:
			return fmt.Errorf("add pick: team=%s not in event=%s", teamID, eventID)
		}
		return nil
	})
}

func (r *EventRepository) UpdateStatus(_ context.Context, eventID string, status event.Status, resultsEntered bool) error {
	return r.update(eventID, func(e *event.Event) error {
		e.Status = status
		e.ResultsEntered = resultsEntered
		return nil
	})
}

func (r *EventRepository) update(eventID string, fn func(*event.Event) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[eventID]
	if !ok {
		return fmt.Errorf("%w: event=%s", usecase.ErrNotFound, eventID)
	}
	e = cloneEvent(e)
	if err := fn(&e); err != nil {
		return err
	}
	e.UpdatedAt = r.now().UTC()
	r.items[eventID] = e
	return nil
}

func sortEvents(items []event.Event) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].StartsAt.Equal(items[j].StartsAt) {
			return items[i].StartsAt.Before(items[j].StartsAt)
		}
		return items[i].ID < items[j].ID
	})
}

func cloneEvent(e event.Event) event.Event {
	e.PlayerIDs = slices.Clone(e.PlayerIDs)
	e.Team1 = cloneTeam(e.Team1)
	e.Team2 = cloneTeam(e.Team2)
	return e
}

func cloneTeam(t team.Team) team.Team {
	t.PlayerIDs = slices.Clone(t.PlayerIDs)
	return t
}
