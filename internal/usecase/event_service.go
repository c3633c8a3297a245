package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/team"
	idgen "github.com/riskibarqy/recliiga/internal/platform/id"
)

type CreateEventInput struct {
	ActorUserID  string
	LeagueID     string
	Title        string
	Location     string
	StartsAt     time.Time
	RSVPDeadline time.Duration
	RosterSpots  int
	DraftMode    string
	Team1Name    string
	Team1Color   string
	Team2Name    string
	Team2Color   string
}

type RSVPInput struct {
	ActorUserID string
	EventID     string
	Attending   bool
}

type SelectCaptainsInput struct {
	ActorUserID    string
	EventID        string
	Team1CaptainID string
	Team2CaptainID string
}

type RSVPCountdown struct {
	EventID    string
	DeadlineAt time.Time
	Remaining  time.Duration
	Open       bool
}

type EventService struct {
	eventRepo  event.Repository
	leagueRepo league.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewEventService(
	eventRepo event.Repository,
	leagueRepo league.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.CreateEvent")
	defer span.End()

	lg, err := loadLeague(ctx, s.leagueRepo, input.LeagueID)
	if err != nil {
		return event.Event{}, err
	}
	if err := requireOwner(lg, strings.TrimSpace(input.ActorUserID)); err != nil {
		return event.Event{}, err
	}

	mode, err := draft.ParseMode(strings.TrimSpace(input.DraftMode))
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	now := s.now().UTC()
	if !input.StartsAt.After(now) {
		return event.Event{}, fmt.Errorf("%w: event must start in the future", ErrInvalidInput)
	}

	ids, err := s.newIDs(3)
	if err != nil {
		return event.Event{}, err
	}
	e := event.Event{
		ID:           ids[0],
		LeagueID:     lg.ID,
		Title:        strings.TrimSpace(input.Title),
		Location:     strings.TrimSpace(input.Location),
		StartsAt:     input.StartsAt.UTC(),
		RSVPDeadline: input.RSVPDeadline,
		RosterSpots:  input.RosterSpots,
		DraftMode:    mode,
		Status:       event.StatusOpen,
		Team1:        newTeam(ids[1], ids[0], input.Team1Name, input.Team1Color, "Team 1"),
		Team2:        newTeam(ids[2], ids[0], input.Team2Name, input.Team2Color, "Team 2"),
		CreatedBy:    input.ActorUserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.eventRepo.Create(ctx, e); err != nil {
		return event.Event{}, fmt.Errorf("create event: %w", err)
	}

	return e, nil
}

func (s *EventService) ListEventsByLeague(ctx context.Context, actorUserID, leagueID string) ([]event.Event, error) {
	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	lg, _, err := requireMember(ctx, s.leagueRepo, leagueID, actor.ID)
	if err != nil {
		return nil, err
	}

	items, err := s.eventRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return nil, fmt.Errorf("list events by league: %w", err)
	}

	return items, nil
}

func (s *EventService) GetEvent(ctx context.Context, actorUserID, eventID string) (event.Event, error) {
	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return event.Event{}, err
	}

	e, err := loadEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return event.Event{}, err
	}
	if _, _, err := requireMember(ctx, s.leagueRepo, e.LeagueID, actor.ID); err != nil {
		return event.Event{}, err
	}

	return e, nil
}

// RSVP records whether the caller will attend. It is accepted only while
// the event is open and before its deadline; attending is capped at
// RosterSpots.
func (s *EventService) RSVP(ctx context.Context, input RSVPInput) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.RSVP")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, input.ActorUserID)
	if err != nil {
		return event.Event{}, err
	}
	e, err := loadEvent(ctx, s.eventRepo, input.EventID)
	if err != nil {
		return event.Event{}, err
	}
	if _, _, err := requireMember(ctx, s.leagueRepo, e.LeagueID, actor.ID); err != nil {
		return event.Event{}, err
	}

	if !e.RSVPOpen(s.now()) {
		return event.Event{}, fmt.Errorf("%w: %w", ErrConflict, event.ErrRSVPClosed)
	}
	if input.Attending == e.HasRSVP(actor.ID) {
		return e, nil
	}
	if input.Attending && e.Full() {
		return event.Event{}, fmt.Errorf("%w: %w", ErrConflict, event.ErrEventFull)
	}

	if err := s.eventRepo.SetRSVP(ctx, e.ID, actor.ID, input.Attending); err != nil {
		if errors.Is(err, event.ErrEventFull) {
			return event.Event{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return event.Event{}, fmt.Errorf("set rsvp: %w", err)
	}

	return loadEvent(ctx, s.eventRepo, e.ID)
}

// SelectCaptains names one captain per side before the draft starts.
// Captains must have RSVP'd and must differ.
func (s *EventService) SelectCaptains(ctx context.Context, input SelectCaptainsInput) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.SelectCaptains")
	defer span.End()

	e, err := loadEvent(ctx, s.eventRepo, input.EventID)
	if err != nil {
		return event.Event{}, err
	}
	lg, err := loadLeague(ctx, s.leagueRepo, e.LeagueID)
	if err != nil {
		return event.Event{}, err
	}
	if err := requireOwner(lg, strings.TrimSpace(input.ActorUserID)); err != nil {
		return event.Event{}, err
	}

	c1, c2 := strings.TrimSpace(input.Team1CaptainID), strings.TrimSpace(input.Team2CaptainID)
	if c1 == "" || c2 == "" {
		return event.Event{}, fmt.Errorf("%w: both captains are required", ErrInvalidInput)
	}
	if c1 == c2 {
		return event.Event{}, fmt.Errorf("%w: captains must be different players", ErrInvalidInput)
	}
	if !e.HasRSVP(c1) || !e.HasRSVP(c2) {
		return event.Event{}, fmt.Errorf("%w: captains must have RSVP'd to the event", ErrInvalidInput)
	}
	if !e.Status.CanTransition(event.StatusCaptainsSelected) {
		return event.Event{}, fmt.Errorf("%w: %w: %s -> %s", ErrConflict, event.ErrInvalidTransition, e.Status, event.StatusCaptainsSelected)
	}

	e.Team1.CaptainID, e.Team1.PlayerIDs = c1, nil
	e.Team2.CaptainID, e.Team2.PlayerIDs = c2, nil
	if err := s.eventRepo.SaveTeams(ctx, e.ID, e.Team1, e.Team2); err != nil {
		return event.Event{}, fmt.Errorf("save captains: %w", err)
	}
	if err := s.eventRepo.UpdateStatus(ctx, e.ID, event.StatusCaptainsSelected, e.ResultsEntered); err != nil {
		return event.Event{}, fmt.Errorf("update event status: %w", err)
	}
	e.Status = event.StatusCaptainsSelected

	return e, nil
}

func (s *EventService) RSVPCountdown(ctx context.Context, actorUserID, eventID string) (RSVPCountdown, error) {
	e, err := s.GetEvent(ctx, actorUserID, eventID)
	if err != nil {
		return RSVPCountdown{}, err
	}

	now := s.now()
	return RSVPCountdown{
		EventID:    e.ID,
		DeadlineAt: e.DeadlineAt(),
		Remaining:  e.Countdown(now),
		Open:       e.RSVPOpen(now),
	}, nil
}

func (s *EventService) newIDs(n int) ([]string, error) {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate event id: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}

func newTeam(id, eventID, name, color, fallback string) team.Team {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	return team.Team{ID: id, EventID: eventID, Name: name, Color: strings.TrimSpace(color)}
}

func loadEvent(ctx context.Context, events event.Repository, eventID string) (event.Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return event.Event{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	e, exists, err := events.GetByID(ctx, eventID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return event.Event{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return e, nil
}

// domainConflict maps rule violations from the domain packages onto
// ErrConflict while keeping them matchable.
func domainConflict(err error) error {
	switch {
	case errors.Is(err, draft.ErrNotYourTurn),
		errors.Is(err, draft.ErrDraftComplete),
		errors.Is(err, draft.ErrPlayerUnavailable),
		errors.Is(err, event.ErrInvalidTransition):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, draft.ErrNotCaptain):
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	default:
		return err
	}
}
