package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/draft"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/team"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
)

type PickInput struct {
	ActorUserID string
	EventID     string
	PlayerID    string
}

type DraftState struct {
	EventID    string
	Status     event.Status
	Mode       draft.Mode
	Team1      team.Team
	Team2      team.Team
	NextTeamID string
	PerTeam    int
	Complete   bool
	Pool       []string
}

// DraftService runs captain picks. Picks for one event are serialized in
// this process; the database rejects a second pick of the same player
// from another instance.
type DraftService struct {
	eventRepo  event.Repository
	leagueRepo league.Repository
	playerRepo player.Repository
	publisher  RealtimePublisher
	instanceID string
	logger     *logging.Logger
	now        func() time.Time

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	boards map[string]*draft.Board
}

func NewDraftService(
	eventRepo event.Repository,
	leagueRepo league.Repository,
	playerRepo player.Repository,
	publisher RealtimePublisher,
	instanceID string,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DraftService{
		eventRepo:  eventRepo,
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		publisher:  publisher,
		instanceID: instanceID,
		logger:     logger,
		now:        time.Now,
		locks:      make(map[string]*sync.Mutex),
		boards:     make(map[string]*draft.Board),
	}
}

func (s *DraftService) Pick(ctx context.Context, input PickInput) (DraftState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Pick")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, input.ActorUserID)
	if err != nil {
		return DraftState{}, err
	}
	pickID := strings.TrimSpace(input.PlayerID)
	if pickID == "" {
		return DraftState{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	unlock := s.lockEvent(strings.TrimSpace(input.EventID))
	defer unlock()

	e, err := loadEvent(ctx, s.eventRepo, input.EventID)
	if err != nil {
		return DraftState{}, err
	}
	if _, _, err := requireMember(ctx, s.leagueRepo, e.LeagueID, actor.ID); err != nil {
		return DraftState{}, err
	}
	if e.Status != event.StatusCaptainsSelected && e.Status != event.StatusDrafting {
		return DraftState{}, fmt.Errorf("%w: draft is not running (status=%s)", ErrConflict, e.Status)
	}

	mine, ok := e.TeamOfCaptain(actor.ID)
	if !ok {
		return DraftState{}, domainConflict(draft.ErrNotCaptain)
	}
	if draftDone(e) {
		return DraftState{}, domainConflict(draft.ErrDraftComplete)
	}
	if next := draft.NextPickingTeam(e.Team1, e.Team2, e.DraftMode); next.ID != mine.ID {
		return DraftState{}, domainConflict(draft.ErrNotYourTurn)
	}
	if !e.HasRSVP(pickID) || e.Team1.Includes(pickID) || e.Team2.Includes(pickID) {
		return DraftState{}, domainConflict(fmt.Errorf("%w: %s", draft.ErrPlayerUnavailable, pickID))
	}

	if err := s.eventRepo.AddPick(ctx, e.ID, mine.ID, pickID); err != nil {
		return DraftState{}, fmt.Errorf("save draft pick: %w", err)
	}

	picked := mine.WithPlayer(pickID)
	if picked.ID == e.Team1.ID {
		e.Team1 = picked
	} else {
		e.Team2 = picked
	}

	status := event.StatusDrafting
	if draftDone(e) {
		status = event.StatusDrafted
	}
	if status != e.Status {
		if err := s.eventRepo.UpdateStatus(ctx, e.ID, status, e.ResultsEntered); err != nil {
			return DraftState{}, fmt.Errorf("update event status: %w", err)
		}
		e.Status = status
	}

	s.storeBoard(e)
	s.broadcast(ctx, picked)

	return stateOf(e), nil
}

// State serves the repository rosters. A side on the local board only
// wins when it holds more picks, i.e. a remote pick this instance heard
// about before its own read caught up.
func (s *DraftService) State(ctx context.Context, actorUserID, eventID string) (DraftState, error) {
	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return DraftState{}, err
	}
	e, err := loadEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return DraftState{}, err
	}
	if _, _, err := requireMember(ctx, s.leagueRepo, e.LeagueID, actor.ID); err != nil {
		return DraftState{}, err
	}

	s.mu.Lock()
	if board, ok := s.boards[e.ID]; ok && sameCaptains(board, e) {
		e.Team1 = longerRoster(e.Team1, board.TeamA)
		e.Team2 = longerRoster(e.Team2, board.TeamB)
	}
	s.putBoardLocked(e)
	s.mu.Unlock()

	return stateOf(e), nil
}

// ReceiveRemoteRoster applies a roster broadcast from the realtime webhook
// to the local board. Echoes of this instance's own picks are ignored.
func (s *DraftService) ReceiveRemoteRoster(ctx context.Context, update draft.RosterUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[update.EventID]
	if !ok {
		return false
	}
	applied := board.Apply(update, s.instanceID)
	if applied {
		s.logger.DebugContext(ctx, "remote roster applied",
			"event_id", update.EventID,
			"team_id", update.TeamID,
			"origin", update.Origin,
		)
	}
	return applied
}

func (s *DraftService) broadcast(ctx context.Context, t team.Team) {
	if s.publisher == nil {
		return
	}
	msg := RealtimeMessage{
		Channel: DraftChannel(t.EventID),
		Event:   EventDraftPick,
		Payload: draft.Snapshot(t, s.instanceID, s.now()),
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "publish draft pick failed",
			"event_id", t.EventID,
			"team_id", t.ID,
			"error", err,
		)
	}
}

func (s *DraftService) storeBoard(e event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putBoardLocked(e)
}

func (s *DraftService) putBoardLocked(e event.Event) {
	if e.Status == event.StatusCompleted {
		delete(s.boards, e.ID)
		delete(s.locks, e.ID)
		return
	}
	s.boards[e.ID] = &draft.Board{
		EventID: e.ID,
		TeamA:   e.Team1,
		TeamB:   e.Team2,
		Mode:    e.DraftMode,
		PerTeam: e.SlotsPerTeam(),
	}
}

// ForgetBoard drops the cached board and pick lock once a result is
// entered. Picks on a completed event are rejected, so a fresh lock for
// a late caller is harmless.
func (s *DraftService) ForgetBoard(eventID string) {
	s.mu.Lock()
	delete(s.boards, eventID)
	delete(s.locks, eventID)
	s.mu.Unlock()
}

func (s *DraftService) lockEvent(eventID string) func() {
	s.mu.Lock()
	l, ok := s.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[eventID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// sameCaptains guards against serving a board from before captains changed.
func sameCaptains(b *draft.Board, e event.Event) bool {
	return b.TeamA.ID == e.Team1.ID && b.TeamA.CaptainID == e.Team1.CaptainID &&
		b.TeamB.ID == e.Team2.ID && b.TeamB.CaptainID == e.Team2.CaptainID
}

// longerRoster keeps the side with more picks; rosters only grow during
// a draft.
func longerRoster(stored, local team.Team) team.Team {
	if len(local.PlayerIDs) > len(stored.PlayerIDs) {
		return local
	}
	return stored
}

// draftDone is true once both sides are full or nobody is left to pick.
func draftDone(e event.Event) bool {
	return draft.IsComplete(e.Team1, e.Team2, e.SlotsPerTeam()) || len(e.DraftPool()) == 0
}

func stateOf(e event.Event) DraftState {
	st := DraftState{
		EventID:  e.ID,
		Status:   e.Status,
		Mode:     e.DraftMode,
		Team1:    e.Team1,
		Team2:    e.Team2,
		PerTeam:  e.SlotsPerTeam(),
		Complete: draftDone(e),
		Pool:     e.DraftPool(),
	}
	if !st.Complete {
		st.NextTeamID = draft.NextPickingTeam(e.Team1, e.Team2, e.DraftMode).ID
	}
	return st
}
