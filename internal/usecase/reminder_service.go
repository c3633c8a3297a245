package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
)

type ReminderConfig struct {
	// Lead is how far ahead of an RSVP deadline reminders go out.
	Lead       time.Duration
	MaxWorkers int
}

type ReminderResult struct {
	EventCount  int `json:"event_count"`
	SentCount   int `json:"sent_count"`
	FailedCount int `json:"failed_count"`
	WorkerCount int `json:"worker_count"`
}

type reminderTask struct {
	event  event.Event
	player player.Player
}

// ReminderService emails accepted members who have not answered an event
// whose RSVP deadline is near. Each member is reminded once per event for
// the lifetime of the process.
type ReminderService struct {
	eventRepo  event.Repository
	leagueRepo league.Repository
	playerRepo player.Repository
	sender     EmailSender
	cfg        ReminderConfig
	logger     *logging.Logger

	sent sync.Map
}

func NewReminderService(
	eventRepo event.Repository,
	leagueRepo league.Repository,
	playerRepo player.Repository,
	sender EmailSender,
	cfg ReminderConfig,
	logger *logging.Logger,
) *ReminderService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Lead <= 0 {
		cfg.Lead = 24 * time.Hour
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}

	return &ReminderService{
		eventRepo:  eventRepo,
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		sender:     sender,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *ReminderService) SendRSVPReminders(ctx context.Context, now time.Time) (ReminderResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReminderService.SendRSVPReminders")
	defer span.End()

	if s.sender == nil {
		return ReminderResult{}, fmt.Errorf("%w: email sender is not configured", ErrDependencyUnavailable)
	}

	events, err := s.eventRepo.ListDeadlineBetween(ctx, now, now.Add(s.cfg.Lead))
	if err != nil {
		return ReminderResult{}, fmt.Errorf("list events near rsvp deadline: %w", err)
	}

	tasks := make([]reminderTask, 0)
	for _, e := range events {
		pending, err := s.pendingPlayers(ctx, e)
		if err != nil {
			return ReminderResult{}, err
		}
		for _, p := range pending {
			tasks = append(tasks, reminderTask{event: e, player: p})
		}
	}

	out := ReminderResult{EventCount: len(events), WorkerCount: min(s.cfg.MaxWorkers, max(len(tasks), 1))}
	if len(tasks) == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(out.WorkerCount)
	if err != nil {
		return ReminderResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var sentCount, failedCount atomic.Int32
	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			key := task.event.ID + "/" + task.player.ID
			if _, dup := s.sent.LoadOrStore(key, struct{}{}); dup {
				return
			}
			if err := s.sender.Send(ctx, reminderEmail(task, now)); err != nil {
				s.sent.Delete(key)
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "send rsvp reminder failed",
					"event_id", task.event.ID,
					"player_id", task.player.ID,
					"error", err,
				)
				return
			}
			sentCount.Add(1)
		}); err != nil {
			workers.Done()
			return ReminderResult{}, fmt.Errorf("submit reminder to worker pool: %w", err)
		}
	}
	workers.Wait()

	out.SentCount = int(sentCount.Load())
	out.FailedCount = int(failedCount.Load())
	s.logger.InfoContext(ctx, "rsvp reminders sent",
		"event_count", out.EventCount,
		"sent_count", out.SentCount,
		"failed_count", out.FailedCount,
	)
	return out, nil
}

func (s *ReminderService) pendingPlayers(ctx context.Context, e event.Event) ([]player.Player, error) {
	members, err := s.leagueRepo.ListMembers(ctx, e.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		if m.Accepted() && !e.HasRSVP(m.PlayerID) {
			ids = append(ids, m.PlayerID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get reminder recipients: %w", err)
	}
	out := players[:0]
	for _, p := range players {
		if strings.TrimSpace(p.Email) != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func reminderEmail(task reminderTask, now time.Time) Email {
	e := task.event
	left := e.Countdown(now).Round(time.Minute)
	subject := fmt.Sprintf("RSVP closes soon: %s", e.Title)
	text := fmt.Sprintf(
		"Hi %s,\n\nRSVPs for %s at %s close in %s (%s UTC). Let your captains know if you're in.\n",
		task.player.Name,
		e.Title,
		e.Location,
		left,
		e.DeadlineAt().UTC().Format("Mon 2 Jan 15:04"),
	)
	return Email{To: task.player.Email, Subject: subject, Text: text}
}
