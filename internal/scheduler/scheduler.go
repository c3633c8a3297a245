package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
)

var (
	ErrEmptyJobName  = errors.New("job name is required")
	ErrEmptyCronExpr = errors.New("cron expression is required")
)

// Service wraps a gocron scheduler. Jobs run in singleton mode so a slow run
// is never overlapped by the next tick.
type Service struct {
	scheduler gocron.Scheduler
	logger    *logging.Logger
	stopOnce  sync.Once
	stopErr   error
}

func New(logger *logging.Logger) (*Service, error) {
	if logger == nil {
		logger = logging.Default()
	}

	sched, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithGlobalJobOptions(
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("scheduler job panicked",
						"job_id", jobID.String(),
						"job_name", jobName,
						"panic", recoverData,
					)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Service{scheduler: sched, logger: logger}, nil
}

func (s *Service) Start() {
	s.logger.Info("scheduler starting", "jobs", len(s.scheduler.Jobs()))
	s.scheduler.Start()
}

// Stop shuts the scheduler down once and waits for running jobs.
func (s *Service) Stop() error {
	s.stopOnce.Do(func() {
		s.logger.Info("scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

// AddJob registers task under a cron expression. Each run gets its own
// context bounded by timeout.
func (s *Service) AddJob(name, cronExpr string, timeout time.Duration, task func(ctx context.Context) error) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if strings.TrimSpace(cronExpr) == "" {
		return nil, ErrEmptyCronExpr
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	jobLogger := s.logger.With("job_name", name, "cron", cronExpr)

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		started := time.Now()
		if err := task(ctx); err != nil {
			jobLogger.ErrorContext(ctx, "scheduler job failed", "error", err, "duration", time.Since(started))
			return
		}
		jobLogger.DebugContext(ctx, "scheduler job completed", "duration", time.Since(started))
	}

	job, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(run),
		gocron.WithName(name),
	)
	if err != nil {
		jobLogger.Error("register scheduler job failed", "error", err)
		return nil, err
	}
	jobLogger.Info("scheduler job registered", "job_id", job.ID().String())
	return job, nil
}
