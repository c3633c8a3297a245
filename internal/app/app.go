package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/recliiga/internal/config"
	"github.com/riskibarqy/recliiga/internal/domain/chat"
	"github.com/riskibarqy/recliiga/internal/domain/event"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	"github.com/riskibarqy/recliiga/internal/domain/rating"
	"github.com/riskibarqy/recliiga/internal/domain/result"
	"github.com/riskibarqy/recliiga/internal/infrastructure/account/identity"
	"github.com/riskibarqy/recliiga/internal/infrastructure/email"
	"github.com/riskibarqy/recliiga/internal/infrastructure/realtime"
	cacherepo "github.com/riskibarqy/recliiga/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/recliiga/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/recliiga/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/recliiga/internal/interfaces/httpapi"
	"github.com/riskibarqy/recliiga/internal/platform/cache"
	idgen "github.com/riskibarqy/recliiga/internal/platform/id"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
	"github.com/riskibarqy/recliiga/internal/platform/resilience"
	"github.com/riskibarqy/recliiga/internal/scheduler"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

// App is the assembled API process: HTTP server, optional reminder
// scheduler and the resources they hold.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.Service

	db *sqlx.DB
}

type repositories struct {
	players player.Repository
	leagues league.Repository
	events  event.Repository
	results result.Repository
	ratings rating.Repository
	chat    chat.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app := &App{}
	repos, err := app.buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	publisher, err := buildPublisher(cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	sender, err := buildEmailSender(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	identityClient := identity.NewClient(identity.ClientConfig{
		BaseURL:        cfg.IdentityBaseURL,
		IntrospectPath: cfg.IdentityIntrospectPath,
		RevokePath:     cfg.IdentityRevokePath,
		AdminKey:       cfg.IdentityAdminKey,
		Timeout:        cfg.IdentityTimeout,
		CircuitBreaker: circuitBreakerConfig(cfg.IdentityCircuit),
		Logger:         logger,
	})

	idGen := idgen.NewUUIDGenerator()
	sessions := usecase.NewSessionService(identity.NewSessionStore(cfg.SessionMaxEntries), identityClient, cfg.SessionTTL)
	boards := usecase.NewLeaderboardService(repos.leagues, repos.players, repos.events, repos.results, leaderboardCache(cfg))
	drafts := usecase.NewDraftService(repos.events, repos.leagues, repos.players, publisher, cfg.InstanceID, logger)
	reminders := usecase.NewReminderService(repos.events, repos.leagues, repos.players, sender, usecase.ReminderConfig{
		Lead:       cfg.ReminderLead,
		MaxWorkers: cfg.ReminderMaxWorkers,
	}, logger)

	handler := httpapi.NewHandler(httpapi.Services{
		Sessions:    sessions,
		Players:     usecase.NewPlayerService(repos.players, idGen),
		Leagues:     usecase.NewLeagueService(repos.leagues, repos.players, idGen),
		Events:      usecase.NewEventService(repos.events, repos.leagues, repos.players, idGen),
		Drafts:      drafts,
		Results:     usecase.NewResultService(repos.events, repos.results, repos.leagues, repos.players, idGen, publisher, boards, drafts, logger),
		Leaderboard: boards,
		Ratings:     usecase.NewRatingService(repos.leagues, repos.players, repos.ratings),
		Chat:        usecase.NewChatService(repos.leagues, repos.players, repos.chat, publisher, idGen, logger),
		Reminders:   reminders,
	}, logger)

	router := httpapi.NewRouter(handler, sessions, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalToken:      cfg.InternalToken,
	})
	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if cfg.SchedulerEnabled {
		sched, err := scheduler.New(logger)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("create scheduler: %w", err)
		}
		if _, err := scheduler.RegisterRSVPReminders(sched, reminders, cfg.ReminderCron); err != nil {
			_ = sched.Stop()
			_ = app.Close()
			return nil, fmt.Errorf("register rsvp reminders: %w", err)
		}
		app.Scheduler = sched
	}

	return app, nil
}

// Close releases the database pool and stops the scheduler.
func (a *App) Close() error {
	var errs []error
	if a.Scheduler != nil {
		errs = append(errs, a.Scheduler.Stop())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		repos = repositories{
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			leagues: memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships()),
			events:  memory.NewEventRepository(memory.SeedEvents()),
			results: memory.NewResultRepository(nil),
			ratings: memory.NewRatingRepository(),
			chat:    memory.NewChatRepository(),
		}
	default:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		logger.Info("postgres connected", "db_name", dbNameFromURL(cfg.DBURL))
		repos = repositories{
			players: postgres.NewPlayerRepository(db),
			leagues: postgres.NewLeagueRepository(db),
			events:  postgres.NewEventRepository(db),
			results: postgres.NewResultRepository(db),
			ratings: postgres.NewRatingRepository(db),
			chat:    postgres.NewChatRepository(db),
		}
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
	}
	return repos, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB)

	return db, nil
}

func buildPublisher(cfg config.Config, logger *logging.Logger) (usecase.RealtimePublisher, error) {
	if !cfg.PubSubEnabled {
		logger.Info("realtime pubsub disabled", "reason", "PUBSUB_ENABLED=false")
		return realtime.NewNopPublisher(logger), nil
	}

	publisher, err := realtime.NewPublisher(realtime.PublisherConfig{
		BaseURL:        cfg.PubSubBaseURL,
		Token:          cfg.PubSubToken,
		ForwardToken:   cfg.InternalToken,
		Retries:        cfg.PubSubRetries,
		Timeout:        cfg.PubSubTimeout,
		CircuitBreaker: circuitBreakerConfig(cfg.PubSubCircuit),
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create realtime publisher: %w", err)
	}
	return publisher, nil
}

func buildEmailSender(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.EmailSender, error) {
	if !cfg.SESEnabled {
		logger.Info("ses disabled, reminders are logged only", "reason", "SES_ENABLED=false")
		return email.NewLogSender(logger), nil
	}

	sender, err := email.NewSESSender(ctx, email.SESConfig{
		Region:          cfg.SESRegion,
		AccessKeyID:     cfg.SESAccessKeyID,
		SecretAccessKey: cfg.SESSecretAccessKey,
		Sender:          cfg.SESSender,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create ses sender: %w", err)
	}
	return sender, nil
}

// leaderboardCache is nil when CACHE_ENABLED=false so every read recomputes.
func leaderboardCache(cfg config.Config) *cache.Store {
	if !cfg.CacheEnabled {
		return nil
	}
	return cache.NewStore(cfg.CacheTTL)
}

func circuitBreakerConfig(c config.CircuitConfig) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.Enabled,
		FailureThreshold: c.FailureThreshold,
		OpenTimeout:      c.OpenTimeout,
		HalfOpenMaxReq:   c.HalfOpenMaxReq,
	}
}
