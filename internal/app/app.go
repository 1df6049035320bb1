package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/grassroots-fc/matchday/internal/config"
	"github.com/grassroots-fc/matchday/internal/domain/match"
	"github.com/grassroots-fc/matchday/internal/domain/player"
	"github.com/grassroots-fc/matchday/internal/domain/roster"
	"github.com/grassroots-fc/matchday/internal/domain/team"
	"github.com/grassroots-fc/matchday/internal/infrastructure/notifier"
	"github.com/grassroots-fc/matchday/internal/infrastructure/repository/memory"
	"github.com/grassroots-fc/matchday/internal/infrastructure/repository/postgres"
	"github.com/grassroots-fc/matchday/internal/infrastructure/rosterstore"
	"github.com/grassroots-fc/matchday/internal/interfaces/httpapi"
	"github.com/grassroots-fc/matchday/internal/platform/cache"
	idgen "github.com/grassroots-fc/matchday/internal/platform/id"
	"github.com/grassroots-fc/matchday/internal/platform/logging"
	"github.com/grassroots-fc/matchday/internal/platform/resilience"
	"github.com/grassroots-fc/matchday/internal/usecase"
)

// App owns the HTTP server plus the long-lived match-day state behind it:
// open recording sessions, live websocket fans, and the DB handle.
type App struct {
	Server *http.Server

	sessions *usecase.SessionRegistry
	hub      *httpapi.LiveHub
	db       *sqlx.DB
	logger   *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		teamRepo   team.Repository
		playerRepo player.Repository
		matchRepo  match.Repository
		eventRepo  match.EventRepository
		db         *sqlx.DB
	)

	if strings.TrimSpace(cfg.DBURL) != "" {
		var err error
		db, err = openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		teamRepo = postgres.NewTeamRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
		eventRepo = postgres.NewMatchEventRepository(db)
		logger.Info("using postgres repositories")
	} else {
		teamRepo = memory.NewTeamRepository(memory.SeedTeams())
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		matchRepo = memory.NewMatchRepository(memory.SeedMatches())
		eventRepo = memory.NewEventRepository()
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
	}

	var rosterStore roster.Store
	if cfg.RosterStoreDir != "" {
		fileStore, err := rosterstore.NewFileStore(cfg.RosterStoreDir)
		if err != nil {
			closeDB(db, logger)
			return nil, fmt.Errorf("open roster store: %w", err)
		}
		rosterStore = fileStore
		logger.Info("using file roster store", "dir", cfg.RosterStoreDir)
	} else {
		rosterStore = memory.NewSnapshotStore()
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	directorySvc := usecase.NewDirectoryService(teamRepo, matchRepo, logger)
	squadSvc := usecase.NewSquadService(playerRepo, cacheStore, logger)
	rosterSvc := usecase.NewRosterService(playerRepo, rosterStore, logger)
	recorderSvc := usecase.NewRecorderService(
		matchRepo,
		eventRepo,
		rosterStore,
		idgen.NewRandomGenerator(),
		usecase.RecorderConfig{
			HalfLengthMinutes:    cfg.HalfLengthMinutes,
			HalftimeHandoffDelay: cfg.HalftimeHandoffDelay,
			SaveTimeout:          cfg.SaveTimeout,
			SaveWorkers:          cfg.SaveWorkers,
			RehearsalSaveDelay:   cfg.RehearsalSaveDelay,
		},
		logger,
	)

	if cfg.ResultWebhookEnabled {
		resultNotifier, err := notifier.NewWebhookNotifier(notifier.WebhookConfig{
			URL:       cfg.ResultWebhookURL,
			AuthToken: cfg.ResultWebhookToken,
			Timeout:   cfg.ResultWebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          true,
				FailureThreshold: cfg.ResultWebhookCircuitFailCount,
				OpenTimeout:      cfg.ResultWebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ResultWebhookCircuitHalfOpenMax,
			},
		}, logger)
		if err != nil {
			closeDB(db, logger)
			return nil, fmt.Errorf("build result notifier: %w", err)
		}
		recorderSvc.SetResultNotifier(resultNotifier)
		logger.Info("result webhook enabled", "url", cfg.ResultWebhookURL)
	}

	sessions := usecase.NewSessionRegistry(recorderSvc)
	hub := httpapi.NewLiveHub(logger)
	sessions.SetListener(hub.BroadcastState)

	handler := httpapi.NewHandler(directorySvc, squadSvc, rosterSvc, sessions, logger)
	router := httpapi.NewRouter(handler, hub, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		closeDB(db, logger)
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:   server,
		sessions: sessions,
		hub:      hub,
		db:       db,
		logger:   logger,
	}, nil
}

// Shutdown drains the HTTP server, then stops session tickers, live
// subscribers, and the DB pool, in that order.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Server.Shutdown(ctx)

	a.sessions.Shutdown()
	a.hub.Shutdown()
	closeDB(a.db, a.logger)

	return err
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close db", "error", err)
	}
}
