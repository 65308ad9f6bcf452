package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gorm.io/gorm/logger"

	staticdocs "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/catalog/static"
	httpadapter "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/http"
	metricsinmem "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/metrics/inmemory"
	gormrepo "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/repo/gorm"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/repo/memory"
	jwttokens "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/token/jwt"
	worldruntime "github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/world/runtime"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/ws"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/action"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/auth"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/bot"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/catalog"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/lobby"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/observe"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/replay"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/results"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/status"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/platform/config"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/platform/logging"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

type storage struct {
	archive ports.ResultArchive
	tx      ports.TxManager
	layouts worldruntime.LayoutStore
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	store := memory.NewStore()
	registry := memory.NewSessionRegistry(store)
	st, err := buildStorage(ctx, cfg, store, log)
	if err != nil {
		return err
	}

	genCfg := worldruntime.DefaultConfig()
	genCfg.PlanetsPerSector = cfg.PlanetsPerSector
	genCfg.Store = st.layouts
	maps := worldruntime.NewGenerator(genCfg)

	tokens, err := jwttokens.NewSeatTokens(jwttokens.Config{
		Secret: []byte(cfg.TokenSecret),
		Issuer: cfg.TokenIssuer,
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("seat tokens: %w", err)
	}
	kpi := metricsinmem.NewRecorder()

	hub := ws.NewHub(ws.Options{
		Registry: registry,
		Logger:   log.Named("ws"),
		Rate:     rate.Limit(cfg.WSRate),
		Burst:    cfg.WSBurst,
	})
	scheduler := bot.NewScheduler(registry, cfg.BotDelay, log.Named("bot"))

	resultsUC := results.UseCase{Archive: st.archive, TxManager: st.tx}
	actionUC := action.UseCase{
		Registry:          registry,
		Results:           resultsUC,
		Metrics:           kpi,
		Broadcaster:       hub,
		Bots:              scheduler,
		Logger:            log.Named("action"),
		SurfaceRejections: cfg.SurfaceRejections,
	}
	scheduler.Actions = actionUC
	lobbyUC := lobby.UseCase{
		Registry:    registry,
		Maps:        maps,
		Tokens:      tokens,
		Broadcaster: hub,
		Bots:        scheduler,
		Logger:      log.Named("lobby"),
		Now:         time.Now,
		NewID:       uuid.NewString,
		Seed:        func() int64 { return time.Now().UnixNano() },
	}
	authUC := auth.VerifyUseCase{Tokens: tokens, Registry: registry}
	statusUC := status.UseCase{Registry: registry}
	hub.Bind(ws.Handlers{Lobby: lobbyUC, Actions: actionUC, Auth: authUC, Status: statusUC})

	h := httpadapter.Handler{
		AuthUC:    authUC,
		LobbyUC:   lobbyUC,
		ActionUC:  actionUC,
		StatusUC:  statusUC,
		ScoreUC:   observe.UseCase{Registry: registry},
		ReplayUC:  replay.UseCase{Registry: registry},
		ResultsUC: resultsUC,
		CatalogUC: catalog.UseCase{Docs: staticdocs.Provider{Root: cfg.RulesDir}},
		KPI:       kpi,

		AllowOrigin: cfg.CORSOrigin,
	}
	hz := server.Default(server.WithHostPorts(cfg.HTTPAddr), server.WithExitWaitTime(2*time.Second))
	h.RegisterRoutes(hz)

	wsSrv := &http.Server{
		Addr:              cfg.WSAddr,
		Handler:           ws.NewRouter(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		return hz.Run()
	})
	g.Go(func() error {
		log.Info("ws listening", zap.String("addr", cfg.WSAddr))
		if err := wsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ws server: %w", err)
		}
		return nil
	})
	g.Go(func() error { return scheduler.Run(gctx) })
	g.Go(func() error {
		evictLoop(gctx, registry, cfg.EvictInterval, cfg.SessionIdleTTL, time.Now, scheduler.Forget, log)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hub.Close()
		errs := []error{wsSrv.Shutdown(shutdownCtx), hz.Shutdown(shutdownCtx)}
		log.Info("shutdown complete")
		return errors.Join(errs...)
	})
	return g.Wait()
}

// buildStorage picks postgres when a DSN is set, otherwise the in-memory
// store backs results and layouts are not cached.
func buildStorage(ctx context.Context, cfg config.Config, store *memory.Store, log *zap.Logger) (storage, error) {
	if strings.TrimSpace(cfg.DBDSN) == "" {
		log.Warn("GAIA_DB_DSN not set, results kept in memory")
		return storage{archive: memory.NewResultArchive(store), tx: memory.NewTxManager(store)}, nil
	}
	db, err := gormrepo.OpenPostgres(cfg.DBDSN, gormrepo.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.DBLogLevel),
	})
	if err != nil {
		return storage{}, err
	}
	if cfg.DBAutoMigrate {
		applied, err := gormrepo.ApplyMigrations(ctx, db, migrations.Files)
		if err != nil {
			return storage{}, err
		}
		log.Info("migrations applied", zap.Strings("versions", applied))
	}
	return storage{
		archive: gormrepo.NewResultArchive(db),
		tx:      gormrepo.NewTxManager(db),
		layouts: worldruntime.NewGormLayoutStore(db),
	}, nil
}

func gormLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

type idleEvicter interface {
	EvictIdle(ctx context.Context, before time.Time) ([]string, error)
}

// evictLoop drops idle sessions every tick and reports each evicted id to
// onEvict so per-session workers can stop.
func evictLoop(ctx context.Context, r idleEvicter, every, ttl time.Duration, now func() time.Time, onEvict func(string), log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted, err := r.EvictIdle(ctx, now().Add(-ttl))
			if err != nil {
				log.Warn("evict idle sessions", zap.Error(err))
				continue
			}
			for _, id := range evicted {
				onEvict(id)
			}
			if len(evicted) > 0 {
				log.Info("idle sessions evicted", zap.Strings("session_ids", evicted))
			}
		}
	}
}
