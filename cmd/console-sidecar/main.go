// Command console-sidecar runs the local state daemon for the console
// shell: durable preferences, the session query cache, access gates, and
// the client for the remote console API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aexy/console-state/internal/api"
	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
	"github.com/aexy/console-state/internal/core/service"
	"github.com/aexy/console-state/internal/infrastructure/backend"
	"github.com/aexy/console-state/internal/infrastructure/cache"
	"github.com/aexy/console-state/internal/infrastructure/config"
	redisdb "github.com/aexy/console-state/internal/infrastructure/db/redis"
	"github.com/aexy/console-state/internal/infrastructure/navigation"
	"github.com/aexy/console-state/internal/infrastructure/refresh"
	"github.com/aexy/console-state/internal/infrastructure/scheme"
	"github.com/aexy/console-state/internal/infrastructure/storage"
	"github.com/aexy/console-state/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewFileStore(cfg.StateDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open settings store")
	}

	var (
		qcache ports.QueryCache
		rdb    *goredis.Client
	)
	if cfg.Cache.Backend == "redis" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		qcache = cache.NewRedis(rdb, log)
	} else {
		qcache = cache.NewMemory()
	}

	nav := navigation.NewBus(log)
	schemes := scheme.NewHub(domain.SchemeLight, log)
	applier := scheme.NewApplier(log)

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	sessions := service.NewSessionService(client, qcache, store, nav, cfg.Cache.SessionTTL, log)
	access := service.NewAccessService(sessions, client, qcache, store, nav, cfg.Cache.DecisionTTL, log)

	prefs := service.NewPreferenceService(store, schemes, applier, log)
	stopTheme := prefs.Start()
	defer stopTheme()

	dispatcher := refresh.NewDispatcher(0, log)
	dashboard := service.NewDashboardService(sessions, client, qcache, store, dispatcher, cfg.Cache.DecisionTTL, log)
	dispatcher.SetHandler(func(ctx context.Context, key ports.CacheKey) {
		if ports.IsDashboardKey(key) {
			if _, err := dashboard.Preferences(ctx); err != nil {
				log.Debug().Err(err).Str("key", string(key)).Msg("background refresh failed")
			}
		}
	})
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Sessions:  sessions,
		Access:    access,
		Prefs:     prefs,
		Dashboard: dashboard,
		Schemes:   schemes,
		Nav:       nav,
		Redis:     rdb,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("console state sidecar started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
