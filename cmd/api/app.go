package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-fit/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-fit/internal/adapters/repository/migrations"
	"github.com/comitanigiacomo/kanso-fit/internal/config"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
	"github.com/comitanigiacomo/kanso-fit/internal/core/workers"
)

const warmQueueSize = 100

// buildApp wires storage, cache and services into a router. The returned
// cleanup closes every connection buildApp opened.
func buildApp(ctx context.Context, cfg config.Config, log *logrus.Logger) (*gin.Engine, func(), error) {
	var (
		db       *sqlx.DB
		rdb      *redis.Client
		accounts domain.AccountRepository
		ledger   domain.LedgerRepository
	)

	cleanup := func() {
		if rdb != nil {
			rdb.Close()
		}
		if db != nil {
			db.Close()
		}
	}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		log.Info("connecting to database...")

		var err error
		db, err = sqlx.ConnectContext(ctx, "pgx", cfg.DB.DSN())
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to database: %w", err)
		}

		db.SetMaxOpenConns(cfg.DB.MaxConns)
		db.SetMaxIdleConns(cfg.DB.MaxConns)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := migrations.Apply(ctx, db.DB); err != nil {
			return nil, cleanup, err
		}
		log.WithField("statements", migrations.Count()).Info("database connected and migrated")

		accounts = repository.NewPostgresAccountRepository(db, cfg.StoreTimeout)
		ledger = repository.NewPostgresLedgerRepository(db, cfg.StoreTimeout)

	case config.StorageMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		accounts = repository.NewInMemoryAccountRepository()
		ledger = repository.NewInMemoryLedgerRepository()
	}

	if cfg.Redis.Enabled {
		var err error
		rdb, err = cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.WithError(err).Warn("redis unavailable, continuing without cache")
			rdb = nil
		}
	}

	var (
		revocations domain.RevocationStore = cache.NewMemoryRevocationStore()
		notifier    services.LedgerNotifier
	)
	if rdb != nil {
		revocations = cache.NewRedisRevocationStore(rdb)

		cached := repository.NewCachedLedgerRepository(ledger, rdb, log)
		ledger = cached

		warmer := workers.NewLedgerWarmer(cached, warmQueueSize, log)
		warmer.Start(ctx)
		notifier = warmer
	}

	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL, accounts, revocations)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(services.NewAuthService(accounts), tokens),
		AccountHandler: adapterHTTP.NewAccountHandler(services.NewAccountService(accounts)),
		LedgerHandler:  adapterHTTP.NewLedgerHandler(services.NewLedgerService(accounts, ledger, notifier)),
		StatsHandler:   adapterHTTP.NewStatsHandler(services.NewStatsService(accounts, ledger)),
		Sessions:       tokens,
		DB:             db,
		Redis:          rdb,
		Log:            log,
		RateLimit: adapterHTTP.RateLimit{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		},
		StartTime: time.Now(),
	})

	return router, cleanup, nil
}
