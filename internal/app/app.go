package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"megawarez/internal/cache"
	"megawarez/internal/config"
	"megawarez/internal/logging"
	"megawarez/internal/repo"
)

type App struct {
	cfg    config.Config
	log    logging.Logger
	pool   *pgxpool.Pool
	db     *sql.DB
	redis  *redis.Client
	router *gin.Engine
}

// New connects storage and the optional Redis cache, migrates the schema
// when configured to, and builds the router.
func New(ctx context.Context, cfg config.Config, log logging.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	var store repo.Store
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn(ctx, "using in-memory storage, data is lost on exit")
		store = repo.NewMemoryStore()
	default:
		pool, db, err := OpenPostgres(ctx, cfg.PG)
		if err != nil {
			return nil, err
		}
		a.pool, a.db = pool, db
		if cfg.PG.AutoMigrate {
			if err := Migrate(ctx, db, log, "up"); err != nil {
				_ = a.Close(ctx)
				return nil, err
			}
		}
		store = repo.NewPGStore(db)
	}

	var catalogCache *cache.CatalogCache
	if cfg.Redis.Enabled() {
		rdb, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.redis = rdb
		catalogCache = cache.NewCatalogCache(rdb, cfg.Redis.CacheTTL.Duration())
		log.Info(ctx, "catalog cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL.Duration())
	}

	a.router = newRouter(cfg, store, catalogCache, log, a.ping)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close releases Redis and Postgres. Each handle is closed once, and every
// failure is reported.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
		a.redis = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close postgres: %w", err))
		}
		a.db = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	err := errors.Join(errs...)
	if err != nil {
		a.log.Error(ctx, "shutdown incomplete", "err", err)
	}
	return err
}

// ping checks the backing services; nil means healthy.
func (a *App) ping(ctx context.Context) error {
	if a.db != nil {
		if err := a.db.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// OpenPostgres opens a pgx pool and a database/sql handle sharing it.
func OpenPostgres(ctx context.Context, cfg config.PGConfig) (*pgxpool.Pool, *sql.DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pg parse config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime.Duration()
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime.Duration()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("pg connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, stdlib.OpenDBFromPool(pool), nil
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func newRouter(cfg config.Config, store repo.Store, catalogCache *cache.CatalogCache, log logging.Logger, ping func(context.Context) error) *gin.Engine {
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, Deps{Store: store, Cache: catalogCache, Log: log, Ping: ping})
	return r
}
