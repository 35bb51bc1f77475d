package container

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/netmovie-accounts/config"
	repo "github.com/oksasatya/netmovie-accounts/internal/domain/repository"
	pginfra "github.com/oksasatya/netmovie-accounts/internal/infrastructure/postgres"
	"github.com/oksasatya/netmovie-accounts/internal/infrastructure/memory"
	"github.com/oksasatya/netmovie-accounts/internal/infrastructure/redisstore"
	"github.com/oksasatya/netmovie-accounts/pkg/helpers"
)

// Container carries the shared infrastructure built at startup. It is
// passed explicitly to the router instead of living in package globals.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Pool     *pgxpool.Pool
	Redis    *redis.Client // nil unless the redis session store is selected
	Sessions repo.SessionStore
	JWT      *helpers.JWTManager
	Cookies  *helpers.Manager
}

// New builds the session store, token manager and cookie manager around an
// existing pool.
func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool) *Container {
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Pool:    pool,
		JWT:     helpers.NewJWTManager(cfg.SessionSecret),
		Cookies: helpers.NewCookie(cfg.SessionCookieName, cfg.CookieDomain, cfg.CookieSecure),
	}

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		c.Sessions = redisstore.NewSessionStore(c.Redis)
	default:
		if cfg.SessionStore != config.SessionStoreMemory {
			helpers.LogWarn(logger, "unknown session store, using memory", nil, logrus.Fields{"session_store": cfg.SessionStore})
		}
		c.Sessions = memory.NewSessionStore()
	}
	helpers.LogInfo(logger, "session store ready", logrus.Fields{"session_store": cfg.SessionStore})
	return c
}

// Close releases the clients the container owns. The pool is closed by its creator.
func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

// PingDB reports whether the database answers.
func (c *Container) PingDB(ctx context.Context) error {
	if c.Pool == nil {
		return errNoPool
	}
	return pginfra.Ping(ctx, c.Pool)
}
