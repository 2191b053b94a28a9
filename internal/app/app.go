package app

import (
	"time"

	"go.uber.org/zap"

	"forecourt/internal/api"
	"forecourt/internal/config"
	"forecourt/internal/query"
	"forecourt/internal/session"
	libredis "forecourt/libs/redis"
)

// App wires the dashboard client dependencies.
type App struct {
	Client   *api.Client
	Cache    query.Cache
	Operator *session.Operator
	Config   *config.Config

	logger *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	client := api.New(cfg.API.BaseURL, cfg.API.Token, cfg.HTTPTimeout(), logger)

	var cache query.Cache
	switch cfg.CacheBackend() {
	case config.CacheRedis:
		rdb, err := libredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		cache = query.NewRedis(rdb)
	case config.CacheOff:
		cache = query.Noop{}
	default:
		cache = query.NewMemory()
	}

	var operator *session.Operator
	if cfg.API.Token != "" {
		op, err := session.FromToken(cfg.API.Token)
		if err != nil {
			logger.Warn("token claims unreadable, role gates disabled", zap.Error(err))
		} else {
			if op.Expired(time.Now()) {
				logger.Warn("access token is expired, requests will be rejected",
					zap.Time("expired_at", op.ExpiresAt))
			}
			operator = op
		}
	}

	return &App{
		Client:   client,
		Cache:    cache,
		Operator: operator,
		Config:   cfg,
		logger:   logger,
	}, nil
}

// Logger exposes the process logger for page sessions.
func (a *App) Logger() *zap.Logger { return a.logger }

// Close releases resources.
func (a *App) Close() {
	if err := a.Cache.Close(); err != nil {
		a.logger.Warn("cache close failed", zap.Error(err))
	}
}
