package repository

import (
	"context"
	"fmt"
	"time"

	"xplorer-be/internal/config"
	"xplorer-be/internal/repository/contract"
	"xplorer-be/internal/repository/memory"
	redisrepo "xplorer-be/internal/repository/redis"

	"github.com/redis/go-redis/v9"
)

// NewSessionRepository builds the session store for the configured driver.
func NewSessionRepository(cfg config.SessionConfig) (contract.ISessionRepository, error) {
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute

	switch cfg.Driver {
	case "memory":
		return memory.NewSessionRepository(ttl), nil

	case "redis":
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			opt = &redis.Options{Addr: cfg.RedisURL}
		}
		client := redis.NewClient(opt)
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisrepo.NewSessionRepository(client, ttl), nil

	default:
		return nil, fmt.Errorf("%w: %q", contract.ErrInvalidDriver, cfg.Driver)
	}
}
