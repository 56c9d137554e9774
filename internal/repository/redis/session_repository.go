package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"xplorer-be/internal/entity"
	"xplorer-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	return r.set(ctx, session)
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	val, err := r.client.Get(ctx, keyPrefix+id.String()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, contract.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Update(ctx context.Context, session *entity.Session) error {
	exists, err := r.client.Exists(ctx, keyPrefix+session.Id.String()).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return contract.ErrSessionNotFound
	}
	session.UpdatedAt = time.Now()
	return r.set(ctx, session)
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, keyPrefix+id.String()).Err()
}

func (r *SessionRepository) Close() error {
	return r.client.Close()
}

func (r *SessionRepository) set(ctx context.Context, session *entity.Session) error {
	val, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+session.Id.String(), val, r.ttl).Err()
}
