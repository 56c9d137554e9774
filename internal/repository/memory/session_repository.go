package memory

import (
	"context"
	"time"

	"xplorer-be/internal/entity"
	"xplorer-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	// Purge expired sessions every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		ttl:   ttl,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	r.cache.Set(session.Id.String(), session, r.ttl)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*entity.Session), nil
	}
	return nil, contract.ErrSessionNotFound
}

func (r *SessionRepository) Update(ctx context.Context, session *entity.Session) error {
	if _, found := r.cache.Get(session.Id.String()); !found {
		return contract.ErrSessionNotFound
	}
	session.UpdatedAt = time.Now()
	// Re-set to refresh the TTL; an active session should not expire mid-use.
	r.cache.Set(session.Id.String(), session, r.ttl)
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return nil
}

func (r *SessionRepository) Close() error {
	r.cache.Flush()
	return nil
}
