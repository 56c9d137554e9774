package contract

import (
	"context"
	"errors"

	"xplorer-be/internal/entity"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidDriver   = errors.New("invalid session driver")
)

// ISessionRepository stores per-browser-session state under a TTL. All
// drivers must be safe for concurrent use; within one session there is no
// concurrent mutation (one request/render cycle at a time).
type ISessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// Get returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}
