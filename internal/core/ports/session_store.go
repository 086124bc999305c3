package ports

import (
	"context"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// SessionStore is the durable local cache of identity and pairing state,
// keyed by user id. Load of a missing or corrupt snapshot yields (nil, nil);
// corrupt entries are cleared, never surfaced as a failure.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	Load(ctx context.Context, userID string) (*domain.Session, error)
	Clear(ctx context.Context, userID string) error
}
