package ports

import (
	"context"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// PresenceService tracks and observes the online flag of accounts.
type PresenceService interface {
	// SetOnline overwrites the presence record with the new flag and stamps
	// last-seen, then publishes the change.
	SetOnline(ctx context.Context, userID string, online bool) error
	Get(ctx context.Context, userID string) (*domain.Presence, error)
	// Observe delivers the current presence first, then an update on every
	// change, until the stream is cancelled.
	Observe(ctx context.Context, userID string) (*PresenceStream, error)
}
