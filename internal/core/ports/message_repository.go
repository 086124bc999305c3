package ports

import (
	"context"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// MessageRepository persists the append-only message log of each room.
type MessageRepository interface {
	Append(ctx context.Context, m *domain.Message) error
	// ListByRoom returns all messages of a room. Order is not guaranteed by
	// the store; callers sort by timestamp.
	ListByRoom(ctx context.Context, roomID string) ([]domain.Message, error)
}
