package ports

import (
	"context"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// SendMessageInput is the DTO passed from the transport layer to ChatService.
// Timestamp is the client clock in milliseconds since the epoch; zero means
// "stamp with the server clock".
type SendMessageInput struct {
	RoomID     string
	SenderID   string
	SenderName string
	Text       string
	Timestamp  int64
}

// ChatService is the append-only, timestamp-ordered message channel of a room.
type ChatService interface {
	Send(ctx context.Context, in SendMessageInput) (*domain.Message, error)
	// History returns the full ordered message set of a room.
	History(ctx context.Context, roomID string) ([]domain.Message, error)
	// Subscribe delivers the full ordered snapshot immediately, then a fresh
	// snapshot after every append, until the stream is cancelled.
	Subscribe(ctx context.Context, roomID string) (*MessageStream, error)
}
