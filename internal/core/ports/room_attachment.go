package ports

import (
	"context"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// RoomAttachment is one live attachment to a chat room, typically backing a
// single websocket connection. Enter validates the stored pairing and opens
// the message and peer presence streams; Leave tears everything down.
type RoomAttachment interface {
	Enter(ctx context.Context, userID, roomID string) (*domain.Session, error)
	Leave(ctx context.Context) error
	Messages() *MessageStream
	PeerPresence() *PresenceStream
}

// RoomAttachmentFactory builds a fresh attachment per connection.
type RoomAttachmentFactory func() RoomAttachment
