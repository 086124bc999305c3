package ports

import (
	"sync"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// MessageStream is a cancellable subscription to a room's message log. Each
// delivery is the full ordered snapshot; consumers dedupe by message id.
type MessageStream struct {
	Updates <-chan []domain.Message

	once   sync.Once
	cancel func()
}

// NewMessageStream wraps an update channel and a cancellation func.
func NewMessageStream(updates <-chan []domain.Message, cancel func()) *MessageStream {
	return &MessageStream{Updates: updates, cancel: cancel}
}

// Cancel stops delivery and releases the underlying listener. Safe to call
// more than once.
func (s *MessageStream) Cancel() {
	s.once.Do(s.cancel)
}

// PresenceStream is a cancellable subscription to one account's presence
// record.
type PresenceStream struct {
	Updates <-chan domain.Presence

	once   sync.Once
	cancel func()
}

// NewPresenceStream wraps an update channel and a cancellation func.
func NewPresenceStream(updates <-chan domain.Presence, cancel func()) *PresenceStream {
	return &PresenceStream{Updates: updates, cancel: cancel}
}

// Cancel stops delivery and releases the underlying listener. Safe to call
// more than once.
func (s *PresenceStream) Cancel() {
	s.once.Do(s.cancel)
}
