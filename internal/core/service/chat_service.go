package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pairchat/chat-service/internal/core/domain"
	"github.com/pairchat/chat-service/internal/core/ports"
)

// ChatService implements the append-only message channel. Ordering is
// established purely by the timestamp field at read time; the store and the
// change feed give no delivery-order guarantee.
type ChatService struct {
	messages ports.MessageRepository
	feed     ports.ChangeFeed
	notifier ports.ChangeNotifier
	log      zerolog.Logger
}

func NewChatService(
	messages ports.MessageRepository,
	feed ports.ChangeFeed,
	notifier ports.ChangeNotifier,
	log zerolog.Logger,
) *ChatService {
	return &ChatService{messages: messages, feed: feed, notifier: notifier, log: log}
}

// Send appends a message to the room's log and announces the change.
func (s *ChatService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	if in.RoomID == "" || in.SenderID == "" {
		return nil, domain.ErrMissingFields
	}

	ts := in.Timestamp
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}

	msg := &domain.Message{
		ID:         uuid.NewString(),
		RoomID:     in.RoomID,
		SenderID:   in.SenderID,
		SenderName: in.SenderName,
		Text:       text,
		Timestamp:  ts,
	}

	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, err
	}

	// The message is durable at this point; a lost notification only delays
	// delivery until the next one.
	if err := s.feed.Publish(ctx, ports.RoomTopic(in.RoomID)); err != nil {
		s.log.Warn().Err(err).Str("room_id", in.RoomID).Msg("message publish failed")
	}

	s.log.Debug().Str("room_id", in.RoomID).Str("message_id", msg.ID).Msg("message sent")
	return msg, nil
}

// History returns the full ordered message set of a room.
func (s *ChatService) History(ctx context.Context, roomID string) ([]domain.Message, error) {
	msgs, err := s.messages.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	domain.SortMessages(msgs)
	return msgs, nil
}

// Subscribe streams snapshots of the room's message log: the full ordered
// set immediately, then a fresh snapshot after every announced append.
func (s *ChatService) Subscribe(ctx context.Context, roomID string) (*ports.MessageStream, error) {
	// Register before the initial read: an append landing in between then
	// leaves a pending signal and triggers a re-read instead of being lost.
	signals, unsubscribe := s.notifier.Subscribe(ports.RoomTopic(roomID))

	initial, err := s.History(ctx, roomID)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	updates := make(chan []domain.Message, 1)
	done := make(chan struct{})

	go func() {
		defer close(updates)

		current := initial
		for {
			select {
			case updates <- current:
			case <-done:
				return
			case <-ctx.Done():
				return
			}

			select {
			case <-signals:
			case <-done:
				return
			case <-ctx.Done():
				return
			}

			snapshot, err := s.History(ctx, roomID)
			if err != nil {
				s.log.Warn().Err(err).Str("room_id", roomID).Msg("message re-read failed")
				continue
			}
			current = snapshot
		}
	}()

	cancel := func() {
		unsubscribe()
		close(done)
	}
	return ports.NewMessageStream(updates, cancel), nil
}
