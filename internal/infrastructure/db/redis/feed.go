package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pairchat/chat-service/internal/core/ports"
)

// Feed publishes change notifications over Redis pub/sub so every service
// instance sees writes made by any of them. The payload is always empty;
// subscribers re-read the underlying record.
type Feed struct {
	client *redis.Client
}

func NewFeed(client *redis.Client) *Feed {
	return &Feed{client: client}
}

func (f *Feed) Publish(ctx context.Context, topic string) error {
	if err := f.client.Publish(ctx, topic, "").Err(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Listener bridges Redis pub/sub into the local notifier: every received
// channel name is forwarded as a topic notification.
type Listener struct {
	client   *redis.Client
	notifier ports.ChangeNotifier
	log      zerolog.Logger
}

func NewListener(client *redis.Client, notifier ports.ChangeNotifier, log zerolog.Logger) *Listener {
	return &Listener{client: client, notifier: notifier, log: log}
}

// Run subscribes to all room and presence topics and forwards notifications
// until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) {
	sub := l.client.PSubscribe(ctx, "room:*", "presence:*")
	defer func() {
		if err := sub.Close(); err != nil {
			l.log.Warn().Err(err).Msg("pubsub close failed")
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			l.notifier.Notify(msg.Channel)
		}
	}
}
