package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/pairchat/chat-service/internal/core/domain"
	"github.com/pairchat/chat-service/internal/core/ports"
)

// PresenceService writes and observes the online flag of accounts. The
// record lives on the directory entry; changes are announced on the change
// feed so observers re-read.
type PresenceService struct {
	directory ports.DirectoryRepository
	feed      ports.ChangeFeed
	notifier  ports.ChangeNotifier
	log       zerolog.Logger
}

func NewPresenceService(
	directory ports.DirectoryRepository,
	feed ports.ChangeFeed,
	notifier ports.ChangeNotifier,
	log zerolog.Logger,
) *PresenceService {
	return &PresenceService{directory: directory, feed: feed, notifier: notifier, log: log}
}

// SetOnline overwrites the presence record and stamps last-seen on both
// transitions. The publish is best effort; the write is authoritative.
func (s *PresenceService) SetOnline(ctx context.Context, userID string, online bool) error {
	if err := s.directory.UpdatePresence(ctx, userID, online, time.Now().UTC()); err != nil {
		return err
	}
	if err := s.feed.Publish(ctx, ports.PresenceTopic(userID)); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("presence publish failed")
	}
	return nil
}

// Get returns the current presence record. A missing account renders as
// offline with no last-seen rather than an error.
func (s *PresenceService) Get(ctx context.Context, userID string) (*domain.Presence, error) {
	p, err := s.directory.GetPresence(ctx, userID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return &domain.Presence{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Observe streams presence updates for one account: the current record
// first, then a fresh read after every announced change.
func (s *PresenceService) Observe(ctx context.Context, userID string) (*ports.PresenceStream, error) {
	// Register before the initial read: a flip landing in between then
	// leaves a pending signal and triggers a re-read instead of being lost.
	signals, unsubscribe := s.notifier.Subscribe(ports.PresenceTopic(userID))

	initial, err := s.Get(ctx, userID)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	updates := make(chan domain.Presence, 1)
	done := make(chan struct{})

	go func() {
		defer close(updates)

		current := *initial
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

			p, err := s.Get(ctx, userID)
			if err != nil {
				s.log.Warn().Err(err).Str("user_id", userID).Msg("presence re-read failed")
				continue
			}
			current = *p
		}
	}()

	cancel := func() {
		unsubscribe()
		close(done)
	}
	return ports.NewPresenceStream(updates, cancel), nil
}
