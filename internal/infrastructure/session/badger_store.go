package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/pairchat/chat-service/internal/core/domain"
)

const keyPrefix = "session:"

// Store is the durable session cache backed by an embedded Badger database.
// Snapshots are JSON-encoded and keyed by user id. A snapshot that fails to
// decode is treated as corrupt: it is deleted and Load reports empty rather
// than failing.
type Store struct {
	db  *badger.DB
	log zerolog.Logger
}

// Open opens (or creates) the store at dir.
func Open(dir string, log zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func sessionKey(userID string) []byte {
	return []byte(keyPrefix + userID)
}

func (s *Store) Save(_ context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(sess.UserID), data)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, userID string) (*domain.Session, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(userID))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("corrupt session snapshot, clearing")
		if clearErr := s.Clear(ctx, userID); clearErr != nil {
			s.log.Warn().Err(clearErr).Str("user_id", userID).Msg("failed to clear corrupt snapshot")
		}
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) Clear(_ context.Context, userID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(userID))
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
