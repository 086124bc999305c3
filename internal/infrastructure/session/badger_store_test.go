package session

import (
	"context"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/pairchat/chat-service/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func testSession() *domain.Session {
	return &domain.Session{
		UserID:    "user-a",
		UserName:  "Alice",
		Passcode:  "AB12CD34",
		Peer:      &domain.Peer{ID: "user-b", Name: "Bob", Passcode: "ZZ99YY88"},
		RoomID:    "AB12CD34-ZZ99YY88",
		UpdatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	want := testSession()

	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := store.Load(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got == nil || got.RoomID != want.RoomID || got.Passcode != want.Passcode {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Peer == nil || *got.Peer != *want.Peer {
		t.Fatalf("peer mismatch: %+v", got.Peer)
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Fatalf("timestamp mismatch: %v", got.UpdatedAt)
	}
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected empty load, got %+v", got)
	}
}

func TestStore_ClearThenLoadIsEmpty(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(context.Background(), testSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Clear(context.Background(), "user-a"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	got, err := store.Load(context.Background(), "user-a")
	if err != nil || got != nil {
		t.Fatalf("expected empty load after clear, got %+v, %v", got, err)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	first := testSession()
	if err := store.Save(context.Background(), first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := testSession()
	second.RoomID = "AB12CD34-QQ77QQ77"
	second.Peer = &domain.Peer{ID: "user-c", Name: "Cara", Passcode: "QQ77QQ77"}
	if err := store.Save(context.Background(), second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, _ := store.Load(context.Background(), "user-a")
	if got.RoomID != second.RoomID || got.Peer.ID != "user-c" {
		t.Fatalf("expected overwrite, got %+v", got)
	}
}

func TestStore_CorruptSnapshotIsClearedNotFatal(t *testing.T) {
	store := newTestStore(t)

	err := store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey("user-a"), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("seed corrupt snapshot: %v", err)
	}

	got, err := store.Load(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("corrupt snapshot must not error, got %v", err)
	}
	if got != nil {
		t.Fatalf("corrupt snapshot must load as empty, got %+v", got)
	}

	// The corrupt entry is gone for good.
	viewErr := store.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(sessionKey("user-a"))
		return err
	})
	if viewErr != badger.ErrKeyNotFound {
		t.Fatalf("expected corrupt entry deleted, got %v", viewErr)
	}
}
