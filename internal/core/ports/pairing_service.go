package ports

import (
	"context"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// PairResult is the outcome of a successful pairing: the resolved peer and
// the canonical room id shared by both participants.
type PairResult struct {
	Peer   domain.Peer
	RoomID string
}

// PairingService resolves a peer passcode to an identity and derives the
// shared room id.
type PairingService interface {
	// Pair normalizes peerInput (trim, uppercase), rejects self-pairing and
	// unknown passcodes, and persists the pairing into the session store.
	// Idempotent: repeated calls with the same inputs yield the same room id
	// and overwrite the stored pairing.
	Pair(ctx context.Context, userID, peerInput string) (*PairResult, error)
}
