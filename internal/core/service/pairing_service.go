package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pairchat/chat-service/internal/core/domain"
	"github.com/pairchat/chat-service/internal/core/ports"
)

// PairingService resolves peer passcodes and derives shared room ids.
type PairingService struct {
	directory ports.DirectoryRepository
	sessions  ports.SessionStore
	log       zerolog.Logger
}

func NewPairingService(directory ports.DirectoryRepository, sessions ports.SessionStore, log zerolog.Logger) *PairingService {
	return &PairingService{directory: directory, sessions: sessions, log: log}
}

// Pair resolves peerInput to a peer identity and persists the pairing.
// No session state is mutated on any rejection.
func (s *PairingService) Pair(ctx context.Context, userID, peerInput string) (*ports.PairResult, error) {
	peerCode := domain.NormalizePasscode(peerInput)
	if peerCode == "" {
		return nil, domain.ErrMissingFields
	}

	account, err := s.directory.FindAccountByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if peerCode == account.Passcode {
		return nil, domain.ErrSelfPairing
	}

	entry, err := s.directory.FindPasscode(ctx, peerCode)
	if err != nil {
		return nil, err
	}

	roomID := domain.RoomID(account.Passcode, peerCode)
	peer := domain.Peer{ID: entry.OwnerID, Name: entry.OwnerName, Passcode: peerCode}

	// Overwrites any previous pairing: repeating the call is a no-op apart
	// from the refreshed timestamp.
	session := &domain.Session{
		UserID:    userID,
		UserName:  account.Name,
		Passcode:  account.Passcode,
		Peer:      &peer,
		RoomID:    roomID,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("room_id", roomID).
		Str("peer_id", peer.ID).
		Msg("paired")

	return &ports.PairResult{Peer: peer, RoomID: roomID}, nil
}
