package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pairchat/chat-service/internal/core/domain"
	"github.com/pairchat/chat-service/internal/core/ports"
)

// RoomSession owns the lifecycle of one chat room attachment:
//
//	Uninitialized → Validating → {Active | InvalidSession}
//	Active → Leaving → Uninitialized
//
// InvalidSession is terminal; the caller surfaces the error and navigates
// away. One RoomSession serves one attachment (e.g. one websocket).
type RoomSession struct {
	chat     ports.ChatService
	presence ports.PresenceService
	sessions ports.SessionStore
	log      zerolog.Logger

	mu           sync.Mutex
	state        domain.RoomState
	sess         *domain.Session
	msgs         *ports.MessageStream
	peerPresence *ports.PresenceStream
}

func NewRoomSession(
	chat ports.ChatService,
	presence ports.PresenceService,
	sessions ports.SessionStore,
	log zerolog.Logger,
) *RoomSession {
	return &RoomSession{
		chat:     chat,
		presence: presence,
		sessions: sessions,
		log:      log,
		state:    domain.RoomUninitialized,
	}
}

// State returns the current lifecycle state.
func (r *RoomSession) State() domain.RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Messages returns the snapshot stream opened by Enter. Nil unless Active.
func (r *RoomSession) Messages() *ports.MessageStream {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.msgs
}

// PeerPresence returns the peer presence stream opened by Enter. Nil unless
// Active.
func (r *RoomSession) PeerPresence() *ports.PresenceStream {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peerPresence
}

// Enter validates the stored session against roomID, opens both streams,
// and flips the caller online. On a missing, unpaired, or mismatched
// session the state is InvalidSession and domain.ErrInvalidSession is
// returned; no subscriptions are left behind.
func (r *RoomSession) Enter(ctx context.Context, userID, roomID string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.state.CanTransitionTo(domain.RoomValidating) {
		return nil, domain.ErrInvalidSession
	}
	r.state = domain.RoomValidating

	sess, err := r.sessions.Load(ctx, userID)
	if err != nil {
		r.state = domain.RoomUninitialized
		return nil, err
	}
	if !sess.Paired() || sess.RoomID != roomID {
		r.state = domain.RoomInvalidSession
		return nil, domain.ErrInvalidSession
	}

	msgs, err := r.chat.Subscribe(ctx, roomID)
	if err != nil {
		r.state = domain.RoomUninitialized
		return nil, err
	}

	peer, err := r.presence.Observe(ctx, sess.Peer.ID)
	if err != nil {
		msgs.Cancel()
		r.state = domain.RoomUninitialized
		return nil, err
	}

	if err := r.presence.SetOnline(ctx, userID, true); err != nil {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("failed to flip presence on room entry")
	}

	r.sess = sess
	r.msgs = msgs
	r.peerPresence = peer
	r.state = domain.RoomActive
	return sess, nil
}

// Leave tears down an active attachment: cancels both streams, flips
// presence offline, and clears the session snapshot. Every step runs even
// when an earlier one fails; the first error is returned.
func (r *RoomSession) Leave(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.state.CanTransitionTo(domain.RoomLeaving) {
		return nil
	}
	r.state = domain.RoomLeaving

	if r.msgs != nil {
		r.msgs.Cancel()
		r.msgs = nil
	}
	if r.peerPresence != nil {
		r.peerPresence.Cancel()
		r.peerPresence = nil
	}

	var first error
	if r.sess != nil {
		if err := r.presence.SetOnline(ctx, r.sess.UserID, false); err != nil {
			first = err
		}
		if err := r.sessions.Clear(ctx, r.sess.UserID); err != nil && first == nil {
			first = err
		}
		r.sess = nil
	}

	r.state = domain.RoomUninitialized
	return first
}
