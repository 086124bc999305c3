package handler

import (
	"time"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type accountResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Passcode string `json:"passcode"`
}

type authResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

type updateNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// --- Pairing ---

type pairRequest struct {
	Passcode string `json:"passcode" validate:"required"`
}

type peerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

type pairResponse struct {
	RoomID string       `json:"room_id"`
	Peer   peerResponse `json:"peer"`
}

// --- Messages ---

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
	// Timestamp is the client clock in milliseconds since the epoch;
	// omitted or zero means the server stamps it.
	Timestamp int64 `json:"timestamp,omitempty"`
}

type messageResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

type messagesResponse struct {
	Messages []messageResponse `json:"messages"`
}

// --- Presence ---

type presenceRequest struct {
	Online bool `json:"online"`
}

type presenceResponse struct {
	UserID   string `json:"user_id"`
	IsOnline bool   `json:"is_online"`
	LastSeen int64  `json:"last_seen,omitempty"`
	Display  string `json:"display"`
}

func toMessageResponse(m domain.Message) messageResponse {
	return messageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Text:       m.Text,
		Timestamp:  m.Timestamp,
	}
}

func toMessagesResponse(msgs []domain.Message) messagesResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return messagesResponse{Messages: out}
}

func toPresenceResponse(p *domain.Presence, now time.Time) presenceResponse {
	resp := presenceResponse{UserID: p.UserID, IsOnline: p.IsOnline}
	if p.IsOnline {
		resp.Display = "online"
		return resp
	}
	if p.LastSeen.IsZero() {
		resp.Display = domain.FormatLastSeen(p.LastSeen, now)
		return resp
	}
	resp.LastSeen = p.LastSeen.UnixMilli()
	resp.Display = "last seen " + domain.FormatLastSeen(p.LastSeen, now)
	return resp
}
