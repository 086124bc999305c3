package domain

import "time"

// Peer is the resolved identity of a chat partner.
type Peer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

// Session is the durable snapshot of an authenticated identity and, once
// paired, its chat linkage. It survives restarts and hands pairing state
// from the landing flow to the chat flow.
type Session struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Passcode  string    `json:"passcode"`
	Peer      *Peer     `json:"peer,omitempty"`
	RoomID    string    `json:"room_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Paired reports whether the session carries a complete chat linkage.
func (s *Session) Paired() bool {
	return s != nil && s.RoomID != "" && s.Peer != nil && s.Peer.ID != ""
}
