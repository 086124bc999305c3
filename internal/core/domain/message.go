package domain

import "sort"

// Message is a single chat message. Timestamp is milliseconds since the
// epoch, taken from the sending client's clock; messages are never edited
// or deleted, only appended.
type Message struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

// SortMessages orders messages by timestamp ascending, preserving the
// existing order of equal timestamps. Delivery order from the store is not
// trusted; callers re-sort on every update.
func SortMessages(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp < msgs[j].Timestamp
	})
}
