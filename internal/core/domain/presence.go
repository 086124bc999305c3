package domain

import (
	"fmt"
	"time"
)

// Presence is an account's online flag plus last-seen timestamp. Writes are
// idempotent overwrites shared by both chat participants; last-write-wins.
type Presence struct {
	UserID   string    `json:"user_id"`
	IsOnline bool      `json:"is_online"`
	LastSeen time.Time `json:"last_seen"`
}

// FormatLastSeen renders a last-seen timestamp relative to now:
// under a minute "just now", under an hour in minutes, under a day in
// hours, otherwise an absolute date and time. A zero timestamp means the
// account has never been seen.
func FormatLastSeen(lastSeen, now time.Time) string {
	if lastSeen.IsZero() {
		return "offline"
	}

	d := now.Sub(lastSeen)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		return fmt.Sprintf("%d minute%s ago", m, plural(m))
	case d < 24*time.Hour:
		h := int(d.Hours())
		return fmt.Sprintf("%d hour%s ago", h, plural(h))
	default:
		return lastSeen.Format("Jan 2, 2006 15:04")
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
