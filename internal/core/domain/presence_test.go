package domain

import (
	"testing"
	"time"
)

func TestFormatLastSeen_Buckets(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{120 * time.Second, "2 minutes ago"},
		{time.Minute, "1 minute ago"},
		{7200 * time.Second, "2 hours ago"},
		{time.Hour, "1 hour ago"},
	}
	for _, tc := range cases {
		if got := FormatLastSeen(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("last seen %v ago: expected %q, got %q", tc.ago, tc.want, got)
		}
	}
}

func TestFormatLastSeen_OverADay(t *testing.T) {
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	lastSeen := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	if got := FormatLastSeen(lastSeen, now); got != "Jun 1, 2024 09:30" {
		t.Fatalf("expected absolute date, got %q", got)
	}
}

func TestFormatLastSeen_Zero(t *testing.T) {
	if got := FormatLastSeen(time.Time{}, time.Now()); got != "offline" {
		t.Fatalf("expected offline for zero timestamp, got %q", got)
	}
}
