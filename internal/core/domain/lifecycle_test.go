package domain

import "testing"

func TestRoomStateTransitions(t *testing.T) {
	tests := []struct {
		from RoomState
		to   RoomState
		want bool
	}{
		{RoomUninitialized, RoomValidating, true},
		{RoomValidating, RoomActive, true},
		{RoomValidating, RoomInvalidSession, true},
		{RoomValidating, RoomUninitialized, true},
		{RoomActive, RoomLeaving, true},
		{RoomLeaving, RoomUninitialized, true},

		{RoomUninitialized, RoomActive, false},
		{RoomActive, RoomValidating, false},
		{RoomActive, RoomUninitialized, false},
		{RoomLeaving, RoomActive, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestRoomInvalidSessionIsTerminal(t *testing.T) {
	for _, next := range []RoomState{RoomUninitialized, RoomValidating, RoomActive, RoomLeaving} {
		if RoomInvalidSession.CanTransitionTo(next) {
			t.Fatalf("invalid_session must not transition to %s", next)
		}
	}
}
