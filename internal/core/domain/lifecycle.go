package domain

// RoomState represents the lifecycle state of a chat room attachment.
type RoomState string

const (
	RoomUninitialized  RoomState = "uninitialized"
	RoomValidating     RoomState = "validating"
	RoomActive         RoomState = "active"
	RoomInvalidSession RoomState = "invalid_session"
	RoomLeaving        RoomState = "leaving"
)

// roomTransitions defines the allowed state machine transitions.
// RoomInvalidSession is terminal: the caller surfaces an error and
// navigates away.
var roomTransitions = map[RoomState][]RoomState{
	RoomUninitialized: {RoomValidating},
	RoomValidating:    {RoomActive, RoomInvalidSession, RoomUninitialized},
	RoomActive:        {RoomLeaving},
	RoomLeaving:       {RoomUninitialized},
}

// CanTransitionTo reports whether a transition from the current state to
// next is valid.
func (s RoomState) CanTransitionTo(next RoomState) bool {
	for _, allowed := range roomTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
