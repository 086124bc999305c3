package domain

// roomIDSeparator joins the two passcodes forming a room id.
const roomIDSeparator = "-"

// RoomID derives the canonical room identifier for a pair of passcodes.
// The two codes are sorted lexicographically before joining, so both
// participants compute the same id independently regardless of argument
// order. This is what lets two clients converge on one message channel
// without a central allocator.
func RoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + roomIDSeparator + b
}

// RoomHasParticipant reports whether the given passcode is one of the two
// components of roomID.
func RoomHasParticipant(roomID, passcode string) bool {
	if len(roomID) != 2*PasscodeLength+len(roomIDSeparator) {
		return false
	}
	return roomID[:PasscodeLength] == passcode || roomID[PasscodeLength+len(roomIDSeparator):] == passcode
}
