package domain

import (
	"errors"
	"time"
)

// Account models a registered chat identity in the directory.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Passcode     string    `json:"passcode"`
	CreatedAt    time.Time `json:"created_at"`
	IsOnline     bool      `json:"is_online"`
	LastSeen     time.Time `json:"last_seen"`
}

// PasscodeEntry is the directory mapping from a passcode to its owner.
// An entry is written once at signup and never reused while it exists.
type PasscodeEntry struct {
	Code      string `json:"code"`
	OwnerID   string `json:"owner_id"`
	OwnerName string `json:"owner_name"`
}

var ErrEmailInUse = errors.New("email already in use")
var ErrWeakPassword = errors.New("password too weak")
var ErrMissingFields = errors.New("required field missing")
var ErrAccountNotFound = errors.New("account not found")
var ErrWrongPassword = errors.New("wrong password")
var ErrAccountDisabled = errors.New("account disabled")
var ErrTooManyAttempts = errors.New("too many attempts")

var ErrSelfPairing = errors.New("cannot pair with own passcode")
var ErrUnknownPasscode = errors.New("unknown passcode")
var ErrPasscodeTaken = errors.New("passcode already assigned")

var ErrInvalidSession = errors.New("invalid chat session")
var ErrRoomForbidden = errors.New("not a participant of this room")
var ErrEmptyMessage = errors.New("message text is empty")
