package domain

import (
	"crypto/rand"
	"strings"

	mrand "math/rand/v2"
)

// PasscodeAlphabet is the set of symbols a passcode is drawn from.
const PasscodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PasscodeLength is the fixed length of every passcode.
const PasscodeLength = 8

// GeneratePasscode returns a uniformly random passcode of PasscodeLength
// characters drawn from PasscodeAlphabet. Uniqueness is not guaranteed here;
// the caller must reserve the code in the directory and regenerate on
// collision.
func GeneratePasscode() string {
	// 252 is the largest multiple of len(PasscodeAlphabet) below 256;
	// rejecting bytes at or above it keeps the draw uniform.
	const limit = 252

	var sb strings.Builder
	sb.Grow(PasscodeLength)

	buf := make([]byte, PasscodeLength)
	for sb.Len() < PasscodeLength {
		if _, err := rand.Read(buf); err != nil {
			return fallbackPasscode()
		}
		for _, c := range buf {
			if c >= limit {
				continue
			}
			sb.WriteByte(PasscodeAlphabet[int(c)%len(PasscodeAlphabet)])
			if sb.Len() == PasscodeLength {
				break
			}
		}
	}
	return sb.String()
}

// fallbackPasscode draws from math/rand/v2 when the system entropy source is
// unavailable. IntN is uniform over the alphabet.
func fallbackPasscode() string {
	var sb strings.Builder
	sb.Grow(PasscodeLength)
	for i := 0; i < PasscodeLength; i++ {
		sb.WriteByte(PasscodeAlphabet[mrand.IntN(len(PasscodeAlphabet))])
	}
	return sb.String()
}

// NormalizePasscode canonicalizes user-entered passcode input: surrounding
// whitespace is stripped and letters are uppercased before any lookup.
func NormalizePasscode(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// ValidPasscode reports whether s is a well-formed passcode: exactly
// PasscodeLength characters, all from PasscodeAlphabet.
func ValidPasscode(s string) bool {
	if len(s) != PasscodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(PasscodeAlphabet, rune(s[i])) {
			return false
		}
	}
	return true
}
