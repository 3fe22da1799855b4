// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
)

var ErrInvalidPSK = errors.New("invalid helper psk")

// CheckPSK reports whether got equals want.
// Both sides are hashed first so the comparison time depends on neither
// the contents nor the length of the expected key.
func CheckPSK(got, want string) bool {
	g := sha256.Sum256([]byte(got))
	w := sha256.Sum256([]byte(want))
	return subtle.ConstantTimeCompare(g[:], w[:]) == 1
}

// ValidatePSK returns ErrInvalidPSK unless got matches want
func ValidatePSK(got, want string) error {
	if !CheckPSK(got, want) {
		return ErrInvalidPSK
	}
	return nil
}
