// Package security holds secrets in memory and validates user input.
package security

import (
	"bytes"
	"crypto/subtle"
)

// SecureBytes holds a secret, such as a key passphrase, until Zero is
// called.
type SecureBytes struct {
	data []byte
}

// FromBytes moves data into a new SecureBytes. The source slice is zeroed.
func FromBytes(data []byte) *SecureBytes {
	s := &SecureBytes{data: bytes.Clone(data)}
	clear(data)
	return s
}

// Bytes returns the secret. Callers must not retain it past Zero.
func (s *SecureBytes) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.data
}

// Len returns the length of the secret.
func (s *SecureBytes) Len() int {
	if s == nil {
		return 0
	}
	return len(s.data)
}

// Zero overwrites the secret and releases it. Safe on nil and repeated calls.
func (s *SecureBytes) Zero() {
	if s == nil || s.data == nil {
		return
	}
	clear(s.data)
	// Keep the compiler from eliding the clear
	subtle.ConstantTimeCopy(1, s.data, make([]byte, len(s.data)))
	s.data = nil
}

// Wipe zeroes *data and sets it to nil. Meant for defer.
func Wipe(data *[]byte) {
	if data == nil || *data == nil {
		return
	}
	clear(*data)
	*data = nil
}
