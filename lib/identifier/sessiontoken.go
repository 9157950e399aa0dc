// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identifier

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// SessionTokenSize is the number of decoded bytes in a session token.
const SessionTokenSize = 32

// ErrInvalidSessionToken is returned when a candidate string is not
// exactly SessionTokenSize bytes of unpadded base64url.
var ErrInvalidSessionToken = errors.New("identifier: invalid session token")

// SessionToken is an opaque session identifier — not a credential.
// Equality is by decoded bytes, which Go's comparable array gives for
// free.
type SessionToken [SessionTokenSize]byte

// NewSessionToken draws SessionTokenSize bytes from a CSPRNG, per the
// concurrency model's requirement that nonces and tokens come from a
// CSPRNG.
func NewSessionToken() (SessionToken, error) {
	var tok SessionToken
	if _, err := rand.Read(tok[:]); err != nil {
		return SessionToken{}, err
	}
	return tok, nil
}

// ParseSessionToken decodes the base64url-without-padding wire form.
func ParseSessionToken(s string) (SessionToken, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil || len(raw) != SessionTokenSize {
		return SessionToken{}, ErrInvalidSessionToken
	}
	var tok SessionToken
	copy(tok[:], raw)
	return tok, nil
}

// String renders the base64url-without-padding wire form (43 chars).
func (t SessionToken) String() string {
	return base64.RawURLEncoding.EncodeToString(t[:])
}
