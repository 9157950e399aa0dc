// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/hackvr/hackvr/lib/clock"
	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/protoerr"
)

// NonceTimeout is how long a request-authentication nonce remains
// valid after issuance.
const NonceTimeout = 60 * time.Second

// NonceSize is the number of random bytes in a request-authentication
// nonce.
const NonceSize = 16

// State names one position in the Idle -> AwaitSetUser ->
// AwaitAuthenticate -> Idle cycle.
type State int

const (
	Idle State = iota
	AwaitSetUser
	AwaitAuthenticate
)

// IdentityStore maps a userid to its Ed25519 public key. No passwords
// are ever transmitted or stored; this is the server's sole
// authentication identity surface.
type IdentityStore interface {
	Lookup(user identifier.UserID) (ed25519.PublicKey, bool)
}

// MapIdentityStore is an in-memory, mutex-guarded IdentityStore.
type MapIdentityStore struct {
	mu   sync.RWMutex
	keys map[identifier.UserID]ed25519.PublicKey
}

// NewMapIdentityStore returns an empty MapIdentityStore.
func NewMapIdentityStore() *MapIdentityStore {
	return &MapIdentityStore{keys: make(map[identifier.UserID]ed25519.PublicKey)}
}

// Register associates a userid with its public key, overwriting any
// prior key for that userid.
func (s *MapIdentityStore) Register(user identifier.UserID, key ed25519.PublicKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[user] = key
}

// Lookup implements IdentityStore.
func (s *MapIdentityStore) Lookup(user identifier.UserID) (ed25519.PublicKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.keys[user]
	return key, ok
}

type pendingNonce struct {
	bytes    [NonceSize]byte
	user     identifier.UserID
	issuedAt time.Time
	used     bool
}

// Machine is the server-side auth state machine for one connection.
// It is not safe for concurrent use by multiple goroutines — like the
// rest of a connection's session state, it is owned by exactly one
// agent.
type Machine struct {
	clk         clock.Clock
	identities  IdentityStore
	state       State
	currentUser identifier.UserID
	pending     *pendingNonce
}

// New returns a Machine in the Idle state with the effective userid
// defaulted to $anonymous.
func New(clk clock.Clock, identities IdentityStore) *Machine {
	if clk == nil {
		clk = clock.Real()
	}
	return &Machine{
		clk:         clk,
		identities:  identities,
		state:       Idle,
		currentUser: identifier.AnonymousUser,
	}
}

// CurrentUser returns the connection's effective userid.
func (m *Machine) CurrentUser() identifier.UserID {
	return m.currentUser
}

// State returns the machine's current state.
func (m *Machine) State() State {
	return m.state
}

// BeginRequestUser records that the server is about to send
// request-user. Only legal from Idle.
func (m *Machine) BeginRequestUser() error {
	if m.state != Idle {
		return protoerr.ErrInvalidModeTransition
	}
	m.state = AwaitSetUser
	return nil
}

// Challenge is the nonce and user the server must send in a
// request-authentication command.
type Challenge struct {
	User  identifier.UserID
	Nonce [NonceSize]byte
}

// SetUser handles a viewer's set-user command. anonymous reports
// whether the user is $anonymous — in which case the caller must
// reply accept-user with no challenge and this call always succeeds
// regardless of state, per the spec's stated exception. Otherwise a
// Challenge is returned for the caller to send as
// request-authentication, and the machine moves to
// AwaitAuthenticate.
func (m *Machine) SetUser(user identifier.UserID) (anonymous bool, challenge Challenge, err error) {
	if user.Anonymous() {
		m.invalidatePending()
		m.state = Idle
		m.currentUser = identifier.AnonymousUser
		return true, Challenge{}, nil
	}

	if m.state != AwaitSetUser {
		return false, Challenge{}, protoerr.ErrInvalidModeTransition
	}

	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return false, Challenge{}, fmt.Errorf("generating auth nonce: %w", err)
	}
	m.pending = &pendingNonce{bytes: nonce, user: user, issuedAt: m.clk.Now()}
	m.state = AwaitAuthenticate
	return false, Challenge{User: user, Nonce: nonce}, nil
}

// ChallengeMessage renders the exact UTF-8 bytes an Ed25519 signature
// must cover: "hackvr-auth-v1:<user>:<lowercase-hex-nonce>".
func ChallengeMessage(user identifier.UserID, nonce [NonceSize]byte) []byte {
	return []byte(fmt.Sprintf("hackvr-auth-v1:%s:%s", string(user), hex.EncodeToString(nonce[:])))
}

// Authenticate handles a viewer's authenticate command. accepted is
// true only if the machine was awaiting authentication for this exact
// user, the nonce has not expired or already been used, and the
// signature verifies against the identity store's key for user. The
// machine always returns to Idle after this call, whether accepted or
// not — accept-user/reject-user is the caller's concern based on the
// returned bool.
func (m *Machine) Authenticate(user identifier.UserID, signature []byte) (accepted bool) {
	defer func() {
		m.invalidatePending()
		m.state = Idle
		if accepted {
			m.currentUser = user
		} else {
			m.currentUser = identifier.AnonymousUser
		}
	}()

	if m.state != AwaitAuthenticate || m.pending == nil {
		return false
	}
	if m.pending.used {
		return false
	}
	if m.pending.user != user {
		return false
	}
	if m.clk.Now().Sub(m.pending.issuedAt) > NonceTimeout {
		return false
	}

	key, ok := m.identities.Lookup(user)
	if !ok {
		return false
	}
	message := ChallengeMessage(user, m.pending.bytes)
	m.pending.used = true
	return ed25519.Verify(key, message, signature)
}

// Reject forces the effective userid back to $anonymous and returns
// the machine to Idle, mirroring the server sending reject-user. It
// also invalidates any pending nonce, per the nonce-invalidation rule.
func (m *Machine) Reject() {
	m.invalidatePending()
	m.state = Idle
	m.currentUser = identifier.AnonymousUser
}

// Accept forces the effective userid to user and returns the machine
// to Idle, mirroring the server sending accept-user directly (e.g.
// for an out-of-band trust decision) without going through
// Authenticate.
func (m *Machine) Accept(user identifier.UserID) {
	m.invalidatePending()
	m.state = Idle
	m.currentUser = user
}

func (m *Machine) invalidatePending() {
	m.pending = nil
}
