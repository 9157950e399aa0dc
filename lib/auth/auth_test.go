// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/hackvr/hackvr/lib/clock"
	"github.com/hackvr/hackvr/lib/identifier"
)

func newTestMachine(t *testing.T) (*Machine, *clock.FakeClock, identifier.UserID, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	identities := NewMapIdentityStore()
	user := identifier.UserID("alice")
	identities.Register(user, pub)

	clk := clock.Fake(time.Unix(0, 0))
	m := New(clk, identities)
	return m, clk, user, priv
}

func challenge(t *testing.T, m *Machine, user identifier.UserID) Challenge {
	t.Helper()
	if err := m.BeginRequestUser(); err != nil {
		t.Fatalf("BeginRequestUser: %v", err)
	}
	anonymous, ch, err := m.SetUser(user)
	if err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	if anonymous {
		t.Fatalf("SetUser reported anonymous for non-anonymous user")
	}
	return ch
}

func TestAuthenticateAcceptsValidSignature(t *testing.T) {
	m, _, user, priv := newTestMachine(t)
	ch := challenge(t, m, user)

	sig := ed25519.Sign(priv, ChallengeMessage(user, ch.Nonce))
	if !m.Authenticate(user, sig) {
		t.Fatalf("expected valid signature to be accepted")
	}
	if m.CurrentUser() != user {
		t.Fatalf("expected current user %q, got %q", user, m.CurrentUser())
	}
	if m.State() != Idle {
		t.Fatalf("expected machine to return to Idle, got %v", m.State())
	}
}

func TestAuthenticateRejectsFlippedSignatureBit(t *testing.T) {
	m, _, user, priv := newTestMachine(t)
	ch := challenge(t, m, user)

	sig := ed25519.Sign(priv, ChallengeMessage(user, ch.Nonce))
	sig[0] ^= 0x01

	if m.Authenticate(user, sig) {
		t.Fatalf("expected flipped signature bit to be rejected")
	}
	if m.CurrentUser() != identifier.AnonymousUser {
		t.Fatalf("expected current user to fall back to anonymous, got %q", m.CurrentUser())
	}
}

func TestAuthenticateRejectsExpiredNonce(t *testing.T) {
	m, clk, user, priv := newTestMachine(t)
	ch := challenge(t, m, user)

	clk.Advance(NonceTimeout + time.Second)

	sig := ed25519.Sign(priv, ChallengeMessage(user, ch.Nonce))
	if m.Authenticate(user, sig) {
		t.Fatalf("expected nonce older than NonceTimeout to be rejected")
	}
}

func TestAuthenticateAcceptsNonceJustBeforeTimeout(t *testing.T) {
	m, clk, user, priv := newTestMachine(t)
	ch := challenge(t, m, user)

	clk.Advance(NonceTimeout - time.Second)

	sig := ed25519.Sign(priv, ChallengeMessage(user, ch.Nonce))
	if !m.Authenticate(user, sig) {
		t.Fatalf("expected nonce just under NonceTimeout to be accepted")
	}
}

func TestAuthenticateRejectsReusedNonce(t *testing.T) {
	m, _, user, priv := newTestMachine(t)
	ch := challenge(t, m, user)

	sig := ed25519.Sign(priv, ChallengeMessage(user, ch.Nonce))
	if !m.Authenticate(user, sig) {
		t.Fatalf("expected first use of the nonce to be accepted")
	}
	if m.Authenticate(user, sig) {
		t.Fatalf("expected replaying the same signature to be rejected")
	}
}

func TestAuthenticateRejectsUnknownUser(t *testing.T) {
	m, _, _, priv := newTestMachine(t)
	unknown := identifier.UserID("mallory")
	ch := challenge(t, m, unknown)

	sig := ed25519.Sign(priv, ChallengeMessage(unknown, ch.Nonce))
	if m.Authenticate(unknown, sig) {
		t.Fatalf("expected authentication for an unregistered user to be rejected")
	}
}

func TestSetUserAnonymousBypassesChallenge(t *testing.T) {
	m, _, _, _ := newTestMachine(t)
	if err := m.BeginRequestUser(); err != nil {
		t.Fatalf("BeginRequestUser: %v", err)
	}

	anonymous, ch, err := m.SetUser(identifier.AnonymousUser)
	if err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	if !anonymous {
		t.Fatalf("expected anonymous user to be reported anonymous")
	}
	if ch != (Challenge{}) {
		t.Fatalf("expected no challenge for anonymous user, got %+v", ch)
	}
	if m.State() != Idle {
		t.Fatalf("expected machine to remain Idle for anonymous set-user, got %v", m.State())
	}
}
