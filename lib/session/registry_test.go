// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"testing"
	"time"

	"github.com/hackvr/hackvr/lib/clock"
	"github.com/hackvr/hackvr/lib/identifier"
)

func TestRegistryAnnounceAndValidate(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	reg := NewRegistry(clk)

	var token identifier.SessionToken
	token[0] = 1
	origin := Origin{Scheme: "hackvr", Host: "example.com", Port: "7890"}

	if _, ok := reg.IsValid(token); ok {
		t.Fatal("expected token to be invalid before announcement")
	}

	reg.Announce(token, origin, 0)
	got, ok := reg.IsValid(token)
	if !ok || got != origin {
		t.Fatalf("expected valid token bound to %+v, got %+v ok=%v", origin, got, ok)
	}
}

func TestRegistryExpiry(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	reg := NewRegistry(clk)

	var token identifier.SessionToken
	token[0] = 1
	reg.Announce(token, Origin{}, 1*time.Minute)

	clk.Advance(2 * time.Minute)
	if _, ok := reg.IsValid(token); ok {
		t.Fatal("expected token to be expired")
	}
}

func TestRegistryRevoke(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	reg := NewRegistry(clk)

	var token identifier.SessionToken
	token[0] = 1
	reg.Announce(token, Origin{}, 0)
	reg.Revoke(token)

	if _, ok := reg.IsValid(token); ok {
		t.Fatal("expected revoked token to be invalid")
	}
}

func TestRegistryCleanupReapsExpired(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	reg := NewRegistry(clk)

	var a, b identifier.SessionToken
	a[0], b[0] = 1, 2
	reg.Announce(a, Origin{}, 1*time.Minute)
	reg.Announce(b, Origin{}, 1*time.Hour)

	clk.Advance(2 * time.Minute)
	removed := reg.Cleanup()
	if removed != 1 {
		t.Fatalf("expected to reap 1 entry, reaped %d", removed)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 entry remaining, got %d", reg.Len())
	}
}

func TestContextReplacesPriorToken(t *testing.T) {
	var c Context
	var tokA, tokB identifier.SessionToken
	tokA[0], tokB[0] = 1, 2
	origin := Origin{Scheme: "hackvr", Host: "h", Port: "7890"}

	c.Announce(tokA, origin)
	c.Announce(tokB, origin)

	got, ok := c.Current()
	if !ok || got != tokB {
		t.Fatalf("expected current token to be the most recently announced one, got %v ok=%v", got, ok)
	}
}

func TestContextMayAttachRequiresMatchingOrigin(t *testing.T) {
	var c Context
	var tok identifier.SessionToken
	tok[0] = 1
	bound := Origin{Scheme: "hackvr", Host: "a.example", Port: "7890"}
	other := Origin{Scheme: "hackvr", Host: "b.example", Port: "7890"}

	c.Announce(tok, bound)
	if !c.MayAttach(bound) {
		t.Fatal("expected attach to succeed against the bound origin")
	}
	if c.MayAttach(other) {
		t.Fatal("expected attach to fail against a different origin")
	}
}
