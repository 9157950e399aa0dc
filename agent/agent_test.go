// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/hackvr/hackvr/lib/auth"
	"github.com/hackvr/hackvr/lib/clock"
	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/scene"
	"github.com/hackvr/hackvr/lib/session"
	"github.com/hackvr/hackvr/lib/wire"
)

func testOrigin() session.Origin {
	return session.Origin{Scheme: "hackvr", Host: "example.test", Port: "7890", PathAndQuery: "/"}
}

func newTestAgent(t *testing.T, events Events) (*Agent, *clock.FakeClock, *auth.MapIdentityStore) {
	t.Helper()
	clk := clock.Fake(time.Unix(1_700_000_000, 0))
	identities := auth.NewMapIdentityStore()
	sessions := session.NewRegistry(clk)
	a := New(clk, scene.DefaultLimits(), identities, sessions, testOrigin(), events)
	return a, clk, identities
}

func feedFrame(t *testing.T, a *Agent, cmd string, args ...string) {
	t.Helper()
	frame, err := wire.Encode(cmd, args...)
	if err != nil {
		t.Fatalf("wire.Encode(%s): %v", cmd, err)
	}
	if err := a.Feed(frame); err != nil {
		t.Fatalf("Feed(%s): %v", cmd, err)
	}
}

func TestFeedChatDispatches(t *testing.T) {
	var got string
	a, _, _ := newTestAgent(t, Events{OnChat: func(message string) { got = message }})
	feedFrame(t, a, "chat", "hello there")
	if got != "hello there" {
		t.Fatalf("OnChat got %q, want %q", got, "hello there")
	}
}

func TestFeedUnknownCommandDrops(t *testing.T) {
	var droppedName string
	a, _, _ := newTestAgent(t, Events{OnDropped: func(name string, err error) { droppedName = name }})
	feedFrame(t, a, "not-a-real-command")
	if droppedName != "not-a-real-command" {
		t.Fatalf("OnDropped got %q, want the unknown command name", droppedName)
	}
}

func TestFeedServerToClientCommandIsDirectionViolation(t *testing.T) {
	var droppedName string
	a, _, _ := newTestAgent(t, Events{OnDropped: func(name string, err error) { droppedName = name }})
	// accept-user is server-to-client only; a viewer sending it is a
	// direction violation, not an unknown command.
	feedFrame(t, a, "accept-user", "anonymous")
	if droppedName != "accept-user" {
		t.Fatalf("OnDropped got %q, want accept-user dropped for direction violation", droppedName)
	}
}

func TestFeedSetUserAnonymousAcceptsImmediately(t *testing.T) {
	var sent [][]byte
	a, _, _ := newTestAgent(t, Events{OnSend: func(f []byte) { sent = append(sent, f) }})
	feedFrame(t, a, "set-user", string(identifier.AnonymousUser))
	if len(sent) != 1 {
		t.Fatalf("got %d outbound frames, want 1", len(sent))
	}
	frame, _, ok := pullOne(t, sent[0])
	if !ok || frame.Name != "accept-user" {
		t.Fatalf("got frame %+v, want accept-user", frame)
	}
}

func TestFeedSetUserKnownIdentityRequestsAuthentication(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	var sent [][]byte
	a, _, identities := newTestAgent(t, Events{OnSend: func(f []byte) { sent = append(sent, f) }})
	identities.Register("alice", pub)
	if err := a.RequestUser(nil); err != nil {
		t.Fatalf("RequestUser: %v", err)
	}
	sent = nil
	feedFrame(t, a, "set-user", "alice")
	if len(sent) != 1 {
		t.Fatalf("got %d outbound frames, want 1", len(sent))
	}
	frame, _, ok := pullOne(t, sent[0])
	if !ok || frame.Name != "request-authentication" {
		t.Fatalf("got frame %+v, want request-authentication", frame)
	}
}

func TestFeedAuthenticateAcceptsValidSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	var sent [][]byte
	a, _, identities := newTestAgent(t, Events{OnSend: func(f []byte) { sent = append(sent, f) }})
	identities.Register("alice", pub)
	if err := a.RequestUser(nil); err != nil {
		t.Fatalf("RequestUser: %v", err)
	}
	sent = nil
	feedFrame(t, a, "set-user", "alice")

	authFrame, _, ok := pullOne(t, sent[0])
	if !ok || authFrame.Name != "request-authentication" {
		t.Fatalf("setup: got %+v, want request-authentication", authFrame)
	}
	nonce, err := wire.ParseBytesN(authFrame.Args[1], 16)
	if err != nil {
		t.Fatalf("ParseBytesN nonce: %v", err)
	}
	var nonceArr [16]byte
	copy(nonceArr[:], nonce)
	challenge := auth.ChallengeMessage("alice", nonceArr)
	sig := ed25519.Sign(priv, challenge)

	sent = nil
	feedFrame(t, a, "authenticate", "alice", wire.FormatBytesN(sig))
	if len(sent) != 1 {
		t.Fatalf("got %d outbound frames, want 1", len(sent))
	}
	reply, _, ok := pullOne(t, sent[0])
	if !ok || reply.Name != "accept-user" {
		t.Fatalf("got %+v, want accept-user", reply)
	}
}

func TestFeedAuthenticateWrongSignatureLengthDrops(t *testing.T) {
	var droppedName string
	a, _, identities := newTestAgent(t, Events{OnDropped: func(name string, err error) { droppedName = name }})
	pub, _, _ := ed25519.GenerateKey(nil)
	identities.Register("alice", pub)
	if err := a.RequestUser(nil); err != nil {
		t.Fatalf("RequestUser: %v", err)
	}
	feedFrame(t, a, "set-user", "alice")
	feedFrame(t, a, "authenticate", "alice", "aa")
	if droppedName != "authenticate" {
		t.Fatalf("OnDropped got %q, want authenticate dropped", droppedName)
	}
}

func TestFeedResumeSessionValidatesOriginBinding(t *testing.T) {
	a, _, _ := newTestAgent(t, Events{})
	token, err := a.AnnounceSession(0)
	if err != nil {
		t.Fatalf("AnnounceSession: %v", err)
	}

	var gotValid bool
	var gotToken identifier.SessionToken
	a2, _, _ := newTestAgent(t, Events{OnResumeSession: func(tok identifier.SessionToken, valid bool) {
		gotToken, gotValid = tok, valid
	}})
	feedFrame(t, a2, "resume-session", token.String())
	if gotValid {
		t.Fatalf("resume-session from a different origin/registry should be invalid")
	}
	if gotToken != token {
		t.Fatalf("OnResumeSession token mismatch")
	}

	gotValid = false
	a.events.OnResumeSession = func(tok identifier.SessionToken, valid bool) { gotValid = valid }
	feedFrame(t, a, "resume-session", token.String())
	if !gotValid {
		t.Fatalf("resume-session against the announcing Agent's own registry/origin should be valid")
	}
}

func TestFeedSendInputGatedByMode(t *testing.T) {
	var dropped, got string
	a, _, _ := newTestAgent(t, Events{
		OnDropped:   func(name string, err error) { dropped = name },
		OnSendInput: func(text string) { got = text },
	})
	feedFrame(t, a, "send-input", "not requested yet")
	if dropped != "send-input" {
		t.Fatalf("OnDropped got %q, want send-input dropped before request-input", dropped)
	}

	a.RequestInput("name?", nil)
	feedFrame(t, a, "send-input", "hello")
	if got != "hello" {
		t.Fatalf("OnSendInput got %q, want %q", got, "hello")
	}
}

func TestFeedTapObjectRequiresClickable(t *testing.T) {
	var dropped string
	var got identifier.ID
	a, _, _ := newTestAgent(t, Events{
		OnDropped:   func(name string, err error) { dropped = name },
		OnTapObject: func(obj identifier.ID, kind wire.TapKind, tag identifier.Tag) { got = obj },
	})
	if err := a.CreateObject("thing", nil); err != nil {
		t.Fatalf("CreateObject: %v", err)
	}
	feedFrame(t, a, "tap-object", "thing", "primary", "handle")
	if dropped != "tap-object" {
		t.Fatalf("OnDropped got %q, want tap-object dropped for non-clickable object", dropped)
	}

	if err := a.SetObjectProperty("thing", "clickable", "true"); err != nil {
		t.Fatalf("SetObjectProperty: %v", err)
	}
	feedFrame(t, a, "tap-object", "thing", "primary", "handle")
	if got != "thing" {
		t.Fatalf("OnTapObject got %q, want thing", got)
	}
}

func TestFeedRaycastGatedByZeroDirection(t *testing.T) {
	var dropped string
	a, _, _ := newTestAgent(t, Events{OnDropped: func(name string, err error) { dropped = name }})
	a.RaycastRequest()
	feedFrame(t, a, "raycast", "(0 0 0)", "(0 0 0)")
	if dropped != "raycast" {
		t.Fatalf("OnDropped got %q, want raycast dropped for zero direction", dropped)
	}
}

func TestFeedIntentRequiresExistingIntent(t *testing.T) {
	var dropped string
	a, _, _ := newTestAgent(t, Events{OnDropped: func(name string, err error) { dropped = name }})
	feedFrame(t, a, "intent", "walk-forward", "(0 0 1)")
	if dropped != "intent" {
		t.Fatalf("OnDropped got %q, want intent dropped for missing reference", dropped)
	}

	dropped = ""
	id, err := identifier.Parse("walk-forward")
	if err != nil {
		t.Fatalf("identifier.Parse: %v", err)
	}
	a.CreateIntent(id, "Walk forward")
	feedFrame(t, a, "intent", "walk-forward", "(0 0 1)")
	if dropped != "" {
		t.Fatalf("OnDropped fired unexpectedly: %s", dropped)
	}
}

func TestDestroyGeometryRemovesIt(t *testing.T) {
	a, _, _ := newTestAgent(t, Events{})
	if err := a.CreateGeometry("wall"); err != nil {
		t.Fatalf("CreateGeometry: %v", err)
	}
	if !a.Scene.Geometries.Exists(mustID(t, "wall")) {
		t.Fatalf("expected wall geometry to exist after create")
	}
	if err := a.DestroyGeometry("wall"); err != nil {
		t.Fatalf("DestroyGeometry: %v", err)
	}
	if a.Scene.Geometries.Exists(mustID(t, "wall")) {
		t.Fatalf("expected wall geometry to be gone after destroy")
	}
}

func TestResolveExistingSelectorIsUncappedByCreateLimit(t *testing.T) {
	a, _, _ := newTestAgent(t, Events{})
	if err := a.CreateObject("door-{0001..0005}", nil); err != nil {
		t.Fatalf("CreateObject: %v", err)
	}
	a.Scene.Limits.MaxCreateSelectorExpand = 2
	if err := a.SetObjectProperty("door-*", "clickable", "true"); err != nil {
		t.Fatalf("SetObjectProperty over 5 matches with a create cap of 2: %v", err)
	}
}

func TestResolveCreateSelectorEnforcesCap(t *testing.T) {
	a, _, _ := newTestAgent(t, Events{})
	a.Scene.Limits.MaxCreateSelectorExpand = 2
	if err := a.CreateObject("door-{0001..0005}", nil); err == nil {
		t.Fatalf("CreateObject over 5 expansions with a create cap of 2: want an error")
	}
}

func TestCreateObjectRejectsReservedIdentifierNotAlreadyPresent(t *testing.T) {
	a, _, _ := newTestAgent(t, Events{})
	if err := a.CreateObject("$camera", nil); err != nil {
		t.Fatalf("CreateObject($camera) on the already-seeded reserved id: %v", err)
	}
	if err := a.CreateObject("$made-up", nil); err == nil {
		t.Fatalf("CreateObject($made-up): want ErrForbiddenIdentifier for an unseeded reserved id")
	}
}

func TestSelectorBearingCommandsSendUnexpandedPattern(t *testing.T) {
	var sent [][]byte
	a, _, _ := newTestAgent(t, Events{OnSend: func(f []byte) { sent = append(sent, f) }})
	if err := a.CreateObject("thing-{1..3}", nil); err != nil {
		t.Fatalf("CreateObject: %v", err)
	}
	if !a.Scene.Graph.Exists(mustID(t, "thing-1")) || !a.Scene.Graph.Exists(mustID(t, "thing-3")) {
		t.Fatalf("expected thing-1..thing-3 to exist locally")
	}
	frame, _, ok := pullOne(t, sent[len(sent)-1])
	if !ok || frame.Args[0] != "thing-{1..3}" {
		t.Fatalf("got wire pattern %+v, want the unexpanded pattern on the wire", frame)
	}
}

func mustID(t *testing.T, s string) identifier.ID {
	t.Helper()
	id, err := identifier.Parse(s)
	if err != nil {
		t.Fatalf("identifier.Parse(%q): %v", s, err)
	}
	return id
}

func pullOne(t *testing.T, data []byte) (wire.Frame, *wire.FramingError, bool) {
	t.Helper()
	f := wire.NewFramer()
	f.Push(data)
	frame, ferr, ok := f.Pull()
	if ferr != nil {
		t.Fatalf("Pull framing error: %v", ferr)
	}
	return frame, ferr, ok
}
