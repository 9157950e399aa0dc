// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"crypto/ed25519"

	"github.com/hackvr/hackvr/lib/auth"
	"github.com/hackvr/hackvr/lib/clock"
	"github.com/hackvr/hackvr/lib/command"
	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/interaction"
	"github.com/hackvr/hackvr/lib/protoerr"
	"github.com/hackvr/hackvr/lib/scene"
	"github.com/hackvr/hackvr/lib/session"
	"github.com/hackvr/hackvr/lib/transition"
	"github.com/hackvr/hackvr/lib/wire"
)

// Agent is the server-side per-connection HackVR engine: it holds the
// authoritative scene for this viewer, dispatches the viewer's
// inbound client-to-server commands, and exposes a host-driven
// surface (see outbound.go) for the host program to mutate the scene
// and drive the auth/session/interaction state machines.
type Agent struct {
	clk clock.Clock

	Scene       *scene.Scene
	Transitions *transition.Engine
	Modes       interaction.Modes
	Intents     *interaction.Registry
	Auth        *auth.Machine
	SessionCtx  session.Context

	sessions *session.Registry
	origin   session.Origin

	framer *wire.Framer
	events Events
}

// New returns an Agent bound to origin (the establishment-time origin
// this connection resolved to), sharing identities and sessions with
// every other Agent on the server. clk defaults to clock.Real() when
// nil.
func New(clk clock.Clock, limits scene.Limits, identities auth.IdentityStore, sessions *session.Registry, origin session.Origin, events Events) *Agent {
	if clk == nil {
		clk = clock.Real()
	}
	sc := scene.New(limits)
	return &Agent{
		clk:         clk,
		Scene:       sc,
		Transitions: transition.NewEngine(sc.Graph),
		Intents:     interaction.NewRegistry(),
		Auth:        auth.New(clk, identities),
		sessions:    sessions,
		origin:      origin,
		framer:      wire.NewFramer(),
		events:      events,
	}
}

// Evaluate advances the transition engine to now, applying any
// in-flight transitions and tracking blends. It has no other side
// effect: transitions are purely computed state, never re-transmitted,
// since the viewer replays the same interpolation independently from
// the set-object-transform/track-object commands it already received.
func (a *Agent) Evaluate() {
	a.Transitions.Evaluate(a.clk.Now())
}

// Feed pushes newly received bytes through the framer and dispatches
// every complete frame synchronously. It returns the first framing
// violation encountered, if any — a strict-regime error the caller
// must treat as fatal to the connection (spec.md §4.10). Optimistic
// errors from individual commands are reported through
// Events.OnDropped and never returned here; the stream continues.
func (a *Agent) Feed(data []byte) error {
	a.framer.Push(data)
	for {
		frame, ferr, ok := a.framer.Pull()
		if !ok {
			return nil
		}
		if ferr != nil {
			return ferr
		}
		a.dispatch(frame)
	}
}

func (a *Agent) drop(name string, err error) {
	if a.events.OnDropped != nil {
		a.events.OnDropped(name, err)
	}
}

// dispatch applies one inbound frame. Every failure path here is
// optimistic (spec.md §4.10): the command is dropped and the stream
// continues.
func (a *Agent) dispatch(frame wire.Frame) {
	spec, ok := command.Lookup(frame.Name)
	if !ok {
		a.drop(frame.Name, protoerr.ErrUnknownCommand)
		return
	}
	if !spec.Direction.Allows(command.ClientToServer) {
		a.drop(frame.Name, protoerr.ErrDirectionViolation)
		return
	}

	handler, ok := inboundHandlers[frame.Name]
	if !ok {
		a.drop(frame.Name, protoerr.ErrUnknownCommand)
		return
	}
	if err := handler(a, frame.Args); err != nil {
		a.drop(frame.Name, err)
	}
}

type inboundHandler func(a *Agent, args []string) error

var inboundHandlers = map[string]inboundHandler{
	"chat":           (*Agent).handleChat,
	"set-user":       (*Agent).handleSetUser,
	"authenticate":   (*Agent).handleAuthenticate,
	"resume-session": (*Agent).handleResumeSession,
	"send-input":     (*Agent).handleSendInput,
	"tap-object":     (*Agent).handleTapObject,
	"tell-object":    (*Agent).handleTellObject,
	"intent":         (*Agent).handleIntent,
	"raycast":        (*Agent).handleRaycast,
	"raycast-cancel": (*Agent).handleRaycastCancel,
}

func (a *Agent) handleChat(args []string) error {
	message, ok := command.RequiredArg(args, 0)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	if a.events.OnChat != nil {
		a.events.OnChat(message)
	}
	return nil
}

func (a *Agent) handleSetUser(args []string) error {
	raw, ok := command.RequiredArg(args, 0)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	user, err := identifier.ParseUserID(raw)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	anonymous, challenge, err := a.Auth.SetUser(user)
	if err != nil {
		return err
	}
	if anonymous {
		a.sendAcceptUser(identifier.AnonymousUser)
		return nil
	}
	a.sendRequestAuthentication(challenge.User, challenge.Nonce)
	return nil
}

func (a *Agent) handleAuthenticate(args []string) error {
	rawUser, ok := command.RequiredArg(args, 0)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	rawSig, ok := command.RequiredArg(args, 1)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	user, err := identifier.ParseUserID(rawUser)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	sig, err := wire.ParseBytesN(rawSig, ed25519.SignatureSize)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	if a.Auth.Authenticate(user, sig) {
		a.sendAcceptUser(user)
	} else {
		a.sendRejectUser(user, "authentication failed")
	}
	return nil
}

func (a *Agent) handleResumeSession(args []string) error {
	raw, ok := command.RequiredArg(args, 0)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	token, err := identifier.ParseSessionToken(raw)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	origin, valid := a.sessions.IsValid(token)
	valid = valid && origin.Equal(a.origin)
	if valid {
		a.SessionCtx.Announce(token, origin)
	}
	if a.events.OnResumeSession != nil {
		a.events.OnResumeSession(token, valid)
	}
	return nil
}

func (a *Agent) handleSendInput(args []string) error {
	text, ok := command.RequiredArg(args, 0)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	if !a.Modes.SendInput() {
		return protoerr.ErrInvalidModeTransition
	}
	if a.events.OnSendInput != nil {
		a.events.OnSendInput(text)
	}
	return nil
}

func (a *Agent) handleTapObject(args []string) error {
	rawObj, ok := command.RequiredArg(args, 0)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	rawKind, ok := command.RequiredArg(args, 1)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	rawTag, ok := command.RequiredArg(args, 2)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	obj, err := identifier.Parse(rawObj)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	kind, err := wire.ParseTapKind(rawKind)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	tag, err := identifier.ParseTag(rawTag)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	o, ok := a.Scene.Graph.Object(obj)
	if !ok {
		return protoerr.ErrMissingReference
	}
	if !o.Clickable || tag.Unreferenceable() {
		return protoerr.ErrInvalidModeTransition
	}
	if a.events.OnTapObject != nil {
		a.events.OnTapObject(obj, kind, tag)
	}
	return nil
}

func (a *Agent) handleTellObject(args []string) error {
	rawObj, ok := command.RequiredArg(args, 0)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	text, ok := command.RequiredArg(args, 1)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	obj, err := identifier.Parse(rawObj)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	o, ok := a.Scene.Graph.Object(obj)
	if !ok {
		return protoerr.ErrMissingReference
	}
	if !o.TextInput {
		return protoerr.ErrInvalidModeTransition
	}
	if a.events.OnTellObject != nil {
		a.events.OnTellObject(obj, text)
	}
	return nil
}

func (a *Agent) handleIntent(args []string) error {
	rawID, ok := command.RequiredArg(args, 0)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	rawDir, ok := command.RequiredArg(args, 1)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	id, err := identifier.Parse(rawID)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	if !a.Intents.Exists(id) {
		return protoerr.ErrMissingReference
	}
	dir, err := wire.ParseVec3(rawDir)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	if a.events.OnIntent != nil {
		a.events.OnIntent(id, dir)
	}
	return nil
}

func (a *Agent) handleRaycast(args []string) error {
	rawOrigin, ok := command.RequiredArg(args, 0)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	rawDir, ok := command.RequiredArg(args, 1)
	if !ok {
		return protoerr.ErrMalformedArgument
	}
	origin, err := wire.ParseVec3(rawOrigin)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	dir, err := wire.ParseVec3(rawDir)
	if err != nil {
		return protoerr.ErrMalformedArgument
	}
	if !a.Modes.Raycast(origin, dir) {
		return protoerr.ErrZeroRaycastDirection
	}
	if a.events.OnRaycast != nil {
		a.events.OnRaycast(origin, dir)
	}
	return nil
}

func (a *Agent) handleRaycastCancel(_ []string) error {
	a.Modes.RaycastCancel()
	return nil
}
