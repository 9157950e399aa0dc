// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent composes the wire codec, establishment, selector,
// scene, transition, session, auth, and interaction packages into one
// per-connection engine.
//
// Agent.Feed pushes inbound bytes through the framer and dispatches
// each complete frame synchronously, per spec.md §5: "Command dispatch
// itself is non-suspending ... synchronous with respect to the
// per-connection agent." Results reach the caller through the Events
// callback fields rather than a channel — the teacher's
// lib/agentdriver.Driver.ParseOutput reports parsed events on a
// channel because its subprocess boundary makes async delivery
// natural, but HackVR command dispatch must never suspend mid-frame,
// so this package adapts that same "parse stream, report events"
// shape to synchronous callbacks instead.
//
// One Agent exists per transport connection. The identity store and
// the session token registry are the only state shared across agents,
// per spec.md §5's single-writer-per-connection model; each Agent
// otherwise owns an independent scene, transition engine, and mode
// state, and is driven by its own clock.Clock (Open Question: a
// per-connection clock source, not a shared clock, since transition
// playback is viewer-monotonic per connection, not wall-clock global).
package agent
