// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package transition implements the HackVR transition engine (C9):
// per-channel (pos/rot/scale) transform transitions with cancel-and-
// restart semantics, the track-object aiming layer, and free-look
// camera composition.
//
// Every exported Engine method that reads "now" takes a time.Time
// rather than calling a clock itself and evaluation is a pure
// function of that value: no goroutine polls a channel's progress in
// the background. This mirrors the teacher's clock.Clock-driven
// deterministic-time design one level up — callers inject "now" from
// clock.Clock.Now() — which lets tests assert exact transition-arrival
// values by constructing a clock.FakeClock, advancing it, and calling
// Evaluate with the resulting time, with no need to drive real timers
// at all.
//
// Engine depends on package scene only for *scene.Graph traversal
// (parent chain, world pose) and for reading/writing an Object's
// settled Pos/Rot/Scale fields when no transition is active on a
// channel; it never depends on package interaction or package session.
package transition
