// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time-observation abstraction
// for testability.
//
// Production code accepts a Clock interface parameter instead of
// calling time.Now directly. In production, Real() provides the
// standard library behavior. In tests, Fake() provides a deterministic
// clock that advances only when Advance is called.
//
// HackVR's timing surface is entirely duration-since-Now: session
// expiry (lib/session.Registry), auth nonce expiry (lib/auth.Machine),
// and transition arrival (lib/transition.Engine) all compare an
// issued-at timestamp against the current time rather than scheduling
// a callback. Clock is trimmed to that one method; there is no
// timer, ticker, or sleep surface to fake.
//
// # Wiring Pattern
//
// Add a Clock field to structs that use time:
//
//	type Server struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// In production:
//
//	s := &Server{clock: clock.Real()}
//
// In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	s := &Server{clock: c}
//	c.Advance(5 * time.Second) // move time forward deterministically
package clock
