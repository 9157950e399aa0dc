// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session implements the HackVR session engine (C7):
// announce/refresh/revoke of session tokens, origin binding, and the
// world-wide revocation registry a server consults when a viewer
// attempts resume-session.
//
// HackVR session tokens are bare identifiers, not credentials (spec.md
// §3, §4.7) — unlike the teacher's lib/servicetoken, which mints
// self-verifying signed tokens because its tokens carry authorization
// grants that must survive a trip through an untrusted relay. This
// package keeps servicetoken's Blacklist shape (a single-writer,
// mutex-guarded map with expiry-driven Cleanup) but drops payload
// signing: tokens are opaque 32-byte values compared by decoded bytes.
package session
