// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth implements the HackVR userid state machine: the
// Idle -> AwaitSetUser -> AwaitAuthenticate -> Idle cycle, nonce
// issuance and expiry, and Ed25519 challenge/response verification.
// The Ed25519 sign/verify shape is the same one the teacher used for
// mutual peer authentication over a data channel; here it is
// generalized to an asymmetric, server-challenges-client form driven
// by an explicit finite state machine rather than a single
// connection-establishment step.
package auth
