// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec wraps github.com/fxamacker/cbor/v2 with the
// project-wide encoding configuration: Core Deterministic Encoding
// (RFC 8949 §4.2) on the way out, so the same logical value always
// produces identical bytes, and forward-compatible unknown-field
// tolerance on the way in.
//
// The wire protocol itself (package wire) is a line-oriented text
// format and never touches CBOR. This package exists for the
// out-of-band tooling that records and replays HackVR sessions for
// tests — see agent's playback harness — where a deterministic binary
// encoding of a command script is more convenient than a second text
// format.
package codec
