// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the HackVR byte-stream framer and typed
// argument codec: splitting a byte stream into CR LF-terminated frames
// with length and control-character guards, and parsing/formatting the
// typed arguments carried within a frame.
package wire
