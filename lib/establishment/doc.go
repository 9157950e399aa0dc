// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package establishment drives the two HackVR connection-establishment
// paths: the raw hackvr-hello handshake and the HTTP/1.1 Upgrade
// handshake. Both are strict regimes — any deviation returns a
// *protoerr.HandshakeError and the caller must close the transport.
// This package never owns a socket: it reads from an io.Reader and
// writes to an io.Writer, so the caller's choice of TCP, TLS, or an
// in-memory pipe (for tests) is transparent to it.
package establishment
