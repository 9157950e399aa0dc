// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package protoerr classifies HackVR errors into the two regimes the
// protocol defines: strict errors, raised only during establishment,
// which always close the transport; and optimistic errors, raised
// after establishment, which always drop a single command instance
// and leave the connection open.
package protoerr
